package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const verdictJSON = `{
	"overallScore": 72,
	"gdpr": {"score": 80, "applicable": true, "checklist": [{"requirement": "Audit rights", "present": true}], "gaps": []},
	"soc2": {"score": 64, "applicable": true, "checklist": [], "gaps": [{"issue": "No encryption clause", "remediation": "Mandate encryption at rest and in transit."}]},
	"ccpa": {"score": 0, "applicable": false, "checklist": [], "gaps": []},
	"hipaa": {"score": 0, "applicable": false, "checklist": [], "gaps": []},
	"summary": "Strong GDPR posture, SOC 2 gaps remain."
}`

func TestParseReportStrict(t *testing.T) {
	r, err := ParseReport(verdictJSON)
	require.NoError(t, err)

	assert.Equal(t, 72, r.OverallScore)
	assert.True(t, r.GDPR.Applicable)
	assert.Equal(t, 80, r.GDPR.Score)
	assert.False(t, r.CCPA.Applicable)
	assert.Len(t, r.SOC2.Gaps, 1)
	assert.Equal(t, "Strong GDPR posture, SOC 2 gaps remain.", r.Summary)
}

func TestParseReportProseWrapped(t *testing.T) {
	raw := "Here is the compliance assessment you asked for:\n\n" + verdictJSON + "\n\nLet me know if you need anything else."
	r, err := ParseReport(raw)
	require.NoError(t, err)
	assert.Equal(t, 72, r.OverallScore)
}

func TestParseReportCodeFenced(t *testing.T) {
	raw := "```json\n" + verdictJSON + "\n```"
	r, err := ParseReport(raw)
	require.NoError(t, err)
	assert.Equal(t, 72, r.OverallScore)
}

func TestParseReportBracesInsideStrings(t *testing.T) {
	raw := `noise {"overallScore": 5, "summary": "uses {braces} and \"quotes\" inside"} trailing`
	r, err := ParseReport(raw)
	require.NoError(t, err)
	assert.Equal(t, 5, r.OverallScore)
	assert.Equal(t, `uses {braces} and "quotes" inside`, r.Summary)
}

func TestParseReportNoObject(t *testing.T) {
	_, err := ParseReport("the model refused to answer")
	assert.Error(t, err)
}

func TestParseReportUnbalanced(t *testing.T) {
	_, err := ParseReport(`{"overallScore": 5`)
	assert.Error(t, err)
}

func TestFrameworkAccessor(t *testing.T) {
	r := &Report{GDPR: FrameworkResult{Score: 42, Applicable: true}}

	fw := r.Framework(FrameworkGDPR)
	require.NotNil(t, fw)
	assert.Equal(t, 42, fw.Score)

	assert.Nil(t, r.Framework(FrameworkKey("pci")))
}
