package offline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grmcai/grmc-api/internal/domain/contracts"
)

// Analyzer is a local, deterministic fallback used when no model API key is
// configured. It scans the contract for clause keywords per framework and
// emits the same JSON schema as the LLM. Advisory only: keyword presence is
// not a legal review.
type Analyzer struct{}

func New() *Analyzer { return &Analyzer{} }

// check is one requirement detector: the requirement label plus lowercase
// phrases that count as the clause being present.
type check struct {
	requirement string
	remediation string
	phrases     []string
}

var gdprChecks = []check{
	{"Processing scope and purpose clearly defined", "Add a clause defining the subject matter, nature and purpose of processing.", []string{"purpose of processing", "scope of processing", "nature and purpose"}},
	{"Duration of processing specified", "State the duration of processing or tie it to the agreement term.", []string{"duration of processing", "term of this agreement", "duration of the processing"}},
	{"Types of personal data and data subjects identified", "Enumerate the categories of personal data and data subjects in an annex.", []string{"categories of personal data", "categories of data subjects", "types of personal data"}},
	{"Security measures (Article 32 compliance)", "Reference Article 32 and list technical and organisational measures.", []string{"article 32", "technical and organisational measures", "technical and organizational measures"}},
	{"Sub-processor requirements (prior authorization, flow-down)", "Require prior written authorisation for sub-processors with flow-down of obligations.", []string{"sub-processor", "subprocessor", "sub processor"}},
	{"Assistance with data subject rights", "Oblige the processor to assist with data subject requests.", []string{"data subject rights", "data subject request", "assist the controller"}},
	{"Deletion/return of data at contract end", "Add deletion or return of personal data upon termination.", []string{"deletion or return", "delete or return", "return or destroy"}},
	{"Audit rights for the controller", "Grant the controller audit and inspection rights.", []string{"audit", "inspection"}},
	{"Breach notification (typically 72 hours)", "Require personal data breach notification without undue delay, at most 72 hours.", []string{"72 hours", "personal data breach", "breach notification"}},
	{"Processing only on documented instructions", "Restrict processing to documented instructions of the controller.", []string{"documented instructions", "written instructions"}},
}

var soc2Checks = []check{
	{"Annual SOC 2 Type II report requirement", "Require delivery of an annual SOC 2 Type II report.", []string{"soc 2", "soc2", "type ii"}},
	{"Security incident notification", "Add a security incident notification clause with a concrete deadline.", []string{"security incident", "incident notification"}},
	{"Confidentiality and data protection", "Add confidentiality obligations covering customer data.", []string{"confidential", "confidentiality"}},
	{"Encryption requirements (at rest and in transit)", "Mandate encryption of data at rest and in transit.", []string{"encryption", "encrypted", "at rest and in transit"}},
	{"Access controls and authentication", "Require role-based access controls and strong authentication.", []string{"access control", "authentication", "least privilege"}},
	{"Business continuity/disaster recovery", "Add business continuity and disaster recovery commitments.", []string{"business continuity", "disaster recovery"}},
	{"Right to audit or assess security", "Grant a right to audit or request security assessments.", []string{"right to audit", "security assessment", "penetration test"}},
	{"Subcontractor security flow-down", "Flow security obligations down to subcontractors.", []string{"subcontractor", "flow-down", "flow down"}},
	{"Data retention and destruction", "Define retention periods and secure destruction of data.", []string{"retention", "destruction", "securely destroy"}},
}

var ccpaChecks = []check{
	{"Definition of \"sale\" and \"sharing\" of personal information", "Define sale and sharing of personal information per CCPA/CPRA.", []string{"sale of personal information", "selling personal information", "sharing of personal information"}},
	{"Consumer rights acknowledgment (access, deletion, opt-out)", "Acknowledge consumer rights to access, delete and opt out.", []string{"consumer rights", "right to delete", "opt-out", "opt out"}},
	{"Service provider/contractor obligations defined", "Designate the vendor as a service provider with CCPA obligations.", []string{"service provider", "contractor obligations"}},
	{"Prohibition on selling/sharing PI without consent", "Prohibit selling or sharing personal information received under the agreement.", []string{"shall not sell", "will not sell", "prohibited from selling"}},
	{"Purpose limitation (use only for contracted services)", "Limit use of personal information to the contracted business purpose.", []string{"business purpose", "purpose limitation", "solely to perform"}},
	{"Compliance certification requirement", "Require certification of CCPA compliance.", []string{"certif", "ccpa compliance", "cpra compliance"}},
	{"Right to audit/verify compliance", "Add a right to take reasonable steps to verify compliance.", []string{"verify compliance", "audit"}},
	{"Breach notification requirements", "Require notification of security breaches affecting personal information.", []string{"breach notification", "notify"}},
	{"Data minimization principles", "Commit to collecting only the personal information reasonably necessary.", []string{"data minimization", "reasonably necessary"}},
	{"Retention limitations", "Limit retention of personal information to the service period.", []string{"retention", "retain"}},
}

var hipaaChecks = []check{
	{"Permitted uses and disclosures of PHI defined", "Define the permitted uses and disclosures of PHI.", []string{"permitted uses", "uses and disclosures"}},
	{"Safeguards to prevent unauthorized use/disclosure", "Require appropriate safeguards for PHI.", []string{"safeguards", "appropriate safeguard"}},
	{"Reporting of unauthorized uses/disclosures", "Require reporting of any unauthorized use or disclosure.", []string{"unauthorized use", "unauthorized disclosure", "report"}},
	{"Subcontractor flow-down requirements", "Bind subcontractors to the same PHI restrictions.", []string{"subcontractor"}},
	{"Access to PHI for individual rights requests", "Provide access to PHI to satisfy individual access requests.", []string{"access to phi", "individual's request", "right of access"}},
	{"Amendment of PHI upon request", "Allow amendment of PHI as required by the Privacy Rule.", []string{"amendment", "amend"}},
	{"Accounting of disclosures", "Maintain and provide an accounting of disclosures.", []string{"accounting of disclosures"}},
	{"Compliance with Security Rule", "Require compliance with the HIPAA Security Rule.", []string{"security rule"}},
	{"Return or destruction of PHI at termination", "Return or destroy PHI at termination of the agreement.", []string{"return or destroy", "destruction of phi"}},
	{"Breach notification (within 60 days)", "Require breach notification within 60 days.", []string{"60 days", "breach notification"}},
}

// Analyze runs the keyword checklists and returns the verdict as a JSON
// string, same shape the LLM produces. Never fails.
func (a *Analyzer) Analyze(ctx context.Context, contractText string) (string, error) {
	lower := strings.ToLower(contractText)

	gdpr := evaluate(lower, gdprChecks)
	gdpr.Applicable = containsAny(lower, "gdpr", "eu ", "european union", "eea", "data protection regulation", "controller", "processor")
	soc2 := evaluate(lower, soc2Checks)
	soc2.Applicable = true
	ccpa := evaluate(lower, ccpaChecks)
	ccpa.Applicable = containsAny(lower, "california", "ccpa", "cpra", "consumer")
	hipaa := evaluate(lower, hipaaChecks)
	hipaa.Applicable = containsAny(lower, "phi", "hipaa", "health", "medical", "patient")

	report := contracts.Report{
		GDPR:  gdpr,
		SOC2:  soc2,
		CCPA:  ccpa,
		HIPAA: hipaa,
	}

	var sum, n int
	for _, key := range contracts.FrameworkKeys {
		fw := report.Framework(key)
		if fw.Applicable {
			sum += fw.Score
			n++
		}
	}
	if n > 0 {
		report.OverallScore = sum / n
	}
	report.Summary = fmt.Sprintf(
		"Offline keyword review: %d of 4 frameworks applicable, overall score %d%%. "+
			"Clause detection is heuristic; run a model-backed analysis for a full assessment.",
		n, report.OverallScore)

	b, err := json.Marshal(&report)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func evaluate(lower string, checks []check) contracts.FrameworkResult {
	res := contracts.FrameworkResult{
		Checklist: make([]contracts.ChecklistItem, 0, len(checks)),
	}
	present := 0
	for _, c := range checks {
		hit := containsAny(lower, c.phrases...)
		item := contracts.ChecklistItem{Requirement: c.requirement, Present: hit}
		if hit {
			present++
			item.Note = "Matching language found"
		} else {
			item.Note = "No matching language found"
			res.Gaps = append(res.Gaps, contracts.Gap{Issue: c.requirement, Remediation: c.remediation})
		}
		res.Checklist = append(res.Checklist, item)
	}
	res.Score = present * 100 / len(checks)
	return res
}

func containsAny(s string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
