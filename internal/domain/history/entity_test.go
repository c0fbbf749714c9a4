package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grmcai/grmc-api/internal/domain/contracts"
)

func TestAppendEvictsOldest(t *testing.T) {
	var h ContractHistory
	for i := 0; i < MaxSnapshots+1; i++ {
		h.Append(Snapshot{OverallScore: i})
	}

	require.Len(t, h.Analyses, MaxSnapshots)

	// The very first snapshot is gone; order stays oldest-first.
	assert.Equal(t, 1, h.Analyses[0].OverallScore)
	assert.Equal(t, MaxSnapshots, h.Analyses[MaxSnapshots-1].OverallScore)
}

func TestAppendUnderLimit(t *testing.T) {
	var h ContractHistory
	h.Append(Snapshot{OverallScore: 50})
	h.Append(Snapshot{OverallScore: 60})

	require.Len(t, h.Analyses, 2)
	assert.Equal(t, 50, h.Analyses[0].OverallScore)
	assert.Equal(t, 60, h.Analyses[1].OverallScore)
}

func TestSnapshotOf(t *testing.T) {
	r := &contracts.Report{
		OverallScore: 70,
		GDPR:         contracts.FrameworkResult{Score: 85, Applicable: true},
		SOC2:         contracts.FrameworkResult{Score: 55, Applicable: true},
		CCPA:         contracts.FrameworkResult{Score: 40, Applicable: false},
		HIPAA:        contracts.FrameworkResult{Score: 0, Applicable: false},
	}
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	snap := SnapshotOf(r, at)

	assert.Equal(t, at, snap.Date)
	assert.Equal(t, 70, snap.OverallScore)

	gdpr := snap.Scores[contracts.FrameworkGDPR]
	require.NotNil(t, gdpr.Score)
	assert.True(t, gdpr.Applicable)
	assert.Equal(t, 85, *gdpr.Score)

	// An inapplicable framework keeps no score, whatever the raw number was.
	ccpa := snap.Scores[contracts.FrameworkCCPA]
	assert.False(t, ccpa.Applicable)
	assert.Nil(t, ccpa.Score)
}
