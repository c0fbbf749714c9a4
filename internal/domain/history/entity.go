package history

import (
	"time"

	"github.com/grmcai/grmc-api/internal/domain/contracts"
)

// MaxSnapshots bounds the per-contract log; the oldest entry is evicted on
// overflow.
const MaxSnapshots = 10

// FrameworkScore is one framework's slot in a snapshot. Score is absent
// exactly when the framework was not applicable to the contract.
type FrameworkScore struct {
	Score      *int `json:"score,omitempty"`
	Applicable bool `json:"applicable"`
}

// Snapshot records the outcome of one analysis run for one contract
// identity. Immutable once created.
type Snapshot struct {
	Date         time.Time                               `json:"date"`
	OverallScore int                                     `json:"overallScore"`
	Scores       map[contracts.FrameworkKey]FrameworkScore `json:"scores"`
}

// SnapshotOf builds a snapshot from a parsed verdict. Inapplicable
// frameworks get no score.
func SnapshotOf(r *contracts.Report, at time.Time) Snapshot {
	scores := make(map[contracts.FrameworkKey]FrameworkScore, len(contracts.FrameworkKeys))
	for _, key := range contracts.FrameworkKeys {
		fw := r.Framework(key)
		fs := FrameworkScore{Applicable: fw.Applicable}
		if fw.Applicable {
			score := fw.Score
			fs.Score = &score
		}
		scores[key] = fs
	}
	return Snapshot{Date: at, OverallScore: r.OverallScore, Scores: scores}
}

// ContractHistory is the bounded, oldest-first log for one contract identity.
type ContractHistory struct {
	FileName string     `json:"fileName"`
	Analyses []Snapshot `json:"analyses"`
}

// Append adds a snapshot, evicting from the front when the log exceeds
// MaxSnapshots.
func (h *ContractHistory) Append(s Snapshot) {
	h.Analyses = append(h.Analyses, s)
	if n := len(h.Analyses); n > MaxSnapshots {
		h.Analyses = h.Analyses[n-MaxSnapshots:]
	}
}
