package faults

import "time"

// Stage of the pipeline where an item failed
type Stage string

const (
	StageExtract Stage = "extract"
	StageAnalyze Stage = "analyze"
	StageParse   Stage = "parse"
)

// Fault represents a persisted per-document analysis failure entry. Only the
// label and failure reason are kept, never contract text.
type Fault struct {
	ID         int64     `json:"id"`
	ContractID string    `json:"contract_id"`
	Label      string    `json:"label,omitempty"`
	Stage      Stage     `json:"stage"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}
