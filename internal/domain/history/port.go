package history

import (
	"context"

	"github.com/grmcai/grmc-api/internal/domain/contracts"
)

// Store persists per-contract analysis history. Implementations must keep
// each log bounded to MaxSnapshots, oldest first.
//
// Callers computing a delta must read Previous before calling Record for the
// same run: Record mutates the sequence Previous reads from. That ordering
// is a caller obligation, not enforced here.
type Store interface {
	// Previous returns the most recently recorded snapshot for id, or nil
	// when the contract has no history yet.
	Previous(ctx context.Context, id contracts.ContractID) (*Snapshot, error)

	// Record creates the contract's history on first sight and appends the
	// snapshot, evicting the oldest beyond MaxSnapshots.
	Record(ctx context.Context, id contracts.ContractID, displayName string, snap Snapshot) error

	// History returns the full oldest-first log for id; empty when unknown.
	History(ctx context.Context, id contracts.ContractID) ([]Snapshot, error)

	// All returns the complete identifier -> history mapping.
	All(ctx context.Context) (map[contracts.ContractID]ContractHistory, error)

	// Reset drops all history.
	Reset(ctx context.Context) error
}
