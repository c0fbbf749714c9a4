package faults

import "context"

// Repository defines persistence for analysis faults. Recording is best
// effort: a failed save never affects the batch outcome.
type Repository interface {
	Save(ctx context.Context, f *Fault) error
	Latest(ctx context.Context, limit int) ([]*Fault, error)
}
