package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/grmcai/grmc-api/internal/domain/faults"
)

type FaultRepository struct {
	db *sql.DB
}

func NewFaultRepository(db *sql.DB) *FaultRepository { return &FaultRepository{db: db} }

// Save inserts a fault record
func (r *FaultRepository) Save(ctx context.Context, f *domain.Fault) error {
	const q = `
INSERT INTO analysis_faults
  (contract_id, label, stage, reason, created_at)
VALUES (?,?,?,?,?);`
	contractID := dashIfEmpty(f.ContractID)
	label := dashIfEmpty(f.Label)
	stage := dashIfEmpty(string(f.Stage))
	reason := f.Reason
	if strings.TrimSpace(reason) == "" {
		reason = "-"
	}
	created := f.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q, contractID, label, stage, reason, created)
	return err
}

// Latest returns the most recent fault records, newest first
func (r *FaultRepository) Latest(ctx context.Context, limit int) ([]*domain.Fault, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, contract_id, label, stage, reason, created_at
FROM analysis_faults
ORDER BY created_at DESC, id DESC
LIMIT ?;`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Fault
	for rows.Next() {
		var f domain.Fault
		var created time.Time
		if err := rows.Scan(&f.ID, &f.ContractID, &f.Label, &f.Stage, &f.Reason, &created); err != nil {
			return nil, err
		}
		f.CreatedAt = created
		out = append(out, &f)
	}
	return out, rows.Err()
}

func dashIfEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
