package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/grmcai/grmc-api/internal/domain/contracts"
	"github.com/grmcai/grmc-api/internal/domain/history"
)

// HistoryRepository is the Postgres flavor of the shared history store.
type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Previous(ctx context.Context, id contracts.ContractID) (*history.Snapshot, error) {
	const q = `
SELECT recorded_at, overall_score, scores_json
FROM contract_history
WHERE contract_id=$1
ORDER BY recorded_at DESC, id DESC
LIMIT 1;`
	row := r.db.QueryRowContext(ctx, q, id)
	snap, err := scanSnapshot(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *HistoryRepository) Record(ctx context.Context, id contracts.ContractID, displayName string, snap history.Snapshot) error {
	scores, err := json.Marshal(snap.Scores)
	if err != nil {
		return err
	}
	name := displayName
	if strings.TrimSpace(name) == "" {
		name = "-"
	}
	recorded := snap.Date
	if recorded.IsZero() {
		recorded = time.Now()
	}

	const ins = `
INSERT INTO contract_history
  (contract_id, file_name, recorded_at, overall_score, scores_json)
VALUES ($1,$2,$3,$4,$5);`
	if _, err := r.db.ExecContext(ctx, ins, id, name, recorded, snap.OverallScore, string(scores)); err != nil {
		return err
	}

	const prune = `
DELETE FROM contract_history
WHERE contract_id=$1 AND id NOT IN (
  SELECT id FROM contract_history
  WHERE contract_id=$1
  ORDER BY recorded_at DESC, id DESC
  LIMIT $2
);`
	_, err = r.db.ExecContext(ctx, prune, id, history.MaxSnapshots)
	return err
}

func (r *HistoryRepository) History(ctx context.Context, id contracts.ContractID) ([]history.Snapshot, error) {
	const q = `
SELECT recorded_at, overall_score, scores_json
FROM contract_history
WHERE contract_id=$1
ORDER BY recorded_at ASC, id ASC;`
	rows, err := r.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []history.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *snap)
	}
	return out, rows.Err()
}

func (r *HistoryRepository) All(ctx context.Context) (map[contracts.ContractID]history.ContractHistory, error) {
	const q = `
SELECT contract_id, file_name, recorded_at, overall_score, scores_json
FROM contract_history
ORDER BY contract_id ASC, recorded_at ASC, id ASC;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[contracts.ContractID]history.ContractHistory{}
	for rows.Next() {
		var id contracts.ContractID
		var name string
		var recorded time.Time
		var overall int
		var scores string
		if err := rows.Scan(&id, &name, &recorded, &overall, &scores); err != nil {
			return nil, err
		}
		snap := history.Snapshot{Date: recorded, OverallScore: overall}
		if err := json.Unmarshal([]byte(scores), &snap.Scores); err != nil {
			return nil, err
		}
		h := out[id]
		h.FileName = name
		h.Analyses = append(h.Analyses, snap)
		out[id] = h
	}
	return out, rows.Err()
}

func (r *HistoryRepository) Reset(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM contract_history;`)
	return err
}

func scanSnapshot(scan func(dest ...any) error) (*history.Snapshot, error) {
	var recorded time.Time
	var overall int
	var scores string
	if err := scan(&recorded, &overall, &scores); err != nil {
		return nil, err
	}
	snap := history.Snapshot{Date: recorded, OverallScore: overall}
	if err := json.Unmarshal([]byte(scores), &snap.Scores); err != nil {
		return nil, err
	}
	return &snap, nil
}
