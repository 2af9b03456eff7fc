package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"sixsigma/domain/core"
	"sixsigma/domain/quality"
)

// snapshotRow is the storage shape of an analysis snapshot: identity
// columns for querying, the full result as a JSONB payload.
type snapshotRow struct {
	ID         string    `db:"id"`
	Dataset    string    `db:"dataset"`
	ColumnName string    `db:"column_name"`
	CreatedAt  time.Time `db:"created_at"`
	Payload    []byte    `db:"payload"`
}

// AnalysisRepository persists analysis snapshots in PostgreSQL
type AnalysisRepository struct {
	db *sqlx.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *sqlx.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save inserts a snapshot. Snapshots are immutable; saving the same ID
// twice is a caller bug and surfaces as a constraint error.
func (r *AnalysisRepository) Save(ctx context.Context, snapshot *quality.AnalysisSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO analysis_snapshots (id, dataset, column_name, created_at, payload)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = r.db.ExecContext(ctx, query,
		snapshot.ID.String(),
		snapshot.Dataset,
		snapshot.Column,
		snapshot.CreatedAt,
		payload,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis snapshot: %w", err)
	}
	return nil
}

// Get loads one snapshot by ID
func (r *AnalysisRepository) Get(ctx context.Context, id core.SnapshotID) (*quality.AnalysisSnapshot, error) {
	var row snapshotRow
	query := `SELECT id, dataset, column_name, created_at, payload FROM analysis_snapshots WHERE id = $1`

	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load analysis snapshot: %w", err)
	}

	return unmarshalSnapshot(row)
}

// List returns the most recent snapshots, optionally filtered by dataset
func (r *AnalysisRepository) List(ctx context.Context, dataset string, limit int) ([]*quality.AnalysisSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []snapshotRow
	var err error
	if dataset != "" {
		query := `
			SELECT id, dataset, column_name, created_at, payload
			FROM analysis_snapshots WHERE dataset = $1
			ORDER BY created_at DESC LIMIT $2`
		err = r.db.SelectContext(ctx, &rows, query, dataset, limit)
	} else {
		query := `
			SELECT id, dataset, column_name, created_at, payload
			FROM analysis_snapshots
			ORDER BY created_at DESC LIMIT $1`
		err = r.db.SelectContext(ctx, &rows, query, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis snapshots: %w", err)
	}

	snapshots := make([]*quality.AnalysisSnapshot, 0, len(rows))
	for _, row := range rows {
		snapshot, err := unmarshalSnapshot(row)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

// Delete removes one snapshot by ID
func (r *AnalysisRepository) Delete(ctx context.Context, id core.SnapshotID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM analysis_snapshots WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete analysis snapshot: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return core.ErrSnapshotNotFound
	}
	return nil
}

func unmarshalSnapshot(row snapshotRow) (*quality.AnalysisSnapshot, error) {
	var snapshot quality.AnalysisSnapshot
	if err := json.Unmarshal(row.Payload, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot %s: %w", row.ID, err)
	}
	return &snapshot, nil
}
