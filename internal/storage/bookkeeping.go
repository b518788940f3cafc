package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/sevigo/pr-tracker/internal/core"
)

func (s *postgresStore) LatestReviewerGroup(ctx context.Context) (core.ReviewerGroup, error) {
	var row struct {
		Version int64          `db:"version"`
		Members pq.StringArray `db:"members"`
	}
	err := s.conn(ctx).GetContext(ctx, &row, `SELECT version, members FROM reviewer_groups ORDER BY version DESC LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.ReviewerGroup{}, ErrNotFound
		}
		return core.ReviewerGroup{}, fmt.Errorf("load reviewer group: %w", err)
	}
	return core.NewReviewerGroup(row.Version, row.Members), nil
}

// SaveReviewerGroup stores a new membership snapshot and returns it with its version.
func (s *postgresStore) SaveReviewerGroup(ctx context.Context, team string, members []string) (core.ReviewerGroup, error) {
	normalized := core.NewReviewerGroup(0, members).Members()

	var version int64
	err := s.conn(ctx).QueryRowxContext(ctx,
		`INSERT INTO reviewer_groups (team, members) VALUES ($1, $2) RETURNING version`,
		team, pq.Array(normalized),
	).Scan(&version)
	if err != nil {
		return core.ReviewerGroup{}, fmt.Errorf("save reviewer group %s: %w", team, err)
	}
	return core.NewReviewerGroup(version, normalized), nil
}

func (s *postgresStore) RecordDiscrepancy(ctx context.Context, d *core.Discrepancy) error {
	query := `
		INSERT INTO discrepancies (repository, number, field, stored_value, fresh_value, detected_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := s.conn(ctx).QueryRowxContext(ctx, query,
		d.Repository, d.Number, d.Field, d.StoredValue, d.FreshValue, d.DetectedAt,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("record discrepancy for %s#%d: %w", d.Repository, d.Number, err)
	}
	return nil
}

func (s *postgresStore) ListDiscrepancies(ctx context.Context, limit int) ([]core.Discrepancy, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT id, repository, number, field, stored_value, fresh_value, detected_at
		FROM discrepancies ORDER BY detected_at DESC, id DESC LIMIT $1`

	var out []core.Discrepancy
	if err := s.conn(ctx).SelectContext(ctx, &out, query, limit); err != nil {
		return nil, fmt.Errorf("list discrepancies: %w", err)
	}
	return out, nil
}
