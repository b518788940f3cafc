package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// AcquireLease takes the named lease for ttl. It succeeds when the lease is free, expired,
// or already held by holder (which extends it).
func (s *postgresStore) AcquireLease(ctx context.Context, name, holder string, ttl time.Duration) (bool, error) {
	query := `
		INSERT INTO job_leases (name, holder, expires_at)
		VALUES ($1, $2, NOW() + $3 * INTERVAL '1 millisecond')
		ON CONFLICT (name) DO UPDATE SET
			holder = EXCLUDED.holder,
			expires_at = EXCLUDED.expires_at
		WHERE job_leases.expires_at < NOW() OR job_leases.holder = EXCLUDED.holder
		RETURNING holder`

	var got string
	err := s.conn(ctx).QueryRowxContext(ctx, query, name, holder, ttl.Milliseconds()).Scan(&got)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("acquire lease %s: %w", name, err)
	}
	return got == holder, nil
}

func (s *postgresStore) ReleaseLease(ctx context.Context, name, holder string) error {
	_, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM job_leases WHERE name = $1 AND holder = $2`, name, holder)
	if err != nil {
		return fmt.Errorf("release lease %s: %w", name, err)
	}
	return nil
}
