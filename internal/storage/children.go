package storage

import (
	"context"
	"fmt"

	"github.com/sevigo/pr-tracker/internal/core"
)

// ReplaceReviews swaps the stored review set for prID. Callers run it inside a transaction.
func (s *postgresStore) ReplaceReviews(ctx context.Context, prID int64, reviews []core.Review) error {
	conn := s.conn(ctx)
	if _, err := conn.ExecContext(ctx, `DELETE FROM reviews WHERE pull_request_id = $1`, prID); err != nil {
		return fmt.Errorf("clear reviews for pr %d: %w", prID, err)
	}

	query := `
		INSERT INTO reviews (pull_request_id, id, author, state, submitted_at, body)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (pull_request_id, id) DO UPDATE SET
			author = EXCLUDED.author,
			state = EXCLUDED.state,
			submitted_at = EXCLUDED.submitted_at,
			body = EXCLUDED.body`
	for _, r := range reviews {
		if _, err := conn.ExecContext(ctx, query, prID, r.ID, r.Author, string(r.State), r.SubmittedAt, r.Body); err != nil {
			return fmt.Errorf("insert review %d for pr %d: %w", r.ID, prID, err)
		}
	}
	return nil
}

func (s *postgresStore) ListReviews(ctx context.Context, prID int64) ([]core.Review, error) {
	query := `SELECT pull_request_id, id, author, state, submitted_at, body
		FROM reviews WHERE pull_request_id = $1
		ORDER BY submitted_at, id`

	var reviews []core.Review
	if err := s.conn(ctx).SelectContext(ctx, &reviews, query, prID); err != nil {
		return nil, fmt.Errorf("list reviews for pr %d: %w", prID, err)
	}
	return reviews, nil
}

// ReplaceChecks stores an already de-duplicated check set for prID.
func (s *postgresStore) ReplaceChecks(ctx context.Context, prID int64, checks []core.CheckResult) error {
	conn := s.conn(ctx)
	if _, err := conn.ExecContext(ctx, `DELETE FROM check_results WHERE pull_request_id = $1`, prID); err != nil {
		return fmt.Errorf("clear checks for pr %d: %w", prID, err)
	}

	query := `
		INSERT INTO check_results (pull_request_id, name, status, required, suite_name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (pull_request_id, suite_name, name) DO UPDATE SET
			status = EXCLUDED.status,
			required = EXCLUDED.required`
	for _, c := range checks {
		if _, err := conn.ExecContext(ctx, query, prID, c.Name, string(c.Status), c.Required, c.SuiteName); err != nil {
			return fmt.Errorf("insert check %q for pr %d: %w", c.Name, prID, err)
		}
	}
	return nil
}

func (s *postgresStore) ListChecks(ctx context.Context, prID int64) ([]core.CheckResult, error) {
	query := `SELECT pull_request_id, name, status, required, suite_name
		FROM check_results WHERE pull_request_id = $1
		ORDER BY suite_name, name`

	var checks []core.CheckResult
	if err := s.conn(ctx).SelectContext(ctx, &checks, query, prID); err != nil {
		return nil, fmt.Errorf("list checks for pr %d: %w", prID, err)
	}
	return checks, nil
}

func (s *postgresStore) ReplaceComments(ctx context.Context, prID int64, comments []core.Comment) error {
	conn := s.conn(ctx)
	if _, err := conn.ExecContext(ctx, `DELETE FROM comments WHERE pull_request_id = $1`, prID); err != nil {
		return fmt.Errorf("clear comments for pr %d: %w", prID, err)
	}

	query := `
		INSERT INTO comments (pull_request_id, id, author, created_at, body)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (pull_request_id, id) DO UPDATE SET
			author = EXCLUDED.author,
			created_at = EXCLUDED.created_at,
			body = EXCLUDED.body`
	for _, c := range comments {
		if _, err := conn.ExecContext(ctx, query, prID, c.ID, c.Author, c.CreatedAt, c.Body); err != nil {
			return fmt.Errorf("insert comment %d for pr %d: %w", c.ID, prID, err)
		}
	}
	return nil
}

func (s *postgresStore) ListComments(ctx context.Context, prID int64) ([]core.Comment, error) {
	query := `SELECT pull_request_id, id, author, created_at, body
		FROM comments WHERE pull_request_id = $1
		ORDER BY created_at, id`

	var comments []core.Comment
	if err := s.conn(ctx).SelectContext(ctx, &comments, query, prID); err != nil {
		return nil, fmt.Errorf("list comments for pr %d: %w", prID, err)
	}
	return comments, nil
}

func (s *postgresStore) ReplaceCommits(ctx context.Context, prID int64, commits []core.Commit) error {
	conn := s.conn(ctx)
	if _, err := conn.ExecContext(ctx, `DELETE FROM commits WHERE pull_request_id = $1`, prID); err != nil {
		return fmt.Errorf("clear commits for pr %d: %w", prID, err)
	}

	query := `
		INSERT INTO commits (pull_request_id, sha, author_login, committer_login, author_name, committed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (pull_request_id, sha) DO NOTHING`
	for _, c := range commits {
		if _, err := conn.ExecContext(ctx, query, prID, c.SHA, c.AuthorLogin, c.CommitterLogin, c.AuthorName, c.CommittedAt); err != nil {
			return fmt.Errorf("insert commit %s for pr %d: %w", c.SHA, prID, err)
		}
	}
	return nil
}

func (s *postgresStore) ListCommits(ctx context.Context, prID int64) ([]core.Commit, error) {
	query := `SELECT pull_request_id, sha, author_login, committer_login, author_name, committed_at
		FROM commits WHERE pull_request_id = $1
		ORDER BY committed_at, sha`

	var commits []core.Commit
	if err := s.conn(ctx).SelectContext(ctx, &commits, query, prID); err != nil {
		return nil, fmt.Errorf("list commits for pr %d: %w", prID, err)
	}
	return commits, nil
}
