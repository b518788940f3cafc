// Package storage persists pull requests, their children and the bookkeeping tables in Postgres.
package storage

import (
	"context"
	"errors"
	"time"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/jmoiron/sqlx"

	"github.com/sevigo/pr-tracker/internal/core"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStale is returned when a newer fetch of the same pull request has already been stored.
	ErrStale = errors.New("stale write")
)

// TxManager runs fn inside a transaction. Store calls made with the ctx passed to fn join it.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// ListFilter narrows ListOpenPullRequests.
type ListFilter struct {
	Repository string
	Ready      *bool
	Approved   *bool
	Limit      int
}

// Store defines the interface for all database operations.
//
//go:generate mockgen -destination=../../mocks/mock_store.go -package=mocks . Store
type Store interface {
	// UpsertPullRequest writes PR metadata and returns the row id. Derived fields are untouched.
	// ErrStale is returned when the stored row was fetched later than pr.FetchedAt.
	UpsertPullRequest(ctx context.Context, pr *core.PullRequest) (int64, error)
	GetPullRequest(ctx context.Context, repo string, number int) (*core.PullRequest, error)
	GetPullRequestByID(ctx context.Context, id int64) (*core.PullRequest, error)
	// LockPullRequest reads the row with SELECT ... FOR UPDATE. It must run inside a transaction.
	LockPullRequest(ctx context.Context, repo string, number int) (*core.PullRequest, error)
	ListOpenPullRequests(ctx context.Context, filter ListFilter) ([]*core.PullRequest, error)
	FindOpenPullRequestsBySHA(ctx context.Context, repo, sha string) ([]*core.PullRequest, error)
	SampleForVerification(ctx context.Context, limit int) ([]*core.PullRequest, error)
	DeletePullRequest(ctx context.Context, repo string, number int) error

	ReplaceReviews(ctx context.Context, prID int64, reviews []core.Review) error
	ListReviews(ctx context.Context, prID int64) ([]core.Review, error)
	ReplaceChecks(ctx context.Context, prID int64, checks []core.CheckResult) error
	ListChecks(ctx context.Context, prID int64) ([]core.CheckResult, error)
	ReplaceComments(ctx context.Context, prID int64, comments []core.Comment) error
	ListComments(ctx context.Context, prID int64) ([]core.Comment, error)
	ReplaceCommits(ctx context.Context, prID int64, commits []core.Commit) error
	ListCommits(ctx context.Context, prID int64) ([]core.Commit, error)

	SaveDerivedState(ctx context.Context, prID int64, state core.DerivedState, groupVersion int64) error
	MarkVerified(ctx context.Context, prID int64, at time.Time) error

	AcquireLease(ctx context.Context, name, holder string, ttl time.Duration) (bool, error)
	ReleaseLease(ctx context.Context, name, holder string) error

	// LatestReviewerGroup returns ErrNotFound before the first sync.
	LatestReviewerGroup(ctx context.Context) (core.ReviewerGroup, error)
	SaveReviewerGroup(ctx context.Context, team string, members []string) (core.ReviewerGroup, error)

	RecordDiscrepancy(ctx context.Context, d *core.Discrepancy) error
	ListDiscrepancies(ctx context.Context, limit int) ([]core.Discrepancy, error)
}

type postgresStore struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

// NewStore creates a new Store. Every query runs in the transaction carried by ctx, if any.
func NewStore(db *sqlx.DB, getter *trmsqlx.CtxGetter) Store {
	if getter == nil {
		getter = trmsqlx.DefaultCtxGetter
	}
	return &postgresStore{db: db, getter: getter}
}

func (s *postgresStore) conn(ctx context.Context) trmsqlx.Tr {
	return s.getter.DefaultTrOrDB(ctx, s.db)
}
