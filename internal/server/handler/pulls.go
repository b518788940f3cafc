package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/sevigo/pr-tracker/internal/core"
	"github.com/sevigo/pr-tracker/internal/storage"
)

const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// PullRequestReader is the read side of the store used by the dashboard API.
type PullRequestReader interface {
	GetPullRequest(ctx context.Context, repo string, number int) (*core.PullRequest, error)
	ListOpenPullRequests(ctx context.Context, filter storage.ListFilter) ([]*core.PullRequest, error)
	ListReviews(ctx context.Context, prID int64) ([]core.Review, error)
	ListChecks(ctx context.Context, prID int64) ([]core.CheckResult, error)
	ListDiscrepancies(ctx context.Context, limit int) ([]core.Discrepancy, error)
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PullRequestsResponse struct {
	PullRequests []*core.PullRequest `json:"pull_requests"`
}

type PullRequestDetailResponse struct {
	PullRequest *core.PullRequest  `json:"pull_request"`
	Reviews     []core.Review      `json:"reviews"`
	Checks      []core.CheckResult `json:"checks"`
}

type DiscrepanciesResponse struct {
	Discrepancies []core.Discrepancy `json:"discrepancies"`
}

// PullsHandler serves the last persisted pull request state. It never calls GitHub.
type PullsHandler struct {
	store  PullRequestReader
	logger *slog.Logger
}

func NewPullsHandler(store PullRequestReader, logger *slog.Logger) *PullsHandler {
	return &PullsHandler{store: store, logger: logger}
}

// List handles GET /pulls?repo=&ready=&approved=&limit=.
func (h *PullsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := storage.ListFilter{Repository: q.Get("repo")}

	var err error
	if filter.Ready, err = optionalBool(q.Get("ready")); err != nil {
		h.badRequest(w, r, "ready must be a boolean")
		return
	}
	if filter.Approved, err = optionalBool(q.Get("approved")); err != nil {
		h.badRequest(w, r, "approved must be a boolean")
		return
	}
	if filter.Limit, err = optionalInt(q.Get("limit")); err != nil {
		h.badRequest(w, r, "limit must be a non-negative integer")
		return
	}

	prs, err := h.store.ListOpenPullRequests(r.Context(), filter)
	if err != nil {
		h.internalError(w, r, "failed to list pull requests", err)
		return
	}
	if prs == nil {
		prs = []*core.PullRequest{}
	}
	render.JSON(w, r, PullRequestsResponse{PullRequests: prs})
}

// Get handles GET /pulls/{owner}/{repo}/{number}.
func (h *PullsHandler) Get(w http.ResponseWriter, r *http.Request) {
	repo := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "repo")
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil || number <= 0 {
		h.badRequest(w, r, "number must be a positive integer")
		return
	}

	ctx := r.Context()
	pr, err := h.store.GetPullRequest(ctx, repo, number)
	if errors.Is(err, storage.ErrNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: ErrorDetail{Code: ErrCodeNotFound, Message: "pull request not found"}})
		return
	}
	if err != nil {
		h.internalError(w, r, "failed to load pull request", err)
		return
	}

	reviews, err := h.store.ListReviews(ctx, pr.ID)
	if err != nil {
		h.internalError(w, r, "failed to load reviews", err)
		return
	}
	checks, err := h.store.ListChecks(ctx, pr.ID)
	if err != nil {
		h.internalError(w, r, "failed to load checks", err)
		return
	}
	render.JSON(w, r, PullRequestDetailResponse{PullRequest: pr, Reviews: reviews, Checks: checks})
}

// Discrepancies handles GET /discrepancies?limit=.
func (h *PullsHandler) Discrepancies(w http.ResponseWriter, r *http.Request) {
	limit, err := optionalInt(r.URL.Query().Get("limit"))
	if err != nil {
		h.badRequest(w, r, "limit must be a non-negative integer")
		return
	}
	list, err := h.store.ListDiscrepancies(r.Context(), limit)
	if err != nil {
		h.internalError(w, r, "failed to list discrepancies", err)
		return
	}
	if list == nil {
		list = []core.Discrepancy{}
	}
	render.JSON(w, r, DiscrepanciesResponse{Discrepancies: list})
}

func (h *PullsHandler) badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, ErrorResponse{Error: ErrorDetail{Code: ErrCodeBadRequest, Message: msg}})
}

func (h *PullsHandler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg, "error", err, "request_id", middleware.GetReqID(r.Context()))
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, ErrorResponse{Error: ErrorDetail{Code: ErrCodeInternal, Message: msg}})
}

func optionalBool(s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("invalid integer")
	}
	return n, nil
}
