// Package handler provides HTTP handlers for the PR tracker.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/pr-tracker/internal/config"
	"github.com/sevigo/pr-tracker/internal/core"
)

// SHAResolver finds the stored open pull requests whose head is sha.
type SHAResolver interface {
	FindOpenPullRequestsBySHA(ctx context.Context, repo, sha string) ([]*core.PullRequest, error)
}

// ReviewerSyncTrigger schedules a reviewer group sync.
type ReviewerSyncTrigger interface {
	TriggerReviewerSync()
}

// WebhookHandler processes incoming webhooks from GitHub.
type WebhookHandler struct {
	cfg        *config.GitHubConfig
	dispatcher core.JobDispatcher
	resolver   SHAResolver
	syncer     ReviewerSyncTrigger
	logger     *slog.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(cfg *config.GitHubConfig, dispatcher core.JobDispatcher, resolver SHAResolver, syncer ReviewerSyncTrigger, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		cfg:        cfg,
		dispatcher: dispatcher,
		resolver:   resolver,
		syncer:     syncer,
		logger:     logger,
	}
}

// Handle processes GitHub webhook requests.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := github.ValidatePayload(r, []byte(h.cfg.WebhookSecret))
	if err != nil {
		h.logger.Error("invalid webhook payload signature", "error", err)
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	eventType := github.WebHookType(r)
	parsed, err := github.ParseWebHook(eventType, payload)
	if err != nil {
		h.logger.Debug("could not parse webhook", "type", eventType, "error", err)
		http.Error(w, "Could not parse webhook", http.StatusBadRequest)
		return
	}

	event, err := core.EventFromWebhook(parsed)
	if errors.Is(err, core.ErrEventIgnored) {
		h.logger.Debug("ignoring webhook event", "type", eventType)
		_, _ = fmt.Fprint(w, "Event ignored")
		return
	}
	if err != nil {
		h.logger.Warn("malformed webhook event", "type", eventType, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if event.Kind == core.EventTeamMembership {
		h.handleMembership(w, event)
		return
	}
	h.handlePullRequestEvent(r.Context(), w, event)
}

func (h *WebhookHandler) handleMembership(w http.ResponseWriter, event *core.WebhookEvent) {
	if h.cfg.Org != "" && !core.SameLogin(event.Owner, h.cfg.Org) {
		_, _ = fmt.Fprint(w, "Event ignored")
		return
	}
	h.syncer.TriggerReviewerSync()
	h.logger.Info("reviewer group sync scheduled", "action", event.Action)
	w.WriteHeader(http.StatusAccepted)
	_, _ = fmt.Fprint(w, "Reviewer sync scheduled")
}

func (h *WebhookHandler) handlePullRequestEvent(ctx context.Context, w http.ResponseWriter, event *core.WebhookEvent) {
	repo := event.Owner + "/" + event.Repo
	if !h.tracked(repo) {
		h.logger.Debug("ignoring event for untracked repository", "repo", repo)
		_, _ = fmt.Fprint(w, "Repository not tracked")
		return
	}

	requests := event.Requests()
	if len(requests) == 0 && event.HeadSHA != "" {
		prs, err := h.resolver.FindOpenPullRequestsBySHA(ctx, repo, event.HeadSHA)
		if err != nil {
			h.logger.Error("failed to resolve pull requests by sha", "repo", repo, "sha", event.HeadSHA, "error", err)
			http.Error(w, "Failed to resolve pull requests", http.StatusInternalServerError)
			return
		}
		for _, pr := range prs {
			event.Numbers = append(event.Numbers, pr.Number)
		}
		requests = event.Requests()
	}

	for _, req := range requests {
		if err := h.dispatcher.Dispatch(ctx, req); err != nil {
			h.logger.Error("failed to dispatch refresh", "pr", req.Ref.String(), "error", err)
			http.Error(w, "Failed to queue refresh", http.StatusServiceUnavailable)
			return
		}
	}

	h.logger.Info("refresh dispatched", "repo", repo, "event", event.Kind.String(), "action", event.Action, "count", len(requests))
	w.WriteHeader(http.StatusAccepted)
	_, _ = fmt.Fprintf(w, "Queued %d refresh(es)", len(requests))
}

func (h *WebhookHandler) tracked(repo string) bool {
	if len(h.cfg.Repositories) == 0 {
		return true
	}
	return slices.ContainsFunc(h.cfg.Repositories, func(r string) bool { return core.SameLogin(r, repo) })
}
