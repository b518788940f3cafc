package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/pr-tracker/internal/config"
	"github.com/sevigo/pr-tracker/internal/core"
	"github.com/sevigo/pr-tracker/mocks"
)

const testSecret = "s3cret"

type recordingDispatcher struct {
	mu       sync.Mutex
	requests []core.RefreshRequest
	err      error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, req core.RefreshRequest) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.requests = append(d.requests, req)
	return nil
}

func (d *recordingDispatcher) Stop() {}

type countingSyncer struct{ calls int }

func (s *countingSyncer) TriggerReviewerSync() { s.calls++ }

func signedRequest(t *testing.T, eventType, body string) *http.Request {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(body))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/github", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", eventType)
	req.Header.Set("X-Hub-Signature-256", "sha256="+hex.EncodeToString(mac.Sum(nil)))
	return req
}

const repoJSON = `"repository":{"name":"api","full_name":"acme/api","owner":{"login":"acme"}}`

func TestWebhookHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		eventType  string
		body       string
		repos      []string
		setup      func(store *mocks.MockStore)
		wantStatus int
		wantPRs    []int
		wantSyncs  int
	}{
		{
			name:       "pull request opened",
			eventType:  "pull_request",
			body:       `{"action":"opened","number":7,` + repoJSON + `}`,
			wantStatus: http.StatusAccepted,
			wantPRs:    []int{7},
		},
		{
			name:       "review submitted",
			eventType:  "pull_request_review",
			body:       `{"action":"submitted","pull_request":{"number":8},"review":{"state":"approved"},` + repoJSON + `}`,
			wantStatus: http.StatusAccepted,
			wantPRs:    []int{8},
		},
		{
			name:       "check run with pull requests",
			eventType:  "check_run",
			body:       `{"action":"completed","check_run":{"head_sha":"abc","pull_requests":[{"number":3},{"number":4}]},` + repoJSON + `}`,
			wantStatus: http.StatusAccepted,
			wantPRs:    []int{3, 4},
		},
		{
			name:      "status resolved by head sha",
			eventType: "status",
			body:      `{"sha":"abc","state":"failure",` + repoJSON + `}`,
			setup: func(store *mocks.MockStore) {
				store.EXPECT().FindOpenPullRequestsBySHA(gomock.Any(), "acme/api", "abc").
					Return([]*core.PullRequest{{Number: 11}, {Number: 12}}, nil)
			},
			wantStatus: http.StatusAccepted,
			wantPRs:    []int{11, 12},
		},
		{
			name:      "status lookup failure",
			eventType: "status",
			body:      `{"sha":"abc","state":"failure",` + repoJSON + `}`,
			setup: func(store *mocks.MockStore) {
				store.EXPECT().FindOpenPullRequestsBySHA(gomock.Any(), "acme/api", "abc").
					Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "comment on plain issue is ignored",
			eventType:  "issue_comment",
			body:       `{"action":"created","issue":{"number":3},` + repoJSON + `}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "untracked repository",
			eventType:  "pull_request",
			body:       `{"action":"opened","number":7,` + repoJSON + `}`,
			repos:      []string{"acme/web"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "team membership schedules reviewer sync",
			eventType:  "membership",
			body:       `{"action":"added","scope":"team","organization":{"login":"ACME"},"team":{"slug":"backend-review-group"}}`,
			wantStatus: http.StatusAccepted,
			wantSyncs:  1,
		},
		{
			name:       "membership of another org",
			eventType:  "membership",
			body:       `{"action":"added","organization":{"login":"other"}}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "event without repository",
			eventType:  "pull_request",
			body:       `{"action":"opened","number":7}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown event type",
			eventType:  "nonsense",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockStore(gomock.NewController(t))
			if tt.setup != nil {
				tt.setup(store)
			}
			dispatcher := &recordingDispatcher{}
			syncer := &countingSyncer{}
			cfg := &config.GitHubConfig{WebhookSecret: testSecret, Org: "acme", Repositories: tt.repos}
			h := NewWebhookHandler(cfg, dispatcher, store, syncer, slog.New(slog.DiscardHandler))

			rec := httptest.NewRecorder()
			h.Handle(rec, signedRequest(t, tt.eventType, tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			var numbers []int
			for _, r := range dispatcher.requests {
				assert.Equal(t, "acme", r.Ref.Owner)
				assert.Equal(t, "api", r.Ref.Repo)
				assert.Equal(t, core.TriggerWebhook, r.Trigger)
				numbers = append(numbers, r.Ref.Number)
			}
			assert.Equal(t, tt.wantPRs, numbers)
			assert.Equal(t, tt.wantSyncs, syncer.calls)
		})
	}
}

func TestWebhookHandler_InvalidSignature(t *testing.T) {
	cfg := &config.GitHubConfig{WebhookSecret: "other"}
	h := NewWebhookHandler(cfg, &recordingDispatcher{}, nil, &countingSyncer{}, slog.New(slog.DiscardHandler))

	rec := httptest.NewRecorder()
	h.Handle(rec, signedRequest(t, "pull_request", `{"action":"opened","number":7,`+repoJSON+`}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookHandler_QueueFull(t *testing.T) {
	cfg := &config.GitHubConfig{WebhookSecret: testSecret}
	dispatcher := &recordingDispatcher{err: errors.New("job queue is full")}
	h := NewWebhookHandler(cfg, dispatcher, nil, &countingSyncer{}, slog.New(slog.DiscardHandler))

	rec := httptest.NewRecorder()
	h.Handle(rec, signedRequest(t, "pull_request", `{"action":"synchronize","number":7,`+repoJSON+`}`))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
