// Package cache keeps the last known failing-check detail per pull request so the
// full-approval rule can tell a lone self-referential gate failure from a real one.
package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/sevigo/pr-tracker/internal/config"
	"github.com/sevigo/pr-tracker/internal/core"
)

// FailingChecks stores failing-check snapshots keyed by pull request.
type FailingChecks interface {
	// Get returns the snapshot and whether one was present.
	Get(ref core.PRRef) ([]core.CheckResult, bool, error)
	Set(ref core.PRRef, failing []core.CheckResult) error
	Delete(ref core.PRRef) error
}

// New builds the backend selected in cfg.
func New(cfg config.CacheConfig, logger *slog.Logger) (FailingChecks, error) {
	switch cfg.Backend {
	case "redis":
		logger.Info("using redis failing-check cache")
		return NewRedisCache(cfg.RedisURL, cfg.FailingChecksTTL)
	case "", "memory":
		logger.Info("using in-memory failing-check cache")
		return NewMemoryCache(cfg.FailingChecksTTL), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.Backend)
	}
}

func key(ref core.PRRef) string {
	return "failing:" + ref.String()
}

func encode(failing []core.CheckResult) ([]byte, error) {
	if failing == nil {
		failing = []core.CheckResult{}
	}
	return json.Marshal(failing)
}

func decode(data []byte) ([]core.CheckResult, error) {
	var out []core.CheckResult
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode failing checks: %w", err)
	}
	if out == nil {
		out = []core.CheckResult{}
	}
	return out, nil
}

func clone(in []core.CheckResult) []core.CheckResult {
	if in == nil {
		return []core.CheckResult{}
	}
	return slices.Clone(in)
}
