package github

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v73/github"
)

var (
	// ErrNotFound means the resource no longer exists or is not visible to the installation.
	ErrNotFound = errors.New("github: not found")
	// ErrRateLimited means the request was rejected by a primary or secondary rate limit.
	ErrRateLimited = errors.New("github: rate limited")
)

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
