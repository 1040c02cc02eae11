// Package apiclient provides the shared HTTP client used by tooling that
// talks to the API, most notably the load simulator. Idempotent GETs are
// retried on server errors with a linear backoff; writes are never
// retried so a flaky network cannot double-post.
package apiclient

import (
	"net/http"
	"time"

	"resty.dev/v3"
)

const (
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries = 2

	// retryBackoff is the base wait; attempt n waits n * retryBackoff.
	retryBackoff = 500 * time.Millisecond

	requestTimeout = 10 * time.Second
)

// New builds a client for the given API base URL.
func New(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetRetryCount(MaxRetries).
		SetRetryStrategy(linearBackoff).
		AddRetryConditions(ShouldRetry)
}

// ShouldRetry reports whether a response is worth retrying: only GET
// requests, and only on transport errors or 5xx responses. 4xx means the
// request itself is wrong and will not get better.
func ShouldRetry(res *resty.Response, err error) bool {
	if res == nil || res.Request == nil || res.Request.Method != http.MethodGet {
		return false
	}
	if err != nil {
		return true
	}
	return res.StatusCode() >= http.StatusInternalServerError
}

func linearBackoff(res *resty.Response, _ error) (time.Duration, error) {
	attempt := 1
	if res != nil && res.Request != nil && res.Request.Attempt > 0 {
		attempt = res.Request.Attempt
	}
	return time.Duration(attempt) * retryBackoff, nil
}
