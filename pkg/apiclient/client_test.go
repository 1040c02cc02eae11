package apiclient

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"resty.dev/v3"
)

func fakeResponse(method string, status int) *resty.Response {
	return &resty.Response{
		Request:     &resty.Request{Method: method},
		RawResponse: &http.Response{StatusCode: status},
	}
}

func TestShouldRetry(t *testing.T) {
	// 5xx on GET retries.
	assert.True(t, ShouldRetry(fakeResponse(http.MethodGet, http.StatusBadGateway), nil))
	assert.True(t, ShouldRetry(fakeResponse(http.MethodGet, http.StatusInternalServerError), nil))

	// 4xx never retries.
	assert.False(t, ShouldRetry(fakeResponse(http.MethodGet, http.StatusNotFound), nil))
	assert.False(t, ShouldRetry(fakeResponse(http.MethodGet, http.StatusTooManyRequests), nil))

	// Writes never retry, even on 5xx.
	assert.False(t, ShouldRetry(fakeResponse(http.MethodPost, http.StatusBadGateway), nil))
	assert.False(t, ShouldRetry(fakeResponse(http.MethodPut, http.StatusInternalServerError), nil))
}

func TestGetRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL)
	defer client.Close()

	res, err := client.R().Get("/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode())
	assert.Equal(t, int32(3), calls.Load())
}

func TestPostIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(srv.URL)
	defer client.Close()

	res, err := client.R().Post("/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, res.StatusCode())
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL)
	defer client.Close()

	res, err := client.R().Get("/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode())
	// Initial attempt plus MaxRetries.
	assert.Equal(t, int32(1+MaxRetries), calls.Load())
}
