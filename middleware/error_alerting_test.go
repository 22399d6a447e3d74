package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaroniusdersiebte/DBM/logstream"
)

func TestHTTPMiddleware_RecoversPanic(t *testing.T) {
	logs := logstream.New()
	m := NewErrorAlertMiddleware(logs)

	handler := m.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bot/status", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	entries := logs.Entries()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "PANIC")
}

func TestWrapBackgroundTask_RecoversPanic(t *testing.T) {
	logs := logstream.New()
	m := NewErrorAlertMiddleware(logs)

	task := m.WrapBackgroundTask("time trigger announce", func() error {
		panic("nil deref")
	})

	assert.NotPanics(t, func() { _ = task() })
	entries := logs.Entries()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "PANIC")
}

func TestWrapBackgroundTask_ReturnsTaskError(t *testing.T) {
	logs := logstream.New()
	m := NewErrorAlertMiddleware(logs)

	taskErr := errors.New("channel not found")
	task := m.WrapBackgroundTask("time trigger announce", func() error {
		return taskErr
	})

	assert.Equal(t, taskErr, task())
}

func TestWrapBackgroundTask_DeduplicatesRepeatedErrors(t *testing.T) {
	logs := logstream.New()
	m := NewErrorAlertMiddleware(logs)

	task := m.WrapBackgroundTask("time trigger announce", func() error {
		return errors.New("channel not found")
	})

	require.Error(t, task())
	require.Error(t, task())

	// The same error within the cooldown window is alerted once.
	assert.Len(t, logs.Entries(), 1)
}

func TestWrapBackgroundTask_DistinctErrorsBothAlert(t *testing.T) {
	logs := logstream.New()
	m := NewErrorAlertMiddleware(logs)

	calls := 0
	task := m.WrapBackgroundTask("time trigger announce", func() error {
		calls++
		return fmt.Errorf("failure %d", calls)
	})

	_ = task()
	_ = task()

	assert.Len(t, logs.Entries(), 2)
}
