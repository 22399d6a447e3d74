// Package middleware carries the HTTP and handler wrappers shared by the
// control panel server and the gateway event handlers.
package middleware

import (
	"crypto/md5"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/aaroniusdersiebte/DBM/logstream"
)

// ErrorAlertMiddleware recovers panics and surfaces repeated errors on
// the operator log stream, deduplicated so one broken action chain does
// not flood the panel.
type ErrorAlertMiddleware struct {
	logs          *logstream.Stream
	alertedErrors map[string]time.Time // hash -> last alert time
	mutex         sync.Mutex
	alertCooldown time.Duration
}

func NewErrorAlertMiddleware(logs *logstream.Stream) *ErrorAlertMiddleware {
	return &ErrorAlertMiddleware{
		logs:          logs,
		alertedErrors: make(map[string]time.Time),
		alertCooldown: 10 * time.Minute,
	}
}

// HTTPMiddleware wraps HTTP handlers so a panicking request answers 500
// instead of killing the server.
func (m *ErrorAlertMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.recordPanic(fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path), rec)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// WrapBackgroundTask guards a scheduled or long-running task.
func (m *ErrorAlertMiddleware) WrapBackgroundTask(taskName string, task func() error) func() error {
	return func() error {
		defer func() {
			if rec := recover(); rec != nil {
				m.recordPanic(fmt.Sprintf("Background task: %s", taskName), rec)
			}
		}()

		if err := task(); err != nil {
			m.alertOnError(err, fmt.Sprintf("Background task: %s", taskName))
			return err
		}
		return nil
	}
}

// alertOnError pushes the error to the log stream unless the same error
// was already reported within the cooldown window.
func (m *ErrorAlertMiddleware) alertOnError(err error, context string) {
	errorMsg := fmt.Sprintf("%s: %v", context, err)
	hash := fmt.Sprintf("%x", md5.Sum([]byte(errorMsg)))

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if lastAlert, exists := m.alertedErrors[hash]; exists {
		if time.Since(lastAlert) < m.alertCooldown {
			return
		}
	}

	m.logs.Error(context, err.Error())
	m.alertedErrors[hash] = time.Now()
}

func (m *ErrorAlertMiddleware) recordPanic(context string, rec any) {
	errorMsg := fmt.Sprintf("%s: PANIC - %v", context, rec)
	log.Printf("❌ %s\n%s", errorMsg, debug.Stack())
	m.logs.Error(context+" (PANIC)", fmt.Sprintf("%v", rec))
}
