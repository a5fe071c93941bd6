package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// TimeoutConfig represents timeout middleware configuration
type TimeoutConfig struct {
	Duration time.Duration
}

// DefaultTimeoutConfig returns default timeout configuration
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Duration: 30 * time.Second,
	}
}

// timeoutWriter serializes access to the response writer between the handler
// goroutine and the timeout branch. Once the deadline answer is written the
// handler's late writes are discarded.
type timeoutWriter struct {
	gin.ResponseWriter
	mu          sync.Mutex
	timedOut    bool
	spareHeader http.Header
}

func (w *timeoutWriter) Header() http.Header {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		if w.spareHeader == nil {
			w.spareHeader = make(http.Header)
		}
		return w.spareHeader
	}
	return w.ResponseWriter.Header()
}

func (w *timeoutWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *timeoutWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

func (w *timeoutWriter) WriteString(s string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return len(s), nil
	}
	return w.ResponseWriter.WriteString(s)
}

// writeTimeout answers 504 unless the handler already started a response,
// then cuts the handler goroutine off from the writer.
func (w *timeoutWriter) writeTimeout(traceID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.ResponseWriter.Written() {
		payload, _ := json.Marshal(ErrorResponse{
			Code:    http.StatusGatewayTimeout,
			Message: "request timeout",
			TraceID: traceID,
		})
		w.ResponseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.ResponseWriter.WriteHeader(http.StatusGatewayTimeout)
		w.ResponseWriter.Write(payload)
	}
	w.timedOut = true
}

// Timeout bounds every store operation with a caller-supplied deadline. A
// handler that runs past it answers 504; downstream reads surface the
// deadline as a store-unavailable condition rather than guessing a state.
func Timeout(config TimeoutConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), config.Duration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		tw := &timeoutWriter{ResponseWriter: c.Writer}
		c.Writer = tw

		done := make(chan struct{})
		go func() {
			defer close(done)
			c.Next()
		}()

		select {
		case <-done:
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				tw.writeTimeout(c.GetString(ContextRequestID))
			}
		}
	}
}
