package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/internship-faqbot/internal/infra/config"
)

const retryBodyLimit = 1 << 20 // 1 MiB

var errBodyTooLarge = errors.New("request body exceeds retry limit")

type retryReplayKey struct{}

// isRetryReplay reports whether the request is a second or later attempt.
func isRetryReplay(ctx context.Context) bool {
	replay, _ := ctx.Value(retryReplayKey{}).(bool)
	return replay
}

// withRetry replays POST requests whose handler answered with a 5xx, which
// covers transient Postgres or Valkey failures behind the FAQ lookup.
func withRetry(handler http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return handler
	}
	exclusions := make(map[string]struct{}, len(cfg.Exclude))
	for _, path := range cfg.Exclude {
		exclusions[path] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, skip := exclusions[r.URL.Path]; skip || r.Method != http.MethodPost {
			handler.ServeHTTP(w, r)
			return
		}
		body, err := readRequestBody(r)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, errBodyTooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			http.Error(w, err.Error(), status)
			return
		}

		var buffered *bufferedResponse
		for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
			if attempt > 1 && !sleepContext(r, cfg.BaseBackoff<<(attempt-2)) {
				break
			}

			buffered = newBufferedResponse()
			ctx := r.Context()
			if attempt > 1 {
				ctx = context.WithValue(ctx, retryReplayKey{}, true)
			}
			replay := r.Clone(ctx)
			replay.Body = io.NopCloser(bytes.NewReader(body))
			replay.ContentLength = int64(len(body))
			handler.ServeHTTP(buffered, replay)

			if buffered.status < http.StatusInternalServerError {
				break
			}
			if attempt < cfg.MaxAttempts {
				logger.Warn("transient failure, retrying request", "path", r.URL.Path, "status", buffered.status, "attempt", attempt)
			}
		}
		buffered.flushTo(w)
	})
}

func sleepContext(r *http.Request, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-r.Context().Done():
		return false
	}
}

func readRequestBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, retryBodyLimit+1))
	if err != nil {
		return nil, err
	}
	if len(data) > retryBodyLimit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

// bufferedResponse holds a complete response until the retry loop settles.
type bufferedResponse struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header), status: http.StatusOK}
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) { b.status = status }

func (b *bufferedResponse) Write(p []byte) (int, error) { return b.body.Write(p) }

func (b *bufferedResponse) flushTo(w http.ResponseWriter) {
	for key, values := range b.header {
		w.Header()[key] = append([]string(nil), values...)
	}
	w.WriteHeader(b.status)
	_, _ = w.Write(b.body.Bytes())
}
