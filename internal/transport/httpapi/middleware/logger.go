package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kislikjeka/bookkeeper/pkg/logger"
)

// errCapture keeps the body of 4xx/5xx responses so the access log can show
// the error message
type errCapture struct {
	chimiddleware.WrapResponseWriter
	buf        bytes.Buffer
	statusCode int
}

func (e *errCapture) WriteHeader(code int) {
	e.statusCode = code
	e.WrapResponseWriter.WriteHeader(code)
}

func (e *errCapture) Write(b []byte) (int, error) {
	if e.statusCode >= 400 {
		e.buf.Write(b)
	}
	return e.WrapResponseWriter.Write(b)
}

// extractErrorMessage pulls the "error" field from a JSON response body
func extractErrorMessage(body []byte) string {
	var obj struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
		Kind   string `json:"kind"`
	}
	if json.Unmarshal(body, &obj) != nil {
		return ""
	}
	switch {
	case obj.Error != "":
		return obj.Error
	case obj.Kind != "" && obj.Detail != "":
		return obj.Kind + ": " + obj.Detail
	default:
		return obj.Kind
	}
}

// accessEntry is filled in by inner middleware. The auth middleware runs
// after the logger, so the owner is recorded here rather than read from the
// outer request context.
type accessEntry struct {
	ownerID string
}

type accessEntryKey struct{}

func recordOwner(ctx context.Context, ownerID string) {
	if e, ok := ctx.Value(accessEntryKey{}).(*accessEntry); ok {
		e.ownerID = ownerID
	}
}

// Logger returns a request logging middleware
func Logger(log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ec := &errCapture{WrapResponseWriter: ww}
			start := time.Now()
			entry := &accessEntry{}

			ctx := context.WithValue(r.Context(), accessEntryKey{}, entry)
			reqID := chimiddleware.GetReqID(ctx)
			if reqID != "" {
				ctx = context.WithValue(ctx, logger.RequestIDKey, reqID)
			}
			r = r.WithContext(ctx)

			defer func() {
				status := ww.Status()
				attrs := []any{
					"method", r.Method,
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"status", status,
					"bytes", ww.BytesWritten(),
					"duration_ms", time.Since(start).Milliseconds(),
				}
				if reqID != "" {
					attrs = append(attrs, "request_id", reqID)
				}
				if entry.ownerID != "" {
					attrs = append(attrs, "owner_id", entry.ownerID)
				}

				switch {
				case status >= 500:
					if msg := extractErrorMessage(ec.buf.Bytes()); msg != "" {
						attrs = append(attrs, "error", msg)
					}
					log.Error("HTTP request", attrs...)
				case status >= 400:
					if msg := extractErrorMessage(ec.buf.Bytes()); msg != "" {
						attrs = append(attrs, "error", msg)
					}
					log.Warn("HTTP request", attrs...)
				default:
					log.Info("HTTP request", attrs...)
				}
			}()

			next.ServeHTTP(ec, r)
		}
		return http.HandlerFunc(fn)
	}
}
