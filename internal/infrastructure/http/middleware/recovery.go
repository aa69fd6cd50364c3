package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/http/response"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/logger"
)

// NewRecoveryMiddleware turns a handler panic into a 500 JSON error. When the
// handler already started the response only the log line is written.
// http.ErrAbortHandler is passed through so net/http can drop the connection.
func NewRecoveryMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tw := &startTrackingWriter{ResponseWriter: w}

			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if err, ok := recovered.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(recovered)
				}

				log.WithCorrelationID(RequestIDFromContext(r.Context())).Error("Panic recovered",
					"panic", fmt.Sprint(recovered),
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
					"response_started", tw.started,
				)

				if tw.started {
					return
				}
				response.WriteError(w, http.StatusInternalServerError, response.StatusInternalError, "Internal server error")
			}()

			next.ServeHTTP(tw, r)
		})
	}
}

type startTrackingWriter struct {
	http.ResponseWriter
	started bool
}

func (w *startTrackingWriter) WriteHeader(statusCode int) {
	w.started = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *startTrackingWriter) Write(b []byte) (int, error) {
	w.started = true
	return w.ResponseWriter.Write(b)
}
