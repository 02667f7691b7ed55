package middleware

import (
	"net/http"
	"runtime/debug"

	"go-hospital-management/pkg/response"

	"github.com/sirupsen/logrus"
)

// Recovery turns a handler panic into a logged 500.
func Recovery(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(logrus.Fields{
						"error":      err,
						"stack":      string(debug.Stack()),
						"method":     r.Method,
						"path":       r.URL.Path,
						"request_id": w.Header().Get(HeaderXRequestID),
					}).Error("Request panic recovered")

					response.Plain(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
