// internal/middleware/logging.go

package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// LogMiddleware is an HTTP middleware that logs incoming requests using Logrus.
// Logs the method, path, and duration of each request.
func LogMiddleware(logger *logrus.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path
			method := r.Method

			next.ServeHTTP(w, r)

			logger.WithFields(logrus.Fields{
				"method":   method,
				"path":     path,
				"duration": time.Since(start),
				"remote":   r.RemoteAddr,
			}).Info("HTTP Request")
		})
	}
}

// LogWebSocketConnect logs an accepted action-socket upgrade.
func LogWebSocketConnect(logger *logrus.Logger, remoteAddr, userUUID string) {
	logger.WithFields(logrus.Fields{
		"remote": remoteAddr,
		"user":   userUUID,
	}).Info("WebSocket connected")
}

// LogWebSocketDisconnect logs an action-socket teardown, with the read error
// that ended it when there is one.
func LogWebSocketDisconnect(logger *logrus.Logger, remoteAddr, userUUID string, err error) {
	fields := logrus.Fields{
		"remote": remoteAddr,
		"user":   userUUID,
	}
	if err != nil {
		fields["error"] = err
	}
	logger.WithFields(fields).Info("WebSocket disconnected")
}
