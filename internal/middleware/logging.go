package middleware

import (
	"log"
	"net/http"
	"time"
)

type clientIPKeyType struct{}

var clientIPKey clientIPKeyType

// LoggingMiddleware writes one access-log line per request, with the resolved
// client IP and flags for rate-limit and timeout rejections.
type LoggingMiddleware struct {
	logger *log.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(logger *log.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// LogRequests wraps a handler with access logging.
func (lm *LoggingMiddleware) LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Resolved by the TrustedProxy middleware when it runs first
		clientIP, _ := r.Context().Value(clientIPKey).(string)
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		lm.logger.Printf("[%s] %s %s %d %v - IP: %s, User-Agent: %s",
			r.Method, r.RequestURI, r.Proto, recorder.status, time.Since(start),
			clientIP, r.UserAgent())

		switch recorder.status {
		case http.StatusTooManyRequests:
			lm.logger.Printf("SECURITY: Rate limit exceeded for IP: %s", clientIP)
		case http.StatusRequestTimeout:
			lm.logger.Printf("SECURITY: Request timeout for IP: %s", clientIP)
		}
	})
}
