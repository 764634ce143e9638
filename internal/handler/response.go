package handler

import (
	"context"
	"net/http"
	"time"
)

// ResponseHelper builds request contexts and the small response payloads the
// handlers share.
type ResponseHelper struct{}

// NewResponseHelper creates a new ResponseHelper instance
func NewResponseHelper() *ResponseHelper {
	return &ResponseHelper{}
}

// ContextKey type for context keys to avoid collisions
type ContextKey string

const requestIDKey ContextKey = "request_id"

// CreateRequestContext derives a per-request context with the given timeout,
// carrying the caller-supplied request ID when one arrives in X-Request-ID.
func (rh *ResponseHelper) CreateRequestContext(r *http.Request, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)

	if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
		ctx = context.WithValue(ctx, requestIDKey, requestID)
	}

	return ctx, cancel
}

// CreateListResponseData wraps a collection with its count for list endpoints.
func (rh *ResponseHelper) CreateListResponseData(key string, items interface{}, count int) map[string]interface{} {
	return map[string]interface{}{
		key:     items,
		"count": count,
	}
}

// CreateIDSuccessData carries just the affected entity's ID.
func (rh *ResponseHelper) CreateIDSuccessData(id string) map[string]interface{} {
	data := make(map[string]interface{})
	if id != "" {
		data["id"] = id
	}
	return data
}

// CreateHealthCheckData creates health check response data
func (rh *ResponseHelper) CreateHealthCheckData() map[string]interface{} {
	return map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"service":   "asset-management-api",
		"status":    "healthy",
	}
}
