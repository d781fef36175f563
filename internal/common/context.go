package common

import (
	"context"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRequestID contextKey = "request_id"
	ContextKeyReportID  contextKey = "report_id"
)

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// RequestIDFromContext extracts the request ID from context
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// WithReportID adds a report ID to the context
func WithReportID(ctx context.Context, reportID string) context.Context {
	return context.WithValue(ctx, ContextKeyReportID, reportID)
}

// ReportIDFromContext extracts the report ID from context
func ReportIDFromContext(ctx context.Context) string {
	if reportID, ok := ctx.Value(ContextKeyReportID).(string); ok {
		return reportID
	}
	return ""
}
