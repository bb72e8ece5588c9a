package domain

import "context"

type CtxKey string

const (
	KeyRequestID CtxKey = "RequestID"
	KeyClientIP  CtxKey = "ClientIP"
	KeyUserAgent CtxKey = "UserAgent"
)

// RequestMeta describes the inbound request for audit logging
type RequestMeta struct {
	RequestID string
	ClientIP  string
	UserAgent string
}

// WithRequestMeta stores request metadata on the context
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	ctx = context.WithValue(ctx, KeyRequestID, meta.RequestID)
	ctx = context.WithValue(ctx, KeyClientIP, meta.ClientIP)
	return context.WithValue(ctx, KeyUserAgent, meta.UserAgent)
}

// RequestMetaFromContext returns whatever request metadata is present
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	var meta RequestMeta
	meta.RequestID, _ = ctx.Value(KeyRequestID).(string)
	meta.ClientIP, _ = ctx.Value(KeyClientIP).(string)
	meta.UserAgent, _ = ctx.Value(KeyUserAgent).(string)
	return meta
}
