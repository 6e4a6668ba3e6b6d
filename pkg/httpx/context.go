package httpx

import "context"

type ctxKey string

const (
	// CtxKeyUserID holds the authenticated principal's ID (string).
	CtxKeyUserID ctxKey = "user_id"
	// CtxKeyRole holds the authenticated principal's role (string).
	CtxKeyRole ctxKey = "role"
)

// UserIDFromContext returns the authenticated principal's ID, or "" when
// the request is unauthenticated.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
