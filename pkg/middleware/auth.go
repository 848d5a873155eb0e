package middleware

import "context"

// authContextKey is an unexported type for context keys to avoid collisions.
type authContextKey string

const userIDKey authContextKey = "user_id"

// ContextWithUserID stores the authenticated user ID in the context. Auth
// middleware in the HTTP layer calls this after validating credentials.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID, or "" if the request
// is anonymous.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
