// Package utils holds the helpers shared by the task service and the sync
// client: request-scoped user ids, batch hashing, JSON responses, the resty
// client factory, gid generation and JWT handling.
package utils

import "context"

type ctxKey int

const userIDKey ctxKey = iota

// WithUserID returns a copy of ctx that carries the authenticated user id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext reports the user id put into ctx by [WithUserID].
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
