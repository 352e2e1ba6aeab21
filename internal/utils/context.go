// Package utils provides general-purpose helpers shared by the server and
// the client: context keys, HMAC digests, password hashing, JWT handling,
// JSON responses, UUIDs and the resty HTTP client.
package utils

import (
	"context"
)

// contextKey is a private type for context keys, so keys never collide with
// string keys of other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the context key of the authenticated caller id. It is set
// by the HTTP auth guard and nowhere else.
var UserIDCtxKey = contextKey("userID")

// WithUserID returns a copy of ctx carrying the caller id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDCtxKey, userID)
}

// GetUserIDFromContext retrieves the caller id stored by WithUserID.
// ok is false when the value is missing or has an unexpected type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
