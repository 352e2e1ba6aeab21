package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps an issued bearer token.
//
// Clients treat Key as opaque. On the server it is a signed JWT whose "sub"
// claim carries the owner id; only an HMAC digest of Key is persisted.
type Token struct {
	// Claims holds the registered claims the key was signed (or parsed) with.
	Claims *jwt.RegisteredClaims

	// Key is the compact signed token string handed to the client.
	Key string

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID int64

	// CreatedAt is the issue time.
	CreatedAt time.Time
}

// String implements [fmt.Stringer].
func (t Token) String() string {
	return t.Key
}

// StoredToken is the persisted form of the active token of a user.
type StoredToken struct {
	UserID    int64
	KeyDigest string
	CreatedAt time.Time
}

// TokenResponse is the body returned by a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}
