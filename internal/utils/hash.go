package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 signature over data with hashKey and
// returns it hex-encoded.
//
// Auth tokens are persisted only as this digest, so a leaked table row cannot
// be replayed as a bearer token.
//
// Example usage:
//
//	digest := utils.HashString(token.Key, cfg.App.TokenHashKey)
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}
