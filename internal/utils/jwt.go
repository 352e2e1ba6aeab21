package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-recipe-box/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Authorization header schemes accepted by ParseAuthHeader.
var authSchemes = []string{"Bearer", "Token"}

// ErrInvalidAuthHeader is returned by ParseAuthHeader for a malformed header.
var ErrInvalidAuthHeader = errors.New("invalid authorization header")

// GenerateJWTToken creates a signed HMAC-SHA256 JWT for userID.
//
// The token carries the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a string
//   - ID        (jti): a random UUID, so two logins never yield the same key
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): now plus tokenDuration; omitted when tokenDuration is 0
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("recipe-box", 42, 24*time.Hour, "secret")
func GenerateJWTToken(issuer string, userID int64, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration < 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:   issuer,
		Subject:  strconv.FormatInt(userID, 10),
		ID:       uuid.NewString(),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if tokenDuration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(tokenDuration))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{
		Claims:    claims,
		Key:       signed,
		UserID:    userID,
		CreatedAt: now,
	}, nil
}

// ValidateAndParseJWTToken verifies the signature, algorithm, issuer and
// expiry of tokenString and extracts the user id from its subject.
//
// Example usage:
//
//	token, err := utils.ValidateAndParseJWTToken(rawToken, "secret", "recipe-box")
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during converting subject to user id: %w", err)
	}

	token := models.Token{
		Claims: claims,
		Key:    tokenString,
		UserID: userID,
	}
	if claims.IssuedAt != nil {
		token.CreatedAt = claims.IssuedAt.Time
	}

	return token, nil
}

// ParseAuthHeader extracts the token from an "Authorization: <scheme> <token>"
// header value. The scheme is matched case-insensitively against "Bearer" and
// "Token".
func ParseAuthHeader(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 {
		return "", ErrInvalidAuthHeader
	}

	for _, scheme := range authSchemes {
		if strings.EqualFold(parts[0], scheme) {
			return parts[1], nil
		}
	}

	return "", ErrInvalidAuthHeader
}
