package service

import "errors"

var (
	// ErrAuthenticationFailed covers unknown email, inactive account and
	// wrong password alike.
	ErrAuthenticationFailed = errors.New("unable to log in with provided credentials")

	ErrTokenIsExpiredOrInvalid = errors.New("invalid token")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	// ErrNotAuthenticated is returned when a protected operation runs without
	// a resolved caller.
	ErrNotAuthenticated = errors.New("authentication credentials were not provided")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrSavingImage = errors.New("error saving image")
)
