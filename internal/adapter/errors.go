package adapter

import "errors"

// Errors mapped from API status codes. The API body is appended to the
// message, so field errors stay visible to the user.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrMethodNotAllowed    = errors.New("method not allowed")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrInternalServerError = errors.New("internal server error")

	ErrInvalidAddress = errors.New("invalid server address")
)
