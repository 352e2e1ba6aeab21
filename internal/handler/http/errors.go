// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the transport layer. Callers can match against them
// with [errors.Is].
var (
	// ErrInvalidAuthorizationHeader is returned by the auth guard when the
	// "Authorization" header is present but is not "<scheme> <token>" with a
	// known scheme.
	ErrInvalidAuthorizationHeader = errors.New("invalid token header")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("JSON parse error")

	// ErrUploadTooLarge is returned when an image upload exceeds the
	// configured size limit.
	ErrUploadTooLarge = errors.New("request body is too large")
)

// Detail messages of non-field error responses.
const (
	detailNotFound      = "Not found."
	detailServerError   = "A server error occurred."
	detailInvalidHeader = "Invalid token header."
	detailInvalidToken  = "Invalid token."
	detailNoCredentials = "Authentication credentials were not provided."
	detailBadLogin      = "Unable to log in with provided credentials."
	detailTooLarge      = "Request body is too large."
	detailNotAllowed    = "Method \"%s\" not allowed."
)
