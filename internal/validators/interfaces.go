// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for the recipe-box API.
//
// Validators collect every problem of a payload into one *ValidationError,
// whose field map is returned to the client as the 400 response body.
// Services call validators before touching storage; the HTTP layer never
// validates domain rules itself.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
