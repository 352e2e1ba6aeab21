package validators

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrConflict matches a *ValidationError built by Conflict.
	ErrConflict = errors.New("unique constraint conflict")

	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// Field messages shared by the validators and the services.
const (
	MsgRequired     = "This field is required."
	MsgBlank        = "This field may not be blank."
	MsgInvalidEmail = "Enter a valid email address."
	MsgMaxLength    = "Ensure this field has no more than 255 characters."
	MsgPasswordMin  = "Ensure this field has at least 5 characters."
	MsgTimeMin      = "Ensure this value is greater than or equal to 1."
	MsgPriceMin     = "Ensure this value is greater than or equal to 0."
	MsgPriceDigits  = "Ensure that there are no more than 5 digits in total."
	MsgEmailTaken   = "user with this email already exists."
	MsgInvalidImage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	MsgNoFile       = "No file was submitted."
	MsgInvalidPK    = `Invalid pk "%d" - object does not exist.`
	MsgInvalidIDs   = "Ensure this value is a comma separated list of ids."
)

// FieldNonField keys messages that do not belong to a single field.
const FieldNonField = "non_field_errors"

// ValidationError carries field-level messages, rendered by the HTTP layer
// as {"field": ["message", ...]}.
type ValidationError struct {
	Fields   map[string][]string
	conflict bool
}

// NewValidationError returns a ValidationError with one message on field.
func NewValidationError(field, message string) *ValidationError {
	return new(ValidationError).Add(field, message)
}

// Conflict returns a ValidationError that also matches ErrConflict.
func Conflict(field, message string) *ValidationError {
	e := NewValidationError(field, message)
	e.conflict = true
	return e
}

// Add appends message to field and returns the receiver.
func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// Err returns nil when no message was added. It lets validators collect
// messages and return in one place.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrValidation.Error())
	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		b.WriteString("; ")
		b.WriteString(field)
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Fields[field], " "))
	}
	return b.String()
}

func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return true
	case ErrConflict:
		return e.conflict
	}
	return false
}

// FieldErrors extracts the field messages from err, if it wraps a
// *ValidationError.
func FieldErrors(err error) (map[string][]string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	return nil, false
}
