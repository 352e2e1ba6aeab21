package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-recipe-box/models"
)

const (
	FieldEmail    = "email"
	FieldName     = "name"
	FieldPassword = "password"
)

const (
	maxCharFieldLength = 255
	minPasswordLength  = 5
)

// UserValidator checks registration, login and profile update payloads.
type UserValidator struct {
}

func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate dispatches on the payload type:
//   - models.User: registration; fields restricts which of email, name and
//     password are checked (all by default)
//   - models.Credentials: login; both fields must be non-blank
//   - models.ProfileUpdate: only the supplied fields are checked
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(value, fields...)
	case *models.User:
		return v.validateUser(*value, fields...)

	case models.Credentials:
		return v.validateCredentials(value)
	case *models.Credentials:
		return v.validateCredentials(*value)

	case models.ProfileUpdate:
		return v.validateProfileUpdate(value)
	case *models.ProfileUpdate:
		return v.validateProfileUpdate(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateUser(user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldName, FieldPassword}
	}

	errs := new(ValidationError)
	for _, f := range fields {
		switch f {
		case FieldEmail:
			checkEmail(errs, user.Email)
		case FieldName:
			checkMaxLength(errs, FieldName, user.Name)
		case FieldPassword:
			checkPassword(errs, user.Password)
		default:
			return ErrUnknownField
		}
	}

	return errs.Err()
}

func (v *UserValidator) validateCredentials(c models.Credentials) error {
	errs := new(ValidationError)
	if strings.TrimSpace(c.Email) == "" {
		errs.Add(FieldEmail, MsgBlank)
	}
	if c.Password == "" {
		errs.Add(FieldPassword, MsgBlank)
	}

	return errs.Err()
}

func (v *UserValidator) validateProfileUpdate(u models.ProfileUpdate) error {
	errs := new(ValidationError)
	if u.Email != nil {
		checkEmail(errs, *u.Email)
	}
	if u.Name != nil {
		checkMaxLength(errs, FieldName, *u.Name)
	}
	if u.Password != nil {
		checkPassword(errs, *u.Password)
	}

	return errs.Err()
}

// NormalizeEmail trims and lower-cases an address. Registration, login and
// profile update all store and compare the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkEmail(errs *ValidationError, email string) {
	if email == "" {
		errs.Add(FieldEmail, MsgBlank)
		return
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		errs.Add(FieldEmail, MsgInvalidEmail)
		return
	}
	checkMaxLength(errs, FieldEmail, email)
}

func checkPassword(errs *ValidationError, password string) {
	if password == "" {
		errs.Add(FieldPassword, MsgBlank)
		return
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		errs.Add(FieldPassword, MsgPasswordMin)
	}
}

func checkMaxLength(errs *ValidationError, field, value string) {
	if utf8.RuneCountInString(value) > maxCharFieldLength {
		errs.Add(field, MsgMaxLength)
	}
}
