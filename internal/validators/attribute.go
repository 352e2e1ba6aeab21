package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-recipe-box/models"
)

// AttributeValidator checks tag and ingredient payloads.
type AttributeValidator struct {
}

func NewAttributeValidator() Validator {
	return &AttributeValidator{}
}

func (v *AttributeValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Attribute:
		return v.validateAttribute(value)
	case *models.Attribute:
		return v.validateAttribute(*value)
	default:
		return ErrUnsupportedType
	}
}

func (v *AttributeValidator) validateAttribute(a models.Attribute) error {
	errs := new(ValidationError)
	if strings.TrimSpace(a.Name) == "" {
		errs.Add(FieldName, MsgBlank)
	} else {
		checkMaxLength(errs, FieldName, a.Name)
	}

	return errs.Err()
}
