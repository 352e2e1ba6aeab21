package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-recipe-box/models"
)

const (
	FieldTime        = "time"
	FieldPrice       = "price"
	FieldLink        = "link"
	FieldTags        = "tags"
	FieldIngredients = "ingredients"
	FieldImage       = "image"
)

// RequiredRecipeFields are the fields create and full update must carry.
var RequiredRecipeFields = []string{FieldName, FieldTime, FieldPrice}

// maxPrice is the exclusive upper bound of a price: five digits, two of them
// decimal.
const maxPrice = models.Price(1000_00)

// RecipeValidator checks recipe payloads.
type RecipeValidator struct {
}

func NewRecipeValidator() Validator {
	return &RecipeValidator{}
}

// Validate checks a models.RecipeInput. fields names the fields that must be
// present; every present field is range-checked regardless. Partial updates
// pass no fields.
func (v *RecipeValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RecipeInput:
		return v.validateInput(value, fields...)
	case *models.RecipeInput:
		return v.validateInput(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *RecipeValidator) validateInput(in models.RecipeInput, required ...string) error {
	errs := new(ValidationError)

	for _, f := range required {
		var present bool
		switch f {
		case FieldName:
			present = in.Name != nil
		case FieldTime:
			present = in.Time != nil
		case FieldPrice:
			present = in.Price != nil
		case FieldLink:
			present = in.Link != nil
		case FieldTags:
			present = in.Tags != nil
		case FieldIngredients:
			present = in.Ingredients != nil
		default:
			return ErrUnknownField
		}
		if !present {
			errs.Add(f, MsgRequired)
		}
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			errs.Add(FieldName, MsgBlank)
		} else {
			checkMaxLength(errs, FieldName, *in.Name)
		}
	}
	if in.Time != nil && *in.Time < 1 {
		errs.Add(FieldTime, MsgTimeMin)
	}
	if in.Price != nil {
		switch {
		case *in.Price < 0:
			errs.Add(FieldPrice, MsgPriceMin)
		case *in.Price >= maxPrice:
			errs.Add(FieldPrice, MsgPriceDigits)
		}
	}
	if in.Link != nil {
		checkMaxLength(errs, FieldLink, *in.Link)
	}

	return errs.Err()
}
