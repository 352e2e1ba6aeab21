// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/MKhiriev/go-recipe-box/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func ptr[T any](v T) *T { return &v }

func requireFieldError(t *testing.T, err error, field, message string) {
	t.Helper()
	require.ErrorIs(t, err, ErrValidation)
	fields, ok := FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields[field], message)
}

// ---------------------------------------------------------------------------
// ValidationError
// ---------------------------------------------------------------------------

func TestValidationError_Is(t *testing.T) {
	plain := NewValidationError(FieldName, MsgBlank)
	assert.ErrorIs(t, plain, ErrValidation)
	assert.NotErrorIs(t, plain, ErrConflict)

	conflict := Conflict(FieldEmail, MsgEmailTaken)
	assert.ErrorIs(t, conflict, ErrValidation)
	assert.ErrorIs(t, conflict, ErrConflict)

	wrapped := fmt.Errorf("register: %w", conflict)
	assert.ErrorIs(t, wrapped, ErrConflict)
	fields, ok := FieldErrors(wrapped)
	require.True(t, ok)
	assert.Equal(t, []string{MsgEmailTaken}, fields[FieldEmail])
}

func TestValidationError_Err(t *testing.T) {
	assert.NoError(t, new(ValidationError).Err())

	var nilErr *ValidationError
	assert.NoError(t, nilErr.Err())

	assert.Error(t, NewValidationError("x", "y").Err())
}

func TestValidationError_ErrorString(t *testing.T) {
	e := new(ValidationError).Add("name", "a").Add("email", "b").Add("email", "c")
	assert.Equal(t, "validation failed; email: b c; name: a", e.Error())
}

func TestFieldErrors_NotValidation(t *testing.T) {
	_, ok := FieldErrors(errors.New("boom"))
	assert.False(t, ok)
}

// ---------------------------------------------------------------------------
// UserValidator
// ---------------------------------------------------------------------------

func TestUserValidator_Register(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		user    models.User
		field   string
		message string
	}{
		{name: "valid", user: models.User{Email: "a@test.com", Password: "secret1"}},
		{name: "missing email", user: models.User{Password: "secret1"}, field: FieldEmail, message: MsgBlank},
		{name: "malformed email", user: models.User{Email: "not-an-email", Password: "secret1"}, field: FieldEmail, message: MsgInvalidEmail},
		{name: "display name email", user: models.User{Email: "A <a@test.com>", Password: "secret1"}, field: FieldEmail, message: MsgInvalidEmail},
		{name: "short password", user: models.User{Email: "a@test.com", Password: "1234"}, field: FieldPassword, message: MsgPasswordMin},
		{name: "empty password", user: models.User{Email: "a@test.com"}, field: FieldPassword, message: MsgBlank},
		{name: "long name", user: models.User{Email: "a@test.com", Password: "secret1", Name: strings.Repeat("n", 256)}, field: FieldName, message: MsgMaxLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.user)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			requireFieldError(t, err, tt.field, tt.message)
		})
	}
}

func TestUserValidator_Register_CollectsAllFields(t *testing.T) {
	err := NewUserValidator().Validate(context.Background(), &models.User{Email: "bad", Password: "123"})

	fields, ok := FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, FieldEmail)
	assert.Contains(t, fields, FieldPassword)
}

func TestUserValidator_Register_SelectedFields(t *testing.T) {
	v := NewUserValidator()

	err := v.Validate(context.Background(), models.User{Email: "a@test.com"}, FieldEmail)
	assert.NoError(t, err)

	err = v.Validate(context.Background(), models.User{}, "age")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestUserValidator_Credentials(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.Credentials{Email: "a@test.com", Password: "x"}))
	requireFieldError(t, v.Validate(ctx, models.Credentials{Password: "x"}), FieldEmail, MsgBlank)
	requireFieldError(t, v.Validate(ctx, &models.Credentials{Email: "a@test.com"}), FieldPassword, MsgBlank)
}

func TestUserValidator_ProfileUpdate(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ProfileUpdate{}))
	assert.NoError(t, v.Validate(ctx, models.ProfileUpdate{Name: ptr("")}))
	requireFieldError(t, v.Validate(ctx, models.ProfileUpdate{Password: ptr("abc")}), FieldPassword, MsgPasswordMin)
	requireFieldError(t, v.Validate(ctx, &models.ProfileUpdate{Email: ptr("nope")}), FieldEmail, MsgInvalidEmail)
}

func TestUserValidator_UnsupportedType(t *testing.T) {
	assert.ErrorIs(t, NewUserValidator().Validate(context.Background(), 42), ErrUnsupportedType)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@test.com", NormalizeEmail("  A@Test.COM "))
}

// ---------------------------------------------------------------------------
// AttributeValidator
// ---------------------------------------------------------------------------

func TestAttributeValidator(t *testing.T) {
	v := NewAttributeValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.Attribute{Name: "Vegan"}))
	requireFieldError(t, v.Validate(ctx, models.Attribute{Name: "   "}), FieldName, MsgBlank)
	requireFieldError(t, v.Validate(ctx, &models.Attribute{Name: strings.Repeat("x", 256)}), FieldName, MsgMaxLength)
	assert.ErrorIs(t, v.Validate(ctx, "Vegan"), ErrUnsupportedType)
}

// ---------------------------------------------------------------------------
// RecipeValidator
// ---------------------------------------------------------------------------

func validRecipeInput() models.RecipeInput {
	return models.RecipeInput{
		Name:  ptr("Omelette"),
		Time:  ptr(5),
		Price: ptr(models.Price(3000)),
	}
}

func TestRecipeValidator_Full(t *testing.T) {
	v := NewRecipeValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(in *models.RecipeInput)
		field   string
		message string
	}{
		{name: "valid", mutate: func(in *models.RecipeInput) {}},
		{name: "missing name", mutate: func(in *models.RecipeInput) { in.Name = nil }, field: FieldName, message: MsgRequired},
		{name: "missing time", mutate: func(in *models.RecipeInput) { in.Time = nil }, field: FieldTime, message: MsgRequired},
		{name: "missing price", mutate: func(in *models.RecipeInput) { in.Price = nil }, field: FieldPrice, message: MsgRequired},
		{name: "blank name", mutate: func(in *models.RecipeInput) { in.Name = ptr(" ") }, field: FieldName, message: MsgBlank},
		{name: "zero time", mutate: func(in *models.RecipeInput) { in.Time = ptr(0) }, field: FieldTime, message: MsgTimeMin},
		{name: "negative price", mutate: func(in *models.RecipeInput) { in.Price = ptr(models.Price(-1)) }, field: FieldPrice, message: MsgPriceMin},
		{name: "price too large", mutate: func(in *models.RecipeInput) { in.Price = ptr(models.Price(1000_00)) }, field: FieldPrice, message: MsgPriceDigits},
		{name: "zero price", mutate: func(in *models.RecipeInput) { in.Price = ptr(models.Price(0)) }},
		{name: "long link", mutate: func(in *models.RecipeInput) { in.Link = ptr(strings.Repeat("l", 256)) }, field: FieldLink, message: MsgMaxLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRecipeInput()
			tt.mutate(&in)

			err := v.Validate(ctx, in, RequiredRecipeFields...)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			requireFieldError(t, err, tt.field, tt.message)
		})
	}
}

func TestRecipeValidator_Partial(t *testing.T) {
	v := NewRecipeValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.RecipeInput{}))
	assert.NoError(t, v.Validate(ctx, &models.RecipeInput{Tags: &[]int64{}}))
	requireFieldError(t, v.Validate(ctx, models.RecipeInput{Time: ptr(-3)}), FieldTime, MsgTimeMin)
}

func TestRecipeValidator_UnknownRequiredField(t *testing.T) {
	err := NewRecipeValidator().Validate(context.Background(), validRecipeInput(), "color")
	assert.ErrorIs(t, err, ErrUnknownField)
}
