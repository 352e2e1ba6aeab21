package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-recipe-box/internal/store"
	"github.com/MKhiriev/go-recipe-box/internal/validators"
	"github.com/MKhiriev/go-recipe-box/models"
	"github.com/go-chi/chi/v5"
)

const (
	msgInvalidInteger = "A valid integer is required."
	msgInvalidNumber  = "A valid number is required."
	msgIncorrectType  = "Incorrect type."
)

// decodeJSON reads the request body into v. An empty body leaves v
// untouched, so missing fields surface as "required" validation errors.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, models.ErrInvalidPrice):
		return validators.NewValidationError(validators.FieldPrice, msgInvalidNumber)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return validators.NewValidationError(typeErr.Field, typeMessage(typeErr.Type))
	}

	return fmt.Errorf("%w - %s", ErrInvalidJSON, err.Error())
}

func typeMessage(t reflect.Type) string {
	if t == nil {
		return msgIncorrectType
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return msgInvalidInteger
	}
	return msgIncorrectType
}

// recipeIDParam reads {id}. The route pattern only admits digits, so a
// failure means the value overflows and is treated as a missing recipe.
func recipeIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, store.ErrRecipeNotFound
	}
	return id, nil
}

// parseIDList reads a comma separated id list such as "1,2,3" from the query
// parameter field. An absent or empty parameter yields nil.
func parseIDList(r *http.Request, field string) ([]int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(field))
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, validators.NewValidationError(field, validators.MsgInvalidIDs)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// parseFlag reads an integer flag such as assigned_only=1. Absent means
// false; any non-zero integer means true.
func parseFlag(r *http.Request, field string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(field))
	if raw == "" {
		return false, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return false, validators.NewValidationError(field, msgInvalidInteger)
	}
	return n != 0, nil
}
