package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/MKhiriev/go-recipe-box/internal/validators"
	"github.com/MKhiriev/go-recipe-box/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAttributes_AssignedOnly(t *testing.T) {
	tests := []struct {
		query        string
		wantAssigned bool
	}{
		{"", false},
		{"?assigned_only=0", false},
		{"?assigned_only=1", true},
		{"?assigned_only=", false},
	}

	for _, path := range []string{"/recipes/tag/", "/recipes/ingredient/"} {
		for _, tt := range tests {
			t.Run(path+tt.query, func(t *testing.T) {
				var gotAssigned bool
				fake := &fakeAttributeSvc{
					listFn: func(_ context.Context, userID int64, assignedOnly bool) ([]models.Attribute, error) {
						assert.Equal(t, int64(1), userID)
						gotAssigned = assignedOnly
						return []models.Attribute{{ID: 2, Name: "Vegan", UserID: 1}, {ID: 1, Name: "Dessert", UserID: 1}}, nil
					},
				}
				services := newTestServices()
				services.TagService, services.IngredientService = fake, fake
				router := newTestRouter(t, services, Settings{})

				rr := serve(router, http.MethodGet, path+tt.query, testToken, nil)

				require.Equal(t, http.StatusOK, rr.Code)
				assert.Equal(t, tt.wantAssigned, gotAssigned)
				assert.JSONEq(t, `[{"id":2,"name":"Vegan"},{"id":1,"name":"Dessert"}]`, rr.Body.String())
			})
		}
	}
}

func TestListAttributes_RoutesByKind(t *testing.T) {
	services := newTestServices()
	services.TagService = &fakeAttributeSvc{
		kind: models.TagKind,
		listFn: func(context.Context, int64, bool) ([]models.Attribute, error) {
			return []models.Attribute{{ID: 1, Name: "tag"}}, nil
		},
	}
	services.IngredientService = &fakeAttributeSvc{
		kind: models.IngredientKind,
		listFn: func(context.Context, int64, bool) ([]models.Attribute, error) {
			return []models.Attribute{{ID: 1, Name: "ingredient"}}, nil
		},
	}
	router := newTestRouter(t, services, Settings{})

	assert.Contains(t, serve(router, http.MethodGet, "/recipes/tag/", testToken, nil).Body.String(), `"tag"`)
	assert.Contains(t, serve(router, http.MethodGet, "/recipes/ingredient/", testToken, nil).Body.String(), `"ingredient"`)
}

func TestListAttributes_InvalidFlag(t *testing.T) {
	router := newTestRouter(t, newTestServices(), Settings{})

	rr := serve(router, http.MethodGet, "/recipes/tag/?assigned_only=yes", testToken, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"assigned_only":["A valid integer is required."]}`, rr.Body.String())
}

func TestListAttributes_ServiceError(t *testing.T) {
	services := newTestServices()
	services.TagService = &fakeAttributeSvc{
		listFn: func(context.Context, int64, bool) ([]models.Attribute, error) {
			return nil, errors.New("db down")
		},
	}
	router := newTestRouter(t, services, Settings{})

	rr := serve(router, http.MethodGet, "/recipes/tag/", testToken, nil)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestCreateAttribute(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		services := newTestServices()
		services.IngredientService = &fakeAttributeSvc{
			createFn: func(_ context.Context, userID int64, name string) (models.Attribute, error) {
				assert.Equal(t, int64(1), userID)
				assert.Equal(t, "Salt", name)
				return models.Attribute{ID: 3, Name: name, UserID: userID}, nil
			},
		}
		router := newTestRouter(t, services, Settings{})

		rr := serve(router, http.MethodPost, "/recipes/ingredient/", testToken, strings.NewReader(`{"name":"Salt"}`))

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t, `{"id":3,"name":"Salt"}`, rr.Body.String())
	})

	t.Run("missing name", func(t *testing.T) {
		router := newTestRouter(t, newTestServices(), Settings{})

		rr := serve(router, http.MethodPost, "/recipes/tag/", testToken, strings.NewReader(`{}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"name":["This field is required."]}`, rr.Body.String())
	})

	t.Run("blank name", func(t *testing.T) {
		services := newTestServices()
		services.TagService = &fakeAttributeSvc{
			createFn: func(context.Context, int64, string) (models.Attribute, error) {
				return models.Attribute{}, validators.NewValidationError(validators.FieldName, validators.MsgBlank)
			},
		}
		router := newTestRouter(t, services, Settings{})

		rr := serve(router, http.MethodPost, "/recipes/tag/", testToken, strings.NewReader(`{"name":"  "}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"name":["This field may not be blank."]}`, rr.Body.String())
	})

	t.Run("name of wrong type", func(t *testing.T) {
		router := newTestRouter(t, newTestServices(), Settings{})

		rr := serve(router, http.MethodPost, "/recipes/tag/", testToken, strings.NewReader(`{"name":12}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"name":["Incorrect type."]}`, rr.Body.String())
	})
}
