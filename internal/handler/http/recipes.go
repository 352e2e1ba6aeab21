package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-recipe-box/internal/utils"
	"github.com/MKhiriev/go-recipe-box/internal/validators"
	"github.com/MKhiriev/go-recipe-box/models"
)

// listRecipes handles GET /recipes/?tags=1,2&ingredients=3.
func (h *Handler) listRecipes(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err, "*Handler.listRecipes")
		return
	}

	filter := models.RecipeFilter{UserID: userID}
	if filter.TagIDs, err = parseIDList(r, validators.FieldTags); err != nil {
		writeError(w, r, err, "*Handler.listRecipes")
		return
	}
	if filter.IngredientIDs, err = parseIDList(r, validators.FieldIngredients); err != nil {
		writeError(w, r, err, "*Handler.listRecipes")
		return
	}

	recipes, err := h.services.RecipeService.ListRecipes(r.Context(), userID, filter)
	if err != nil {
		writeError(w, r, err, "*Handler.listRecipes")
		return
	}

	utils.WriteJSON(w, recipes, http.StatusOK)
}

func (h *Handler) createRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err, "*Handler.createRecipe")
		return
	}

	var input models.RecipeInput
	if err = decodeJSON(r, &input); err != nil {
		writeError(w, r, err, "*Handler.createRecipe")
		return
	}

	recipe, err := h.services.RecipeService.CreateRecipe(r.Context(), userID, input)
	if err != nil {
		writeError(w, r, err, "*Handler.createRecipe")
		return
	}

	utils.WriteJSON(w, recipe, http.StatusCreated)
}

func (h *Handler) getRecipe(w http.ResponseWriter, r *http.Request) {
	userID, recipeID, err := recipeTarget(r)
	if err != nil {
		writeError(w, r, err, "*Handler.getRecipe")
		return
	}

	recipe, err := h.services.RecipeService.GetRecipe(r.Context(), userID, recipeID)
	if err != nil {
		writeError(w, r, err, "*Handler.getRecipe")
		return
	}

	utils.WriteJSON(w, recipe, http.StatusOK)
}

// updateRecipe returns the PUT (full) or PATCH (partial) handler.
func (h *Handler) updateRecipe(mode models.UpdateMode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, recipeID, err := recipeTarget(r)
		if err != nil {
			writeError(w, r, err, "*Handler.updateRecipe")
			return
		}

		var input models.RecipeInput
		if err = decodeJSON(r, &input); err != nil {
			writeError(w, r, err, "*Handler.updateRecipe")
			return
		}

		recipe, err := h.services.RecipeService.UpdateRecipe(r.Context(), userID, recipeID, input, mode)
		if err != nil {
			writeError(w, r, err, "*Handler.updateRecipe")
			return
		}

		utils.WriteJSON(w, recipe, http.StatusOK)
	}
}

func (h *Handler) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	userID, recipeID, err := recipeTarget(r)
	if err != nil {
		writeError(w, r, err, "*Handler.deleteRecipe")
		return
	}

	if err = h.services.RecipeService.DeleteRecipe(r.Context(), userID, recipeID); err != nil {
		writeError(w, r, err, "*Handler.deleteRecipe")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// uploadImage handles POST /recipes/{id}/upload-image/ with a multipart
// "image" field.
func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	userID, recipeID, err := recipeTarget(r)
	if err != nil {
		writeError(w, r, err, "*Handler.uploadImage")
		return
	}

	file, err := h.readImageFile(w, r)
	if err != nil {
		writeError(w, r, err, "*Handler.uploadImage")
		return
	}

	result, err := h.services.RecipeService.UploadImage(r.Context(), userID, recipeID, file)
	if err != nil {
		writeError(w, r, err, "*Handler.uploadImage")
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

// readImageFile reads the "image" part of a multipart body within the
// upload limit. A request without the part yields an empty ImageFile, which
// the service rejects after checking the recipe exists.
func (h *Handler) readImageFile(w http.ResponseWriter, r *http.Request) (models.ImageFile, error) {
	if h.settings.MaxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.settings.MaxUploadSize)
	}

	part, header, err := r.FormFile(validators.FieldImage)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return models.ImageFile{}, ErrUploadTooLarge
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			return models.ImageFile{}, nil
		}
		return models.ImageFile{}, validators.NewValidationError(validators.FieldImage, validators.MsgNoFile)
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return models.ImageFile{}, validators.NewValidationError(validators.FieldImage, validators.MsgInvalidImage)
	}

	return models.ImageFile{Name: header.Filename, Data: data}, nil
}

func recipeTarget(r *http.Request) (int64, int64, error) {
	userID, err := callerID(r)
	if err != nil {
		return 0, 0, err
	}

	recipeID, err := recipeIDParam(r)
	if err != nil {
		return 0, 0, err
	}

	return userID, recipeID, nil
}
