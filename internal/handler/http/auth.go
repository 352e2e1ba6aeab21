package http

import (
	"net/http"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/utils"
	"github.com/MKhiriev/go-recipe-box/models"
)

// register handles POST /users/create/ and answers 201 with the profile.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := decodeJSON(r, &user); err != nil {
		writeError(w, r, err, "*Handler.register")
		return
	}

	registered, err := h.services.AuthService.RegisterUser(r.Context(), user)
	if err != nil {
		writeError(w, r, err, "*Handler.register")
		return
	}

	logger.FromRequest(r).Debug().Int64("user_id", registered.UserID).Msg("user registered")
	utils.WriteJSON(w, registered.Profile(), http.StatusCreated)
}

// login handles POST /users/token/ and answers {"token": "..."}.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var credentials models.Credentials
	if err := decodeJSON(r, &credentials); err != nil {
		writeError(w, r, err, "*Handler.login")
		return
	}

	token, err := h.services.AuthService.Login(r.Context(), credentials)
	if err != nil {
		writeError(w, r, err, "*Handler.login")
		return
	}

	utils.WriteJSON(w, models.TokenResponse{Token: token.Key}, http.StatusOK)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err, "*Handler.getProfile")
		return
	}

	profile, err := h.services.AuthService.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "*Handler.getProfile")
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

// updateProfile handles PATCH /users/profile/. Absent fields stay unchanged.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err, "*Handler.updateProfile")
		return
	}

	var update models.ProfileUpdate
	if err = decodeJSON(r, &update); err != nil {
		writeError(w, r, err, "*Handler.updateProfile")
		return
	}

	profile, err := h.services.AuthService.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		writeError(w, r, err, "*Handler.updateProfile")
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}
