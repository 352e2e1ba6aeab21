package http

import (
	"net/http"

	"github.com/MKhiriev/go-recipe-box/internal/service"
	"github.com/MKhiriev/go-recipe-box/internal/utils"
	"github.com/MKhiriev/go-recipe-box/internal/validators"
)

const fieldAssignedOnly = "assigned_only"

type attributeRequest struct {
	Name *string `json:"name"`
}

// listAttributes returns the GET handler of one attribute kind.
func (h *Handler) listAttributes(svc service.AttributeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			writeError(w, r, err, "*Handler.listAttributes")
			return
		}

		assignedOnly, err := parseFlag(r, fieldAssignedOnly)
		if err != nil {
			writeError(w, r, err, "*Handler.listAttributes")
			return
		}

		attributes, err := svc.ListAttributes(r.Context(), userID, assignedOnly)
		if err != nil {
			writeError(w, r, err, "*Handler.listAttributes")
			return
		}

		utils.WriteJSON(w, attributes, http.StatusOK)
	}
}

// createAttribute returns the POST handler of one attribute kind.
func (h *Handler) createAttribute(svc service.AttributeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			writeError(w, r, err, "*Handler.createAttribute")
			return
		}

		var req attributeRequest
		if err = decodeJSON(r, &req); err != nil {
			writeError(w, r, err, "*Handler.createAttribute")
			return
		}
		if req.Name == nil {
			writeError(w, r, validators.NewValidationError(validators.FieldName, validators.MsgRequired), "*Handler.createAttribute")
			return
		}

		attribute, err := svc.CreateAttribute(r.Context(), userID, *req.Name)
		if err != nil {
			writeError(w, r, err, "*Handler.createAttribute")
			return
		}

		utils.WriteJSON(w, attribute, http.StatusCreated)
	}
}
