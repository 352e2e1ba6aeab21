package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/service"
	"github.com/MKhiriev/go-recipe-box/internal/store"
	"github.com/MKhiriev/go-recipe-box/internal/utils"
	"github.com/MKhiriev/go-recipe-box/internal/validators"
)

var errorStatusMap = map[error]int{
	validators.ErrValidation: http.StatusBadRequest,
	ErrInvalidJSON:           http.StatusBadRequest,
	ErrUploadTooLarge:        http.StatusRequestEntityTooLarge,

	service.ErrAuthenticationFailed:    http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrNotAuthenticated:        http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader:      http.StatusUnauthorized,

	store.ErrRecipeNotFound: http.StatusNotFound,
	store.ErrNoUserWasFound: http.StatusNotFound,
}

var errorDetailMap = map[error]string{
	service.ErrAuthenticationFailed:    detailBadLogin,
	service.ErrTokenIsExpiredOrInvalid: detailInvalidToken,
	service.ErrNotAuthenticated:        detailNoCredentials,
	ErrInvalidAuthorizationHeader:      detailInvalidHeader,
	ErrUploadTooLarge:                  detailTooLarge,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func detailFromError(err error, status int) string {
	for target, detail := range errorDetailMap {
		if errors.Is(err, target) {
			return detail
		}
	}

	switch status {
	case http.StatusNotFound:
		return detailNotFound
	case http.StatusBadRequest:
		return err.Error()
	}
	return detailServerError
}

// writeError renders err as the response.
//
// Validation errors become a {"field": ["message"]} body; everything else
// becomes {"detail": "..."}. 401 responses carry a WWW-Authenticate header.
// funcName is the "func" field of the log entry.
func writeError(w http.ResponseWriter, r *http.Request, err error, funcName string) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	}

	if fields, ok := validators.FieldErrors(err); ok {
		utils.WriteJSON(w, fields, http.StatusBadRequest)
		return
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	}
	utils.WriteDetail(w, detailFromError(err, status), status)
}

// notFound answers unknown routes and non-numeric ids.
func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteDetail(w, detailNotFound, http.StatusNotFound)
}

func notAllowedDetail(method string) string {
	return fmt.Sprintf(detailNotAllowed, method)
}
