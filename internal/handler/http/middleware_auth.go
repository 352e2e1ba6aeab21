package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/service"
	"github.com/MKhiriev/go-recipe-box/internal/utils"
)

// auth rejects requests without a valid token before any resource code
// runs. On success the caller id is stored in the request context under
// [utils.UserIDCtxKey].
//
// Both "Bearer <token>" and "Token <token>" are accepted.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, service.ErrNotAuthenticated, "*Handler.auth")
			return
		}

		key, err := utils.ParseAuthHeader(authHeader)
		if err != nil {
			writeError(w, r, errors.Join(ErrInvalidAuthorizationHeader, err), "*Handler.auth")
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, key)
		if err != nil {
			if !errors.Is(err, service.ErrTokenIsExpiredOrInvalid) {
				log.Err(err).Str("func", "*Handler.auth").Msg("unexpected error parsing token")
			}
			writeError(w, r, errors.Join(service.ErrTokenIsExpiredOrInvalid, err), "*Handler.auth")
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUserID(ctx, token.UserID)))
	})
}

// callerID returns the id stored by the auth guard.
func callerID(r *http.Request) (int64, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return 0, service.ErrNotAuthenticated
	}
	return userID, nil
}
