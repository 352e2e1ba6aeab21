package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/service"
	"github.com/MKhiriev/go-recipe-box/internal/utils"
	"github.com/MKhiriev/go-recipe-box/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- Helpers ----

func newHandlerWithAuthService(authSvc service.AuthService) *Handler {
	return &Handler{
		logger:   logger.Nop(),
		services: &service.Services{AuthService: authSvc},
	}
}

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)
	return rr
}

// ---- auth ----

func TestAuth_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantDetail string
		wantUserID int64
	}{
		{
			name:       "bearer token",
			header:     "Bearer " + testToken,
			wantStatus: http.StatusOK,
			wantUserID: 1,
		},
		{
			name:       "token scheme",
			header:     "Token " + testToken,
			wantStatus: http.StatusOK,
			wantUserID: 1,
		},
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
			wantDetail: detailNoCredentials,
		},
		{
			name:       "unknown scheme",
			header:     "Basic " + testToken,
			wantStatus: http.StatusUnauthorized,
			wantDetail: detailInvalidHeader,
		},
		{
			name:       "no token value",
			header:     "Bearer",
			wantStatus: http.StatusUnauthorized,
			wantDetail: detailInvalidHeader,
		},
		{
			name:       "token with spaces",
			header:     "Bearer a b",
			wantStatus: http.StatusUnauthorized,
			wantDetail: detailInvalidHeader,
		},
		{
			name:       "rejected token",
			header:     "Bearer stale-token",
			wantStatus: http.StatusUnauthorized,
			wantDetail: detailInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUserID, _ = utils.GetUserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			rr := executeAuth(newHandlerWithAuthService(&fakeAuthSvc{}), tt.header, next)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, nextCalled)
				assert.Equal(t, tt.wantUserID, gotUserID)
				return
			}

			assert.False(t, nextCalled, "next must not run for rejected requests")
			assert.Equal(t, `Bearer realm="api"`, rr.Header().Get("WWW-Authenticate"))
			assert.Equal(t, tt.wantDetail, decodeResponse[map[string]string](t, rr)["detail"])
		})
	}
}

func TestAuth_UnexpectedParseFailureIsStill401(t *testing.T) {
	h := newHandlerWithAuthService(&fakeAuthSvc{
		parseTokenFn: func(context.Context, string) (models.Token, error) {
			return models.Token{}, errors.New("db down")
		},
	})

	rr := executeAuth(h, "Bearer "+testToken, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next must not be called")
	}))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCallerID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := callerID(req)
	require.ErrorIs(t, err, service.ErrNotAuthenticated)

	req = req.WithContext(utils.WithUserID(req.Context(), 42))
	userID, err := callerID(req)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}
