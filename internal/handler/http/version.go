package http

import (
	"net/http"

	"github.com/MKhiriev/go-recipe-box/internal/utils"
)

// getServerVersion handles GET /version/.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.GetAppInfo(r.Context()), http.StatusOK)
}
