package http

import (
	"time"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/service"
)

// Settings tune the HTTP transport.
type Settings struct {
	// RequestTimeout bounds a single request. Zero disables the timeout.
	RequestTimeout time.Duration

	// MaxUploadSize caps the body of an image upload, in bytes.
	MaxUploadSize int64

	// MediaDir is served read-only under /media/. Empty disables the route.
	MediaDir string
}

type Handler struct {
	services *service.Services
	settings Settings

	logger *logger.Logger
}

func NewHandler(services *service.Services, settings Settings, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		settings: settings,
		logger:   logger,
	}
}
