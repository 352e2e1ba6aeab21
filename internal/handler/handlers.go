package handler

import (
	"github.com/MKhiriev/go-recipe-box/internal/config"
	"github.com/MKhiriev/go-recipe-box/internal/handler/http"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewHandler(services, settingsFromConfig(cfg), logger)}, nil
}

// settingsFromConfig serves the media root over HTTP only for the local
// image backend.
func settingsFromConfig(cfg *config.StructuredConfig) http.Settings {
	settings := http.Settings{
		RequestTimeout: cfg.Server.RequestTimeout,
		MaxUploadSize:  cfg.App.MaxUploadSize,
	}
	if cfg.Storage.Images.Backend == config.ImagesBackendLocal {
		settings.MediaDir = cfg.Storage.Images.Dir
	}

	return settings
}
