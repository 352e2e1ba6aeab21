package service

import (
	"github.com/MKhiriev/go-recipe-box/internal/config"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/store"
	"github.com/MKhiriev/go-recipe-box/models"
)

type Services struct {
	AuthService       AuthService
	TagService        AttributeService
	IngredientService AttributeService
	RecipeService     RecipeService
	AppInfoService    AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:       NewAuthService(storages.UserRepository, storages.TokenRepository, cfg.App, logger),
		TagService:        NewAttributeService(models.TagKind, storages.AttributeRepository, logger),
		IngredientService: NewAttributeService(models.IngredientKind, storages.AttributeRepository, logger),
		RecipeService:     NewRecipeService(storages.RecipeRepository, storages.AttributeRepository, storages.ImageStorage, logger),
		AppInfoService:    appInfoService,
	}, nil
}
