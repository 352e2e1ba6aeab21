package service

import (
	"context"

	"github.com/MKhiriev/go-recipe-box/models"
)

// AuthService registers users, issues and checks tokens and manages the
// caller profile.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	// Login checks credentials and issues a new token. Tokens issued earlier
	// stay valid.
	Login(ctx context.Context, credentials models.Credentials) (models.Token, error)
	// ParseToken resolves a token key to its owner. Every failure is
	// reported as ErrTokenIsExpiredOrInvalid.
	ParseToken(ctx context.Context, key string) (models.Token, error)
	GetProfile(ctx context.Context, userID int64) (models.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.Profile, error)
}

// AttributeService lists and creates the attributes of one kind (tags or
// ingredients) owned by the caller.
type AttributeService interface {
	Kind() models.AttributeKind
	ListAttributes(ctx context.Context, userID int64, assignedOnly bool) ([]models.Attribute, error)
	CreateAttribute(ctx context.Context, userID int64, name string) (models.Attribute, error)
}

// RecipeService manages the recipes of the caller. Recipes owned by someone
// else behave exactly like missing ones.
type RecipeService interface {
	ListRecipes(ctx context.Context, userID int64, filter models.RecipeFilter) ([]models.RecipeSummary, error)
	GetRecipe(ctx context.Context, userID, recipeID int64) (models.RecipeDetail, error)
	CreateRecipe(ctx context.Context, userID int64, input models.RecipeInput) (models.RecipeDetail, error)
	UpdateRecipe(ctx context.Context, userID, recipeID int64, input models.RecipeInput, mode models.UpdateMode) (models.RecipeDetail, error)
	DeleteRecipe(ctx context.Context, userID, recipeID int64) error
	UploadImage(ctx context.Context, userID, recipeID int64, file models.ImageFile) (models.RecipeImage, error)
}

type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppBuildInfo
}
