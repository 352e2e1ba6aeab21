package store

import (
	"context"

	"github.com/MKhiriev/go-recipe-box/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser inserts user and returns it with UserID and CreatedAt set.
	// Returns [ErrEmailAlreadyExists] when the email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail returns [ErrNoUserWasFound] when no row matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	// UpdateUser writes email, name and password hash of user.UserID.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
}

// TokenRepository keeps the digests of issued tokens. A user may hold
// several tokens at once.
type TokenRepository interface {
	// SaveToken stores the digest of a newly issued token.
	SaveToken(ctx context.Context, token models.StoredToken) error
	// FindTokenByDigest returns [ErrTokenNotFound] when no token has that digest.
	FindTokenByDigest(ctx context.Context, keyDigest string) (models.StoredToken, error)
}

// AttributeRepository stores tags and ingredients. The kind argument selects
// the table.
type AttributeRepository interface {
	ListAttributes(ctx context.Context, kind models.AttributeKind, filter models.AttributeFilter) ([]models.Attribute, error)
	CreateAttribute(ctx context.Context, kind models.AttributeKind, attribute models.Attribute) (models.Attribute, error)
	// FindAttributesByIDs returns the rows among ids owned by userID, in id order.
	FindAttributesByIDs(ctx context.Context, kind models.AttributeKind, userID int64, ids []int64) ([]models.Attribute, error)
}

// RecipeRepository stores recipes together with their tag and ingredient links.
// Every method is scoped to recipe.UserID / userID; recipes of other users
// are reported as [ErrRecipeNotFound].
type RecipeRepository interface {
	ListRecipes(ctx context.Context, filter models.RecipeFilter) ([]models.Recipe, error)
	FindRecipe(ctx context.Context, userID, recipeID int64) (models.Recipe, error)
	CreateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error)
	// UpdateRecipe overwrites the scalar fields and replaces both link sets.
	UpdateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error)
	// DeleteRecipe removes the recipe and returns its stored image name.
	DeleteRecipe(ctx context.Context, userID, recipeID int64) (string, error)
	// UpdateRecipeImage sets the image name and returns the previous one.
	UpdateRecipeImage(ctx context.Context, userID, recipeID int64, image string) (string, error)
}

// ImageStorage keeps image bytes under generated names.
type ImageStorage interface {
	SaveImage(ctx context.Context, name string, data []byte, contentType string) error
	// DeleteImage returns [ErrImageNotFound] when name does not exist.
	DeleteImage(ctx context.Context, name string) error
	// URL returns the public address of a stored image.
	URL(name string) string
}
