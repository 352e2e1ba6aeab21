// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the typed client of the recipe-box REST API.
//
// [APIClient] hides paths, auth headers and status handling from the CLI.
// Non-2xx responses are mapped to the sentinel errors of errors.go, so
// callers can use [errors.Is] (e.g. [ErrNotFound] for 404, [ErrUnauthorized]
// for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-recipe-box/models"
)

// APIClient talks to a recipe-box server on behalf of one user.
type APIClient interface {
	// SetToken stores the token attached to every authenticated request.
	SetToken(token string)

	// Token returns the stored token, or an empty string.
	Token() string

	Register(ctx context.Context, user models.User) (models.Profile, error)

	// Login exchanges credentials for a token and stores it via SetToken.
	Login(ctx context.Context, credentials models.Credentials) (string, error)

	GetProfile(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.Profile, error)

	ListAttributes(ctx context.Context, kind models.AttributeKind, assignedOnly bool) ([]models.Attribute, error)
	CreateAttribute(ctx context.Context, kind models.AttributeKind, name string) (models.Attribute, error)

	ListRecipes(ctx context.Context, filter models.RecipeFilter) ([]models.RecipeSummary, error)
	GetRecipe(ctx context.Context, recipeID int64) (models.RecipeDetail, error)
	CreateRecipe(ctx context.Context, input models.RecipeInput) (models.RecipeDetail, error)
	UpdateRecipe(ctx context.Context, recipeID int64, input models.RecipeInput, mode models.UpdateMode) (models.RecipeDetail, error)
	DeleteRecipe(ctx context.Context, recipeID int64) error
	UploadImage(ctx context.Context, recipeID int64, file models.ImageFile) (models.RecipeImage, error)

	// ServerVersion returns the build info reported by the server.
	ServerVersion(ctx context.Context) (models.AppBuildInfo, error)
}
