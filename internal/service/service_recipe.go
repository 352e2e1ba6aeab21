package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"slices"
	"strings"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/store"
	"github.com/MKhiriev/go-recipe-box/internal/utils"
	"github.com/MKhiriev/go-recipe-box/internal/validators"
	"github.com/MKhiriev/go-recipe-box/models"
)

// recipeImageDir is the prefix of every stored recipe image name.
const recipeImageDir = "uploads/recipes/"

// nameGenerator produces unique file name stems.
type nameGenerator interface {
	Generate() string
}

// recipeService is the concrete implementation of RecipeService.
type recipeService struct {
	recipes    store.RecipeRepository
	attributes store.AttributeRepository
	images     store.ImageStorage
	validator  validators.Validator
	names      nameGenerator

	logger *logger.Logger
}

func NewRecipeService(recipes store.RecipeRepository, attributes store.AttributeRepository, images store.ImageStorage, logger *logger.Logger) RecipeService {
	return &recipeService{
		recipes:    recipes,
		attributes: attributes,
		images:     images,
		validator:  validators.NewRecipeValidator(),
		names:      utils.NewUUIDGenerator(),
		logger:     logger,
	}
}

// ListRecipes returns the caller's recipes in id order. filter.UserID is
// always overwritten with userID.
func (s *recipeService) ListRecipes(ctx context.Context, userID int64, filter models.RecipeFilter) ([]models.RecipeSummary, error) {
	if err := requireCaller(userID); err != nil {
		return nil, err
	}
	filter.UserID = userID

	recipes, err := s.recipes.ListRecipes(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*recipeService.ListRecipes").Msg("error listing recipes")
		return nil, fmt.Errorf("error listing recipes: %w", err)
	}

	summaries := make([]models.RecipeSummary, len(recipes))
	for i, recipe := range recipes {
		summaries[i] = s.summary(recipe)
	}

	return summaries, nil
}

// GetRecipe returns the recipe with tags and ingredients expanded.
func (s *recipeService) GetRecipe(ctx context.Context, userID, recipeID int64) (models.RecipeDetail, error) {
	if err := requireCaller(userID); err != nil {
		return models.RecipeDetail{}, err
	}

	recipe, err := s.findRecipe(ctx, userID, recipeID)
	if err != nil {
		return models.RecipeDetail{}, err
	}

	tags, err := s.attributes.FindAttributesByIDs(ctx, models.TagKind, userID, recipe.TagIDs)
	if err != nil {
		return models.RecipeDetail{}, fmt.Errorf("error loading recipe tags: %w", err)
	}
	ingredients, err := s.attributes.FindAttributesByIDs(ctx, models.IngredientKind, userID, recipe.IngredientIDs)
	if err != nil {
		return models.RecipeDetail{}, fmt.Errorf("error loading recipe ingredients: %w", err)
	}

	return s.detail(recipe, tags, ingredients), nil
}

// CreateRecipe validates input, checks that every tag and ingredient id
// belongs to the caller and stores the recipe with its links.
func (s *recipeService) CreateRecipe(ctx context.Context, userID int64, input models.RecipeInput) (models.RecipeDetail, error) {
	if err := requireCaller(userID); err != nil {
		return models.RecipeDetail{}, err
	}

	if err := s.validator.Validate(ctx, input, validators.RequiredRecipeFields...); err != nil {
		return models.RecipeDetail{}, err
	}

	recipe := applyInput(models.Recipe{UserID: userID}, input)

	tags, ingredients, err := s.resolveLinks(ctx, userID, recipe.TagIDs, recipe.IngredientIDs)
	if err != nil {
		return models.RecipeDetail{}, err
	}
	recipe.TagIDs, recipe.IngredientIDs = attributeIDs(tags), attributeIDs(ingredients)

	created, err := s.recipes.CreateRecipe(ctx, recipe)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*recipeService.CreateRecipe").Msg("error creating recipe")
		return models.RecipeDetail{}, linkError(fmt.Errorf("error creating recipe: %w", err))
	}

	return s.detail(created, tags, ingredients), nil
}

// UpdateRecipe changes a recipe of the caller.
//
// [models.PartialUpdate] keeps every field the input leaves out.
// [models.FullUpdate] requires name, time and price and clears link, tags
// and ingredients when they are absent. Supplied tags or ingredients always
// replace the whole set.
func (s *recipeService) UpdateRecipe(ctx context.Context, userID, recipeID int64, input models.RecipeInput, mode models.UpdateMode) (models.RecipeDetail, error) {
	if err := requireCaller(userID); err != nil {
		return models.RecipeDetail{}, err
	}

	existing, err := s.findRecipe(ctx, userID, recipeID)
	if err != nil {
		return models.RecipeDetail{}, err
	}

	var required []string
	if mode == models.FullUpdate {
		required = validators.RequiredRecipeFields
		existing.Link = ""
		existing.TagIDs = []int64{}
		existing.IngredientIDs = []int64{}
	}
	if err = s.validator.Validate(ctx, input, required...); err != nil {
		return models.RecipeDetail{}, err
	}

	recipe := applyInput(existing, input)

	tags, ingredients, err := s.resolveLinks(ctx, userID, recipe.TagIDs, recipe.IngredientIDs)
	if err != nil {
		return models.RecipeDetail{}, err
	}
	recipe.TagIDs, recipe.IngredientIDs = attributeIDs(tags), attributeIDs(ingredients)

	updated, err := s.recipes.UpdateRecipe(ctx, recipe)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*recipeService.UpdateRecipe").Int64("recipe_id", recipeID).Msg("error updating recipe")
		return models.RecipeDetail{}, linkError(fmt.Errorf("error updating recipe: %w", err))
	}

	return s.detail(updated, tags, ingredients), nil
}

// DeleteRecipe removes the recipe and then evicts its image.
func (s *recipeService) DeleteRecipe(ctx context.Context, userID, recipeID int64) error {
	if err := requireCaller(userID); err != nil {
		return err
	}

	imageName, err := s.recipes.DeleteRecipe(ctx, userID, recipeID)
	if err != nil {
		return fmt.Errorf("error deleting recipe: %w", err)
	}

	s.evictImage(ctx, imageName)

	return nil
}

// UploadImage stores file as the recipe image under a fresh
// uploads/recipes/<uuid>.<ext> name and evicts the previous image.
//
// The payload must decode as JPEG, PNG or GIF. On any failure the recipe
// keeps its current image.
func (s *recipeService) UploadImage(ctx context.Context, userID, recipeID int64, file models.ImageFile) (models.RecipeImage, error) {
	log := logger.FromContext(ctx)

	if err := requireCaller(userID); err != nil {
		return models.RecipeImage{}, err
	}

	if _, err := s.findRecipe(ctx, userID, recipeID); err != nil {
		return models.RecipeImage{}, err
	}

	if len(file.Data) == 0 {
		return models.RecipeImage{}, validators.NewValidationError(validators.FieldImage, validators.MsgNoFile)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(file.Data))
	if err != nil {
		log.Debug().Err(err).Str("func", "*recipeService.UploadImage").Msg("payload is not an image")
		return models.RecipeImage{}, validators.NewValidationError(validators.FieldImage, validators.MsgInvalidImage)
	}

	name := recipeImageDir + s.names.Generate() + imageExt(file.Name, format)
	if err = s.images.SaveImage(ctx, name, file.Data, "image/"+format); err != nil {
		log.Err(err).Str("func", "*recipeService.UploadImage").Msg("error saving image")
		return models.RecipeImage{}, fmt.Errorf("%w: %w", ErrSavingImage, err)
	}

	previous, err := s.recipes.UpdateRecipeImage(ctx, userID, recipeID, name)
	if err != nil {
		log.Err(err).Str("func", "*recipeService.UploadImage").Int64("recipe_id", recipeID).Msg("error attaching image")
		s.evictImage(ctx, name)
		return models.RecipeImage{}, fmt.Errorf("error attaching image: %w", err)
	}

	s.evictImage(ctx, previous)

	return models.RecipeImage{ID: recipeID, Image: s.images.URL(name)}, nil
}

func (s *recipeService) findRecipe(ctx context.Context, userID, recipeID int64) (models.Recipe, error) {
	recipe, err := s.recipes.FindRecipe(ctx, userID, recipeID)
	if err != nil {
		if !errors.Is(err, store.ErrRecipeNotFound) {
			logger.FromContext(ctx).Err(err).Str("func", "*recipeService.findRecipe").Int64("recipe_id", recipeID).Msg("error loading recipe")
		}
		return models.Recipe{}, fmt.Errorf("error loading recipe: %w", err)
	}

	return recipe, nil
}

// resolveLinks loads the caller's tags and ingredients among the given ids.
// Any id that does not resolve becomes a field error.
func (s *recipeService) resolveLinks(ctx context.Context, userID int64, tagIDs, ingredientIDs []int64) ([]models.Attribute, []models.Attribute, error) {
	errs := new(validators.ValidationError)

	tags, err := s.resolve(ctx, userID, models.TagKind, validators.FieldTags, tagIDs, errs)
	if err != nil {
		return nil, nil, err
	}
	ingredients, err := s.resolve(ctx, userID, models.IngredientKind, validators.FieldIngredients, ingredientIDs, errs)
	if err != nil {
		return nil, nil, err
	}

	if err = errs.Err(); err != nil {
		return nil, nil, err
	}

	return tags, ingredients, nil
}

func (s *recipeService) resolve(ctx context.Context, userID int64, kind models.AttributeKind, field string, ids []int64, errs *validators.ValidationError) ([]models.Attribute, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []models.Attribute{}, nil
	}

	found, err := s.attributes.FindAttributesByIDs(ctx, kind, userID, ids)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*recipeService.resolve").Str("kind", string(kind)).Msg("error loading attributes")
		return nil, fmt.Errorf("error loading %ss: %w", kind, err)
	}

	for _, id := range ids {
		if !slices.ContainsFunc(found, func(a models.Attribute) bool { return a.ID == id }) {
			errs.Add(field, fmt.Sprintf(validators.MsgInvalidPK, id))
			break
		}
	}

	return found, nil
}

// evictImage deletes a replaced or orphaned image. Failures are only logged:
// the database already stopped referencing the file.
func (s *recipeService) evictImage(ctx context.Context, name string) {
	if name == "" {
		return
	}

	err := s.images.DeleteImage(ctx, name)
	if err != nil && !errors.Is(err, store.ErrImageNotFound) {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "*recipeService.evictImage").
			Str("image", name).
			Msg("error deleting image")
	}
}

func (s *recipeService) summary(recipe models.Recipe) models.RecipeSummary {
	return models.RecipeSummary{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Time:        recipe.Time,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Image:       s.imageURL(recipe.Image),
		Tags:        nonNilIDs(recipe.TagIDs),
		Ingredients: nonNilIDs(recipe.IngredientIDs),
	}
}

func (s *recipeService) detail(recipe models.Recipe, tags, ingredients []models.Attribute) models.RecipeDetail {
	if tags == nil {
		tags = []models.Attribute{}
	}
	if ingredients == nil {
		ingredients = []models.Attribute{}
	}

	return models.RecipeDetail{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Time:        recipe.Time,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Image:       s.imageURL(recipe.Image),
		Tags:        tags,
		Ingredients: ingredients,
	}
}

func (s *recipeService) imageURL(name string) *string {
	if name == "" {
		return nil
	}

	url := s.images.URL(name)
	return &url
}

// applyInput copies the supplied fields of input onto recipe.
func applyInput(recipe models.Recipe, input models.RecipeInput) models.Recipe {
	if input.Name != nil {
		recipe.Name = strings.TrimSpace(*input.Name)
	}
	if input.Time != nil {
		recipe.Time = *input.Time
	}
	if input.Price != nil {
		recipe.Price = *input.Price
	}
	if input.Link != nil {
		recipe.Link = strings.TrimSpace(*input.Link)
	}
	if input.Tags != nil {
		recipe.TagIDs = *input.Tags
	}
	if input.Ingredients != nil {
		recipe.IngredientIDs = *input.Ingredients
	}

	return recipe
}

// linkError turns a lost race on a deleted tag or ingredient into a
// validation error.
func linkError(err error) error {
	if errors.Is(err, store.ErrAttributeNotFound) {
		return validators.NewValidationError(validators.FieldNonField, "A tag or ingredient of this recipe no longer exists.")
	}

	return err
}

// imageExtensions lists the extensions accepted for each decoded format. The
// first one is used when the client name does not match.
var imageExtensions = map[string][]string{
	"jpeg": {".jpg", ".jpeg"},
	"png":  {".png"},
	"gif":  {".gif"},
}

// imageExt keeps the client's extension only when it agrees with the decoded
// format, so a stored file is always served with an image content type.
func imageExt(fileName, format string) string {
	allowed, ok := imageExtensions[format]
	if !ok {
		return "." + format
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if slices.Contains(allowed, ext) {
		return ext
	}

	return allowed[0]
}

func attributeIDs(attributes []models.Attribute) []int64 {
	ids := make([]int64, len(attributes))
	for i, a := range attributes {
		ids[i] = a.ID
	}

	return ids
}

func uniqueIDs(ids []int64) []int64 {
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(unique, id) {
			unique = append(unique, id)
		}
	}

	return unique
}

func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}

	return ids
}

// requireCaller rejects operations without a resolved caller.
func requireCaller(userID int64) error {
	if userID <= 0 {
		return ErrNotAuthenticated
	}

	return nil
}
