package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-recipe-box/internal/config"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/models"
	sq "github.com/Masterminds/squirrel"
)

// recipeRepository is the SQL implementation of [RecipeRepository]. Recipe
// rows live in "recipes"; their tag and ingredient sets in the link tables
// described by attributeTablesByKind.
type recipeRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewRecipeRepository(db *DB, logger *logger.Logger) RecipeRepository {
	logger.Debug().Msg("creating recipe repository")
	return &recipeRepository{
		db:     db,
		logger: logger,
	}
}

// ListRecipes returns the recipes of filter.UserID in id order.
//
// Non-empty filter.TagIDs keeps recipes linked to any of those tags, and
// likewise for filter.IngredientIDs; both filters must hold. Link sets are
// loaded with one extra query per link table.
func (r *recipeRepository) ListRecipes(ctx context.Context, filter models.RecipeFilter) ([]models.Recipe, error) {
	log := logger.FromContext(ctx).With().Int64("user_id", filter.UserID).Logger()

	builder := r.db.builder.
		Select(recipeColumns...).
		From("recipes").
		Where(sq.Eq{"user_id": filter.UserID})
	builder = whereLinked(builder, attributeTablesByKind[models.TagKind], filter.TagIDs)
	builder = whereLinked(builder, attributeTablesByKind[models.IngredientKind], filter.IngredientIDs)

	query, args, err := builder.OrderBy("id").ToSql()
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.ListRecipes").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.ListRecipes").Msg("error listing recipes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	recipes := make([]models.Recipe, 0)
	for rows.Next() {
		recipe, scanErr := scanRecipe(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*recipeRepository.ListRecipes").Msg("failed to scan recipe row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		recipes = append(recipes, recipe)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*recipeRepository.ListRecipes").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if err = r.attachLinks(ctx, r.db, recipes); err != nil {
		log.Err(err).Str("func", "*recipeRepository.ListRecipes").Msg("error loading recipe links")
		return nil, err
	}

	return recipes, nil
}

// FindRecipe returns the recipe with its link sets.
func (r *recipeRepository) FindRecipe(ctx context.Context, userID, recipeID int64) (models.Recipe, error) {
	log := logger.FromContext(ctx).With().Int64("user_id", userID).Int64("recipe_id", recipeID).Logger()

	query, args, err := r.db.builder.
		Select(recipeColumns...).
		From("recipes").
		Where(sq.Eq{"id": recipeID, "user_id": userID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.FindRecipe").Msg("error building query")
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	recipe, err := scanRecipe(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Recipe{}, ErrRecipeNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.FindRecipe").Msg("error finding recipe")
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	recipes := []models.Recipe{recipe}
	if err = r.attachLinks(ctx, r.db, recipes); err != nil {
		log.Err(err).Str("func", "*recipeRepository.FindRecipe").Msg("error loading recipe links")
		return models.Recipe{}, err
	}

	return recipes[0], nil
}

// CreateRecipe inserts the recipe row and its links in one transaction.
// A link to a missing attribute yields [ErrAttributeNotFound].
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	log := logger.FromContext(ctx).With().Int64("user_id", recipe.UserID).Logger()

	query, args, err := r.db.builder.
		Insert("recipes").
		Columns("user_id", "name", "time_minutes", "price", "link", "image").
		Values(recipe.UserID, recipe.Name, recipe.Time, recipe.Price, recipe.Link, recipe.Image).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.CreateRecipe").Msg("error building query")
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.inTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&recipe.ID); err != nil {
			return r.statementError(err)
		}

		return r.insertLinks(ctx, tx, recipe)
	})
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.CreateRecipe").Msg("error creating recipe")
		return models.Recipe{}, err
	}
	log.Debug().Str("func", "*recipeRepository.CreateRecipe").Int64("recipe_id", recipe.ID).Msg("recipe created")

	return normalizeLinks(recipe), nil
}

// UpdateRecipe overwrites name, time, price and link of the recipe and
// replaces both link sets. The stored image is kept.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	log := logger.FromContext(ctx).With().Int64("user_id", recipe.UserID).Int64("recipe_id", recipe.ID).Logger()

	query, args, err := r.db.builder.
		Update("recipes").
		Set("name", recipe.Name).
		Set("time_minutes", recipe.Time).
		Set("price", recipe.Price).
		Set("link", recipe.Link).
		Where(sq.Eq{"id": recipe.ID, "user_id": recipe.UserID}).
		Suffix("RETURNING image").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.UpdateRecipe").Msg("error building query")
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.inTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&recipe.Image); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrRecipeNotFound
			}
			return r.statementError(err)
		}

		if err := r.deleteLinks(ctx, tx, recipe.ID); err != nil {
			return err
		}

		return r.insertLinks(ctx, tx, recipe)
	})
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.UpdateRecipe").Msg("error updating recipe")
		return models.Recipe{}, err
	}

	return normalizeLinks(recipe), nil
}

// DeleteRecipe removes the recipe; link rows go with it by cascade.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, userID, recipeID int64) (string, error) {
	log := logger.FromContext(ctx).With().Int64("user_id", userID).Int64("recipe_id", recipeID).Logger()

	query, args, err := r.db.builder.
		Delete("recipes").
		Where(sq.Eq{"id": recipeID, "user_id": userID}).
		Suffix("RETURNING image").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.DeleteRecipe").Msg("error building query")
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var image string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&image)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrRecipeNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.DeleteRecipe").Msg("error deleting recipe")
		return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return image, nil
}

// UpdateRecipeImage stores image as the recipe image and returns the
// previous value. On PostgreSQL the row is locked between read and write.
func (r *recipeRepository) UpdateRecipeImage(ctx context.Context, userID, recipeID int64, image string) (string, error) {
	log := logger.FromContext(ctx).With().Int64("user_id", userID).Int64("recipe_id", recipeID).Logger()

	selectBuilder := r.db.builder.
		Select("image").
		From("recipes").
		Where(sq.Eq{"id": recipeID, "user_id": userID})
	if r.db.driver == config.DriverPostgres {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}
	selectQuery, selectArgs, err := selectBuilder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.UpdateRecipeImage").Msg("error building query")
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updateQuery, updateArgs, err := r.db.builder.
		Update("recipes").
		Set("image", image).
		Where(sq.Eq{"id": recipeID, "user_id": userID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.UpdateRecipeImage").Msg("error building query")
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var previous string
	err = r.db.inTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, selectQuery, selectArgs...).Scan(&previous); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrRecipeNotFound
			}
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*recipeRepository.UpdateRecipeImage").Msg("error updating recipe image")
		return "", err
	}

	return previous, nil
}

// insertLinks writes the tag and ingredient links of recipe.
func (r *recipeRepository) insertLinks(ctx context.Context, q queryer, recipe models.Recipe) error {
	links := []struct {
		tables attributeTables
		ids    []int64
	}{
		{attributeTablesByKind[models.TagKind], recipe.TagIDs},
		{attributeTablesByKind[models.IngredientKind], recipe.IngredientIDs},
	}

	for _, link := range links {
		if len(link.ids) == 0 {
			continue
		}

		builder := r.db.builder.Insert(link.tables.link).Columns("recipe_id", link.tables.fk)
		for _, id := range link.ids {
			builder = builder.Values(recipe.ID, id)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = q.ExecContext(ctx, query, args...); err != nil {
			return r.statementError(err)
		}
	}

	return nil
}

func (r *recipeRepository) deleteLinks(ctx context.Context, q queryer, recipeID int64) error {
	for _, kind := range []models.AttributeKind{models.TagKind, models.IngredientKind} {
		query, args, err := r.db.builder.
			Delete(attributeTablesByKind[kind].link).
			Where(sq.Eq{"recipe_id": recipeID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = q.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

// attachLinks fills TagIDs and IngredientIDs of every recipe in place.
func (r *recipeRepository) attachLinks(ctx context.Context, q queryer, recipes []models.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	recipeIDs := make([]int64, len(recipes))
	for i := range recipes {
		recipeIDs[i] = recipes[i].ID
	}

	tags, err := r.loadLinks(ctx, q, attributeTablesByKind[models.TagKind], recipeIDs)
	if err != nil {
		return err
	}
	ingredients, err := r.loadLinks(ctx, q, attributeTablesByKind[models.IngredientKind], recipeIDs)
	if err != nil {
		return err
	}

	for i := range recipes {
		recipes[i].TagIDs = tags[recipes[i].ID]
		recipes[i].IngredientIDs = ingredients[recipes[i].ID]
		recipes[i] = normalizeLinks(recipes[i])
	}

	return nil
}

// loadLinks returns the linked attribute ids per recipe id, ascending.
func (r *recipeRepository) loadLinks(ctx context.Context, q queryer, tables attributeTables, recipeIDs []int64) (map[int64][]int64, error) {
	query, args, err := r.db.builder.
		Select("recipe_id", tables.fk).
		From(tables.link).
		Where(sq.Eq{"recipe_id": recipeIDs}).
		OrderBy("recipe_id", tables.fk).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	links := make(map[int64][]int64, len(recipeIDs))
	for rows.Next() {
		var recipeID, attributeID int64
		if err = rows.Scan(&recipeID, &attributeID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		links[recipeID] = append(links[recipeID], attributeID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return links, nil
}

func (r *recipeRepository) statementError(err error) error {
	switch r.db.classify(err) {
	case ForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrAttributeNotFound, err)
	default:
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
}

// whereLinked narrows builder to recipes linked to any of ids.
func whereLinked(builder sq.SelectBuilder, tables attributeTables, ids []int64) sq.SelectBuilder {
	if len(ids) == 0 {
		return builder
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	return builder.Where(
		fmt.Sprintf("id IN (SELECT recipe_id FROM %s WHERE %s IN (%s))", tables.link, tables.fk, sq.Placeholders(len(ids))),
		args...,
	)
}

func scanRecipe(row rowScanner) (models.Recipe, error) {
	var recipe models.Recipe
	err := row.Scan(
		&recipe.ID,
		&recipe.UserID,
		&recipe.Name,
		&recipe.Time,
		&recipe.Price,
		&recipe.Link,
		&recipe.Image,
	)

	return recipe, err
}

// normalizeLinks replaces nil link sets with empty ones so they encode as [].
func normalizeLinks(recipe models.Recipe) models.Recipe {
	if recipe.TagIDs == nil {
		recipe.TagIDs = []int64{}
	}
	if recipe.IngredientIDs == nil {
		recipe.IngredientIDs = []int64{}
	}

	return recipe
}
