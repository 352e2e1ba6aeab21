package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/models"
	sq "github.com/Masterminds/squirrel"
)

// attributeRepository is the SQL implementation of [AttributeRepository].
// Tags and ingredients share the row shape, so one implementation serves
// both; the kind argument picks the tables from attributeTablesByKind.
type attributeRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewAttributeRepository(db *DB, logger *logger.Logger) AttributeRepository {
	logger.Debug().Msg("creating attribute repository")
	return &attributeRepository{
		db:     db,
		logger: logger,
	}
}

// ListAttributes returns the attributes of filter.UserID ordered by name
// descending, newest first among equal names.
//
// With filter.AssignedOnly only attributes linked to at least one recipe of
// the same owner are returned. The EXISTS predicate keeps every attribute at
// most once however many recipes use it.
func (r *attributeRepository) ListAttributes(ctx context.Context, kind models.AttributeKind, filter models.AttributeFilter) ([]models.Attribute, error) {
	log := logger.FromContext(ctx).With().Str("kind", string(kind)).Int64("user_id", filter.UserID).Logger()

	tables, err := tablesOf(kind)
	if err != nil {
		return nil, err
	}

	builder := r.db.builder.
		Select("a.id", "a.name", "a.user_id").
		From(tables.table + " a").
		Where(sq.Eq{"a.user_id": filter.UserID})

	if filter.AssignedOnly {
		builder = builder.Where(fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s l JOIN recipes r ON r.id = l.recipe_id WHERE l.%s = a.id AND r.user_id = a.user_id)",
			tables.link, tables.fk,
		))
	}

	query, args, err := builder.OrderBy("a.name DESC", "a.id DESC").ToSql()
	if err != nil {
		log.Err(err).Str("func", "*attributeRepository.ListAttributes").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	attributes, err := queryAttributes(ctx, r.db, query, args)
	if err != nil {
		log.Err(err).Str("func", "*attributeRepository.ListAttributes").Msg("error listing attributes")
		return nil, err
	}

	return attributes, nil
}

// CreateAttribute inserts attribute for attribute.UserID.
func (r *attributeRepository) CreateAttribute(ctx context.Context, kind models.AttributeKind, attribute models.Attribute) (models.Attribute, error) {
	log := logger.FromContext(ctx).With().Str("kind", string(kind)).Int64("user_id", attribute.UserID).Logger()

	tables, err := tablesOf(kind)
	if err != nil {
		return models.Attribute{}, err
	}

	query, args, err := r.db.builder.
		Insert(tables.table).
		Columns("name", "user_id").
		Values(attribute.Name, attribute.UserID).
		Suffix("RETURNING id, name, user_id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*attributeRepository.CreateAttribute").Msg("error building query")
		return models.Attribute{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.Attribute
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.Name, &created.UserID); err != nil {
		log.Err(err).Str("func", "*attributeRepository.CreateAttribute").Msg("error inserting attribute")
		if r.db.classify(err) == ForeignKeyViolation {
			return models.Attribute{}, ErrNoUserWasFound
		}
		return models.Attribute{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// FindAttributesByIDs returns the attributes among ids owned by userID.
// Ids of missing or foreign rows are silently absent from the result.
func (r *attributeRepository) FindAttributesByIDs(ctx context.Context, kind models.AttributeKind, userID int64, ids []int64) ([]models.Attribute, error) {
	if len(ids) == 0 {
		return []models.Attribute{}, nil
	}

	tables, err := tablesOf(kind)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx).With().Str("kind", string(kind)).Int64("user_id", userID).Logger()

	query, args, err := r.db.builder.
		Select("id", "name", "user_id").
		From(tables.table).
		Where(sq.Eq{"user_id": userID, "id": ids}).
		OrderBy("id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*attributeRepository.FindAttributesByIDs").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	attributes, err := queryAttributes(ctx, r.db, query, args)
	if err != nil {
		log.Err(err).Str("func", "*attributeRepository.FindAttributesByIDs").Msg("error finding attributes")
		return nil, err
	}

	return attributes, nil
}

func queryAttributes(ctx context.Context, q queryer, query string, args []any) ([]models.Attribute, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	attributes := make([]models.Attribute, 0)
	for rows.Next() {
		var attribute models.Attribute
		if err = rows.Scan(&attribute.ID, &attribute.Name, &attribute.UserID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		attributes = append(attributes, attribute)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return attributes, nil
}
