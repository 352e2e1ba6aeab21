package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/models"
	sq "github.com/Masterminds/squirrel"
)

// tokenRepository is the SQL implementation of [TokenRepository] over the
// "auth_tokens" table.
type tokenRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating token repository")
	return &tokenRepository{
		db:     db,
		logger: logger,
	}
}

// SaveToken inserts the digest of a newly issued token. Earlier tokens of the
// same user stay valid.
func (r *tokenRepository) SaveToken(ctx context.Context, token models.StoredToken) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert("auth_tokens").
		Columns(tokenColumns...).
		Values(token.UserID, token.KeyDigest, token.CreatedAt).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*tokenRepository.SaveToken").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "*tokenRepository.SaveToken").
			Int64("user_id", token.UserID).
			Msg("error saving token")
		if r.db.classify(err) == ForeignKeyViolation {
			return ErrNoUserWasFound
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *tokenRepository) FindTokenByDigest(ctx context.Context, keyDigest string) (models.StoredToken, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(tokenColumns...).
		From("auth_tokens").
		Where(sq.Eq{"key_digest": keyDigest}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*tokenRepository.FindTokenByDigest").Msg("error building query")
		return models.StoredToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var token models.StoredToken
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&token.UserID, &token.KeyDigest, &token.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StoredToken{}, ErrTokenNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*tokenRepository.FindTokenByDigest").Msg("error finding token")
		return models.StoredToken{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return token, nil
}
