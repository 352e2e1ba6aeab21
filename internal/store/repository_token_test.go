package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRepository_SaveToken(t *testing.T) {
	token := models.StoredToken{UserID: 1, KeyDigest: "digest", CreatedAt: time.Now()}

	t.Run("inserts without replacing earlier tokens", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTokenRepository(db, logger.Nop())

		mock.ExpectExec(`^INSERT INTO auth_tokens \(user_id,key_digest,created_at\) VALUES \(\$1,\$2,\$3\)$`).
			WithArgs(token.UserID, token.KeyDigest, token.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SaveToken(context.Background(), token))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTokenRepository(db, logger.Nop())

		mock.ExpectExec("INSERT INTO auth_tokens").
			WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

		err := repo.SaveToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrNoUserWasFound)
	})
}

func TestTokenRepository_FindTokenByDigest(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTokenRepository(db, logger.Nop())

		now := time.Now()
		mock.ExpectQuery("SELECT user_id, key_digest, created_at FROM auth_tokens WHERE key_digest").
			WithArgs("digest").
			WillReturnRows(sqlmock.NewRows(tokenColumns).AddRow(int64(5), "digest", now))

		token, err := repo.FindTokenByDigest(context.Background(), "digest")
		require.NoError(t, err)
		assert.Equal(t, "digest", token.KeyDigest)
		assert.Equal(t, int64(5), token.UserID)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTokenRepository(db, logger.Nop())

		mock.ExpectQuery("FROM auth_tokens").WillReturnError(sql.ErrNoRows)

		_, err := repo.FindTokenByDigest(context.Background(), "digest")
		assert.ErrorIs(t, err, ErrTokenNotFound)
	})

	t.Run("driver error", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewTokenRepository(db, logger.Nop())

		mock.ExpectQuery("FROM auth_tokens").WillReturnError(errors.New("boom"))

		_, err := repo.FindTokenByDigest(context.Background(), "digest")
		assert.ErrorIs(t, err, ErrExecutingQuery)
	})
}
