package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-recipe-box/internal/config"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return newDB(conn, config.DriverPostgres, NewPostgresErrorClassifier(), logger.Nop()), mock
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &userRepository{db: db, logger: logger.Nop()}, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows(user models.User) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).AddRow(
		user.UserID, user.Email, user.Name, user.PasswordHash,
		user.IsActive, user.IsStaff, user.IsSuperuser, user.CreatedAt,
	)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	user := models.User{
		Email:        "john@example.com",
		Name:         "John",
		PasswordHash: "hash",
		IsActive:     true,
	}
	stored := user
	stored.UserID = 1
	stored.CreatedAt = time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Email, user.Name, user.PasswordHash, true, false, false).
		WillReturnRows(userRows(stored))

	created, err := repo.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, created.Email)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "john@example.com"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "john@example.com"})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	stored := models.User{UserID: 7, Email: "john@example.com", PasswordHash: "hash", IsActive: true, CreatedAt: time.Now()}
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("john@example.com").
		WillReturnRows(userRows(stored))

	found, err := repo.FindUserByEmail(context.Background(), "john@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != 7 || !found.IsActive {
		t.Errorf("unexpected user: %+v", found)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(context.Background(), "missing@example.com")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByID_QueryError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(int64(3)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindUserByID(context.Background(), 3)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	user := models.User{UserID: 3, Email: "new@example.com", Name: "New", PasswordHash: "h"}

	t.Run("success", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery("UPDATE users SET email").
			WithArgs(user.Email, user.Name, user.PasswordHash, user.UserID).
			WillReturnRows(userRows(user))

		updated, err := repo.UpdateUser(context.Background(), user)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Email != user.Email {
			t.Errorf("expected %s, got %s", user.Email, updated.Email)
		}
	})

	t.Run("email taken", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery("UPDATE users SET email").
			WillReturnError(pgError(pgerrcode.UniqueViolation))

		_, err := repo.UpdateUser(context.Background(), user)
		if !errors.Is(err, ErrEmailAlreadyExists) {
			t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery("UPDATE users SET email").
			WillReturnRows(sqlmock.NewRows(userColumns))

		_, err := repo.UpdateUser(context.Background(), user)
		if !errors.Is(err, ErrNoUserWasFound) {
			t.Fatalf("expected ErrNoUserWasFound, got %v", err)
		}
	})
}
