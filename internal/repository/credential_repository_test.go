package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amezav/registro-academico-api/internal/models"
)

func newCredentialMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCredentialRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newCredentialMock(t)
	defer cleanup()
	repo := NewCredentialRepository(db)

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
		AddRow(1, "admin@example.com", "$2a$10$hash", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM auth_users WHERE email = $1 LIMIT 1")).
		WithArgs("admin@example.com").
		WillReturnRows(rows)

	credential, err := repo.FindByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), credential.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepositoryFindByEmailNotFound(t *testing.T) {
	db, mock, cleanup := newCredentialMock(t)
	defer cleanup()
	repo := NewCredentialRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM auth_users WHERE email = $1 LIMIT 1")).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newCredentialMock(t)
	defer cleanup()
	repo := NewCredentialRepository(db)

	mock.ExpectQuery("INSERT INTO auth_users").
		WithArgs("admin@example.com", "$2a$10$hash").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	credential := &models.Credential{Email: "admin@example.com", PasswordHash: "$2a$10$hash"}
	err := repo.Create(context.Background(), credential)
	require.NoError(t, err)
	assert.Equal(t, int64(3), credential.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
