package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amezav/registro-academico-api/internal/models"
)

func newProfessorMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestProfessorRepositoryList(t *testing.T) {
	db, mock, cleanup := newProfessorMock(t)
	defer cleanup()
	repo := NewProfessorRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nombres", "cedula"}).
		AddRow(1, "Luis Gomez", "1234567")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, nombres, cedula FROM profesores ORDER BY id ASC")).
		WillReturnRows(rows)

	professors, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, professors, 1)
	assert.Equal(t, "Luis Gomez", professors[0].Nombres)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfessorRepositoryExistsByCedula(t *testing.T) {
	db, mock, cleanup := newProfessorMock(t)
	defer cleanup()
	repo := NewProfessorRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM profesores WHERE cedula = $1 LIMIT 1")).
		WithArgs("1234567").
		WillReturnError(sql.ErrNoRows)

	exists, err := repo.ExistsByCedula(context.Background(), "1234567", 0)
	require.NoError(t, err)
	assert.False(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM profesores WHERE cedula = $1 AND id <> $2 LIMIT 1")).
		WithArgs("1234567", int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err = repo.ExistsByCedula(context.Background(), "1234567", 4)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfessorRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newProfessorMock(t)
	defer cleanup()
	repo := NewProfessorRepository(db)

	mock.ExpectQuery("INSERT INTO profesores").
		WithArgs("Luis Gomez", "1234567").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))

	professor := &models.Professor{Nombres: "Luis Gomez", Cedula: "1234567"}
	err := repo.Create(context.Background(), professor)
	require.NoError(t, err)
	assert.Equal(t, int64(8), professor.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfessorRepositoryCountSubjects(t *testing.T) {
	db, mock, cleanup := newProfessorMock(t)
	defer cleanup()
	repo := NewProfessorRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM materias WHERE profesor_id = $1")).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountSubjects(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfessorRepositoryDeleteNoRows(t *testing.T) {
	db, mock, cleanup := newProfessorMock(t)
	defer cleanup()
	repo := NewProfessorRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM profesores WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Delete(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
