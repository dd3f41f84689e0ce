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

func newEnrollmentMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestEnrollmentRepositoryListSubjectsByStudent(t *testing.T) {
	db, mock, cleanup := newEnrollmentMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nombre", "creditos", "horas", "profesor_nombre"}).
		AddRow(2, "Historia", 3, 40, nil).
		AddRow(1, "Matematicas", 4, 60, "Luis Gomez")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE em.estudiante_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	subjects, err := repo.ListSubjectsByStudent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Nil(t, subjects[0].ProfesorNombre)
	require.NotNil(t, subjects[1].ProfesorNombre)
	assert.Equal(t, "Luis Gomez", *subjects[1].ProfesorNombre)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryExists(t *testing.T) {
	db, mock, cleanup := newEnrollmentMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM estudiante_materia WHERE estudiante_id = $1 AND materia_id = $2 LIMIT 1")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM estudiante_materia WHERE estudiante_id = $1 AND materia_id = $2 LIMIT 1")).
		WithArgs(int64(1), int64(3)).
		WillReturnError(sql.ErrNoRows)

	exists, err = repo.Exists(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newEnrollmentMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery("INSERT INTO estudiante_materia").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))

	enrollment := &models.Enrollment{EstudianteID: 1, MateriaID: 2}
	err := repo.Create(context.Background(), enrollment)
	require.NoError(t, err)
	assert.Equal(t, int64(10), enrollment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newEnrollmentMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM estudiante_materia WHERE estudiante_id = $1 AND materia_id = $2")).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Delete(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM estudiante_materia WHERE estudiante_id = $1 AND materia_id = $2")).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err = repo.Delete(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
