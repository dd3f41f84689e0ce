package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amezav/registro-academico-api/internal/models"
)

func newStudentMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func studentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "nombre_completo", "fecha_nacimiento", "email", "telefono", "matricula", "carrera", "anio_semestre", "promedio", "estado", "fecha_ingreso", "fecha_egreso", "direccion"}).
		AddRow(1, "Ana Perez", "2000-04-15", "ana@example.com", nil, "M1", "Sistemas", "2024-1", 17.5, "activo", "2024-03-01", nil, nil)
}

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM estudiantes ORDER BY id ASC")).
		WillReturnRows(studentRows())

	students, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Ana Perez", students[0].NombreCompleto)
	assert.Equal(t, "2000-04-15", students[0].FechaNacimiento)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryRoster(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nombre_completo", "matricula", "email"}).
		AddRow(2, "Bruno Diaz", "M2", "bruno@example.com").
		AddRow(1, "Carla Ruiz", "M1", "carla@example.com")
	mock.ExpectQuery(regexp.QuoteMeta("FROM estudiantes ORDER BY nombre_completo")).
		WillReturnRows(rows)

	entries, err := repo.Roster(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Bruno Diaz", entries[0].NombreCompleto)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM estudiantes WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 99)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryExistsByEmailOrMatricula(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM estudiantes WHERE (email = $1 OR matricula = $2) LIMIT 1")).
		WithArgs("ana@example.com", "M1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsByEmailOrMatricula(context.Background(), "ana@example.com", "M1", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM estudiantes WHERE (email = $1 OR matricula = $2) AND id <> $3 LIMIT 1")).
		WithArgs("ana@example.com", "M1", int64(7)).
		WillReturnError(sql.ErrNoRows)

	exists, err = repo.ExistsByEmailOrMatricula(context.Background(), "ana@example.com", "M1", 7)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("INSERT INTO estudiantes").
		WithArgs("Ana Perez", "2000-04-15", "ana@example.com", nil, "M1", "Sistemas", "2024-1", nil, "activo", "2024-03-01", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	student := &models.Student{
		NombreCompleto:  "Ana Perez",
		FechaNacimiento: "2000-04-15",
		Email:           "ana@example.com",
		Matricula:       "M1",
		Carrera:         "Sistemas",
		AnioSemestre:    "2024-1",
		Estado:          "activo",
		FechaIngreso:    "2024-03-01",
	}
	err := repo.Create(context.Background(), student)
	require.NoError(t, err)
	assert.Equal(t, int64(5), student.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateFields(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE estudiantes SET carrera = $1 WHERE id = $2")).
		WithArgs("Industrial", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateFields(context.Background(), 3, map[string]interface{}{"carrera": "Industrial"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM estudiantes WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCountEnrollments(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM estudiante_materia WHERE estudiante_id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountEnrollments(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
