package repository

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestCategoryRepository_Create_UniqueViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "categories"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.Create(ctx, &models.Category{Name: "Tech"})
	assert.Error(t, err)

	var appErr *models.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_GetByName_CaseSensitive(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE name = \$1`).
		WithArgs("Tech").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Tech"))

	category, err := repo.GetByName(ctx, "Tech")
	assert.NoError(t, err)
	assert.Equal(t, uint(1), category.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"pg other code", &pgconn.PgError{Code: "23503"}, false},
		{"sqlite message", errors.New("UNIQUE constraint failed: categories.name"), true},
		{"unrelated", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isUniqueViolation(tt.err))
		})
	}
}
