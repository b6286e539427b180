package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
			WithArgs("a@b.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(1, "a@b.com"))

		user, err := repo.GetByEmail(ctx, "a@b.com")
		assert.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("missing email is not an error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
			WithArgs("nobody@b.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

		user, err := repo.GetByEmail(ctx, "nobody@b.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdatePassword(ctx, 1, "new-hash")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
