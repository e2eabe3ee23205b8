package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"confdesk/internal/domain"
)

var userCols = []string{
	"id", "email", "name", "role", "is_staff", "is_active",
	"affiliation", "background", "phone_number", "password_hash",
	"created_at", "updated_at",
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	user := &domain.User{
		Email: "ada@example.com", Name: "Ada", Role: domain.RoleAuthor,
		IsActive: true, PasswordHash: "hash", CreatedAt: now, UpdatedAt: now,
	}

	t.Run("success returns generated id", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("ada@example.com", "Ada", "author", false, true,
				nil, nil, "", "hash", now, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-uuid-1"))

		repo := NewUserRepository(db)
		require.NoError(t, repo.Create(ctx, user))
		require.Equal(t, "u-uuid-1", user.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505"})

		repo := NewUserRepository(db)
		require.ErrorIs(t, repo.Create(ctx, user), domain.ErrConflict)
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success with nullable fields set", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
			WithArgs("ada@example.com").
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow("u-1", "ada@example.com", "Ada", "author", false, true,
					"Analytical Engines Ltd", nil, "", "hash", now, now))

		repo := NewUserRepository(db)
		user, err := repo.GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		require.Equal(t, domain.RoleAuthor, user.Role)
		require.NotNil(t, user.Affiliation)
		require.Equal(t, "Analytical Engines Ltd", *user.Affiliation)
		require.Nil(t, user.Background)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
			WithArgs("ghost@example.com").
			WillReturnError(sql.ErrNoRows)

		repo := NewUserRepository(db)
		_, err = repo.GetByEmail(ctx, "ghost@example.com")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("sets only supplied fields", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectExec(`UPDATE users SET updated_at = NOW\(\), name = \$1, affiliation = \$2 WHERE id = \$3`).
			WithArgs("Ada L.", "Analytical Engines Ltd", "u-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewUserRepository(db)
		name := "Ada L."
		affiliation := "Analytical Engines Ltd"
		err = repo.UpdateProfile(ctx, "u-1", &domain.UserProfilePatch{Name: &name, Affiliation: &affiliation})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user is not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectExec(`UPDATE users SET updated_at = NOW\(\), name = \$1 WHERE id = \$2`).
			WithArgs("Ada L.", "u-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewUserRepository(db)
		name := "Ada L."
		err = repo.UpdateProfile(ctx, "u-missing", &domain.UserProfilePatch{Name: &name})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
