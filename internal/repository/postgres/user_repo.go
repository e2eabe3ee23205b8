package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"confdesk/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

// NewUserRepository returns a domain.UserRepository implemented with Postgres.
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, email, name, role, is_staff, is_active, affiliation, background, phone_number, password_hash, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (email, name, role, is_staff, is_active, affiliation, background, phone_number, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		user.Email, user.Name, user.Role, user.IsStaff, user.IsActive,
		user.Affiliation, user.Background, user.PhoneNumber, user.PasswordHash,
		user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email already in use: %w", domain.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return r.scanUser(r.DB.QueryRowContext(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.scanUser(r.DB.QueryRowContext(ctx, query, id))
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var affiliation, background sql.NullString
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.IsStaff, &u.IsActive,
		&affiliation, &background, &u.PhoneNumber, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if affiliation.Valid {
		u.Affiliation = &affiliation.String
	}
	if background.Valid {
		u.Background = &background.String
	}
	return u, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, userID string, patch *domain.UserProfilePatch) error {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if patch.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *patch.Name)
		n++
	}
	if patch.Affiliation != nil {
		setClauses = append(setClauses, fmt.Sprintf("affiliation = $%d", n))
		args = append(args, *patch.Affiliation)
		n++
	}
	if patch.Background != nil {
		setClauses = append(setClauses, fmt.Sprintf("background = $%d", n))
		args = append(args, *patch.Background)
		n++
	}
	if patch.PhoneNumber != nil {
		setClauses = append(setClauses, fmt.Sprintf("phone_number = $%d", n))
		args = append(args, *patch.PhoneNumber)
		n++
	}
	args = append(args, userID)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), n)
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
