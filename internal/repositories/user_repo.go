package repositories

import (
	"context"
	"fmt"

	"planit/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `id, first_name, last_name, email, phone, password_hash, role, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		user  models.User
		id    int64
		phone pgtype.Text
		role  string
	)
	err := row.Scan(&id, &user.FirstName, &user.LastName, &user.Email, &phone, &user.PasswordHash, &role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	user.ID = formatID(id)
	user.Phone = textPtr(phone)
	user.Role = models.Role(role)
	return &user, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (first_name, last_name, email, phone, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var id int64
	err := s.db.QueryRow(ctx, query, user.FirstName, user.LastName, user.Email, user.Phone, user.PasswordHash, string(user.Role), user.CreatedAt, user.UpdatedAt).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", translateError(err))
	}
	user.ID = formatID(id)
	return nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id models.ID) (*models.User, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(s.db.QueryRow(ctx, query, key))
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(s.db.QueryRow(ctx, query, email))
}

func (s *PostgresStore) UpdateUser(ctx context.Context, id models.ID, patch models.UserPatch) (*models.User, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}
	b := &updateBuilder{}
	if patch.FirstName != nil {
		b.set("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		b.set("last_name", *patch.LastName)
	}
	if patch.Phone != nil {
		b.set("phone", *patch.Phone)
	}
	if patch.PasswordHash != nil {
		b.set("password_hash", *patch.PasswordHash)
	}
	query, args := b.build("users", key, userColumns)
	return scanUser(s.db.QueryRow(ctx, query, args...))
}
