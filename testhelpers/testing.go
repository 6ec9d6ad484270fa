package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"planit/internal/models"
	"planit/internal/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Store   *repositories.PostgresStore
	Cleanup func() error
}

// SetupTestDB connects to TEST_DATABASE_URL and migrates the schema. The
// test is skipped when the variable is unset.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	store := repositories.NewPostgresStore(pool)
	if err := store.Migrate(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return &TestDB{
		Pool:  pool,
		Store: store,
		Cleanup: func() error {
			_, err := pool.Exec(context.Background(), `TRUNCATE vendors, planners, users RESTART IDENTITY CASCADE`)
			pool.Close()
			return err
		},
	}
}

// SeedUser stores a user with the given email and role.
func SeedUser(t *testing.T, store repositories.UserStore, email string, role models.Role) *models.User {
	t.Helper()

	now := time.Now().UTC()
	user := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}
