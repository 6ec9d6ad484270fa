package repositories

import (
	"context"
	"errors"

	"planit/internal/models"
)

var (
	// ErrNotFound indicates a record does not exist or its id is not valid for the backend.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a unique constraint (email, owner) rejected a write.
	ErrDuplicate = errors.New("record already exists")
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id models.ID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, id models.ID, patch models.UserPatch) (*models.User, error)
}

type PlannerStore interface {
	CreatePlanner(ctx context.Context, planner *models.Planner) error
	GetPlannerByID(ctx context.Context, id models.ID) (*models.Planner, error)
	// FindPlannerByUserID returns the oldest planner owned by userID.
	FindPlannerByUserID(ctx context.Context, userID models.ID) (*models.Planner, error)
	UpdatePlanner(ctx context.Context, id models.ID, patch models.PlannerPatch) (*models.Planner, error)
}

type VendorStore interface {
	CreateVendor(ctx context.Context, vendor *models.Vendor) error
	GetVendorByID(ctx context.Context, id models.ID) (*models.Vendor, error)
	// FindVendorByUserID returns the oldest vendor owned by userID.
	FindVendorByUserID(ctx context.Context, userID models.ID) (*models.Vendor, error)
	UpdateVendor(ctx context.Context, id models.ID, patch models.VendorPatch) (*models.Vendor, error)
}

// ProfileStore is implemented by every persistence backend. The active
// implementation is picked once at startup.
type ProfileStore interface {
	UserStore
	PlannerStore
	VendorStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
