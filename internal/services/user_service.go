package services

import (
	"context"
	"errors"
	"time"

	"planit/internal/common"
	"planit/internal/models"
	"planit/internal/repositories"
	"planit/internal/validation"
)

// ProfileExpansion selects which owned profiles GetProfile loads.
type ProfileExpansion struct {
	Planner bool
	Vendor  bool
}

// ExpandAll loads both the planner and the vendor profile.
var ExpandAll = ProfileExpansion{Planner: true, Vendor: true}

type UserService interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error)
	GetProfile(ctx context.Context, id models.ID, expand ProfileExpansion) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, id models.ID, req models.UpdateUserRequest, caller *models.User) (*models.User, error)
}

type userService struct {
	store       repositories.ProfileStore
	credentials CredentialService
}

func NewUserService(store repositories.ProfileStore, credentials CredentialService) UserService {
	return &userService{store: store, credentials: credentials}
}

func (s *userService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	_, err := s.store.GetUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, common.NewConflict("User already exists")
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, common.NewInternal("failed to look up user", err)
	}

	hash, err := s.credentials.HashPassword(req.Password)
	if err != nil {
		return nil, common.NewInternal("failed to hash password", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, common.NewConflict("User already exists")
		}
		return nil, common.NewInternal("failed to create user", err)
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	if err := validation.Struct(req); err != nil {
		return nil, "", err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", common.NewNotFound("User")
		}
		return nil, "", common.NewInternal("failed to look up user", err)
	}
	if !s.credentials.ComparePassword(user.PasswordHash, req.Password) {
		return nil, "", common.NewUnauthorized("Invalid credentials")
	}

	token, err := s.credentials.IssueToken(user)
	if err != nil {
		return nil, "", common.NewInternal("failed to issue token", err)
	}
	return user, token, nil
}

func (s *userService) GetProfile(ctx context.Context, id models.ID, expand ProfileExpansion) (*models.UserProfile, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, storeError("User", err)
	}

	profile := &models.UserProfile{User: user}
	if expand.Planner {
		planner, err := s.store.FindPlannerByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, common.NewInternal("failed to load planner", err)
		}
		profile.Planner = planner
	}
	if expand.Vendor {
		vendor, err := s.store.FindVendorByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, common.NewInternal("failed to load vendor", err)
		}
		profile.Vendor = vendor
	}
	return profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id models.ID, req models.UpdateUserRequest, caller *models.User) (*models.User, error) {
	if err := common.AuthorizeSelfOrAdmin(id, caller); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	patch := models.UserPatch{
		FirstName: nonEmpty(req.FirstName),
		LastName:  nonEmpty(req.LastName),
		Phone:     nonEmpty(req.Phone),
	}
	if password := nonEmpty(req.Password); password != nil {
		hash, err := s.credentials.HashPassword(*password)
		if err != nil {
			return nil, common.NewInternal("failed to hash password", err)
		}
		patch.PasswordHash = &hash
	}
	if patch.IsEmpty() {
		return nil, common.NewBadRequest("No valid fields to update")
	}

	user, err := s.store.UpdateUser(ctx, id, patch)
	if err != nil {
		return nil, storeError("User", err)
	}
	return user, nil
}

// nonEmpty drops nil and empty values.
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// storeError maps a store failure for resource onto the service error kinds.
func storeError(resource string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return common.NewNotFound(resource)
	case errors.Is(err, repositories.ErrDuplicate):
		return common.NewConflict(resource + " already exists")
	default:
		return common.NewInternal("failed to access "+resource, err)
	}
}
