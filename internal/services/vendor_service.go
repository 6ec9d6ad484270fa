package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"planit/internal/common"
	"planit/internal/models"
	"planit/internal/repositories"
	"planit/internal/validation"
)

type VendorService interface {
	// Onboard creates the user's vendor profile or updates the one it already has.
	// Only the user named in the request or an admin may onboard.
	Onboard(ctx context.Context, req models.OnboardVendorRequest, caller *models.User) (*models.Vendor, error)
	Get(ctx context.Context, id models.ID, caller *models.User) (*models.VendorDetail, error)
	Update(ctx context.Context, id models.ID, req models.UpdateVendorRequest, caller *models.User) (*models.Vendor, error)
}

type vendorService struct {
	store repositories.ProfileStore
}

func NewVendorService(store repositories.ProfileStore) VendorService {
	return &vendorService{store: store}
}

func (s *vendorService) Onboard(ctx context.Context, req models.OnboardVendorRequest, caller *models.User) (*models.Vendor, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	years, err := parseYears(req.YearsOfExperience)
	if err != nil {
		return nil, err
	}
	if err := common.AuthorizeSelfOrAdmin(req.UserID, caller); err != nil {
		return nil, err
	}
	if _, err := s.store.GetUserByID(ctx, req.UserID); err != nil {
		return nil, storeError("User", err)
	}

	existing, err := s.store.FindVendorByUserID(ctx, req.UserID)
	switch {
	case err == nil:
		return s.reonboard(ctx, existing.ID, req, years)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, common.NewInternal("failed to look up vendor", err)
	}

	now := time.Now().UTC()
	vendor := &models.Vendor{
		UserID:            req.UserID,
		CompanyName:       req.CompanyName,
		BusinessAddress:   req.BusinessAddress,
		CacNumber:         optional(req.CacNumber),
		ServiceCategories: optional(req.ServiceCategories),
		YearsOfExperience: years,
		Phone:             optional(req.Phone),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	err = s.store.CreateVendor(ctx, vendor)
	if errors.Is(err, repositories.ErrDuplicate) {
		existing, err = s.store.FindVendorByUserID(ctx, req.UserID)
		if err != nil {
			return nil, storeError("Vendor", err)
		}
		return s.reonboard(ctx, existing.ID, req, years)
	}
	if err != nil {
		return nil, common.NewInternal("failed to create vendor", err)
	}
	return vendor, nil
}

func (s *vendorService) reonboard(ctx context.Context, id models.ID, req models.OnboardVendorRequest, years *int) (*models.Vendor, error) {
	patch := models.VendorPatch{
		CompanyName:       models.AssignValue(req.CompanyName),
		BusinessAddress:   models.AssignValue(req.BusinessAddress),
		CacNumber:         models.AssignIfPresent(optional(req.CacNumber)),
		ServiceCategories: models.AssignIfPresent(optional(req.ServiceCategories)),
		YearsOfExperience: models.AssignIfPresent(years),
		Phone:             models.AssignIfPresent(optional(req.Phone)),
	}
	vendor, err := s.store.UpdateVendor(ctx, id, patch)
	if err != nil {
		return nil, storeError("Vendor", err)
	}
	return vendor, nil
}

func (s *vendorService) Get(ctx context.Context, id models.ID, caller *models.User) (*models.VendorDetail, error) {
	vendor, err := s.store.GetVendorByID(ctx, id)
	if err != nil {
		return nil, storeError("Vendor", err)
	}
	if err := common.AuthorizeSelfOrAdmin(vendor.UserID, caller); err != nil {
		return nil, err
	}

	owner, err := s.store.GetUserByID(ctx, vendor.UserID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, common.NewInternal("failed to load vendor owner", err)
	}
	return &models.VendorDetail{Vendor: vendor, User: owner}, nil
}

func (s *vendorService) Update(ctx context.Context, id models.ID, req models.UpdateVendorRequest, caller *models.User) (*models.Vendor, error) {
	vendor, err := s.store.GetVendorByID(ctx, id)
	if err != nil {
		return nil, storeError("Vendor", err)
	}
	if err := common.AuthorizeSelfOrAdmin(vendor.UserID, caller); err != nil {
		return nil, err
	}

	patch := models.VendorPatch{
		CompanyName:       models.AssignIfPresent(req.CompanyName),
		BusinessAddress:   models.AssignIfPresent(req.BusinessAddress),
		CacNumber:         models.AssignIfPresent(req.CacNumber),
		ServiceCategories: models.AssignIfPresent(req.ServiceCategories),
		Phone:             models.AssignIfPresent(req.Phone),
	}
	if req.YearsOfExperience != nil {
		// An explicit empty string clears the value.
		years, err := parseYears(*req.YearsOfExperience)
		if err != nil {
			return nil, err
		}
		patch.YearsOfExperience = models.Assign(years)
	}
	if patch.IsEmpty() {
		return nil, common.NewBadRequest("No valid fields to update")
	}

	updated, err := s.store.UpdateVendor(ctx, id, patch)
	if err != nil {
		return nil, storeError("Vendor", err)
	}
	return updated, nil
}

// parseYears reads a non-negative decimal year count; "" means no value.
func parseYears(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, common.NewFieldError("yearsOfExperience", "yearsOfExperience must be a non-negative integer")
	}
	return &n, nil
}
