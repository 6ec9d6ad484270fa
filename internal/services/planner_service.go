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

type PlannerService interface {
	// Onboard creates the user's planner profile or updates the one it already has.
	// Only the user named in the request or an admin may onboard.
	Onboard(ctx context.Context, req models.OnboardPlannerRequest, caller *models.User) (*models.Planner, error)
	Get(ctx context.Context, id models.ID, caller *models.User) (*models.PlannerDetail, error)
	Update(ctx context.Context, id models.ID, req models.UpdatePlannerRequest, caller *models.User) (*models.Planner, error)
}

type plannerService struct {
	store repositories.ProfileStore
}

func NewPlannerService(store repositories.ProfileStore) PlannerService {
	return &plannerService{store: store}
}

func (s *plannerService) Onboard(ctx context.Context, req models.OnboardPlannerRequest, caller *models.User) (*models.Planner, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := common.AuthorizeSelfOrAdmin(req.UserID, caller); err != nil {
		return nil, err
	}
	if _, err := s.store.GetUserByID(ctx, req.UserID); err != nil {
		return nil, storeError("User", err)
	}

	existing, err := s.store.FindPlannerByUserID(ctx, req.UserID)
	switch {
	case err == nil:
		return s.reonboard(ctx, existing.ID, req)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, common.NewInternal("failed to look up planner", err)
	}

	now := time.Now().UTC()
	planner := &models.Planner{
		UserID:           req.UserID,
		CompanyName:      req.CompanyName,
		BusinessAddress:  req.BusinessAddress,
		CacNumber:        optional(req.CacNumber),
		SocialMediaLinks: optional(req.SocialMediaLinks),
		PortfolioWebsite: optional(req.PortfolioWebsite),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err = s.store.CreatePlanner(ctx, planner)
	if errors.Is(err, repositories.ErrDuplicate) {
		// Another request created the profile first.
		existing, err = s.store.FindPlannerByUserID(ctx, req.UserID)
		if err != nil {
			return nil, storeError("Planner", err)
		}
		return s.reonboard(ctx, existing.ID, req)
	}
	if err != nil {
		return nil, common.NewInternal("failed to create planner", err)
	}
	return planner, nil
}

// reonboard applies an onboarding payload to an existing planner. Optional
// fields left empty keep their stored value.
func (s *plannerService) reonboard(ctx context.Context, id models.ID, req models.OnboardPlannerRequest) (*models.Planner, error) {
	patch := models.PlannerPatch{
		CompanyName:      models.AssignValue(req.CompanyName),
		BusinessAddress:  models.AssignValue(req.BusinessAddress),
		CacNumber:        models.AssignIfPresent(optional(req.CacNumber)),
		SocialMediaLinks: models.AssignIfPresent(optional(req.SocialMediaLinks)),
		PortfolioWebsite: models.AssignIfPresent(optional(req.PortfolioWebsite)),
	}
	planner, err := s.store.UpdatePlanner(ctx, id, patch)
	if err != nil {
		return nil, storeError("Planner", err)
	}
	return planner, nil
}

func (s *plannerService) Get(ctx context.Context, id models.ID, caller *models.User) (*models.PlannerDetail, error) {
	planner, err := s.store.GetPlannerByID(ctx, id)
	if err != nil {
		return nil, storeError("Planner", err)
	}
	if err := common.AuthorizeSelfOrAdmin(planner.UserID, caller); err != nil {
		return nil, err
	}

	owner, err := s.store.GetUserByID(ctx, planner.UserID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, common.NewInternal("failed to load planner owner", err)
	}
	return &models.PlannerDetail{Planner: planner, User: owner}, nil
}

func (s *plannerService) Update(ctx context.Context, id models.ID, req models.UpdatePlannerRequest, caller *models.User) (*models.Planner, error) {
	planner, err := s.store.GetPlannerByID(ctx, id)
	if err != nil {
		return nil, storeError("Planner", err)
	}
	if err := common.AuthorizeSelfOrAdmin(planner.UserID, caller); err != nil {
		return nil, err
	}

	if w := req.PortfolioWebsite; w != nil && *w != "" && !validation.URL(*w) {
		return nil, common.NewFieldError("portfolioWebsite", "Invalid URL")
	}
	patch := models.PlannerPatch{
		CompanyName:      models.AssignIfPresent(req.CompanyName),
		BusinessAddress:  models.AssignIfPresent(req.BusinessAddress),
		CacNumber:        models.AssignIfPresent(req.CacNumber),
		SocialMediaLinks: models.AssignIfPresent(req.SocialMediaLinks),
		PortfolioWebsite: models.AssignIfPresent(req.PortfolioWebsite),
	}
	if patch.IsEmpty() {
		return nil, common.NewBadRequest("No valid fields to update")
	}

	updated, err := s.store.UpdatePlanner(ctx, id, patch)
	if err != nil {
		return nil, storeError("Planner", err)
	}
	return updated, nil
}

// optional maps an empty onboarding value to the absent marker.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
