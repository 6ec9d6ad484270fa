package repositories

import (
	"context"
	"fmt"

	"planit/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const plannerColumns = `id, user_id, company_name, business_address, cac_number, social_media_links, portfolio_website, profile_photo, created_at, updated_at`

func scanPlanner(row pgx.Row) (*models.Planner, error) {
	var (
		planner                                   models.Planner
		id, userID                                int64
		cacNumber, socialLinks, website, photoURL pgtype.Text
	)
	err := row.Scan(&id, &userID, &planner.CompanyName, &planner.BusinessAddress, &cacNumber, &socialLinks, &website, &photoURL, &planner.CreatedAt, &planner.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	planner.ID = formatID(id)
	planner.UserID = formatID(userID)
	planner.CacNumber = textPtr(cacNumber)
	planner.SocialMediaLinks = textPtr(socialLinks)
	planner.PortfolioWebsite = textPtr(website)
	planner.ProfilePhoto = textPtr(photoURL)
	return &planner, nil
}

func (s *PostgresStore) CreatePlanner(ctx context.Context, planner *models.Planner) error {
	userID, ok := parseID(planner.UserID)
	if !ok {
		return ErrNotFound
	}
	query := `
		INSERT INTO planners (user_id, company_name, business_address, cac_number, social_media_links, portfolio_website, profile_photo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var id int64
	err := s.db.QueryRow(ctx, query, userID, planner.CompanyName, planner.BusinessAddress, planner.CacNumber, planner.SocialMediaLinks, planner.PortfolioWebsite, planner.ProfilePhoto, planner.CreatedAt, planner.UpdatedAt).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to create planner: %w", translateError(err))
	}
	planner.ID = formatID(id)
	return nil
}

func (s *PostgresStore) GetPlannerByID(ctx context.Context, id models.ID) (*models.Planner, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}
	query := `SELECT ` + plannerColumns + ` FROM planners WHERE id = $1`
	return scanPlanner(s.db.QueryRow(ctx, query, key))
}

func (s *PostgresStore) FindPlannerByUserID(ctx context.Context, userID models.ID) (*models.Planner, error) {
	key, ok := parseID(userID)
	if !ok {
		return nil, ErrNotFound
	}
	query := `SELECT ` + plannerColumns + ` FROM planners WHERE user_id = $1 ORDER BY created_at, id LIMIT 1`
	return scanPlanner(s.db.QueryRow(ctx, query, key))
}

func (s *PostgresStore) UpdatePlanner(ctx context.Context, id models.ID, patch models.PlannerPatch) (*models.Planner, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}
	b := &updateBuilder{}
	setField(b, "company_name", patch.CompanyName)
	setField(b, "business_address", patch.BusinessAddress)
	setField(b, "cac_number", patch.CacNumber)
	setField(b, "social_media_links", patch.SocialMediaLinks)
	setField(b, "portfolio_website", patch.PortfolioWebsite)
	setField(b, "profile_photo", patch.ProfilePhoto)
	query, args := b.build("planners", key, plannerColumns)
	return scanPlanner(s.db.QueryRow(ctx, query, args...))
}
