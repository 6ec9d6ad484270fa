package repositories

import (
	"context"
	"fmt"

	"planit/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const vendorColumns = `id, user_id, company_name, business_address, cac_number, service_categories, years_of_experience, phone, license_url, license_uploaded_at, created_at, updated_at`

func scanVendor(row pgx.Row) (*models.Vendor, error) {
	var (
		vendor                                   models.Vendor
		id, userID                               int64
		cacNumber, categories, phone, licenseURL pgtype.Text
		years                                    pgtype.Int4
		uploadedAt                               pgtype.Timestamptz
	)
	err := row.Scan(&id, &userID, &vendor.CompanyName, &vendor.BusinessAddress, &cacNumber, &categories, &years, &phone, &licenseURL, &uploadedAt, &vendor.CreatedAt, &vendor.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	vendor.ID = formatID(id)
	vendor.UserID = formatID(userID)
	vendor.CacNumber = textPtr(cacNumber)
	vendor.ServiceCategories = textPtr(categories)
	vendor.YearsOfExperience = intPtr(years)
	vendor.Phone = textPtr(phone)
	vendor.LicenseURL = textPtr(licenseURL)
	vendor.LicenseUploadedAt = timePtr(uploadedAt)
	return &vendor, nil
}

func (s *PostgresStore) CreateVendor(ctx context.Context, vendor *models.Vendor) error {
	userID, ok := parseID(vendor.UserID)
	if !ok {
		return ErrNotFound
	}
	query := `
		INSERT INTO vendors (user_id, company_name, business_address, cac_number, service_categories, years_of_experience, phone, license_url, license_uploaded_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	var id int64
	err := s.db.QueryRow(ctx, query, userID, vendor.CompanyName, vendor.BusinessAddress, vendor.CacNumber, vendor.ServiceCategories, vendor.YearsOfExperience, vendor.Phone, vendor.LicenseURL, vendor.LicenseUploadedAt, vendor.CreatedAt, vendor.UpdatedAt).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to create vendor: %w", translateError(err))
	}
	vendor.ID = formatID(id)
	return nil
}

func (s *PostgresStore) GetVendorByID(ctx context.Context, id models.ID) (*models.Vendor, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`
	return scanVendor(s.db.QueryRow(ctx, query, key))
}

func (s *PostgresStore) FindVendorByUserID(ctx context.Context, userID models.ID) (*models.Vendor, error) {
	key, ok := parseID(userID)
	if !ok {
		return nil, ErrNotFound
	}
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE user_id = $1 ORDER BY created_at, id LIMIT 1`
	return scanVendor(s.db.QueryRow(ctx, query, key))
}

func (s *PostgresStore) UpdateVendor(ctx context.Context, id models.ID, patch models.VendorPatch) (*models.Vendor, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}
	b := &updateBuilder{}
	setField(b, "company_name", patch.CompanyName)
	setField(b, "business_address", patch.BusinessAddress)
	setField(b, "cac_number", patch.CacNumber)
	setField(b, "service_categories", patch.ServiceCategories)
	setField(b, "years_of_experience", patch.YearsOfExperience)
	setField(b, "phone", patch.Phone)
	setField(b, "license_url", patch.LicenseURL)
	setField(b, "license_uploaded_at", patch.LicenseUploadedAt)
	query, args := b.build("vendors", key, vendorColumns)
	return scanVendor(s.db.QueryRow(ctx, query, args...))
}
