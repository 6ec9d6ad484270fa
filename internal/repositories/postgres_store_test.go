package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"planit/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PostgresStoreTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	store   *PostgresStore
	context context.Context
	now     time.Time
}

func (suite *PostgresStoreTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock
	suite.store = NewPostgresStore(mock)
	suite.context = context.Background()
	suite.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (suite *PostgresStoreTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestPostgresStoreTestSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreTestSuite))
}

func strPtr(s string) *string { return &s }

var userRowColumns = []string{"id", "first_name", "last_name", "email", "phone", "password_hash", "role", "created_at", "updated_at"}

var plannerRowColumns = []string{"id", "user_id", "company_name", "business_address", "cac_number", "social_media_links", "portfolio_website", "profile_photo", "created_at", "updated_at"}

var vendorRowColumns = []string{"id", "user_id", "company_name", "business_address", "cac_number", "service_categories", "years_of_experience", "phone", "license_url", "license_uploaded_at", "created_at", "updated_at"}

func (suite *PostgresStoreTestSuite) TestMigrate_CreatesAllTables() {
	suite.mock.ExpectExec(`CREATE TABLE IF NOT EXISTS users`).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	suite.mock.ExpectExec(`CREATE TABLE IF NOT EXISTS planners`).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	suite.mock.ExpectExec(`CREATE TABLE IF NOT EXISTS vendors`).WillReturnResult(pgxmock.NewResult("CREATE", 0))

	assert.NoError(suite.T(), suite.store.Migrate(suite.context))
}

func (suite *PostgresStoreTestSuite) TestCreateUser_Success() {
	user := &models.User{
		FirstName:    "Ada",
		LastName:     "Obi",
		Email:        "ada@example.com",
		PasswordHash: "hash",
		Role:         models.RoleUser,
		CreatedAt:    suite.now,
		UpdatedAt:    suite.now,
	}

	suite.mock.ExpectQuery(`INSERT INTO users \(first_name, last_name, email, phone, password_hash, role, created_at, updated_at\)`).
		WithArgs("Ada", "Obi", "ada@example.com", user.Phone, "hash", "USER", suite.now, suite.now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	require.NoError(suite.T(), suite.store.CreateUser(suite.context, user))
	assert.Equal(suite.T(), models.ID("7"), user.ID)
}

func (suite *PostgresStoreTestSuite) TestCreateUser_DuplicateEmail() {
	user := &models.User{FirstName: "Ada", LastName: "Obi", Email: "ada@example.com", PasswordHash: "hash", Role: models.RoleUser}

	suite.mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := suite.store.CreateUser(suite.context, user)
	assert.True(suite.T(), errors.Is(err, ErrDuplicate))
	assert.True(suite.T(), user.ID.IsZero())
}

func (suite *PostgresStoreTestSuite) TestGetUserByID_Success() {
	suite.mock.ExpectQuery(`SELECT id, first_name, last_name, email, phone, password_hash, role, created_at, updated_at FROM users WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow(int64(7), "Ada", "Obi", "ada@example.com", nil, "hash", "ADMIN", suite.now, suite.now))

	user, err := suite.store.GetUserByID(suite.context, "7")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ID("7"), user.ID)
	assert.Equal(suite.T(), models.RoleAdmin, user.Role)
	assert.Nil(suite.T(), user.Phone)
}

func (suite *PostgresStoreTestSuite) TestGetUserByID_NotFound() {
	suite.mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows(userRowColumns))

	_, err := suite.store.GetUserByID(suite.context, "99")
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *PostgresStoreTestSuite) TestGetUserByID_ForeignIdentifier() {
	// A document id never reaches the database.
	_, err := suite.store.GetUserByID(suite.context, "65f1c2a9e4b0a1b2c3d4e5f6")
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *PostgresStoreTestSuite) TestGetUserByEmail_Success() {
	suite.mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("ada@example.com").
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow(int64(3), "Ada", "Obi", "ada@example.com", "0800", "hash", "USER", suite.now, suite.now))

	user, err := suite.store.GetUserByEmail(suite.context, "ada@example.com")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), user.Phone)
	assert.Equal(suite.T(), "0800", *user.Phone)
}

func (suite *PostgresStoreTestSuite) TestUpdateUser_OnlyPresentFields() {
	patch := models.UserPatch{FirstName: strPtr("Grace"), PasswordHash: strPtr("new-hash")}

	suite.mock.ExpectQuery(`UPDATE users SET first_name = \$1, password_hash = \$2, updated_at = NOW\(\) WHERE id = \$3 RETURNING`).
		WithArgs("Grace", "new-hash", int64(7)).
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow(int64(7), "Grace", "Obi", "ada@example.com", nil, "new-hash", "USER", suite.now, suite.now))

	user, err := suite.store.UpdateUser(suite.context, "7", patch)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Grace", user.FirstName)
}

func (suite *PostgresStoreTestSuite) TestCreatePlanner_DuplicateOwner() {
	planner := &models.Planner{UserID: "7", CompanyName: "Acme", BusinessAddress: "1 Road"}

	suite.mock.ExpectQuery(`INSERT INTO planners`).
		WithArgs(int64(7), "Acme", "1 Road", planner.CacNumber, planner.SocialMediaLinks, planner.PortfolioWebsite, planner.ProfilePhoto, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := suite.store.CreatePlanner(suite.context, planner)
	assert.ErrorIs(suite.T(), err, ErrDuplicate)
}

func (suite *PostgresStoreTestSuite) TestCreatePlanner_ForeignOwner() {
	planner := &models.Planner{UserID: "not-a-number", CompanyName: "Acme", BusinessAddress: "1 Road"}

	err := suite.store.CreatePlanner(suite.context, planner)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *PostgresStoreTestSuite) TestFindPlannerByUserID_OldestFirst() {
	suite.mock.ExpectQuery(`FROM planners WHERE user_id = \$1 ORDER BY created_at, id LIMIT 1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(plannerRowColumns).
			AddRow(int64(2), int64(7), "Acme", "1 Road", nil, nil, "https://acme.example", nil, suite.now, suite.now))

	planner, err := suite.store.FindPlannerByUserID(suite.context, "7")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ID("2"), planner.ID)
	assert.Equal(suite.T(), models.ID("7"), planner.UserID)
	require.NotNil(suite.T(), planner.PortfolioWebsite)
	assert.Equal(suite.T(), "https://acme.example", *planner.PortfolioWebsite)
	assert.Nil(suite.T(), planner.CacNumber)
}

func (suite *PostgresStoreTestSuite) TestUpdatePlanner_ClearsWithNull() {
	patch := models.PlannerPatch{
		CompanyName: models.AssignValue("Acme 2"),
		CacNumber:   models.Assign[string](nil),
	}

	suite.mock.ExpectQuery(`UPDATE planners SET company_name = \$1, cac_number = \$2, updated_at = NOW\(\) WHERE id = \$3`).
		WithArgs(patch.CompanyName.Value, patch.CacNumber.Value, int64(2)).
		WillReturnRows(pgxmock.NewRows(plannerRowColumns).
			AddRow(int64(2), int64(7), "Acme 2", "1 Road", nil, nil, nil, nil, suite.now, suite.now))

	planner, err := suite.store.UpdatePlanner(suite.context, "2", patch)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Acme 2", planner.CompanyName)
}

func (suite *PostgresStoreTestSuite) TestUpdatePlanner_NotFound() {
	patch := models.PlannerPatch{ProfilePhoto: models.AssignValue("https://cdn.example/p.png")}

	suite.mock.ExpectQuery(`UPDATE planners SET profile_photo = \$1`).
		WithArgs(patch.ProfilePhoto.Value, int64(42)).
		WillReturnRows(pgxmock.NewRows(plannerRowColumns))

	_, err := suite.store.UpdatePlanner(suite.context, "42", patch)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *PostgresStoreTestSuite) TestGetVendorByID_ScansNullableColumns() {
	uploaded := suite.now.Add(time.Hour)
	suite.mock.ExpectQuery(`FROM vendors WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows(vendorRowColumns).
			AddRow(int64(4), int64(7), "Stage", "2 Road", nil, "lighting", int64(5), nil, "https://cdn.example/l.pdf", uploaded, suite.now, suite.now))

	vendor, err := suite.store.GetVendorByID(suite.context, "4")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), vendor.YearsOfExperience)
	assert.Equal(suite.T(), 5, *vendor.YearsOfExperience)
	require.NotNil(suite.T(), vendor.LicenseUploadedAt)
	assert.True(suite.T(), uploaded.Equal(*vendor.LicenseUploadedAt))
	assert.Nil(suite.T(), vendor.Phone)
}

func (suite *PostgresStoreTestSuite) TestUpdateVendor_LinksLicense() {
	uploaded := suite.now
	patch := models.VendorPatch{
		LicenseURL:        models.AssignValue("https://cdn.example/l.pdf"),
		LicenseUploadedAt: models.AssignValue(uploaded),
	}

	suite.mock.ExpectQuery(`UPDATE vendors SET license_url = \$1, license_uploaded_at = \$2, updated_at = NOW\(\) WHERE id = \$3`).
		WithArgs(patch.LicenseURL.Value, patch.LicenseUploadedAt.Value, int64(4)).
		WillReturnRows(pgxmock.NewRows(vendorRowColumns).
			AddRow(int64(4), int64(7), "Stage", "2 Road", nil, nil, nil, nil, "https://cdn.example/l.pdf", uploaded, suite.now, suite.now))

	vendor, err := suite.store.UpdateVendor(suite.context, "4", patch)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), vendor.LicenseURL)
	assert.Equal(suite.T(), "https://cdn.example/l.pdf", *vendor.LicenseURL)
}
