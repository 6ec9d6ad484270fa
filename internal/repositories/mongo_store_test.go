package repositories

import (
	"context"
	"testing"
	"time"

	"planit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mt.Run("ensure indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		assert.NoError(mt, NewMongoStore(mt.DB).EnsureIndexes(ctx))
	})

	mt.Run("create user assigns hex id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		user := &models.User{FirstName: "Ada", LastName: "Obi", Email: "ada@example.com", PasswordHash: "hash", Role: models.RoleUser, CreatedAt: now, UpdatedAt: now}

		require.NoError(mt, NewMongoStore(mt.DB).CreateUser(ctx, user))
		_, err := primitive.ObjectIDFromHex(string(user.ID))
		assert.NoError(mt, err)
	})

	mt.Run("create user duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}))
		user := &models.User{Email: "ada@example.com", Role: models.RoleUser}

		err := NewMongoStore(mt.DB).CreateUser(ctx, user)
		assert.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("get user by id", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "planit.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "firstName", Value: "Ada"},
			{Key: "lastName", Value: "Obi"},
			{Key: "email", Value: "ada@example.com"},
			{Key: "phone", Value: nil},
			{Key: "password", Value: "hash"},
			{Key: "role", Value: "ADMIN"},
			{Key: "createdAt", Value: now},
			{Key: "updatedAt", Value: now},
		}))

		user, err := NewMongoStore(mt.DB).GetUserByID(ctx, models.ID(oid.Hex()))
		require.NoError(mt, err)
		assert.Equal(mt, models.ID(oid.Hex()), user.ID)
		assert.Equal(mt, models.RoleAdmin, user.Role)
		assert.Nil(mt, user.Phone)
	})

	mt.Run("get user missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "planit.users", mtest.FirstBatch))

		_, err := NewMongoStore(mt.DB).GetUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("relational id is not found", func(mt *mtest.T) {
		_, err := NewMongoStore(mt.DB).GetPlannerByID(ctx, "12")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("find planner by owner", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		owner := primitive.NewObjectID().Hex()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "planit.planners", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "userId", Value: owner},
			{Key: "companyName", Value: "Acme"},
			{Key: "businessAddress", Value: "1 Road"},
			{Key: "portfolioWebsite", Value: "https://acme.example"},
			{Key: "createdAt", Value: now},
			{Key: "updatedAt", Value: now},
		}))

		planner, err := NewMongoStore(mt.DB).FindPlannerByUserID(ctx, models.ID(owner))
		require.NoError(mt, err)
		assert.Equal(mt, models.ID(owner), planner.UserID)
		require.NotNil(mt, planner.PortfolioWebsite)
		assert.Equal(mt, "https://acme.example", *planner.PortfolioWebsite)
		assert.Nil(mt, planner.ProfilePhoto)
	})

	mt.Run("create planner duplicate owner", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}))

		err := NewMongoStore(mt.DB).CreatePlanner(ctx, &models.Planner{UserID: "abc", CompanyName: "Acme", BusinessAddress: "1 Road"})
		assert.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("update vendor returns new document", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: bson.D{
				{Key: "_id", Value: oid},
				{Key: "userId", Value: "owner"},
				{Key: "companyName", Value: "Stage"},
				{Key: "businessAddress", Value: "2 Road"},
				{Key: "yearsOfExperience", Value: 0},
				{Key: "licenseUrl", Value: "https://cdn.example/l.pdf"},
				{Key: "licenseUploadedAt", Value: now},
				{Key: "createdAt", Value: now},
				{Key: "updatedAt", Value: now},
			}},
		})

		patch := models.VendorPatch{
			LicenseURL:        models.AssignValue("https://cdn.example/l.pdf"),
			LicenseUploadedAt: models.AssignValue(now),
		}
		vendor, err := NewMongoStore(mt.DB).UpdateVendor(ctx, models.ID(oid.Hex()), patch)
		require.NoError(mt, err)
		require.NotNil(mt, vendor.YearsOfExperience)
		assert.Equal(mt, 0, *vendor.YearsOfExperience)
		require.NotNil(mt, vendor.LicenseUploadedAt)
		assert.True(mt, now.Equal(*vendor.LicenseUploadedAt))
	})

	mt.Run("update missing vendor", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := NewMongoStore(mt.DB).UpdateVendor(ctx, models.ID(primitive.NewObjectID().Hex()), models.VendorPatch{Phone: models.AssignValue("0800")})
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
