package repositories

import (
	"context"
	"fmt"
	"time"

	"planit/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type plannerDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	UserID           string             `bson:"userId"`
	CompanyName      string             `bson:"companyName"`
	BusinessAddress  string             `bson:"businessAddress"`
	CacNumber        *string            `bson:"cacNumber"`
	SocialMediaLinks *string            `bson:"socialMediaLinks"`
	PortfolioWebsite *string            `bson:"portfolioWebsite"`
	ProfilePhoto     *string            `bson:"profilePhoto"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func (d *plannerDocument) model() *models.Planner {
	return &models.Planner{
		ID:               models.ID(d.ID.Hex()),
		UserID:           models.ID(d.UserID),
		CompanyName:      d.CompanyName,
		BusinessAddress:  d.BusinessAddress,
		CacNumber:        d.CacNumber,
		SocialMediaLinks: d.SocialMediaLinks,
		PortfolioWebsite: d.PortfolioWebsite,
		ProfilePhoto:     d.ProfilePhoto,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

type vendorDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	UserID            string             `bson:"userId"`
	CompanyName       string             `bson:"companyName"`
	BusinessAddress   string             `bson:"businessAddress"`
	CacNumber         *string            `bson:"cacNumber"`
	ServiceCategories *string            `bson:"serviceCategories"`
	YearsOfExperience *int               `bson:"yearsOfExperience"`
	Phone             *string            `bson:"phone"`
	LicenseURL        *string            `bson:"licenseUrl"`
	LicenseUploadedAt *time.Time         `bson:"licenseUploadedAt"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

func (d *vendorDocument) model() *models.Vendor {
	return &models.Vendor{
		ID:                models.ID(d.ID.Hex()),
		UserID:            models.ID(d.UserID),
		CompanyName:       d.CompanyName,
		BusinessAddress:   d.BusinessAddress,
		CacNumber:         d.CacNumber,
		ServiceCategories: d.ServiceCategories,
		YearsOfExperience: d.YearsOfExperience,
		Phone:             d.Phone,
		LicenseURL:        d.LicenseURL,
		LicenseUploadedAt: d.LicenseUploadedAt,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func (s *MongoStore) CreatePlanner(ctx context.Context, planner *models.Planner) error {
	doc := plannerDocument{
		ID:               primitive.NewObjectID(),
		UserID:           string(planner.UserID),
		CompanyName:      planner.CompanyName,
		BusinessAddress:  planner.BusinessAddress,
		CacNumber:        planner.CacNumber,
		SocialMediaLinks: planner.SocialMediaLinks,
		PortfolioWebsite: planner.PortfolioWebsite,
		ProfilePhoto:     planner.ProfilePhoto,
		CreatedAt:        planner.CreatedAt,
		UpdatedAt:        planner.UpdatedAt,
	}
	if _, err := s.db.Collection(plannersCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create planner: %w", translateMongoError(err))
	}
	planner.ID = models.ID(doc.ID.Hex())
	return nil
}

func (s *MongoStore) GetPlannerByID(ctx context.Context, id models.ID) (*models.Planner, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	var doc plannerDocument
	err := s.db.Collection(plannersCollection).FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return doc.model(), nil
}

func (s *MongoStore) FindPlannerByUserID(ctx context.Context, userID models.ID) (*models.Planner, error) {
	var doc plannerDocument
	err := s.db.Collection(plannersCollection).
		FindOne(ctx, bson.D{{Key: "userId", Value: string(userID)}}, oldestFirst()).
		Decode(&doc)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return doc.model(), nil
}

func (s *MongoStore) UpdatePlanner(ctx context.Context, id models.ID, patch models.PlannerPatch) (*models.Planner, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	set := bson.D{}
	set = setIfField(set, "companyName", patch.CompanyName)
	set = setIfField(set, "businessAddress", patch.BusinessAddress)
	set = setIfField(set, "cacNumber", patch.CacNumber)
	set = setIfField(set, "socialMediaLinks", patch.SocialMediaLinks)
	set = setIfField(set, "portfolioWebsite", patch.PortfolioWebsite)
	set = setIfField(set, "profilePhoto", patch.ProfilePhoto)

	var doc plannerDocument
	if err := s.findOneAndSet(ctx, plannersCollection, oid, set, &doc); err != nil {
		return nil, err
	}
	return doc.model(), nil
}

func (s *MongoStore) CreateVendor(ctx context.Context, vendor *models.Vendor) error {
	doc := vendorDocument{
		ID:                primitive.NewObjectID(),
		UserID:            string(vendor.UserID),
		CompanyName:       vendor.CompanyName,
		BusinessAddress:   vendor.BusinessAddress,
		CacNumber:         vendor.CacNumber,
		ServiceCategories: vendor.ServiceCategories,
		YearsOfExperience: vendor.YearsOfExperience,
		Phone:             vendor.Phone,
		LicenseURL:        vendor.LicenseURL,
		LicenseUploadedAt: vendor.LicenseUploadedAt,
		CreatedAt:         vendor.CreatedAt,
		UpdatedAt:         vendor.UpdatedAt,
	}
	if _, err := s.db.Collection(vendorsCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create vendor: %w", translateMongoError(err))
	}
	vendor.ID = models.ID(doc.ID.Hex())
	return nil
}

func (s *MongoStore) GetVendorByID(ctx context.Context, id models.ID) (*models.Vendor, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	var doc vendorDocument
	err := s.db.Collection(vendorsCollection).FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return doc.model(), nil
}

func (s *MongoStore) FindVendorByUserID(ctx context.Context, userID models.ID) (*models.Vendor, error) {
	var doc vendorDocument
	err := s.db.Collection(vendorsCollection).
		FindOne(ctx, bson.D{{Key: "userId", Value: string(userID)}}, oldestFirst()).
		Decode(&doc)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return doc.model(), nil
}

func (s *MongoStore) UpdateVendor(ctx context.Context, id models.ID, patch models.VendorPatch) (*models.Vendor, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	set := bson.D{}
	set = setIfField(set, "companyName", patch.CompanyName)
	set = setIfField(set, "businessAddress", patch.BusinessAddress)
	set = setIfField(set, "cacNumber", patch.CacNumber)
	set = setIfField(set, "serviceCategories", patch.ServiceCategories)
	set = setIfField(set, "yearsOfExperience", patch.YearsOfExperience)
	set = setIfField(set, "phone", patch.Phone)
	set = setIfField(set, "licenseUrl", patch.LicenseURL)
	set = setIfField(set, "licenseUploadedAt", patch.LicenseUploadedAt)

	var doc vendorDocument
	if err := s.findOneAndSet(ctx, vendorsCollection, oid, set, &doc); err != nil {
		return nil, err
	}
	return doc.model(), nil
}
