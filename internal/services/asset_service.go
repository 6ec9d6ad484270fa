package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"planit/internal/common"
	"planit/internal/models"
	"planit/internal/repositories"

	"github.com/gabriel-vasile/mimetype"
)

type AssetKind string

const (
	AssetPlannerPhoto  AssetKind = "planner-photo"
	AssetVendorLicense AssetKind = "vendor-license"
)

const mockStorageBaseURL = "https://mock-storage.com"

type assetRule struct {
	maxBytes   int64
	types      []string
	keyPrefix  string
	mockPrefix string
}

var assetRules = map[AssetKind]assetRule{
	AssetPlannerPhoto: {
		maxBytes:   5 << 20,
		types:      []string{"image/jpeg", "image/png", "image/webp"},
		keyPrefix:  "planners/",
		mockPrefix: "planners/",
	},
	AssetVendorLicense: {
		maxBytes:   10 << 20,
		types:      []string{"application/pdf", "image/jpeg", "image/png"},
		keyPrefix:  "vendors/licenses/",
		mockPrefix: "vendors/",
	},
}

var defaultExtensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// Upload is one received file.
type Upload struct {
	Data        []byte
	ContentType string
	Filename    string
}

// UploadResult carries the public URL and the record it was linked to.
type UploadResult struct {
	URL     string
	Mock    bool
	Planner *models.Planner
	Vendor  *models.Vendor
}

type AssetService interface {
	// UploadAndLink stores the file and records its URL on the owning
	// planner or vendor. Ownership is checked before the file itself, and the
	// object is written before the record is touched.
	UploadAndLink(ctx context.Context, kind AssetKind, ownerID models.ID, upload Upload, caller *models.User) (*UploadResult, error)
}

type assetService struct {
	store  repositories.ProfileStore
	assets AssetStore
	now    func() time.Time
}

// NewAssetService links uploads onto profiles. A nil assets store switches
// to mock URLs without writing any bytes.
func NewAssetService(store repositories.ProfileStore, assets AssetStore) AssetService {
	return &assetService{store: store, assets: assets, now: time.Now}
}

// StorageKey is the object key of an upload for ownerID made at t.
func StorageKey(kind AssetKind, ownerID models.ID, filename, contentType string, t time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = defaultExtensions[contentType]
	}
	return fmt.Sprintf("%s%s/%d%s", assetRules[kind].keyPrefix, ownerID, t.UnixNano(), ext)
}

func (s *assetService) UploadAndLink(ctx context.Context, kind AssetKind, ownerID models.ID, upload Upload, caller *models.User) (*UploadResult, error) {
	rule, ok := assetRules[kind]
	if !ok {
		return nil, common.NewInternal("unknown asset kind", fmt.Errorf("asset kind %q", kind))
	}
	ownerUserID, err := s.ownerOf(ctx, kind, ownerID)
	if err != nil {
		return nil, err
	}
	if err := common.AuthorizeSelfOrAdmin(ownerUserID, caller); err != nil {
		return nil, err
	}

	if len(upload.Data) == 0 {
		return nil, common.NewBadRequest("No file uploaded")
	}
	if int64(len(upload.Data)) > rule.maxBytes {
		return nil, common.NewBadRequest(fmt.Sprintf("File too large: maximum size is %d MB", rule.maxBytes>>20))
	}
	if !mimetype.EqualsAny(upload.ContentType, rule.types...) {
		return nil, common.NewBadRequest(fmt.Sprintf("Unsupported file type %s: allowed types are %s", upload.ContentType, strings.Join(rule.types, ", ")))
	}

	now := s.now().UTC()
	result := &UploadResult{}
	if s.assets == nil {
		result.Mock = true
		result.URL = mockStorageBaseURL + "/" + rule.mockPrefix + upload.Filename
	} else {
		key := StorageKey(kind, ownerID, upload.Filename, upload.ContentType, now)
		if err := s.assets.Put(ctx, key, bytes.NewReader(upload.Data), int64(len(upload.Data)), upload.ContentType); err != nil {
			return nil, common.NewInternal("failed to upload file", err)
		}
		result.URL = s.assets.URL(key)
	}

	switch kind {
	case AssetPlannerPhoto:
		planner, err := s.store.UpdatePlanner(ctx, ownerID, models.PlannerPatch{
			ProfilePhoto: models.AssignValue(result.URL),
		})
		if err != nil {
			return nil, storeError("Planner", err)
		}
		result.Planner = planner
	case AssetVendorLicense:
		vendor, err := s.store.UpdateVendor(ctx, ownerID, models.VendorPatch{
			LicenseURL:        models.AssignValue(result.URL),
			LicenseUploadedAt: models.AssignValue(now),
		})
		if err != nil {
			return nil, storeError("Vendor", err)
		}
		result.Vendor = vendor
	}
	return result, nil
}

// ownerOf returns the user owning the addressed planner or vendor.
func (s *assetService) ownerOf(ctx context.Context, kind AssetKind, ownerID models.ID) (models.ID, error) {
	if kind == AssetPlannerPhoto {
		planner, err := s.store.GetPlannerByID(ctx, ownerID)
		if err != nil {
			return "", storeError("Planner", err)
		}
		return planner.UserID, nil
	}
	vendor, err := s.store.GetVendorByID(ctx, ownerID)
	if err != nil {
		return "", storeError("Vendor", err)
	}
	return vendor.UserID, nil
}
