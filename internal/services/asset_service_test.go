package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"planit/internal/common"
	"planit/internal/models"
	"planit/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MockAssetStore struct {
	mock.Mock
}

func (m *MockAssetStore) EnsureBucket(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssetStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *MockAssetStore) URL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *MockAssetStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type AssetServiceTestSuite struct {
	suite.Suite
	store   *testhelpers.MemoryStore
	assets  *MockAssetStore
	service *assetService
	owner   *models.User
	other   *models.User
	planner *models.Planner
	vendor  *models.Vendor
	now     time.Time
	ctx     context.Context
}

func (suite *AssetServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = testhelpers.NewMemoryStore()
	suite.assets = &MockAssetStore{}
	suite.now = time.Unix(1700000000, 0)
	suite.service = &assetService{store: suite.store, assets: suite.assets, now: func() time.Time { return suite.now }}

	suite.owner = testhelpers.SeedUser(suite.T(), suite.store, "owner@example.com", models.RoleUser)
	suite.other = testhelpers.SeedUser(suite.T(), suite.store, "other@example.com", models.RoleUser)

	var err error
	suite.planner, err = NewPlannerService(suite.store).Onboard(suite.ctx, models.OnboardPlannerRequest{
		UserID: suite.owner.ID, CompanyName: "Acme", BusinessAddress: "1 Road",
	}, suite.owner)
	require.NoError(suite.T(), err)
	suite.vendor, err = NewVendorService(suite.store).Onboard(suite.ctx, models.OnboardVendorRequest{
		UserID: suite.owner.ID, CompanyName: "Stage", BusinessAddress: "2 Road",
	}, suite.owner)
	require.NoError(suite.T(), err)
}

func (suite *AssetServiceTestSuite) TearDownTest() {
	suite.assets.AssertExpectations(suite.T())
}

func TestAssetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssetServiceTestSuite))
}

func (suite *AssetServiceTestSuite) TestStorageKey() {
	at := time.Unix(0, 1700000000000000123)

	assert.Equal(suite.T(), "planners/9/1700000000000000123.png",
		StorageKey(AssetPlannerPhoto, "9", "Me.PNG", "image/png", at))
	assert.Equal(suite.T(), "vendors/licenses/4/1700000000000000123.pdf",
		StorageKey(AssetVendorLicense, "4", "license", "application/pdf", at))
}

func (suite *AssetServiceTestSuite) TestUploadPlannerPhoto_WritesThenLinks() {
	data := []byte("png-bytes")
	key := StorageKey(AssetPlannerPhoto, suite.planner.ID, "me.png", "image/png", suite.now)
	url := "https://cdn.example/planit-assets/" + key

	suite.assets.On("Put", suite.ctx, key, mock.Anything, int64(len(data)), "image/png").Return(nil).Once()
	suite.assets.On("URL", key).Return(url).Once()

	result, err := suite.service.UploadAndLink(suite.ctx, AssetPlannerPhoto, suite.planner.ID,
		Upload{Data: data, ContentType: "image/png", Filename: "me.png"}, suite.owner)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), url, result.URL)
	assert.False(suite.T(), result.Mock)
	require.NotNil(suite.T(), result.Planner.ProfilePhoto)
	assert.Equal(suite.T(), url, *result.Planner.ProfilePhoto)
}

func (suite *AssetServiceTestSuite) TestUploadVendorLicense_StampsUploadTime() {
	data := []byte("%PDF-1.4")
	key := StorageKey(AssetVendorLicense, suite.vendor.ID, "licence.pdf", "application/pdf", suite.now)

	suite.assets.On("Put", suite.ctx, key, mock.Anything, int64(len(data)), "application/pdf").Return(nil).Once()
	suite.assets.On("URL", key).Return("https://cdn.example/" + key).Once()

	result, err := suite.service.UploadAndLink(suite.ctx, AssetVendorLicense, suite.vendor.ID,
		Upload{Data: data, ContentType: "application/pdf", Filename: "licence.pdf"}, suite.owner)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), result.Vendor.LicenseUploadedAt)
	assert.True(suite.T(), suite.now.Equal(*result.Vendor.LicenseUploadedAt))
}

func (suite *AssetServiceTestSuite) TestUpload_RejectedBeforeAnyWrite() {
	writes := suite.store.Writes()
	big := bytes.Repeat([]byte{0xff}, 5<<20+1)

	tests := []struct {
		name     string
		kind     AssetKind
		ownerID  models.ID
		upload   Upload
		caller   *models.User
		wantKind common.Kind
	}{
		{name: "no bytes", kind: AssetPlannerPhoto, ownerID: suite.planner.ID, upload: Upload{ContentType: "image/png"}, caller: suite.owner, wantKind: common.KindBadRequest},
		{name: "disallowed type", kind: AssetPlannerPhoto, ownerID: suite.planner.ID, upload: Upload{Data: []byte("%PDF"), ContentType: "application/pdf"}, caller: suite.owner, wantKind: common.KindBadRequest},
		{name: "photo too large", kind: AssetPlannerPhoto, ownerID: suite.planner.ID, upload: Upload{Data: big, ContentType: "image/png"}, caller: suite.owner, wantKind: common.KindBadRequest},
		{name: "missing owner", kind: AssetVendorLicense, ownerID: "404", upload: Upload{Data: []byte("x"), ContentType: "image/png"}, caller: suite.owner, wantKind: common.KindNotFound},
		{name: "not the owner", kind: AssetVendorLicense, ownerID: suite.vendor.ID, upload: Upload{Data: []byte("x"), ContentType: "image/png"}, caller: suite.other, wantKind: common.KindForbidden},
		{name: "not the owner with a bad file", kind: AssetPlannerPhoto, ownerID: suite.planner.ID, upload: Upload{Data: []byte("hi"), ContentType: "text/plain; charset=utf-8"}, caller: suite.other, wantKind: common.KindForbidden},
		{name: "missing owner with no bytes", kind: AssetPlannerPhoto, ownerID: "404", upload: Upload{}, caller: suite.owner, wantKind: common.KindNotFound},
		{name: "text with charset", kind: AssetPlannerPhoto, ownerID: suite.planner.ID, upload: Upload{Data: []byte("hi"), ContentType: "text/plain; charset=utf-8"}, caller: suite.owner, wantKind: common.KindBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.UploadAndLink(suite.ctx, tt.kind, tt.ownerID, tt.upload, tt.caller)
			require.Error(suite.T(), err)
			assert.Equal(suite.T(), tt.wantKind, common.KindOf(err))
		})
	}
	assert.Equal(suite.T(), writes, suite.store.Writes())
	suite.assets.AssertNotCalled(suite.T(), "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestUpload_ContentTypeIgnoresCase() {
	svc := NewAssetService(suite.store, nil)

	result, err := svc.UploadAndLink(suite.ctx, AssetPlannerPhoto, suite.planner.ID,
		Upload{Data: []byte("png"), ContentType: "IMAGE/PNG", Filename: "me.png"}, suite.owner)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "https://mock-storage.com/planners/me.png", result.URL)
}

func (suite *AssetServiceTestSuite) TestUpload_StoreFailureLeavesRecord() {
	suite.assets.On("Put", suite.ctx, mock.Anything, mock.Anything, mock.Anything, "image/jpeg").Return(errors.New("connection reset")).Once()

	_, err := suite.service.UploadAndLink(suite.ctx, AssetPlannerPhoto, suite.planner.ID,
		Upload{Data: []byte("jpg"), ContentType: "image/jpeg", Filename: "a.jpg"}, suite.owner)
	assert.True(suite.T(), common.IsKind(err, common.KindInternal))

	stored, err := suite.store.GetPlannerByID(suite.ctx, suite.planner.ID)
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), stored.ProfilePhoto)
}

func (suite *AssetServiceTestSuite) TestUpload_MockModeWithoutObjectStore() {
	svc := NewAssetService(suite.store, nil)

	result, err := svc.UploadAndLink(suite.ctx, AssetVendorLicense, suite.vendor.ID,
		Upload{Data: []byte("%PDF"), ContentType: "application/pdf", Filename: "licence.pdf"}, suite.owner)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), result.Mock)
	assert.Equal(suite.T(), "https://mock-storage.com/vendors/licence.pdf", result.URL)
	assert.True(suite.T(), strings.HasPrefix(*result.Vendor.LicenseURL, "https://mock-storage.com/"))
}
