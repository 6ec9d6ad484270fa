package handlers

import (
	"net/http"

	"planit/internal/middleware"
	"planit/internal/models"
	"planit/internal/services"

	"github.com/labstack/echo/v4"
)

type VendorHandlers struct {
	vendors services.VendorService
	assets  services.AssetService
}

func NewVendorHandlers(vendors services.VendorService, assets services.AssetService) *VendorHandlers {
	return &VendorHandlers{vendors: vendors, assets: assets}
}

// Onboard creates or refreshes the vendor profile of a user.
//
//	@Summary	Onboard a vendor
//	@Tags		vendors
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		models.OnboardVendorRequest	true	"Vendor details"
//	@Success	200		{object}	map[string]any
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/vendors/onboard [post]
func (h *VendorHandlers) Onboard(c echo.Context) error {
	var req models.OnboardVendorRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}

	vendor, err := h.vendors.Onboard(c.Request().Context(), req, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Vendor onboarded successfully", "vendor": vendor})
}

// Get returns a vendor with its owner.
//
//	@Summary	Get a vendor
//	@Tags		vendors
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Vendor id"
//	@Success	200	{object}	models.VendorDetail
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/vendors/{id} [get]
func (h *VendorHandlers) Get(c echo.Context) error {
	vendor, err := h.vendors.Get(c.Request().Context(), models.ID(c.Param("id")), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vendor)
}

//	@Summary	Update a vendor
//	@Tags		vendors
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string						true	"Vendor id"
//	@Param		body	body		models.UpdateVendorRequest	true	"Fields to change"
//	@Success	200		{object}	map[string]any
//	@Failure	400		{object}	ErrorResponse
//	@Router		/vendors/{id} [put]
func (h *VendorHandlers) Update(c echo.Context) error {
	var req models.UpdateVendorRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}

	vendor, err := h.vendors.Update(c.Request().Context(), models.ID(c.Param("id")), req, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Vendor profile updated", "vendor": vendor})
}

// UploadLicense stores a business license and links it to the vendor.
//
//	@Summary	Upload a vendor license
//	@Tags		vendors
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string	true	"Vendor id"
//	@Param		file	formData	file	true	"PDF, JPEG or PNG up to 10 MB"
//	@Success	200		{object}	map[string]any
//	@Failure	400		{object}	ErrorResponse
//	@Router		/vendors/{id}/upload-license [post]
func (h *VendorHandlers) UploadLicense(c echo.Context) error {
	upload, err := readUpload(c)
	if err != nil {
		return err
	}

	result, err := h.assets.UploadAndLink(c.Request().Context(), services.AssetVendorLicense, models.ID(c.Param("id")), upload, middleware.CurrentUser(c))
	if err != nil {
		return err
	}

	message := "License uploaded successfully"
	if result.Mock {
		message = "Mock license upload (object storage inactive)"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": message, "fileUrl": result.URL, "vendor": result.Vendor})
}
