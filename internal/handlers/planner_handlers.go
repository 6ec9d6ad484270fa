package handlers

import (
	"net/http"

	"planit/internal/middleware"
	"planit/internal/models"
	"planit/internal/services"

	"github.com/labstack/echo/v4"
)

type PlannerHandlers struct {
	planners services.PlannerService
	assets   services.AssetService
}

func NewPlannerHandlers(planners services.PlannerService, assets services.AssetService) *PlannerHandlers {
	return &PlannerHandlers{planners: planners, assets: assets}
}

// Onboard creates or refreshes the planner profile of a user.
//
//	@Summary	Onboard a planner
//	@Tags		planners
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		models.OnboardPlannerRequest	true	"Planner details"
//	@Success	200		{object}	map[string]any
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/planners/onboard [post]
func (h *PlannerHandlers) Onboard(c echo.Context) error {
	var req models.OnboardPlannerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}

	planner, err := h.planners.Onboard(c.Request().Context(), req, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Planner onboarded successfully", "planner": planner})
}

// Get returns a planner with its owner.
//
//	@Summary	Get a planner
//	@Tags		planners
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Planner id"
//	@Success	200	{object}	models.PlannerDetail
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/planners/{id} [get]
func (h *PlannerHandlers) Get(c echo.Context) error {
	planner, err := h.planners.Get(c.Request().Context(), models.ID(c.Param("id")), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, planner)
}

// Update writes every supplied field, empty strings included.
//
//	@Summary	Update a planner
//	@Tags		planners
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string						true	"Planner id"
//	@Param		body	body		models.UpdatePlannerRequest	true	"Fields to change"
//	@Success	200		{object}	map[string]any
//	@Failure	400		{object}	ErrorResponse
//	@Router		/planners/{id} [put]
func (h *PlannerHandlers) Update(c echo.Context) error {
	var req models.UpdatePlannerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}

	planner, err := h.planners.Update(c.Request().Context(), models.ID(c.Param("id")), req, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Planner profile updated", "planner": planner})
}

// UploadPhoto stores a profile photo and links it to the planner.
//
//	@Summary	Upload a planner profile photo
//	@Tags		planners
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string	true	"Planner id"
//	@Param		file	formData	file	true	"JPEG, PNG or WebP up to 5 MB"
//	@Success	200		{object}	map[string]any
//	@Failure	400		{object}	ErrorResponse
//	@Router		/planners/{id}/upload-photo [post]
func (h *PlannerHandlers) UploadPhoto(c echo.Context) error {
	upload, err := readUpload(c)
	if err != nil {
		return err
	}

	result, err := h.assets.UploadAndLink(c.Request().Context(), services.AssetPlannerPhoto, models.ID(c.Param("id")), upload, middleware.CurrentUser(c))
	if err != nil {
		return err
	}

	message := "Profile photo uploaded"
	if result.Mock {
		message = "Mock upload (object storage inactive)"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": message, "fileUrl": result.URL, "planner": result.Planner})
}
