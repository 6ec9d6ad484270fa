package handlers

import (
	"net/http"
	"strings"

	"planit/internal/middleware"
	"planit/internal/models"
	"planit/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandlers handles user-related HTTP requests
type UserHandlers struct {
	users services.UserService
}

// NewUserHandlers creates a new user handlers instance
func NewUserHandlers(users services.UserService) *UserHandlers {
	return &UserHandlers{users: users}
}

// Signup registers a new account.
//
//	@Summary	Register a user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		models.SignupRequest	true	"Signup payload"
//	@Success	201		{object}	map[string]any
//	@Failure	400		{object}	ErrorResponse
//	@Router		/users/signup [post]
func (h *UserHandlers) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}

	user, err := h.users.Signup(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "User created", "user": user})
}

// Login exchanges credentials for a bearer token.
//
//	@Summary	Log in
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		models.LoginRequest	true	"Credentials"
//	@Success	200		{object}	map[string]any
//	@Failure	401		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/users/login [post]
func (h *UserHandlers) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}

	user, token, err := h.users.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Login successful", "user": user, "token": token})
}

// GetUser returns a user with the planner and vendor profiles it owns.
//
//	@Summary	Get a user profile
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string	true	"User id"
//	@Param		expand	query		string	false	"Comma separated: planner,vendor"
//	@Success	200		{object}	models.UserProfile
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/users/{id} [get]
func (h *UserHandlers) GetUser(c echo.Context) error {
	expand, err := parseExpansion(c.QueryParam("expand"))
	if err != nil {
		return err
	}

	profile, err := h.users.GetProfile(c.Request().Context(), models.ID(c.Param("id")), expand)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateUser changes the caller's own profile, or any profile for admins.
//
//	@Summary	Update a user profile
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string						true	"User id"
//	@Param		body	body		models.UpdateUserRequest	true	"Fields to change"
//	@Success	200		{object}	map[string]any
//	@Failure	400		{object}	ErrorResponse
//	@Router		/users/{id} [put]
func (h *UserHandlers) UpdateUser(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), models.ID(c.Param("id")), req, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User profile updated", "user": user})
}

func parseExpansion(raw string) (services.ProfileExpansion, error) {
	if raw == "" {
		return services.ExpandAll, nil
	}
	var expand services.ProfileExpansion
	for _, part := range strings.Split(raw, ",") {
		switch strings.TrimSpace(part) {
		case "planner":
			expand.Planner = true
		case "vendor":
			expand.Vendor = true
		case "":
		default:
			return expand, badRequest("expand accepts planner and vendor")
		}
	}
	return expand, nil
}
