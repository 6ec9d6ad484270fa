package handlers

import (
	"planit/internal/middleware"
	"planit/internal/models"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Router groups the handlers and the authentication middleware.
type Router struct {
	Health   *HealthHandlers
	Users    *UserHandlers
	Planners *PlannerHandlers
	Vendors  *VendorHandlers
	Auth     echo.MiddlewareFunc
}

func (r *Router) Register(e *echo.Echo) {
	e.GET("/", r.Health.Root)
	e.GET("/health", r.Health.HealthCheck)
	e.GET("/health/ready", r.Health.ReadinessCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	users := e.Group("/users")
	users.POST("/signup", r.Users.Signup)
	users.POST("/login", r.Users.Login)
	users.GET("/:id", r.Users.GetUser, r.Auth, middleware.SelfOrAdmin("id"))
	users.PUT("/:id", r.Users.UpdateUser, r.Auth, middleware.SelfOrAdmin("id"))

	// Planner and vendor ownership, onboarding included, is checked by the services,
	// which know the owning user.
	onboarding := middleware.RequireRoles(models.RoleUser, models.RoleAdmin)

	planners := e.Group("/planners", r.Auth)
	planners.POST("/onboard", r.Planners.Onboard, onboarding)
	planners.GET("/:id", r.Planners.Get)
	planners.PUT("/:id", r.Planners.Update)
	planners.POST("/:id/upload-photo", r.Planners.UploadPhoto)

	vendors := e.Group("/vendors", r.Auth)
	vendors.POST("/onboard", r.Vendors.Onboard, onboarding)
	vendors.GET("/:id", r.Vendors.Get)
	vendors.PUT("/:id", r.Vendors.Update)
	vendors.POST("/:id/upload-license", r.Vendors.UploadLicense)
}
