package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/TomiStyle/formaciones-api/config"
	"github.com/TomiStyle/formaciones-api/handlers"
	"github.com/TomiStyle/formaciones-api/middlewares"
	"github.com/TomiStyle/formaciones-api/models"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	auth := handlers.NewAuthHandler(cfg.JWTSecret)
	usr := handlers.NewUserHandler()
	fm := handlers.NewFormationHandler()
	ps := handlers.NewPersonHandler()
	ex := handlers.NewExportHandler()

	authMW := middlewares.RequireAuth(cfg.JWTSecret)
	adminMW := middlewares.RequireRole(models.RoleAdmin)

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.POST("/users/login", auth.Login)

	// ===== Users =====
	u := e.Group("/users", authMW)
	u.POST("/logout", auth.Logout)
	u.GET("/profile", usr.Profile)
	u.PUT("/updateProfile", usr.UpdateProfile)

	// account management is admin-only
	u.GET("", usr.List, adminMW)
	u.POST("/register", usr.Register, adminMW)
	u.GET("/:dni", usr.Get, adminMW)
	u.PUT("/:dni", usr.Update, adminMW)
	u.DELETE("/:dni", usr.Delete, adminMW)

	// ===== Formations =====
	f := e.Group("/formations", authMW)
	f.GET("", fm.List)
	f.POST("", fm.Create, adminMW)
	f.DELETE("/:id", fm.Delete, adminMW)

	f.GET("/:id/people-by-row", fm.PeopleByRow)
	f.GET("/:id/people-by-column", fm.PeopleByColumn)

	f.PUT("/:id/swap-positions", ps.Swap)
	f.PUT("/:id/swap-by-position", ps.SwapByPosition)
	f.PUT("/:id/remove-person/:personId", ps.Remove)
	f.PUT("/:id/reinsert-person/:personId", ps.Reinsert)

	f.GET("/:id/export/pdf", ex.PDF)
	f.GET("/:id/export/xlsx", ex.XLSX)
}
