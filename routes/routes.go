package routes

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/esepkerala/registration-backend/config"
	"github.com/esepkerala/registration-backend/database"
	"github.com/esepkerala/registration-backend/internal/announcement"
	"github.com/esepkerala/registration-backend/internal/auditlog"
	"github.com/esepkerala/registration-backend/internal/auth"
	"github.com/esepkerala/registration-backend/internal/category"
	"github.com/esepkerala/registration-backend/internal/panchayath"
	"github.com/esepkerala/registration-backend/internal/realtime"
	"github.com/esepkerala/registration-backend/internal/registration"
	"github.com/esepkerala/registration-backend/internal/reports"
	"github.com/esepkerala/registration-backend/internal/store"
	"github.com/esepkerala/registration-backend/middleware"
)

// Setup wires repositories, services and handlers, loads the snapshot store,
// and registers every route. Blocking table loads happen here once so the
// first request never races an empty store.
func Setup(r *gin.Engine, cfg *config.Config, bus *realtime.Bus) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.AuditMiddleware())

	// ========== Repositories ==========
	auditRepo := auditlog.NewRepository(database.DB)
	authRepo := auth.NewRepository(database.DB)
	categoryRepo := category.NewRepository(database.DB)
	panchayathRepo := panchayath.NewRepository(database.DB)
	registrationRepo := registration.NewRepository(database.DB)
	announcementRepo := announcement.NewRepository(database.DB)

	// ========== Snapshot store ==========
	snap := store.New(store.Sources{
		Categories:    categoryRepo.GetActive,
		Panchayaths:   panchayathRepo.GetActive,
		Registrations: registrationRepo.GetAll,
		Admins:        authRepo.GetAll,
		Announcements: announcementRepo.GetActive,
	})
	snap.RefreshAll()
	snap.Start(context.Background(), bus)

	// ========== Services ==========
	auditSvc := auditlog.NewService(auditRepo)
	authSvc := auth.NewService(authRepo, snap, bus, auditSvc, cfg)
	categorySvc := category.NewService(categoryRepo, snap, bus)
	panchayathSvc := panchayath.NewService(panchayathRepo, snap, bus)
	registrationSvc := registration.NewService(registrationRepo, snap, bus)
	announcementSvc := announcement.NewService(announcementRepo, snap, bus)
	reportsSvc := reports.NewService(registrationRepo, reports.NewExporter(), auditSvc)

	if err := auth.SeedSuperAdmin(authRepo, cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
		log.Printf("❌ Super admin seed failed: %v", err)
	}

	// ========== Handlers ==========
	auditHandler := auditlog.NewHandler(auditSvc)
	authHandler := auth.NewHandler(authSvc)
	categoryHandler := category.NewHandler(categorySvc)
	panchayathHandler := panchayath.NewHandler(panchayathSvc)
	registrationHandler := registration.NewHandler(registrationSvc)
	announcementHandler := announcement.NewHandler(announcementSvc)
	reportsHandler := reports.NewHandler(reportsSvc)
	realtimeHandler := realtime.NewHandler(bus)

	// ========== Public ==========
	public := api.Group("/")
	public.Use(middleware.RateLimiter())
	{
		public.GET("/categories", categoryHandler.ListActive)
		public.GET("/panchayaths", panchayathHandler.ListActive)
		public.GET("/announcements", announcementHandler.ListActive)
		public.POST("/registrations", registrationHandler.Submit)
		public.GET("/registrations/status", registrationHandler.Lookup)
	}
	api.GET("/realtime", realtimeHandler.HandleWS)

	// ========== Auth ==========
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc), authHandler.Logout)
		authGroup.GET("/me", middleware.AuthMiddleware(cfg, authSvc), authHandler.Me)
	}

	// ========== Admin ==========
	adminRoles := []string{auth.RoleSuper, auth.RoleLocal}

	protected := api.Group("/admin")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))
	protected.Use(middleware.RequireRoles(adminRoles...))
	{
		protected.GET("/registrations", registrationHandler.List)
		protected.PATCH("/registrations/:id/status", registrationHandler.UpdateStatus)
		protected.GET("/registrations/export", reportsHandler.ExportRegistrations)

		protected.GET("/categories", categoryHandler.ListAll)
		protected.POST("/categories", categoryHandler.Create)
		protected.PUT("/categories/:id", categoryHandler.Update)
		protected.DELETE("/categories/:id", categoryHandler.Delete)

		protected.GET("/panchayaths", panchayathHandler.ListAll)
		protected.POST("/panchayaths", panchayathHandler.Create)
		protected.PUT("/panchayaths/:id", panchayathHandler.Update)
		protected.DELETE("/panchayaths/:id", panchayathHandler.Delete)

		protected.GET("/announcements", announcementHandler.ListAll)
		protected.POST("/announcements", announcementHandler.Create)
		protected.PUT("/announcements/:id", announcementHandler.Update)
		protected.DELETE("/announcements/:id", announcementHandler.Delete)
	}

	// Super admin only: admin accounts and the audit trail.
	superOnly := api.Group("/admin")
	superOnly.Use(middleware.AuthMiddleware(cfg, authSvc))
	superOnly.Use(middleware.RequireRoles(auth.RoleSuper))
	{
		superOnly.GET("/admins", authHandler.ListAdmins)
		superOnly.POST("/admins", authHandler.CreateAdmin)
		superOnly.PUT("/admins/:id", authHandler.UpdateAdmin)

		superOnly.GET("/auditlogs", auditHandler.List)
	}
}
