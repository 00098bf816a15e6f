package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
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
	"github.com/esepkerala/registration-backend/routes"
	"github.com/esepkerala/registration-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis
	if err := utils.InitRedis(cfg); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auditlog.AuditLog{},
		&auth.Admin{},
		&category.Category{},
		&panchayath.Panchayath{},
		&registration.Registration{},
		&announcement.Announcement{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	bus := realtime.NewBus(utils.RedisClient())

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With", "Cache-Control", "Pragma"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg, bus)

	log.Printf("🚀 Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
