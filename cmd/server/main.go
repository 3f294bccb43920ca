package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Ordy-97/GestionProjet/internal/config"
	"github.com/Ordy-97/GestionProjet/internal/handler"
	"github.com/Ordy-97/GestionProjet/internal/middleware"
	"github.com/Ordy-97/GestionProjet/internal/model"
	"github.com/Ordy-97/GestionProjet/internal/notify"
	"github.com/Ordy-97/GestionProjet/internal/router"
	"github.com/Ordy-97/GestionProjet/internal/service"
	"github.com/Ordy-97/GestionProjet/internal/sse"
	"github.com/Ordy-97/GestionProjet/pkg/filestore"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// Load config
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Database
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	// Auto migrate
	if err := db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.ProjectMember{},
		&model.Document{},
		&model.ActivityLog{},
	); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// File storage
	local, err := filestore.NewLocal(cfg.Storage.Dir, cfg.Server.BaseURL)
	if err != nil {
		log.Fatalf("init file storage: %v", err)
	}
	files := filestore.WithRetry(local, time.Duration(cfg.Storage.TimeoutSeconds)*time.Second)

	// Core components
	hub := sse.NewHub(rdb)
	notifier := notify.NewActivityNotifier(db, hub)

	// Services
	authService := service.NewAuthService(db, rdb, cfg.JWT.Secret, cfg.JWT.ExpireHours,
		time.Duration(cfg.Storage.ResetTokenHours)*time.Hour)
	userService := service.NewUserService(db)
	projectService := service.NewProjectService(db, files)
	documentService := service.NewDocumentService(db, files)
	activityService := service.NewActivityService(db)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, files, cfg.Storage.MaxUploadMB)
	userHandler := handler.NewUserHandler(userService, files, cfg.Storage.MaxUploadMB)
	projectHandler := handler.NewProjectHandler(projectService, activityService, notifier, hub, files, cfg.Storage.MaxUploadMB)
	documentHandler := handler.NewDocumentHandler(documentService, projectService, notifier, cfg.Storage.MaxUploadMB)
	dashboardHandler := handler.NewDashboardHandler(projectService, activityService)

	// Gin engine
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.MaxMultipartMemory = cfg.Storage.MaxUploadMB << 20

	router.Setup(r, router.Deps{
		DB:               db,
		Redis:            rdb,
		JWTSecret:        cfg.JWT.Secret,
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AuthLimiter:      middleware.NewRateLimiter(cfg.RateLimit.AuthPerMinute),
		GeneralLimiter:   middleware.NewRateLimiter(cfg.RateLimit.GeneralPerMinute),
		StaticFilesDir:   local.Dir(),
		AuthHandler:      authHandler,
		UserHandler:      userHandler,
		ProjectHandler:   projectHandler,
		DocumentHandler:  documentHandler,
		DashboardHandler: dashboardHandler,
	})

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
