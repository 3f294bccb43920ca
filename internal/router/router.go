package router

import (
	"time"

	"github.com/Ordy-97/GestionProjet/internal/handler"
	"github.com/Ordy-97/GestionProjet/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Deps struct {
	DB               *gorm.DB
	Redis            *redis.Client
	JWTSecret        string
	AllowedOrigins   []string
	AuthLimiter      *middleware.RateLimiter
	GeneralLimiter   *middleware.RateLimiter
	StaticFilesDir   string
	AuthHandler      *handler.AuthHandler
	UserHandler      *handler.UserHandler
	ProjectHandler   *handler.ProjectHandler
	DocumentHandler  *handler.DocumentHandler
	DashboardHandler *handler.DashboardHandler
}

func Setup(r *gin.Engine, deps Deps) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "Last-Event-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Uploaded files are public-read; write access goes through the API.
	r.Static("/files", deps.StaticFilesDir)

	api := r.Group("/api/v1")
	api.Use(deps.GeneralLimiter.Middleware())

	// Public routes (no auth, tighter rate limit)
	auth := api.Group("/auth")
	auth.Use(deps.AuthLimiter.Middleware())
	{
		auth.POST("/register", deps.AuthHandler.Register)
		auth.POST("/login", deps.AuthHandler.Login)
		auth.POST("/password-reset", deps.AuthHandler.RequestPasswordReset)
		auth.POST("/password-reset/confirm", deps.AuthHandler.ConfirmPasswordReset)
	}

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(deps.JWTSecret, deps.DB, deps.Redis))
	{
		authed.GET("/auth/me", deps.AuthHandler.GetMe)
		authed.POST("/auth/logout", deps.AuthHandler.Logout)

		users := authed.Group("/users")
		{
			users.GET("/search", deps.UserHandler.Search)
			users.PUT("/me", deps.UserHandler.UpdateMe)
		}

		projects := authed.Group("/projects")
		{
			projects.POST("", deps.ProjectHandler.Create)
			projects.GET("", deps.ProjectHandler.List)
			projects.GET("/:id", deps.ProjectHandler.GetDetail)
			projects.PUT("/:id", deps.ProjectHandler.Update)
			projects.PUT("/:id/cover", deps.ProjectHandler.UploadCover)
			projects.DELETE("/:id", deps.ProjectHandler.Delete)

			projects.POST("/:id/members", deps.ProjectHandler.AddMember)
			projects.DELETE("/:id/members/:user_id", deps.ProjectHandler.RemoveMember)

			projects.GET("/:id/activity", deps.ProjectHandler.Activity)
			projects.GET("/:id/events", deps.ProjectHandler.Events)

			projects.POST("/:id/documents", deps.DocumentHandler.Upload)
			projects.GET("/:id/documents", deps.DocumentHandler.ListByProject)
		}

		documents := authed.Group("/documents")
		{
			documents.GET("/:id", deps.DocumentHandler.GetDetail)
			documents.DELETE("/:id", deps.DocumentHandler.Delete)
		}

		dashboard := authed.Group("/dashboard")
		{
			dashboard.GET("/stats", deps.DashboardHandler.GetStats)
		}
	}
}
