package router

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jobtrackr-dev/jobtrackr/internal/handlers"
	"github.com/jobtrackr-dev/jobtrackr/internal/middleware"
	"github.com/jobtrackr-dev/jobtrackr/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		users := api.Group("/users")
		{
			users.POST("/register", handlers.RegisterUser)
			users.POST("/login", handlers.LoginUser)
			users.POST("/forgot-password", handlers.ForgotPassword)
			users.POST("/reset-password", handlers.ResetPassword)

			users.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			users.PUT("/profile", middleware.AuthMiddleware(), handlers.UpdateProfile)
			users.PUT("/password", middleware.AuthMiddleware(), handlers.UpdatePassword)
			users.DELETE("/delete", middleware.AuthMiddleware(), handlers.DeleteUser)
			users.POST("/notification-settings", middleware.AuthMiddleware(), handlers.EnableNotifications)
		}

		jobs := api.Group("/jobs", middleware.AuthMiddleware())
		{
			jobs.POST("", handlers.AddJob)
			jobs.POST("/upload", handlers.UploadResume)
			jobs.GET("", handlers.GetJobs)
			jobs.GET("/disable-notifications", handlers.DisableNotifications)
			jobs.GET("/:id", handlers.GetJob)
			jobs.GET("/:id/details", handlers.GetJobDetails)
			jobs.PUT("/:id", handlers.UpdateJob)
			jobs.DELETE("/:id", handlers.DeleteJob)
			jobs.PATCH("/:id/reminder", handlers.ToggleReminder)
			jobs.PATCH("/:id/pin", handlers.TogglePin)
		}

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("", handlers.GetNotifications)
			notifications.PUT("/:id/read", handlers.MarkNotificationRead)
			notifications.DELETE("/:id", handlers.DeleteNotification)
		}

		analytics := api.Group("/analytics", middleware.AuthMiddleware())
		{
			analytics.GET("/status-distribution", handlers.GetStatusDistribution)
			analytics.GET("/applications-by-source", handlers.GetApplicationsBySource)
			analytics.GET("/applications-over-time", handlers.GetApplicationsOverTime)
			analytics.GET("/success-rates", handlers.GetSuccessRates)
		}
	}

	return r
}
