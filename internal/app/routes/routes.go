package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/arvindh/interntrack/internal/app/controllers"
	"github.com/arvindh/interntrack/internal/app/models"
	"github.com/arvindh/interntrack/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	internshipController *controllers.InternshipController,
	odController *controllers.ODController,
	announcementController *controllers.AnnouncementController,
	statsController *controllers.StatsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.GetProfile)

		internships := authenticated.Group("/internships")
		{
			internships.GET("", internshipController.List)
			internships.GET("/:id", internshipController.GetByID)

			// submission and certificate upload are student actions
			internshipsStudent := internships.Group("")
			internshipsStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				internshipsStudent.POST("", internshipController.Create)
				internshipsStudent.PUT("/:id/certificate", internshipController.AttachCertificate)
			}

			// status transitions are faculty actions
			internshipsFaculty := internships.Group("")
			internshipsFaculty.Use(authMiddleware.RoleRequired(models.RoleFaculty))
			{
				internshipsFaculty.PUT("/:id", internshipController.UpdateStatus)
			}
		}

		od := authenticated.Group("/od")
		{
			od.GET("", odController.List)
			od.GET("/:id", odController.GetByID)

			odStudent := od.Group("")
			odStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				odStudent.POST("", odController.Create)
			}

			odFaculty := od.Group("")
			odFaculty.Use(authMiddleware.RoleRequired(models.RoleFaculty))
			{
				odFaculty.PUT("/:id", odController.Decide)
			}
		}

		announcements := authenticated.Group("/announcements")
		{
			announcements.GET("", announcementController.List)

			announcementsFaculty := announcements.Group("")
			announcementsFaculty.Use(authMiddleware.RoleRequired(models.RoleFaculty))
			{
				announcementsFaculty.POST("", announcementController.Create)
				announcementsFaculty.DELETE("/:id", announcementController.Delete)
			}
		}

		stats := authenticated.Group("/stats")
		stats.Use(authMiddleware.RoleRequired(models.RoleFaculty))
		{
			stats.GET("/internships", statsController.InternshipStats)
			stats.GET("/od", statsController.ODStats)
		}
	}
}
