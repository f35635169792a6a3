package routes

import (
	"scholarship-portal-api/controllers"
	"scholarship-portal-api/middleware"
	"scholarship-portal-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)
			public.POST("/register", controllers.Register)

			// Applicant-facing endpoints
			public.POST("/applications/submit", controllers.SubmitApplication)
			public.GET("/applications/track/:trackingId", controllers.TrackApplication)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Scholarship Portal API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Reviewer dashboard and record access
			protected.GET("/applications/dashboard", controllers.GetDashboard)
			protected.GET("/applications/:trackingId", controllers.GetApplicationDetails)
			protected.PUT("/applications/:trackingId/status", controllers.UpdateStatus)

			// Raw record export for admin/trustee tooling
			protected.GET("/admin/applications",
				middleware.RequireRole(models.RoleAdmin, models.RoleTrustee),
				controllers.GetAdminApplications)
		}
	}
}
