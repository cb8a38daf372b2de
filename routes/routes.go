package routes

import (
	"verification-api/controllers"
	"verification-api/middleware"
	"verification-api/models"

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

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Verification API is running",
				})
			})

			// Public applicant form, scoped by company code
			public.GET("/public/:companyCode/questions", controllers.GetPublicFormQuestions)
			public.POST("/public/:companyCode/applications", controllers.SubmitPublicApplication)
			public.POST("/public/:companyCode/applications/:id/documents", controllers.UploadApplicationDocument)
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Notifications
			protected.GET("/notifications", controllers.GetNotifications)
			protected.GET("/notifications/counter", controllers.GetNotificationCounter)
			protected.PUT("/notifications/:id/read", controllers.MarkNotificationRead)
			protected.PUT("/notifications/read-all", controllers.MarkAllNotificationsRead)

			// Dashboard
			protected.GET("/dashboard/stats", controllers.GetDashboardStats)

			// Applications
			applications := protected.Group("/applications")
			{
				applications.GET("", controllers.GetApplications)
				applications.GET("/:id", controllers.GetApplication)
				applications.GET("/:id/history", controllers.GetVerificationHistory)
				applications.GET("/:id/documents", controllers.GetApplicationDocuments)

				// Only admin can edit or delete case records
				applications.PUT("/:id", middleware.RequireRole(models.RoleAdmin), controllers.UpdateApplication)
				applications.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteApplication)

				// Assignment gate
				applications.POST("/:id/assign", middleware.RequireRole(models.RoleAdmin), controllers.AssignApplication)
				applications.POST("/:id/auto-assign", middleware.RequireRole(models.RoleVerifier), controllers.AutoAssignApplication)

				// Review engine (verifier only)
				applications.POST("/:id/review", middleware.RequireRole(models.RoleVerifier), controllers.SubmitReview)
				applications.GET("/:id/review", middleware.RequireRole(models.RoleVerifier, models.RoleAdmin), controllers.GetApplicationReview)
				applications.POST("/:id/finalize-review", middleware.RequireRole(models.RoleVerifier), controllers.FinalizeReview)
			}

			// Documents
			documents := protected.Group("/documents")
			{
				documents.GET("/download/:file_id", controllers.DownloadDocument)
				documents.DELETE("/:file_id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteDocument)
			}

			// Admin-only management
			admin := protected.Group("")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				companies := admin.Group("/companies")
				{
					companies.GET("", controllers.GetCompanies)
					companies.GET("/:id", controllers.GetCompany)
					companies.POST("", controllers.CreateCompany)
					companies.PUT("/:id", controllers.UpdateCompany)
					companies.DELETE("/:id", controllers.DeleteCompany)
				}

				users := admin.Group("/users")
				{
					users.GET("", controllers.GetUsers)
					users.POST("", controllers.CreateUser)
					users.PUT("/:id", controllers.UpdateUser)
					users.DELETE("/:id", controllers.DeleteUser)
				}

				assignments := admin.Group("/verifier-assignments")
				{
					assignments.GET("", controllers.GetVerifierAssignments)
					assignments.POST("", controllers.CreateVerifierAssignment)
					assignments.DELETE("/:id", controllers.RevokeVerifierAssignment)
				}

				questions := admin.Group("/form-questions")
				{
					questions.GET("", controllers.GetFormQuestions)
					questions.POST("", controllers.CreateFormQuestion)
					questions.PUT("/:id", controllers.UpdateFormQuestion)
					questions.DELETE("/:id", controllers.DeleteFormQuestion)
				}
			}
		}
	}
}
