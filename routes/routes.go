package routes

import (
	"shelter-grants-api/controllers"
	"shelter-grants-api/middleware"
	"shelter-grants-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)
			public.POST("/register", controllers.RegisterUser)

			public.GET("/shelters", controllers.GetPublicShelters)
			public.GET("/zones", controllers.GetZones)
			public.GET("/service-types", controllers.GetServiceTypes)
			public.GET("/faqs", controllers.GetFAQs)
			public.POST("/contact", controllers.SubmitContactInquiry)

			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Shelter Grants API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", controllers.GetProfile)

			// Organization profile
			protected.POST("/organizations", controllers.RegisterOrganization)
			protected.GET("/organizations/me", controllers.GetMyOrganization)
			protected.PUT("/organizations/me", controllers.UpdateMyOrganization)

			// Grant applications (applicant side)
			applications := protected.Group("/applications")
			{
				applications.POST("", controllers.CreateApplication)
				applications.GET("", controllers.GetApplications)
				applications.GET("/:id", controllers.GetApplication)
				applications.PATCH("/:id/type", controllers.SetApplicationType)
				applications.PUT("/:id/draft", controllers.SaveDraft)
				applications.POST("/:id/submit", controllers.SubmitApplication)
				applications.GET("/:id/history", controllers.GetApplicationHistory)

				applications.POST("/:id/documents", controllers.UploadDocument)
				applications.GET("/:id/documents", controllers.GetDocuments)

				applications.GET("/:id/messages", controllers.GetMessages)
				applications.POST("/:id/messages", controllers.SendMessage)
			}

			documents := protected.Group("/documents")
			{
				documents.GET("/download/:document_id", controllers.DownloadDocument)
				documents.DELETE("/:document_id", controllers.DeleteDocument)
				documents.GET("/types", controllers.GetDocumentTypes)
			}

			// Reviewer routes
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleReviewer))
			{
				adminApplications := admin.Group("/applications")
				{
					adminApplications.GET("", controllers.AdminGetApplications)
					adminApplications.GET("/:id", controllers.AdminGetApplication)
					adminApplications.PATCH("/:id/status", controllers.AdminUpdateStatus)
					adminApplications.GET("/:id/history", controllers.AdminGetHistory)
					adminApplications.GET("/:id/messages", controllers.AdminGetMessages)
					adminApplications.POST("/:id/messages", controllers.AdminSendMessage)
					adminApplications.GET("/:id/notes", controllers.AdminGetNotes)
					adminApplications.POST("/:id/notes", controllers.AdminAddNote)
				}

				admin.GET("/documents/download/:document_id", controllers.AdminDownloadDocument)

				reports := admin.Group("/reports")
				{
					reports.GET("/cost-pressure", controllers.GetCostPressureReport)
					reports.GET("/cost-pressure/csv", controllers.GetCostPressureReportCSV)
					reports.GET("/regional", controllers.GetRegionalReport)
					reports.GET("/regional/csv", controllers.GetRegionalReportCSV)
					reports.GET("/fiscal-year", controllers.GetFiscalYearReport)
					reports.GET("/fiscal-year/csv", controllers.GetFiscalYearReportCSV)
				}

				admin.GET("/dashboard", controllers.GetDashboard)

				shelters := admin.Group("/shelters")
				{
					shelters.GET("", controllers.AdminGetShelters)
					shelters.POST("", controllers.AdminCreateShelter)
					shelters.PUT("/:id", controllers.AdminUpdateShelter)
					shelters.DELETE("/:id", controllers.AdminDeleteShelter)
				}
			}
		}
	}
}
