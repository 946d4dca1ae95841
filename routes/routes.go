package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tech-invent-api/config"
	"tech-invent-api/controllers"
	"tech-invent-api/mailer"
	"tech-invent-api/middleware"
	"tech-invent-api/services"
	"tech-invent-api/storage"
)

// Setup wires every controller onto the router. The site portal lives
// under /api/v1, the review portal under /api/v1/admin.
func Setup(router *gin.Engine, cfg *config.Config, db *gorm.DB, mail mailer.Sender, store *storage.Client) {
	repo := services.NewProposalRepository(db)
	svc := services.NewProposalService(repo, mail)

	auth := controllers.NewAuthController(cfg, db, mail)
	proposals := controllers.NewProposalController(svc)
	adminProposals := controllers.NewAdminProposalController(svc)
	adminUsers := controllers.NewAdminUserController(db, svc)
	dashboard := controllers.NewDashboardController(svc)
	documents := controllers.NewDocumentController(store)
	exports := controllers.NewExportController(svc)

	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/auth/send-otp", auth.SendSignupOTP)
			public.POST("/auth/signup", auth.Signup)
			public.POST("/auth/login", auth.Login)
			public.POST("/send-otp", auth.SendProposalOTP)
			public.POST("/admin/login", auth.AdminLogin)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Tech Invent Proposal API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg, db))
		{
			protected.GET("/user/me", auth.Me)

			proposalRoutes := protected.Group("/proposals")
			{
				proposalRoutes.POST("", proposals.Submit)
				proposalRoutes.GET("", proposals.ListThreads)
				proposalRoutes.GET("/:id", proposals.Get)
			}
			protected.GET("/proposal-threads/:id", proposals.GetThread)

			protected.POST("/documents/sign-upload", documents.SignUpload)

			// Review portal
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/proposals", adminProposals.List)
				admin.GET("/proposals/export", exports.ExportList)
				admin.GET("/proposals/:id", adminProposals.Get)
				admin.PATCH("/proposals/:id", adminProposals.Patch)
				admin.GET("/proposals/:id/download", exports.Download)

				admin.GET("/dashboard-stats", dashboard.Stats)

				admin.GET("/users", adminUsers.List)
				admin.GET("/users/:id", adminUsers.Get)
			}
		}
	}
}
