package routes

import (
	adminapi "memorizu-app/internal/api/admin"
	authapi "memorizu-app/internal/api/auth"
	"memorizu-app/internal/api/billing"
	pagesapi "memorizu-app/internal/api/pages"
	publicapi "memorizu-app/internal/api/public"
	stripewebhooks "memorizu-app/internal/api/stripewebhook"
	"memorizu-app/internal/api/users"
	"memorizu-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Signature-verified; must NOT go through input sanitation, the raw
	// body is part of the signature.
	r.POST("/webhooks/publication", stripewebhooks.StripeWebhook)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public page rendering: /p/{id} and /s/{slug} address the same page.
	r.GET("/p/:idOrSlug", publicapi.RenderPage)
	r.GET("/s/:idOrSlug", publicapi.RenderPage)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/verify", users.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/payments", billing.GetPaymentHistory)
	auth.POST("/billing-portal", billing.CreateBillingPortal)

	auth.GET("/pages", pagesapi.ListPages)
	auth.POST("/pages", pagesapi.CreatePage)
	auth.GET("/pages/unpaid", pagesapi.ListUnpaidPages)
	auth.GET("/pages/slug-availability", pagesapi.CheckSlugAvailability)
	auth.POST("/pages/bulk-delete", pagesapi.BulkDeletePages)

	auth.GET("/pages/:id", pagesapi.GetPage)
	auth.PUT("/pages/:id", pagesapi.UpdatePage)
	auth.DELETE("/pages/:id", pagesapi.DeletePage)

	auth.PUT("/pages/:id/slug", pagesapi.ClaimSlug)
	auth.DELETE("/pages/:id/slug", pagesapi.ReleaseSlug)
	auth.POST("/pages/:id/qrcode", pagesapi.GenerateQRCode)
	auth.POST("/pages/:id/checkout", billing.CreateCheckoutSession)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/payments", adminapi.ListAllPayments)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.POST("/pages/:id/force-publish", adminapi.ForcePublish)
	admin.POST("/pages/:id/force-unpublish", adminapi.ForceUnpublish)
}
