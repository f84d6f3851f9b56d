package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/adbottle/internal/config"
	"github.com/example/adbottle/internal/handlers"
	"github.com/example/adbottle/internal/middleware"
	"github.com/example/adbottle/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	emailService := services.NewSMTPEmailService(
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	var smsGateway services.SMSGateway
	if cfg.TwilioAccountSID != "" {
		smsGateway = services.NewTwilioGateway(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	} else {
		smsGateway = &services.MockSMSGateway{}
	}

	notifier := services.NewNotifier(emailService, smsGateway, db)
	campaignService := services.NewCampaignService(db, notifier)
	paymentService := services.NewPaymentService(db, services.PaymentConfig{
		RazorpayKeyID:     cfg.RazorpayKeyID,
		RazorpayKeySecret: cfg.RazorpayKeySecret,
		PayUMerchantKey:   cfg.PayUMerchantKey,
		PayUMerchantSalt:  cfg.PayUMerchantSalt,
		StripeSecretKey:   cfg.StripeSecretKey,
		SimulationEnabled: cfg.PaymentSimulation,
	})
	receiptService := services.NewReceiptService(cfg.BaseURL, func() map[string]int64 {
		return campaignService.LoadPolicy().UnitPrices
	})

	authHandler := handlers.NewAuthHandler(db, cfg, smsGateway)
	campaignHandler := handlers.NewCampaignHandler(db, cfg, campaignService, receiptService)
	adminHandler := handlers.NewAdminHandler(db, campaignService)
	galleryHandler := handlers.NewGalleryHandler(db, cfg)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/verify", authHandler.Verify)

	// Public storefront routes
	api.Get("/gallery", galleryHandler.ListDesigns)
	api.Post("/campaigns/quote", campaignHandler.QuoteCampaign)
	api.Get("/track/:campaignId", campaignHandler.TrackCampaign)

	// Payments
	payments := api.Group("/payments")
	payments.Post("/checkout", paymentHandler.Checkout)
	payments.Post("/:id/confirm", paymentHandler.Confirm)
	payments.Get("/:id", paymentHandler.GetTransaction)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Post("/designs/upload", galleryHandler.UploadDesign)
	protected.Post("/campaigns", campaignHandler.CreateCampaign)
	protected.Get("/campaigns", campaignHandler.ListCampaigns)
	protected.Get("/campaigns/:id", campaignHandler.GetCampaign)
	protected.Post("/campaigns/:id/design", campaignHandler.ResubmitDesign)
	protected.Get("/campaigns/:id/receipt", campaignHandler.Receipt)

	// Admin routes
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	admin.Get("/dashboard", adminHandler.DashboardStats)
	admin.Get("/campaigns", adminHandler.ListAllCampaigns)
	admin.Put("/campaigns/:id/status", adminHandler.UpdateStatus)
	admin.Post("/campaigns/:id/request-reupload", adminHandler.RequestReupload)
	admin.Get("/price-settings", adminHandler.ListPriceSettings)
	admin.Post("/price-settings", adminHandler.UpsertPriceSetting)
	admin.Get("/notifications", adminHandler.ListNotifications)
	admin.Post("/gallery", galleryHandler.CreateDesign)
	admin.Put("/gallery/:id", galleryHandler.UpdateDesign)
	admin.Delete("/gallery/:id", galleryHandler.DeleteDesign)
}
