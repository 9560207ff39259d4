package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"homeservices/internal/config"
	"homeservices/internal/middleware"
	"homeservices/internal/modules/admin"
	"homeservices/internal/modules/ai"
	"homeservices/internal/modules/auth"
	"homeservices/internal/modules/booking"
	"homeservices/internal/modules/catalog"
	"homeservices/internal/modules/fee"
	"homeservices/internal/modules/ledger"
	"homeservices/internal/modules/notification"
	"homeservices/internal/modules/payment"
	"homeservices/internal/modules/withdrawal"
	jwtsvc "homeservices/internal/pkg/jwt"
	"homeservices/internal/pkg/logger"
	"homeservices/internal/repository"
)

type deps struct {
	cfg     *config.Config
	store   *repository.Store
	jwt     *jwtsvc.Service
	hub     *notification.Hub
	ai      *ai.Service
	codes   auth.CodeSender
	limiter *middleware.IPRateLimiter
	log     *zap.Logger
}

func newRouter(d deps) *gin.Engine {
	store, cfg, zl := d.store, d.cfg, logger.OrNop(d.log)

	// Notifications
	dispatcher := notification.NewDispatcher(store.Notifications, store.Users, d.hub, zl)
	notificationHandler := notification.NewHandler(notification.NewService(store.Notifications, store.Users, d.hub, zl))
	wsHandler := notification.NewWSHandler(d.hub, d.jwt)

	authHandler := auth.NewHandler(auth.NewService(store.Users, store.Categories, d.jwt, d.codes,
		cfg.VerificationCodePepper, cfg.VerifyCodeTTL, zl))
	catalogHandler := catalog.NewHandler(catalog.NewService(store.Categories, store.Users, zl))
	aiHandler := ai.NewHandler(d.ai)

	// Marketplace
	bookingHandler := booking.NewHandler(booking.NewService(store, dispatcher, zl))
	paymentHandler := payment.NewHandler(payment.NewService(store, dispatcher, cfg.PlatformCommission, zl))
	feeHandler := fee.NewHandler(fee.NewService(store, dispatcher, zl))
	withdrawalHandler := withdrawal.NewHandler(withdrawal.NewService(store, dispatcher, cfg.PlatformCommission, zl))
	ledgerHandler := ledger.NewHandler(ledger.NewService(store.Bookings, store.Fees, store.Withdrawals, store.Users, cfg.PlatformCommission))
	adminHandler := admin.NewHandler(admin.NewService(store.Users, store.Stats, zl))

	limited := middleware.RateLimit(d.limiter, zl)

	r := gin.New()
	r.Use(middleware.ErrorLogger(zl))
	r.Use(middleware.RequestLogger(zl))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ws/notifications", wsHandler.HandleWebSocket)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1, limited)
		catalogHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(d.jwt))

		adminGroup := protected.Group("/admin")
		adminGroup.Use(middleware.AdminOnly())

		authHandler.RegisterProtectedRoutes(protected)
		catalogHandler.RegisterProtectedRoutes(protected)
		catalogHandler.RegisterAdminRoutes(adminGroup)
		aiHandler.RegisterRoutes(protected, limited)
		bookingHandler.RegisterRoutes(protected)
		paymentHandler.RegisterRoutes(protected)
		feeHandler.RegisterRoutes(protected, adminGroup)
		withdrawalHandler.RegisterRoutes(protected, adminGroup)
		ledgerHandler.RegisterRoutes(protected, adminGroup)
		notificationHandler.RegisterRoutes(protected, adminGroup)
		adminHandler.RegisterRoutes(adminGroup)
	}

	return r
}
