package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	pkgAuth "github.com/domainmart/domainmart/internal/pkg/auth"
	"github.com/domainmart/domainmart/internal/server/http/handlers"
	"github.com/domainmart/domainmart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.DomainmartFacade, verifier *pkgAuth.WebhookVerifier, operator *pkgAuth.OperatorAuth, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	domainHandler := handlers.NewDomainHandler(facade)
	walletHandler := handlers.NewWalletHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade, verifier)
	adminHandler := handlers.NewAdminHandler(facade, facade)

	engine.GET("/healthz", adminHandler.Health)

	api := engine.Group("/api")
	api.POST("/webhooks/payment", webhookHandler.Payment)

	protected := api.Group("")
	protected.Use(middleware.OperatorRequired(operator))
	protected.GET("/orders/:id", orderHandler.Get)
	protected.POST("/orders/:id/payment", orderHandler.CreatePayment)

	users := protected.Group("/users/:telegram_id")
	users.GET("/domains", domainHandler.List)
	users.GET("/wallet", walletHandler.Balance)
	users.GET("/wallet/entries", walletHandler.Entries)
	users.POST("/wallet/topup", walletHandler.TopUp)
	users.POST("/wallet/pay", walletHandler.PayOrder)

	admin := protected.Group("/admin")
	admin.POST("/orders/:id/register", adminHandler.Register)

	return engine
}
