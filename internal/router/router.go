package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"lucopay/config"
	"lucopay/internal/handler"
	"lucopay/internal/keepalive"
	"lucopay/internal/middleware"
	"lucopay/internal/service"
	"lucopay/pkg/payment"
)

// Setup wires the HTTP surface. limiter may be nil to disable rate limiting.
func Setup(cfg *config.Config, limiter *middleware.InMemoryRateLimiter) http.Handler {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(), middleware.Metrics())

	// Providers
	identityClient := payment.NewIdentityClient(cfg.Identity)
	gatewayClient := payment.NewGatewayClient(cfg.Payment)

	// Services
	identitySvc := service.NewIdentityService(identityClient)
	paymentSvc := service.NewPaymentService(gatewayClient, cfg.Reference)

	// Handlers
	rootHandler := handler.NewRootHandler()
	identityHandler := handler.NewIdentityHandler(identitySvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)

	r.GET("/", rootHandler.Welcome)
	r.GET(keepalive.HealthPath, rootHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	upstream := r.Group("")
	if limiter != nil {
		upstream.Use(middleware.RateLimit(limiter))
	}
	upstream.POST("/identity/msisdn", identityHandler.ValidateMSISDN)

	api := upstream.Group("/api/v1")
	{
		api.POST("/request_payment", paymentHandler.RequestPayment)
		api.POST("/payment_webhook", paymentHandler.Webhook)
	}

	return permissiveCORS().Handler(r)
}

// permissiveCORS allows every origin, method and header, with credentials.
// This matches the public deployment and is a known security trade-off.
func permissiveCORS() *cors.Cors {
	return cors.New(cors.Options{
		AllowOriginFunc: func(string) bool { return true },
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
}
