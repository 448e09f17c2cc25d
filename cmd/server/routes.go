package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"college-portal.backend/internal/interfaces/http/handlers"
	"college-portal.backend/internal/interfaces/http/middleware"
)

const (
	serviceName    = "college-portal-backend"
	serviceVersion = "0.1.0"
	healthPath     = "/health"
	metricsPath    = "/metrics"
)

// decisionTokensField holds the approved user's tokens in a decide response.
// It is kept out of the idempotency cache.
const decisionTokensField = "tokens"

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	verificationHandler *handlers.VerificationHandler
	authenticate        gin.HandlerFunc
	staffOnly           gin.HandlerFunc
}

func newRouter(d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware(healthPath, metricsPath))
	r.Use(middleware.MetricsMiddleware())

	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, d)
	return r
}

func registerHealthRoute(r *gin.Engine) {
	r.GET(healthPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET(metricsPath, gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/logout", d.authenticate, d.authHandler.Logout)
			auth.GET("/me", d.authenticate, d.authHandler.Me)
			auth.GET("/user/:id", d.authenticate, d.authHandler.GetUser)
		}

		// Verification requests (HOD and PROFESSOR)
		requests := v1.Group("/requests")
		requests.Use(d.authenticate, d.staffOnly)
		{
			requests.GET("/pending", d.verificationHandler.ListPending)
			requests.POST("/decide", middleware.IdempotencyMiddleware(decisionTokensField), d.verificationHandler.Decide)
		}
	}
}
