package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lokesh-katari/auth-service/internal/api/handler"
	"github.com/lokesh-katari/auth-service/internal/api/middleware"
	"github.com/lokesh-katari/auth-service/internal/api/policy"
	"github.com/lokesh-katari/auth-service/internal/core/ports"
	"github.com/lokesh-katari/auth-service/internal/infrastructure/http/handlers"
	"github.com/lokesh-katari/auth-service/internal/pkg/token"
)

// NewRouter builds the Echo instance with all routes registered. The route
// groups mirror the policy table in internal/api/policy; the catch-all
// enforces the same table for any path no group claims.
func NewRouter(authService ports.AuthService, cache ports.ProfileCache, codec *token.Codec, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService, cache, log)
	adminHandler := handler.NewAdminHandler(authService, cache, log)
	authn := middleware.Auth(codec)

	// --- Public routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/public/info", userHandler.Info)

	// --- Authenticated routes (any role) ---
	userGroup := e.Group("/api/user", authn,
		middleware.RequireRoles(policy.AnyAuthenticated.AllowedRoles()...))
	userGroup.GET("/profile", userHandler.Profile)

	// --- Admin-only routes ---
	adminGroup := e.Group("/api/admin", authn,
		middleware.RequireRoles(policy.AdminOnly.AllowedRoles()...))
	adminGroup.POST("/create", adminHandler.CreateUser)
	adminGroup.GET("/dashboard", adminHandler.Dashboard)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Fail-secure catch-all ---
	// Paths outside the groups above still demand a valid token before the
	// router admits they do not exist.
	e.Any("/*", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "resource not found")
	}, middleware.PolicyGate(codec))

	return e
}
