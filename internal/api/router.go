package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicore/account-system/internal/api/handler"
	"github.com/clinicore/account-system/internal/api/middleware"
	"github.com/clinicore/account-system/internal/core/domain"
	"github.com/clinicore/account-system/internal/core/ports"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	Users    ports.UserService
	Sessions ports.SessionAuthority
	Pool     *pgxpool.Pool
	Redis    *redis.Client
	Mongo    *mongo.Database
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	authRequired := middleware.Auth(deps.Sessions)
	adminOnly := middleware.RBAC(deps.Users, domain.RoleAdmin)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Users)
	userHandler := handler.NewUserHandler(deps.Users)
	profileHandler := handler.NewProfileHandler(deps.Users)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/register/patient", authHandler.RegisterPatient)
	e.POST("/auth/logout", authHandler.Logout, authRequired)

	// --- Self-service profile routes ---
	profile := e.Group("/api/profile", authRequired)
	profile.GET("", profileHandler.Me)
	profile.PUT("", profileHandler.Update)
	profile.PUT("/password", profileHandler.ChangePassword)

	// --- Administrative user management ---
	users := e.Group("/api/users", authRequired, adminOnly)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)
	users.PUT("/:id/password", userHandler.ResetPassword)
	users.PUT("/:id/status", userHandler.UpdateStatus)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Pool, deps.Redis, deps.Mongo)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
