package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/Karthikeya277/robot-lab-pass/docs"
	"github.com/Karthikeya277/robot-lab-pass/internal/api/handler"
	"github.com/Karthikeya277/robot-lab-pass/internal/api/middleware"
	"github.com/Karthikeya277/robot-lab-pass/internal/core/domain"
	"github.com/Karthikeya277/robot-lab-pass/internal/core/service"
	"github.com/Karthikeya277/robot-lab-pass/internal/core/session"
	mongodb "github.com/Karthikeya277/robot-lab-pass/internal/infrastructure/db/mongo"
	redisdb "github.com/Karthikeya277/robot-lab-pass/internal/infrastructure/db/redis"
)

// RouterConfig carries the settings the router needs beyond its
// infrastructure handles.
type RouterConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("labpass"))

	// --- Dependencies ---
	identityRepo := mongodb.NewIdentityRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	requestRepo := mongodb.NewAccessRequestRepository(db)
	revoker := redisdb.NewRevocationList(rdb)

	sessions := session.NewManager(identityRepo, profileRepo)
	authService := service.NewAuthService(identityRepo, profileRepo, revoker, cfg.JWTSecret, cfg.TokenTTL, log)
	requestService := service.NewRequestService(requestRepo, log)

	authHandler := handler.NewAuthHandler(authService, sessions)
	requestHandler := handler.NewRequestHandler(requestService)
	adminHandler := handler.NewAdminHandler(requestService)

	authMiddleware := middleware.Auth(cfg.JWTSecret, revoker)

	// --- Auth routes ---
	e.POST("/auth/register/student", authHandler.RegisterStudent)
	e.POST("/auth/register/faculty", authHandler.RegisterFaculty)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)
	e.GET("/auth/session", authHandler.Session, authMiddleware)

	// --- Request workflow ---
	// Submitting and listing need a complete profile of any role. The
	// admin surface additionally requires the admin role.
	requests := e.Group("/v1/requests", authMiddleware, middleware.Protect(sessions))
	requests.POST("", requestHandler.Submit)
	requests.GET("", requestHandler.List)

	admin := e.Group("/v1/admin", authMiddleware, middleware.Protect(sessions, domain.RoleAdmin))
	admin.GET("/requests", adminHandler.ListAll)
	admin.POST("/requests/:id/decision", adminHandler.Decide)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
