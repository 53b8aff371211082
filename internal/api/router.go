package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/DDjog/RestAPIz14/internal/api/handler"
	"github.com/DDjog/RestAPIz14/internal/api/middleware"
	"github.com/DDjog/RestAPIz14/internal/core/service"
	"github.com/DDjog/RestAPIz14/internal/infrastructure/config"
	"github.com/DDjog/RestAPIz14/internal/infrastructure/db/postgres"
	"github.com/DDjog/RestAPIz14/internal/infrastructure/db/redis"
	"github.com/DDjog/RestAPIz14/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *sql.DB, rdb *goredis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("contacts"))

	// --- Dependencies ---
	contactRepo := postgres.NewContactRepository(db)
	userRepo := postgres.NewUserRepository(db)
	userCache := redis.NewUserCache(rdb)

	authService := service.NewAuthService(userRepo, userCache, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, log)
	contactService := service.NewContactService(contactRepo, log)
	userService := service.NewUserService(userRepo, userCache, log)

	authHandler := handler.NewAuthHandler(authService)
	contactHandler := handler.NewContactHandler(contactService)
	userHandler := handler.NewUserHandler(userService)
	authRequired := middleware.Auth(authService)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh_token", authHandler.Refresh)
	auth.GET("/confirmed_email/:token", authHandler.ConfirmEmail)

	// --- User routes ---
	users := e.Group("/api/users", authRequired)
	users.GET("/me", userHandler.Me)
	users.PATCH("/avatar", userHandler.UpdateAvatar)

	// --- Contact routes ---
	contacts := e.Group("/api/contacts", authRequired)
	contacts.GET("", contactHandler.List)
	contacts.POST("", contactHandler.Create)
	contacts.GET("/:id", contactHandler.Get)
	contacts.PUT("/:id", contactHandler.Update)
	contacts.DELETE("/:id", contactHandler.Remove)
	contacts.GET("/note/:id", contactHandler.GetNotes)
	contacts.PUT("/note/:id", contactHandler.UpdateNotes)
	contacts.GET("/birthday_ahead/:days", contactHandler.BirthdayAhead)
	contacts.GET("/firstname/:name", contactHandler.ByFirstname)
	contacts.GET("/secondname/:name", contactHandler.BySecondname)
	contacts.GET("/firstandsecondname/:first/:second", contactHandler.ByFirstAndSecondname)
	contacts.GET("/email/:email", contactHandler.ByEmail)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
