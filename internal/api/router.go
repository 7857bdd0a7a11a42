package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/mercadito/commerce-api/docs"
	"github.com/mercadito/commerce-api/internal/api/handler"
	"github.com/mercadito/commerce-api/internal/api/middleware"
	"github.com/mercadito/commerce-api/internal/core/domain"
	"github.com/mercadito/commerce-api/internal/core/ports"
	"github.com/mercadito/commerce-api/internal/core/service"
	"github.com/mercadito/commerce-api/internal/infrastructure/config"
	mongodb "github.com/mercadito/commerce-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mercadito/commerce-api/internal/infrastructure/db/redis"
	"github.com/mercadito/commerce-api/internal/infrastructure/upload"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, cleaner ports.FileCleaner, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("commerce"))
	if cfg.CORSOrigin != "" {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:     []string{cfg.CORSOrigin},
			AllowCredentials: true,
		}))
	}

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	sessions := redisdb.NewSessionStore(rdb)

	var transform upload.Transform
	if cfg.Upload.Strategy == "resize" {
		transform = upload.ResizeTransform{Width: 300, Height: 250}
	}
	uploader := upload.NewPipeline(cfg.Upload.Dir, transform, log)

	authService := service.NewAuthService(userRepo, sessions, cfg.JWTSecret, cfg.TokenTTL, cfg.SessionTTL, log)
	userService := service.NewUserService(userRepo, log)
	productService := service.NewProductService(productRepo, cleaner, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService, uploader)

	authRequired := middleware.Auth(cfg.JWTSecret, sessions, userRepo)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- API routes ---
	api := e.Group("/api")

	api.POST("/login", authHandler.Login)
	api.POST("/new-user", userHandler.Create)

	api.POST("/logout", authHandler.Logout, authRequired)
	api.GET("/profile", authHandler.Profile, authRequired)

	api.GET("/user", userHandler.List, authRequired, adminOnly)
	api.GET("/user/:id", userHandler.Get, authRequired, adminOnly)
	api.PUT("/user/:id", userHandler.Update, authRequired, adminOnly)
	api.DELETE("/user/:id", userHandler.Delete, authRequired, adminOnly)

	api.POST("/new-product", productHandler.Create)
	api.GET("/product", productHandler.List)
	api.GET("/product/:id", productHandler.Get)
	api.PUT("/product/:id", productHandler.Update)
	api.PATCH("/product/:id", productHandler.Patch)
	api.DELETE("/product/:id", productHandler.Delete)

	// --- Uploaded content ---
	e.Static("/uploads", cfg.Upload.Dir)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
