package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/omkar2446/LootDukan/internal/config"
	"github.com/omkar2446/LootDukan/internal/handler"
	"github.com/omkar2446/LootDukan/internal/hub"
	"github.com/omkar2446/LootDukan/internal/middleware"
	"github.com/omkar2446/LootDukan/internal/repository"
	"github.com/omkar2446/LootDukan/internal/service"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Log.Level)

	dbPool, err := pgxpool.New(context.Background(), cfg.Database.DSN)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", "error", err)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		appLogger.Fatal("Failed to ping database", "error", err)
	}
	appLogger.Info("Database connection established")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		appLogger.Fatal("Failed to connect to Redis", "error", err)
	}
	appLogger.Info("Redis connection established")

	messageHub := hub.New(appLogger)
	go messageHub.Run()

	repos := repository.NewRepositories(dbPool, rdb, appLogger)
	services := service.NewServices(repos, messageHub, cfg, appLogger)

	authMiddleware := middleware.NewAuthMiddleware(services.Auth, appLogger)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(services.RateLimit, appLogger)

	handlers := handler.NewHandlers(services, cfg, appLogger)

	router := setupRouter(handlers, authMiddleware, rateLimitMiddleware, cfg, appLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exited")
}

func setupRouter(
	handlers *handler.Handlers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	cfg *config.Config,
	appLogger logger.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))
	router.Use(middleware.RequestLogger(appLogger))
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Check)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", rateLimitMiddleware.Limit(), handlers.Auth.Register)
			auth.POST("/login", rateLimitMiddleware.Limit(), handlers.Auth.Login)
			auth.POST("/refresh", handlers.Auth.RefreshToken)
		}

		// Public storefront.
		v1.GET("/products", handlers.Product.List)
		v1.GET("/products/:id", handlers.Product.GetByID)

		protected := v1.Group("")
		protected.Use(authMiddleware.RequireAuth())
		{
			users := protected.Group("/users")
			{
				users.GET("/me", handlers.User.GetMe)
				users.PUT("/me", handlers.User.UpdateMe)
			}

			chat := protected.Group("/chat")
			{
				chat.POST("/requests", handlers.Chat.CreateRequest)
				chat.GET("/requests", handlers.Chat.ListRequests)
				chat.POST("/requests/:id/respond", handlers.Chat.Respond)
				chat.GET("/requests/:id/messages", handlers.Chat.GetMessages)
				chat.POST("/requests/:id/messages", handlers.Chat.SendMessage)
				chat.GET("/quota", handlers.Chat.GetQuota)
			}

			sellers := protected.Group("/sellers")
			sellers.Use(authMiddleware.RequireRole("seller"))
			{
				sellers.GET("/me/products", handlers.Product.ListMine)
				sellers.GET("/me/stats", handlers.Stats.SellerStats)
			}

			payments := protected.Group("/payments")
			payments.Use(authMiddleware.RequireRole("seller"))
			{
				payments.POST("/order", handlers.Payment.CreateOrder)
				payments.POST("/verify", handlers.Payment.Verify)
			}

			admin := protected.Group("/admin")
			admin.Use(authMiddleware.RequireRole("admin"))
			{
				admin.POST("/products", handlers.Product.CreateAffiliateDeal)
				admin.PUT("/products/:id/status", handlers.Product.SetStatus)
			}
		}
	}

	// Realtime message stream; the token travels as a query parameter.
	router.GET("/ws/chat/:id", authMiddleware.RequireAuth(), handlers.WebSocket.HandleChat)

	return router
}
