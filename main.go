package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/raulgarrigos/tapiocraft-server/controllers"
	"github.com/raulgarrigos/tapiocraft-server/database"
	"github.com/raulgarrigos/tapiocraft-server/middleware"
	"github.com/raulgarrigos/tapiocraft-server/repository"
	"github.com/raulgarrigos/tapiocraft-server/routes"
	"github.com/raulgarrigos/tapiocraft-server/services"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := database.ConnectWithConfig(cfg.MongoURI, cfg.MongoDBName); err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("Failed to close MongoDB connection", zap.Error(err))
		}
	}()

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := repository.EnsureIndexes(indexCtx, database.DB); err != nil {
		indexCancel()
		logger.Fatal("Failed to create indexes", zap.Error(err))
	}
	indexCancel()

	var attempts *services.LoginAttemptStore
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, login attempt tracking disabled", zap.Error(err))
		} else {
			attempts = services.NewLoginAttemptStore(redisClient, 5, 15*time.Minute)
			defer redisClient.Close()
		}
	} else {
		logger.Warn("REDIS_URL not set, login attempt tracking disabled")
	}

	users := repository.NewUserRepository(database.DB)
	stores := repository.NewStoreRepository(database.DB)
	products := repository.NewProductRepository(database.DB)
	carts := repository.NewCartRepository(database.DB)
	orders := repository.NewOrderRepository(database.DB)
	reviews := repository.NewReviewRepository(database.DB)

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)

	ctrl := routes.Controllers{
		Auth:     controllers.NewAuthController(services.NewAuthService(users, tokens, attempts, logger)),
		User:     controllers.NewUserController(services.NewUserService(users)),
		Product:  controllers.NewProductController(services.NewProductService(products)),
		Store:    controllers.NewStoreController(services.NewStoreService(stores, products, logger)),
		Cart:     controllers.NewCartController(services.NewCartService(carts, products, logger)),
		Checkout: controllers.NewCheckoutController(services.NewCheckoutService(carts, products, orders, logger)),
		Order:    controllers.NewOrderController(services.NewOrderService(orders, products, stores, logger)),
		Review:   controllers.NewReviewController(services.NewReviewService(reviews, orders, logger)),
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	routes.Register(router, ctrl, tokens)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	logger.Info("Server stopped")
}
