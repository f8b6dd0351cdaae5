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
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/amora/backend/internal/config"
	"github.com/amora/backend/internal/database"
	"github.com/amora/backend/internal/events"
	"github.com/amora/backend/internal/jobs"
	"github.com/amora/backend/internal/middleware"
	"github.com/amora/backend/internal/routes"
	"github.com/amora/backend/internal/services/balance"
	"github.com/amora/backend/internal/services/gift"
	"github.com/amora/backend/internal/services/registry"
	"github.com/amora/backend/internal/services/subscription"
	"github.com/amora/backend/internal/services/transaction"
	"github.com/amora/backend/internal/services/withdrawal"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadConfig()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.URL,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	var publisher events.Publisher
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		log.Printf("Redis unavailable, balance events disabled: %v", err)
		publisher = events.NoopPublisher{}
	} else {
		publisher = events.NewRedisPublisher(redisClient)
	}

	registryService := registry.NewService(db)
	balanceService := balance.NewService(db, publisher)
	subscriptionService := subscription.NewService(db, balanceService)
	giftService := gift.NewService(db, balanceService)
	transactionService := transaction.NewService(db, registryService, balanceService, subscriptionService, giftService)
	withdrawalService := withdrawal.NewService(db, balanceService)

	rateLimiter := middleware.NewRateLimiter(10, 20, 1, 5)
	defer rateLimiter.Stop()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.SetupRouter(db, cfg, routes.Services{
		Registry:     registryService,
		Balance:      balanceService,
		Transaction:  transactionService,
		Withdrawal:   withdrawalService,
		Subscription: subscriptionService,
		Gift:         giftService,
	}, rateLimiter)

	scheduler := jobs.NewScheduler(cfg, transactionService, subscriptionService)
	scheduler.Start()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exiting")
}
