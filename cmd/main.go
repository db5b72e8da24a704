package main

import (
	"context"
	"fmt"
	"log" // standard log for errors raised before zap is up
	"os"
	"os/signal"
	"syscall"

	"github.com/fathima-sithara/account-service/internal/auth"
	"github.com/fathima-sithara/account-service/internal/avatars"
	"github.com/fathima-sithara/account-service/internal/config"
	"github.com/fathima-sithara/account-service/internal/database"
	"github.com/fathima-sithara/account-service/internal/events"
	"github.com/fathima-sithara/account-service/internal/handlers"
	"github.com/fathima-sithara/account-service/internal/middleware"
	"github.com/fathima-sithara/account-service/internal/repository"
	"github.com/fathima-sithara/account-service/internal/routes"
	"github.com/fathima-sithara/account-service/internal/services"
	"github.com/fathima-sithara/account-service/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.App.Env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer func() {
		_ = logger.Sync()
	}()
	sugar := logger.Sugar()
	sugar.Infof("Starting account-service in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	ctxMongo, cancelMongo := context.WithTimeout(context.Background(), cfg.MongoConnectTimeout)
	db, mongoClient, err := database.ConnectMongo(ctxMongo, cfg.Mongo.URI, cfg.Mongo.Database)
	cancelMongo()
	if err != nil {
		sugar.Fatal(err)
	}
	sugar.Info("MongoDB connected successfully")

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		ctxRedis, cancelRedis := context.WithTimeout(context.Background(), cfg.RedisDialTimeout)
		rdb, err = database.ConnectRedis(ctxRedis, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		cancelRedis()
		if err != nil {
			sugar.Fatal(err)
		}
		sugar.Info("Redis connected successfully")
	} else {
		sugar.Warn("Redis not configured, login rate limiting disabled")
	}

	var store storage.Store
	if cfg.Avatar.Backend == "s3" {
		s3store, err := storage.NewS3Store(context.Background(), cfg.AWS.Region, cfg.AWS.Bucket)
		if err != nil {
			sugar.Fatalf("S3 store init failed: %v", err)
		}
		store = s3store
	} else {
		store = storage.NewDiskStore(cfg.Avatar.Dir)
	}

	publisher := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	if publisher == nil {
		sugar.Warn("Kafka not configured, account events disabled")
	}

	userRepo := repository.NewMongoUserRepo(db, cfg.Mongo.Collection)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret)
	svc := services.NewAccountService(
		userRepo,
		tokens,
		store,
		avatars.NewProcessor(cfg.Avatar.ResizeWidth),
		publisher,
		cfg.Auth.BcryptCost,
	)
	h := handlers.NewHandler(svc, logger)

	app := fiber.New(fiber.Config{
		AppName: "account-service",
	})
	app.Use(middleware.RequestLog(logger))

	var loginLimiter fiber.Handler
	if rdb != nil {
		rl := middleware.NewRateLimiter(rdb, "login_rate_limit", cfg.Redis.LoginLimit, cfg.LoginWindow)
		loginLimiter = rl.MiddlewareByKey(func(c *fiber.Ctx) string { return c.IP() })
	}

	routes.Setup(app, h, middleware.RequireAuth(svc), loginLimiter)

	go func() {
		listenAddr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", listenAddr)
		if err := app.Listen(listenAddr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShut()

	if err := app.ShutdownWithContext(ctxShut); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}
	if err := mongoClient.Disconnect(ctxShut); err != nil {
		sugar.Errorf("MongoDB disconnect error: %v", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			sugar.Errorf("Redis client close error: %v", err)
		}
	}
	if err := publisher.Close(); err != nil {
		sugar.Errorf("Kafka producer close error: %v", err)
	}

	sugar.Info("Graceful shutdown complete")
}
