package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-account-service/config"
	"github.com/oksasatya/go-account-service/internal/bootstrap"
	"github.com/oksasatya/go-account-service/internal/container"
	"github.com/oksasatya/go-account-service/internal/infrastructure/events"
	"github.com/oksasatya/go-account-service/internal/infrastructure/search"
	"github.com/oksasatya/go-account-service/internal/interface/middleware"
	"github.com/oksasatya/go-account-service/internal/router"
	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// User store (postgres runs migrations first)
	store, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to open user store: %v", err)
	}
	defer store.Close()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetUserRepo(store.Repo)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL))

	// Redis (rate limiting)
	if cfg.RateLimitEnabled {
		rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatalf("failed to connect to redis: %v", err)
		}
		defer func() { _ = rdb.Close() }()
		container.SetRedis(rdb)
	}

	// RabbitMQ (account events)
	if cfg.EventsEnabled {
		pub, err := events.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue)
		if err != nil {
			logger.Fatalf("failed to init rabbitmq publisher: %v", err)
		}
		defer pub.Close()
		container.SetPublisher(pub)
	}

	// Elasticsearch (user search)
	if cfg.SearchEnabled {
		es, err := search.NewClient(search.ClientOptions{
			Addrs:    cfg.ESAddrs(),
			Username: cfg.ElasticsearchUser,
			Password: cfg.ElasticsearchPass,
		})
		if err != nil {
			logger.Fatalf("failed to init elasticsearch client: %v", err)
		}
		container.SetUserIndex(search.NewUserIndex(es, cfg.ESUsersIndex))
	}

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP(cfg.TrustProxyHeaders))
	// CORS
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r, "/api")
	router.InitModules(reg, store.Driver)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s (store=%s)", cfg.Port, store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		return
	}
	logger.Info("server exited properly")
}
