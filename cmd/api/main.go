// @title                       Todo Service API
// @version                     1.0
// @description                 Todo CRUD service with JWT authentication and role-based access.
// @host                        localhost:8080
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/todoapp/todo-service/docs"
	"github.com/todoapp/todo-service/internal/api"
	"github.com/todoapp/todo-service/internal/api/handler"
	"github.com/todoapp/todo-service/internal/api/metrics"
	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/service"
	mongodb "github.com/todoapp/todo-service/internal/infrastructure/db/mongo"
	redisdb "github.com/todoapp/todo-service/internal/infrastructure/db/redis"
	"github.com/todoapp/todo-service/internal/infrastructure/queue"
	"github.com/todoapp/todo-service/internal/pkg/clock"
	"github.com/todoapp/todo-service/internal/pkg/config"
	"github.com/todoapp/todo-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:     cfg.LogLevel,
		Env:       cfg.Env,
		Pretty:    cfg.IsDevelopment(),
		File:      cfg.Log.File,
		MaxSizeMB: cfg.Log.MaxSizeMB,
	})
	log.Info().Str("env", cfg.Env).Msg("config loaded, connecting to MongoDB and Redis")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb unavailable")
	}
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	todoRepo := mongodb.NewTodoRepository(db)
	auditRepo := mongodb.NewAuthEventRepository(db)
	if err := mongodb.EnsureIndexes(ctx, userRepo, todoRepo, auditRepo); err != nil {
		log.Fatal().Err(err).Msg("index setup failed")
	}

	// --- Audit trail ---
	auditCtx, stopAudit := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, service.NewAuditService(auditRepo, log), log)
	dispatcher.OnDrop(func(domain.AuthEvent) {
		metrics.AuditEventsDroppedTotal.Inc()
	})
	dispatcher.Start(auditCtx)

	// --- Services ---
	clk := clock.NewRealClock()
	codec := service.NewTokenCodec(cfg.Auth.JWTSecret, clk)
	authService := service.NewAuthService(userRepo, codec, cfg.Auth.AccessTokenTTL, dispatcher, clk)
	resolver := service.NewActorResolver(codec, userRepo)
	todoService := service.NewTodoService(todoRepo, redisdb.NewTodoCache(rdb, cfg.Redis.TodoCacheTTL), clk, log)

	e := api.NewRouter(api.Deps{
		Config:       cfg,
		Log:          log,
		Clock:        clk,
		Auth:         authService,
		Resolver:     resolver,
		Todos:        todoService,
		HealthChecks: []handler.DependencyCheck{handler.MongoCheck(db), handler.RedisCheck(rdb)},
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("HTTP server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	stopAudit()
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close failed")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect failed")
	}
}
