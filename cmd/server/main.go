package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"postboard/internal/cache"
	"postboard/internal/config"
	"postboard/internal/handler"
	"postboard/internal/logger"
	"postboard/internal/model"
	"postboard/internal/repository"
	"postboard/internal/router"
	"postboard/internal/seed"
	"postboard/internal/service"
	"postboard/internal/store"
)

// @title Postboard API
// @version 1.0
// @description User and post management API with validated updates, authorized deletes and inactive user cleanup.
// @BasePath /api
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.Setup(cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := store.New()
	userRepo := repository.NewUserRepository(s)
	postRepo := repository.NewPostRepository(s)

	users, err := seedUsers(cfg.SeedFile)
	if err != nil {
		return err
	}
	seeded, err := seed.Apply(ctx, userRepo, users)
	if err != nil {
		return err
	}
	log.Info("store seeded", slog.Int("users", seeded), slog.String("source", seedSource(cfg.SeedFile)))

	var cacheClient *cache.Client
	if cfg.CacheEnabled {
		cacheClient = cache.New(cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
		})
		defer cacheClient.Close()
		if err := cacheClient.Ping(ctx); err != nil {
			log.Warn("cache unreachable, serving from store", slog.String("addr", cfg.RedisAddr), slog.Any("error", err))
		}
	}

	userService := service.NewUserService(userRepo, postRepo, s, cacheClient)
	postService := service.NewPostService(postRepo, userRepo, s)

	userHandler := handler.NewUserHandler(userService, postService)
	postHandler := handler.NewPostHandler(postService, cfg.IdentityHeader)

	e := router.New(log)
	router.Register(e, cfg, userHandler, postHandler)

	log.Info("swagger documentation available", slog.String("url", swaggerURL(cfg)))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", slog.String("port", cfg.ServerPort))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func seedUsers(path string) ([]model.User, error) {
	if path == "" {
		return seed.Default(), nil
	}
	return seed.Load(path)
}

func seedSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
