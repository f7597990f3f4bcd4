package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"librarium/database"
	"librarium/internal/cache"
	"librarium/internal/config"
	"librarium/internal/handler"
	"librarium/internal/repository"
	"librarium/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	ratingsCache, err := cache.NewRatingsCache(cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		// the cache is advisory; run without it rather than refusing to start
		logger.Warn("redis unavailable, rating cache disabled", "error", err)
		ratingsCache = nil
	}
	defer ratingsCache.Close()

	userRepo := repository.NewUserRepository(db)
	authorRepo := repository.NewAuthorRepository(db)
	bookRepo := repository.NewBookRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.SessionTTL)
	bookService := service.NewBookService(bookRepo, authorRepo, cfg.BookPosterPlaceholder)
	authorService := service.NewAuthorService(authorRepo, bookRepo, cfg.AuthorPhotoPlaceholder)
	commentService := service.NewCommentService(commentRepo, bookRepo)
	ratingService := service.NewRatingService(ratingRepo, bookRepo, ratingsCache)

	router := handler.NewRouter(cfg, db, authService, handler.Handlers{
		Auth:    handler.NewAuthHandler(authService, bookService, cfg.SessionTTL),
		Book:    handler.NewBookHandler(bookService, commentService, ratingService),
		Author:  handler.NewAuthorHandler(authorService),
		Comment: handler.NewCommentHandler(commentService),
		API:     handler.NewAPIHandler(bookService),
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("HTTP server listening", "addr", addr)
	if err := router.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
