// @title           QuickNotes API
// @version         1.0
// @description     Personal note-taking REST API with user accounts, tagged notes and image attachments.
// @BasePath        /
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quicknotes/notes-api/internal/api"
	"github.com/quicknotes/notes-api/internal/api/handler"
	"github.com/quicknotes/notes-api/internal/core/ports"
	"github.com/quicknotes/notes-api/internal/core/service"
	"github.com/quicknotes/notes-api/internal/infrastructure/config"
	mongodb "github.com/quicknotes/notes-api/internal/infrastructure/db/mongo"
	redisdb "github.com/quicknotes/notes-api/internal/infrastructure/db/redis"
	"github.com/quicknotes/notes-api/internal/infrastructure/queue"
	"github.com/quicknotes/notes-api/internal/infrastructure/storage"
	"github.com/quicknotes/notes-api/internal/pkg/hasher"
	"github.com/quicknotes/notes-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	userRepo := mongodb.NewUserRepository(db)
	noteRepo := mongodb.NewNoteRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := noteRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("note index creation failed")
	}

	// --- Redis (optional note-list cache) ---
	var rdb *redis.Client
	var cache ports.NoteListCache
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		cache = redisdb.NewNoteListCache(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("note list cache enabled")
	}

	// --- Image storage + background cleanup ---
	images, err := storage.NewLocalImageStore(cfg.Upload.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("image storage init failed")
	}
	cleaner := queue.NewCleaner(images, log)
	cleaner.Start(ctx)

	// --- Services + HTTP ---
	authService := service.NewAuthService(userRepo, hasher.NewBcrypt(0), log)
	noteService := service.NewNoteService(noteRepo, images, cache, cleaner, log)

	e := api.NewRouter(api.Deps{
		AuthHandler: handler.NewAuthHandler(authService),
		NoteHandler: handler.NewNoteHandler(noteService),
		Mongo:       db,
		Redis:       rdb,
		CORSOrigins: cfg.CORSOrigins,
		UploadMaxMB: cfg.Upload.MaxSizeMB,
		Logger:      log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
