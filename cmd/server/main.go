package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"

	"github.com/joonho0410/StellaClip-sub001/internal/config"
	"github.com/joonho0410/StellaClip-sub001/internal/db"
	"github.com/joonho0410/StellaClip-sub001/internal/handler"
	"github.com/joonho0410/StellaClip-sub001/internal/middleware"
	"github.com/joonho0410/StellaClip-sub001/internal/repository"
	"github.com/joonho0410/StellaClip-sub001/internal/router"
	"github.com/joonho0410/StellaClip-sub001/internal/service"
	"github.com/joonho0410/StellaClip-sub001/internal/youtube"
)

func main() {
	// Best-effort .env load for local development.
	_ = godotenv.Load()

	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "stellaclip-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	videoRepo := repository.NewVideoRepo(pool)
	memberRepo := repository.NewMemberRepo(pool)

	if err := memberRepo.EnsureRoster(ctx); err != nil {
		log.Fatalf("failed to seed member roster: %v", err)
	}

	ytClient := youtube.NewClient(cfg.YouTubeAPIKey)
	videoSvc := service.NewVideoService(videoRepo, memberRepo, cache)
	ingestSvc := service.NewIngestService(ytClient, videoRepo, cache, cfg.OfficialChannelIDs, cfg.IngestMaxResults)

	handler.InitMetrics(pool)

	if cfg.YouTubeAPIKey != "" {
		worker := service.NewIngestWorker(ingestSvc, cfg.IngestQueries, cfg.IngestInterval)
		go worker.Start(ctx)
	} else {
		log.Println("ingest-worker: no YOUTUBE_API_KEY configured, periodic ingestion disabled")
	}

	app := fiber.New(fiber.Config{
		AppName:      "StellaClip API",
		ServerHeader: "StellaClip",
	})

	h := &router.Handlers{
		Video:  handler.NewVideoHandler(videoSvc),
		Member: handler.NewMemberHandler(),
		Stats:  handler.NewStatsHandler(videoSvc),
		Ingest: handler.NewIngestHandler(ingestSvc, videoSvc),
		Health: handler.NewHealthHandler(pool, cache.Client()),
	}
	router.Setup(app, h, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		_ = app.Shutdown()
	}()

	log.Printf("StellaClip Go backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
