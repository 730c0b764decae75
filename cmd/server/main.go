package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"

	"github.com/KataCreate/report-sys/internal/auth"
	"github.com/KataCreate/report-sys/internal/config"
	"github.com/KataCreate/report-sys/internal/db"
	"github.com/KataCreate/report-sys/internal/handler"
	"github.com/KataCreate/report-sys/internal/middleware"
	"github.com/KataCreate/report-sys/internal/repository"
	"github.com/KataCreate/report-sys/internal/router"
	"github.com/KataCreate/report-sys/internal/service"
	"github.com/KataCreate/report-sys/internal/summary"
	"github.com/KataCreate/report-sys/internal/youtube"
)

func main() {
	// .env is a local convenience; production deployments set real env vars.
	_ = godotenv.Load()

	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "report-sys")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.PoolSettings{
		MaxConns: int32(cfg.DBMaxConns),
		MinConns: int32(cfg.DBMinConns),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	version, dirty, err := db.RunMigrations(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Printf("database schema at version %d (dirty=%v)", version, dirty)

	cache := service.NewCacheService(cfg.RedisURL)

	source, err := youtube.NewClient(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		log.Fatalf("failed to create YouTube client: %v", err)
	}

	summarizer := summary.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	identity := auth.NewGoTrueClient(cfg.IdentityURL, cfg.IdentityAPIKey)

	reportRepo := repository.NewReportRepo(pool)
	videoRepo := repository.NewVideoAnalyticsRepo(pool)
	channelRepo := repository.NewChannelRepo(pool)
	adminRepo := repository.NewAdminUserRepo(pool)

	reportSvc := service.NewReportService(source, reportRepo, videoRepo, summarizer, cache)
	channelSvc := service.NewChannelService(source, channelRepo, cache)
	signupSvc := service.NewSignupService(identity, adminRepo)

	handler.InitMetrics(pool)

	app := fiber.New(fiber.Config{
		AppName:      "report-sys API",
		ServerHeader: "report-sys",
	})

	router.Setup(app, &router.Handlers{
		Report:  handler.NewReportHandler(reportSvc, cfg.ReportLimit),
		Channel: handler.NewChannelHandler(channelSvc),
		Auth:    handler.NewAuthHandler(signupSvc),
		Admin:   handler.NewAdminHandler(signupSvc),
		Health:  handler.NewHealthHandler(pool, cache.Client()),
	}, identity, cfg.CORSOrigins)

	// Shut down cleanly on SIGINT/SIGTERM so in-flight report generations
	// get a chance to finish writing.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("report-sys backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
