package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"artisan/internal/api"
	"artisan/internal/config"
	"artisan/internal/gateway"
	"artisan/internal/metrics"
	"artisan/internal/middleware"
	"artisan/internal/provider/factory"
	"artisan/internal/report"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	setupLogging(cfg)

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	providers, err := factory.NewSet(context.Background(), cfg, factory.Options{})
	if err != nil {
		log.Fatalf("Failed to create providers: %v", err)
	}

	reporter, err := report.New(cfg.SentryDSN)
	if err != nil {
		log.Fatalf("Failed to create error reporter: %v", err)
	}

	m := metrics.New()
	gw := gateway.New(providers, cfg.Speech,
		gateway.WithMetrics(m),
		gateway.WithReporter(reporter),
	)

	r := gin.New()
	r.MaxMultipartMemory = int64(cfg.MaxUploadMB) << 20
	middleware.Setup(r)
	api.RegisterRoutes(r, api.NewHandler(gw, m))

	log.Infof("Artisan gateway running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupLogging(cfg *config.Config) {
	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
