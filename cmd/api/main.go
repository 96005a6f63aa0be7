package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pipelinecrm/crm-server/internal/bootstrap"
	"github.com/pipelinecrm/crm-server/internal/config"
	domainstorage "github.com/pipelinecrm/crm-server/internal/domain/storage"
	"github.com/pipelinecrm/crm-server/internal/infrastructure/db"
	"github.com/pipelinecrm/crm-server/internal/infrastructure/storage"
	"github.com/pipelinecrm/crm-server/internal/logger"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(cfg.IsDevelopment())

	gdb, err := db.Open(cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	if cfg.Database.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	pool, err := pgxpool.New(context.Background(), cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create pgx pool")
	}
	defer pool.Close()

	var blobs domainstorage.BlobStore = storage.Disabled{}
	if cfg.StorageEnabled() {
		s3Store, err := storage.NewS3Store(storage.S3Config{
			Endpoint:  cfg.Storage.Endpoint,
			Region:    cfg.Storage.Region,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			PublicURL: cfg.Storage.PublicURL,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize object storage")
		}
		blobs = s3Store
	} else {
		log.Warn().Msg("object storage not configured, uploads are disabled")
	}

	decimal.MarshalJSONWithoutQuotes = true
	server := bootstrap.NewHTTPServer(cfg, gdb, pool, blobs)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := server.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
