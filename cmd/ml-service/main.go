package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/ecommerce-microservices/ml-service/internal/catalog"
	"github.com/vasiliy-maslov/ecommerce-microservices/ml-service/internal/config"
	"github.com/vasiliy-maslov/ecommerce-microservices/ml-service/internal/handler"
	"github.com/vasiliy-maslov/ecommerce-microservices/ml-service/internal/recommend"
	"github.com/vasiliy-maslov/ecommerce-microservices/ml-service/internal/report"
	"github.com/vasiliy-maslov/ecommerce-microservices/ml-service/internal/transport"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "ml-service").Logger()

	log.Info().Msg("ML service starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log.Debug().Str("catalog_api", cfg.Catalog.BaseURL).Str("report_dir", cfg.Report.Dir).Msg("Configuration loaded")

	if err := os.MkdirAll(cfg.Report.Dir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Report.Dir).Msg("Failed to create report directory")
	}

	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	engine := recommend.NewService(client)
	builder := report.NewBuilder(cfg.Report.Dir, report.NewGenerator())

	router := transport.NewRouter(
		transport.RouterConfig{AllowedOrigins: cfg.CORS.AllowedOrigins},
		handler.NewRecommendationHandler(engine),
		handler.NewReportHandler(builder, cfg.Report.Dir),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
