package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/diego-frias-ramirez/AURA-Sentinel/internal/adapter/http"
	kafkaadapter "github.com/diego-frias-ramirez/AURA-Sentinel/internal/adapter/kafka"
	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/classify"
	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/config"
	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/geo"
	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/observability"
	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/orchestrator"
	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/policy"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	pol, err := policy.Load(cfg.PolicyPath)
	if err != nil {
		logger.Error("failed to load decision policy", "path", cfg.PolicyPath, "error", err)
		os.Exit(1)
	}

	dataset, err := geo.LoadDataset(cfg.FacilitiesPath, cfg.ZonesPath)
	if err != nil {
		logger.Error("failed to load facility dataset", "error", err)
		os.Exit(1)
	}
	resolver, err := geo.NewResolver(dataset)
	if err != nil {
		logger.Error("failed to build facility resolver", "error", err)
		os.Exit(1)
	}
	logger.Info("facility dataset loaded",
		"facilities", len(dataset.Facilities),
		"zones", len(dataset.Zones),
	)

	// Decision audit stream (feature-flagged via KAFKA_BROKERS / AUDIT_ENABLED).
	var auditor orchestrator.Auditor
	var auditCloser *kafkaadapter.AuditPublisher
	if cfg.AuditEnabled {
		auditCloser = kafkaadapter.NewAuditPublisher(cfg, logger)
		auditor = auditCloser
		logger.Info("decision audit enabled", "topic", cfg.KafkaAuditTopic)
	} else {
		logger.Info("decision audit disabled")
	}

	engine, err := orchestrator.New(orchestrator.Params{
		Intent:          classify.NewIntentClassifier(),
		Emergency:       classify.NewEmergencyClassifier(),
		Profile:         classify.NewProfileClassifier(),
		Resolver:        resolver,
		Policy:          pol,
		Logger:          logger,
		Metrics:         metrics,
		Auditor:         auditor,
		ClassifyTimeout: cfg.ClassifyTimeout,
		NearestK:        cfg.NearestK,
	})
	if err != nil {
		logger.Error("failed to build decision engine", "error", err)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, engine, resolver, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if auditCloser != nil {
		if err := auditCloser.Close(); err != nil {
			logger.Error("audit publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
