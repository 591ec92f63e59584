// Command server runs the FairLens compliance decision engine behind an
// HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/fairlens/fairlens/infrastructure/dataset"
	"github.com/fairlens/fairlens/infrastructure/explain"
	"github.com/fairlens/fairlens/infrastructure/httpapi"
	"github.com/fairlens/fairlens/infrastructure/journal"
	"github.com/fairlens/fairlens/infrastructure/middleware"
	"github.com/fairlens/fairlens/infrastructure/regulatory"
	"github.com/fairlens/fairlens/infrastructure/report"
	"github.com/fairlens/fairlens/internal/application"
	"github.com/fairlens/fairlens/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to server configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	engineCfg := application.DefaultEngineConfig()
	if cfg.Engine.Path != "" {
		engineCfg, err = application.LoadEngineConfig(cfg.Engine.Path)
		if err != nil {
			return fmt.Errorf("loading engine configuration: %w", err)
		}
	}

	evaluator, err := application.NewTrustEvaluator(
		engineCfg.FactorConfigs(),
		application.WithTrustThresholds(engineCfg.TrustThresholds),
	)
	if err != nil {
		return fmt.Errorf("building trust evaluator: %w", err)
	}

	registry := application.NewFrameworkRegistry()
	if err := registry.Register(regulatory.NewEUAIAct()); err != nil {
		return fmt.Errorf("registering EU AI Act framework: %w", err)
	}
	if err := registry.Register(regulatory.NewFINRA()); err != nil {
		return fmt.Errorf("registering FINRA framework: %w", err)
	}

	analysisLog := journal.NewLog()
	timeline := journal.NewTimeline()
	if cfg.Dataset.TimelinePath != "" {
		timeline = journal.NewPersistentTimeline(cfg.Dataset.TimelinePath)
	}

	service, err := application.NewDecisionService(
		evaluator,
		registry,
		application.NewMemoryDecisionStore(),
		application.WithJournal(analysisLog),
		application.WithTimeline(timeline),
		application.WithMetrics(middleware.NewPrometheusMetrics()),
		application.WithLogger(logger),
		application.WithDefaultFramework(engineCfg.DefaultFramework),
	)
	if err != nil {
		return fmt.Errorf("building decision service: %w", err)
	}
	processor := middleware.NewTracingProcessor(service)

	loader, err := dataset.NewLoader(cfg.Dataset.Path)
	if err != nil {
		return fmt.Errorf("opening loan application dataset: %w", err)
	}

	explainer, err := buildExplainer(cfg, logger)
	if err != nil {
		return fmt.Errorf("building explainer: %w", err)
	}

	server := httpapi.NewServer(
		processor,
		service,
		loader,
		httpapi.WithExplainer(explainer),
		httpapi.WithReporter(report.NewPDFGenerator()),
		httpapi.WithJournal(analysisLog),
		httpapi.WithTimeline(timeline),
		httpapi.WithMetricsHandler(promhttp.Handler()),
		httpapi.WithLogger(logger),
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting HTTP server",
			zap.Int("port", cfg.Server.Port),
			zap.String("environment", cfg.Environment),
			zap.String("dataset", cfg.Dataset.Path),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// buildLogger creates a zap logger at the configured level, using the
// development encoder outside production.
func buildLogger(cfg config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Environment == "development" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

// buildExplainer wires the chat-completion client when a provider is
// configured; otherwise the explainer serves deterministic summaries.
func buildExplainer(cfg config.Config, logger *zap.Logger) (*explain.Explainer, error) {
	if cfg.Explain.Provider == "" {
		logger.Info("no explanation provider configured, using deterministic summaries")
		return explain.NewExplainer(nil), nil
	}

	client, err := explain.NewClient(explain.Config{
		Provider:          cfg.Explain.Provider,
		APIKey:            cfg.Explain.APIKey,
		Model:             cfg.Explain.Model,
		BaseURL:           cfg.Explain.BaseURL,
		Timeout:           cfg.Explain.Timeout,
		RequestsPerSecond: cfg.Explain.RequestsPerSecond,
		Burst:             cfg.Explain.Burst,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("explanation provider configured",
		zap.String("provider", cfg.Explain.Provider),
	)
	return explain.NewExplainer(client), nil
}
