package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seatsafety/report-analyzer/internal/async"
	"github.com/seatsafety/report-analyzer/internal/common"
	"github.com/seatsafety/report-analyzer/internal/export"
	"github.com/seatsafety/report-analyzer/internal/ingest"
	"github.com/seatsafety/report-analyzer/internal/llm"
	"github.com/seatsafety/report-analyzer/internal/llm/openai"
	"github.com/seatsafety/report-analyzer/internal/pipeline"
	"github.com/seatsafety/report-analyzer/internal/repository"
	"github.com/seatsafety/report-analyzer/internal/server"
	"github.com/seatsafety/report-analyzer/internal/services/reports"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("open db", "error", err)
		os.Exit(1)
	}
	defer db.Close(logger)

	if err := db.HealthCheck(ctx, 3*time.Second, logger); err != nil {
		logger.Error("db health failed", "error", err)
		os.Exit(1)
	}

	repo, err := repository.NewReportRepository(db, logger)
	if err != nil {
		logger.Error("prepare repository", "error", err)
		os.Exit(1)
	}

	narrator := buildNarrator(cfg, logger)
	processor := pipeline.NewProcessor(logger, narrator)

	svc := reports.NewService(repo, nil, processor, reports.Limits{
		MaxDocumentBytes: cfg.Analysis.MaxDocumentBytes,
		MaxPages:         cfg.Analysis.MaxPages,
	}, logger)

	queue := async.NewProcessorQueue(svc, logger,
		async.WithWorkers(cfg.Analysis.Workers),
		async.WithQueueSize(cfg.Analysis.QueueSize),
		async.WithProcessTimeout(cfg.Analysis.ProcessTimeout),
	)
	svc.SetQueue(queue)

	if cfg.Analysis.IntakeDir != "" {
		intake := ingest.NewIntake(svc, logger)
		go func() {
			err := intake.Run(ctx, ingest.WatchConfig{
				Roots:       []string{cfg.Analysis.IntakeDir},
				InitialScan: true,
				Debounce:    250 * time.Millisecond,
			})
			if err != nil {
				logger.Error("intake stopped", "error", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:         cfg.Server.HTTPAddr,
		Handler:      server.New(svc, export.NewService(logger), db, logger).Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	queue.Shutdown(shutdownCtx)
	logger.Info("stopped")
}

// buildNarrator picks the model client when an API key is configured and the
// deterministic fallback otherwise.
func buildNarrator(cfg *common.Config, logger *slog.Logger) llm.Narrator {
	apiKey := cfg.LLM.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		logger.Info("no model API key configured, using rule-based narrative")
		return llm.NewRuleNarrator(logger)
	}
	return openai.NewClient(openai.Config{
		APIKey:      apiKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
}
