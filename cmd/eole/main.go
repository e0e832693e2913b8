package main

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/aichabibi/EOLE/internal/amqp"
	"github.com/aichabibi/EOLE/internal/config"
	apphttp "github.com/aichabibi/EOLE/internal/http"
	applog "github.com/aichabibi/EOLE/internal/log"
	"github.com/aichabibi/EOLE/internal/session"
	"github.com/aichabibi/EOLE/internal/sheets"
	gsheet "github.com/aichabibi/EOLE/internal/sheets/google"
	mem "github.com/aichabibi/EOLE/internal/sheets/memory"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Optional ingestion audit events.
	var auditor session.Auditor
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP broker", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		auditor = client
		logger.Info("Ingestion audit events enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	// Optional summary export backend.
	var summaryWriter sheets.SummaryWriter
	switch cfg.ExportBackend {
	case "sheets":
		client, err := gsheet.New(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets backend", "error", err)
			os.Exit(1)
		}
		summaryWriter = client
		logger.Info("Initialized Google Sheets export backend", "sheet", cfg.GoogleSheetName)
	case "memory":
		summaryWriter = mem.New()
		logger.Info("Initialized in-memory export backend")
	}

	store := session.NewStore(cfg.WorksiteMarker, cfg.IngestWorkers, cfg.SessionTTL, auditor)
	srv := apphttp.NewServer(":"+cfg.Port, store, summaryWriter, cfg.TopN, cfg.MaxUploadBytes)

	srv.ReadTimeout = 30 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting EOLE analysis server",
		"port", cfg.Port,
		"worksite_marker", cfg.WorksiteMarker,
		"export_backend", cfg.ExportBackend)
	if err := srv.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
