package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dinero/internal/amqp"
	"dinero/internal/config"
	apphttp "dinero/internal/http"
	applog "dinero/internal/log"
	"dinero/internal/records"
	memsrc "dinero/internal/records/memory"
	notionsrc "dinero/internal/records/notion"
	"dinero/internal/services"
)

func main() {
	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	// Choose the record source backend (default: memory with demo data).
	var source records.Source
	switch cfg.DataBackend {
	case "notion":
		source = notionsrc.New(cfg.NotionAPIKey, cfg.NotionDatabaseID)
		logger.Info("Initialized Notion record source", applog.FieldBackend, cfg.DataBackend)
	default:
		source = memsrc.NewDemo()
		logger.Info("Initialized memory record source", applog.FieldBackend, cfg.DataBackend)
	}

	// Archive events are optional; the ledger works without a broker.
	var events services.ArchivePublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, archive events disabled", applog.FieldError, err)
		} else {
			events = client
			defer client.Close()
			logger.Info("Connected to AMQP", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	ledger := services.NewLedgerService(source, events, cfg.FetchCacheTTL)
	srv := apphttp.NewServer(":"+cfg.Port, ledger)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
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
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting dinero server", "port", cfg.Port, applog.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
