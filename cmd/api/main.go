package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/colegioelo/estoque/internal/audit"
	auditStore "github.com/colegioelo/estoque/internal/audit/store"
	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/config"
	"github.com/colegioelo/estoque/internal/database"
	"github.com/colegioelo/estoque/internal/export"
	"github.com/colegioelo/estoque/internal/feed"
	estoqueHttp "github.com/colegioelo/estoque/internal/http"
	auditHandler "github.com/colegioelo/estoque/internal/http/audit"
	exportHandler "github.com/colegioelo/estoque/internal/http/export"
	feedHandler "github.com/colegioelo/estoque/internal/http/feed"
	ledgerHandler "github.com/colegioelo/estoque/internal/http/ledger"
	reportHandler "github.com/colegioelo/estoque/internal/http/report"
	"github.com/colegioelo/estoque/internal/importer"
	"github.com/colegioelo/estoque/internal/importer/siga"
	"github.com/colegioelo/estoque/internal/ledger"
	ledgerStore "github.com/colegioelo/estoque/internal/ledger/store"
	"github.com/colegioelo/estoque/internal/record"
	recordStore "github.com/colegioelo/estoque/internal/record/store"
	"github.com/colegioelo/estoque/internal/report"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), cfg.DB.MaxOpenConns)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	cat := catalog.Default()

	// A nil fetcher leaves refresh disabled; uploads still work.
	var fetcher feed.Fetcher

	if cfg.SISEnabled() {
		sisCfg, err := cfg.SISClient()
		if err != nil {
			slog.Error("invalid SIS config", "error", err)
			os.Exit(1)
		}

		fetcher = siga.NewClient(sisCfg, cat)
	} else {
		slog.Warn("SIS credentials not set, refresh disabled")
	}

	var (
		recordService = record.NewService(recordStore.New(db))
		ledgerService = ledger.NewService(ledgerStore.New(db), cat)
		auditService  = audit.NewService(auditStore.New(db))
		reportService = report.NewService(cat, recordService, ledgerService)
		feedService   = feed.NewService(cat, fetcher, importer.NewService(cat), recordService, auditService, reportService)
		exportService = export.NewService(cat, reportService)
	)

	var (
		feedH   = feedHandler.NewHandler(feedService)
		reportH = reportHandler.NewHandler(reportService, cat)
		ledgerH = ledgerHandler.NewHandler(ledgerService, reportService)
		exportH = exportHandler.NewHandler(exportService)
		auditH  = auditHandler.NewHandler(auditService, reportService)
	)

	router := estoqueHttp.New(cfg.Report.CORSOrigins, feedH, reportH, ledgerH, exportH, auditH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// A SIS refresh pages through every unit inside one request.
		WriteTimeout: cfg.Server.Timeout + cfg.SIS.Timeout*time.Duration(cfg.SIS.Retries),
	}

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
}
