// Command audit rebuilds the report of the stored snapshot and prints its
// consistency checks. It exits 1 when any check fails.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/colegioelo/estoque/internal/audit"
	auditStore "github.com/colegioelo/estoque/internal/audit/store"
	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/config"
	"github.com/colegioelo/estoque/internal/database"
	"github.com/colegioelo/estoque/internal/export"
	"github.com/colegioelo/estoque/internal/ledger"
	ledgerStore "github.com/colegioelo/estoque/internal/ledger/store"
	"github.com/colegioelo/estoque/internal/record"
	recordStore "github.com/colegioelo/estoque/internal/record/store"
	"github.com/colegioelo/estoque/internal/report"
)

// errAuditFailed reports a completed run whose checks did not pass.
var errAuditFailed = errors.New("audit failed")

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, errAuditFailed) {
			slog.Error("audit aborted", "error", err)
		}

		os.Exit(1)
	}
}

func run() error {
	var (
		save     bool
		briefing bool
		xlsxDir  string
	)

	flag.BoolVar(&save, "save", false, "store the result as a manual audit run")
	flag.BoolVar(&briefing, "briefing", false, "print the per-unit briefing after the audit")
	flag.StringVar(&xlsxDir, "xlsx", "", "also save the stock workbook into this directory")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.New(cfg.ConnectionString(), 2)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	cat := catalog.Default()

	reports := report.NewService(cat,
		record.NewService(recordStore.New(db)),
		ledger.NewService(ledgerStore.New(db), cat),
	)

	rep, err := reports.Current(ctx)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	printReport(os.Stdout, rep, briefing)

	if save {
		snapshotID := rep.SnapshotID

		saved, err := audit.NewService(auditStore.New(db)).Record(ctx, audit.KindManual, &snapshotID, rep.Audit)
		if err != nil {
			return fmt.Errorf("save audit run: %w", err)
		}

		slog.Info("audit run saved", "run", saved.ID)
	}

	if xlsxDir != "" {
		path, err := export.NewService(cat, reports).Export(ctx, xlsxDir)
		if err != nil {
			return fmt.Errorf("export workbook: %w", err)
		}

		slog.Info("workbook saved", "path", path)
	}

	return verdict(rep)
}

func printReport(w io.Writer, rep *report.Report, briefing bool) {
	fmt.Fprint(w, audit.Summary(rep.Audit))

	if briefing {
		fmt.Fprintln(w)
		fmt.Fprint(w, export.BriefingText(rep))
	}
}

func verdict(rep *report.Report) error {
	if !rep.Passed() {
		return errAuditFailed
	}

	return nil
}
