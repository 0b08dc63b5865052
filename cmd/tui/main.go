package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/colegioelo/estoque/cmd/tui/internal/view"
	"github.com/colegioelo/estoque/internal/audit"
	auditStore "github.com/colegioelo/estoque/internal/audit/store"
	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/config"
	"github.com/colegioelo/estoque/internal/database"
	"github.com/colegioelo/estoque/internal/export"
	"github.com/colegioelo/estoque/internal/feed"
	"github.com/colegioelo/estoque/internal/importer"
	"github.com/colegioelo/estoque/internal/importer/siga"
	"github.com/colegioelo/estoque/internal/ledger"
	ledgerStore "github.com/colegioelo/estoque/internal/ledger/store"
	"github.com/colegioelo/estoque/internal/record"
	recordStore "github.com/colegioelo/estoque/internal/record/store"
	"github.com/colegioelo/estoque/internal/report"
)

type model struct {
	cat           *catalog.Catalog
	reportService *report.Service
	ledgerService *ledger.Service
	feedService   *feed.Service
	exportService *export.Service
	exportDir     string

	currentView View

	stockView    view.StockModel
	alertsView   view.AlertsModel
	ungradedView view.UngradedModel
	feedView     view.FeedModel
	exportView   view.ExportModel
}

type View int

const (
	ViewMenu     View = 0
	ViewStock    View = 1
	ViewAlerts   View = 2
	ViewUngraded View = 3
	ViewFeed     View = 4
	ViewExport   View = 5
)

func initialModel() model {
	_ = godotenv.Load()

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

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	cat := catalog.Default()

	var fetcher feed.Fetcher

	if cfg.SISEnabled() {
		sisCfg, err := cfg.SISClient()
		if err != nil {
			slog.Error("invalid SIS config", "error", err)
			os.Exit(1)
		}

		fetcher = siga.NewClient(sisCfg, cat)
	}

	recordSvc := record.NewService(recordStore.New(db))
	ledgerSvc := ledger.NewService(ledgerStore.New(db), cat)
	reportSvc := report.NewService(cat, recordSvc, ledgerSvc)
	feedSvc := feed.NewService(cat, fetcher, importer.NewService(cat), recordSvc, audit.NewService(auditStore.New(db)), reportSvc)
	exportSvc := export.NewService(cat, reportSvc)

	return model{
		cat:           cat,
		reportService: reportSvc,
		ledgerService: ledgerSvc,
		feedService:   feedSvc,
		exportService: exportSvc,
		exportDir:     cfg.Report.ExportDir,
		currentView:   ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewStock
				m.stockView = view.NewStockModel(m.reportService, m.ledgerService)

				return m, m.stockView.Init()
			case "2":
				m.currentView = ViewAlerts
				m.alertsView = view.NewAlertsModel(m.reportService)

				return m, m.alertsView.Init()
			case "3":
				m.currentView = ViewUngraded
				m.ungradedView = view.NewUngradedModel(m.reportService, m.ledgerService, m.cat)

				return m, m.ungradedView.Init()
			case "4":
				m.currentView = ViewFeed
				m.feedView = view.NewFeedModel(m.feedService, m.cat)

				return m, m.feedView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.exportDir)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewStock:
		var newModel tea.Model
		newModel, cmd = m.stockView.Update(msg)
		m.stockView = newModel.(view.StockModel)
	case ViewAlerts:
		var newModel tea.Model
		newModel, cmd = m.alertsView.Update(msg)
		m.alertsView = newModel.(view.AlertsModel)
	case ViewUngraded:
		var newModel tea.Model
		newModel, cmd = m.ungradedView.Update(msg)
		m.ungradedView = newModel.(view.UngradedModel)
	case ViewFeed:
		var newModel tea.Model
		newModel, cmd = m.feedView.Update(msg)
		m.feedView = newModel.(view.FeedModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Estoque\n\n" +
				"1. Stock Balances\n" +
				"2. Alerts & Briefing\n" +
				"3. Ungraded Students\n" +
				"4. Load Extraction\n" +
				"5. Export Workbook\n\n" +
				"q. Quit",
		)
	case ViewStock:
		current = m.stockView
	case ViewAlerts:
		current = m.alertsView
	case ViewUngraded:
		current = m.ungradedView
	case ViewFeed:
		current = m.feedView
	case ViewExport:
		current = m.exportView
	default:
		return "Unknown View"
	}

	help := lipgloss.NewStyle().Faint(true).Render(current.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render(current.Title()),
		current.View(),
		lipgloss.NewStyle().PaddingLeft(1).Render(help),
	)
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
