package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colegioelo/estoque/internal/audit"
	"github.com/colegioelo/estoque/internal/export"
	"github.com/colegioelo/estoque/internal/report"
	"github.com/colegioelo/estoque/internal/stock"
)

type alertsTab int

const (
	alertsTabAlerts alertsTab = iota
	alertsTabPhysical
	alertsTabBriefing
	alertsTabAudit
)

var alertsTabs = []string{"Alerts", "Physical audit", "Briefing", "Consistency"}

// AlertsModel shows the read-only findings of the current report in tabs.
type AlertsModel struct {
	CommonModel
	reports *report.Service

	tab      alertsTab
	viewport viewport.Model
	rep      *report.Report

	loading bool
	err     error
}

func NewAlertsModel(reports *report.Service) AlertsModel {
	return AlertsModel{
		reports:  reports,
		viewport: viewport.New(100, 20),
		loading:  true,
	}
}

func (m AlertsModel) Title() string { return "Alerts & Briefing" }

func (m AlertsModel) ShortHelp() string {
	return "Esc: back | Tab: next tab | ↑/↓: scroll"
}

func (m AlertsModel) Init() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rep, err := m.reports.Current(ctx)

		return loadStockMsg{rep: rep, err: err}
	}
}

func (m AlertsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadStockMsg:
		m.loading = false
		m.err = msg.err
		m.rep = msg.rep
		m.render()

		return m, nil

	case tea.WindowSizeMsg:
		m.viewport.Height = m.Resize(msg, 8)
		m.viewport.Width = m.Width - 4

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "tab":
			m.tab = (m.tab + 1) % alertsTab(len(alertsTabs))
			m.render()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

func (m *AlertsModel) render() {
	if m.rep == nil {
		return
	}

	var content string

	switch m.tab {
	case alertsTabAlerts:
		content = renderAlerts(stock.Alerts(m.rep.Balances))
	case alertsTabPhysical:
		content = renderPhysical(m.rep.Physical)
	case alertsTabBriefing:
		content = export.BriefingText(m.rep)
	case alertsTabAudit:
		content = audit.Summary(m.rep.Audit)
	}

	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

func renderAlerts(bs []stock.Balance) string {
	if len(bs) == 0 {
		return okStyle("No shortages or low stock.")
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%-5s %-6s %-30s %-10s %8s  %s\n", "Unit", "Code", "Product", "Grade", "Balance", "Band")

	for _, bal := range bs {
		fmt.Fprintf(&b, "%-5s %-6s %-30.30s %-10s %8d  %s\n",
			bal.Unit, bal.ProductCode, bal.ProductName, bal.Grade, bal.Balance, BandLabel(bal.Band))
	}

	return b.String()
}

func renderPhysical(ds []stock.PhysicalDiff) string {
	if len(ds) == 0 {
		return "No physical counts recorded."
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%-5s %-6s %-10s %11s %8s %6s  %s\n", "Unit", "Code", "Grade", "Theoretical", "Counted", "Diff", "On")

	for _, d := range ds {
		diff := FormatSigned(d.Difference)
		if d.Mismatch() {
			diff = errorStyle(fmt.Sprintf("%6s", diff))
		} else {
			diff = fmt.Sprintf("%6s", diff)
		}

		fmt.Fprintf(&b, "%-5s %-6s %-10s %11d %8d %s  %s\n",
			d.Unit, d.ProductCode, d.Grade, d.Theoretical, d.Physical, diff, FormatDate(d.ObservedOn))
	}

	return b.String()
}

func (m AlertsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Building report...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	tabs := make([]string, len(alertsTabs))
	for i, name := range alertsTabs {
		if alertsTab(i) == m.tab {
			tabs[i] = activeStyle("[" + name + "]")
		} else {
			tabs[i] = " " + name + " "
		}
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			strings.Join(tabs, "  "),
			"",
			m.viewport.View(),
		),
	)
}
