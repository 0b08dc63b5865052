package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/ledger"
	"github.com/colegioelo/estoque/internal/report"
	"github.com/colegioelo/estoque/internal/stock"
)

type stockState int

const (
	stockStateBrowse stockState = iota
	stockStateEdit
)

var (
	unitFilters = []catalog.Unit{"", catalog.UnitBV, catalog.UnitCD, catalog.UnitJG, catalog.UnitCDR}
	lineFilters = append([]catalog.Line{""}, catalog.Lines...)
	bandFilters = []stock.Band{"", stock.BandShortage, stock.BandLow, stock.BandOK}
)

// stockFields holds the edit form bindings. It lives on the heap so the form
// keeps writing to it across model copies.
type stockFields struct {
	shipped    string
	adjustment string
	counted    string
}

type StockModel struct {
	CommonModel
	reports *report.Service
	ledgers *ledger.Service

	state    stockState
	table    table.Model
	rep      *report.Report
	balances []stock.Balance
	form     *huh.Form
	fields   *stockFields

	unitIdx int
	lineIdx int
	bandIdx int

	loading bool
	err     error
	status  string
}

func NewStockModel(reports *report.Service, ledgers *ledger.Service) StockModel {
	columns := []table.Column{
		{Title: "Unit", Width: 5},
		{Title: "Code", Width: 6},
		{Title: "Product", Width: 28},
		{Title: "Grade", Width: 10},
		{Title: "Shipped", Width: 8},
		{Title: "Sold", Width: 6},
		{Title: "Adj", Width: 5},
		{Title: "Balance", Width: 8},
		{Title: "Band", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return StockModel{
		reports: reports,
		ledgers: ledgers,
		table:   t,
		loading: true,
	}
}

func (m StockModel) Title() string { return "Stock" }

func (m StockModel) ShortHelp() string {
	if m.state == stockStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit | u: unit | l: line | b: band | r: reload"
}

func (m StockModel) Init() tea.Cmd {
	return m.loadCmd(false)
}

func (m StockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadStockMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.rep = msg.rep
		m.refreshTable()

		return m, nil

	case stockSaveMsg:
		m.status = ""
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		m.state = stockStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd(false)

	case tea.WindowSizeMsg:
		m.table.SetHeight(m.Resize(msg, 10))
		return m, nil
	}

	switch m.state {
	case stockStateBrowse:
		return m.updateBrowse(msg)
	case stockStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m StockModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd(true)
		case "e":
			return m.enterEditMode()
		case "u":
			m.unitIdx = (m.unitIdx + 1) % len(unitFilters)
			m.refreshTable()

			return m, nil
		case "l":
			m.lineIdx = (m.lineIdx + 1) % len(lineFilters)
			m.refreshTable()

			return m, nil
		case "b":
			m.bandIdx = (m.bandIdx + 1) % len(bandFilters)
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func validateCount(allowNegative bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}

		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("must be a whole number")
		}

		if n < 0 && !allowNegative {
			return fmt.Errorf("cannot be negative")
		}

		return nil
	}
}

func (m StockModel) enterEditMode() (tea.Model, tea.Cmd) {
	b, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.fields = &stockFields{
		shipped:    strconv.Itoa(b.Shipped),
		adjustment: strconv.Itoa(b.Adjustment),
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("shipped").
				Title("Shipped").
				Value(&m.fields.shipped).
				Validate(validateCount(false)),

			huh.NewInput().
				Key("adjustment").
				Title("Adjustment").
				Description("Prior-cycle units added back; negative corrects").
				Value(&m.fields.adjustment).
				Validate(validateCount(true)),

			huh.NewInput().
				Key("counted").
				Title("Physical count today").
				Placeholder("leave empty to skip").
				Value(&m.fields.counted).
				Validate(validateCount(false)),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = stockStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m StockModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = stockStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m StockModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Building report...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	header := fmt.Sprintf(
		"Extraction %s | %d records | Filter: [u] Unit: %s | [l] Line: %s | [b] Band: %s",
		FormatDate(m.rep.TakenAt),
		m.rep.Records,
		activeStyle(orAll(string(unitFilters[m.unitIdx]))),
		activeStyle(orAll(string(lineFilters[m.lineIdx]))),
		activeStyle(orAll(string(bandFilters[m.bandIdx]))),
	)

	totals := stock.Network(m.balances)
	footer := fmt.Sprintf("Shipped %d | Sold %d | Adjusted %d | Balance %d",
		totals.Shipped, totals.Sold, totals.Adjustment, totals.Balance)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		lipgloss.NewStyle().Faint(true).Render(footer),
	)

	if m.state == stockStateEdit && m.form != nil {
		title := ""
		if b, ok := m.selected(); ok {
			title = fmt.Sprintf("%s %s at %s", b.ProductCode, b.ProductName, b.Unit)
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("Edit %s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}

	return s
}

func (m StockModel) selected() (stock.Balance, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.balances) {
		return stock.Balance{}, false
	}

	return m.balances[idx], true
}

func (m *StockModel) refreshTable() {
	if m.rep == nil {
		return
	}

	filter := stock.Filter{
		Unit: unitFilters[m.unitIdx],
		Line: lineFilters[m.lineIdx],
		Band: bandFilters[m.bandIdx],
	}

	m.balances = filter.Apply(m.rep.Balances)

	rows := make([]table.Row, 0, len(m.balances))
	for _, b := range m.balances {
		rows = append(rows, table.Row{
			string(b.Unit),
			b.ProductCode,
			b.ProductName,
			b.Grade,
			strconv.Itoa(b.Shipped),
			strconv.Itoa(b.Sold),
			strconv.Itoa(b.Adjustment),
			strconv.Itoa(b.Balance),
			string(b.Band),
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Messages

type loadStockMsg struct {
	rep *report.Report
	err error
}

func (m StockModel) loadCmd(rebuild bool) tea.Cmd {
	return func() tea.Msg {
		if rebuild {
			m.reports.Invalidate()
		}

		ctx, cancel := DbCtx()
		defer cancel()

		rep, err := m.reports.Current(ctx)

		return loadStockMsg{rep: rep, err: err}
	}
}

type stockSaveMsg struct {
	err error
}

func atoi(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	n, err := strconv.Atoi(s)

	return n, err == nil
}

func (m StockModel) saveCmd() tea.Cmd {
	b, ok := m.selected()
	if !ok {
		return nil
	}

	fields := *m.fields
	key := b.Key()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		defer m.reports.Invalidate()

		if n, ok := atoi(fields.shipped); ok && n != b.Shipped {
			if err := m.ledgers.SetShipment(ctx, ledger.Shipment{StockKey: key, Quantity: n}); err != nil {
				return stockSaveMsg{err: err}
			}
		}

		if n, ok := atoi(fields.adjustment); ok && n != b.Adjustment {
			a := ledger.Adjustment{StockKey: key, Quantity: n, Note: "edited in terminal"}
			if err := m.ledgers.SetAdjustment(ctx, a); err != nil {
				return stockSaveMsg{err: err}
			}
		}

		if n, ok := atoi(fields.counted); ok {
			now := time.Now()
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

			pc := ledger.PhysicalCount{StockKey: key, ObservedOn: today, Quantity: n}
			if err := m.ledgers.RecordPhysicalCount(ctx, pc); err != nil {
				return stockSaveMsg{err: err}
			}
		}

		return stockSaveMsg{}
	}
}
