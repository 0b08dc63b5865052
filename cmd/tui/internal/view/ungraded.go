package view

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/ledger"
	"github.com/colegioelo/estoque/internal/report"
	"github.com/colegioelo/estoque/internal/sales"
)

// UngradedModel lists technology students no resolver could place and pins
// their grade with an override.
type UngradedModel struct {
	CommonModel
	reports *report.Service
	ledgers *ledger.Service
	grades  []string

	table      table.Model
	unresolved []sales.Resolution
	form       *huh.Form
	grade      *string

	loading bool
	err     error
	status  string
}

// gradeOptions lists the grade labels used by graded products, in catalog order.
func gradeOptions(cat *catalog.Catalog) []string {
	var out []string

	for _, line := range []catalog.Line{catalog.LineCurriculum, catalog.LineSocioEmotional} {
		for _, e := range cat.EntriesFor(line) {
			if e.Grade == catalog.GradeUndetermined || slices.Contains(out, e.Grade) {
				continue
			}

			out = append(out, e.Grade)
		}
	}

	return out
}

func NewUngradedModel(reports *report.Service, ledgers *ledger.Service, cat *catalog.Catalog) UngradedModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Unit", Width: 5},
			{Title: "Student ID", Width: 12},
			{Title: "Name", Width: 32},
			{Title: "Class", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	return UngradedModel{
		reports: reports,
		ledgers: ledgers,
		grades:  gradeOptions(cat),
		table:   t,
		loading: true,
	}
}

func (m UngradedModel) Title() string { return "Ungraded Students" }

func (m UngradedModel) ShortHelp() string {
	if m.form != nil {
		return "Pick a grade | Esc: cancel"
	}

	return "Esc: back | Enter: assign grade"
}

func (m UngradedModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m UngradedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadStockMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.unresolved = msg.rep.Unresolved()
			m.refreshTable()
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(m.Resize(msg, 10))
		return m, nil

	case overrideSavedMsg:
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error saving: %v", msg.err))
			return m, nil
		}

		m.status = okStyle(fmt.Sprintf("%s set to %s", msg.studentID, msg.grade))

		return m, m.loadCmd()

	case tea.KeyMsg:
		if m.form == nil {
			switch msg.String() {
			case "esc":
				return m, Back
			case "enter":
				return m.enterAssignMode()
			}
		} else if msg.Type == tea.KeyEsc {
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	if m.form != nil {
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State == huh.StateCompleted {
			return m, m.saveCmd()
		}

		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m UngradedModel) enterAssignMode() (tea.Model, tea.Cmd) {
	res, ok := m.selected()
	if !ok {
		return m, nil
	}

	grade := m.grades[0]
	m.grade = &grade

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Grade for %s", res.StudentName)).
				Options(huh.NewOptions(m.grades...)...).
				Value(m.grade),
		),
	).WithWidth(40).WithShowHelp(false)

	m.table.Blur()

	return m, m.form.Init()
}

func (m UngradedModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Building report...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	if len(m.unresolved) == 0 {
		return lipgloss.NewStyle().Padding(2).Render(okStyle("Every technology student has a grade.") + "\n\n(Esc to go back)")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%d students without a grade", len(m.unresolved)),
		"",
		m.table.View(),
	)

	if m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = m.status + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m UngradedModel) selected() (sales.Resolution, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.unresolved) {
		return sales.Resolution{}, false
	}

	return m.unresolved[idx], true
}

func (m *UngradedModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.unresolved))
	for _, res := range m.unresolved {
		rows = append(rows, table.Row{string(res.Key.Unit), res.Key.StudentID, res.StudentName, res.ClassSection})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Messages

type overrideSavedMsg struct {
	studentID string
	grade     string
	err       error
}

func (m UngradedModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rep, err := m.reports.Current(ctx)

		return loadStockMsg{rep: rep, err: err}
	}
}

func (m UngradedModel) saveCmd() tea.Cmd {
	res, ok := m.selected()
	if !ok {
		return nil
	}

	grade := *m.grade

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.ledgers.SetOverride(ctx, ledger.GradeOverride{StudentKey: res.Key, Grade: grade})
		if err == nil {
			m.reports.Invalidate()
		}

		return overrideSavedMsg{studentID: res.Key.StudentID, grade: grade, err: err}
	}
}
