package view

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/colegioelo/estoque/internal/export"
)

const exportTimeout = 2 * time.Minute

// exportedMsg carries the outcome of one workbook export and the briefing of
// the report it was written from.
type exportedMsg struct {
	path     string
	briefing string
	err      error
}

// ExportModel asks for an output directory, writes the stock workbook there and
// shows the unit briefing next to the saved file. Every export of the session
// stays listed so several directories can be filled in one visit.
type ExportModel struct {
	CommonModel
	svc *export.Service

	dir     *string
	form    *huh.Form
	spinner spinner.Model
	busy    bool

	saved    []string
	briefing string
	err      error
}

func NewExportModel(svc *export.Service, dir string) ExportModel {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := ExportModel{svc: svc, dir: &dir, spinner: sp}
	m.form = dirForm(m.dir)

	return m
}

func dirForm(dir *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Save workbook to").
			Placeholder("./exports").
			Value(dir),
	)).WithShowHelp(false)
}

func (m ExportModel) Title() string { return "Export Workbook" }

func (m ExportModel) ShortHelp() string {
	if m.busy {
		return "writing workbook..."
	}

	return "Enter: export | Esc: back"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Resize(msg, 4)
		m.form = m.form.WithWidth(min(msg.Width-4, 60))

		return m, nil

	case exportedMsg:
		m.busy = false
		m.err = msg.err

		if msg.path != "" {
			m.saved = append(m.saved, msg.path)
		}

		if msg.err == nil {
			m.briefing = msg.briefing
		}

		m.form = dirForm(m.dir)

		return m, m.form.Init()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && !m.busy {
			return m, Back
		}
	}

	if m.busy {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, exportCmd(m.svc, strings.TrimSpace(*m.dir)))
	}

	return m, cmd
}

func exportCmd(svc *export.Service, dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		path, err := svc.Export(ctx, dir)
		if err != nil {
			return exportedMsg{err: err}
		}

		// The workbook is on disk even if the briefing cannot be rendered.
		briefing, err := svc.Briefing(ctx)

		return exportedMsg{path: path, briefing: briefing, err: err}
	}
}

func (m ExportModel) View() string {
	var parts []string

	if m.busy {
		parts = append(parts, m.spinner.View()+" writing "+*m.dir)
	} else {
		parts = append(parts, m.form.View())
	}

	if m.err != nil {
		parts = append(parts, errorStyle("export failed: "+m.err.Error()))
	}

	for _, p := range m.saved {
		parts = append(parts, okStyle("saved ")+p)
	}

	if m.briefing != "" {
		parts = append(parts, "", m.briefing)
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
