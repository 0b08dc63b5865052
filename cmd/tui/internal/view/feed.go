package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/feed"
	"github.com/colegioelo/estoque/internal/importer"
)

const feedTimeout = 10 * time.Minute

type feedState int

const (
	feedStateSource feedState = iota
	feedStateUnit
	feedStateFilePick
	feedStateRunning
	feedStateResult
)

type feedSource struct {
	label  string
	format importer.Format
}

// A zero format means fetching from the SIS.
var feedSources = []feedSource{
	{label: "Refresh from SIS"},
	{label: "Upload report export (TSV)", format: importer.FormatTSV},
	{label: "Upload snapshot (JSON)", format: importer.FormatJSON},
}

type FeedModel struct {
	CommonModel
	feedService *feed.Service
	units       []catalog.UnitInfo

	state        feedState
	sourceCursor int
	unitCursor   int
	filePicker   filepicker.Model
	spinner      spinner.Model

	outcome *feed.Outcome
	err     error
	status  string
}

func NewFeedModel(svc *feed.Service, cat *catalog.Catalog) FeedModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".tsv", ".txt", ".json"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return FeedModel{
		feedService: svc,
		units:       cat.Units(),
		filePicker:  fp,
		spinner:     s,
	}
}

func (m FeedModel) Title() string { return "Load Extraction" }

func (m FeedModel) ShortHelp() string {
	if m.state == feedStateRunning {
		return "Working..."
	}

	return "Esc: back | Enter: select"
}

func (m FeedModel) Init() tea.Cmd {
	return nil
}

func (m FeedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		switch m.state {
		case feedStateSource:
			return m.updateSource(msg)
		case feedStateUnit:
			return m.updateUnit(msg)
		case feedStateRunning, feedStateResult:
			return m, nil
		}

	case feedResultMsg:
		m.state = feedStateResult
		m.outcome = msg.outcome
		m.err = msg.err

		return m, nil
	}

	switch m.state {
	case feedStateRunning:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case feedStateFilePick:
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.state = feedStateRunning
			m.status = fmt.Sprintf("Importing %s...", filepath.Base(path))

			return m, tea.Batch(m.spinner.Tick, m.uploadCmd(path))
		}

		return m, cmd
	}

	return m, nil
}

func (m FeedModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case feedStateUnit:
		m.state = feedStateSource
		return m, nil
	case feedStateFilePick:
		m.state = feedStateSource
		return m, nil
	case feedStateResult:
		m.state = feedStateSource
		m.err = nil
		m.outcome = nil

		return m, nil
	case feedStateRunning:
		return m, nil
	}

	return m, Back
}

func (m FeedModel) updateSource(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.sourceCursor > 0 {
			m.sourceCursor--
		}
	case tea.KeyDown:
		if m.sourceCursor < len(feedSources)-1 {
			m.sourceCursor++
		}
	case tea.KeyEnter:
		switch feedSources[m.sourceCursor].format {
		case "":
			m.state = feedStateRunning
			m.status = "Fetching every unit from the SIS..."

			return m, tea.Batch(m.spinner.Tick, m.refreshCmd())
		case importer.FormatTSV:
			m.state = feedStateUnit
			return m, nil
		default:
			m.state = feedStateFilePick
			return m, m.filePicker.Init()
		}
	}

	return m, nil
}

func (m FeedModel) updateUnit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.unitCursor > 0 {
			m.unitCursor--
		}
	case tea.KeyDown:
		if m.unitCursor < len(m.units)-1 {
			m.unitCursor++
		}
	case tea.KeyEnter:
		m.state = feedStateFilePick
		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m FeedModel) View() string {
	switch m.state {
	case feedStateSource:
		return m.viewMenu("Load a new extraction:", len(feedSources), m.sourceCursor, func(i int) string {
			return feedSources[i].label
		})
	case feedStateUnit:
		return m.viewMenu("Which unit is this export from?", len(m.units), m.unitCursor, func(i int) string {
			return fmt.Sprintf("%s  %s", m.units[i].Code, m.units[i].Name)
		})
	case feedStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select %s file:\n\n%s", feedSources[m.sourceCursor].format, m.filePicker.View()),
		)
	case feedStateRunning:
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("%s %s", m.spinner.View(), m.status))
	case feedStateResult:
		return m.viewResult()
	}

	return ""
}

func (m FeedModel) viewMenu(title string, n, cursor int, label func(int) string) string {
	var b strings.Builder

	b.WriteString(title + "\n\n")

	for i := range n {
		marker := " "
		if i == cursor {
			marker = ">"
		}

		fmt.Fprintf(&b, "%s %s\n", marker, label(i))
	}

	return lipgloss.NewStyle().Padding(2).Render(b.String())
}

func (m FeedModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	o := m.outcome

	var b strings.Builder

	b.WriteString(okStyle("Snapshot replaced.") + "\n\n")
	fmt.Fprintf(&b, "Records: %d (previous %d)\n", len(o.Snapshot.Records), o.Previous)

	for _, u := range o.Failed {
		b.WriteString(errorStyle(fmt.Sprintf("Unit %s failed after %d records: %v", u.Unit, u.Records, u.Err)) + "\n")
	}

	switch {
	case o.Run == nil:
		b.WriteString("Audit: not recorded\n")
	case o.Run.Passed:
		b.WriteString("Audit: " + okStyle("passed") + "\n")
	default:
		b.WriteString("Audit: " + errorStyle("failed") + "\n")
	}

	b.WriteString("\n(Esc to go back)")

	return style.Render(b.String())
}

// Messages

type feedResultMsg struct {
	outcome *feed.Outcome
	err     error
}

func (m FeedModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), feedTimeout)
		defer cancel()

		out, err := m.feedService.Refresh(ctx)

		return feedResultMsg{outcome: out, err: err}
	}
}

func (m FeedModel) uploadCmd(path string) tea.Cmd {
	format := feedSources[m.sourceCursor].format

	var unit catalog.Unit
	if format == importer.FormatTSV {
		unit = m.units[m.unitCursor].Code
	}

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return feedResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), feedTimeout)
		defer cancel()

		out, err := m.feedService.Upload(ctx, format, []feed.File{
			{Name: filepath.Base(path), Unit: unit, Body: f},
		})

		return feedResultMsg{outcome: out, err: err}
	}
}
