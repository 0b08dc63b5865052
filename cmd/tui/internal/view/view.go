package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by every screen and tracks the terminal size.
type CommonModel struct {
	Width  int
	Height int
}

// Resize stores the terminal size and returns the rows left after chrome lines
// of headers and help, never less than five.
func (c *CommonModel) Resize(msg tea.WindowSizeMsg, chrome int) int {
	c.Width, c.Height = msg.Width, msg.Height
	return max(msg.Height-chrome, 5)
}

// BackMsg returns the program to the main menu.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
