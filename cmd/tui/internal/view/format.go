package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/colegioelo/estoque/internal/stock"
)

const dbTimeout = 5 * time.Second

var bandColor = map[stock.Band]lipgloss.Color{
	stock.BandShortage: lipgloss.Color("196"),
	stock.BandLow:      lipgloss.Color("214"),
	stock.BandOK:       lipgloss.Color("46"),
}

// FormatDate formats a time.Time into DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatSigned prints differences with an explicit sign.
func FormatSigned(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}

	return fmt.Sprintf("%d", n)
}

// BandLabel renders a band in its color.
func BandLabel(b stock.Band) string {
	return lipgloss.NewStyle().Foreground(bandColor[b]).Render(string(b))
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func errorStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(s)
}

func okStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(s)
}
