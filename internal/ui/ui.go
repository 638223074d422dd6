// Package ui holds the shared terminal styling used by both the CLI
// commands and the interactive views.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))  // sky blue
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // green
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // orange
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")) // red
	faintStyle  = lipgloss.NewStyle().Faint(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// HasColor reports whether the terminal supports color output. Styles
// degrade to plain text automatically; callers use this only to pick
// between decorated and plain layouts.
func HasColor() bool {
	return termenv.EnvColorProfile() != termenv.Ascii
}

// RenderAccent styles informational markers.
func RenderAccent(s string) string { return accentStyle.Render(s) }

// RenderPass styles success markers.
func RenderPass(s string) string { return passStyle.Render(s) }

// RenderWarn styles warning markers.
func RenderWarn(s string) string { return warnStyle.Render(s) }

// RenderErr styles failure markers.
func RenderErr(s string) string { return errStyle.Render(s) }

// RenderFaint styles de-emphasized detail text.
func RenderFaint(s string) string { return faintStyle.Render(s) }

// RenderTitle styles screen and section titles.
func RenderTitle(s string) string { return titleStyle.Render(s) }

// RenderHeader styles column and field headers.
func RenderHeader(s string) string { return headerStyle.Render(s) }
