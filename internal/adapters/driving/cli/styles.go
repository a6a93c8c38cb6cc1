package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Theme defines the colour palette for command output.
type Theme struct {
	// Primary is the heading colour.
	Primary lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates skipped or partial outcomes.
	Warning lipgloss.Color

	// Error indicates rejected sources.
	Error lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Success: lipgloss.Color("#A6E3A1"), // Green
		Warning: lipgloss.Color("#F9E2AF"), // Yellow
		Error:   lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles renders text with the theme when the output is a terminal and
// returns it unchanged otherwise.
type Styles struct {
	enabled bool

	title   lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
}

// NewStyles creates styles for w. Styling is enabled only when w is a
// terminal.
func NewStyles(w io.Writer, theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Styles{
		enabled: isTerminal(w),
		title:   lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		muted:   lipgloss.NewStyle().Foreground(theme.Muted),
		success: lipgloss.NewStyle().Foreground(theme.Success),
		warning: lipgloss.NewStyle().Foreground(theme.Warning),
		failure: lipgloss.NewStyle().Bold(true).Foreground(theme.Error),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (s *Styles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

// Title renders a heading.
func (s *Styles) Title(text string) string { return s.render(s.title, text) }

// Muted renders secondary text.
func (s *Styles) Muted(text string) string { return s.render(s.muted, text) }

// Success renders a positive outcome.
func (s *Styles) Success(text string) string { return s.render(s.success, text) }

// Warning renders a skipped or partial outcome.
func (s *Styles) Warning(text string) string { return s.render(s.warning, text) }

// Error renders a failure.
func (s *Styles) Error(text string) string { return s.render(s.failure, text) }
