// Package report prints batch and simulation results for people (styled
// terminal text) and for machines (JSON).
package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorTitle   = lipgloss.Color("#2CD7C7")
	colorMuted   = lipgloss.Color("#5C7A84")
	colorSuccess = lipgloss.Color("#2CD7C7")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
)

// styles are bound to one output so colors are dropped when it is not a
// terminal.
type styles struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(colorTitle),
		muted:   r.NewStyle().Foreground(colorMuted),
		success: r.NewStyle().Foreground(colorSuccess),
		warning: r.NewStyle().Foreground(colorWarning),
		failure: r.NewStyle().Foreground(colorError),
	}
}
