package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/daniacca/xbpgh/internal/organism"
)

const boardGap = "    "

// SideBySide draws the reached board next to the wanted one under a
// Have/Want heading.
func SideBySide(have, want organism.State) string {
	return "  Have         Want\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, have.Render(), boardGap, want.Render())
}

// Timeline lays states out perRow to a line of boards.
func Timeline(states []organism.State, perRow int) string {
	var rows []string
	for start := 0; start < len(states); start += perRow {
		end := min(start+perRow, len(states))
		blocks := make([]string, 0, 2*(end-start))
		for i, s := range states[start:end] {
			if i > 0 {
				blocks = append(blocks, " ")
			}
			blocks = append(blocks, s.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	}
	return strings.Join(rows, "\n")
}
