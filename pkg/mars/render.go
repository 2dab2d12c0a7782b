package mars

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ownerStyles assigns a distinct lipgloss color to each warrior index,
// cycling if there are more warriors than colors, grounded on the
// bordered/colored line-drawing cpu.model.View uses in the teacher's
// debugger TUI.
var ownerStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // red
	lipgloss.NewStyle().Foreground(lipgloss.Color("12")), // blue
	lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // green
	lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // yellow
}

const cellsPerRow = 64

// RenderCoreOwnership draws a compact map of which starting region each
// warrior occupies, one character per coreSize/cellsPerRow-cell bucket,
// colored by owner index. starts gives each warrior's load address.
func RenderCoreOwnership(coreSize int, starts []int) string {
	buckets := cellsPerRow
	if buckets > coreSize {
		buckets = coreSize
	}
	cellsPerBucket := coreSize / buckets

	owner := make([]int, buckets)
	for i := range owner {
		owner[i] = -1
	}
	for wi, start := range starts {
		b := start / cellsPerBucket
		if b >= buckets {
			b = buckets - 1
		}
		owner[b] = wi
	}

	var rows []string
	var line strings.Builder
	for i, o := range owner {
		ch := "."
		if o >= 0 {
			ch = "#"
			line.WriteString(ownerStyles[o%len(ownerStyles)].Render(ch))
		} else {
			line.WriteString(ch)
		}
		if (i+1)%64 == 0 {
			rows = append(rows, line.String())
			line.Reset()
		}
	}
	if line.Len() > 0 {
		rows = append(rows, line.String())
	}
	return strings.Join(rows, "\n")
}
