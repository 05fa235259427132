package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/rivo/tview"

	"github.com/mindheaven/mindheaven/backend/internal/client/view"
	"github.com/mindheaven/mindheaven/backend/internal/model/resource"
)

const (
	userColor      = "#2196F3"
	assistantColor = "#4CAF50"
	crisisColor    = "#F44336"
	chartHeight    = 10
)

// formatEntry renders one log entry as a tview line.
func formatEntry(e view.Entry) string {
	labelColor := assistantColor
	if e.Sender == view.SenderUser {
		labelColor = userColor
	}
	if e.Crisis {
		return fmt.Sprintf("[%s::b]%s:[-:-:-] [%s]%s[-:-:-]\n", crisisColor, e.Label, crisisColor, e.Text)
	}
	return fmt.Sprintf("[%s::b]%s:[-:-:-] %s[-:-:-]\n", labelColor, e.Label, e.Text)
}

// renderChart draws points as vertical bars on a fixed 0-10 axis, one
// column per message.
func renderChart(points []view.ChartPoint, lineColor string) string {
	var b strings.Builder

	heights := make([]int, len(points))
	for i, p := range points {
		heights[i] = int(math.Round(p.Intensity))
	}

	for level := chartHeight; level >= 1; level-- {
		fmt.Fprintf(&b, "%2d │", level)
		for _, h := range heights {
			if h >= level {
				fmt.Fprintf(&b, " [%s]██[-]", lineColor)
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteByte('\n')
	}

	b.WriteString(" 0 └")
	b.WriteString(strings.Repeat("───", len(points)))
	b.WriteByte('\n')

	b.WriteString("    ")
	for i := range points {
		fmt.Fprintf(&b, "%3d", i+1)
	}
	if len(points) == 0 {
		b.WriteString(" no messages yet")
	}
	return b.String()
}

// renderDirectory lists helplines, crisis lines first.
func renderDirectory(dir resource.Directory) string {
	var b strings.Builder
	writeSection := func(title string, items []resource.Resource) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "[::b]%s[::-]\n", title)
		for _, r := range items {
			fmt.Fprintf(&b, "• %s\n  %s\n  [::u]%s[::-]\n", tview.Escape(r.Name), tview.Escape(r.Description), tview.Escape(r.URL))
		}
		b.WriteByte('\n')
	}
	writeSection("Crisis support", dir.Crisis)
	writeSection("More resources", dir.General)
	return strings.TrimRight(b.String(), "\n")
}
