package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/floats"

	"github.com/rpgo/portfolio-sim/internal/domain"
)

// Theme colors
var (
	colorBorder = lipgloss.Color("#575653")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorOrange = lipgloss.Color("#DA702C")
	colorRed    = lipgloss.Color("#D14D41")
	colorMuted  = lipgloss.Color("#6F6E69")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorOrange)

	badStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

const sparkWidth = 48

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// renderTitle renders a centered title bar in a bordered box.
func renderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(60).
		Align(lipgloss.Center).
		Padding(0, 1)
	return border.Render(titleStyle.Render(title))
}

// renderBar draws a horizontal bar of value relative to maxValue.
func renderBar(value, maxValue float64, maxWidth int) string {
	if maxValue <= 0 {
		return ""
	}
	barLen := int(value / maxValue * float64(maxWidth))
	if barLen < 0 {
		barLen = 0
	}
	if value > 0 && barLen == 0 {
		barLen = 1
	}
	return strings.Repeat("█", barLen)
}

// sparkline renders values scaled to [lo, hi], resampled to width columns.
func sparkline(values []float64, lo, hi float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	n := width
	if len(values) < n {
		n = len(values)
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		v := values[i*len(values)/n]
		idx := int((v - lo) / span * float64(len(sparkBlocks)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

// pathRange returns the min and max over every trajectory.
func pathRange(paths ...domain.Trajectory) (lo, hi float64) {
	first := true
	for _, p := range paths {
		if len(p) == 0 {
			continue
		}
		pl, ph := floats.Min(p), floats.Max(p)
		if first || pl < lo {
			lo = pl
		}
		if first || ph > hi {
			hi = ph
		}
		first = false
	}
	return lo, hi
}

// groupBins merges consecutive bins so at most maxRows remain.
func groupBins(bins []domain.Bin, maxRows int) []domain.Bin {
	if maxRows <= 0 || len(bins) <= maxRows {
		return bins
	}
	per := (len(bins) + maxRows - 1) / maxRows
	out := make([]domain.Bin, 0, maxRows)
	for i := 0; i < len(bins); i += per {
		end := i + per
		if end > len(bins) {
			end = len(bins)
		}
		g := domain.Bin{Low: bins[i].Low, High: bins[end-1].High}
		for _, b := range bins[i:end] {
			g.Count += b.Count
		}
		out = append(out, g)
	}
	return out
}

func writeSection(b *strings.Builder, title string) {
	fmt.Fprintln(b)
	fmt.Fprintln(b, headerStyle.Render(title))
}
