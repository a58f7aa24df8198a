// ABOUTME: Sparkline widget for compact activity charts
// ABOUTME: Renders a series with Unicode block characters

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as a line of blocks at most width wide. Series
// longer than width are downsampled by averaging.
func Sparkline(values []float64, width int, color lipgloss.Color) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if len(values) > width {
		values = sampleValues(values, width)
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	var sb strings.Builder
	for _, v := range values {
		sb.WriteRune(valueToBlock(v, lo, hi))
	}
	return lipgloss.NewStyle().Foreground(color).Render(sb.String())
}

// sampleValues averages values into width buckets
func sampleValues(values []float64, width int) []float64 {
	out := make([]float64, width)
	bucket := float64(len(values)) / float64(width)
	for i := range out {
		start := int(float64(i) * bucket)
		end := int(float64(i+1) * bucket)
		if end <= start {
			end = start + 1
		}
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

func valueToBlock(v, lo, hi float64) rune {
	if hi == lo {
		if hi == 0 {
			return sparkBlocks[0]
		}
		return sparkBlocks[len(sparkBlocks)/2]
	}
	idx := int((v - lo) / (hi - lo) * float64(len(sparkBlocks)-1))
	return sparkBlocks[idx]
}
