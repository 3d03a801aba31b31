package bar

import "github.com/mattn/go-runewidth"

// RunewidthMetrics is a TextMetrics implementation backed by
// mattn/go-runewidth's monospace cell-width tables, used when no real font
// backend is wired (a headless bar, or a test harness that still wants
// realistic wide-rune behavior instead of a flat per-rune width).
type RunewidthMetrics struct {
	// CellWidth is the pixel width of one monospace cell.
	CellWidth int
	// CellHeight is the pixel line height.
	CellHeight int
}

func (m RunewidthMetrics) TextWidth(s string) int {
	return runewidth.StringWidth(s) * m.CellWidth
}

func (m RunewidthMetrics) LineHeight() int { return m.CellHeight }
