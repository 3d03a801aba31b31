package backend

import "github.com/mattn/go-runewidth"

// RuneWidthMetrics is a monospace TextMetrics implementation driven by
// go-runewidth's East-Asian-width-aware cell counting rather than a real
// loaded font. It exists as the default TextMetrics for headless testing
// and for any backend that renders the bar through a fixed-width terminal
// or pixmap font where "cells" and "pixels" are simply scaled by
// CellWidthPx — it is not a substitute for a real Xft/fontconfig measurer,
// which a concrete DisplayBackend implementation supplies instead.
type RuneWidthMetrics struct {
	CellWidthPx int
	LineHeightPx int
}

// NewRuneWidthMetrics returns a RuneWidthMetrics using sane fixed-width bar
// font defaults.
func NewRuneWidthMetrics() *RuneWidthMetrics {
	return &RuneWidthMetrics{CellWidthPx: 8, LineHeightPx: 16}
}

func (m *RuneWidthMetrics) TextWidth(s string) int {
	return runewidth.StringWidth(s) * m.CellWidthPx
}

func (m *RuneWidthMetrics) LineHeight() int {
	return m.LineHeightPx
}
