package backend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRuneWidthMetricsTextWidth(t *testing.T) {
	m := NewRuneWidthMetrics()
	m.CellWidthPx = 10
	require.Equal(t, 30, m.TextWidth("abc"))
}

func TestRuneWidthMetricsLineHeight(t *testing.T) {
	m := NewRuneWidthMetrics()
	require.Equal(t, 16, m.LineHeight())
}
