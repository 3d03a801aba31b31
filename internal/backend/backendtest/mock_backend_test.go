package backendtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/wm/internal/backend"
	"github.com/bnema/wm/internal/tree"
)

func TestMockDisplayBackendConfigure(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewMockDisplayBackend(ctrl)

	geom := backend.WindowGeometry{Rect: tree.Rect{W: 100, H: 100}}
	m.EXPECT().Configure(gomock.Any(), tree.WindowHandle(1), geom).Return(nil)

	err := m.Configure(context.Background(), tree.WindowHandle(1), geom)
	require.NoError(t, err)
}

func TestFixedTextMetrics(t *testing.T) {
	tm := FixedTextMetrics{WidthPerRune: 5, Height: 20}
	require.Equal(t, 15, tm.TextWidth("abc"))
	require.Equal(t, 20, tm.LineHeight())
}
