package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRotatorRotatesOnSize(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRotator(RotatorConfig{Dir: dir, BaseName: "wm.log", MaxSizeMB: 0, MaxBackups: 5})
	require.NoError(t, err)
	r.maxSize = 16 // force rotation in-test without needing megabytes of writes
	defer r.Close()

	_, err = r.Write([]byte("0123456789abcdef"))
	require.NoError(t, err)
	_, err = r.Write([]byte("trigger-rotate"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(entries), 2)

	_, err = os.Stat(filepath.Join(dir, "wm.log"))
	require.NoError(t, err)
}
