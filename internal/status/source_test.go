package status

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type readCloser struct {
	io.Reader
}

func (readCloser) Close() error { return nil }

func TestSourceParsesHeaderAndBlocks(t *testing.T) {
	pr, pw := io.Pipe()
	go func() {
		_, _ = pw.Write([]byte("{\"version\":1,\"click_events\":true}\n"))
		_, _ = pw.Write([]byte("[\n"))
		_, _ = pw.Write([]byte("[{\"full_text\":\"10:00\",\"name\":\"clock\"}]\n"))
		_, _ = pw.Write([]byte(",[{\"full_text\":\"99%\",\"name\":\"battery\",\"urgent\":true}]\n"))
		_ = pw.Close()
	}()

	s, err := newSourceFromReader(readCloser{pr}, nil)
	require.NoError(t, err)
	require.True(t, s.Header().ClickEvents)

	select {
	case u := <-s.Updates():
		require.Len(t, u.Blocks, 1)
		require.Equal(t, "10:00", u.Blocks[0].FullText)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for first update")
	}

	select {
	case u := <-s.Updates():
		require.Len(t, u.Blocks, 1)
		require.True(t, u.Blocks[0].Urgent)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for second update")
	}
}

func TestSuspendResumeNoOpWithoutProcess(t *testing.T) {
	pr, pw := io.Pipe()
	go func() {
		_, _ = pw.Write([]byte("{\"version\":1}\n"))
		_ = pw.Close()
	}()

	s, err := newSourceFromReader(readCloser{pr}, nil)
	require.NoError(t, err)
	// Sources built from a bare reader (as in tests) have no child process;
	// Suspend/Resume must tolerate that rather than panicking on a nil cmd.
	require.NoError(t, s.Suspend())
	require.NoError(t, s.Resume())
}

func TestSourceRejectsUnsupportedVersion(t *testing.T) {
	pr, pw := io.Pipe()
	go func() {
		_, _ = pw.Write([]byte("{\"version\":2}\n"))
		_ = pw.Close()
	}()

	_, err := newSourceFromReader(readCloser{pr}, nil)
	require.Error(t, err)
}

func TestBlockAlignDefaultsLeft(t *testing.T) {
	b := Block{}
	require.Equal(t, AlignLeft, b.Align())

	b.AlignRaw = "center"
	require.Equal(t, AlignCenter, b.Align())
}

func TestBlockHasSeparatorDefaultsTrue(t *testing.T) {
	b := Block{}
	require.True(t, b.HasSeparator())

	f := false
	b.Separator = &f
	require.False(t, b.HasSeparator())
}
