package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(WARN, TextFormatter{}, &buf)

	l.Debugf("hidden")
	l.Infof("also hidden")
	l.Warnf("shown")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "WARN")
}

func TestLoggerWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(DEBUG, TextFormatter{}, &buf).With("tree")

	l.Infof("attach node")

	require.True(t, strings.Contains(buf.String(), "[tree]"))
}

func TestJSONFormatterEscapesQuotes(t *testing.T) {
	var buf bytes.Buffer
	l := New(DEBUG, JSONFormatter{}, &buf)

	l.Infof(`value "x"`)

	require.Contains(t, buf.String(), `\"x\"`)
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, DEBUG, ParseLevel("debug"))
	require.Equal(t, WARN, ParseLevel("WARNING"))
	require.Equal(t, INFO, ParseLevel("bogus"))
}
