package status

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"syscall"

	"github.com/bnema/wm/internal/logging"
	"github.com/bnema/wm/internal/wmerr"
)

// Header is the protocol preamble a status source writes once before
// streaming block arrays (the i3bar/i3status wire format this spec's
// StatusSource is modeled on): {"version":1,"click_events":true}\n[\n
type Header struct {
	Version     int  `json:"version"`
	ClickEvents bool `json:"click_events,omitempty"`
	StopSignal  int  `json:"stop_signal,omitempty"`
	ContSignal  int  `json:"cont_signal,omitempty"`
}

// Source reads the StatusSource protocol from a child process's stdout:
// a JSON header line, an opening `[`, then one JSON block-array per line
// (each preceded by a comma except the first), streamed indefinitely.
// Grounded on the teacher's OutputCapture (internal/logging/capture.go):
// a pipe, a goroutine draining it with bufio.Scanner, errors funneled back
// over a channel instead of logged synchronously.
type Source struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	log    *logging.Logger

	updates chan Update
	errs    chan error
	header  Header
}

// NewSource starts cmdline as a child process and begins reading its
// stdout as a status-block stream. The caller must call Close when done.
func NewSource(ctx context.Context, cmdline string, log *logging.Logger) (*Source, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", cmdline)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, wmerr.Wrap(wmerr.KindProtocol, err, "status source: stdout pipe")
	}
	if err := cmd.Start(); err != nil {
		return nil, wmerr.Wrap(wmerr.KindProtocol, err, "status source: start %q", cmdline)
	}

	s, err := newSourceFromReader(stdout, log)
	if err != nil {
		return nil, err
	}
	s.cmd = cmd
	return s, nil
}

// newSourceFromReader does the actual header-parse-and-stream work against
// any io.ReadCloser, independent of how it was spawned. Split out from
// NewSource so tests can drive the protocol state machine over an in-memory
// pipe instead of a real child process.
func newSourceFromReader(r io.ReadCloser, log *logging.Logger) (*Source, error) {
	if log == nil {
		log = logging.Nop()
	}
	s := &Source{
		stdout:  r,
		log:     log.With("status"),
		updates: make(chan Update, 4),
		errs:    make(chan error, 1),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !scanner.Scan() {
		return nil, wmerr.New(wmerr.KindProtocol, "status source: no header")
	}
	if err := json.Unmarshal(scanner.Bytes(), &s.header); err != nil {
		return nil, wmerr.Wrap(wmerr.KindParse, err, "status source: parse header")
	}
	if s.header.Version != 1 {
		return nil, wmerr.New(wmerr.KindProtocol, "status source: unsupported protocol version %d", s.header.Version)
	}
	// Consume the opening "[" line, tolerating it being glued to the first
	// block array on some status generators.
	if scanner.Scan() {
		first := strings.TrimSpace(scanner.Text())
		first = strings.TrimPrefix(first, "[")
		if first != "" {
			s.emitLine(first)
		}
	}

	go s.run(scanner)
	return s, nil
}

func (s *Source) run(scanner *bufio.Scanner) {
	for scanner.Scan() {
		s.emitLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		select {
		case s.errs <- wmerr.Wrap(wmerr.KindProtocol, err, "status source: read"):
		default:
		}
	}
	close(s.updates)
}

func (s *Source) emitLine(line string) {
	line = strings.TrimPrefix(strings.TrimSpace(line), ",")
	line = strings.TrimSuffix(line, ",")
	if line == "" {
		return
	}
	var blocks []Block
	if err := json.Unmarshal([]byte(line), &blocks); err != nil {
		s.log.Warnf("status source: malformed block line, skipping: %v", err)
		return
	}
	s.updates <- Update{Blocks: blocks}
}

// Updates returns the channel of parsed block-sequence updates. It is
// closed when the underlying process's stdout reaches EOF.
func (s *Source) Updates() <-chan Update { return s.updates }

// Errs returns the channel of protocol-level read errors, at most one of
// which is ever sent before Updates closes.
func (s *Source) Errs() <-chan error { return s.errs }

// Header returns the parsed protocol header the source announced at
// startup.
func (s *Source) Header() Header { return s.header }

// Suspend signals the status generator to pause output (the
// EventDispatcher calls this on a visibility-change event that hides the
// bar, spec.md §4.5's "suspend/resume status producer"), using the
// header-declared stop_signal if the generator asked for one, else
// SIGSTOP.
func (s *Source) Suspend() error {
	if s.cmd == nil || s.cmd.Process == nil {
		return nil
	}
	sig := syscall.SIGSTOP
	if s.header.StopSignal != 0 {
		sig = syscall.Signal(s.header.StopSignal)
	}
	return s.cmd.Process.Signal(sig)
}

// Resume reverses Suspend, using cont_signal if declared, else SIGCONT.
func (s *Source) Resume() error {
	if s.cmd == nil || s.cmd.Process == nil {
		return nil
	}
	sig := syscall.SIGCONT
	if s.header.ContSignal != 0 {
		sig = syscall.Signal(s.header.ContSignal)
	}
	return s.cmd.Process.Signal(sig)
}

// Close terminates the child process (if any) and releases its stdout
// pipe.
func (s *Source) Close() error {
	_ = s.stdout.Close()
	if s.cmd == nil {
		return nil
	}
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	return s.cmd.Wait()
}
