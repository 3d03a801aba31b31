// Package command implements the Command Interpreter (spec.md §4.3):
// accepts parsed command ASTs with optional match criteria, resolves
// criteria via internal/match, and applies mutations to the ContainerTree.
package command

import (
	"github.com/bnema/wm/internal/match"
)

// Verb identifies which command table row a Command invokes.
type Verb string

const (
	VerbFocus         Verb = "focus"
	VerbMove          Verb = "move"
	VerbMoveWorkspace Verb = "move_to_workspace"
	VerbMoveOutput    Verb = "move_workspace_to_output"
	VerbResize        Verb = "resize"
	VerbSplit         Verb = "split"
	VerbLayout        Verb = "layout"
	VerbFloating      Verb = "floating"
	VerbBorder        Verb = "border"
	VerbMark          Verb = "mark"
	VerbUnmark        Verb = "unmark"
	VerbKill          Verb = "kill"
	VerbFullscreen    Verb = "fullscreen"
	VerbWorkspace     Verb = "workspace"
	VerbRenameWS      Verb = "rename_workspace"
	VerbAppendLayout  Verb = "append_layout"
	VerbTitleFormat   Verb = "title_format"
	VerbGaps          Verb = "gaps"
	VerbExec          Verb = "exec"
	VerbMode          Verb = "mode"
	VerbBar           Verb = "bar"
	VerbReload        Verb = "reload"
	VerbRestart       Verb = "restart"
	VerbExit          Verb = "exit"
)

// Command is one parsed command, already split out of its batch string.
// Grammar/tokenizing is out of scope (spec.md §4.3: "Accepts a parsed
// command AST"); callers (IPC handler, key-binding dispatcher) are
// responsible for producing these from raw text.
type Command struct {
	Verb     Verb
	Criteria match.Criteria

	// Args carries verb-specific parameters as already-typed Go values
	// (e.g. Direction, int pixel deltas, strings) rather than raw tokens,
	// keeping this package free of any parsing concerns.
	Args map[string]any
}

func (c Command) arg(key string) any { return c.Args[key] }

func (c Command) str(key string) string {
	v, _ := c.Args[key].(string)
	return v
}

func (c Command) boolArg(key string) bool {
	v, _ := c.Args[key].(bool)
	return v
}

func (c Command) intArg(key string) int {
	v, _ := c.Args[key].(int)
	return v
}

// Reply is the per-command JSON-shaped result (spec.md §6: "results are
// returned as JSON objects with {success: bool, error?: string}"), plus
// the SPEC_FULL.md §C supplement distinguishing a grammar-level parse
// failure from a runtime refusal.
type Reply struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	ParseError bool   `json:"parse_error,omitempty"`
}

func ok() Reply                 { return Reply{Success: true} }
func fail(msg string) Reply     { return Reply{Success: false, Error: msg} }
func parseFail(msg string) Reply {
	return Reply{Success: false, Error: msg, ParseError: true}
}
