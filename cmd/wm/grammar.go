package main

// Command grammar: turns one raw command-batch string — as received over
// internal/ipc's run_command request, or read from a key-binding table —
// into the []command.Command slice internal/command.Interpreter.ExecuteBatch
// expects. internal/command's own doc comment is explicit that grammar
// parsing is out of scope for that package ("Accepts a parsed command AST
// ... callers ... are responsible for producing these from raw text"), so
// this is that caller. Grounded directly on the command table spec.md
// §4.3 lists — no teacher or pack repository implements a command-line
// DSL like this one, so there is no file to adapt here; the retrieved
// original sources (commands.c, xcb.c) cover command *execution*, not the
// lexer/parser that reads config-file command strings, which the
// distillation's pack never retrieved.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/wm/internal/command"
	"github.com/bnema/wm/internal/match"
	"github.com/bnema/wm/internal/tree"
)

// outputResolver looks up a named output, returning the output container
// itself and one of its visible workspaces (for `move workspace to output`,
// spec.md §4.3). It closes over the live *tree.Tree at wiring time.
type outputResolver func(name string) (output, visibleWorkspace *tree.Container)

// parseBatch splits raw on top-level `;` and parses each segment into one
// command.Command. An unrecognized verb or malformed criteria block is a
// parse error, surfaced by the caller as Reply{Success:false,
// ParseError:true} (internal/ipc's runCommand does exactly this for the
// CommandParser it is handed).
func parseBatch(raw string, resolveOutput outputResolver) ([]command.Command, error) {
	var out []command.Command
	for _, part := range splitTopLevel(raw, ';') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		cmd, err := parseOne(part, resolveOutput)
		if err != nil {
			return nil, err
		}
		out = append(out, cmd)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return out, nil
}

// splitTopLevel splits s on sep, ignoring any sep found inside a
// `[...]` criteria block.
func splitTopLevel(s string, sep rune) []string {
	var out []string
	depth := 0
	var cur strings.Builder
	for _, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		}
		if r == sep && depth == 0 {
			out = append(out, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	out = append(out, cur.String())
	return out
}

func parseOne(s string, resolveOutput outputResolver) (command.Command, error) {
	s = strings.TrimSpace(s)

	var crit match.Criteria
	if strings.HasPrefix(s, "[") {
		end := strings.Index(s, "]")
		if end < 0 {
			return command.Command{}, fmt.Errorf("unterminated criteria block: %s", s)
		}
		var err error
		crit, err = parseCriteria(s[1:end])
		if err != nil {
			return command.Command{}, err
		}
		s = strings.TrimSpace(s[end+1:])
	}

	fields := strings.Fields(s)
	if len(fields) == 0 {
		return command.Command{}, fmt.Errorf("missing command verb")
	}
	verb, rest := fields[0], fields[1:]
	cmd := command.Command{Criteria: crit, Args: map[string]any{}}

	switch verb {
	case "focus":
		cmd.Verb = command.VerbFocus
		if len(rest) > 0 {
			switch rest[0] {
			case "parent", "child", "mode_toggle":
				cmd.Args["target"] = rest[0]
			default:
				if d, ok := parseDirection(rest[0]); ok {
					cmd.Args["direction"] = d
				}
			}
		}

	case "move":
		switch {
		case len(rest) >= 3 && rest[0] == "to" && rest[1] == "workspace":
			cmd.Verb = command.VerbMoveWorkspace
			cmd.Args["workspace"] = strings.Join(rest[2:], " ")
		case len(rest) >= 4 && rest[0] == "workspace" && rest[1] == "to" && rest[2] == "output":
			cmd.Verb = command.VerbMoveOutput
			if resolveOutput == nil {
				return command.Command{}, fmt.Errorf("move workspace to output: no output resolver wired")
			}
			target, visible := resolveOutput(rest[3])
			cmd.Args["output"] = target
			cmd.Args["visible_workspace"] = visible
		case len(rest) >= 1:
			cmd.Verb = command.VerbMove
			if d, ok := parseDirection(rest[0]); ok {
				cmd.Args["direction"] = d
			}
			if len(rest) >= 2 {
				if px, err := strconv.Atoi(rest[1]); err == nil {
					cmd.Args["px"] = px
				}
			}
		default:
			return command.Command{}, fmt.Errorf("move: missing argument")
		}

	case "resize":
		cmd.Verb = command.VerbResize
		if len(rest) < 1 {
			return command.Command{}, fmt.Errorf("resize: missing grow/shrink")
		}
		cmd.Args["mode"] = rest[0]
		idx := 1
		if idx < len(rest) {
			if d, ok := parseDirection(rest[idx]); ok {
				cmd.Args["direction"] = d
			}
			idx++ // also consumes the width/height keyword form
		}
		if idx < len(rest) {
			n, suffix := splitNumberSuffix(rest[idx])
			if suffix == "ppt" {
				cmd.Args["ppt"] = n
			} else {
				cmd.Args["px"] = n
			}
		}

	case "split":
		cmd.Verb = command.VerbSplit
		if len(rest) > 0 {
			cmd.Args["orientation"] = rest[0]
		}

	case "layout":
		cmd.Verb = command.VerbLayout
		switch {
		case len(rest) > 0 && rest[0] == "toggle":
			cmd.Args["toggle"] = true
			if len(rest) > 1 {
				cmd.Args["toggle_scope"] = rest[1]
			}
		case len(rest) > 0:
			cmd.Args["layout"] = rest[0]
		default:
			return command.Command{}, fmt.Errorf("layout: missing argument")
		}

	case "floating":
		cmd.Verb = command.VerbFloating
		if len(rest) == 0 {
			return command.Command{}, fmt.Errorf("floating: missing enable/disable/toggle")
		}
		cmd.Args["mode"] = rest[0]

	case "border":
		cmd.Verb = command.VerbBorder
		if len(rest) == 0 {
			return command.Command{}, fmt.Errorf("border: missing mode")
		}
		cmd.Args["mode"] = rest[0]
		if len(rest) > 1 {
			if n, err := strconv.Atoi(rest[1]); err == nil {
				cmd.Args["width"] = n
			}
		}

	case "mark":
		cmd.Verb = command.VerbMark
		for _, f := range rest {
			if f == "--toggle" {
				cmd.Args["toggle"] = true
				continue
			}
			cmd.Args["identifier"] = f
		}

	case "unmark":
		cmd.Verb = command.VerbUnmark
		if len(rest) > 0 {
			cmd.Args["identifier"] = rest[0]
		}

	case "kill":
		cmd.Verb = command.VerbKill

	case "fullscreen":
		cmd.Verb = command.VerbFullscreen
		if len(rest) > 0 {
			cmd.Args["mode"] = rest[0]
		}
		for _, f := range rest {
			if f == "global" {
				cmd.Args["global"] = true
			}
		}

	case "workspace":
		cmd.Verb = command.VerbWorkspace
		if len(rest) == 0 {
			return command.Command{}, fmt.Errorf("workspace: missing selector")
		}
		cmd.Args["selector"] = rest[0]
		cmd.Args["name"] = strings.Join(rest, " ")

	case "rename":
		if len(rest) < 2 || rest[0] != "workspace" {
			return command.Command{}, fmt.Errorf("rename: unrecognized form, expected \"rename workspace [old] to new\"")
		}
		cmd.Verb = command.VerbRenameWS
		toIdx := indexOf(rest, "to")
		if toIdx <= 0 || toIdx == len(rest)-1 {
			return command.Command{}, fmt.Errorf("rename workspace: missing \"to <new name>\"")
		}
		if toIdx == 1 {
			cmd.Args["old_name"] = "" // rename workspace to <new> — current workspace implied
		} else {
			cmd.Args["old_name"] = strings.Join(rest[1:toIdx], " ")
		}
		cmd.Args["new_name"] = strings.Join(rest[toIdx+1:], " ")

	case "append_layout":
		if len(rest) == 0 {
			return command.Command{}, fmt.Errorf("append_layout: missing layout path or document")
		}
		cmd.Verb = command.VerbAppendLayout
		cmd.Args["json"] = strings.Join(rest, " ")

	case "title_format":
		cmd.Verb = command.VerbTitleFormat
		cmd.Args["format"] = strings.Join(rest, " ")

	case "gaps":
		cmd.Verb = command.VerbGaps
		if len(rest) < 4 {
			return command.Command{}, fmt.Errorf("gaps: expected \"inner|outer current|all set|plus|minus <px>\"")
		}
		cmd.Args["dimension"] = rest[0]
		cmd.Args["scope"] = rest[1]
		cmd.Args["op"] = rest[2]
		n, err := strconv.Atoi(rest[3])
		if err != nil {
			return command.Command{}, fmt.Errorf("gaps: invalid pixel amount %q", rest[3])
		}
		cmd.Args["px"] = n

	case "exec":
		cmd.Verb = command.VerbExec
		noStartup := false
		if len(rest) > 0 && rest[0] == "--no-startup-id" {
			noStartup = true
			rest = rest[1:]
		}
		cmd.Args["no_startup_id"] = noStartup
		cmd.Args["cmdline"] = strings.Join(rest, " ")

	case "mode":
		cmd.Verb = command.VerbMode
		if len(rest) == 0 {
			return command.Command{}, fmt.Errorf("mode: missing name")
		}
		cmd.Args["name"] = strings.Join(rest, " ")

	case "bar":
		cmd.Verb = command.VerbBar
		if len(rest) == 0 {
			return command.Command{}, fmt.Errorf("bar: missing key")
		}
		cmd.Args["key"] = rest[0]
		if len(rest) > 1 {
			cmd.Args["value"] = rest[1]
		}
		if len(rest) > 2 {
			cmd.Args["bar_id"] = rest[2]
		}

	case "reload":
		cmd.Verb = command.VerbReload
	case "restart":
		cmd.Verb = command.VerbRestart
	case "exit":
		cmd.Verb = command.VerbExit

	default:
		return command.Command{}, fmt.Errorf("unrecognized command %q", verb)
	}

	return cmd, nil
}

func indexOf(ss []string, v string) int {
	for i, s := range ss {
		if s == v {
			return i
		}
	}
	return -1
}

func parseDirection(s string) (tree.Direction, bool) {
	switch s {
	case "left":
		return tree.DirLeft, true
	case "right":
		return tree.DirRight, true
	case "up":
		return tree.DirUp, true
	case "down":
		return tree.DirDown, true
	default:
		return 0, false
	}
}

// splitNumberSuffix pulls the optional "px"/"ppt" unit suffix spec.md
// §4.3's resize row allows off a numeric token.
func splitNumberSuffix(s string) (int, string) {
	numPart := s
	suffix := ""
	switch {
	case strings.HasSuffix(s, "ppt"):
		suffix = "ppt"
		numPart = strings.TrimSuffix(s, "ppt")
	case strings.HasSuffix(s, "px"):
		numPart = strings.TrimSuffix(s, "px")
	}
	n, _ := strconv.Atoi(numPart)
	return n, suffix
}

// parseCriteria parses the space-separated `key=value` (or
// `key="quoted value"`) clauses of a `[...]` criteria block.
func parseCriteria(s string) (match.Criteria, error) {
	var c match.Criteria
	for _, clause := range splitCriteriaClauses(s) {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		kv := strings.SplitN(clause, "=", 2)
		if len(kv) != 2 {
			return c, fmt.Errorf("malformed criteria clause %q", clause)
		}
		key, val := kv[0], strings.Trim(kv[1], `"`)
		switch key {
		case "class":
			c.Class = val
		case "instance":
			c.Instance = val
		case "window_role":
			c.WindowRole = val
		case "title":
			c.Title = val
		case "con_mark":
			c.Mark = val
		case "workspace":
			c.Workspace = val
		case "urgent":
			switch val {
			case "latest":
				c.Urgent = match.UrgentLatest
			case "oldest":
				c.Urgent = match.UrgentOldest
			}
		case "id":
			n, err := strconv.ParseUint(val, 10, 64)
			if err != nil {
				return c, fmt.Errorf("criteria id: %w", err)
			}
			c.WindowID = tree.WindowHandle(n)
			c.HasWindowID = true
		case "con_id":
			n, err := strconv.ParseUint(val, 10, 64)
			if err != nil {
				return c, fmt.Errorf("criteria con_id: %w", err)
			}
			c.ContainerID = n
			c.HasConID = true
		default:
			return c, fmt.Errorf("unrecognized criteria key %q", key)
		}
	}
	return c, nil
}

// splitCriteriaClauses splits on spaces outside double quotes, so
// `title="My Title"` survives as one clause.
func splitCriteriaClauses(s string) []string {
	var out []string
	var cur strings.Builder
	inQuotes := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == ' ' && !inQuotes:
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
