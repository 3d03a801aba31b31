package match

import (
	"github.com/sahilm/fuzzy"

	"github.com/bnema/wm/internal/tree"
)

// commandNames is the full set of command verbs the interpreter recognizes
// (spec.md §4.3's table), used to offer a correction when a ParseError is
// raised over an unrecognized command name.
var commandNames = []string{
	"exec", "focus", "move", "split", "layout", "resize", "fullscreen",
	"floating", "border", "kill", "workspace", "rename", "append_layout",
	"title_format", "gaps", "mark", "unmark", "mode", "bar", "reload",
	"restart", "exit",
}

const maxSuggestions = 3

// SuggestCommand returns up to maxSuggestions command names fuzzily close to
// an unrecognized input token, ranked by sahilm/fuzzy's match score,
// highest first. Used to shape the `parse_error` message (SPEC_FULL.md §C)
// into "did you mean: <a>, <b>?" rather than a bare rejection.
func SuggestCommand(input string) []string {
	return suggestFrom(input, commandNames)
}

// SuggestWorkspace returns up to maxSuggestions existing workspace names
// fuzzily close to a partially-typed `workspace` selector, for completion
// in wmctl and for a friendlier error when a `workspace <name>` doesn't
// exist yet (as opposed to silently creating one, when the caller wants to
// warn first).
func SuggestWorkspace(t *tree.Tree, input string) []string {
	names := make([]string, 0, len(t.Workspaces()))
	for _, ws := range t.Workspaces() {
		names = append(names, ws.WorkspaceName)
	}
	return suggestFrom(input, names)
}

func suggestFrom(input string, candidates []string) []string {
	if input == "" || len(candidates) == 0 {
		return nil
	}
	matches := fuzzy.Find(input, candidates)
	out := make([]string, 0, maxSuggestions)
	for i, m := range matches {
		if i >= maxSuggestions {
			break
		}
		out = append(out, candidates[m.Index])
	}
	return out
}
