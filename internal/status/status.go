// Package status implements the StatusSource capability (spec.md §1/§6):
// the status-generation child process and the JSON status-block protocol
// that feeds the bar. It owns no rendering; it only parses the protocol
// into the Block records the bar core consumes.
package status

import (
	"time"
)

// Align is a status block's text alignment within its padded width
// (spec.md §4.6 step 2).
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

func ParseAlign(s string) Align {
	switch s {
	case "right":
		return AlignRight
	case "center":
		return AlignCenter
	default:
		return AlignLeft
	}
}

// Block is the Status block record (spec.md §3): "immutable-per-refresh
// record carrying full_text, short_text, name, instance, color,
// background, border (+ per-side widths), min_width, align, separator
// flag, separator_block_width, urgent, computed width, computed offsets."
//
// The Computed* fields are filled in by internal/bar's layout algorithm,
// not by this package — a freshly-parsed Block always has them zeroed.
type Block struct {
	FullText            string `json:"full_text"`
	ShortText           string `json:"short_text,omitempty"`
	Name                string `json:"name,omitempty"`
	Instance            string `json:"instance,omitempty"`
	Color               string `json:"color,omitempty"`
	Background          string `json:"background,omitempty"`
	Border              string `json:"border,omitempty"`
	BorderTop           int    `json:"border_top,omitempty"`
	BorderRight         int    `json:"border_right,omitempty"`
	BorderBottom        int    `json:"border_bottom,omitempty"`
	BorderLeft          int    `json:"border_left,omitempty"`
	MinWidth            int    `json:"min_width,omitempty"`
	AlignRaw            string `json:"align,omitempty"`
	Separator           *bool  `json:"separator,omitempty"`
	SeparatorBlockWidth int    `json:"separator_block_width,omitempty"`
	Urgent              bool   `json:"urgent,omitempty"`

	// ComputedWidth and ComputedOffsetX are filled by internal/bar's
	// layout algorithm once the block is measured against a TextMetrics.
	ComputedWidth   int `json:"-"`
	ComputedOffsetX int `json:"-"`
}

// Align resolves the block's alignment, defaulting to Left when unset.
func (b Block) Align() Align { return ParseAlign(b.AlignRaw) }

// HasSeparator reports whether this block draws a separator after it,
// defaulting to true (spec.md §4.6's drawing order treats separators as
// the common case; a block opts out with `"separator": false`).
func (b Block) HasSeparator() bool {
	return b.Separator == nil || *b.Separator
}

// Update is a single parsed refresh from the status source: a full
// ordered block sequence, timestamped at receipt.
type Update struct {
	Blocks    []Block
	Timestamp time.Time
}
