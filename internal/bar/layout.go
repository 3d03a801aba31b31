package bar

import (
	"github.com/bnema/wm/internal/backend"
	"github.com/bnema/wm/internal/status"
)

// blockTextPadding is the fixed per-block padding added around the
// measured text width before min_width/align is applied (spec.md §4.6
// step 1: "pad by 2px + border_left + border_right").
const blockTextPadding = 2

// ComputeLayout runs the deterministic status-line layout algorithm
// (spec.md §4.6 steps 1-4) over blocks, filling each block's
// ComputedWidth/ComputedOffsetX and returning the total pixmap width the
// line needs. separatorBlockWidth is appended between blocks (not after
// the last one).
//
// Worked example (spec.md §8 scenario 6): three blocks "foo"(30),
// "barbaz"(50, min_width 80, align center), "q"(10), separator width 9 ⇒
// total 138, with the centered block's text offset by 15px on each side.
func ComputeLayout(blocks []status.Block, metrics backend.TextMetrics, separatorBlockWidth int) (total int, out []status.Block) {
	out = make([]status.Block, len(blocks))
	copy(out, blocks)

	for i := range out {
		b := &out[i]
		textWidth := metrics.TextWidth(b.FullText)
		padded := textWidth + blockTextPadding + b.BorderLeft + b.BorderRight

		width := padded
		offset := 0
		if b.MinWidth > width {
			extra := b.MinWidth - width
			switch b.Align() {
			case status.AlignRight:
				offset = extra
			case status.AlignCenter:
				offset = extra / 2
			case status.AlignLeft:
				// all slack goes after the text; offset stays 0.
			}
			width = b.MinWidth
		}

		b.ComputedWidth = width
		b.ComputedOffsetX = offset

		total += width
		if i < len(out)-1 {
			total += separatorBlockWidth
		}
	}
	return total, out
}
