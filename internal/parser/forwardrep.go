package parser

import (
	"github.com/zx0go/zx0/internal/matchfind"
	"github.com/zx0go/zx0/internal/wordcmp"
)

// extendRepOffset computes the greedy forward extension length of a
// rep-offset match at pos using offset, fast-forwarding past the prefix
// both the candidate and its landing site are already known (via the RLE
// table) to repeat, then falling back to word-at-a-time comparison for
// the remainder (spec §4.5's "fast path that skips the first
// min(rle_len[i], rle_len[i-rep]) bytes").
func (ctx *Context) extendRepOffset(pos, offset int) int {
	maxLen := ctx.end - pos
	if maxLen > LCPMax {
		maxLen = LCPMax
	}
	if maxLen <= 0 {
		return 0
	}
	skip := ctx.rle.At(pos - offset)
	if s := ctx.rle.At(pos); s < skip {
		skip = s
	}
	if skip > maxLen {
		skip = maxLen
	}
	return skip + wordcmp.ExtendMatch(ctx.window[pos+skip:ctx.end], ctx.window[pos+skip-offset:ctx.end], maxLen-skip)
}

// forwardRepDepthLimit is the recursion ceiling forward-rep injection never
// exceeds, regardless of the depth its caller started at (0 from the
// optimal parser's own non-rep match transition, forwardRepSupplementDepth
// from match supplementation pass B).
const forwardRepDepthLimit = forwardRepMaxDepth

// forwardRepInject proactively projects offset forward to every position
// reachable via a rep-offset currently carried by an arrival at pos,
// materialising the projected match into the match table so the parser can
// reconsider it as a concrete rep-match at the landing site (spec §4.6).
func (ctx *Context) forwardRepInject(arrivals *ArrivalTable, offset, pos, startDepth int) {
	ctx.forwardRepInjectAt(arrivals, offset, pos, startDepth)
}

func (ctx *Context) forwardRepInjectAt(arrivals *ArrivalTable, offset, pos, depth int) {
	if pos < 0 || pos >= arrivals.numRows() {
		return
	}
	row := arrivals.Row(pos)
	if row[0].empty() {
		return
	}
	for slot := range row {
		a := &row[slot]
		if a.empty() {
			break // arrivals are dense from slot 0 (invariant, spec §3)
		}
		if a.NumLiterals == 0 {
			continue
		}
		r := a.RepOffset
		if r == 0 || r == offset {
			continue
		}
		repPos := a.RepPos
		if repPos < 0 || repPos+1 >= ctx.end {
			continue
		}

		ve := &ctx.visited[repPos]
		if ve.Outer == uint32(offset) {
			continue
		}
		ve.Outer = uint32(offset)

		if ve.Inner == uint32(offset) || repPos < offset {
			continue
		}
		slots := ctx.matchTable.At(repPos)
		if slots[len(slots)-1].Length != 0 {
			continue // target position's slot list is already full
		}
		if ctx.window[repPos] != ctx.window[repPos-offset] {
			continue
		}
		ve.Inner = uint32(offset)

		length := ctx.extendRepOffset(repPos, offset)
		if length < 2 {
			continue
		}

		if idx, ok := findExactOffset(slots, offset); ok {
			if length > slots[idx].Len() && slots[idx].SynonymCount() == 0 {
				slots[idx].Length = uint16(length)
				slots[idx].Depth = 0
			}
			continue
		}

		insertMatchSorted(slots, matchfind.Match{Offset: uint32(offset), Length: uint16(length)})
		if depth < forwardRepDepthLimit {
			ctx.forwardRepInjectAt(arrivals, offset, repPos, depth+1)
		}
	}
}

// findExactOffset returns the index of the slot whose primary Offset
// equals offset exactly (not merely within its synonym range).
func findExactOffset(slots []matchfind.Match, offset int) (int, bool) {
	for i, m := range slots {
		if m.Length == 0 {
			break
		}
		if int(m.Offset) == offset {
			return i, true
		}
	}
	return 0, false
}

func (t *ArrivalTable) numRows() int {
	if t.width == 0 {
		return 0
	}
	return len(t.entries) / t.width
}
