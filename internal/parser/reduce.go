package parser

// reduce runs the four idempotent local rewrites the optimal parser's
// arrival-table optimum cannot express on its own — each one strictly
// local (a match and its immediate neighbours), each one only ever
// shrinking the final bitstream — to a fixed point, or reduceMaxIterations
// sweeps, whichever comes first (spec §4.7 "Reduce pass").
//
// best holds one BestMatch per position of [blockStart, blockEnd), indexed
// from 0 (i.e. best[i] describes position blockStart+i). repOffset is the
// rep-offset carried into the block.
func (ctx *Context) reduce(best []BestMatch, blockStart, blockEnd, repOffset int, flags BlockFlags) {
	for iter := 0; iter < reduceMaxIterations; iter++ {
		if !ctx.reduceSweep(best, blockStart, blockEnd, repOffset, flags) {
			return
		}
	}
}

// reduceSweep performs one left-to-right pass applying whichever rewrite
// fires first at each position, and reports whether anything changed.
func (ctx *Context) reduceSweep(best []BestMatch, blockStart, blockEnd, repOffset int, flags BlockFlags) bool {
	window := ctx.window
	changed := false
	rep := repOffset
	i := blockStart
	if flags.isFirst() && i < blockEnd {
		i++
	}

	for i < blockEnd {
		idx := i - blockStart
		m := best[idx]

		if m.Length == 0 {
			if ctx.tryGrowIntoFollowingLiteral(best, window, blockStart, blockEnd, i, rep) {
				changed = true
				continue
			}
			i++
			continue
		}
		if m.Length == absorbed {
			i++
			continue
		}

		if m.Length < 9 && ctx.tryReplaceWithLiterals(best, blockStart, blockEnd, i, rep) {
			changed = true
			continue
		}

		if ctx.tryReassignOffset(best, window, blockStart, blockEnd, i, rep) {
			changed = true
		}

		if ctx.tryMergeAdjacent(best, window, blockStart, blockEnd, i) {
			changed = true
			continue
		}

		rep = best[idx].Offset
		i += best[idx].Length
	}
	return changed
}

// tryGrowIntoFollowingLiteral implements the "grow-1" rewrite: a literal
// immediately followed by a match can sometimes be absorbed as one extra
// byte of match length, when doing so doesn't grow the length's gamma
// encoding by more than a byte.
func (ctx *Context) tryGrowIntoFollowingLiteral(best []BestMatch, window []byte, blockStart, blockEnd, i, rep int) bool {
	idx := i - blockStart
	if best[idx].Length != 0 {
		return false
	}
	if i+1 >= blockEnd {
		return false
	}
	next := best[idx+1]
	if next.Length < 2 || next.Length >= MaxVarLen || next.Offset == 0 {
		return false
	}
	if i < next.Offset || i+next.Length+1 > blockEnd {
		return false
	}
	if !bytesEqual(window, i-next.Offset, i, next.Length+1) {
		return false
	}

	var curCost, growCost int
	if rep != 0 && next.Offset == rep {
		curCost = repMatchLengthCost(next.Length)
		growCost = repMatchLengthCost(next.Length + 1)
	} else {
		curCost = nonRepMatchLengthCost(next.Length)
		growCost = nonRepMatchLengthCost(next.Length + 1)
	}
	if growCost-curCost > 8 {
		return false
	}

	best[idx] = BestMatch{Length: next.Length + 1, Offset: next.Offset}
	best[idx+1] = BestMatch{Length: absorbed}
	return true
}

// tryReplaceWithLiterals implements the match-to-literals rewrite: a short
// match sandwiched between a preceding literal run and a following match is
// sometimes cheaper to spell out as literals, letting the following match
// potentially pick up a rep-offset it otherwise wouldn't have.
func (ctx *Context) tryReplaceWithLiterals(best []BestMatch, blockStart, blockEnd, i, rep int) bool {
	idx := i - blockStart
	m := best[idx]
	if i+m.Length >= blockEnd {
		return false
	}
	followsLiteral := idx > 0 && best[idx-1].Length == 0
	if !followsLiteral {
		return false
	}

	next, _, nextLiterals := nextCommand(best, blockStart, blockEnd, i+m.Length)
	if next == nil {
		return false
	}

	curSize := matchTokenCost
	if rep != 0 && m.Offset == rep {
		curSize += repMatchLengthCost(m.Length)
	} else {
		curSize += offsetCost(m.Offset) + nonRepMatchLengthCost(m.Length)
	}

	nextSize := matchTokenCost
	if m.Offset != 0 && next.Offset == m.Offset {
		nextSize += repMatchLengthCost(next.Length)
	} else {
		nextSize += offsetCost(next.Offset) + nonRepMatchLengthCost(next.Length)
	}

	reducedSize := m.Length * 8
	totalLiterals := m.Length + nextLiterals
	reducedSize += bitGammaRunCost(totalLiterals)
	if rep != 0 && next.Offset == rep {
		reducedSize += repMatchLengthCost(next.Length)
	} else {
		reducedSize += offsetCost(next.Offset) + nonRepMatchLengthCost(next.Length)
	}
	reducedSize += matchTokenCost

	if curSize+nextSize < reducedSize {
		return false
	}

	for j := 0; j < m.Length; j++ {
		if idx+j < len(best) {
			best[idx+j] = BestMatch{}
		}
	}
	return true
}

// tryReassignOffset implements the offset-reassignment rewrite: when the
// current rep-offset, or else the offset of a following match that comes
// after literals, reproduces the same bytes as this match's offset, the
// match is reassigned to it. No bit costs are compared.
func (ctx *Context) tryReassignOffset(best []BestMatch, window []byte, blockStart, blockEnd, i, rep int) bool {
	idx := i - blockStart
	m := best[idx]
	if m.Length < 2 || i+m.Length > blockEnd {
		return false
	}

	if rep != 0 && m.Offset != rep && i >= rep &&
		i-rep+m.Length <= blockEnd &&
		bytesEqual(window, i-rep, i-m.Offset, m.Length) {
		best[idx].Offset = rep
		return true
	}

	if i+m.Length < blockEnd {
		followOn, _, hasLiterals := nextCommand(best, blockStart, blockEnd, i+m.Length)
		if followOn != nil && hasLiterals > 0 && followOn.Offset != 0 &&
			followOn.Offset != m.Offset && followOn.Offset != rep &&
			i >= followOn.Offset && i-followOn.Offset+m.Length <= blockEnd &&
			bytesEqual(window, i-followOn.Offset, i-m.Offset, m.Length) {
			best[idx].Offset = followOn.Offset
			return true
		}
	}
	return false
}

// tryMergeAdjacent implements the adjacent-merge rewrite: two back-to-back
// matches whose combined length clears LeaveAloneMatchSize, and whose
// second half is byte-reproducible at the first's offset, merge into one
// match token.
func (ctx *Context) tryMergeAdjacent(best []BestMatch, window []byte, blockStart, blockEnd, i int) bool {
	idx := i - blockStart
	m := best[idx]
	if m.Offset == 0 || m.Length < 2 || i+m.Length > blockEnd {
		return false
	}
	nextIdx := idx + m.Length
	if i+m.Length >= blockEnd {
		return false
	}
	next := best[nextIdx]
	if next.Offset == 0 || next.Length < 2 {
		return false
	}
	combined := m.Length + next.Length
	if combined < LeaveAloneMatchSize || combined > MaxVarLen {
		return false
	}
	if i+m.Length <= m.Offset || i+m.Length <= next.Offset {
		return false
	}
	if i+combined > blockEnd {
		return false
	}
	if !bytesEqual(window, i-m.Offset+m.Length, i+m.Length-next.Offset, next.Length) {
		return false
	}

	best[idx] = BestMatch{Length: combined, Offset: m.Offset}
	best[nextIdx] = BestMatch{Length: absorbed}
	return true
}

// nextCommand scans forward from pos for the next non-empty, non-absorbed
// command, returning it along with the number of literal bytes skipped to
// reach it.
func nextCommand(best []BestMatch, blockStart, blockEnd, pos int) (*BestMatch, int, int) {
	literals := 0
	idx := pos - blockStart
	for idx < len(best) && blockStart+idx < blockEnd {
		if best[idx].Length == absorbed {
			idx++
			continue
		}
		if best[idx].Length == 0 {
			literals++
			idx++
			continue
		}
		return &best[idx], idx, literals
	}
	return nil, -1, literals
}

func bytesEqual(window []byte, a, b, n int) bool {
	if a < 0 || b < 0 || a+n > len(window) || b+n > len(window) {
		return false
	}
	for k := 0; k < n; k++ {
		if window[a+k] != window[b+k] {
			return false
		}
	}
	return true
}

// bitGammaRunCost is literalRunHeaderCost without the leading token bit
// (the reducer's size comparisons account for that bit separately via
// matchTokenCost bookkeeping at the call site), plus n*8 bits for the
// literal bytes themselves.
func bitGammaRunCost(n int) int {
	if n == 0 {
		return 0
	}
	return literalRunHeaderCost(n) - 1 + n*8
}
