package parser

import (
	"github.com/zx0go/zx0/internal/matchfind"
	"github.com/zx0go/zx0/internal/wordcmp"
)

const pairChainSize = 65536
const passBCacheSize = 2048

// pairChain is the classic intrusive linked list over indices (spec §9,
// "linked lists over arenas"): a 65536-entry head table keyed by a
// position's two-byte prefix, plus a per-position next pointer, forming one
// chain per distinct two-byte prefix across the whole window.
type pairChain struct {
	head []int32
	next []int32
}

func newPairChain(windowCap int) *pairChain {
	return &pairChain{
		head: make([]int32, pairChainSize),
		next: make([]int32, windowCap),
	}
}

func pairKey(window []byte, pos int) int {
	return int(window[pos])<<8 | int(window[pos+1])
}

// build indexes every position in [0, end) with a two-byte prefix.
func (c *pairChain) build(window []byte, end int) {
	for i := range c.head {
		c.head[i] = -1
	}
	for pos := 0; pos+1 < end; pos++ {
		key := pairKey(window, pos)
		c.next[pos] = c.head[key]
		c.head[key] = int32(pos)
	}
	if end > 0 {
		c.next[end-1] = -1
	}
}

// offsetPresent reports whether offset is already covered by an existing
// match entry at this position, either as a primary offset or via a
// synonym (offset-1 .. offset-depth).
func offsetPresent(slots []matchfind.Match, offset int) bool {
	for _, m := range slots {
		if m.Length == 0 {
			break
		}
		lo := int(m.Offset) - m.SynonymCount()
		if offset <= int(m.Offset) && offset >= lo {
			return true
		}
	}
	return false
}

// findEntryForOffset returns the index of the slot entry whose offset
// range covers offset, if any.
func findEntryForOffset(slots []matchfind.Match, offset int) (int, bool) {
	for i, m := range slots {
		if m.Length == 0 {
			break
		}
		lo := int(m.Offset) - m.SynonymCount()
		if offset <= int(m.Offset) && offset >= lo {
			return i, true
		}
	}
	return 0, false
}

// insertMatchSorted inserts m into slots (ascending by Offset), shifting
// later entries down by one and dropping the tail if the table is already
// full. Reports whether the insertion landed inside the table (false means
// the table was already full of entries with Offset <= m.Offset, so m was
// dropped).
func insertMatchSorted(slots []matchfind.Match, m matchfind.Match) bool {
	n := len(slots)
	if slots[n-1].Length != 0 && slots[n-1].Offset < m.Offset {
		return false
	}
	i := 0
	for i < n && slots[i].Length != 0 && slots[i].Offset < m.Offset {
		i++
	}
	copy(slots[i+1:], slots[i:n-1])
	slots[i] = m
	return true
}

func filledCount(slots []matchfind.Match) int {
	for i, m := range slots {
		if m.Length == 0 {
			return i
		}
	}
	return len(slots)
}

func bestLength(slots []matchfind.Match) int {
	best := 0
	for _, m := range slots {
		if m.Length == 0 {
			break
		}
		if m.Len() > best {
			best = m.Len()
		}
	}
	return best
}

// supplementPassA adds short matches the match-finder's own search missed,
// for any position whose list has fewer than passAMaxFilled entries (spec
// §4.3, "pass A").
func (ctx *Context) supplementPassA(start, end int) {
	window := ctx.window
	for pos := start; pos < end; pos++ {
		slots := ctx.matchTable.At(pos)
		if filledCount(slots) >= passAMaxFilled {
			continue
		}
		inserted := 0
		current := ctx.chain.next[pos]
		for current >= 0 && inserted < passAMaxInsertions {
			c := int(current)
			if c >= pos {
				current = ctx.chain.next[c]
				continue
			}
			offset := pos - c
			if offset < MinOffset || offset > ctx.maxOffset {
				current = ctx.chain.next[c]
				continue
			}
			if offsetPresent(slots, offset) {
				current = ctx.chain.next[c]
				continue
			}
			cap := passACap
			if rem := ctx.end - pos; rem < cap {
				cap = rem
			}
			length := wordcmp.ExtendMatch(window[pos:ctx.end], window[c:ctx.end], cap)
			if length >= 2 {
				m := matchfind.Match{
					Offset: uint32(offset),
					Length: uint16(length),
					Depth:  matchfind.DepthSupplemented,
				}
				if !insertMatchSorted(slots, m) {
					break
				}
				inserted++
			}
			current = ctx.chain.next[c]
		}
	}
}

// supplementPassB targets positions whose best known match is still short,
// verifying a cheap extension probe before paying for the full comparison,
// and immediately forward-rep-injecting every match it accepts (spec §4.3,
// "pass B").
func (ctx *Context) supplementPassB(arrivals *ArrivalTable, start, end int) {
	window := ctx.window
	var cache [passBCacheSize]int

	for pos := start; pos < end; pos++ {
		slots := ctx.matchTable.At(pos)
		if bestLength(slots) >= passBMinLength {
			continue
		}

		for _, m := range slots {
			if m.Length == 0 {
				break
			}
			syn := m.SynonymCount()
			for d := 0; d <= syn; d++ {
				off := int(m.Offset) - d
				if off >= MinOffset {
					cache[off%passBCacheSize] = pos + 1 // +1: 0 means "unmarked"
				}
			}
		}

		inserted := 0
		current := ctx.chain.next[pos]
		for current >= 0 && inserted < passBMaxInsertions {
			c := int(current)
			if c >= pos {
				current = ctx.chain.next[c]
				continue
			}
			offset := pos - c
			if offset < MinOffset || offset > ctx.maxOffset {
				current = ctx.chain.next[c]
				continue
			}

			if cache[offset%passBCacheSize] == pos+1 {
				if idx, ok := findEntryForOffset(slots, offset); ok && slots[idx].Supplemented() {
					cap := MaxVarLen
					if rem := ctx.end - pos; rem < cap {
						cap = rem
					}
					length := wordcmp.ExtendMatch(window[pos:ctx.end], window[c:ctx.end], cap)
					if length > slots[idx].Len() {
						approx := slots[idx].Approximate()
						nl := uint16(length)
						if approx {
							nl |= matchfind.LengthApproximate
						}
						slots[idx].Length = nl
					}
				}
				current = ctx.chain.next[c]
				continue
			}

			viable := false
			for p := 2; p <= 5; p++ {
				if pos+p < ctx.end && c+p < ctx.end && window[pos+p] == window[c+p] {
					viable = true
					break
				}
			}
			if !viable {
				current = ctx.chain.next[c]
				continue
			}

			cap := MaxVarLen
			if rem := ctx.end - pos; rem < cap {
				cap = rem
			}
			length := wordcmp.ExtendMatch(window[pos:ctx.end], window[c:ctx.end], cap)
			if length >= 2 {
				m := matchfind.Match{Offset: uint32(offset), Length: uint16(length)}
				if !insertMatchSorted(slots, m) {
					break
				}
				inserted++
				ctx.forwardRepInject(arrivals, offset, pos, forwardRepSupplementDepth)
			}
			current = ctx.chain.next[c]
		}
	}
}
