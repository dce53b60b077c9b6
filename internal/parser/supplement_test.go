package parser

import (
	"testing"

	"github.com/zx0go/zx0/internal/matchfind"
)

func newTestContextForSupplement(t *testing.T, window []byte) *Context {
	t.Helper()
	ctx, err := NewContext(Options{BlockSize: 1024, Arrivals: 16, MatchAttempts: 16})
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	ctx.window = window
	ctx.end = len(window)
	ctx.matchTable.Reset()
	ctx.chain.build(window, len(window))
	ctx.rle.Build(window, 0, len(window))
	return ctx
}

func TestPairChainLinksMatchingTwoBytePrefixes(t *testing.T) {
	window := []byte("abXYabZZab")
	c := newPairChain(len(window))
	c.build(window, len(window))

	key := pairKey(window, 0) // "ab"
	var positions []int
	for cur := c.head[key]; cur >= 0; cur = c.next[cur] {
		positions = append(positions, int(cur))
	}
	want := map[int]bool{0: true, 4: true, 8: true}
	if len(positions) != len(want) {
		t.Fatalf("chain for \"ab\" = %v, want 3 entries from %v", positions, want)
	}
	for _, p := range positions {
		if !want[p] {
			t.Errorf("unexpected position %d in \"ab\" chain", p)
		}
	}
}

func TestSupplementPassAFillsShortMatchFromEarlierOccurrence(t *testing.T) {
	window := []byte("the cat sat on the mat, the cat ran")
	ctx := newTestContextForSupplement(t, window)

	pos := 24 // second "the cat" starts here
	ctx.supplementPassA(0, len(window))

	slots := ctx.matchTable.At(pos)
	offset := pos - 0
	if !offsetPresent(slots, offset) {
		t.Fatalf("expected pass A to find offset %d at pos %d, slots=%+v", offset, pos, slots)
	}
}

func TestSupplementPassALeavesWellFilledPositionsAlone(t *testing.T) {
	window := []byte("aaaaaaaaaaaaaaaaaaaa")
	ctx := newTestContextForSupplement(t, window)
	pos := 10
	slots := ctx.matchTable.At(pos)
	for i := 0; i < passAMaxFilled; i++ {
		slots[i] = matchfind.Match{Offset: uint32(i + 1), Length: 2}
	}
	before := append([]matchfind.Match(nil), slots...)

	ctx.supplementPassA(0, len(window))

	after := ctx.matchTable.At(pos)
	for i := range before {
		if after[i] != before[i] {
			t.Fatalf("pass A modified an already-filled position at slot %d: before=%+v after=%+v", i, before[i], after[i])
		}
	}
}
