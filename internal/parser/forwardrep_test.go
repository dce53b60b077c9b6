package parser

import (
	"testing"

	"github.com/zx0go/zx0/internal/matchfind"
)

func TestExtendRepOffsetUsesRLESkipThenWordCompare(t *testing.T) {
	window := []byte("aaaaaaaaaaaaXYZaaaaaaaaaaaa")
	ctx := newTestContextForSupplement(t, window)

	got := ctx.extendRepOffset(15, 1) // offset-1 (RLE) extension from the second run
	want := 12                        // length of the trailing run of 'a's
	if got != want {
		t.Fatalf("extendRepOffset = %d, want %d", got, want)
	}
}

func TestExtendRepOffsetReturnsZeroPastWindowEnd(t *testing.T) {
	window := []byte("abc")
	ctx := newTestContextForSupplement(t, window)
	if got := ctx.extendRepOffset(len(window), 1); got != 0 {
		t.Fatalf("extendRepOffset at window end = %d, want 0", got)
	}
}

func TestFindExactOffsetMatchesPrimaryOffsetOnly(t *testing.T) {
	slots := []matchfind.Match{
		{Offset: 5, Length: 4, Depth: 2}, // synonym range covers offsets 3..5
		{Offset: 10, Length: 3},
	}
	if _, ok := findExactOffset(slots, 4); ok {
		t.Fatalf("findExactOffset should not match a synonym offset, only the primary")
	}
	idx, ok := findExactOffset(slots, 10)
	if !ok || idx != 1 {
		t.Fatalf("findExactOffset(10) = (%d, %v), want (1, true)", idx, ok)
	}
}

func TestForwardRepInjectProjectsOffsetThroughCarriedRepOffset(t *testing.T) {
	// A period-3 pattern ("ABC" repeated) makes offset 3 a valid rep-offset
	// match everywhere. forwardRepInjectAt is called with a brand new
	// candidate offset (3) found at position 4; the lone arrival at row 4
	// carries an unrelated rep-offset (7) that last landed at position 9
	// (RepPos). Injection should test whether offset 3 is ALSO valid at
	// position 9 and, since the pattern is periodic, insert it there.
	pattern := "ABC"
	window := make([]byte, 0, 30)
	for len(window) < 30 {
		window = append(window, pattern...)
	}
	ctx := newTestContextForSupplement(t, window)

	arrivals := NewArrivalTable(len(window)+1, 4)
	row := arrivals.Row(4)
	row[0] = Arrival{FromSlot: 1, NumLiterals: 1, RepOffset: 7, RepPos: 9}

	ctx.forwardRepInjectAt(arrivals, 3, 4, 0)

	slots := ctx.matchTable.At(9)
	idx, ok := findExactOffset(slots, 3)
	if !ok {
		t.Fatalf("expected offset 3 to be projected into position 9's match table, slots=%+v", slots)
	}
	if slots[idx].Len() < 2 {
		t.Fatalf("projected match length = %d, want >= 2", slots[idx].Len())
	}
}
