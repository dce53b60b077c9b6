package parser

import "testing"

// TestTryMergeAdjacent uses two same-offset matches whose gap region
// (window[60:130]) is compared against itself, so the byte-equality check
// holds regardless of window content.
func TestTryMergeAdjacent(t *testing.T) {
	window := make([]byte, 200)
	best := make([]BestMatch, 200)
	best[0] = BestMatch{Length: 70, Offset: 10}
	best[70] = BestMatch{Length: 70, Offset: 10}

	ctx := &Context{}
	if !ctx.tryMergeAdjacent(best, window, 0, 200, 0) {
		t.Fatalf("expected merge to fire")
	}
	if best[0].Length != 140 || best[0].Offset != 10 {
		t.Fatalf("best[0] = %+v, want {Length:140 Offset:10}", best[0])
	}
	if best[70].Length != absorbed {
		t.Fatalf("best[70].Length = %d, want absorbed", best[70].Length)
	}
}

func TestTryMergeAdjacentRejectsBelowLeaveAloneThreshold(t *testing.T) {
	window := make([]byte, 200)
	best := make([]BestMatch, 200)
	best[0] = BestMatch{Length: 10, Offset: 10}
	best[10] = BestMatch{Length: 10, Offset: 10}

	ctx := &Context{}
	if ctx.tryMergeAdjacent(best, window, 0, 200, 0) {
		t.Fatalf("merge should not fire below LeaveAloneMatchSize (combined 20)")
	}
}

// TestTryReplaceWithLiterals is numerically engineered from cost.go's exact
// formulas: a cheap 2-byte match at a very large, unrelated offset (100000)
// directly follows a literal and directly precedes a match whose offset
// (7) equals the rep-offset carried in from before the big match. Keeping
// the big match forces the following match to pay full non-rep offset
// cost (since the big match's own offset becomes the active rep); erasing
// it into literals lets the following match fall back to the still-live
// outer rep-offset 7, turning it into a cheap rep match. Costs:
//
//	curSize    = 1 (token) + offsetCost(100000)=26 + nonRepMatchLengthCost(2)=1   = 28
//	nextSize   = 1 (token) + offsetCost(7)=8      + nonRepMatchLengthCost(5)=5    = 14
//	reducedSize = 2*8=16 + bitGammaRunCost(2)=19 + repMatchLengthCost(5)=5 + 1     = 41
//
// 28+14=42 >= 41, so replacement wins by one bit.
func TestTryReplaceWithLiterals(t *testing.T) {
	best := make([]BestMatch, 50)
	best[5] = BestMatch{Length: 2, Offset: 100000}
	best[7] = BestMatch{Length: 5, Offset: 7}

	ctx := &Context{}
	if !ctx.tryReplaceWithLiterals(best, 0, 50, 5, 7) {
		t.Fatalf("expected replacement to fire")
	}
	if best[5].Length != 0 || best[6].Length != 0 {
		t.Fatalf("best[5:7] = %+v, %+v, want both cleared to literals", best[5], best[6])
	}
}

func TestTryReplaceWithLiteralsRejectsWhenNotPrecededByLiteral(t *testing.T) {
	best := make([]BestMatch, 50)
	best[4] = BestMatch{Length: 3, Offset: 20} // idx-1 is a match, not a literal
	best[5] = BestMatch{Length: 2, Offset: 100000}
	best[7] = BestMatch{Length: 5, Offset: 7}

	ctx := &Context{}
	if ctx.tryReplaceWithLiterals(best, 0, 50, 5, 7) {
		t.Fatalf("replacement should require a preceding literal")
	}
}

// TestTryGrowIntoFollowingLiteral uses an all-zero window, so the
// byte-equality check that backs growth-by-one trivially holds.
func TestTryGrowIntoFollowingLiteral(t *testing.T) {
	window := make([]byte, 50)
	best := make([]BestMatch, 50)
	best[4] = BestMatch{Length: 10, Offset: 2}

	ctx := &Context{}
	if !ctx.tryGrowIntoFollowingLiteral(best, window, 0, 50, 3, 0) {
		t.Fatalf("expected grow-1 to fire")
	}
	if best[3].Length != 11 || best[3].Offset != 2 {
		t.Fatalf("best[3] = %+v, want {Length:11 Offset:2}", best[3])
	}
	if best[4].Length != absorbed {
		t.Fatalf("best[4].Length = %d, want absorbed", best[4].Length)
	}
}

func TestTryGrowIntoFollowingLiteralRejectsNonLiteralPredecessor(t *testing.T) {
	window := make([]byte, 50)
	best := make([]BestMatch, 50)
	best[3] = BestMatch{Length: 4, Offset: 9} // not a literal slot
	best[4] = BestMatch{Length: 10, Offset: 2}

	ctx := &Context{}
	if ctx.tryGrowIntoFollowingLiteral(best, window, 0, 50, 3, 0) {
		t.Fatalf("grow-1 should require the predecessor slot to be a literal")
	}
}

// TestTryReassignOffset constructs a match whose bytes are reproducible at
// the carried rep-offset: window holds a period-4 pattern, the match at i=8
// currently uses offset 8 (also period-aligned), and rep=4 reproduces the
// same bytes since the pattern repeats every 4 bytes.
func TestTryReassignOffsetToCarriedRep(t *testing.T) {
	window := make([]byte, 40)
	for i := range window {
		window[i] = byte(i % 4)
	}
	best := make([]BestMatch, 40)
	best[8] = BestMatch{Length: 6, Offset: 8}

	ctx := &Context{}
	if !ctx.tryReassignOffset(best, window, 0, 40, 8, 4) {
		t.Fatalf("expected reassignment to the carried rep-offset to fire")
	}
	if best[8].Offset != 4 {
		t.Fatalf("best[8].Offset = %d, want 4 (reassigned to rep)", best[8].Offset)
	}
}

func TestTryReassignOffsetRejectsWhenBytesDiffer(t *testing.T) {
	window := []byte("abcdefghijklmnopqrstuvwxyz0123456789ABCD")
	best := make([]BestMatch, len(window))
	best[8] = BestMatch{Length: 6, Offset: 8}

	ctx := &Context{}
	if ctx.tryReassignOffset(best, window, 0, len(window), 8, 4) {
		t.Fatalf("reassignment should require byte-identical substitution")
	}
}

func TestReduceSweepReportsNoChangeOnFixedPoint(t *testing.T) {
	window := []byte("abcdefghijklmnopqrstuvwxyz0123456789ABCDEFGHIJ")
	best := make([]BestMatch, len(window))
	// No literals, no matches anywhere: every slot is already a literal
	// (zero value), so no rewrite can ever fire.
	ctx := &Context{}
	if ctx.reduceSweep(best, 0, len(window), 0, 0) {
		t.Fatalf("reduceSweep should report no change over an all-literal block")
	}
}
