package parser

import "github.com/zx0go/zx0/internal/bitio"

// Exact bit-cost pure functions, shared by the parser, the reducer, and
// tests so there is exactly one definition of "how many bits does this
// cost" in the whole module (spec §2, "pure functions").

// literalRunHeaderCost is the cost of the 1 token bit plus the gamma size
// of a literal run of n bytes (n >= 1).
func literalRunHeaderCost(n int) int {
	return 1 + bitio.GammaSize(uint32(n))
}

// literalRunGrowthCost is the incremental cost of extending a literal run
// already n bytes long by one more byte: just the literal byte plus
// whatever the run-length gamma grows by. n == 0 means there is no run yet
// (a literal starting fresh after a match, or the block's first literal),
// so the full header — token bit plus gamma(1) — is charged rather than a
// gamma delta against a nonexistent n == 0 run.
func literalRunGrowthCost(n int) int {
	if n == 0 {
		return 8 + literalRunHeaderCost(1)
	}
	return 8 + bitio.GammaSize(uint32(n+1)) - bitio.GammaSize(uint32(n))
}

// nonRepMatchLengthCost is the gamma size of a non-rep match of length L
// (encoded as L-1).
func nonRepMatchLengthCost(length int) int {
	return bitio.GammaSize(uint32(length - 1))
}

// repMatchLengthCost is the gamma size of a rep-match of length L (encoded
// as L directly).
func repMatchLengthCost(length int) int {
	return bitio.GammaSize(uint32(length))
}

// offsetCost is the cost of encoding a match offset: 8 bits if it fits in
// the low byte alone, else 7 bits plus the gamma size of the high part.
func offsetCost(offset int) int {
	if offset <= 128 {
		return 8
	}
	high := ((offset - 1) >> 7) + 1
	return 7 + bitio.GammaSize(uint32(high))
}

// matchTokenCost is the 1-bit "literals-follow / match-follows" token. The
// very first command of the first block omits it (handled by the emitter,
// not here, since that is a stream-position fact, not a cost-model fact).
const matchTokenCost = 1
