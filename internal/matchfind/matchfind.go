// Package matchfind implements the one true interface boundary in the
// module: a narrow match-finder capability consumed by the optimal parser.
// The suffix-array/LCP-interval technique a reference ZX0 encoder uses is
// out of scope here; this package's chainFinder is a hash-chain match
// finder in the same family as a classic LZ77 "HC" (high-compression)
// matcher, generalized to emit several ranked candidates per position
// instead of only the single best one.
package matchfind

import "github.com/zx0go/zx0/internal/wordcmp"

// NMatchesPerIndex bounds how many candidate matches are kept per position,
// matching the format's match-record slot count.
const NMatchesPerIndex = 16

// LengthApproximate, set on Match.Length's high bit, marks a length that may
// be an undercount because the finder's search budget ran out before the
// candidate's true best length (or a better candidate at that position)
// could be confirmed. Consumed by the parser as a small score penalty.
const LengthApproximate uint16 = 0x8000

// DepthSupplemented, set on Match.Depth's 15th bit, marks an entry added by
// match supplementation rather than by the finder itself; it allows later
// length extension of that specific slot.
const DepthSupplemented uint16 = 0x4000

// depthCountMask isolates the synonym count in the low 14 bits of Depth.
const depthCountMask = 0x3FFF

// Match is one candidate (offset, length) pair at a position, with a depth
// annotation describing consecutive shorter-offset synonyms sharing the
// same length.
type Match struct {
	Offset uint32
	Length uint16
	Depth  uint16
}

// Len returns the match length with the approximate-length flag stripped.
func (m Match) Len() int { return int(m.Length &^ LengthApproximate) }

// Approximate reports whether the length may be an undercount.
func (m Match) Approximate() bool { return m.Length&LengthApproximate != 0 }

// SynonymCount returns how many consecutive offsets below m.Offset
// (m.Offset-1 .. m.Offset-SynonymCount) share this match's length.
func (m Match) SynonymCount() int { return int(m.Depth & depthCountMask) }

// Supplemented reports whether this entry was inserted by match
// supplementation rather than by the finder's own search.
func (m Match) Supplemented() bool { return m.Depth&DepthSupplemented != 0 }

// BlockFlags carries the framing bits the driver attaches to a block.
type BlockFlags uint8

const (
	FlagFirstBlock BlockFlags = 1 << 0
	FlagLastBlock  BlockFlags = 1 << 1
)

// Table is the preallocated match-record arena shared between the
// match-finder and the parser: NMatchesPerIndex entries per window
// position, a zero-length entry terminating each position's list. Owned by
// the compressor context per the spec's "all scratch buffers preallocated"
// resource model; never grown after NewTable.
type Table struct {
	entries []Match
	slots   int
}

// NewTable allocates a match table for a window of windowLen positions,
// each with room for slots candidate entries.
func NewTable(windowLen, slots int) *Table {
	return &Table{
		entries: make([]Match, windowLen*slots),
		slots:   slots,
	}
}

// At returns the (mutable) candidate slice for position pos.
func (t *Table) At(pos int) []Match {
	base := pos * t.slots
	return t.entries[base : base+t.slots]
}

// Slots returns how many candidate slots each position has.
func (t *Table) Slots() int { return t.slots }

// Reset clears every position's slot list.
func (t *Table) Reset() {
	for i := range t.entries {
		t.entries[i] = Match{}
	}
}

// Finder is the match-finder contract the optimal parser consumes. A
// concrete implementation indexes an input window once (Build), is told to
// skip over dictionary-only bytes the parser never visits (Skip), and is
// then asked to populate a Table over the block's positions (FindAll).
type Finder interface {
	// Build constructs search state over window[0:end).
	Build(window []byte, end int) error
	// Skip advances internal indexing state across [from, to) without
	// producing match output, for positions the parser will never query
	// (e.g. a leading dictionary prefix).
	Skip(from, to int)
	// FindAll populates table for every position in [start, end), writing
	// up to maxPerPosition entries sorted by offset ascending, respecting
	// flags (currently unused by chainFinder, reserved per the contract).
	FindAll(table *Table, maxPerPosition, start, end int, flags BlockFlags) error
	// Destroy releases any resources Build allocated. Idempotent.
	Destroy()
}

const (
	hashBits    = 16
	hashSize    = 1 << hashBits
	minMatchLen = 2
	hashSpan    = 3 // bytes folded into the rolling hash
)

// chainFinder is a hash-chain match finder: a hashSpan-byte rolling hash
// indexes into a table of most-recent positions, each position carrying an
// intrusive "next older position with the same hash" link. Walking the
// chain visits strictly increasing offsets, which is exactly the ascending
// order the Finder contract requires, so no separate sort step is needed.
type chainFinder struct {
	window      []byte
	end         int
	hashHead    []int32
	chainNext   []int32
	maxAttempts int
}

// New returns a chainFinder that probes at most maxAttempts chain entries
// per position before giving up and marking its best candidate
// approximate.
func New(maxAttempts int) Finder {
	if maxAttempts <= 0 {
		maxAttempts = 64
	}
	return &chainFinder{maxAttempts: maxAttempts}
}

func (f *chainFinder) Build(window []byte, end int) error {
	f.window = window
	f.end = end
	if cap(f.chainNext) < end {
		f.chainNext = make([]int32, end)
	} else {
		f.chainNext = f.chainNext[:end]
	}
	if f.hashHead == nil {
		f.hashHead = make([]int32, hashSize)
	}
	for i := range f.hashHead {
		f.hashHead[i] = -1
	}
	return nil
}

func (f *chainFinder) hash(pos int) uint32 {
	v := uint32(f.window[pos]) | uint32(f.window[pos+1])<<8 | uint32(f.window[pos+2])<<16
	return (v * 2654435761) >> (32 - hashBits)
}

func (f *chainFinder) insert(pos int) {
	if pos+hashSpan > f.end {
		return
	}
	h := f.hash(pos)
	f.chainNext[pos] = f.hashHead[h]
	f.hashHead[h] = int32(pos)
}

func (f *chainFinder) Skip(from, to int) {
	for p := from; p < to; p++ {
		f.insert(p)
	}
}

func (f *chainFinder) FindAll(table *Table, maxPerPosition, start, end int, flags BlockFlags) error {
	_ = flags
	if maxPerPosition > table.Slots() {
		maxPerPosition = table.Slots()
	}
	type candidate struct {
		offset uint32
		length int
		approx bool
	}
	var raw []candidate
	for pos := start; pos < end; pos++ {
		raw = raw[:0]
		if pos+hashSpan <= f.end {
			h := f.hash(pos)
			current := f.hashHead[h]
			attempts := f.maxAttempts
			maxLen := f.end - pos
			for current >= 0 {
				if attempts == 0 {
					break
				}
				attempts--
				c := int(current)
				// Compared against the source window out to f.end, not just
				// to pos: a match may legitimately overlap itself (offset <
				// length), which a decoder resolves via a byte-at-a-time
				// copy, so the source bytes beyond pos are exactly what a
				// self-overlapping copy would have produced.
				length := wordcmp.ExtendMatch(f.window[pos:f.end], f.window[c:f.end], maxLen)
				if length >= minMatchLen {
					raw = append(raw, candidate{
						offset: uint32(pos - c),
						length: length,
						approx: attempts == 0,
					})
				}
				current = f.chainNext[c]
			}
		}

		slots := table.At(pos)
		for i := range slots {
			slots[i] = Match{}
		}
		slot := 0
		i := 0
		for i < len(raw) && slot < maxPerPosition {
			j := i + 1
			for j < len(raw) && raw[j].length == raw[i].length && raw[j].offset == raw[j-1].offset+1 {
				j++
			}
			run := j - i
			rep := raw[j-1] // largest offset in the run of consecutive equal-length offsets
			length := uint16(rep.length)
			if rep.approx {
				length |= LengthApproximate
			}
			depth := uint16(run - 1)
			if depth > depthCountMask {
				depth = depthCountMask
			}
			slots[slot] = Match{Offset: rep.offset, Length: length, Depth: depth}
			slot++
			i = j
		}

		f.insert(pos)
	}
	return nil
}

func (f *chainFinder) Destroy() {
	f.window = nil
	f.hashHead = nil
	f.chainNext = nil
}
