package parser

// Arrival is one candidate parse-state at a position: cumulative bit cost,
// the back-pointer to the arrival it was derived from, and the rep-offset
// context carried into this state. Modeled as a value (not a pointer graph,
// spec §9 "arena + index") so the whole arrival table is one contiguous
// slice.
type Arrival struct {
	Cost        uint32
	FromPos     int
	FromSlot    int // 0 means empty; the block-start sentinel uses -1
	MatchLen    int
	NumLiterals int
	RepOffset   int
	RepPos      int
	Score       uint32
}

// empty reports whether this slot has never been written.
func (a *Arrival) empty() bool { return a.FromSlot == 0 }

// ArrivalTable is the flat (windowCap+1) * arrivalsPerPosition arrival
// arena, indexed pos*width + slot.
type ArrivalTable struct {
	entries []Arrival
	width   int
}

// NewArrivalTable allocates an arrival table spanning numPositions
// positions (NewContext passes windowCap+1), each with width slots.
func NewArrivalTable(numPositions, width int) *ArrivalTable {
	return &ArrivalTable{
		entries: make([]Arrival, numPositions*width),
		width:   width,
	}
}

// Width returns K, the number of arrival slots per position.
func (t *ArrivalTable) Width() int { return t.width }

// Row returns the mutable slice of arrivals at pos, sorted ascending by
// (Cost, Score) among the non-empty prefix.
func (t *ArrivalTable) Row(pos int) []Arrival {
	base := pos * t.width
	return t.entries[base : base+t.width]
}

// Reset clears every arrival to the empty state.
func (t *ArrivalTable) Reset() {
	for i := range t.entries {
		t.entries[i] = Arrival{}
	}
}

// BestMatch is one entry of the backward-walked best-parse array.
// Length == 0 means "emit a literal here"; Length == -1 means "absorbed
// by the preceding match" (only ever produced by the reducer).
type BestMatch struct {
	Length int
	Offset int
}

const absorbed = -1

// VisitedEntry records, for forward-rep injection memoisation, the last
// offset already projected through a position at each of the two injection
// depths ("inner" = recursive call, "outer" = top-level call).
type VisitedEntry struct {
	Outer uint32
	Inner uint32
}

// Stats accumulates the running totals and extrema a completed block
// reports, per spec §6 "Returned statistics".
type Stats struct {
	NumLiterals     int
	MinLiteralRun   int
	MaxLiteralRun   int
	SumLiteralRun   int

	MinOffset int
	MaxOffset int

	MinMatchLen int
	MaxMatchLen int

	MaxRLE1Len int // longest offset-1 (RLE) match observed
	MaxRLE2Len int // longest offset-2 match observed

	NumRepMatches int
	NumCommands   int

	// MaxSafeDistance is the maximum, over the block, of
	// (input_pos - block_start) - output_pos — see spec §9's "Open
	// question — safe-dist stat". Tracked exactly as defined; not used
	// to gate anything in the core.
	MaxSafeDistance int
}

func newStats() Stats {
	return Stats{
		MinLiteralRun: -1,
		MinOffset:     -1,
		MinMatchLen:   -1,
	}
}

func (s *Stats) observeLiteralRun(n int) {
	s.SumLiteralRun += n
	if s.MinLiteralRun == -1 || n < s.MinLiteralRun {
		s.MinLiteralRun = n
	}
	if n > s.MaxLiteralRun {
		s.MaxLiteralRun = n
	}
}

func (s *Stats) observeMatch(offset, length int, isRep bool) {
	if s.MinOffset == -1 || offset < s.MinOffset {
		s.MinOffset = offset
	}
	if offset > s.MaxOffset {
		s.MaxOffset = offset
	}
	if s.MinMatchLen == -1 || length < s.MinMatchLen {
		s.MinMatchLen = length
	}
	if length > s.MaxMatchLen {
		s.MaxMatchLen = length
	}
	if offset == 1 && length > s.MaxRLE1Len {
		s.MaxRLE1Len = length
	}
	if offset == 2 && length > s.MaxRLE2Len {
		s.MaxRLE2Len = length
	}
	if isRep {
		s.NumRepMatches++
	}
	s.NumCommands++
}

func (s *Stats) observeSafeDistance(d int) {
	if d > s.MaxSafeDistance {
		s.MaxSafeDistance = d
	}
}
