package parser

import (
	"github.com/zx0go/zx0/internal/matchfind"
)

// Context owns every preallocated arena the core needs for one compression
// stream: arrival table, match/depth table, RLE table, visited table, the
// two-byte-prefix chain used by supplementation, and the match-finder
// itself. Sized once at NewContext from blockSize and arrivals, then reused
// across every block of the stream — spec §5's "no allocation occurs in
// the hot path".
type Context struct {
	finder    matchfind.Finder
	maxOffset int
	flags     ConfigFlags

	blockSize int
	arrivals  int // K, the final-pass arrival width

	matchTable *matchfind.Table
	rle        *RLETable
	arrivalsA  *ArrivalTable // first pass, K/2 width
	arrivalsB  *ArrivalTable // second pass, K width
	visited    []VisitedEntry
	chain      *pairChain
	best       []BestMatch

	window []byte // set per-block by CompressBlock
	end    int
}

// Options configures a Context at construction time.
type Options struct {
	MaxOffset      int
	Flags          ConfigFlags
	BlockSize      int
	Arrivals       int
	MatchAttempts  int
	DictionarySize int
}

// NewContext allocates every arena the core needs. Returns ErrInitFailed if
// any configuration value is unusable; the caller should treat a non-nil
// error as "nothing was allocated".
func NewContext(opts Options) (*Context, error) {
	blockSize := opts.BlockSize
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	if blockSize < MinBlockSize {
		blockSize = MinBlockSize
	}
	if blockSize > DefaultBlockSize {
		blockSize = DefaultBlockSize
	}

	arrivals := opts.Arrivals
	if arrivals <= 0 {
		arrivals = DefaultArrivals
	}
	if arrivals < 4 {
		return nil, ErrInitFailed
	}

	maxOffset := opts.MaxOffset
	if maxOffset <= 0 || maxOffset > MaxOffset {
		maxOffset = MaxOffset
	}

	windowCap := opts.DictionarySize + blockSize
	matchAttempts := opts.MatchAttempts
	if matchAttempts <= 0 {
		matchAttempts = 64
	}

	finder := matchfind.New(matchAttempts)

	ctx := &Context{
		finder:     finder,
		maxOffset:  maxOffset,
		flags:      opts.Flags,
		blockSize:  blockSize,
		arrivals:   arrivals,
		matchTable: matchfind.NewTable(windowCap, NMatchesPerIndex),
		rle:        NewRLETable(windowCap),
		// Sized to windowCap (not blockSize) and indexed absolutely, the
		// same as matchTable/rle/visited, so the parser never needs a
		// block-relative/window-absolute translation layer.
		arrivalsA: NewArrivalTable(windowCap+1, arrivals/2),
		arrivalsB: NewArrivalTable(windowCap+1, arrivals),
		visited:   make([]VisitedEntry, windowCap),
		chain:     newPairChain(windowCap),
		best:      make([]BestMatch, blockSize),
	}
	return ctx, nil
}

// Destroy releases the context's arenas. Idempotent.
func (c *Context) Destroy() {
	if c.finder != nil {
		c.finder.Destroy()
	}
	c.finder = nil
	c.matchTable = nil
	c.rle = nil
	c.arrivalsA = nil
	c.arrivalsB = nil
	c.visited = nil
	c.chain = nil
	c.best = nil
	c.window = nil
}
