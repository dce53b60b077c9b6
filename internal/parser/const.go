package parser

// Format-imposed constants. Numeric values not spelled out verbatim by the
// format are the ones salvador's shrink.c uses.
const (
	// NMatchesPerIndex is the match table's per-position slot count.
	NMatchesPerIndex = 16

	// DefaultArrivals is K, the number of arrivals kept per position on
	// the second (final) optimal pass. The first pass runs with K/2.
	DefaultArrivals = 32

	// LeaveAloneMatchSize is the length threshold above which a match is
	// never shortened during optimal-parse enumeration.
	LeaveAloneMatchSize = 128

	// MaxVarLen is the format-imposed maximum representable match length.
	MaxVarLen = 1 << 20

	// LCPMax caps rep-match forward extension length.
	LCPMax = 65535

	// MinOffset is the smallest legal match offset.
	MinOffset = 1

	// MaxOffset is the format's hard ceiling on match offsets,
	// independent of any caller-configured maximum.
	MaxOffset = 1 << 21

	// DefaultBlockSize is the block size used when the driver does not
	// request one; also the ceiling a caller's requested block size is
	// clamped to.
	DefaultBlockSize = 1 << 20

	// MinBlockSize is the floor a caller's requested block size is
	// clamped to.
	MinBlockSize = 1024

	// forwardRepMaxDepth bounds forward-rep injection recursion when
	// triggered from the optimal parser itself.
	forwardRepMaxDepth = 9

	// forwardRepSupplementDepth bounds forward-rep injection recursion
	// when triggered from match supplementation pass B.
	forwardRepSupplementDepth = 8

	// passAMaxFilled is the per-position match-list fill threshold below
	// which pass A attempts supplementation.
	passAMaxFilled = 15

	// passACap is the maximum length pass A measures a supplemented
	// match to.
	passACap = 128

	// passAMaxInsertions bounds how many entries pass A inserts per
	// position.
	passAMaxInsertions = 15

	// passBMinLength is the best-known-length threshold below which
	// pass B attempts supplementation at a position.
	passBMinLength = 8

	// passBMaxInsertions bounds how many entries pass B inserts per
	// position.
	passBMaxInsertions = 9

	// reduceMaxIterations caps the reduce pass's fixed-point loop.
	reduceMaxIterations = 20

	// modeSwitchPenaltyBits is the Open Question hook from spec §9: kept
	// wired at 0, never silently removed. The parser still evaluates and
	// adds it on every literal-after-match transition.
	modeSwitchPenaltyBits = 0
)

// FlagFirstBlock and FlagLastBlock are the block framing bits the driver
// attaches when invoking CompressBlock.
type BlockFlags uint8

const (
	FlagFirstBlock BlockFlags = 1 << 0
	FlagLastBlock  BlockFlags = 1 << 1
)

func (f BlockFlags) isFirst() bool { return f&FlagFirstBlock != 0 }
func (f BlockFlags) isLast() bool  { return f&FlagLastBlock != 0 }

// ConfigFlags carries bitstream encoding options.
type ConfigFlags uint8

const (
	// FlagIsInverted selects inverted Elias-gamma for the offset high
	// part.
	FlagIsInverted ConfigFlags = 1 << 0
)
