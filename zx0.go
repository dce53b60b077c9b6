// Package zx0 implements an optimal-parse ZX0 compressor: a byte-oriented
// LZ77 variant with Elias-gamma coded lengths and a single implicit
// rep-offset register. It wraps internal/parser's single-block core with
// the block-chunking driver spec.md pushes out of the core itself.
package zx0

import (
	"github.com/zx0go/zx0/internal/bitio"
	"github.com/zx0go/zx0/internal/parser"
)

// Version constants for this module.
const (
	Version      = "0.1.0"
	VersionMajor = 0
	VersionMinor = 1
	VersionPatch = 0
)

// Stats re-exports the per-compression counters internal/parser accumulates.
type Stats = parser.Stats

// Options configures Compress and CompressBatch.
type Options struct {
	// BlockSize bounds how much of src is optimized in one parser pass,
	// clamped to [parser.MinBlockSize, parser.DefaultBlockSize]. Larger
	// blocks parse more globally optimally at the cost of more memory and
	// CPU per pass.
	BlockSize int

	// Arrivals is K, the number of parse states tracked per position.
	// Larger values find better parses at higher cost; must be >= 4.
	Arrivals int

	// MatchAttempts bounds how many candidate matches the finder considers
	// per position.
	MatchAttempts int

	// MaxOffset caps how far back a match may reference. Zero means
	// parser.MaxOffset, the format's own ceiling.
	MaxOffset int

	// DictionarySize is how many bytes of src, if any, are reserved as
	// history available to the very first block without being compressed
	// themselves (a preset dictionary). Zero disables it.
	DictionarySize int

	// Invert selects the ZX0 "classic inverted" gamma-bit convention some
	// decoders expect. False produces the modern, non-inverted stream.
	Invert bool

	// OnBlock, if set, is invoked synchronously after every block is
	// compressed, with a copy of the running totals. It must not mutate
	// compressor state — it only ever sees a Stats value, never a Context.
	OnBlock func(blockIndex int, blockStats Stats, running Stats)
}

// DefaultOptions returns the Options a plain Compress(src, DefaultOptions())
// call uses.
func DefaultOptions() Options {
	return Options{
		BlockSize:     parser.DefaultBlockSize,
		Arrivals:      parser.DefaultArrivals,
		MatchAttempts: 64,
	}
}

func (o Options) toParserOptions() parser.Options {
	return parser.Options{
		MaxOffset:      o.MaxOffset,
		Flags:          o.configFlags(),
		BlockSize:      o.blockSize(),
		Arrivals:       o.Arrivals,
		MatchAttempts:  o.MatchAttempts,
		DictionarySize: o.DictionarySize,
	}
}

func (o Options) configFlags() parser.ConfigFlags {
	if o.Invert {
		return parser.FlagIsInverted
	}
	return 0
}

func (o Options) blockSize() int {
	if o.BlockSize <= 0 {
		return parser.DefaultBlockSize
	}
	if o.BlockSize < parser.MinBlockSize {
		return parser.MinBlockSize
	}
	if o.BlockSize > parser.DefaultBlockSize {
		return parser.DefaultBlockSize
	}
	return o.BlockSize
}

// Compress encodes src as a single ZX0 command stream, chunking it into
// Options.BlockSize-sized blocks and threading the rep-offset and any
// deferred trailing literal run between them (spec §6's externalized block
// driver). There is no raw-literal fallback: a block whose output would not
// fit the worst-case destination buffer fails the whole call with
// ErrOutputOverflow.
func Compress(src []byte, opts Options) ([]byte, Stats, error) {
	ctx, err := parser.NewContext(opts.toParserOptions())
	if err != nil {
		return nil, Stats{}, err
	}
	defer ctx.Destroy()

	blockSize := opts.blockSize()
	dst := make([]byte, worstCaseSize(len(src)))

	pos := bitio.StartPosition()
	rep := 1
	prevBlockSize := opts.DictionarySize
	if prevBlockSize < 0 {
		prevBlockSize = 0
	}
	if prevBlockSize > len(src) {
		prevBlockSize = len(src)
	}
	running := Stats{MinLiteralRun: -1, MinOffset: -1, MinMatchLen: -1}
	blockIndex := 0

	for {
		remaining := len(src) - prevBlockSize
		thisBlock := blockSize
		if thisBlock > remaining {
			thisBlock = remaining
		}
		isFirst := blockIndex == 0
		isLast := prevBlockSize+thisBlock >= len(src)

		flags := parser.BlockFlags(0)
		if isFirst {
			flags |= parser.FlagFirstBlock
		}
		if isLast {
			flags |= parser.FlagLastBlock
		}

		result, err := ctx.CompressBlock(src, prevBlockSize, thisBlock, dst, pos, rep, flags)
		if err != nil {
			return nil, Stats{}, err
		}

		pos = result.Position
		rep = result.RepOffset
		running = mergeStats(running, result.Stats)
		if opts.OnBlock != nil {
			opts.OnBlock(blockIndex, result.Stats, running)
		}
		blockIndex++

		nextPrev := prevBlockSize + thisBlock - result.DeferredLiterals
		if isLast {
			return dst[:result.BytesWritten], running, nil
		}
		prevBlockSize = nextPrev
	}
}

// worstCaseSize bounds the output a single ZX0 stream can ever need: every
// byte spelled out as a literal (a gamma-coded run header per
// MaxVarLen-sized chunk, negligible against the 9-bits-per-byte worst case
// of class bit + raw byte) plus room for the end-of-data marker.
func worstCaseSize(srcLen int) int {
	return srcLen + srcLen/8 + 64
}

func mergeStats(a, b Stats) Stats {
	out := a
	out.NumLiterals += b.NumLiterals
	out.SumLiteralRun += b.SumLiteralRun
	out.NumRepMatches += b.NumRepMatches
	out.NumCommands += b.NumCommands

	if out.MinLiteralRun == -1 || (b.MinLiteralRun != -1 && b.MinLiteralRun < out.MinLiteralRun) {
		out.MinLiteralRun = b.MinLiteralRun
	}
	if b.MaxLiteralRun > out.MaxLiteralRun {
		out.MaxLiteralRun = b.MaxLiteralRun
	}
	if out.MinOffset == -1 || (b.MinOffset != -1 && b.MinOffset < out.MinOffset) {
		out.MinOffset = b.MinOffset
	}
	if b.MaxOffset > out.MaxOffset {
		out.MaxOffset = b.MaxOffset
	}
	if out.MinMatchLen == -1 || (b.MinMatchLen != -1 && b.MinMatchLen < out.MinMatchLen) {
		out.MinMatchLen = b.MinMatchLen
	}
	if b.MaxMatchLen > out.MaxMatchLen {
		out.MaxMatchLen = b.MaxMatchLen
	}
	if b.MaxRLE1Len > out.MaxRLE1Len {
		out.MaxRLE1Len = b.MaxRLE1Len
	}
	if b.MaxRLE2Len > out.MaxRLE2Len {
		out.MaxRLE2Len = b.MaxRLE2Len
	}
	if b.MaxSafeDistance > out.MaxSafeDistance {
		out.MaxSafeDistance = b.MaxSafeDistance
	}
	return out
}
