package parser

import (
	"errors"

	"github.com/zx0go/zx0/internal/bitio"
	"github.com/zx0go/zx0/internal/matchfind"
)

// Result is what one CompressBlock call reports back to its driver.
type Result struct {
	BytesWritten     int
	Position         bitio.Position
	RepOffset        int
	DeferredLiterals int
	Stats            Stats
}

// CompressBlock runs the full per-block pipeline (spec §2's data-flow line:
// match-finder -> pass A -> RLE -> first optimal pass with forward-rep
// injection at Arrivals/2 -> pass B -> second optimal pass at Arrivals ->
// reduce to fixed point -> emit) over
// window[prevBlockSize:prevBlockSize+blockSize], treating
// window[0:prevBlockSize] as history available for back-references. Only
// the most recent history that fits the context's arenas (DictionarySize
// plus the configured block size, minus this block) is kept; older bytes
// are not referenced.
//
// dst receives the encoded command stream, resuming from bitPos. The
// returned Result.Position lets the driver carry the bit-writer cursor
// into the next block. ErrOutputOverflow is returned when dst's capacity
// is exceeded.
func (ctx *Context) CompressBlock(window []byte, prevBlockSize, blockSize int, dst []byte, bitPos bitio.Position, repOffset int, flags BlockFlags) (Result, error) {
	// The arenas index at most len(ctx.visited) window positions; drop the
	// oldest history that does not fit in front of this block.
	if maxHist := len(ctx.visited) - blockSize; maxHist >= 0 && prevBlockSize > maxHist {
		window = window[prevBlockSize-maxHist:]
		prevBlockSize = maxHist
	}
	end := prevBlockSize + blockSize
	ctx.window = window
	ctx.end = end

	if err := ctx.finder.Build(window, end); err != nil {
		return Result{}, err
	}
	ctx.finder.Skip(0, prevBlockSize)
	ctx.matchTable.Reset()
	mfFlags := matchfind.BlockFlags(flags)
	if err := ctx.finder.FindAll(ctx.matchTable, NMatchesPerIndex, prevBlockSize, end, mfFlags); err != nil {
		return Result{}, err
	}

	ctx.chain.build(window, end)
	ctx.supplementPassA(prevBlockSize, end)
	ctx.rle.Build(window, 0, end)

	for i := range ctx.visited {
		ctx.visited[i] = VisitedEntry{}
	}
	ctx.optimalParse(ctx.arrivalsA, prevBlockSize, end, repOffset, true, flags)

	ctx.supplementPassB(ctx.arrivalsA, prevBlockSize, end)

	for i := range ctx.visited {
		ctx.visited[i] = VisitedEntry{}
	}
	ctx.optimalParse(ctx.arrivalsB, prevBlockSize, end, repOffset, false, flags)

	best := ctx.best[:blockSize]
	ctx.reduce(best, prevBlockSize, end, repOffset, flags)

	w := bitio.New(dst, bitPos)
	firstCommand := flags.isFirst() && bitPos.OpenByte == -1 && bitPos.NextByte == 0

	stats := newStats()
	blockWindow := window[prevBlockSize:end]
	newRep, deferred, err := ctx.emit(w, blockWindow, best, blockSize, repOffset, firstCommand, &stats)
	if err != nil {
		return Result{}, wrapWriteError(err)
	}

	if flags.isLast() {
		eodFirst := firstCommand && deferred == blockSize
		if err := ctx.emitEndOfData(w, blockWindow, eodFirst, deferred, &stats); err != nil {
			return Result{}, wrapWriteError(err)
		}
		deferred = 0
	}

	return Result{
		BytesWritten:     w.Len(),
		Position:         w.Position(),
		RepOffset:        newRep,
		DeferredLiterals: deferred,
		Stats:            stats,
	}, nil
}

// wrapWriteError translates the bit writer's generic capacity error into
// this package's documented boundary error, leaving any other error (e.g.
// from the match finder) untouched.
func wrapWriteError(err error) error {
	if errors.Is(err, bitio.ErrOverflow) {
		return ErrOutputOverflow
	}
	return err
}
