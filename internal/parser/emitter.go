package parser

import "github.com/zx0go/zx0/internal/bitio"

// emit walks best (one entry per position of [0, blockLen)), pairing each
// literal run with the match that follows it, and writes the command
// stream into w (spec §4.8). A literal run with no following match inside
// the block (i.e. reaching blockLen mid-run) is not written here; its
// length is returned as trailingLiterals for the caller to either defer to
// the next block, or — on the last block — flush followed by the
// end-of-data marker.
//
// firstCommand suppresses the very first command's leading token bit, the
// decoder's implicit "literals assumed" start-of-stream state.
func (ctx *Context) emit(w *bitio.Writer, window []byte, best []BestMatch, blockLen, repOffset int, firstCommand bool, stats *Stats) (newRep int, trailingLiterals int, err error) {
	rep := repOffset
	first := firstCommand
	i := 0

	for i < blockLen {
		run := 0
		for i+run < blockLen && best[i+run].Length == 0 {
			run++
		}
		if i+run >= blockLen {
			return rep, run, nil
		}

		m := best[i+run]
		hasLiterals := run > 0
		isRep := hasLiterals && m.Offset == rep

		if hasLiterals {
			if !first {
				if err := w.WriteBit(0); err != nil {
					return rep, 0, err
				}
			}
			first = false
			if err := w.WriteGamma(uint32(run), false); err != nil {
				return rep, 0, err
			}
			if err := w.WriteRawBytes(window[i : i+run]); err != nil {
				return rep, 0, err
			}
			stats.observeLiteralRun(run)

			bit := 1
			if isRep {
				bit = 0
			}
			if err := w.WriteBit(bit); err != nil {
				return rep, 0, err
			}
		} else {
			// A match with no pending literals can never be a rep match
			// (tryRepMatches only ever extends arrivals with
			// NumLiterals != 0), so its class bit is always 1. The
			// stream's very first command must be a literal run, so a
			// match there is rejected.
			if first {
				return rep, 0, ErrFormatConstraint
			}
			if err := w.WriteBit(1); err != nil {
				return rep, 0, err
			}
			first = false
		}

		if isRep {
			if err := w.WriteGamma(uint32(m.Length), false); err != nil {
				return rep, 0, err
			}
		} else {
			if m.Offset < MinOffset || m.Offset > ctx.maxOffset || m.Offset > MaxOffset {
				return rep, 0, ErrFormatConstraint
			}
			high := ((m.Offset - 1) >> 7) + 1
			low := byte(255-((m.Offset-1)&0x7f)) << 1
			if err := w.WriteGamma(uint32(high), ctx.flags&FlagIsInverted != 0); err != nil {
				return rep, 0, err
			}
			idx, err := w.WriteRawByte(low)
			if err != nil {
				return rep, 0, err
			}
			slot := w.ReserveBit(idx)
			if err := w.WriteGammaWithSlot(uint32(m.Length-1), false, slot); err != nil {
				return rep, 0, err
			}
			rep = m.Offset
		}

		stats.observeMatch(m.Offset, m.Length, isRep)
		i += run + m.Length
		stats.observeSafeDistance(i - w.Len())
	}

	return rep, 0, nil
}

// emitEndOfData flushes any final pending literals (none written by emit
// because they ran off the end of the block) and appends the end-of-data
// marker: a bare match-with-offset token whose gamma-encoded high part is
// 256, an out-of-range value every ZX0 decoder recognizes as "stop" before
// it would otherwise read a low byte or length (spec §4.8, §7).
func (ctx *Context) emitEndOfData(w *bitio.Writer, blockWindow []byte, firstCommand bool, trailingLiterals int, stats *Stats) error {
	first := firstCommand
	if trailingLiterals > 0 {
		if !first {
			if err := w.WriteBit(0); err != nil {
				return err
			}
		}
		first = false
		if err := w.WriteGamma(uint32(trailingLiterals), false); err != nil {
			return err
		}
		tail := blockWindow[len(blockWindow)-trailingLiterals:]
		if err := w.WriteRawBytes(tail); err != nil {
			return err
		}
		stats.observeLiteralRun(trailingLiterals)
		stats.observeSafeDistance(len(blockWindow) - w.Len())
	}

	// Unlike every other command, the end-of-data match token is written
	// unconditionally, even when first is still true (the empty-input
	// block: no literal ran to consume the "first command" state, so the
	// decoder's literal-omission convention never applies here).
	if err := w.WriteBit(1); err != nil {
		return err
	}
	return w.WriteGamma(256, ctx.flags&FlagIsInverted != 0)
}
