package parser

import "github.com/zx0go/zx0/internal/wordcmp"

// RLETable holds, for every position in a window, the length of the
// maximal constant-byte run starting there. Consumed as an upper bound on
// rep-match length extension in self-similar regions (spec §4.4, §4.5's
// "fast path that skips the first min(rle_len[i], rle_len[i-rep]) bytes").
type RLETable struct {
	len []uint16
}

// NewRLETable allocates a table sized to a window of windowLen bytes.
func NewRLETable(windowLen int) *RLETable {
	return &RLETable{len: make([]uint16, windowLen)}
}

// At returns the run length starting at pos.
func (t *RLETable) At(pos int) int { return int(t.len[pos]) }

// Build scans window[start:end), filling in every maximal constant-byte
// run. Runs are found word-at-a-time via wordcmp.RunLength rather than a
// byte-by-byte inner loop, reusing the project's one fast-compare
// primitive for a second caller.
func (t *RLETable) Build(window []byte, start, end int) {
	for k := start; k < end; {
		runLen := wordcmp.RunLength(window, k, end-k)
		if runLen == 0 {
			runLen = 1
		}
		for i := 0; i < runLen; i++ {
			remaining := runLen - i
			if remaining > 0xFFFF {
				remaining = 0xFFFF
			}
			t.len[k+i] = uint16(remaining)
		}
		k += runLen
	}
}
