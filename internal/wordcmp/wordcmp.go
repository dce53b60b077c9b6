// Package wordcmp provides the project's one sanctioned fast byte-compare
// primitive: extending a candidate match as far as it will go, and scanning
// a short run of identical bytes, using 8/4/1-byte strides instead of a
// byte-at-a-time loop. CPU feature detection gates nothing about the
// algorithm itself (native word loads are safe on every arch Go supports);
// it only decides whether the 64-bit stride is worth attempting on arches
// where unaligned access is slow.
package wordcmp

import (
	"encoding/binary"
	"math/bits"
	"runtime"
	"sync"
)

var (
	isAMD64 = runtime.GOARCH == "amd64"
	isARM64 = runtime.GOARCH == "arm64"

	hasFastUnalignedWord bool

	detectOnce sync.Once
)

// Features reports which fast-path strides are available on this CPU.
type Features struct {
	// FastUnalignedWord is true when 8-byte unaligned native-endian loads
	// are safe and fast, letting ExtendMatch and RunLength use the 64-bit
	// stride instead of falling back to 4- and 1-byte strides (ExtendMatch)
	// or single bytes (RunLength).
	FastUnalignedWord bool
}

// DetectFeatures initializes and returns the CPU feature set this process
// observed. Safe to call repeatedly; detection runs once.
func DetectFeatures() Features {
	detectOnce.Do(detectFeatures)
	return Features{FastUnalignedWord: hasFastUnalignedWord}
}

func init() {
	detectOnce.Do(detectFeatures)
}

func detectFeatures() {
	// x86-64 and arm64 both guarantee fast unaligned word access; every
	// other arch falls back to the conservative per-byte comparison.
	hasFastUnalignedWord = isAMD64 || isARM64
	detectFeaturesImpl()
}

// ExtendMatch returns the length of the common prefix of a and b, capped at
// max. Used both to measure a candidate match's true length (a = bytes
// already seen, b = bytes at the candidate back-reference) and to extend a
// rep-offset match past the prefix the run-length table already covers.
func ExtendMatch(a, b []byte, max int) int {
	if max > len(a) {
		max = len(a)
	}
	if max > len(b) {
		max = len(b)
	}
	n := 0
	if hasFastUnalignedWord {
		for n+8 <= max {
			wa := binary.LittleEndian.Uint64(a[n:])
			wb := binary.LittleEndian.Uint64(b[n:])
			if wa != wb {
				return n + bits.TrailingZeros64(wa^wb)/8
			}
			n += 8
		}
	}
	for n+4 <= max {
		wa := binary.LittleEndian.Uint32(a[n:])
		wb := binary.LittleEndian.Uint32(b[n:])
		if wa != wb {
			return n + bits.TrailingZeros32(wa^wb)/8
		}
		n += 4
	}
	for n < max && a[n] == b[n] {
		n++
	}
	return n
}

// RunLength returns how many times data[pos] repeats starting at pos,
// capped at max. Used to seed the run-length table that short-circuits
// self-overlapping rep-offset scans.
func RunLength(data []byte, pos int, max int) int {
	if pos >= len(data) || max <= 0 {
		return 0
	}
	b := data[pos]
	limit := pos + max
	if limit > len(data) {
		limit = len(data)
	}
	n := pos
	if hasFastUnalignedWord {
		fill := uint64(b) * 0x0101010101010101
		for n+8 <= limit {
			w := binary.LittleEndian.Uint64(data[n:])
			if w != fill {
				return n - pos + bits.TrailingZeros64(w^fill)/8
			}
			n += 8
		}
	}
	for n < limit && data[n] == b {
		n++
	}
	return n - pos
}
