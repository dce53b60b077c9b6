package zx0

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestCompressEmptyInputConsumesNothing(t *testing.T) {
	out, stats, err := Compress(nil, DefaultOptions())
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(decodeZX0(out, 0)) != 0 {
		t.Fatalf("decoded non-empty output for empty input")
	}
	if stats.NumCommands != 0 {
		t.Fatalf("NumCommands = %d, want 0", stats.NumCommands)
	}
}

func TestCompressSingleLiteralByteRoundTrips(t *testing.T) {
	input := []byte{0x41}
	out, _, err := Compress(input, DefaultOptions())
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	got := decodeZX0(out, len(input))
	if !bytes.Equal(got, input) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, input)
	}
	// One literal byte plus a run header and the trailing end-of-data
	// marker fits comfortably in a handful of bytes.
	if len(out) > 8 {
		t.Fatalf("compressed a single byte to %d bytes, expected a small fixed overhead", len(out))
	}
}

func TestCompressLongRepeatedByteRunCapsAtLCPMax(t *testing.T) {
	input := bytes.Repeat([]byte{0x41}, 65536)
	out, stats, err := Compress(input, DefaultOptions())
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	got := decodeZX0(out, len(input))
	if !bytes.Equal(got, input) {
		t.Fatalf("round trip mismatch over a %d-byte repeated run", len(input))
	}
	if stats.MaxRLE1Len != 65535 {
		t.Fatalf("MaxRLE1Len = %d, want 65535 (the match-extension cap)", stats.MaxRLE1Len)
	}
	// One leading literal plus one match covering the rest: the whole run
	// collapses to a single match command (NumCommands only counts
	// matches; the leading literal run has no command of its own).
	if stats.NumCommands != 1 {
		t.Fatalf("NumCommands = %d, want 1 (a single match covering the run)", stats.NumCommands)
	}
}

func TestCompressAlternatingPairUsesOffsetTwo(t *testing.T) {
	pair := []byte{0x00, 0x01}
	input := bytes.Repeat(pair, 32768)
	out, stats, err := Compress(input, DefaultOptions())
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	got := decodeZX0(out, len(input))
	if !bytes.Equal(got, input) {
		t.Fatalf("round trip mismatch over a %d-byte alternating run", len(input))
	}
	if stats.MinOffset != 2 {
		t.Fatalf("MinOffset = %d, want 2", stats.MinOffset)
	}
	if stats.MaxRLE2Len != 65534 {
		t.Fatalf("MaxRLE2Len = %d, want 65534", stats.MaxRLE2Len)
	}
}

func TestCompressTwoIdenticalCountingBlocksFindsLongBackReference(t *testing.T) {
	block := make([]byte, 256)
	for i := range block {
		block[i] = byte(i)
	}
	input := append(append([]byte{}, block...), block...)

	out, _, err := Compress(input, DefaultOptions())
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	got := decodeZX0(out, len(input))
	if !bytes.Equal(got, input) {
		t.Fatalf("round trip mismatch")
	}
	// 256 literal bytes plus a cheap offset-256/length-256 match should
	// beat spelling out the second half as literals by a wide margin.
	if len(out) >= 350 {
		t.Fatalf("compressed size %d too large for a single long back-reference over %d bytes", len(out), len(input))
	}
}

func TestCompressRandomBytesStaysNearFormatOverheadBound(t *testing.T) {
	input := make([]byte, 4096)
	rng := rand.New(rand.NewSource(42))
	rng.Read(input)

	out, _, err := Compress(input, DefaultOptions())
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	got := decodeZX0(out, len(input))
	if !bytes.Equal(got, input) {
		t.Fatalf("round trip mismatch over random input")
	}

	// Incompressible data can't beat roughly one run-header bit every
	// MaxVarLen-scale chunk; this upper bound leaves headroom above the
	// documented overhead for literal run framing.
	base := 4096 + (4096+63)/64
	upperBound := int(float64(base) * 1.04)
	if len(out) > upperBound {
		t.Fatalf("compressed size %d exceeds overhead bound %d for incompressible input", len(out), upperBound)
	}
}
