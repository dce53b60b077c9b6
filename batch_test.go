package zx0

import (
	"bytes"
	"errors"
	"testing"
)

func TestCompressBatchPreservesOrderAndRoundTrips(t *testing.T) {
	inputs := [][]byte{
		[]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		{},
		bytes.Repeat([]byte{0x01, 0x02}, 500),
	}

	results, err := CompressBatch(inputs, DefaultOptions())
	if err != nil {
		t.Fatalf("CompressBatch: %v", err)
	}
	if len(results) != len(inputs) {
		t.Fatalf("got %d results, want %d", len(results), len(inputs))
	}

	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("results[%d].Err = %v", i, r.Err)
		}
		got := decodeZX0(r.Output, len(inputs[i]))
		if !bytes.Equal(got, inputs[i]) {
			t.Fatalf("results[%d]: round trip mismatch, got %d bytes want %d", i, len(got), len(inputs[i]))
		}
	}
}

func TestCompressBatchCapturesPerInputError(t *testing.T) {
	badOpts := DefaultOptions()
	badOpts.Arrivals = 2 // forces NewContext to fail inside every worker

	results, err := CompressBatch([][]byte{[]byte("x"), []byte("y")}, badOpts)
	if err != nil {
		t.Fatalf("CompressBatch itself should not fail: %v", err)
	}
	for i, r := range results {
		if !errors.Is(r.Err, ErrInitFailed) {
			t.Fatalf("results[%d].Err = %v, want ErrInitFailed", i, r.Err)
		}
	}
}
