package zx0

import "github.com/zx0go/zx0/internal/batch"

// Result is one input's outcome from CompressBatch.
type Result struct {
	Output []byte
	Stats  Stats
	Err    error
}

// CompressBatch compresses every input in inputs independently, in
// parallel, using opts for each (Options.OnBlock, if set, is called from
// whichever worker goroutine compressed that input — callers relying on it
// must synchronize themselves). Results are returned in input order,
// regardless of completion order.
//
// This is not a parallel chunking of one logical stream: ZX0's single
// rep-offset register makes a stream inherently sequential to parse, so the
// only concurrency this offers is across independent inputs.
func CompressBatch(inputs [][]byte, opts Options) ([]Result, error) {
	stats := make([]Stats, len(inputs))
	d := batch.NewDispatcher(batch.DefaultNumWorkers, func(index int, input []byte) ([]byte, error) {
		out, s, err := Compress(input, opts)
		stats[index] = s
		return out, err
	})

	jobResults := d.Run(inputs)
	results := make([]Result, len(jobResults))
	for i, jr := range jobResults {
		results[i] = Result{Output: jr.Output, Stats: stats[i], Err: jr.Err}
	}
	return results, nil
}
