// Package batch provides a worker pool for compressing many independent
// inputs concurrently. ZX0's single rep-offset register makes a stream
// inherently sequential to parse, so the only concurrency shape available
// here is N independent streams, each compressed start-to-finish by its own
// single-threaded parser.Context — never a parallel chunking of one stream.
package batch

import (
	"runtime"
	"sync"
)

// DefaultNumWorkers, when passed to NewDispatcher, selects
// runtime.GOMAXPROCS(0) workers.
const DefaultNumWorkers = 0

// CompressFunc compresses one input independently of any other; Dispatcher
// invokes it concurrently across workers, one call per input, never two
// calls sharing any state. index is the input's position in the slice
// passed to Run, so callers needing to stash extra per-input data (such as
// compression statistics) alongside the returned bytes can key it by index.
type CompressFunc func(index int, input []byte) (output []byte, err error)

// Dispatcher distributes independent compression jobs across a fixed pool
// of worker goroutines.
type Dispatcher struct {
	numWorkers int
	compress   CompressFunc
}

// NewDispatcher creates a Dispatcher that runs fn on numWorkers goroutines.
// numWorkers <= 0 selects runtime.GOMAXPROCS(0).
func NewDispatcher(numWorkers int, fn CompressFunc) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	return &Dispatcher{numWorkers: numWorkers, compress: fn}
}

// NumWorkers returns the number of worker goroutines this Dispatcher runs.
func (d *Dispatcher) NumWorkers() int {
	return d.numWorkers
}

// Run compresses every input independently and returns results in input
// order, regardless of which order the workers actually finish in.
func (d *Dispatcher) Run(inputs [][]byte) []JobResult {
	if len(inputs) == 0 {
		return nil
	}

	jobs := make(chan job, d.numWorkers*2)
	collector := NewResultsCollector(len(inputs))

	var wg sync.WaitGroup
	workers := d.numWorkers
	if workers > len(inputs) {
		workers = len(inputs)
	}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				out, err := d.compress(j.index, j.input)
				collector.AddResult(JobResult{Index: j.index, Output: out, Err: err})
			}
		}()
	}

	for i, in := range inputs {
		jobs <- job{index: i, input: in}
	}
	close(jobs)

	wg.Wait()
	return collector.All()
}

type job struct {
	index int
	input []byte
}
