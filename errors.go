package zx0

import "github.com/zx0go/zx0/internal/parser"

// Re-exported so callers never need to import internal/parser directly to
// inspect a returned error with errors.Is.
var (
	// ErrOutputOverflow means a block's optimally-parsed command stream
	// would not fit the worst-case destination buffer Compress allocated.
	// This should not occur under normal use; Compress sizes its buffer
	// generously up front.
	ErrOutputOverflow = parser.ErrOutputOverflow

	// ErrFormatConstraint means an offset fell outside the representable
	// range, or the stream's first command was not a literal run.
	ErrFormatConstraint = parser.ErrFormatConstraint

	// ErrInitFailed means NewContext (invoked internally by Compress and
	// CompressBatch) could not allocate its arenas, typically from an
	// invalid Options value such as Arrivals < 4.
	ErrInitFailed = parser.ErrInitFailed
)
