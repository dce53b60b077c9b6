package parser

import "errors"

// ErrOutputOverflow is returned when a write would exceed the caller's
// output capacity. The block is considered incompressible; the driver may
// fall back to a raw-literal framing (out of scope here).
var ErrOutputOverflow = errors.New("parser: output buffer overflow")

// ErrFormatConstraint is returned when an offset falls outside
// [MinOffset, min(maxOffset, MaxOffset)], or the first command of the
// first block would be a match rather than a literal.
var ErrFormatConstraint = errors.New("parser: format constraint violation")

// ErrInitFailed is returned by NewContext when a configuration value is
// unusable (Arrivals below 4).
var ErrInitFailed = errors.New("parser: initialization failed")
