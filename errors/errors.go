// Package errors defines all exported error sentinels for the superkmer library.
//
// This is the single source of truth for error values. Both the top-level
// superkmer package and the command-line tool import from here, ensuring
// errors.Is checks work across package boundaries.
package errors

import "errors"

// Configuration errors, detected before any I/O.
var (
	ErrKOutOfRange          = errors.New("superkmer: k must be in [1, 32]")
	ErrMinimizerOutOfRange  = errors.New("superkmer: minimizer length must be positive")
	ErrMinimizerTooLarge    = errors.New("superkmer: minimizer length must not exceed k")
	ErrShardBasesOutOfRange = errors.New("superkmer: shard base count must be in [1, 12]")
	ErrThreadsOutOfRange    = errors.New("superkmer: thread count must be positive")
	ErrNoInput              = errors.New("superkmer: no input files")
)

// Input errors.
var (
	ErrInputNotFound = errors.New("superkmer: input file not found")
	ErrEmptyListFile = errors.New("superkmer: input list file names no files")
	ErrNotFastq      = errors.New("superkmer: input is not FASTQ")
)
