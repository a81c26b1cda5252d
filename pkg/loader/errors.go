package loader

import "errors"

// Sentinel errors for input failures. Callers should use errors.Is.
var (
	// ErrMissingInput means no file matched a required pattern. Fatal.
	ErrMissingInput = errors.New("loader: no matching input file")

	// ErrUnreadableFile means a single file could not be opened or parsed.
	// The file is skipped.
	ErrUnreadableFile = errors.New("loader: unreadable file")

	// ErrMalformedSchema means a file or sheet lacks a required column.
	// That unit is skipped.
	ErrMalformedSchema = errors.New("loader: missing required column")

	// ErrNoInput means every candidate file was skipped, so there is
	// nothing to report on. Distinct from an empty result.
	ErrNoInput = errors.New("loader: no input file could be read")
)
