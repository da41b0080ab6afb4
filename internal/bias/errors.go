package bias

import "errors"

// Summarization errors. Row-level malformation is tolerated (skip and count);
// these abort the whole summarization instead of returning partial results.
var (
	// ErrNoGenderColumn means no header matched the configured synonym list.
	ErrNoGenderColumn = errors.New("no gender-like column found in header row")

	// ErrEmptyDataset means no row contained a classifiable gender value.
	ErrEmptyDataset = errors.New("dataset contains no classifiable gender values")
)
