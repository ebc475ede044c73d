package domain

import (
	"errors"
	"fmt"
)

// Not-found conditions. These are valid pipeline outcomes, distinct from
// infrastructure failures, and map to HTTP 404 at the boundary.
var (
	// ErrNoSearchResults reports that research yielded zero raw results.
	ErrNoSearchResults = errors.New("no search results")

	// ErrNoRelevantContext reports that retrieval found no relevant chunks.
	ErrNoRelevantContext = errors.New("no relevant context")
)

// StoreError is a fatal vector-store failure (clear, embed, upsert or
// retrieve). It aborts the pipeline at the stage it occurred.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// GenerationError is a fatal answer-synthesis failure.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("answer generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ResearchError is a non-adapter infrastructure failure inside the
// research stage. Individual category-search failures never produce one;
// those degrade to empty category results.
type ResearchError struct {
	Err error
}

func (e *ResearchError) Error() string {
	return fmt.Sprintf("research pipeline failed: %v", e.Err)
}

func (e *ResearchError) Unwrap() error { return e.Err }
