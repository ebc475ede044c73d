package domain

import "context"

// VectorEncoder turns texts into embedding vectors via the configured
// embedding model.
type VectorEncoder interface {
	// Encode returns one embedding per input text, in input order.
	Encode(ctx context.Context, texts []string) ([][]float32, error)
	// Version identifies the embedding model in use.
	Version() string
}
