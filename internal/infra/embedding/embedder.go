package embedding

import "context"

// Embedder turns listing text into fixed-size vectors for indexing.
type Embedder interface {
	BatchSize() int
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
