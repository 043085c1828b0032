package embedding

import (
	"context"
	"strconv"

	"github.com/LouYuanbo1/listingagent/internal/config"
	"github.com/cloudwego/eino-ext/components/embedding/ollama"
	einoembedding "github.com/cloudwego/eino/components/embedding"
)

type embedder struct {
	model     einoembedding.Embedder
	batchSize int
}

func InitEmbedder(ctx context.Context, cfg *config.Config) (Embedder, error) {
	model, err := ollama.NewEmbedder(ctx, &ollama.EmbeddingConfig{
		Model:   cfg.Embedder.Model,
		BaseURL: cfg.Embedder.Host + ":" + strconv.Itoa(cfg.Embedder.Port),
	})
	if err != nil {
		return nil, err
	}
	return &embedder{model: model, batchSize: cfg.Embedder.BatchSize}, nil
}

func (e *embedder) BatchSize() int {
	return e.batchSize
}

// Embed converts texts to float32 vectors. The underlying model returns
// float64 vectors, most vector fields store float32.
func (e *embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := e.model.EmbedStrings(ctx, texts)
	if err != nil {
		return nil, err
	}
	converted := make([][]float32, 0, len(vectors))
	for _, vector := range vectors {
		floats := make([]float32, len(vector))
		for i, f := range vector {
			floats[i] = float32(f)
		}
		converted = append(converted, floats)
	}
	return converted, nil
}
