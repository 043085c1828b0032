package model

import (
	"github.com/elastic/go-elasticsearch/v9/typedapi/types"
)

const listingIndex = "listings"

// embeddingDims must match the dimensionality of the configured embedding model.
const embeddingDims = 768

// ListingDoc is the Elasticsearch projection of a saved listing. The document
// ID is the canonical URL, so re-running a search upserts instead of
// duplicating.
type ListingDoc struct {
	CanonicalURL string    `json:"canonical_url"`
	Title        string    `json:"title"`
	Address      string    `json:"address"`
	BuiltYear    int       `json:"built_year"`
	Embedding    []float32 `json:"embedding,omitempty"`
}

func (d *ListingDoc) GetID() string {
	return d.CanonicalURL
}

func (d *ListingDoc) GetIndex() string {
	return listingIndex
}

func (d *ListingDoc) GetTypeMapping() *types.TypeMapping {
	embedding := types.NewDenseVectorProperty()
	dims := embeddingDims
	embedding.Dims = &dims

	return &types.TypeMapping{
		Properties: map[string]types.Property{
			"canonical_url": types.NewKeywordProperty(),
			"title":         types.NewTextProperty(),
			"address":       types.NewTextProperty(),
			"built_year":    types.NewIntegerNumberProperty(),
			"embedding":     embedding,
		},
	}
}

func (d *ListingDoc) GetEmbeddingString() string {
	return d.Title + " " + d.Address
}

func (d *ListingDoc) SetEmbedding(embedding []float32) {
	d.Embedding = embedding
}

func (d *ListingDoc) GetEmbedding() []float32 {
	return d.Embedding
}
