// Package index pushes saved listings into Elasticsearch, embedding their
// text first so the index supports vector search.
package index

import (
	"context"

	"github.com/LouYuanbo1/listingagent/internal/domain/entity"
	"github.com/LouYuanbo1/listingagent/internal/domain/model"
	"github.com/LouYuanbo1/listingagent/internal/infra/embedding"
	"github.com/LouYuanbo1/listingagent/internal/infra/persistence/es"
	log "github.com/sirupsen/logrus"
)

// Service indexes any crawlable entity E through its document projection D.
type Service[D model.Document, E entity.Crawlable[D]] struct {
	esClient es.TypedEsClient[D]
	embedder embedding.Embedder
}

func InitService[D model.Document, E entity.Crawlable[D]](esClient es.TypedEsClient[D], embedder embedding.Embedder) *Service[D, E] {
	return &Service[D, E]{esClient: esClient, embedder: embedder}
}

// IndexListings embeds and bulk-indexes a batch of saved listings. Embedding
// failures are logged and leave the affected documents without vectors, the
// documents are indexed either way.
func (s *Service[D, E]) IndexListings(ctx context.Context, listings []E) error {
	if len(listings) == 0 {
		return nil
	}
	docs := make([]D, 0, len(listings))
	for _, listing := range listings {
		docs = append(docs, listing.ToDocument())
	}
	s.embedDocs(ctx, docs)
	return s.esClient.BulkIndexDocsWithID(ctx, docs)
}

func (s *Service[D, E]) embedDocs(ctx context.Context, docs []D) {
	batchSize := s.embedder.BatchSize()
	for start := 0; start < len(docs); start += batchSize {
		end := min(start+batchSize, len(docs))

		texts := make([]string, 0, end-start)
		for _, doc := range docs[start:end] {
			texts = append(texts, doc.GetEmbeddingString())
		}
		vectors, err := s.embedder.Embed(ctx, texts)
		if err != nil {
			log.WithError(err).Error("embed listing batch")
			continue
		}
		for i, vector := range vectors {
			docs[start+i].SetEmbedding(vector)
		}
	}
}
