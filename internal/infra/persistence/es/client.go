package es

import (
	"context"

	"github.com/LouYuanbo1/listingagent/internal/domain/model"
)

// TypedEsClient persists documents of one mapped index. D carries the index
// name and mapping through model.Document.
type TypedEsClient[D model.Document] interface {
	CreateIndexWithMapping(ctx context.Context) error
	BulkIndexDocsWithID(ctx context.Context, docs []D) error
	CountDocs(ctx context.Context) (int64, error)
}
