package entity

import (
	"github.com/LouYuanbo1/listingagent/internal/domain/model"
)

// Crawlable is the entity side of the persistence boundary: anything produced
// by the extraction pipeline that can be projected into an indexable document.
// D is the document type and must implement model.Document.
type Crawlable[D model.Document] interface {
	*SavedListing
	ToDocument() D
}
