package entity

import (
	"github.com/LouYuanbo1/listingagent/internal/domain/model"
)

// SavedListing is a listing that passed every filter, together with the
// canonical key its result row was deduplicated on.
type SavedListing struct {
	CanonicalURL string
	Title        string
	Address      string
	BuiltYear    int
	URL          string
}

func (l *SavedListing) ToDocument() *model.ListingDoc {
	return &model.ListingDoc{
		CanonicalURL: l.CanonicalURL,
		Title:        l.Title,
		Address:      l.Address,
		BuiltYear:    l.BuiltYear,
	}
}

// ResultRow projects the listing into the shape the result sink persists.
func (l *SavedListing) ResultRow() model.ResultRow {
	return model.ResultRow{
		Title:     l.Title,
		Address:   l.Address,
		BuiltYear: l.BuiltYear,
		URL:       l.URL,
	}
}
