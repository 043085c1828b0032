package param

// Traverse configures one pagination session over the search results.
type Traverse struct {
	StartURL        string   `json:"start_url"`
	MaxPages        int      `json:"max_pages"`
	MaxListings     int      `json:"max_listings"`
	ScrollSteps     int      `json:"scroll_steps"`
	ShowMoreRounds  int      `json:"show_more_rounds"`
	NextWaitSeconds int      `json:"next_wait_seconds"`
	LinkSelectors   []string `json:"link_selectors"`
	PathPattern     string   `json:"path_pattern"`
}

func (t *Traverse) IsValid() bool {
	return t.StartURL != "" && t.MaxPages > 0 && t.NextWaitSeconds > 0
}

// DefaultLinkSelectors lists anchor strategies from most to least specific.
// The last resort, any link whose href carries PathPattern, is applied
// separately when these produce nothing.
func DefaultLinkSelectors() []string {
	return []string{
		"li.placard a[href]",
		"article.placard a[href]",
		".placard a[href]",
		"a.placardTitle[href]",
		"a.property-link[href]",
		"a[href*='/apartments/']",
	}
}
