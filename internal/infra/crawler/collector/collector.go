package collector

import (
	"github.com/gocolly/colly/v2"
)

// CollyCrawler wraps a colly collector for static-HTML traversal, where the
// listing anchors are present without rendering.
type CollyCrawler interface {
	Visit(url string) error
	Wait()
	OnRequest(callback func(r *colly.Request))
	OnHTML(selector string, callback func(e *colly.HTMLElement))
	OnError(callback func(r *colly.Response, err error))
}
