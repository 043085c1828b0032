package traverse

import (
	"fmt"
	"sync"

	"github.com/LouYuanbo1/listingagent/internal/infra/crawler/collector"
	"github.com/LouYuanbo1/listingagent/internal/urlnorm"
	"github.com/LouYuanbo1/listingagent/param"
	"github.com/gocolly/colly/v2"
	log "github.com/sirupsen/logrus"
)

// StaticTraverser discovers listing links without a browser. It only works
// against sites that serve their anchors in the initial HTML; extraction still
// goes through a rendered session.
type StaticTraverser struct {
	crawler collector.CollyCrawler
	norm    *urlnorm.Normalizer
}

func NewStaticTraverser(crawler collector.CollyCrawler, norm *urlnorm.Normalizer) *StaticTraverser {
	return &StaticTraverser{crawler: crawler, norm: norm}
}

// Run visits the start URL, collects links from every configured selector
// strategy, and follows rel=next pagination. Colly's own visited set provides
// the loop guard, MaxPages is enforced on top of it.
func (t *StaticTraverser) Run(p *param.Traverse) ([]string, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("invalid traverse params: %+v", p)
	}

	var (
		mu           sync.Mutex
		collected    []string
		seen         = make(map[string]struct{})
		visitedPages int
	)

	add := func(e *colly.HTMLElement) {
		href := e.Request.AbsoluteURL(e.Attr("href"))
		key := t.norm.Normalize(href)
		if key == "" {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if p.MaxListings > 0 && len(collected) >= p.MaxListings {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		collected = append(collected, key)
	}

	for _, selector := range p.LinkSelectors {
		t.crawler.OnHTML(selector, add)
	}
	if p.PathPattern != "" {
		t.crawler.OnHTML("a[href*='"+p.PathPattern+"']", add)
	}

	t.crawler.OnHTML("a[rel='next']", func(e *colly.HTMLElement) {
		mu.Lock()
		capped := p.MaxListings > 0 && len(collected) >= p.MaxListings
		pageCap := visitedPages >= p.MaxPages
		mu.Unlock()
		if capped || pageCap {
			return
		}
		if err := e.Request.Visit(e.Attr("href")); err != nil {
			log.WithError(err).Debug("follow next page")
		}
	})

	t.crawler.OnRequest(func(r *colly.Request) {
		mu.Lock()
		visitedPages++
		page := visitedPages
		mu.Unlock()
		log.WithFields(log.Fields{"page": page, "url": r.URL.String()}).Info("visiting result page")
	})

	t.crawler.OnError(func(r *colly.Response, err error) {
		log.WithError(err).WithField("url", r.Request.URL.String()).Warn("result page request failed")
	})

	if err := t.crawler.Visit(p.StartURL); err != nil {
		return nil, fmt.Errorf("load search page: %w", err)
	}
	t.crawler.Wait()

	if p.MaxListings > 0 && len(collected) > p.MaxListings {
		collected = collected[:p.MaxListings]
	}
	return collected, nil
}
