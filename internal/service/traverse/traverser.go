// Package traverse walks paginated search results and yields an
// order-preserving, deduplicated sequence of canonical listing links.
package traverse

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/LouYuanbo1/listingagent/internal/infra/crawler/chrome"
	"github.com/LouYuanbo1/listingagent/internal/urlnorm"
	"github.com/LouYuanbo1/listingagent/param"
	log "github.com/sirupsen/logrus"
)

const (
	scrollStepPause   = 250 * time.Millisecond
	secondaryScrolls  = 5
	secondaryPause    = 120 * time.Millisecond
	preClickPause     = 150 * time.Millisecond
	postClickPause    = 600 * time.Millisecond
	settleAfterNext   = 600 * time.Millisecond
	urlChangePoll     = 300 * time.Millisecond
	noChangeSettle    = 1200 * time.Millisecond
	linksPerPageBreak = 30
)

var showMoreLabels = []string{"show more", "load more", "view more"}

// nextLocator pairs a CSS query with an acceptance check, ordered from the
// most explicit pagination markup to class-name heuristics.
type nextLocator struct {
	selector string
	accept   func(chrome.Element) bool
}

// Traverser drives one browser session through the result pages. It owns the
// session for the duration of the run and is not safe for concurrent use.
type Traverser struct {
	session chrome.Session
	norm    *urlnorm.Normalizer
}

func NewTraverser(session chrome.Session, norm *urlnorm.Normalizer) *Traverser {
	return &Traverser{session: session, norm: norm}
}

// Run paginates from p.StartURL until a stop condition: no next control, a
// previously visited page URL, the page cap, or the listing cap. DOM and click
// failures are absorbed per step; links collected so far are always returned.
func (t *Traverser) Run(p *param.Traverse) ([]string, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("invalid traverse params: %+v", p)
	}
	if err := t.session.Navigate(p.StartURL); err != nil {
		return nil, fmt.Errorf("load search page: %w", err)
	}

	var collected []string
	seen := make(map[string]struct{})
	visitedPages := make(map[string]struct{})

	for pageIndex := 1; pageIndex <= p.MaxPages; pageIndex++ {
		current := t.session.CurrentURL()
		pageLog := log.WithFields(log.Fields{"page": pageIndex, "url": current})

		if _, ok := visitedPages[current]; ok {
			pageLog.Warn("page URL already visited, stopping pagination to avoid a loop")
			break
		}
		visitedPages[current] = struct{}{}

		t.reveal(p)

		added := t.collectLinks(p, seen, &collected)
		pageLog.WithFields(log.Fields{"new": added, "total": len(collected)}).Info("collected listing links")

		if p.MaxListings > 0 && len(collected) >= p.MaxListings {
			pageLog.WithField("max_listings", p.MaxListings).Info("listing cap reached, stopping pagination")
			break
		}

		if !t.advance(current, p) {
			pageLog.Info("no next control found, finished paginating")
			break
		}
	}

	return collected, nil
}

// reveal scrolls incrementally to trigger lazy loading, then clicks any
// visible show-more controls for a bounded number of rounds.
func (t *Traverser) reveal(p *param.Traverse) {
	for i := 0; i < p.ScrollSteps; i++ {
		_ = t.session.EvalJS("window.scrollBy(0, window.innerHeight * 0.8)")
		time.Sleep(scrollStepPause)
	}

	for round := 0; round < p.ShowMoreRounds; round++ {
		if !t.clickShowMore() {
			break
		}
	}

	for i := 0; i < secondaryScrolls; i++ {
		_ = t.session.EvalJS("window.scrollBy(0, 400)")
		time.Sleep(secondaryPause)
	}
}

func (t *Traverser) clickShowMore() bool {
	buttons, err := t.session.Elements("button")
	if err != nil || len(buttons) == 0 {
		return false
	}
	clicked := false
	for _, button := range buttons {
		text, err := button.Text()
		if err != nil {
			continue
		}
		lower := strings.ToLower(text)
		match := false
		for _, label := range showMoreLabels {
			if strings.Contains(lower, label) {
				match = true
				break
			}
		}
		if !match {
			continue
		}
		if err := button.ScrollIntoView(); err == nil {
			time.Sleep(preClickPause)
		}
		if err := button.Click(); err != nil {
			continue
		}
		clicked = true
		time.Sleep(postClickPause)
	}
	return clicked
}

// collectLinks walks the selector strategies in order and appends every link
// whose canonical form has not been seen in this session. When the primary
// strategies find nothing, it falls back to any anchor matching PathPattern.
func (t *Traverser) collectLinks(p *param.Traverse, seen map[string]struct{}, collected *[]string) int {
	pageLinks := 0
	for _, selector := range p.LinkSelectors {
		pageLinks += t.collectFromSelector(selector, p, seen, collected)
		if p.MaxListings > 0 && len(*collected) >= p.MaxListings {
			return pageLinks
		}
		if pageLinks >= linksPerPageBreak {
			break
		}
	}

	if pageLinks == 0 && p.PathPattern != "" {
		fallback := "a[href*='" + p.PathPattern + "']"
		pageLinks += t.collectFromSelector(fallback, p, seen, collected)
	}
	return pageLinks
}

func (t *Traverser) collectFromSelector(selector string, p *param.Traverse, seen map[string]struct{}, collected *[]string) int {
	anchors, err := t.session.Elements(selector)
	if err != nil {
		return 0
	}
	added := 0
	for _, anchor := range anchors {
		href, err := anchor.Attribute("href")
		if err != nil || href == "" {
			continue
		}
		key := t.norm.Normalize(href)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		*collected = append(*collected, key)
		added++
		if p.MaxListings > 0 && len(*collected) >= p.MaxListings {
			break
		}
	}
	return added
}

// advance finds and activates a next-page control. A failed click falls back
// to direct navigation on the control's href. Returns false when no usable
// control exists, the normal end-of-results condition.
func (t *Traverser) advance(currentURL string, p *param.Traverse) bool {
	for _, locator := range nextLocators() {
		candidates, err := t.session.Elements(locator.selector)
		if err != nil {
			continue
		}
		for _, el := range candidates {
			if !locator.accept(el) {
				continue
			}
			if t.activateNext(el, currentURL) {
				t.waitForURLChange(currentURL, time.Duration(p.NextWaitSeconds)*time.Second)
				time.Sleep(settleAfterNext)
				return true
			}
		}
	}
	return false
}

func (t *Traverser) activateNext(el chrome.Element, currentURL string) bool {
	href, _ := el.Attribute("href")
	if err := el.ScrollIntoView(); err == nil {
		time.Sleep(preClickPause)
	}
	if err := el.Click(); err == nil {
		return true
	}
	if href == "" {
		return false
	}
	target := resolveHref(currentURL, href)
	if target == "" {
		return false
	}
	return t.session.Navigate(target) == nil
}

func (t *Traverser) waitForURLChange(old string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if current := t.session.CurrentURL(); current != "" && current != old {
			return
		}
		time.Sleep(urlChangePoll)
	}
	// URL never changed inside the window, give the content a moment to settle.
	time.Sleep(noChangeSettle)
}

func nextLocators() []nextLocator {
	acceptAny := func(chrome.Element) bool { return true }
	return []nextLocator{
		{selector: "a[rel='next']", accept: acceptAny},
		{selector: "a[aria-label]", accept: func(el chrome.Element) bool {
			label, err := el.Attribute("aria-label")
			return err == nil && strings.Contains(strings.ToLower(label), "next")
		}},
		{selector: "a", accept: func(el chrome.Element) bool {
			text, err := el.Text()
			return err == nil && strings.Contains(text, "Next")
		}},
		{selector: "a", accept: func(el chrome.Element) bool {
			text, err := el.Text()
			if err != nil {
				return false
			}
			return strings.ContainsAny(text, "›»>")
		}},
		{selector: "li.next a", accept: acceptAny},
		{selector: "a.next", accept: acceptAny},
	}
}

func resolveHref(base, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(ref).String()
}
