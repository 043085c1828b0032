// Package extract runs the per-link fetch/extract/filter/classify pipeline and
// partitions traversal output across workers.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/LouYuanbo1/listingagent/internal/domain/model"
	"github.com/LouYuanbo1/listingagent/internal/infra/crawler/chrome"
	"github.com/LouYuanbo1/listingagent/param"
	log "github.com/sirupsen/logrus"
)

var builtInPattern = regexp.MustCompile(`(?i)Built in\s*([0-9]{4})`)

var titleSelectors = []string{"h1"}

var addressSelectors = []string{".propertyAddress", ".property-address", ".js-address"}

const metaDescriptionSelector = `meta[name='description']`

// Extractor runs the extraction pipeline over one worker's batch. It owns its
// browser session and processes links strictly sequentially.
type Extractor struct {
	session  chrome.Session
	params   *param.Extract
	workerID int
	logger   *log.Entry
}

func NewExtractor(session chrome.Session, params *param.Extract, workerID int) *Extractor {
	return &Extractor{
		session:  session,
		params:   params,
		workerID: workerID,
		logger:   log.WithField("worker", workerID),
	}
}

// Process visits one link and classifies the outcome. Every exit path yields
// exactly one record; extraction misses degrade fields to empty instead of
// failing the link.
func (e *Extractor) Process(link string, index, total int) model.ExtractionRecord {
	rec := model.ExtractionRecord{
		Worker: e.workerID,
		Index:  index,
		Total:  total,
		URL:    link,
	}

	e.logger.WithFields(log.Fields{"index": index, "total": total, "url": link}).Info("visiting listing")

	if err := e.session.Navigate(link); err != nil {
		rec.Status = model.StatusError
		rec.Note = err.Error()
		return rec
	}

	rec.Title = e.firstText(titleSelectors)
	rec.Address = e.extractAddress()
	e.logger.WithFields(log.Fields{"title": rec.Title, "address": rec.Address}).Debug("extracted page fields")

	pageText, err := e.session.PageText()
	if err != nil {
		pageText = ""
	}
	match := builtInPattern.FindStringSubmatch(pageText)
	if match == nil {
		rec.Status = model.StatusNoBuiltIn
		rec.Note = "'Built in' phrase not found"
		return rec
	}

	// The capture group is exactly four digits, so Atoi cannot fail.
	year, _ := strconv.Atoi(match[1])
	rec.BuiltYear = year

	if year < e.params.MinYear {
		rec.Status = model.StatusTooOld
		rec.Note = fmt.Sprintf("Built in %d < %d", year, e.params.MinYear)
		return rec
	}

	if e.params.CityFilter != "" {
		if rec.Address == "" || !strings.Contains(strings.ToLower(rec.Address), strings.ToLower(e.params.CityFilter)) {
			rec.Status = model.StatusCityMismatch
			rec.Note = fmt.Sprintf("Address does not contain %q", e.params.CityFilter)
			return rec
		}
	}

	rec.Status = model.StatusSaved
	rec.Note = fmt.Sprintf("Built in %d", year)
	return rec
}

// firstText returns the first non-empty text among the selector strategies.
func (e *Extractor) firstText(selectors []string) string {
	for _, selector := range selectors {
		elements, err := e.session.Elements(selector)
		if err != nil {
			continue
		}
		for _, el := range elements {
			text, err := el.Text()
			if err != nil {
				continue
			}
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

func (e *Extractor) extractAddress() string {
	if address := e.firstText(addressSelectors); address != "" {
		return address
	}
	// Fall back to the meta description, which usually repeats the address.
	elements, err := e.session.Elements(metaDescriptionSelector)
	if err != nil || len(elements) == 0 {
		return ""
	}
	content, err := elements[0].Attribute("content")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(content)
}
