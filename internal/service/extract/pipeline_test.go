package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LouYuanbo1/listingagent/internal/domain/model"
	"github.com/LouYuanbo1/listingagent/internal/infra/crawler/chrome"
	"github.com/LouYuanbo1/listingagent/param"
)

type fakeElement struct {
	text  string
	attrs map[string]string
}

func (e *fakeElement) Text() (string, error) { return e.text, nil }

func (e *fakeElement) Attribute(name string) (string, error) { return e.attrs[name], nil }

func (e *fakeElement) ScrollIntoView() error { return nil }

func (e *fakeElement) Click() error { return nil }

type fakeSession struct {
	navigateErr error
	elements    map[string][]chrome.Element
	pageText    string
	currentURL  string
}

func (s *fakeSession) Navigate(url string) error {
	if s.navigateErr != nil {
		return s.navigateErr
	}
	s.currentURL = url
	return nil
}

func (s *fakeSession) EvalJS(string) error { return nil }

func (s *fakeSession) Elements(selector string) ([]chrome.Element, error) {
	return s.elements[selector], nil
}

func (s *fakeSession) CurrentURL() string { return s.currentURL }

func (s *fakeSession) PageText() (string, error) { return s.pageText, nil }

func (s *fakeSession) Close() {}

func extractParams() *param.Extract {
	return &param.Extract{
		MinYear:    2023,
		CityFilter: "Seattle",
		DelayMinMs: 1,
		DelayMaxMs: 1,
	}
}

func TestProcessSavesRecentListingInCity(t *testing.T) {
	session := &fakeSession{
		elements: map[string][]chrome.Element{
			"h1":               {&fakeElement{text: "Lakefront Tower"}},
			".propertyAddress": {&fakeElement{text: "500 Pine St, Seattle, WA 98101"}},
		},
		pageText: "Luxury apartments. Built in 2024. Pet friendly.",
	}

	rec := NewExtractor(session, extractParams(), 1).Process("https://example.com/apartments/lakefront", 1, 4)

	assert.Equal(t, model.StatusSaved, rec.Status)
	assert.Equal(t, "Lakefront Tower", rec.Title)
	assert.Equal(t, "500 Pine St, Seattle, WA 98101", rec.Address)
	assert.Equal(t, 2024, rec.BuiltYear)
	assert.Equal(t, "Built in 2024", rec.Note)
	assert.Equal(t, 1, rec.Worker)
	assert.Equal(t, 1, rec.Index)
	assert.Equal(t, 4, rec.Total)
}

func TestProcessNavigationFailure(t *testing.T) {
	session := &fakeSession{navigateErr: errors.New("net::ERR_TIMED_OUT")}

	rec := NewExtractor(session, extractParams(), 2).Process("https://example.com/apartments/x", 1, 1)

	assert.Equal(t, model.StatusError, rec.Status)
	assert.Equal(t, "net::ERR_TIMED_OUT", rec.Note)
	assert.Zero(t, rec.BuiltYear)
}

func TestProcessNoBuiltInPhrase(t *testing.T) {
	session := &fakeSession{
		elements: map[string][]chrome.Element{
			"h1": {&fakeElement{text: "Some Property"}},
		},
		pageText: "Newly renovated units available now.",
	}

	rec := NewExtractor(session, extractParams(), 1).Process("https://example.com/apartments/y", 1, 1)

	assert.Equal(t, model.StatusNoBuiltIn, rec.Status)
	assert.Equal(t, "'Built in' phrase not found", rec.Note)
	assert.Equal(t, "Some Property", rec.Title)
}

func TestProcessTooOld(t *testing.T) {
	session := &fakeSession{
		elements: map[string][]chrome.Element{
			".propertyAddress": {&fakeElement{text: "12 Main St, Seattle, WA"}},
		},
		pageText: "Built in 2019",
	}

	rec := NewExtractor(session, extractParams(), 1).Process("https://example.com/apartments/z", 1, 1)

	assert.Equal(t, model.StatusTooOld, rec.Status)
	assert.Equal(t, 2019, rec.BuiltYear)
	assert.Equal(t, "Built in 2019 < 2023", rec.Note)
}

func TestProcessCityMismatch(t *testing.T) {
	session := &fakeSession{
		elements: map[string][]chrome.Element{
			".propertyAddress": {&fakeElement{text: "900 Oak Ave, Portland, OR"}},
		},
		pageText: "Built in 2025",
	}

	rec := NewExtractor(session, extractParams(), 1).Process("https://example.com/apartments/p", 1, 1)

	assert.Equal(t, model.StatusCityMismatch, rec.Status)
	assert.Equal(t, 2025, rec.BuiltYear)
	assert.Equal(t, `Address does not contain "Seattle"`, rec.Note)
}

func TestProcessMissingAddressCountsAsMismatch(t *testing.T) {
	session := &fakeSession{pageText: "Built in 2024"}

	rec := NewExtractor(session, extractParams(), 1).Process("https://example.com/apartments/q", 1, 1)

	assert.Equal(t, model.StatusCityMismatch, rec.Status)
	assert.Empty(t, rec.Address)
}

func TestProcessCityFilterIsCaseInsensitive(t *testing.T) {
	session := &fakeSession{
		elements: map[string][]chrome.Element{
			".property-address": {&fakeElement{text: "77 Dock St, SEATTLE, WA"}},
		},
		pageText: "built in 2023",
	}

	rec := NewExtractor(session, extractParams(), 1).Process("https://example.com/apartments/r", 1, 1)

	assert.Equal(t, model.StatusSaved, rec.Status)
}

func TestProcessEmptyCityFilterSkipsCheck(t *testing.T) {
	params := extractParams()
	params.CityFilter = ""
	session := &fakeSession{pageText: "Built in 2023"}

	rec := NewExtractor(session, params, 1).Process("https://example.com/apartments/s", 1, 1)

	assert.Equal(t, model.StatusSaved, rec.Status)
}

func TestProcessAddressFallsBackToMetaDescription(t *testing.T) {
	session := &fakeSession{
		elements: map[string][]chrome.Element{
			"meta[name='description']": {&fakeElement{attrs: map[string]string{
				"content": "Apartment at 42 Elm St, Seattle, WA 98102",
			}}},
		},
		pageText: "Built in 2024",
	}

	rec := NewExtractor(session, extractParams(), 1).Process("https://example.com/apartments/t", 1, 1)

	require.Equal(t, model.StatusSaved, rec.Status)
	assert.Equal(t, "Apartment at 42 Elm St, Seattle, WA 98102", rec.Address)
}

func TestProcessParsesLowYearFromPhrase(t *testing.T) {
	session := &fakeSession{
		elements: map[string][]chrome.Element{
			".propertyAddress": {&fakeElement{text: "1 Pike Pl, Seattle, WA"}},
		},
		pageText: "Historic building. Built in 0999.",
	}

	rec := NewExtractor(session, extractParams(), 1).Process("https://example.com/apartments/h", 1, 1)

	assert.Equal(t, model.StatusTooOld, rec.Status)
	assert.Equal(t, 999, rec.BuiltYear)
	assert.Equal(t, "Built in 999 < 2023", rec.Note)
}
