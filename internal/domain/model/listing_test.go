package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuditRowColumnOrder(t *testing.T) {
	rec := ExtractionRecord{
		Worker:    2,
		Index:     3,
		Total:     10,
		Title:     "Tower A",
		Address:   "1 First St, Seattle, WA",
		URL:       "https://example.com/apartments/a",
		BuiltYear: 2024,
		Status:    StatusSaved,
		Note:      "Built in 2024",
	}

	assert.Equal(t, []string{
		"2", "3", "10",
		"Tower A", "1 First St, Seattle, WA", "https://example.com/apartments/a",
		"2024", "saved", "Built in 2024",
	}, rec.AuditRow())
}

func TestAuditRowOmitsZeroYear(t *testing.T) {
	rec := ExtractionRecord{Worker: 1, Index: 1, Total: 1, Status: StatusNoBuiltIn}

	assert.Equal(t, "", rec.AuditRow()[6])
}

func TestResultCSVRowBuildsHyperlink(t *testing.T) {
	row := ResultRow{
		Title:     "Tower A",
		Address:   "1 First St, Seattle, WA",
		BuiltYear: 2024,
		URL:       "https://example.com/apartments/a",
	}

	assert.Equal(t, []string{
		"Tower A",
		"1 First St, Seattle, WA",
		"2024",
		`=HYPERLINK("https://example.com/apartments/a", "Tower A")`,
	}, row.ResultCSVRow())
}

func TestResultCSVRowEmptyTitleLabel(t *testing.T) {
	row := ResultRow{URL: "https://example.com/apartments/b", BuiltYear: 2023}

	assert.Equal(t, `=HYPERLINK("https://example.com/apartments/b", "Listing")`, row.ResultCSVRow()[3])
}
