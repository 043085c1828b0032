package model

import "strconv"

// Status classifies the terminal outcome of one listing visit.
type Status string

const (
	// StatusSaved means every filter passed and the row goes to the result sink.
	StatusSaved Status = "saved"
	// StatusError means navigation to the listing failed.
	StatusError Status = "error"
	// StatusNoBuiltIn means the page text carried no "Built in <year>" phrase.
	StatusNoBuiltIn Status = "no_built_in"
	// StatusTooOld means the built year is below the configured minimum.
	StatusTooOld Status = "too_old"
	// StatusCityMismatch means the address does not contain the configured city.
	StatusCityMismatch Status = "city_mismatch"
)

// ExtractionRecord is the immutable outcome of visiting one listing link.
// Exactly one record is produced per visit and appended to the audit sink.
type ExtractionRecord struct {
	Worker    int
	Index     int
	Total     int
	Title     string
	Address   string
	URL       string
	BuiltYear int // 0 when no year was extracted
	Status    Status
	Note      string
}

// AuditRow renders the record in audit-sink column order:
// worker, index, total, title, address, url, built_year, status, note.
func (r ExtractionRecord) AuditRow() []string {
	year := ""
	if r.BuiltYear > 0 {
		year = strconv.Itoa(r.BuiltYear)
	}
	return []string{
		strconv.Itoa(r.Worker),
		strconv.Itoa(r.Index),
		strconv.Itoa(r.Total),
		r.Title,
		r.Address,
		r.URL,
		year,
		string(r.Status),
		r.Note,
	}
}

// ResultRow is the saved subset of an ExtractionRecord, keyed by the canonical
// form of URL for deduplication before it reaches the result sink.
type ResultRow struct {
	Title     string
	Address   string
	BuiltYear int
	URL       string
}

// ResultCSVRow renders the row in result-sink column order. The url column is a
// spreadsheet display link labelled with the title, or "Listing" when the title
// is empty.
func (r ResultRow) ResultCSVRow() []string {
	label := r.Title
	if label == "" {
		label = "Listing"
	}
	link := `=HYPERLINK("` + r.URL + `", "` + label + `")`
	return []string{r.Title, r.Address, strconv.Itoa(r.BuiltYear), link}
}
