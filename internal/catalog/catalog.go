// Package catalog derives the paginated, filtered and sorted country list shown to users.
package catalog

import (
	"sort"
	"strings"

	"github.com/NoraMoser/exploring/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultPageSize is the number of rows on one page of the list.
const DefaultPageSize = 12

// NotAvailable is shown in place of absent optional values.
const NotAvailable = "N/A"

// EmptyMessage replaces the table when no record matches the query.
const EmptyMessage = "Sorry, no countries found."

// Query selects one page of the list.
type Query struct {
	Text     string
	Page     int
	PageSize int
}

// ResetOnChange returns q moved to page 1 when its text differs from previous.
func (q Query) ResetOnChange(previous string) Query {
	if q.Text != previous {
		q.Page = 1
	}
	return q
}

// Derive sorts, filters and paginates records. The input slice is left untouched.
func Derive(records []model.Country, q Query) model.ListView {
	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	filtered := Filter(SortByName(records), q.Text)
	total := len(filtered)
	pages := PageCount(total, size)
	page := clamp(q.Page, 1, pages)
	start, end := Bounds(page, size, total)

	rows := make([]model.CountryRow, 0, end-start)
	for _, c := range filtered[start:end] {
		rows = append(rows, toRow(c))
	}

	return model.ListView{
		Query:       q.Text,
		Rows:        rows,
		Total:       total,
		Page:        page,
		PageCount:   pages,
		PageSize:    size,
		HasPrevious: page > 1,
		HasNext:     page < pages,
		Empty:       total == 0,
	}
}

// SortByName returns a copy of records ordered by common name using
// case-insensitive, locale-aware collation. Equal names keep a stable order by code.
func SortByName(records []model.Country) []model.Country {
	sorted := make([]model.Country, len(records))
	copy(sorted, records)

	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := col.CompareString(sorted[i].Name.Common, sorted[j].Name.Common); c != 0 {
			return c < 0
		}
		return sorted[i].CCA3 < sorted[j].CCA3
	})
	return sorted
}

// Filter keeps records whose case-folded common name contains the trimmed, case-folded query.
// An empty query keeps everything.
func Filter(records []model.Country, query string) []model.Country {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(query))
	if needle == "" {
		return records
	}

	out := make([]model.Country, 0, len(records))
	for _, c := range records {
		if strings.Contains(fold.String(strings.TrimSpace(c.Name.Common)), needle) {
			out = append(out, c)
		}
	}
	return out
}

// PageCount is ceil(n/size), and never less than 1.
func PageCount(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (n + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// Bounds returns the half-open slice [(page-1)*size, page*size) clipped to n.
func Bounds(page, size, n int) (int, int) {
	start := (page - 1) * size
	end := page * size
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	if start < 0 {
		start = 0
	}
	return start, end
}

func toRow(c model.Country) model.CountryRow {
	official := c.Name.Official
	if strings.TrimSpace(official) == "" {
		official = NotAvailable
	}
	return model.CountryRow{
		Code:         c.CCA3,
		CommonName:   c.Name.Common,
		OfficialName: official,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
