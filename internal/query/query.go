// Package query filters and paginates an in-memory item collection.
package query

import (
	"strconv"
	"strings"

	"github.com/bassista/go_items/internal/repository"
)

// DefaultLimit is the page size used when the caller does not ask for one.
const DefaultLimit = 10

// Params selects a page of the filtered collection.
// Page and Limit below 1 are treated as 1.
type Params struct {
	Q     string
	Page  int
	Limit int
}

// Result is one page of items plus the number of items that matched the filter.
type Result struct {
	Items []repository.Item `json:"items"`
	Total int               `json:"total"`
}

// ParseParams turns raw query-string values into Params.
// An absent page or limit takes its default; a present value that is not a positive
// integer is clamped to 1. Values are parsed whole, so "2.9" and "3abc" are not
// integers. maxLimit caps the page size when positive.
func ParseParams(q, page, limit string, defaultLimit, maxLimit int) Params {
	if defaultLimit < 1 {
		defaultLimit = DefaultLimit
	}
	p := Params{
		Q:     q,
		Page:  parsePositive(page, 1),
		Limit: parsePositive(limit, defaultLimit),
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

func parsePositive(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Apply filters items by a case-insensitive substring of Q in the item name, then
// returns the requested page. Total counts matches before pagination. A page past
// the end is empty, never an error.
func Apply(items []repository.Item, p Params) Result {
	filtered := Filter(items, p.Q)

	page := max(p.Page, 1)
	limit := max(p.Limit, 1)

	total := len(filtered)
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	// Checking the page number first keeps the offset below from overflowing.
	if page > pages {
		return Result{Items: []repository.Item{}, Total: total}
	}
	start := (page - 1) * limit
	end := start + min(limit, total-start)

	return Result{Items: filtered[start:end], Total: total}
}

// Filter returns the items whose name contains q, ignoring case.
// An empty q returns items unchanged.
func Filter(items []repository.Item, q string) []repository.Item {
	if q == "" {
		return items
	}
	needle := strings.ToLower(q)
	out := make([]repository.Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			out = append(out, item)
		}
	}
	return out
}
