// Package listing parses list query parameters and applies sorting and
// pagination to in-memory collections.
package listing

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"bistro/apperrors"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

type Params struct {
	Category string
	ToPrice  *float64
	ToTotal  *float64
	Search   string
	Ordering []string
	Page     int
	PerPage  int
}

// Parse reads the supported list parameters from a query string. Malformed
// numeric values are a ValidationError rather than a silent default.
func Parse(q url.Values) (Params, error) {
	p := Params{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Page:     DefaultPage,
		PerPage:  DefaultPerPage,
	}

	if v := q.Get("to_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, apperrors.Validationf("to_price must be a number")
		}
		p.ToPrice = &f
	}
	if v := q.Get("to_total"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, apperrors.Validationf("to_total must be a number")
		}
		p.ToTotal = &f
	}
	if v := q.Get("ordering"); v != "" {
		p.Ordering = strings.Split(v, ",")
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, apperrors.Validationf("page must be a positive integer")
		}
		p.Page = n
	}
	if v := q.Get("perpage"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, apperrors.Validationf("perpage must be a positive integer")
		}
		p.PerPage = n
	}
	return p, nil
}

// Sort orders items by the given fields, applied in order. A field prefixed
// with "-" sorts descending. An unknown field is a ValidationError.
func Sort[T any](items []T, fields []string, cmp map[string]func(a, b T) int) error {
	type sortKey struct {
		fn   func(a, b T) int
		desc bool
	}

	keys := make([]sortKey, 0, len(fields))
	for _, field := range fields {
		name := strings.TrimPrefix(field, "-")
		fn, ok := cmp[name]
		if !ok {
			return apperrors.Validationf("cannot order by %q", name)
		}
		keys = append(keys, sortKey{fn: fn, desc: strings.HasPrefix(field, "-")})
	}

	sort.SliceStable(items, func(i, j int) bool {
		for _, k := range keys {
			c := k.fn(items[i], items[j])
			if k.desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
	return nil
}

// Paginate slices out the requested page. A page past the end of the
// collection yields an empty page, never an error.
func Paginate[T any](items []T, page, perPage int) []T {
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
