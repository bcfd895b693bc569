// Package query translates list request parameters into a store-neutral filter,
// sort order and page window shared by every resource listing.
package query

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/campusnotes/campusnotes-api/internal/common"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	DefaultSort = "createdAt"
)

// Kind is the value type of a filterable field.
type Kind int

const (
	String Kind = iota
	Int
	Bool
)

// Filter declares one exact-match query parameter.
type Filter struct {
	Name string
	Kind Kind
}

// Spec declares what a resource listing accepts.
type Spec struct {
	Filters []Filter
	Sorts   []string
}

// Condition is one exact-match constraint, keyed by API field name.
type Condition struct {
	Field string
	Value any
}

// Params is a validated list request.
type Params struct {
	Conditions []Condition
	Search     string
	SortBy     string
	Desc       bool
	Page       int
	Limit      int
}

// Offset is the number of items skipped before the page window.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Parse validates values against spec. Absent or empty parameters are unconstrained;
// every malformed parameter is reported in a single ValidationError.
func Parse(values url.Values, spec Spec) (Params, error) {
	v := &common.ValidationError{}
	p := Params{
		Search: strings.TrimSpace(values.Get("search")),
		SortBy: DefaultSort,
		Desc:   true,
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}

	for _, f := range spec.Filters {
		raw := strings.TrimSpace(values.Get(f.Name))
		if raw == "" {
			continue
		}
		switch f.Kind {
		case Int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				v.Add(f.Name, f.Name+" must be a number")
				continue
			}
			p.Conditions = append(p.Conditions, Condition{Field: f.Name, Value: n})
		case Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				v.Add(f.Name, f.Name+" must be true or false")
				continue
			}
			p.Conditions = append(p.Conditions, Condition{Field: f.Name, Value: b})
		default:
			p.Conditions = append(p.Conditions, Condition{Field: f.Name, Value: raw})
		}
	}

	if sortBy := strings.TrimSpace(values.Get("sortBy")); sortBy != "" {
		if !slices.Contains(spec.Sorts, sortBy) {
			v.Add("sortBy", "sortBy must be one of: "+strings.Join(spec.Sorts, ", "))
		} else {
			p.SortBy = sortBy
		}
	}

	switch strings.ToLower(strings.TrimSpace(values.Get("order"))) {
	case "", "desc":
	case "asc":
		p.Desc = false
	default:
		v.Add("order", "order must be asc or desc")
	}

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			v.Add("page", "page must be a positive integer")
		} else {
			p.Page = n
		}
	}

	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxLimit {
			v.Add("limit", "limit must be between 1 and "+strconv.Itoa(MaxLimit))
		} else {
			p.Limit = n
		}
	}

	if err := v.Err(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// TotalPages is ceil(total / limit).
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Page is one window of a listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	Count      int `json:"count"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPage wraps items fetched for p. A nil items slice is returned as empty.
func NewPage[T any](items []T, total int, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Count:      len(items),
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: TotalPages(total, p.Limit),
	}
}
