package model

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultPageSize = 100
	maxPageSize     = 500
)

// ListOptions captures the catalogue query surface: field filters with
// gte/lte bounds, multi-key sorting and pagination.
type ListOptions struct {
	Difficulty  string
	MinPrice    *float64
	MaxPrice    *float64
	MinDuration *int
	MaxDuration *int
	Sort        []SortKey
	Page        int
	Limit       int
}

type SortKey struct {
	Column string
	Desc   bool
}

func (o *ListOptions) Offset() int {
	return (o.Page - 1) * o.Limit
}

// sortColumns whitelists client-facing sort names against real columns.
var sortColumns = map[string]string{
	"price":          "price",
	"duration":       "duration",
	"ratingsAverage": "ratings_average",
	"createdAt":      "created_at",
	"name":           "name",
}

// ParseListOptions reads query parameters in the `price[gte]=500&sort=-price`
// style into a ListOptions. Unknown parameters and unparseable values are
// ignored rather than rejected.
func ParseListOptions(query url.Values) ListOptions {
	opts := ListOptions{
		Page:  1,
		Limit: defaultPageSize,
	}

	opts.Difficulty = query.Get("difficulty")

	if v, err := strconv.ParseFloat(query.Get("price[gte]"), 64); err == nil {
		opts.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(query.Get("price[lte]"), 64); err == nil {
		opts.MaxPrice = &v
	}
	if v, err := strconv.Atoi(query.Get("duration[gte]")); err == nil {
		opts.MinDuration = &v
	}
	if v, err := strconv.Atoi(query.Get("duration[lte]")); err == nil {
		opts.MaxDuration = &v
	}

	for _, key := range strings.Split(query.Get("sort"), ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		desc := strings.HasPrefix(key, "-")
		key = strings.TrimPrefix(key, "-")
		if column, ok := sortColumns[key]; ok {
			opts.Sort = append(opts.Sort, SortKey{Column: column, Desc: desc})
		}
	}

	if v, err := strconv.Atoi(query.Get("page")); err == nil && v > 0 {
		opts.Page = v
	}
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v > 0 {
		opts.Limit = v
	}
	if opts.Limit > maxPageSize {
		opts.Limit = maxPageSize
	}

	return opts
}
