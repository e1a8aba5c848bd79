package utils

import (
	"strconv"
	"strings"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// ListParams holds skip/limit paging and sort order from a list query.
type ListParams struct {
	Skip  int
	Limit int
	// SortDesc orders by created_at descending when true.
	SortDesc bool
}

// ListMeta is returned alongside every list response.
type ListMeta struct {
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
	Skip    int  `json:"skip"`
	Limit   int  `json:"limit"`
}

// ParseListParams reads skip, limit and sort ("created_at:asc|desc") from raw query values.
// Invalid numbers fall back to defaults; limit is clamped to MaxListLimit.
func ParseListParams(skip, limit, sort string) ListParams {
	p := ListParams{Limit: DefaultListLimit, SortDesc: true}
	if v, err := strconv.Atoi(skip); err == nil && v > 0 {
		p.Skip = v
	}
	if v, err := strconv.Atoi(limit); err == nil && v > 0 {
		p.Limit = v
	}
	if p.Limit > MaxListLimit {
		p.Limit = MaxListLimit
	}
	if strings.HasSuffix(strings.ToLower(strings.TrimSpace(sort)), ":asc") {
		p.SortDesc = false
	}
	return p
}

// FetchLimit is the row count to query: one extra row reveals whether a next page exists.
func (p ListParams) FetchLimit() int {
	return p.Limit + 1
}

// Trim cuts the over-fetched row and reports paging metadata.
func Trim[T any](items []T, p ListParams) ([]T, ListMeta) {
	meta := ListMeta{Skip: p.Skip, Limit: p.Limit, HasPrev: p.Skip > 0}
	if len(items) > p.Limit {
		meta.HasNext = true
		items = items[:p.Limit]
	}
	return items, meta
}
