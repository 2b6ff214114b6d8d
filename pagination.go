package apitour

import (
	"fmt"
	"net/http"
)

const (
	// DefaultLimit is the page length used when the client does not send one.
	DefaultLimit = 10
	// DefaultMaxLimit caps the plain Pagination function.
	DefaultMaxLimit = 100
)

// SkipLimit is an offset based window.
type SkipLimit struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// PageSize is a page numbered window. Page starts at 1.
type PageSize struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// PaginationResolver reads pagination parameters and caps the requested
// length at maxLimit. It holds no per-request state, so a single instance can
// be shared by any number of routes and concurrent requests.
type PaginationResolver struct {
	maxLimit  int
	resolver  *Resolver
	skipLimit []ParameterSpec
	pageSize  []ParameterSpec
}

// NewPaginationResolver creates a resolver capping limits at maxLimit.
func NewPaginationResolver(maxLimit int) (*PaginationResolver, error) {
	if maxLimit < 0 {
		return nil, fmt.Errorf("new pagination resolver: max limit must be >= 0, got %d", maxLimit)
	}

	return &PaginationResolver{
		maxLimit: maxLimit,
		resolver: NewResolver(),
		skipLimit: []ParameterSpec{
			Query("skip", KindInt, Default(0), With(Ge(0))),
			Query("limit", KindInt, Default(DefaultLimit), With(Ge(0))),
		},
		pageSize: []ParameterSpec{
			Query("page", KindInt, Default(1), With(Ge(1))),
			Query("size", KindInt, Default(DefaultLimit), With(Ge(0))),
		},
	}, nil
}

// MaxLimit returns the configured cap.
func (p *PaginationResolver) MaxLimit() int {
	return p.maxLimit
}

// Cap returns min(n, maxLimit).
func (p *PaginationResolver) Cap(n int) int {
	return min(n, p.maxLimit)
}

// Resolve is the default flavor, identical to SkipLimit.
func (p *PaginationResolver) Resolve(r *http.Request) (SkipLimit, error) {
	return p.SkipLimit(r)
}

// SkipLimit reads skip (default 0, >= 0) and limit (default 10, >= 0).
func (p *PaginationResolver) SkipLimit(r *http.Request) (SkipLimit, error) {
	vals, err := p.resolver.ResolveAll(r, p.skipLimit)
	if err != nil {
		return SkipLimit{}, err
	}
	return SkipLimit{Skip: vals.Int("skip"), Limit: p.Cap(vals.Int("limit"))}, nil
}

// PageSize reads page (default 1, >= 1) and size (default 10, >= 0).
func (p *PaginationResolver) PageSize(r *http.Request) (PageSize, error) {
	vals, err := p.resolver.ResolveAll(r, p.pageSize)
	if err != nil {
		return PageSize{}, err
	}
	return PageSize{Page: vals.Int("page"), Size: p.Cap(vals.Int("size"))}, nil
}

var defaultPagination, _ = NewPaginationResolver(DefaultMaxLimit)

// Pagination is the stateless flavor: skip/limit capped at DefaultMaxLimit.
func Pagination(r *http.Request) (SkipLimit, error) {
	return defaultPagination.SkipLimit(r)
}
