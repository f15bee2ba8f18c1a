package domain

import "errors"

// Paging validation errors. The HTTP layer surfaces these verbatim in a
// 400 response.
var (
	ErrSkipOutOfRange  = errors.New("skip must be greater than or equal to 0")
	ErrLimitOutOfRange = errors.New("limit must be between 1 and 100")
)

// PageParams carries skip/limit values from the HTTP layer to the repo layer.
type PageParams struct {
	// Skip is the number of records to pass over before returning results.
	Skip int
	// Limit is the maximum number of records to return.
	Limit int
}

// NewPageParams builds a PageParams from optional HTTP query params.
// Nil pointers fall back to the defaults (skip=0, limit=10). Out-of-range
// values are rejected rather than clamped: skip must be >= 0 and limit must
// be within [1, 100].
func NewPageParams(skip, limit *int) (PageParams, error) {
	p := PageParams{Skip: 0, Limit: 10}
	if skip != nil {
		if *skip < 0 {
			return PageParams{}, ErrSkipOutOfRange
		}
		p.Skip = *skip
	}
	if limit != nil {
		if *limit < 1 || *limit > 100 {
			return PageParams{}, ErrLimitOutOfRange
		}
		p.Limit = *limit
	}
	return p, nil
}
