package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fleetops/vehicle-allocation/internal/domain"
)

func TestNewPageParams(t *testing.T) {
	intp := func(v int) *int { return &v }

	tests := []struct {
		name        string
		skip, limit *int
		want        domain.PageParams
		wantErr     error
	}{
		{"defaults", nil, nil, domain.PageParams{Skip: 0, Limit: 10}, nil},
		{"explicit", intp(20), intp(50), domain.PageParams{Skip: 20, Limit: 50}, nil},
		{"limit at upper bound", nil, intp(100), domain.PageParams{Skip: 0, Limit: 100}, nil},
		{"zero skip", intp(0), nil, domain.PageParams{Skip: 0, Limit: 10}, nil},
		{"negative skip rejected", intp(-5), nil, domain.PageParams{}, domain.ErrSkipOutOfRange},
		{"zero limit rejected", nil, intp(0), domain.PageParams{}, domain.ErrLimitOutOfRange},
		{"limit above 100 rejected", nil, intp(1000), domain.PageParams{}, domain.ErrLimitOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.NewPageParams(tt.skip, tt.limit)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2031, 6, 1, 2, 30, 0, 0, loc) // 2031-05-31T21:30Z

	got := domain.DateOnly(in)

	assert.Equal(t, time.Date(2031, 5, 31, 0, 0, 0, 0, time.UTC), got,
		"truncation happens after conversion to UTC")
}
