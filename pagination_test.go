package apitour_test

import (
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/sagarc03/apitour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginationResolver(t *testing.T) {
	p, err := apitour.NewPaginationResolver(50)
	require.NoError(t, err)
	assert.Equal(t, 50, p.MaxLimit())

	_, err = apitour.NewPaginationResolver(-1)
	assert.Error(t, err)
}

func TestPaginationResolver_SkipLimit(t *testing.T) {
	p, err := apitour.NewPaginationResolver(50)
	require.NoError(t, err)

	tests := []struct {
		name    string
		query   string
		want    apitour.SkipLimit
		wantErr bool
	}{
		{name: "defaults", query: "", want: apitour.SkipLimit{Skip: 0, Limit: 10}},
		{name: "under cap", query: "?skip=5&limit=20", want: apitour.SkipLimit{Skip: 5, Limit: 20}},
		{name: "at cap", query: "?limit=50", want: apitour.SkipLimit{Limit: 50}},
		{name: "over cap", query: "?limit=51", want: apitour.SkipLimit{Limit: 50}},
		{name: "zero limit", query: "?limit=0", want: apitour.SkipLimit{Limit: 0}},
		{name: "negative skip", query: "?skip=-1", wantErr: true},
		{name: "negative limit", query: "?limit=-1", wantErr: true},
		{name: "not a number", query: "?limit=ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.SkipLimit(httptest.NewRequest("GET", "/"+tt.query, nil))
			if tt.wantErr {
				var verr *apitour.ValidationError
				assert.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			resolved, err := p.Resolve(httptest.NewRequest("GET", "/"+tt.query, nil))
			require.NoError(t, err)
			assert.Equal(t, got, resolved)
		})
	}
}

func TestPaginationResolver_PageSize(t *testing.T) {
	p, err := apitour.NewPaginationResolver(25)
	require.NoError(t, err)

	got, err := p.PageSize(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, apitour.PageSize{Page: 1, Size: 10}, got)

	got, err = p.PageSize(httptest.NewRequest("GET", "/?page=3&size=99", nil))
	require.NoError(t, err)
	assert.Equal(t, apitour.PageSize{Page: 3, Size: 25}, got)

	_, err = p.PageSize(httptest.NewRequest("GET", "/?page=0", nil))
	assert.ErrorIs(t, err, apitour.ErrConstraintViolation)
}

func TestPaginationResolver_ZeroCap(t *testing.T) {
	p, err := apitour.NewPaginationResolver(0)
	require.NoError(t, err)

	got, err := p.SkipLimit(httptest.NewRequest("GET", "/?limit=10", nil))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Limit)
}

func TestPaginationResolver_CapIsMin(t *testing.T) {
	for _, maxLimit := range []int{0, 1, 10, 50, 100} {
		p, err := apitour.NewPaginationResolver(maxLimit)
		require.NoError(t, err)

		for limit := 0; limit <= 150; limit += 7 {
			got, err := p.SkipLimit(httptest.NewRequest("GET", "/?limit="+strconv.Itoa(limit), nil))
			require.NoError(t, err)
			assert.Equal(t, min(limit, maxLimit), got.Limit, "max %d limit %d", maxLimit, limit)
			assert.LessOrEqual(t, got.Limit, maxLimit)
		}
	}
}

func TestPagination_DefaultCap(t *testing.T) {
	got, err := apitour.Pagination(httptest.NewRequest("GET", "/?skip=2&limit=500", nil))
	require.NoError(t, err)
	assert.Equal(t, apitour.SkipLimit{Skip: 2, Limit: apitour.DefaultMaxLimit}, got)

	got, err = apitour.Pagination(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, apitour.SkipLimit{Skip: 0, Limit: apitour.DefaultLimit}, got)
}
