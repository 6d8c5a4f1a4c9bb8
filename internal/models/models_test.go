package models

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestIsBotUserAgent(t *testing.T) {
	tests := []struct {
		ua   string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"Googlebot/2.1 (+http://www.google.com/bot.html)", true},
		{"Mozilla/5.0 (compatible; bingbot/2.0)", true},
		{"SomeCrawler/1.0", true},
		{"Baiduspider", true},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0 Safari/537.36", false},
		{"curl/8.4.0", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsBotUserAgent(tt.ua), "ua=%q", tt.ua)
	}
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, VideoTypeNormal.Valid())
	assert.True(t, VideoTypeExclusive.Valid())
	assert.False(t, VideoType("onlyfans").Valid())
	assert.False(t, VideoType("").Valid())

	assert.True(t, OrientationLandscape.Valid())
	assert.True(t, OrientationPortrait.Valid())
	assert.False(t, Orientation("square").Valid())
}

func TestNewPagination_EmptyStore(t *testing.T) {
	p := NewPagination(1, 8, 0)
	assert.Equal(t, Pagination{Page: 1, Limit: 8, Total: 0, TotalPages: 0}, p)
	assert.Equal(t, 0, p.Offset())
}

func TestPaginationOffset(t *testing.T) {
	assert.Equal(t, 0, NewPagination(0, 8, 0).Offset())
	assert.Equal(t, 0, NewPagination(3, 0, 0).Offset())
	assert.Equal(t, 16, NewPagination(3, 8, 0).Offset())
	assert.Equal(t, math.MaxInt, NewPagination(math.MaxInt, 8, 0).Offset())
	assert.Equal(t, math.MaxInt, NewPagination(math.MaxInt/2, 4, 0).Offset())
}

func TestProperty_PaginationPageCount(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("totalPages equals ceil(total / limit)", prop.ForAll(
		func(total, limit int) bool {
			p := NewPagination(1, limit, total)
			want := total / limit
			if total%limit != 0 {
				want++
			}
			return p.TotalPages == want
		},
		gen.IntRange(0, 10000),
		gen.IntRange(1, 100),
	))

	properties.Property("last page holds total mod limit items, or limit when it divides evenly", prop.ForAll(
		func(total, limit int) bool {
			p := NewPagination(1, limit, total)
			last := NewPagination(p.TotalPages, limit, total)
			remaining := total - last.Offset()
			if total%limit == 0 {
				return remaining == limit
			}
			return remaining == total%limit
		},
		gen.IntRange(1, 10000),
		gen.IntRange(1, 100),
	))

	properties.TestingRun(t)
}
