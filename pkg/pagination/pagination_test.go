package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRange(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{"no pages", 1, 0, []int{}},
		{"single page", 1, 1, []int{1}},
		{"fewer pages than window", 2, 3, []int{1, 2, 3}},
		{"start clamps and widens", 1, 10, []int{1, 2, 3, 4, 5}},
		{"second page", 2, 10, []int{1, 2, 3, 4, 5}},
		{"centred", 5, 10, []int{3, 4, 5, 6, 7}},
		{"end clamps and widens", 10, 10, []int{6, 7, 8, 9, 10}},
		{"one before end", 9, 10, []int{6, 7, 8, 9, 10}},
		{"past the end", 14, 10, []int{6, 7, 8, 9, 10}},
		{"huge page", math.MaxInt, 10, []int{6, 7, 8, 9, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageRange(tt.current, tt.total, DefaultVisiblePages))
		})
	}
}

func TestNew(t *testing.T) {
	page := New([]string{"a", "b"}, 3, DefaultPerPage, 22)

	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, []int{1, 2, 3}, page.Range)
	assert.True(t, page.HasPrev())
	assert.False(t, page.HasNext())
	assert.Equal(t, 2, page.PrevNum())
}

func TestNewOutOfRangeIsEmpty(t *testing.T) {
	page := New[string](nil, 7, DefaultPerPage, 5)

	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 1, page.Pages)
	assert.False(t, page.HasNext())
}

func TestOffsetNormalizesPage(t *testing.T) {
	assert.Equal(t, 0, Offset(0, 10))
	assert.Equal(t, 0, Offset(-3, 10))
	assert.Equal(t, 20, Offset(3, 10))
}

func TestOffsetHugePageSaturates(t *testing.T) {
	assert.Equal(t, math.MaxInt, Offset(1000000000000000000, DefaultPerPage))
	assert.Equal(t, math.MaxInt, Offset(math.MaxInt, DefaultPerPage))
	assert.Equal(t, 9223372036854775800, Offset(922337203685477581, DefaultPerPage))
	assert.Equal(t, math.MaxInt, Offset(922337203685477582, DefaultPerPage))
	assert.Equal(t, 0, Offset(5, 0))
}

func TestNavMirrorsPage(t *testing.T) {
	p := New([]string{"a"}, 3, DefaultPerPage, 95)
	nav := p.Nav()

	assert.Equal(t, 3, nav.Page)
	assert.Equal(t, 10, nav.Pages)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, nav.Range)
	assert.True(t, nav.HasPrev())
	assert.True(t, nav.HasNext())
	assert.Equal(t, 2, nav.PrevNum())
	assert.Equal(t, 4, nav.NextNum())
}
