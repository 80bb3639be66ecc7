package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Normalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      PageRequest
		max     int
		want    PageRequest
	}{
		{"zero value gets defaults", PageRequest{}, 100, PageRequest{Page: 1, PageSize: DefaultPageSize}},
		{"negative page clamps to one", PageRequest{Page: -3, PageSize: 20}, 100, PageRequest{Page: 1, PageSize: 20}},
		{"oversized page size caps at max", PageRequest{Page: 2, PageSize: 5000}, 100, PageRequest{Page: 2, PageSize: 100}},
		{"valid request unchanged", PageRequest{Page: 7, PageSize: 25}, 100, PageRequest{Page: 7, PageSize: 25}},
		{"zero max leaves size uncapped", PageRequest{Page: 1, PageSize: 500}, 0, PageRequest{Page: 1, PageSize: 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.in.Normalize(tt.max))
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, PageRequest{Page: 1, PageSize: 10}.Offset())
	assert.Equal(t, 20, PageRequest{Page: 3, PageSize: 10}.Offset())
	assert.Equal(t, 75, PageRequest{Page: 4, PageSize: 25}.Offset())
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	t.Run("computes total pages with partial last page", func(t *testing.T) {
		t.Parallel()

		p := NewPage([]string{"a", "b"}, PageRequest{Page: 1, PageSize: 10}, 35)

		assert.Equal(t, 35, p.TotalItems)
		assert.Equal(t, 4, p.TotalPages)
		assert.Equal(t, []string{"a", "b"}, p.Items)
	})

	t.Run("nil items become empty slice", func(t *testing.T) {
		t.Parallel()

		p := NewPage[int](nil, PageRequest{Page: 1, PageSize: 10}, 0)

		assert.NotNil(t, p.Items)
		assert.Empty(t, p.Items)
		assert.Equal(t, 0, p.TotalPages)
	})

	t.Run("exact multiple has no extra page", func(t *testing.T) {
		t.Parallel()

		p := NewPage([]int{1}, PageRequest{Page: 1, PageSize: 10}, 30)

		assert.Equal(t, 3, p.TotalPages)
	})
}
