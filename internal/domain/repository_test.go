package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	res := Paginate(items, ListFilter{Limit: 2, Offset: 1})
	assert.Equal(t, []int{2, 3}, res.Items)
	assert.Equal(t, int64(5), res.TotalCount)

	res = Paginate(items, ListFilter{Limit: 10, Offset: 4})
	assert.Equal(t, []int{5}, res.Items)

	res = Paginate(items, ListFilter{Offset: 99})
	assert.Empty(t, res.Items)
	assert.Equal(t, DefaultLimit, res.Limit)
}

func TestListFilter_Normalize(t *testing.T) {
	f := ListFilter{Limit: 10_000, Offset: -3}.Normalize()
	assert.Equal(t, MaxLimit, f.Limit)
	assert.Equal(t, 0, f.Offset)
}
