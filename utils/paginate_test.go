package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateEmptyInput(t *testing.T) {
	assert.Nil(t, Paginate([]int{}, 3))
}

func TestPaginateNonPositivePageSize(t *testing.T) {
	assert.Nil(t, Paginate([]int{1, 2, 3}, 0))
	assert.Nil(t, Paginate([]int{1, 2, 3}, -1))
}

func TestPaginateExactPages(t *testing.T) {
	pages := Paginate([]int{1, 2, 3, 4}, 2)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}}, pages)
}

func TestPaginatePartialLastPage(t *testing.T) {
	pages := Paginate([]int{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, pages)
}

func TestPaginatePageSizeLargerThanInput(t *testing.T) {
	pages := Paginate([]int{1, 2}, 10)
	assert.Equal(t, [][]int{{1, 2}}, pages)
}
