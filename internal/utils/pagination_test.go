package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePagination(t *testing.T) {
	meta := CalculatePagination(2, 25, 110)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 25, meta.PerPage)
	assert.Equal(t, int64(110), meta.Total)
	assert.Equal(t, 5, meta.LastPage)
	assert.True(t, meta.HasMore)

	last := CalculatePagination(5, 25, 110)
	assert.False(t, last.HasMore)

	empty := CalculatePagination(1, 25, 0)
	assert.Equal(t, 0, empty.LastPage)
	assert.False(t, empty.HasMore)

	fixed := CalculatePagination(0, 0, 10)
	assert.Equal(t, 1, fixed.CurrentPage)
	assert.Equal(t, 25, fixed.PerPage)
}

func TestGetOffset(t *testing.T) {
	assert.Equal(t, 0, GetOffset(1, 25))
	assert.Equal(t, 25, GetOffset(2, 25))
	assert.Equal(t, 90, GetOffset(10, 10))
}
