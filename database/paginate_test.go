package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0))
	assert.Equal(t, 1, ClampPage(-10))
	assert.Equal(t, 7, ClampPage(7))
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, 12, ClampPageSize(0, 12, 48))
	assert.Equal(t, 12, ClampPageSize(-1, 12, 48))
	assert.Equal(t, 48, ClampPageSize(500, 12, 48))
	assert.Equal(t, 20, ClampPageSize(20, 12, 48))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 12))
	assert.Equal(t, 12, Offset(2, 12))
	assert.Equal(t, 96, Offset(5, 24))
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 12, 25)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 12, p.PageSize)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, 3, p.Pages)

	p = NewPagination(1, 12, 0)
	assert.Equal(t, 0, p.Pages)

	p = NewPagination(1, 12, 12)
	assert.Equal(t, 1, p.Pages)
}
