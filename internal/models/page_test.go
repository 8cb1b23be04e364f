package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog/internal/models"
)

func TestNewPage(t *testing.T) {
	p := models.NewPage([]int{11, 12, 13}, 23, 2, 10, "")

	assert.Equal(t, 3, p.LastPage)
	assert.Equal(t, 11, p.From)
	assert.Equal(t, 13, p.To)
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.True(t, p.Paginated)
}

func TestNewPage_Empty(t *testing.T) {
	p := models.NewPage[int](nil, 0, 1, 10, "nothing")

	assert.NotNil(t, p.Data)
	assert.Equal(t, 1, p.LastPage)
	assert.Zero(t, p.From)
	assert.False(t, p.HasNext())
}

func TestPage_WithLinksKeepsSearch(t *testing.T) {
	p := models.NewPage([]string{"a"}, 3, 2, 1, "sci fi").WithLinks("/")

	require.NotNil(t, p.Links)
	assert.Equal(t, "/?page=1&per_page=1&search=sci+fi", p.Links.First)
	assert.Equal(t, "/?page=3&per_page=1&search=sci+fi", p.Links.Last)
	require.NotNil(t, p.Links.Prev)
	assert.Equal(t, "/?page=1&per_page=1&search=sci+fi", *p.Links.Prev)
	require.NotNil(t, p.Links.Next)
	assert.Equal(t, "/?page=3&per_page=1&search=sci+fi", *p.Links.Next)
}

func TestUnpaginated(t *testing.T) {
	p := models.Unpaginated([]string{"a", "b"}).WithLinks("/")

	assert.False(t, p.Paginated)
	assert.Nil(t, p.Links)
	assert.Equal(t, int64(2), p.Total)
	assert.Equal(t, 2, p.To)
}
