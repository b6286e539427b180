package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		limit    int
		expected int
	}{
		{"zero rows", 0, 6, 0},
		{"exact fit", 12, 6, 2},
		{"partial last page", 8, 6, 2},
		{"single row", 1, 6, 1},
		{"limit one", 5, 1, 5},
		{"zero limit", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TotalPages(tt.total, tt.limit))
		})
	}
}

func TestNewPostPage(t *testing.T) {
	t.Run("middle page has next", func(t *testing.T) {
		page := NewPostPage(make([]*Post, 6), 13, 1, 6)
		assert.Equal(t, 3, page.TotalPages)
		require.NotNil(t, page.NextPage)
		assert.Equal(t, 2, *page.NextPage)
	})

	t.Run("last page has no next", func(t *testing.T) {
		page := NewPostPage(make([]*Post, 1), 13, 3, 6)
		assert.Nil(t, page.NextPage)
	})

	t.Run("page beyond the end", func(t *testing.T) {
		page := NewPostPage(nil, 8, 5, 6)
		assert.NotNil(t, page.Posts)
		assert.Empty(t, page.Posts)
		assert.Nil(t, page.NextPage)
	})
}

func TestStatusLookups(t *testing.T) {
	id, ok := StatusIDByLabel("published")
	require.True(t, ok)
	assert.Equal(t, StatusPublished, id)

	id, ok = StatusIDByLabel("draft")
	require.True(t, ok)
	assert.Equal(t, StatusDraft, id)

	_, ok = StatusIDByLabel("archived")
	assert.False(t, ok)

	assert.Equal(t, "draft", StatusLabel(StatusDraft))
	assert.Equal(t, "", StatusLabel(99))
}
