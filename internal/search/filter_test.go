package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoko75/audioshelf/internal/domain"
)

func books() []domain.Audiobook {
	return []domain.Audiobook{
		{ID: "1", Title: "Moby Dick", Publisher: "Oceanic Audio"},
		{ID: "2", Title: "Dracula", Publisher: "Gothic House"},
		{ID: "3", Title: "The Dictionary of Lost Words", Publisher: "Penguin"},
		{ID: "4", Title: "Middlemarch", Publisher: "Penguin"},
	}
}

func TestFilterEmptyQueryKeepsOrder(t *testing.T) {
	matches := Filter("", books())
	require.Len(t, matches, 4)
	for i, m := range matches {
		assert.Equal(t, i, m.Index)
	}
}

func TestFilterMatchesTitle(t *testing.T) {
	matches := Filter("dracula", books())
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Index)
}

func TestFilterFallsBackToPublisher(t *testing.T) {
	matches := Filter("penguin", books())
	require.Len(t, matches, 2)
	indexes := []int{matches[0].Index, matches[1].Index}
	assert.ElementsMatch(t, []int{2, 3}, indexes)
}

func TestFilterNoMatches(t *testing.T) {
	assert.Empty(t, Filter("zzzzzz", books()))
}

func TestFilterRanksCloserMatchesFirst(t *testing.T) {
	items := []domain.Audiobook{
		{ID: "1", Title: "The Art of War and Peace in Distant Lands"},
		{ID: "2", Title: "War"},
	}
	matches := Filter("war", items)
	require.Len(t, matches, 2)
	assert.Equal(t, 1, matches[0].Index, "the exact short title ranks first")
}

func TestFilterTrimsQuery(t *testing.T) {
	matches := Filter("   ", books())
	assert.Len(t, matches, 4)
}
