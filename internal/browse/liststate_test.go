package browse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoko75/audioshelf/internal/domain"
	"github.com/shoko75/audioshelf/internal/log"
)

func newTestListState(catalog *mockCatalog, threshold int) *ListState {
	repo := newTestRepository(catalog)
	return NewListState(repo, threshold, log.NullLogger())
}

func TestOnAppearPublishesLoadedList(t *testing.T) {
	catalog := newMockCatalog()
	catalog.setPage(1, makeBooks("p1", 20))
	list := newTestListState(catalog, 5)

	ui := list.OnAppear(context.Background())

	assert.Len(t, ui.Items, 20)
	assert.True(t, ui.HasMore)
	assert.Empty(t, ui.ErrorMessage)
	assert.False(t, ui.IsEmpty)
	assert.False(t, ui.LoadingInitial)
}

func TestTriggerBoundary(t *testing.T) {
	catalog := newMockCatalog()
	catalog.setPage(1, makeBooks("p1", 20))
	catalog.setPage(2, makeBooks("p2", 20))
	list := newTestListState(catalog, 5)
	ctx := context.Background()

	ui := list.OnAppear(ctx)
	require.Len(t, ui.Items, 20)

	// threshold 5 over 20 items puts the trigger at index 15
	ui = list.LoadMoreIfNeeded(ctx, ui.Items[14], 14)
	assert.Len(t, ui.Items, 20, "index 14 is below the trigger")

	ui = list.LoadMoreIfNeeded(ctx, ui.Items[15], 15)
	assert.Len(t, ui.Items, 40, "index 15 triggers exactly one load")
}

func TestTriggerRequiresMatchingPosition(t *testing.T) {
	catalog := newMockCatalog()
	catalog.setPage(1, makeBooks("p1", 20))
	catalog.setPage(2, makeBooks("p2", 20))
	list := newTestListState(catalog, 5)
	ctx := context.Background()

	ui := list.OnAppear(ctx)

	// Item/index mismatch: stale row data must not trigger.
	ui = list.LoadMoreIfNeeded(ctx, ui.Items[3], 19)
	assert.Len(t, ui.Items, 20)

	// Out-of-range index is a no-op.
	ui = list.LoadMoreIfNeeded(ctx, ui.Items[19], 25)
	assert.Len(t, ui.Items, 20)
}

func TestTriggerUsesPositionNotIDSearch(t *testing.T) {
	catalog := newMockCatalog()
	books := makeBooks("p1", 20)
	// The same id appears early and late in the list.
	books[2].ID = "dup"
	books[19].ID = "dup"
	catalog.setPage(1, books)
	catalog.setPage(2, makeBooks("p2", 20))
	list := newTestListState(catalog, 5)
	ctx := context.Background()

	ui := list.OnAppear(ctx)

	// The early occurrence of the duplicated id sits below the trigger
	// index; its position governs, not where its id is found first.
	ui = list.LoadMoreIfNeeded(ctx, ui.Items[2], 2)
	assert.Len(t, ui.Items, 20)

	// The late occurrence triggers.
	ui = list.LoadMoreIfNeeded(ctx, ui.Items[19], 19)
	assert.Len(t, ui.Items, 40)
}

func TestTriggerNoOpWhileLoadMoreInFlight(t *testing.T) {
	catalog := newMockCatalog()
	catalog.setPage(1, makeBooks("p1", 20))
	catalog.setPage(2, makeBooks("p2", 20))
	list := newTestListState(catalog, 5)
	ctx := context.Background()

	ui := list.OnAppear(ctx)

	block := make(chan struct{})
	catalog.setBlock(block)

	go list.LoadMoreIfNeeded(ctx, ui.Items[19], 19)
	require.Eventually(t, func() bool {
		return list.repo.Snapshot().LoadingMore
	}, time.Second, time.Millisecond)

	// A second trigger while one is in flight returns without waiting.
	done := make(chan struct{})
	go func() {
		list.LoadMoreIfNeeded(ctx, ui.Items[19], 19)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("trigger blocked while a load-more was in flight")
	}

	close(block)
	require.Eventually(t, func() bool {
		return !list.repo.Snapshot().LoadingMore
	}, time.Second, time.Millisecond)

	assert.Equal(t, int32(2), catalog.fetchCount.Load(), "initial load plus one load-more")
}

func TestTriggerNoOpWhenExhausted(t *testing.T) {
	catalog := newMockCatalog()
	catalog.setPage(1, makeBooks("p1", 20))
	catalog.setPage(2, nil)
	list := newTestListState(catalog, 5)
	ctx := context.Background()

	ui := list.OnAppear(ctx)
	ui = list.LoadMoreIfNeeded(ctx, ui.Items[19], 19)
	require.False(t, ui.HasMore)

	fetched := catalog.fetchCount.Load()
	ui = list.LoadMoreIfNeeded(ctx, ui.Items[19], 19)
	assert.Equal(t, fetched, catalog.fetchCount.Load())
	assert.Len(t, ui.Items, 20)
}

func TestEmptyCatalogReportsEmpty(t *testing.T) {
	catalog := newMockCatalog()
	catalog.setPage(1, nil)
	list := newTestListState(catalog, 5)

	ui := list.OnAppear(context.Background())

	assert.True(t, ui.IsEmpty)
	assert.False(t, ui.HasMore)
	assert.Empty(t, ui.ErrorMessage)
	assert.Empty(t, ui.Items)
}

func TestErrorTakesPrecedenceOverEmpty(t *testing.T) {
	catalog := newMockCatalog()
	catalog.setError(1, domain.NewNoConnectivityError(nil))
	list := newTestListState(catalog, 5)
	ctx := context.Background()

	ui := list.OnAppear(ctx)

	assert.Empty(t, ui.Items)
	assert.NotEmpty(t, ui.ErrorMessage)
	assert.False(t, ui.IsEmpty, "an errored load is not an empty catalog")

	// Connectivity returns; retry clears the error and populates.
	catalog.setPage(1, makeBooks("p1", 20))
	ui = list.RetryInitial(ctx)

	assert.Empty(t, ui.ErrorMessage)
	assert.Len(t, ui.Items, 20)
}

func TestFailedLoadMoreSurfacesTransientError(t *testing.T) {
	catalog := newMockCatalog()
	catalog.setPage(1, makeBooks("p1", 20))
	catalog.setError(2, domain.NewServerError(503))
	list := newTestListState(catalog, 5)
	ctx := context.Background()

	ui := list.OnAppear(ctx)
	ui = list.LoadMoreIfNeeded(ctx, ui.Items[19], 19)

	// The loaded list survives; the error rides alongside it.
	assert.Len(t, ui.Items, 20)
	assert.NotEmpty(t, ui.ErrorMessage)
	assert.Contains(t, ui.ErrorMessage, "503")
	assert.False(t, ui.IsEmpty)
}

func TestFavoritePassThrough(t *testing.T) {
	catalog := newMockCatalog()
	catalog.setPage(1, makeBooks("p1", 5))
	list := newTestListState(catalog, 5)

	list.OnAppear(context.Background())

	assert.False(t, list.IsFavorite("p1-1"))
	require.NoError(t, list.ToggleFavorite("p1-1"))
	assert.True(t, list.IsFavorite("p1-1"))
	require.NoError(t, list.ToggleFavorite("p1-1"))
	assert.False(t, list.IsFavorite("p1-1"))
}

func TestDefaultThresholdApplied(t *testing.T) {
	catalog := newMockCatalog()
	list := newTestListState(catalog, 0)
	assert.Equal(t, DefaultTriggerThreshold, list.threshold)
}
