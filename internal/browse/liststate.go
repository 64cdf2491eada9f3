package browse

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/shoko75/audioshelf/internal/domain"
)

// DefaultTriggerThreshold is how close to the end of the loaded list
// the cursor must be before the next page is requested.
const DefaultTriggerThreshold = 5

// UIState is the repository state mirrored into a UI-consumable shape.
type UIState struct {
	Items          []domain.Audiobook
	LoadingInitial bool
	LoadingMore    bool
	HasMore        bool
	ErrorMessage   string // Empty when no error; always retryable when set
	IsEmpty        bool   // True only for a settled, error-free, empty list
}

// ListState mirrors Repository state for the UI and decides when a
// near-end cursor position should trigger the next page load.
type ListState struct {
	repo      *Repository
	threshold int
	logger    *slog.Logger

	mu sync.Mutex
	ui UIState
}

// NewListState creates the presentation adapter. A non-positive
// threshold falls back to DefaultTriggerThreshold.
func NewListState(repo *Repository, threshold int, logger *slog.Logger) *ListState {
	if threshold <= 0 {
		threshold = DefaultTriggerThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ListState{repo: repo, threshold: threshold, logger: logger}
}

// Refresh re-derives the published state from a repository snapshot.
// Called after every repository command completes.
func (l *ListState) Refresh() UIState {
	snap := l.repo.Snapshot()
	ui := UIState{
		Items:          snap.Items,
		LoadingInitial: snap.LoadingInitial,
		LoadingMore:    snap.LoadingMore,
		HasMore:        snap.HasMore,
		ErrorMessage:   errorMessage(snap.Err),
		IsEmpty:        !snap.LoadingInitial && len(snap.Items) == 0 && snap.Err == nil,
	}

	l.mu.Lock()
	l.ui = ui
	l.mu.Unlock()

	return ui
}

// State returns the last published UI state.
func (l *ListState) State() UIState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ui
}

// OnAppear clears any displayed error and runs the initial load.
func (l *ListState) OnAppear(ctx context.Context) UIState {
	l.mu.Lock()
	l.ui.ErrorMessage = ""
	l.mu.Unlock()

	l.repo.LoadInitial(ctx)
	return l.Refresh()
}

// LoadMoreIfNeeded triggers the next page load when the given row is
// within the threshold of the end of the loaded list.
//
// The row is verified by position, never by id search: duplicate ids
// across pages would make a first-match id lookup resolve to an earlier
// occurrence and fire the trigger too early.
func (l *ListState) LoadMoreIfNeeded(ctx context.Context, item domain.Audiobook, index int) UIState {
	snap := l.repo.Snapshot()
	n := len(snap.Items)

	if !snap.HasMore || snap.LoadingMore {
		return l.State()
	}
	if index < 0 || index >= n || snap.Items[index].ID != item.ID {
		return l.State()
	}

	trigger := n - l.threshold
	if trigger < 0 {
		trigger = 0
	}
	if index < trigger {
		return l.State()
	}

	l.logger.Debug("near-end trigger", "index", index, "count", n)
	l.repo.LoadMore(ctx)
	return l.Refresh()
}

// RetryInitial re-attempts the initial page load after a failure.
func (l *ListState) RetryInitial(ctx context.Context) UIState {
	l.repo.RetryInitial(ctx)
	return l.Refresh()
}

// ToggleFavorite flips favorite membership for id.
func (l *ListState) ToggleFavorite(id string) error {
	return l.repo.ToggleFavorite(id)
}

// IsFavorite reports favorite membership for id.
func (l *ListState) IsFavorite(id string) bool {
	return l.repo.IsFavorite(id)
}

// errorMessage translates a classified fetch error into display text.
func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	var fetchErr *domain.FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.UserMessage()
	}
	return err.Error()
}
