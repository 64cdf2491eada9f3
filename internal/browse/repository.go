package browse

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/shoko75/audioshelf/internal/domain"
)

// Repository owns the aggregated catalog list: the items fetched so far,
// the page cursor, loading/error state, and the single-flight guard
// around load-more. It composes the catalog source and the favorite
// store behind one read/command surface.
//
// All state lives behind r.mu and is only handed out as copies via
// Snapshot; load operations never return errors — failures land in the
// snapshot's Err field.
type Repository struct {
	source    domain.CatalogSource
	favorites domain.FavoriteStore
	logger    *slog.Logger

	mu             sync.Mutex
	items          []domain.Audiobook
	currentPage    int // 0 = nothing loaded yet
	loadingInitial bool
	loadingMore    bool
	hasMore        bool
	lastErr        error

	// moreDone is non-nil while a load-more attempt is in flight.
	// Concurrent LoadMore callers wait on it instead of fetching.
	moreDone chan struct{}
}

// Snapshot is a copy of the repository state at one instant.
type Snapshot struct {
	Items          []domain.Audiobook
	CurrentPage    int
	LoadingInitial bool
	LoadingMore    bool
	HasMore        bool
	Err            error
}

// NewRepository creates a repository over the given collaborators.
func NewRepository(source domain.CatalogSource, favorites domain.FavoriteStore, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		source:    source,
		favorites: favorites,
		logger:    logger,
		hasMore:   true,
	}
}

// LoadInitial fetches page 1 and replaces the aggregated list wholesale.
// A call while another initial load is in flight returns immediately
// without side effects (duplicate screen-appear events).
func (r *Repository) LoadInitial(ctx context.Context) {
	r.mu.Lock()
	if r.loadingInitial {
		r.mu.Unlock()
		return
	}
	r.loadingInitial = true
	r.lastErr = nil
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.loadingInitial = false
		r.mu.Unlock()
	}()

	page, err := r.source.FetchPage(ctx, 1)

	r.mu.Lock()
	if err != nil {
		r.logger.Error("initial load failed", "error", err)
		r.lastErr = err
	} else {
		r.items = slices.Clone(page.Items)
		r.currentPage = 1
		r.hasMore = len(page.Items) > 0
		r.logger.Debug("initial load complete", "count", len(page.Items), "hasMore", r.hasMore)
	}
	r.mu.Unlock()
}

// LoadMore fetches the next page and appends it. If the catalog is
// exhausted it returns immediately. If another load-more is in flight,
// the call waits for that attempt to finish and returns without issuing
// a second fetch; every concurrent caller observes the same outcome.
func (r *Repository) LoadMore(ctx context.Context) {
	r.mu.Lock()
	if !r.hasMore {
		r.mu.Unlock()
		return
	}
	if r.moreDone != nil {
		done := r.moreDone
		r.mu.Unlock()
		<-done
		return
	}
	done := make(chan struct{})
	r.moreDone = done
	r.loadingMore = true
	r.lastErr = nil
	next := r.currentPage + 1
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.loadingMore = false
		r.moreDone = nil
		r.mu.Unlock()
		close(done)
	}()

	page, err := r.source.FetchPage(ctx, next)

	r.mu.Lock()
	if err != nil {
		r.logger.Error("load more failed", "page", next, "error", err)
		r.lastErr = err
	} else {
		// Duplicates across pages are preserved; the catalog may
		// legitimately repeat items.
		r.items = append(r.items, page.Items...)
		r.currentPage = next
		r.hasMore = len(page.Items) > 0
		r.logger.Debug("load more complete", "page", next, "count", len(page.Items), "total", len(r.items))
	}
	r.mu.Unlock()
}

// RetryInitial re-attempts the initial page load. It is the recovery
// action after a failed initial load; behavior matches LoadInitial.
func (r *Repository) RetryInitial(ctx context.Context) {
	r.LoadInitial(ctx)
}

// IsFavorite reports current membership in the favorite store.
func (r *Repository) IsFavorite(id string) bool {
	return r.favorites.Contains(id)
}

// ToggleFavorite flips membership in the favorite store. Pagination
// state is unaffected.
func (r *Repository) ToggleFavorite(id string) error {
	return r.favorites.Toggle(id)
}

// Snapshot returns a copy of the current state.
func (r *Repository) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		Items:          slices.Clone(r.items),
		CurrentPage:    r.currentPage,
		LoadingInitial: r.loadingInitial,
		LoadingMore:    r.loadingMore,
		HasMore:        r.hasMore,
		Err:            r.lastErr,
	}
}
