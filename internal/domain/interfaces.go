package domain

import "context"

// CatalogSource fetches one page of the remote audiobook catalog.
// Pages are 1-based. Implementations must classify every failure into a
// *FetchError; raw transport errors never cross this boundary.
type CatalogSource interface {
	FetchPage(ctx context.Context, page int) (Page, error)
}

// FavoriteStore is a durable set of favorited audiobook ids.
// All operations are idempotent and safe for concurrent use. A corrupted
// or unreadable backing file behaves as an empty set rather than failing.
type FavoriteStore interface {
	Contains(id string) bool
	Add(id string) error
	Remove(id string) error
	Toggle(id string) error
	Close() error
}
