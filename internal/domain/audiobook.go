package domain

import "strings"

// Audiobook represents one show in the remote audiobook catalog.
// Constructed only by decoding a catalog page response; never mutated
// after construction.
type Audiobook struct {
	ID          string // Catalog identifier (unique within a page, may repeat across pages)
	Title       string // Display title
	Publisher   string // Publishing network/author
	ThumbURL    string // Small cover image URL
	ImageURL    string // Full-size cover image URL
	Description string // Raw description, may contain markup
}

// DisplayPublisher returns the publisher or a placeholder when empty.
func (a Audiobook) DisplayPublisher() string {
	if strings.TrimSpace(a.Publisher) == "" {
		return "Unknown publisher"
	}
	return a.Publisher
}

// HasArtwork reports whether any cover image locator is present.
func (a Audiobook) HasArtwork() bool {
	return a.ThumbURL != "" || a.ImageURL != ""
}

// Page is one fetched batch of audiobooks from the catalog.
type Page struct {
	Items []Audiobook
	// HasMoreHint is the server's own opinion on whether further pages
	// exist. The browse repository keys exhaustion off an empty Items
	// slice instead; the hint is carried for diagnostics.
	HasMoreHint bool
}
