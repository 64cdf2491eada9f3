package listennotes

import (
	"fmt"
	"strings"

	"github.com/shoko75/audioshelf/internal/domain"
)

// mapPodcasts converts wire podcasts to domain audiobooks.
// An entry with an empty id or title (after trimming) fails the whole
// page; partial pages are never returned.
func mapPodcasts(dtos []podcastDTO) ([]domain.Audiobook, error) {
	books := make([]domain.Audiobook, 0, len(dtos))
	for i, dto := range dtos {
		id := strings.TrimSpace(dto.ID)
		title := strings.TrimSpace(dto.Title)
		if id == "" {
			return nil, fmt.Errorf("podcast at index %d has empty id", i)
		}
		if title == "" {
			return nil, fmt.Errorf("podcast %q has empty title", id)
		}
		books = append(books, domain.Audiobook{
			ID:          id,
			Title:       title,
			Publisher:   dto.Publisher,
			ThumbURL:    dto.Thumbnail,
			ImageURL:    dto.Image,
			Description: dto.Description,
		})
	}
	return books, nil
}
