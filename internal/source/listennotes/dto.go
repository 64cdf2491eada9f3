package listennotes

// bestPodcastsResponse is the wire shape of GET /best_podcasts.
type bestPodcastsResponse struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	PageNumber  int          `json:"page_number"`
	HasNext     bool         `json:"has_next"`
	HasPrevious bool         `json:"has_previous"`
	Podcasts    []podcastDTO `json:"podcasts"`
}

type podcastDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Publisher   string `json:"publisher"`
	Thumbnail   string `json:"thumbnail"`
	Image       string `json:"image"`
	Description string `json:"description"`
}
