package models

// VideoSummary is the normalized shape of a single feed entry
type VideoSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	PublishedAt  string `json:"publishedAt"`
	ThumbnailURL string `json:"thumbnailUrl"`
	WatchURL     string `json:"watchUrl"`
}

// VideoList is the success payload of the video feed endpoint
type VideoList struct {
	Items []VideoSummary `json:"items"`
}
