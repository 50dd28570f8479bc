package models

import "time"

// NewsItem is a canonical headline. PublishedAt is unix milliseconds, or 0
// when the feed date could not be parsed.
type NewsItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Publisher   string `json:"publisher"`
	PublishedAt int64  `json:"publishedAt"`
	Source      string `json:"source"`
}

// NewsResult is the merged, deduplicated headline list for one query.
type NewsResult struct {
	Query     string            `json:"query"`
	Items     []NewsItem        `json:"items"`
	FetchedAt time.Time         `json:"fetchedAt"`
	Errors    map[string]string `json:"errors,omitempty"`
}
