package models

import "time"

// Headline - новость из ленты
type Headline struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url,omitempty"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
	Timestamp   string    `json:"timestamp"`
}

// NewsResult - подборка новостей для скоупа
type NewsResult struct {
	Scope       string     `json:"scope"`
	Headlines   []Headline `json:"headlines"`
	Bullets     []string   `json:"bullets,omitempty"`
	Provider    string     `json:"provider"`
	LastFetched time.Time  `json:"lastFetched"`
}
