package provider

import "time"

// Headline is one raw article from the news feed, before scoring. A zero
// PublishedAt marks a record whose timestamp could not be parsed; the engine
// skips such records instead of failing the pass.
type Headline struct {
	Title       string
	Description string
	Source      string
	URL         string
	PublishedAt time.Time
}

// IndexPoint is one trading day of the market index feed, ordered by the
// provider most-recent last.
type IndexPoint struct {
	Date  time.Time
	Close float64
}
