package catalog

import (
	"fmt"
	"strings"
)

// Season is one quarter of a broadcast year. The zero value is invalid;
// use ParseSeason for input coming from manifests or flags.
type Season string

const (
	Winter Season = "winter"
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
)

// Seasons lists all seasons in broadcast order (winter first).
var Seasons = []Season{Winter, Spring, Summer, Fall}

// seasonOrder gives each season its position within a year.
var seasonOrder = map[Season]int{Winter: 0, Spring: 1, Summer: 2, Fall: 3}

// Order returns the season's position within the year, or a large value
// for unknown season names so they sort last.
func (s Season) Order() int {
	if ord, ok := seasonOrder[s]; ok {
		return ord
	}
	return 99
}

// StartMonth returns the first month of the season (winter = January).
func (s Season) StartMonth() int {
	switch s {
	case Winter:
		return 1
	case Spring:
		return 4
	case Summer:
		return 7
	case Fall:
		return 10
	}
	return 1
}

// Label returns the display label for a season of a year, "Winter 2024".
func (s Season) Label(year int) string {
	name := string(s)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return fmt.Sprintf("%s %d", name, year)
}

func ParseSeason(s string) (Season, error) {
	switch Season(s) {
	case Winter, Spring, Summer, Fall:
		return Season(s), nil
	}
	return "", fmt.Errorf("invalid season %q", s)
}

// ManifestEntry declares that a partition file exists and how many records
// it holds. The manifest is the authoritative list of partitions to load.
type ManifestEntry struct {
	Year   int    `json:"year"`
	Season Season `json:"season"`
	Count  int    `json:"count"`
}

// Anime is one catalog entry for one title in one season. Field names
// mirror the partition files the scraper writes. Optional numeric fields
// are pointers: nil means the upstream API had no value, which the engine
// treats as "do not exclude" unless a filter says otherwise.
type Anime struct {
	MalID         int64    `json:"mal_id"`
	Title         string   `json:"title"`
	TitleEnglish  *string  `json:"title_english"`
	TitleJapanese *string  `json:"title_japanese"`
	TitleSynonyms []string `json:"title_synonyms,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	TrailerURL    *string  `json:"trailer_url,omitempty"`
	Synopsis      string   `json:"synopsis,omitempty"`
	Background    *string  `json:"background,omitempty"`

	Episodes   *int     `json:"episodes"`
	Score      *float64 `json:"score"`
	ScoredBy   *int     `json:"scored_by"`
	Rank       *int     `json:"rank"`
	Popularity *int     `json:"popularity"`
	Members    *int     `json:"members"`
	Favorites  *int     `json:"favorites"`

	Type       string  `json:"type,omitempty"`
	Status     string  `json:"status,omitempty"`
	Airing     bool    `json:"airing,omitempty"`
	Approved   bool    `json:"approved,omitempty"`
	Duration   string  `json:"duration,omitempty"`
	AgeRating  *string `json:"rating,omitempty"`
	SourceType string  `json:"source,omitempty"`

	Studios      []string `json:"studios"`
	Producers    []string `json:"producers,omitempty"`
	Licensors    []string `json:"licensors,omitempty"`
	Genres       []string `json:"genres"`
	Themes       []string `json:"themes,omitempty"`
	Demographics []string `json:"demographics,omitempty"`

	AiredFrom *string `json:"aired_from"`
	AiredTo   *string `json:"aired_to,omitempty"`
	Broadcast *string `json:"broadcast,omitempty"`
	URL       string  `json:"url,omitempty"`

	// Hentai marks adult content; the corresponding genre is never surfaced
	// as a selectable facet. Japanese is nil when the production origin is
	// unknown; only an explicit false marks a non-Japanese production.
	Hentai   bool  `json:"is_hentai"`
	Japanese *bool `json:"is_japanese,omitempty"`

	// Partition keys, injected by the loader from the partition the record
	// came from. Raw partition files may omit them.
	Year   int    `json:"year"`
	Season Season `json:"season"`
}

// Rated reports whether the record carries a score.
func (a *Anime) Rated() bool {
	return a.Score != nil
}

// HasGenre reports whether the record lists the given genre.
func (a *Anime) HasGenre(genre string) bool {
	for _, g := range a.Genres {
		if g == genre {
			return true
		}
	}
	return false
}
