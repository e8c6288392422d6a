package graphs

import (
	"fmt"
	"time"

	"animehub/internal/catalog"
	"animehub/internal/stats"
)

// CollectionStats is the headline numbers shown on the site: corpus
// size, coverage and overall rating.
type CollectionStats struct {
	TotalAnime       int     `json:"total_anime"`
	TotalSeasons     int     `json:"total_seasons"`
	YearRange        string  `json:"year_range"`
	YearsCovered     int     `json:"years_covered"`
	TotalStudios     int     `json:"total_studios"`
	TotalGenres      int     `json:"total_genres"`
	TotalRated       int     `json:"total_rated"`
	RatingPercentage float64 `json:"rating_percentage"`
	AverageRating    float64 `json:"average_rating"`
	AvgPerSeason     float64 `json:"avg_per_season"`
	LastUpdated      string  `json:"last_updated"`
}

func (g *Generator) collectionStats(records []catalog.Anime, manifest []catalog.ManifestEntry) *CollectionStats {
	years := make(map[int]bool)
	minYear, maxYear := 0, 0
	for _, entry := range manifest {
		if !g.inWindow(entry.Year) {
			continue
		}
		years[entry.Year] = true
		if minYear == 0 || entry.Year < minYear {
			minYear = entry.Year
		}
		if entry.Year > maxYear {
			maxYear = entry.Year
		}
	}

	studios := make(map[string]bool)
	genres := make(map[string]bool)
	var scores []float64
	for i := range records {
		a := &records[i]
		for _, s := range a.Studios {
			if s != "" {
				studios[s] = true
			}
		}
		for _, genre := range a.Genres {
			if genre != "" {
				genres[genre] = true
			}
		}
		if a.Score != nil {
			scores = append(scores, *a.Score)
		}
	}

	cs := &CollectionStats{
		TotalAnime:    len(records),
		TotalSeasons:  len(manifest),
		YearsCovered:  len(years),
		TotalStudios:  len(studios),
		TotalGenres:   len(genres),
		TotalRated:    len(scores),
		AverageRating: round2(stats.Mean(scores)),
		LastUpdated:   time.Now().Format("2006-01-02"),
	}
	if len(years) > 0 {
		cs.YearRange = fmt.Sprintf("%d-%d", minYear, maxYear)
		cs.AvgPerSeason = round1(float64(len(records)) / float64(len(years)) / 4)
	}
	if len(records) > 0 {
		cs.RatingPercentage = round1(float64(len(scores)) / float64(len(records)) * 100)
	}
	return cs
}
