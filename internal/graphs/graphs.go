// Package graphs derives the chart datasets the static site renders:
// rating trends, genre trends, production volume, seasonal patterns and
// studio performance, written as JSON next to the partition files.
package graphs

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"animehub/internal/catalog"
	"animehub/internal/stats"
	"animehub/internal/store"

	"go.uber.org/zap"
)

// Generator reads the catalog through the store and writes one JSON file
// per chart into the data dir.
type Generator struct {
	store     *store.FileStore
	log       *zap.Logger
	startYear int

	// The Chinese corpus has no popularity ranks, so the popularity
	// scatter is skipped for it.
	popularity bool
}

func New(st *store.FileStore, startYear int, popularity bool, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	if startYear == 0 {
		startYear = 2006
	}
	return &Generator{store: st, log: log, startYear: startYear, popularity: popularity}
}

// Run generates every chart dataset.
func (g *Generator) Run() error {
	manifest, err := g.store.LoadManifest()
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	records := g.loadRecords(manifest)

	type chart struct {
		name string
		data func() any
	}
	charts := []chart{
		{"rating-trend.json", func() any { return unwrap(g.ratingTrend(manifest)) }},
		{"genre-trends.json", func() any { return unwrap(g.genreTrends(records)) }},
		{"genre-trends-percentage.json", func() any { return unwrap(g.genreTrendsPercentage(records)) }},
		{"genre-trends-by-season.json", func() any { return unwrap(g.genreTrendsBySeason(manifest, false)) }},
		{"genre-trends-by-season-percentage.json", func() any { return unwrap(g.genreTrendsBySeason(manifest, true)) }},
		{"production-volume.json", func() any { return unwrap(g.productionVolume(manifest)) }},
		{"seasonal-patterns.json", func() any { return unwrap(g.seasonalPatterns(records)) }},
		{"studio-rankings.json", func() any { return unwrap(g.studioRankings(records)) }},
		{"studio-scatter.json", func() any { return unwrap(g.studioScatter(records, 0)) }},
		{"studio-scatter-filtered.json", func() any { return unwrap(g.studioScatter(records, 5)) }},
		{"studio-scatter-filtered-10.json", func() any { return unwrap(g.studioScatter(records, 10)) }},
		{"collection-stats.json", func() any { return unwrap(g.collectionStats(records, manifest)) }},
	}
	if g.popularity {
		charts = append(charts, chart{
			"anime-rating-popularity-scatter.json",
			func() any { return unwrap(g.popularityScatter(records)) },
		})
	}

	for _, c := range charts {
		data := c.data()
		if data == nil {
			g.log.Warn("no data for chart", zap.String("chart", c.name))
			continue
		}
		path := filepath.Join(g.store.Dir(), c.name)
		if err := store.WriteJSON(path, data); err != nil {
			return fmt.Errorf("write %s: %w", c.name, err)
		}
		g.log.Info("wrote chart data", zap.String("chart", c.name))
	}
	return nil
}

// unwrap turns a typed nil pointer into an untyped nil so Run can skip
// empty charts with a plain comparison.
func unwrap[T any](v *T) any {
	if v == nil {
		return nil
	}
	return v
}

func (g *Generator) currentYear() int { return time.Now().Year() }

func (g *Generator) inWindow(year int) bool {
	return year >= g.startYear && year <= g.currentYear()
}

// loadRecords reads every manifest partition, stamping year and season
// onto records that lack them, and keeps those inside the reporting
// window. Missing partitions are skipped.
func (g *Generator) loadRecords(manifest []catalog.ManifestEntry) []catalog.Anime {
	var records []catalog.Anime
	for _, entry := range manifest {
		partition, err := g.store.LoadPartition(entry.Year, entry.Season)
		if err != nil {
			continue
		}
		for _, a := range partition {
			if a.Year == 0 {
				a.Year = entry.Year
			}
			if a.Season == "" {
				a.Season = entry.Season
			}
			if g.inWindow(a.Year) {
				records = append(records, a)
			}
		}
	}
	return records
}

// sortedManifest returns the in-window manifest entries in chronological
// order without touching the caller's slice.
func (g *Generator) sortedManifest(manifest []catalog.ManifestEntry) []catalog.ManifestEntry {
	var entries []catalog.ManifestEntry
	for _, entry := range manifest {
		if g.inWindow(entry.Year) {
			entries = append(entries, entry)
		}
	}
	store.SortManifest(entries)
	return entries
}

// topGenresByCount returns the limit most frequent genres, most frequent
// first, ties broken alphabetically.
func topGenresByCount(counts map[string]int, limit int) []string {
	genres := make([]string, 0, len(counts))
	for genre := range counts {
		genres = append(genres, genre)
	}
	sort.Slice(genres, func(i, j int) bool {
		if counts[genres[i]] != counts[genres[j]] {
			return counts[genres[i]] > counts[genres[j]]
		}
		return genres[i] < genres[j]
	})
	if len(genres) > limit {
		genres = genres[:limit]
	}
	return genres
}

func round2(v float64) float64 { return stats.Round(v, 2) }
func round1(v float64) float64 { return stats.Round(v, 1) }
