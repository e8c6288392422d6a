// Package export writes flat CSV summaries of the catalog for offline
// analysis: the full record dump plus seasonal, genre, studio and yearly
// aggregates.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"animehub/internal/catalog"
	"animehub/internal/stats"
	"animehub/internal/store"

	"go.uber.org/zap"
)

// Exporter reads partitions through the store and writes CSV files into
// a csv/ directory next to them.
type Exporter struct {
	store     *store.FileStore
	log       *zap.Logger
	startYear int
}

func New(st *store.FileStore, startYear int, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	if startYear == 0 {
		startYear = 2006
	}
	return &Exporter{store: st, log: log, startYear: startYear}
}

// Run writes every CSV export. Records outside the startYear..current
// year window are skipped: future seasons have placeholder data.
func (e *Exporter) Run() error {
	outDir := filepath.Join(e.store.Dir(), "csv")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	manifest, err := e.store.LoadManifest()
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}

	records := e.validRecords(manifest)

	exports := []struct {
		name  string
		write func(*csv.Writer) error
	}{
		{"all_anime.csv", func(w *csv.Writer) error { return e.writeAllAnime(w, records) }},
		{"ratings_by_season.csv", func(w *csv.Writer) error { return e.writeSeasonRatings(w, manifest) }},
		{"genre_statistics.csv", func(w *csv.Writer) error { return e.writeFacetStats(w, records, "genre", facetGenres) }},
		{"studio_statistics.csv", func(w *csv.Writer) error { return e.writeFacetStats(w, records, "studio", facetStudios) }},
		{"yearly_summary.csv", func(w *csv.Writer) error { return e.writeYearlySummary(w, records) }},
	}
	for _, ex := range exports {
		if err := e.writeFile(filepath.Join(outDir, ex.name), ex.write); err != nil {
			return fmt.Errorf("export %s: %w", ex.name, err)
		}
		e.log.Info("wrote export", zap.String("file", ex.name))
	}
	return nil
}

func (e *Exporter) writeFile(path string, write func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// validRecords loads every manifest partition and keeps records inside
// the reporting window. Missing partitions are skipped quietly, the same
// way the loader treats them.
func (e *Exporter) validRecords(manifest []catalog.ManifestEntry) []catalog.Anime {
	currentYear := time.Now().Year()
	var records []catalog.Anime
	for _, entry := range manifest {
		partition, err := e.store.LoadPartition(entry.Year, entry.Season)
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
			if a.Year >= e.startYear && a.Year <= currentYear {
				records = append(records, a)
			}
		}
	}
	return records
}

// truncate shortens long prose fields to keep rows manageable.
func truncate(s string, limit int) string {
	s = strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return s
}

func fmtFloat(v float64) string  { return strconv.FormatFloat(v, 'g', -1, 64) }
func fmtRound2(v float64) string { return fmtFloat(stats.Round(v, 2)) }

func strPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intPtr(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func floatPtr(p *float64) string {
	if p == nil {
		return ""
	}
	return fmtFloat(*p)
}

func boolPtr(p *bool) string {
	if p == nil {
		return ""
	}
	return strconv.FormatBool(*p)
}

func (e *Exporter) writeAllAnime(w *csv.Writer, records []catalog.Anime) error {
	header := []string{
		"mal_id", "title", "title_english", "title_japanese", "title_synonyms",
		"year", "season", "season_label",
		"score", "scored_by", "rank", "popularity", "members", "favorites",
		"episodes", "type", "status", "airing", "approved", "duration",
		"rating", "source", "broadcast", "aired_from", "aired_to",
		"trailer_url", "is_hentai", "is_japanese",
		"studios", "studios_count", "producers", "producers_count",
		"licensors", "licensors_count", "genres", "genres_count",
		"themes", "themes_count", "demographics", "demographics_count",
		"synopsis_short", "background_short", "url",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, a := range records {
		row := []string{
			strconv.FormatInt(a.MalID, 10),
			a.Title,
			strPtr(a.TitleEnglish),
			strPtr(a.TitleJapanese),
			strings.Join(a.TitleSynonyms, "|"),
			strconv.Itoa(a.Year),
			string(a.Season),
			a.Season.Label(a.Year),
			floatPtr(a.Score),
			intPtr(a.ScoredBy),
			intPtr(a.Rank),
			intPtr(a.Popularity),
			intPtr(a.Members),
			intPtr(a.Favorites),
			intPtr(a.Episodes),
			a.Type,
			a.Status,
			strconv.FormatBool(a.Airing),
			strconv.FormatBool(a.Approved),
			a.Duration,
			strPtr(a.AgeRating),
			a.SourceType,
			strPtr(a.Broadcast),
			strPtr(a.AiredFrom),
			strPtr(a.AiredTo),
			strPtr(a.TrailerURL),
			strconv.FormatBool(a.Hentai),
			boolPtr(a.Japanese),
			strings.Join(a.Studios, "|"),
			strconv.Itoa(len(a.Studios)),
			strings.Join(a.Producers, "|"),
			strconv.Itoa(len(a.Producers)),
			strings.Join(a.Licensors, "|"),
			strconv.Itoa(len(a.Licensors)),
			strings.Join(a.Genres, "|"),
			strconv.Itoa(len(a.Genres)),
			strings.Join(a.Themes, "|"),
			strconv.Itoa(len(a.Themes)),
			strings.Join(a.Demographics, "|"),
			strconv.Itoa(len(a.Demographics)),
			truncate(a.Synopsis, 200),
			truncate(strPtr(a.Background), 200),
			a.URL,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeSeasonRatings(w *csv.Writer, manifest []catalog.ManifestEntry) error {
	header := []string{
		"year", "season", "season_label", "total_anime", "rated_anime",
		"average_score", "median_score", "highest_score", "lowest_score",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	currentYear := time.Now().Year()
	for _, entry := range manifest {
		if entry.Year < e.startYear || entry.Year > currentYear {
			continue
		}
		partition, err := e.store.LoadPartition(entry.Year, entry.Season)
		if err != nil {
			continue
		}

		var scores []float64
		for _, a := range partition {
			if a.Score != nil {
				scores = append(scores, *a.Score)
			}
		}

		row := []string{
			strconv.Itoa(entry.Year),
			string(entry.Season),
			entry.Season.Label(entry.Year),
			strconv.Itoa(len(partition)),
			strconv.Itoa(len(scores)),
			"", "", "", "",
		}
		if len(scores) > 0 {
			row[5] = fmtRound2(stats.Mean(scores))
			row[6] = fmtRound2(stats.Median(scores))
			row[7] = fmtFloat(stats.Max(scores))
			row[8] = fmtFloat(stats.Min(scores))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func facetGenres(a *catalog.Anime) []string  { return a.Genres }
func facetStudios(a *catalog.Anime) []string { return a.Studios }

// writeFacetStats aggregates per-genre or per-studio counts and score
// distributions, most frequent facet first.
func (e *Exporter) writeFacetStats(w *csv.Writer, records []catalog.Anime, label string, facet func(*catalog.Anime) []string) error {
	header := []string{
		label, "total_anime", "rated_anime",
		"average_score", "median_score", "highest_score", "lowest_score",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	counts := make(map[string]int)
	scores := make(map[string][]float64)
	for i := range records {
		a := &records[i]
		for _, name := range facet(a) {
			if name == "" {
				continue
			}
			counts[name]++
			if a.Score != nil {
				scores[name] = append(scores[name], *a.Score)
			}
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		row := []string{
			name,
			strconv.Itoa(counts[name]),
			strconv.Itoa(len(scores[name])),
			"", "", "", "",
		}
		if s := scores[name]; len(s) > 0 {
			row[3] = fmtRound2(stats.Mean(s))
			row[4] = fmtRound2(stats.Median(s))
			row[5] = fmtFloat(stats.Max(s))
			row[6] = fmtFloat(stats.Min(s))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeYearlySummary(w *csv.Writer, records []catalog.Anime) error {
	header := []string{
		"year", "total_anime", "rated_anime", "average_score",
		"unique_genres", "unique_studios",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	type yearAgg struct {
		total   int
		scores  []float64
		genres  map[string]bool
		studios map[string]bool
	}
	byYear := make(map[int]*yearAgg)
	for i := range records {
		a := &records[i]
		agg := byYear[a.Year]
		if agg == nil {
			agg = &yearAgg{genres: make(map[string]bool), studios: make(map[string]bool)}
			byYear[a.Year] = agg
		}
		agg.total++
		if a.Score != nil {
			agg.scores = append(agg.scores, *a.Score)
		}
		for _, g := range a.Genres {
			if g != "" {
				agg.genres[g] = true
			}
		}
		for _, s := range a.Studios {
			if s != "" {
				agg.studios[s] = true
			}
		}
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	for _, year := range years {
		agg := byYear[year]
		avg := ""
		if len(agg.scores) > 0 {
			avg = fmtRound2(stats.Mean(agg.scores))
		}
		row := []string{
			strconv.Itoa(year),
			strconv.Itoa(agg.total),
			strconv.Itoa(len(agg.scores)),
			avg,
			strconv.Itoa(len(agg.genres)),
			strconv.Itoa(len(agg.studios)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
