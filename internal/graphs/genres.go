package graphs

import (
	"sort"

	"animehub/internal/catalog"
)

const trendGenreLimit = 10

// GenreTrends is a per-year series for the most frequent genres, as raw
// counts or as a percentage of that year's production.
type GenreTrends struct {
	Years  []int                `json:"years"`
	Genres []string             `json:"genres"`
	Data   map[string][]float64 `json:"data"`
}

// SeasonGenreTrends is the same series at season resolution.
type SeasonGenreTrends struct {
	Labels []string             `json:"labels"`
	Genres []string             `json:"genres"`
	Data   map[string][]float64 `json:"data"`
}

func (g *Generator) genreCountsByYear(records []catalog.Anime) (map[int]map[string]int, map[int]int) {
	byYear := make(map[int]map[string]int)
	totals := make(map[int]int)
	for i := range records {
		a := &records[i]
		totals[a.Year]++
		if byYear[a.Year] == nil {
			byYear[a.Year] = make(map[string]int)
		}
		for _, genre := range a.Genres {
			if genre != "" {
				byYear[a.Year][genre]++
			}
		}
	}
	return byYear, totals
}

func overallGenreCounts(byPeriod []map[string]int) map[string]int {
	totals := make(map[string]int)
	for _, counts := range byPeriod {
		for genre, count := range counts {
			totals[genre] += count
		}
	}
	return totals
}

func (g *Generator) genreTrends(records []catalog.Anime) *GenreTrends {
	byYear, _ := g.genreCountsByYear(records)
	return buildYearTrends(byYear, nil)
}

func (g *Generator) genreTrendsPercentage(records []catalog.Anime) *GenreTrends {
	byYear, totals := g.genreCountsByYear(records)
	return buildYearTrends(byYear, totals)
}

// buildYearTrends assembles the per-year series; with totals present the
// values become percentages.
func buildYearTrends(byYear map[int]map[string]int, totals map[int]int) *GenreTrends {
	years := make([]int, 0, len(byYear))
	perYear := make([]map[string]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)
	for _, year := range years {
		perYear = append(perYear, byYear[year])
	}

	top := topGenresByCount(overallGenreCounts(perYear), trendGenreLimit)

	trends := &GenreTrends{Years: years, Genres: top, Data: make(map[string][]float64, len(top))}
	for _, genre := range top {
		series := make([]float64, 0, len(years))
		for _, year := range years {
			count := float64(byYear[year][genre])
			if totals != nil {
				if total := totals[year]; total > 0 {
					count = round2(count / float64(total) * 100)
				} else {
					count = 0
				}
			}
			series = append(series, count)
		}
		trends.Data[genre] = series
	}
	return trends
}

func (g *Generator) genreTrendsBySeason(manifest []catalog.ManifestEntry, percentage bool) *SeasonGenreTrends {
	entries := g.sortedManifest(manifest)

	labels := make([]string, 0, len(entries))
	perSeason := make([]map[string]int, 0, len(entries))
	totals := make([]int, 0, len(entries))
	for _, entry := range entries {
		labels = append(labels, entry.Season.Label(entry.Year))

		counts := make(map[string]int)
		total := 0
		if partition, err := g.store.LoadPartition(entry.Year, entry.Season); err == nil {
			total = len(partition)
			for i := range partition {
				for _, genre := range partition[i].Genres {
					if genre != "" {
						counts[genre]++
					}
				}
			}
		}
		perSeason = append(perSeason, counts)
		totals = append(totals, total)
	}

	top := topGenresByCount(overallGenreCounts(perSeason), trendGenreLimit)

	trends := &SeasonGenreTrends{Labels: labels, Genres: top, Data: make(map[string][]float64, len(top))}
	for _, genre := range top {
		series := make([]float64, 0, len(perSeason))
		for i, counts := range perSeason {
			value := float64(counts[genre])
			if percentage {
				if totals[i] > 0 {
					value = round2(value / float64(totals[i]) * 100)
				} else {
					value = 0
				}
			}
			series = append(series, value)
		}
		trends.Data[genre] = series
	}
	return trends
}
