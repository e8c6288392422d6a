package graphs

import (
	"animehub/internal/catalog"
	"animehub/internal/stats"
)

// SeasonalPatterns aggregates rating and volume per broadcast season
// across all years.
type SeasonalPatterns struct {
	Seasons              []catalog.Season           `json:"seasons"`
	AvgScores            map[catalog.Season]float64 `json:"avg_scores"`
	Counts               map[catalog.Season]int     `json:"counts"`
	HighestRatedSeason   catalog.Season             `json:"highest_rated_season"`
	MostProductiveSeason catalog.Season             `json:"most_productive_season"`
}

func (g *Generator) seasonalPatterns(records []catalog.Anime) *SeasonalPatterns {
	scores := make(map[catalog.Season][]float64)
	counts := make(map[catalog.Season]int)
	for i := range records {
		a := &records[i]
		if a.Season.Order() >= len(catalog.Seasons) {
			continue
		}
		counts[a.Season]++
		if a.Score != nil {
			scores[a.Season] = append(scores[a.Season], *a.Score)
		}
	}

	patterns := &SeasonalPatterns{
		Seasons:   catalog.Seasons,
		AvgScores: make(map[catalog.Season]float64, len(catalog.Seasons)),
		Counts:    make(map[catalog.Season]int, len(catalog.Seasons)),
	}
	bestScore, bestCount := -1.0, -1
	for _, season := range catalog.Seasons {
		avg := stats.Mean(scores[season])
		patterns.AvgScores[season] = round2(avg)
		patterns.Counts[season] = counts[season]
		if avg > bestScore {
			bestScore = avg
			patterns.HighestRatedSeason = season
		}
		if counts[season] > bestCount {
			bestCount = counts[season]
			patterns.MostProductiveSeason = season
		}
	}
	return patterns
}
