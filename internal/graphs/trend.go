package graphs

import (
	"fmt"
	"strconv"

	"animehub/internal/catalog"
	"animehub/internal/stats"
)

// RatingTrend is the seasonal average rating series. Labels carry the
// year only at its first season so the x-axis stays readable.
type RatingTrend struct {
	Labels  []string  `json:"labels"`
	Dates   []string  `json:"dates"`
	Ratings []float64 `json:"ratings"`
	Counts  []int     `json:"counts"`

	// MovingAverage smooths Ratings over a four season window; entries
	// before the window fills are null.
	MovingAverage  []*float64 `json:"moving_average"`
	OverallAverage float64    `json:"overall_average"`
	MinRating      float64    `json:"min_rating"`
	MaxRating      float64    `json:"max_rating"`
}

const movingAverageWindow = 4

func (g *Generator) ratingTrend(manifest []catalog.ManifestEntry) *RatingTrend {
	entries := g.sortedManifest(manifest)

	trend := &RatingTrend{}
	var averages []float64
	prevYear := 0
	for _, entry := range entries {
		partition, err := g.store.LoadPartition(entry.Year, entry.Season)
		if err != nil {
			continue
		}
		var scores []float64
		for _, a := range partition {
			if a.Score != nil {
				scores = append(scores, *a.Score)
			}
		}
		if len(scores) == 0 {
			continue
		}
		avg := stats.Mean(scores)
		averages = append(averages, avg)

		label := ""
		if entry.Year != prevYear {
			label = strconv.Itoa(entry.Year)
			prevYear = entry.Year
		}
		trend.Labels = append(trend.Labels, label)
		trend.Dates = append(trend.Dates, fmt.Sprintf("%04d-%02d-01", entry.Year, entry.Season.StartMonth()))
		trend.Ratings = append(trend.Ratings, round2(avg))
		trend.Counts = append(trend.Counts, len(scores))
	}
	if len(averages) == 0 {
		return nil
	}

	trend.MovingAverage = make([]*float64, len(averages))
	for i := movingAverageWindow - 1; i < len(averages); i++ {
		avg := round2(stats.Mean(averages[i-movingAverageWindow+1 : i+1]))
		trend.MovingAverage[i] = &avg
	}

	trend.OverallAverage = round2(stats.Mean(averages))
	trend.MinRating = round2(stats.Min(averages))
	trend.MaxRating = round2(stats.Max(averages))
	return trend
}
