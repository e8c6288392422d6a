package graphs

import (
	"sort"

	"animehub/internal/catalog"
	"animehub/internal/stats"
)

const (
	rankingLimit    = 15
	qualityMinRated = 10
)

type studioAgg struct {
	name   string
	count  int
	scores []float64
}

func (s *studioAgg) avgScore() float64 { return stats.Mean(s.scores) }

func aggregateStudios(records []catalog.Anime) []*studioAgg {
	byName := make(map[string]*studioAgg)
	for i := range records {
		a := &records[i]
		for _, name := range a.Studios {
			if name == "" {
				continue
			}
			agg := byName[name]
			if agg == nil {
				agg = &studioAgg{name: name}
				byName[name] = agg
			}
			agg.count++
			if a.Score != nil {
				agg.scores = append(agg.scores, *a.Score)
			}
		}
	}
	aggs := make([]*studioAgg, 0, len(byName))
	for _, agg := range byName {
		aggs = append(aggs, agg)
	}
	sort.Slice(aggs, func(i, j int) bool { return aggs[i].name < aggs[j].name })
	return aggs
}

// StudioRanking is one row of the top-15 studio tables.
type StudioRanking struct {
	Studio     string   `json:"studio"`
	Count      int      `json:"count"`
	AvgScore   *float64 `json:"avg_score"`
	RatedCount int      `json:"rated_count,omitempty"`
}

// StudioRankings holds the two top-15 tables: output volume and average
// quality, the latter restricted to studios with enough rated shows for
// the average to mean something.
type StudioRankings struct {
	ByQuantity []StudioRanking `json:"by_quantity"`
	ByQuality  []StudioRanking `json:"by_quality"`
}

func (g *Generator) studioRankings(records []catalog.Anime) *StudioRankings {
	aggs := aggregateStudios(records)

	byQuantity := make([]*studioAgg, len(aggs))
	copy(byQuantity, aggs)
	sort.SliceStable(byQuantity, func(i, j int) bool { return byQuantity[i].count > byQuantity[j].count })
	if len(byQuantity) > rankingLimit {
		byQuantity = byQuantity[:rankingLimit]
	}

	var quality []*studioAgg
	for _, agg := range aggs {
		if len(agg.scores) >= qualityMinRated {
			quality = append(quality, agg)
		}
	}
	sort.SliceStable(quality, func(i, j int) bool { return quality[i].avgScore() > quality[j].avgScore() })
	if len(quality) > rankingLimit {
		quality = quality[:rankingLimit]
	}

	rankings := &StudioRankings{
		ByQuantity: make([]StudioRanking, 0, len(byQuantity)),
		ByQuality:  make([]StudioRanking, 0, len(quality)),
	}
	for _, agg := range byQuantity {
		row := StudioRanking{Studio: agg.name, Count: agg.count}
		if len(agg.scores) > 0 {
			avg := round2(agg.avgScore())
			row.AvgScore = &avg
		}
		rankings.ByQuantity = append(rankings.ByQuantity, row)
	}
	for _, agg := range quality {
		avg := round2(agg.avgScore())
		rankings.ByQuality = append(rankings.ByQuality, StudioRanking{
			Studio:     agg.name,
			Count:      agg.count,
			AvgScore:   &avg,
			RatedCount: len(agg.scores),
		})
	}
	return rankings
}

// StudioPoint is one studio in the quantity-vs-quality scatter.
type StudioPoint struct {
	Name       string  `json:"name"`
	AvgRating  float64 `json:"avg_rating"`
	AnimeCount int     `json:"anime_count"`
	RatedCount int     `json:"rated_count"`
}

// StudioScatter is the scatter dataset, optionally restricted to studios
// above a minimum output.
type StudioScatter struct {
	Studios       []StudioPoint `json:"studios"`
	MeanRating    float64       `json:"mean_rating"`
	MeanCount     float64       `json:"mean_count"`
	TotalStudios  int           `json:"total_studios"`
	MinAnimeCount int           `json:"min_anime_count,omitempty"`
}

func (g *Generator) studioScatter(records []catalog.Anime, minCount int) *StudioScatter {
	var points []StudioPoint
	var ratings, counts []float64
	for _, agg := range aggregateStudios(records) {
		if agg.count < minCount || len(agg.scores) == 0 {
			continue
		}
		avg := agg.avgScore()
		points = append(points, StudioPoint{
			Name:       agg.name,
			AvgRating:  round2(avg),
			AnimeCount: agg.count,
			RatedCount: len(agg.scores),
		})
		ratings = append(ratings, avg)
		counts = append(counts, float64(agg.count))
	}
	if len(points) == 0 {
		return nil
	}
	return &StudioScatter{
		Studios:       points,
		MeanRating:    round2(stats.Mean(ratings)),
		MeanCount:     round1(stats.Mean(counts)),
		TotalStudios:  len(points),
		MinAnimeCount: minCount,
	}
}

// AnimePoint is one title in the rating-vs-popularity scatter.
type AnimePoint struct {
	Title      string  `json:"title"`
	Score      float64 `json:"score"`
	Popularity int     `json:"popularity"`
	Members    int     `json:"members"`
	MalID      int64   `json:"mal_id"`
}

// PopularityScatter relates score to popularity rank for every title
// that has both.
type PopularityScatter struct {
	Anime          []AnimePoint `json:"anime"`
	MeanScore      float64      `json:"mean_score"`
	MeanPopularity float64      `json:"mean_popularity"`
	TotalAnime     int          `json:"total_anime"`
}

func (g *Generator) popularityScatter(records []catalog.Anime) *PopularityScatter {
	var points []AnimePoint
	var scores, popularities []float64
	for i := range records {
		a := &records[i]
		if a.Score == nil || a.Popularity == nil {
			continue
		}
		members := 0
		if a.Members != nil {
			members = *a.Members
		}
		points = append(points, AnimePoint{
			Title:      a.Title,
			Score:      round2(*a.Score),
			Popularity: *a.Popularity,
			Members:    members,
			MalID:      a.MalID,
		})
		scores = append(scores, *a.Score)
		popularities = append(popularities, float64(*a.Popularity))
	}
	if len(points) == 0 {
		return nil
	}
	return &PopularityScatter{
		Anime:          points,
		MeanScore:      round2(stats.Mean(scores)),
		MeanPopularity: round1(stats.Mean(popularities)),
		TotalAnime:     len(points),
	}
}
