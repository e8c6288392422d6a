package graphs

import (
	"sort"

	"animehub/internal/catalog"
)

// ProductionVolume is the yearly output series with year-over-year
// growth rates.
type ProductionVolume struct {
	Years       []int     `json:"years"`
	Counts      []int     `json:"counts"`
	GrowthRates []float64 `json:"growth_rates"`
	TotalAnime  int       `json:"total_anime"`
	AvgPerYear  float64   `json:"avg_per_year"`
	PeakYear    int       `json:"peak_year"`
	PeakCount   int       `json:"peak_count"`
}

func (g *Generator) productionVolume(manifest []catalog.ManifestEntry) *ProductionVolume {
	byYear := make(map[int]int)
	for _, entry := range manifest {
		if g.inWindow(entry.Year) {
			byYear[entry.Year] += entry.Count
		}
	}
	if len(byYear) == 0 {
		return nil
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	vol := &ProductionVolume{Years: years}
	for _, year := range years {
		count := byYear[year]
		vol.Counts = append(vol.Counts, count)
		vol.TotalAnime += count
		if count > vol.PeakCount {
			vol.PeakCount = count
			vol.PeakYear = year
		}
	}
	for i := 1; i < len(vol.Counts); i++ {
		prev := vol.Counts[i-1]
		growth := 0.0
		if prev > 0 {
			growth = float64(vol.Counts[i]-prev) / float64(prev) * 100
		}
		vol.GrowthRates = append(vol.GrowthRates, round2(growth))
	}
	vol.AvgPerYear = round1(float64(vol.TotalAnime) / float64(len(years)))
	return vol
}
