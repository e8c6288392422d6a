package catalog

import "sort"

// hentaiGenre is reserved for the adult-content classification and is
// surfaced only through the Hentai flag, never as a selectable facet.
const hentaiGenre = "Hentai"

// topGenreLimit caps the genre facet list shown to users.
const topGenreLimit = 30

// TopGenres derives the selectable genre facets from a collection: the
// distinct genres (minus the reserved adult-content genre) ranked by
// descending frequency, truncated to the top 30, then re-sorted
// alphabetically for display. The cut is made on frequency rank, so a
// frequent genre is always included even when it sorts after an excluded
// rarer one. Frequency ties break alphabetically.
func TopGenres(records []Anime) []string {
	counts := make(map[string]int)
	for i := range records {
		for _, g := range records[i].Genres {
			if g == "" || g == hentaiGenre {
				continue
			}
			counts[g]++
		}
	}

	ranked := make([]string, 0, len(counts))
	for g := range counts {
		ranked = append(ranked, g)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})

	if len(ranked) > topGenreLimit {
		ranked = ranked[:topGenreLimit]
	}
	sort.Strings(ranked)
	return ranked
}

// GenreCounts returns how often each genre occurs in the collection,
// excluding the reserved adult-content genre.
func GenreCounts(records []Anime) map[string]int {
	counts := make(map[string]int)
	for i := range records {
		for _, g := range records[i].Genres {
			if g == "" || g == hentaiGenre {
				continue
			}
			counts[g]++
		}
	}
	return counts
}
