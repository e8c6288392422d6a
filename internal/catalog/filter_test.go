package catalog_test

import (
	"testing"

	"animehub/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- HELPER FUNCTIONS FOR POINTERS ---
func boolPtr(b bool) *bool       { return &b }
func floatPtr(f float64) *float64 { return &f }

func testRecords() []catalog.Anime {
	return []catalog.Anime{
		{
			MalID:    1,
			Title:    "Action Comedy Show",
			Genres:   []string{"Action", "Comedy"},
			Japanese: boolPtr(true),
			Score:    floatPtr(7.5),
		},
		{
			MalID:    2,
			Title:    "Unrated Foreign Comedy",
			Genres:   []string{"Comedy"},
			Japanese: boolPtr(false),
		},
		{
			MalID:  3,
			Title:  "Unknown Origin Drama",
			Genres: []string{"Drama"},
			Score:  floatPtr(6.1),
		},
		{
			MalID:    4,
			Title:    "Adult Title",
			Genres:   []string{"Hentai"},
			Hentai:   true,
			Japanese: boolPtr(true),
			Score:    floatPtr(5.0),
		},
		{
			MalID:    5,
			Title:    "Rated Action Horror",
			Genres:   []string{"Action", "Horror"},
			Japanese: boolPtr(true),
			Score:    floatPtr(8.2),
		},
	}
}

func ids(records []catalog.Anime) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.MalID)
	}
	return out
}

func TestFilter_Defaults(t *testing.T) {
	records := testRecords()
	got := catalog.Filter(records, catalog.DefaultFilterConfig())

	// Adult hidden, unrated hidden, explicit non-Japanese hidden,
	// unknown origin kept.
	assert.Equal(t, []int64{1, 3, 5}, ids(got))
}

func TestFilter_Conditions(t *testing.T) {
	records := testRecords()

	tests := []struct {
		name string
		cfg  catalog.FilterConfig
		want []int64
	}{
		{
			name: "ShowAdultIncludesAdultContent",
			cfg:  catalog.FilterConfig{ShowAdult: true, HideUnrated: true, JapaneseOnly: true},
			want: []int64{1, 3, 4, 5},
		},
		{
			name: "IncludeUnrated",
			cfg:  catalog.FilterConfig{JapaneseOnly: true},
			want: []int64{1, 3, 5},
		},
		{
			name: "AllRegions",
			cfg:  catalog.FilterConfig{},
			want: []int64{1, 2, 3, 5},
		},
		{
			name: "GenreORIntersects",
			cfg: catalog.FilterConfig{
				HideUnrated:  true,
				JapaneseOnly: true,
				Genres:       []string{"Action"},
				Mode:         catalog.GenreOR,
			},
			want: []int64{1, 5},
		},
		{
			name: "GenreANDRequiresAll",
			cfg: catalog.FilterConfig{
				HideUnrated:  true,
				JapaneseOnly: true,
				Genres:       []string{"Action", "Comedy"},
				Mode:         catalog.GenreAND,
			},
			want: []int64{1},
		},
		{
			name: "GenreANDNobodyHasAll",
			cfg: catalog.FilterConfig{
				Genres: []string{"Action", "Horror", "Comedy"},
				Mode:   catalog.GenreAND,
			},
			want: []int64{},
		},
		{
			name: "EmptyGenreSetMeansNoRestriction",
			cfg:  catalog.FilterConfig{Genres: nil, Mode: catalog.GenreAND},
			want: []int64{1, 2, 3, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.Filter(records, tt.cfg)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

// B is excluded by both rating absence and explicit non-Japanese
// origin; A matches the selected genre.
func TestFilter_SeasonScenario(t *testing.T) {
	records := []catalog.Anime{
		{MalID: 10, Title: "A", Genres: []string{"Action", "Comedy"}, Japanese: boolPtr(true), Score: floatPtr(7.5)},
		{MalID: 11, Title: "B", Genres: []string{"Comedy"}, Japanese: boolPtr(false)},
	}
	cfg := catalog.FilterConfig{
		HideUnrated:  true,
		JapaneseOnly: true,
		Genres:       []string{"Action"},
		Mode:         catalog.GenreOR,
	}

	got := catalog.Filter(records, cfg)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Title)

	// Neither record has Horror, so AND over {Action, Horror} empties out.
	cfg.Genres = []string{"Action", "Horror"}
	cfg.Mode = catalog.GenreAND
	assert.Empty(t, catalog.Filter(records, cfg))
}

func TestFilter_OrderPreservedAndIdempotent(t *testing.T) {
	records := testRecords()
	cfg := catalog.FilterConfig{JapaneseOnly: true}

	once := catalog.Filter(records, cfg)
	twice := catalog.Filter(once, cfg)
	assert.Equal(t, once, twice)

	// Subsequence check: relative order of survivors matches the input.
	pos := make(map[int64]int)
	for i, r := range records {
		pos[r.MalID] = i
	}
	for i := 1; i < len(once); i++ {
		assert.Less(t, pos[once[i-1].MalID], pos[once[i].MalID])
	}
}

func TestFilter_ANDSubsetOfOR(t *testing.T) {
	records := testRecords()
	genres := []string{"Action", "Comedy"}

	orResult := catalog.Filter(records, catalog.FilterConfig{Genres: genres, Mode: catalog.GenreOR})
	andResult := catalog.Filter(records, catalog.FilterConfig{Genres: genres, Mode: catalog.GenreAND})

	orIDs := make(map[int64]bool)
	for _, r := range orResult {
		orIDs[r.MalID] = true
	}
	for _, r := range andResult {
		assert.True(t, orIDs[r.MalID], "AND result %d missing from OR result", r.MalID)
	}
}

func TestFilter_UnknownOriginIsInnocent(t *testing.T) {
	unknown := catalog.Anime{MalID: 1, Score: floatPtr(7.0)}
	foreign := catalog.Anime{MalID: 2, Score: floatPtr(7.0), Japanese: boolPtr(false)}

	cfg := catalog.FilterConfig{JapaneseOnly: true}
	assert.True(t, cfg.Matches(&unknown))
	assert.False(t, cfg.Matches(&foreign))
}

func TestFilter_EmptyInput(t *testing.T) {
	assert.Empty(t, catalog.Filter(nil, catalog.DefaultFilterConfig()))
	assert.Empty(t, catalog.Filter([]catalog.Anime{}, catalog.DefaultFilterConfig()))
}
