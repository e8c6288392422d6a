package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"animehub/internal/catalog"
	"animehub/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatP(v float64) *float64 { return &v }

func writeFixture(t *testing.T, dir string) *store.FileStore {
	t.Helper()
	st := store.New(dir)

	winter := []catalog.Anime{
		{MalID: 1, Title: "Alpha", Score: floatP(8.0), Genres: []string{"Action", "Comedy"}, Studios: []string{"MAPPA"}},
		{MalID: 2, Title: "Beta", Genres: []string{"Action"}, Studios: []string{"MAPPA"}},
	}
	spring := []catalog.Anime{
		{MalID: 3, Title: "Gamma", Score: floatP(6.0), Genres: []string{"Drama"}, Studios: []string{"Bones"}},
	}
	require.NoError(t, st.SavePartition(2020, catalog.Winter, winter))
	require.NoError(t, st.SavePartition(2020, catalog.Spring, spring))
	require.NoError(t, st.SaveManifest([]catalog.ManifestEntry{
		{Year: 2020, Season: catalog.Winter, Count: 2},
		{Year: 2020, Season: catalog.Spring, Count: 1},
		// Future season: must be excluded from every export.
		{Year: 2100, Season: catalog.Winter, Count: 0},
	}))
	return st
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExporter_Run(t *testing.T) {
	dir := t.TempDir()
	st := writeFixture(t, dir)

	require.NoError(t, New(st, 2006, nil).Run())

	for _, name := range []string{
		"all_anime.csv", "ratings_by_season.csv", "genre_statistics.csv",
		"studio_statistics.csv", "yearly_summary.csv",
	} {
		_, err := os.Stat(filepath.Join(dir, "csv", name))
		assert.NoError(t, err, name)
	}
}

func TestExporter_AllAnime(t *testing.T) {
	dir := t.TempDir()
	st := writeFixture(t, dir)
	require.NoError(t, New(st, 2006, nil).Run())

	rows := readCSV(t, filepath.Join(dir, "csv", "all_anime.csv"))
	require.Len(t, rows, 4) // header + 3 records

	header := rows[0]
	assert.Equal(t, "mal_id", header[0])
	assert.Equal(t, "url", header[len(header)-1])

	byTitle := make(map[string][]string)
	for _, row := range rows[1:] {
		require.Len(t, row, len(header))
		byTitle[row[1]] = row
	}

	alpha := byTitle["Alpha"]
	require.NotNil(t, alpha)
	assert.Equal(t, "2020", alpha[5])
	assert.Equal(t, "winter", alpha[6])
	assert.Equal(t, "Winter 2020", alpha[7])
	assert.Equal(t, "8", alpha[8])
	assert.Equal(t, "Action|Comedy", alpha[34])

	// Unrated record keeps an empty score cell.
	assert.Equal(t, "", byTitle["Beta"][8])
}

func TestExporter_SeasonRatings(t *testing.T) {
	dir := t.TempDir()
	st := writeFixture(t, dir)
	require.NoError(t, New(st, 2006, nil).Run())

	rows := readCSV(t, filepath.Join(dir, "csv", "ratings_by_season.csv"))
	require.Len(t, rows, 3) // header + two real seasons, future one dropped

	winter := rows[1]
	assert.Equal(t, []string{"2020", "winter", "Winter 2020", "2", "1", "8", "8", "8", "8"}, winter)
}

func TestExporter_FacetStats(t *testing.T) {
	dir := t.TempDir()
	st := writeFixture(t, dir)
	require.NoError(t, New(st, 2006, nil).Run())

	genres := readCSV(t, filepath.Join(dir, "csv", "genre_statistics.csv"))
	require.Len(t, genres, 4)
	// Action appears twice, so it leads the table.
	assert.Equal(t, "Action", genres[1][0])
	assert.Equal(t, "2", genres[1][1])
	assert.Equal(t, "1", genres[1][2])

	studios := readCSV(t, filepath.Join(dir, "csv", "studio_statistics.csv"))
	assert.Equal(t, "MAPPA", studios[1][0])
}

func TestExporter_YearlySummary(t *testing.T) {
	dir := t.TempDir()
	st := writeFixture(t, dir)
	require.NoError(t, New(st, 2006, nil).Run())

	rows := readCSV(t, filepath.Join(dir, "csv", "yearly_summary.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2020", "3", "2", "7", "3", "2"}, rows[1])
}
