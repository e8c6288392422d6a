package store_test

import (
	"testing"

	"animehub/internal/catalog"
	"animehub/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_PartitionRoundTrip(t *testing.T) {
	s := store.New(t.TempDir())
	score := 7.7
	records := []catalog.Anime{
		{MalID: 1, Title: "One", Score: &score, Genres: []string{"Action"}},
		{MalID: 2, Title: "Two", Genres: []string{}},
	}

	require.NoError(t, s.SavePartition(2024, catalog.Fall, records))
	assert.True(t, s.PartitionExists(2024, catalog.Fall))
	assert.False(t, s.PartitionExists(2024, catalog.Winter))

	got, err := s.LoadPartition(2024, catalog.Fall)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "One", got[0].Title)
	require.NotNil(t, got[0].Score)
	assert.InDelta(t, 7.7, *got[0].Score, 0.001)
	assert.Nil(t, got[1].Score)
}

func TestFileStore_ManifestSorted(t *testing.T) {
	s := store.New(t.TempDir())
	manifest := []catalog.ManifestEntry{
		{Year: 2024, Season: catalog.Fall, Count: 3},
		{Year: 2023, Season: catalog.Summer, Count: 2},
		{Year: 2024, Season: catalog.Winter, Count: 1},
	}

	require.NoError(t, s.SaveManifest(manifest))
	got, err := s.LoadManifest()
	require.NoError(t, err)

	want := []catalog.ManifestEntry{
		{Year: 2023, Season: catalog.Summer, Count: 2},
		{Year: 2024, Season: catalog.Winter, Count: 1},
		{Year: 2024, Season: catalog.Fall, Count: 3},
	}
	assert.Equal(t, want, got)
}

func TestFileStore_UpsertManifestEntry(t *testing.T) {
	s := store.New(t.TempDir())
	require.NoError(t, s.SaveManifest([]catalog.ManifestEntry{
		{Year: 2024, Season: catalog.Winter, Count: 5},
	}))

	require.NoError(t, s.UpsertManifestEntry(catalog.ManifestEntry{Year: 2024, Season: catalog.Winter, Count: 9}))
	require.NoError(t, s.UpsertManifestEntry(catalog.ManifestEntry{Year: 2024, Season: catalog.Spring, Count: 4}))

	got, err := s.LoadManifest()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 9, got[0].Count)
	assert.Equal(t, catalog.Spring, got[1].Season)
}

func TestDedup(t *testing.T) {
	records := []catalog.Anime{
		{MalID: 1, Title: "Keep"},
		{MalID: 2, Title: "Other"},
		{MalID: 1, Title: "Dup"},
	}
	cleaned, dropped := store.Dedup(records)
	assert.Equal(t, 1, dropped)
	require.Len(t, cleaned, 2)
	assert.Equal(t, "Keep", cleaned[0].Title)
}

func TestFileStore_Clean(t *testing.T) {
	s := store.New(t.TempDir())
	require.NoError(t, s.SavePartition(2024, catalog.Winter, []catalog.Anime{
		{MalID: 1}, {MalID: 1}, {MalID: 2},
	}))
	require.NoError(t, s.SavePartition(2024, catalog.Spring, []catalog.Anime{
		{MalID: 3},
	}))

	files, duplicates, err := s.Clean()
	require.NoError(t, err)
	assert.Equal(t, 1, files)
	assert.Equal(t, 1, duplicates)

	got, err := s.LoadPartition(2024, catalog.Winter)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
