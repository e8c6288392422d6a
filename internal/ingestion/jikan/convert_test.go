package jikan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyJapanese(t *testing.T) {
	tests := []struct {
		name      string
		studios   []string
		producers []string
		want      bool
	}{
		{
			name:    "KnownJapaneseStudio",
			studios: []string{"MAPPA"},
			want:    true,
		},
		{
			name:    "StudioSubstringMatch",
			studios: []string{"CloverWorks Animation"},
			want:    true,
		},
		{
			name:      "JapaneseStudioOverridesIndicators",
			studios:   []string{"ufotable"},
			producers: []string{"Tencent Penguin Pictures"},
			want:      true,
		},
		{
			name:      "KoreanProducer",
			studios:   []string{"Some Studio"},
			producers: []string{"Kakao Entertainment"},
			want:      false,
		},
		{
			name:      "ChineseProducer",
			producers: []string{"bilibili"},
			want:      false,
		},
		{
			name: "NoSignalsDefaultsJapanese",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyJapanese(tt.studios, tt.producers))
		})
	}
}

func TestConvert(t *testing.T) {
	url := "https://youtube.com/watch?v=x"
	embed := "https://youtube.com/embed/x"
	synopsis := "A story."

	raw := seasonAnime{
		MalID:    100,
		Title:    "Example",
		Type:     "TV",
		Synopsis: &synopsis,
		Genres:   []namedRef{{Name: "Hentai"}, {Name: "Comedy"}},
		Studios:  []namedRef{{Name: "Indie House"}},
		Trailer:  &trailer{URL: &url, EmbedURL: &embed},
	}
	got := convert(raw)

	assert.True(t, got.Hentai)
	assert.Equal(t, []string{"Hentai", "Comedy"}, got.Genres)
	require.NotNil(t, got.TrailerURL)
	assert.Equal(t, url, *got.TrailerURL)
	require.NotNil(t, got.Japanese)
	assert.True(t, *got.Japanese)
	assert.Equal(t, "A story.", got.Synopsis)
	assert.Equal(t, "Unknown", got.SourceType)
}

func TestConvert_TrailerEmbedFallbackAndDefaults(t *testing.T) {
	embed := "https://youtube.com/embed/y"
	raw := seasonAnime{
		MalID:   101,
		Title:   "Minimal",
		Type:    "TV",
		Trailer: &trailer{EmbedURL: &embed},
	}
	got := convert(raw)

	require.NotNil(t, got.TrailerURL)
	assert.Equal(t, embed, *got.TrailerURL)
	assert.Equal(t, "No synopsis available.", got.Synopsis)
	assert.Nil(t, got.Score)
	assert.False(t, got.Hentai)
}
