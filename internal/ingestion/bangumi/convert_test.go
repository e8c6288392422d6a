package bangumi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoboxValueDecoding(t *testing.T) {
	raw := `[
		{"key": "动画制作", "value": "MAPPA"},
		{"key": "原作", "value": [{"v": "漫画"}, {"v": "小说"}]},
		{"key": "导演", "value": "someone"}
	]`
	var items []infoboxItem
	require.NoError(t, json.Unmarshal([]byte(raw), &items))

	assert.Equal(t, []string{"MAPPA"}, infoboxValues(items, "动画制作", "制作"))
	assert.Equal(t, []string{"漫画", "小说"}, infoboxValues(items, "原作"))
	assert.Empty(t, infoboxValues(items, "音乐制作"))
}

func TestConvert(t *testing.T) {
	sub := &subject{
		ID:      3375,
		Name:    "ぼっち・ざ・ろっく！",
		NameCN:  "孤独摇滚！",
		Summary: "简介",
		Date:    "2022-10-08",
		NSFW:    false,
		Images:  subjectImages{Large: "https://example.com/l.jpg"},
		Rating:  subjectRating{Score: 8.4, Rank: 120, Total: 9000},
		Collection: map[string]int{
			"wish": 100, "collect": 200, "doing": 50,
		},
		Tags: []subjectTag{
			{Name: "搞笑", Count: 30},
			{Name: "音乐", Count: 80},
			{Name: "2022", Count: 10},
		},
		Infobox: []infoboxItem{
			{Key: "动画制作", Value: infoboxValue{"CloverWorks"}},
			{Key: "原作", Value: infoboxValue{"漫画"}},
		},
	}
	got := convert(sub)

	assert.Equal(t, int64(3375), got.MalID)
	assert.Equal(t, "孤独摇滚！", got.Title)
	require.NotNil(t, got.TitleJapanese)
	assert.Equal(t, "ぼっち・ざ・ろっく！", *got.TitleJapanese)
	assert.Equal(t, "https://example.com/l.jpg", got.ImageURL)
	require.NotNil(t, got.Score)
	assert.InDelta(t, 8.4, *got.Score, 0.001)
	require.NotNil(t, got.Members)
	assert.Equal(t, 350, *got.Members)
	assert.Equal(t, []string{"喜剧", "音乐"}, got.Genres)
	assert.Equal(t, []string{"CloverWorks"}, got.Studios)
	assert.Equal(t, "漫画", got.SourceType)
	assert.Equal(t, 2022, got.Year)
	assert.Equal(t, "https://bgm.tv/subject/3375", got.URL)
	assert.False(t, got.Hentai)
	assert.Nil(t, got.Japanese)
}

func TestConvert_FallbacksAndUnrated(t *testing.T) {
	sub := &subject{
		ID:     99,
		Name:   "無題",
		NSFW:   true,
		Images: subjectImages{Common: "https://example.com/c.jpg"},
	}
	got := convert(sub)

	// No Chinese name, so the original name carries the title.
	assert.Equal(t, "無題", got.Title)
	assert.Equal(t, "https://example.com/c.jpg", got.ImageURL)
	assert.Nil(t, got.Score)
	assert.Nil(t, got.Rank)
	assert.True(t, got.Hentai)
	assert.Zero(t, got.Year)
	assert.Nil(t, got.AiredFrom)
	require.NotNil(t, got.Members)
	assert.Zero(t, *got.Members)
}
