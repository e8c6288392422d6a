package bangumi

import (
	"sort"
	"strings"
	"unicode"
)

// genreMap normalizes Bangumi tag spellings onto one canonical Chinese
// genre per concept. English tag names map to the same canon so "SF"
// and "科幻" count as one genre.
var genreMap = map[string]string{
	"SF": "科幻", "Science Fiction": "科幻", "科幻": "科幻",

	"战斗": "动作", "Action": "动作", "动作": "动作", "格斗": "动作",

	"恋爱": "爱情", "Romance": "爱情", "爱情": "爱情", "纯爱": "爱情",

	"搞笑": "喜剧", "Comedy": "喜剧", "喜剧": "喜剧",

	"日常": "日常", "Slice of Life": "日常",

	"校园": "校园", "School": "校园", "学园": "校园",

	"奇幻": "奇幻", "Fantasy": "奇幻", "异世界": "奇幻", "魔法": "奇幻", "穿越": "奇幻",

	"冒险": "冒险", "Adventure": "冒险",

	"悬疑": "悬疑", "Mystery": "悬疑", "推理": "悬疑",
	"惊悚": "惊悚", "Thriller": "惊悚",
	"恐怖": "恐怖", "Horror": "恐怖",

	"运动": "运动", "Sports": "运动", "竞技": "运动",

	"机战": "机战", "Mecha": "机战", "萝卜": "机战",

	"音乐": "音乐", "Music": "音乐", "歌舞": "音乐", "偶像": "音乐",

	"治愈": "治愈", "治愈系": "治愈",
	"致郁": "致郁", "致郁系": "致郁",

	"百合": "百合", "GL": "百合",
	"耽美": "耽美", "BL": "耽美",
	"后宫": "后宫",
	"逆后宫": "逆后宫",

	"励志": "励志",
	"历史": "历史",
	"战争": "战争",
	"犯罪": "犯罪",
	"职场": "职场",
	"萌": "萌系", "萌系": "萌系",
}

// excludedTags are Bangumi tags that describe format, region, source
// material or airing time rather than genre.
var excludedTags = map[string]bool{
	"TV": true, "OVA": true, "OAD": true, "WEB": true, "TVA": true, "TV动画": true,
	"剧场版": true, "电影": true, "Movie": true, "Special": true, "特别篇": true,

	"日本": true, "中国": true, "美国": true, "国产": true, "欧美": true, "韩国": true,
	"日本动画": true, "国产动画": true, "欧美动画": true,

	"原创": true, "漫改": true, "小说改": true, "游戏改": true, "轻小说改": true, "漫画改": true,
	"改编": true, "原作": true, "Manga": true, "Light Novel": true,

	"续作": true, "补番": true, "童年": true, "怀旧": true, "新番": true, "完结": true,
	"长篇": true, "短篇": true, "泡面番": true, "连载中": true,
	"1月新番": true, "4月新番": true, "7月新番": true, "10月新番": true,
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// isGenreTag rejects tags that encode time rather than genre: bare
// years, year ranges, month labels and "2024年"-style year labels.
func isGenreTag(tag string) bool {
	if excludedTags[tag] {
		return false
	}
	if allDigits(tag) && len(tag) == 4 {
		return false
	}
	if before, after, found := strings.Cut(tag, "-"); found {
		if allDigits(before) && allDigits(after) {
			return false
		}
	}
	if strings.Contains(tag, "月") && containsDigit(tag) {
		return false
	}
	if strings.HasSuffix(tag, "年") && containsDigit(tag) {
		return false
	}
	return true
}

// normalizeGenres maps raw subject tags onto the canonical genre set:
// zero-count and non-genre tags are dropped, spellings are collapsed via
// genreMap, and the result is deduplicated and sorted.
func normalizeGenres(tags []subjectTag) []string {
	mapped := make(map[string]bool)
	for _, tag := range tags {
		if tag.Count <= 0 || !isGenreTag(tag.Name) {
			continue
		}
		if canon, ok := genreMap[tag.Name]; ok {
			mapped[canon] = true
		}
	}
	genres := make([]string, 0, len(mapped))
	for g := range mapped {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}
