package jikan

import (
	"strings"

	"animehub/internal/catalog"
)

// Studios whose involvement is sufficient to mark a production as
// Japanese. Matching is case-insensitive substring, so "MAPPA" matches
// "MAPPA Channel" the way the corpus expects.
var japaneseStudios = []string{
	"a-1 pictures", "trigger", "mappa", "ufotable", "bones", "kyoto animation",
	"madhouse", "wit studio", "production i.g", "cloverworks", "shaft", "j.c.staff",
	"toei animation", "studio deen", "david production", "sunrise", "gainax",
	"pierrot", "silver link", "lerche", "kinema citrus", "white fox", "doga kobo",
	"p.a. works", "studio ghibli", "tms entertainment", "olm", "toho animation",
}

// Producer substrings that indicate a Korean or Chinese production.
var (
	koreanIndicators  = []string{"netmarble", "kakao", "naver", "webtoon", "d&c media"}
	chineseIndicators = []string{"tencent", "bilibili", "haoliners"}
)

// classifyJapanese applies the origin heuristic: a known Japanese studio
// is sufficient but not necessary; without one, the default is still
// Japanese unless a producer clearly points at a Korean or Chinese
// production.
func classifyJapanese(studios, producers []string) bool {
	for _, studio := range studios {
		lower := strings.ToLower(studio)
		for _, jp := range japaneseStudios {
			if strings.Contains(lower, jp) {
				return true
			}
		}
	}
	for _, producer := range producers {
		lower := strings.ToLower(producer)
		for _, indicator := range append(koreanIndicators, chineseIndicators...) {
			if strings.Contains(lower, indicator) {
				return false
			}
		}
	}
	return true
}

func convert(raw seasonAnime) catalog.Anime {
	genres := names(raw.Genres)

	hentai := false
	for _, g := range genres {
		if g == "Hentai" {
			hentai = true
			break
		}
	}

	studios := names(raw.Studios)
	producers := names(raw.Producers)
	japanese := classifyJapanese(studios, producers)

	imageURL := raw.Images.JPG.LargeImageURL
	if imageURL == "" {
		imageURL = raw.Images.JPG.ImageURL
	}

	// Prefer the watch URL; the embed URL is a usable fallback.
	var trailerURL *string
	if raw.Trailer != nil {
		if raw.Trailer.URL != nil {
			trailerURL = raw.Trailer.URL
		} else {
			trailerURL = raw.Trailer.EmbedURL
		}
	}

	var broadcastStr *string
	if raw.Broadcast != nil {
		broadcastStr = raw.Broadcast.String
	}

	synopsis := "No synopsis available."
	if raw.Synopsis != nil && *raw.Synopsis != "" {
		synopsis = *raw.Synopsis
	}

	source := raw.Source
	if source == "" {
		source = "Unknown"
	}

	a := catalog.Anime{
		MalID:         raw.MalID,
		Title:         raw.Title,
		TitleEnglish:  raw.TitleEnglish,
		TitleJapanese: raw.TitleJapanese,
		TitleSynonyms: raw.TitleSynonyms,
		ImageURL:      imageURL,
		TrailerURL:    trailerURL,
		Synopsis:      synopsis,
		Background:    raw.Background,
		Episodes:      raw.Episodes,
		Score:         raw.Score,
		ScoredBy:      raw.ScoredBy,
		Rank:          raw.Rank,
		Popularity:    raw.Popularity,
		Members:       raw.Members,
		Favorites:     raw.Favorites,
		Type:          raw.Type,
		Status:        raw.Status,
		Airing:        raw.Airing,
		Approved:      raw.Approved,
		Duration:      raw.Duration,
		AgeRating:     raw.Rating,
		SourceType:    source,
		Studios:       studios,
		Producers:     producers,
		Licensors:     names(raw.Licensors),
		Genres:        genres,
		Themes:        names(raw.Themes),
		Demographics:  names(raw.Demographics),
		AiredFrom:     raw.Aired.From,
		AiredTo:       raw.Aired.To,
		Broadcast:     broadcastStr,
		URL:           raw.URL,
		Hentai:        hentai,
		Japanese:      &japanese,
	}
	if raw.Year != nil {
		a.Year = *raw.Year
	}
	if raw.Season != nil {
		if s, err := catalog.ParseSeason(*raw.Season); err == nil {
			a.Season = s
		}
	}
	return a
}
