package bangumi

import (
	"fmt"
	"strconv"

	"animehub/internal/catalog"
)

func intPtr(v int) *int { return &v }

// convert maps a Bangumi subject onto the catalog schema. The Chinese
// name is the display title with the original name as fallback; a zero
// rating score means nobody rated it, so the record stays unrated. The
// production origin flag is left unset: the browser listing is already
// scoped to Japanese TV, and the schema treats unknown as innocent.
func convert(sub *subject) catalog.Anime {
	title := sub.NameCN
	if title == "" {
		title = sub.Name
	}

	imageURL := sub.Images.Large
	if imageURL == "" {
		imageURL = sub.Images.Common
	}
	if imageURL == "" {
		imageURL = sub.Images.Medium
	}

	var score *float64
	var rank, scoredBy *int
	if sub.Rating.Score > 0 {
		s := sub.Rating.Score
		score = &s
	}
	if sub.Rating.Rank > 0 {
		rank = intPtr(int(sub.Rating.Rank))
	}
	if sub.Rating.Total > 0 {
		scoredBy = intPtr(int(sub.Rating.Total))
	}

	// Collection counts (wish, collect, doing, ...) summed stand in for
	// a member count, which Bangumi has no direct equivalent of.
	members := 0
	for _, n := range sub.Collection {
		members += n
	}

	var year int
	if len(sub.Date) >= 4 {
		if y, err := strconv.Atoi(sub.Date[:4]); err == nil {
			year = y
		}
	}

	var airedFrom *string
	if sub.Date != "" {
		d := sub.Date
		airedFrom = &d
	}

	empty := ""
	name := sub.Name

	return catalog.Anime{
		MalID:         sub.ID,
		Title:         title,
		TitleEnglish:  &empty,
		TitleJapanese: &name,
		ImageURL:      imageURL,
		Synopsis:      sub.Summary,
		Score:         score,
		ScoredBy:      scoredBy,
		Rank:          rank,
		Popularity:    intPtr(0),
		Members:       intPtr(members),
		Genres:        normalizeGenres(sub.Tags),
		Studios:       infoboxValues(sub.Infobox, "动画制作", "制作"),
		SourceType:    firstOr(infoboxValues(sub.Infobox, "原作"), ""),
		AiredFrom:     airedFrom,
		URL:           fmt.Sprintf("%s/subject/%d", defaultWebURL, sub.ID),
		Hentai:        sub.NSFW,
		Year:          year,
	}
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}
