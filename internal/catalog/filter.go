package catalog

// GenreMode selects how multiple selected genres combine.
type GenreMode int

const (
	// GenreOR keeps records sharing at least one selected genre.
	GenreOR GenreMode = iota
	// GenreAND keeps records carrying every selected genre.
	GenreAND
)

func (m GenreMode) String() string {
	if m == GenreAND {
		return "and"
	}
	return "or"
}

// FilterConfig is an immutable description of one filtering interaction.
// The presentation layer builds a fresh config per interaction and passes
// it in whole; the engine never mutates it.
type FilterConfig struct {
	// ShowAdult includes adult content. Off by default.
	ShowAdult bool
	// HideUnrated drops records without a score. On by default.
	HideUnrated bool
	// JapaneseOnly drops records explicitly marked as non-Japanese
	// productions. Records with unknown origin are kept.
	JapaneseOnly bool
	// Genres restricts to the selected genres; empty means no restriction.
	Genres []string
	// Mode combines multiple selected genres (OR or AND).
	Mode GenreMode
	// MinScore is the sampler's score threshold. Zero means no constraint;
	// any positive threshold excludes unrated records.
	MinScore float64
}

// DefaultFilterConfig mirrors the browser's initial toggle state.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		HideUnrated:  true,
		JapaneseOnly: true,
		Mode:         GenreOR,
	}
}

// Matches reports whether a single record passes the config's visibility,
// rating-presence, locale and genre conditions. The sampler's MinScore
// threshold is deliberately not part of this predicate.
func (cfg FilterConfig) Matches(a *Anime) bool {
	if a.Hentai && !cfg.ShowAdult {
		return false
	}
	if cfg.HideUnrated && !a.Rated() {
		return false
	}
	// Unknown origin never excludes; only an explicit false does.
	if cfg.JapaneseOnly && a.Japanese != nil && !*a.Japanese {
		return false
	}
	return cfg.matchesGenres(a)
}

func (cfg FilterConfig) matchesGenres(a *Anime) bool {
	if len(cfg.Genres) == 0 {
		return true
	}
	if cfg.Mode == GenreAND {
		for _, want := range cfg.Genres {
			if !a.HasGenre(want) {
				return false
			}
		}
		return true
	}
	for _, want := range cfg.Genres {
		if a.HasGenre(want) {
			return true
		}
	}
	return false
}

// meetsScoreThreshold applies the sampler-only fifth condition: unrated
// records pass only when the threshold is exactly zero, since there is
// nothing to compare against a positive one.
func (cfg FilterConfig) meetsScoreThreshold(a *Anime) bool {
	if a.Score == nil {
		return cfg.MinScore == 0
	}
	return *a.Score >= cfg.MinScore
}

// Filter returns the subsequence of records passing the config, in the
// input's order. A nil or empty result means nothing qualified; that is a
// valid outcome, not an error.
func Filter(records []Anime, cfg FilterConfig) []Anime {
	out := make([]Anime, 0, len(records))
	for i := range records {
		if cfg.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}
