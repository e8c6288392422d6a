package jikan

// Wire types for the Jikan v4 seasonal endpoint. Only the fields the
// catalog keeps are mapped.

type seasonResponse struct {
	Data       []seasonAnime `json:"data"`
	Pagination pagination    `json:"pagination"`
}

type pagination struct {
	HasNextPage bool `json:"has_next_page"`
	CurrentPage int  `json:"current_page"`
}

type seasonAnime struct {
	MalID         int64      `json:"mal_id"`
	Title         string     `json:"title"`
	TitleEnglish  *string    `json:"title_english"`
	TitleJapanese *string    `json:"title_japanese"`
	TitleSynonyms []string   `json:"title_synonyms"`
	Images        imageSet   `json:"images"`
	Trailer       *trailer   `json:"trailer"`
	Synopsis      *string    `json:"synopsis"`
	Background    *string    `json:"background"`
	Episodes      *int       `json:"episodes"`
	Score         *float64   `json:"score"`
	ScoredBy      *int       `json:"scored_by"`
	Rank          *int       `json:"rank"`
	Popularity    *int       `json:"popularity"`
	Members       *int       `json:"members"`
	Favorites     *int       `json:"favorites"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	Airing        bool       `json:"airing"`
	Approved      bool       `json:"approved"`
	Duration      string     `json:"duration"`
	Rating        *string    `json:"rating"`
	Source        string     `json:"source"`
	Studios       []namedRef `json:"studios"`
	Producers     []namedRef `json:"producers"`
	Licensors     []namedRef `json:"licensors"`
	Genres        []namedRef `json:"genres"`
	Themes        []namedRef `json:"themes"`
	Demographics  []namedRef `json:"demographics"`
	Aired         aired      `json:"aired"`
	Broadcast     *broadcast `json:"broadcast"`
	URL           string     `json:"url"`
	Year          *int       `json:"year"`
	Season        *string    `json:"season"`
}

type imageSet struct {
	JPG struct {
		ImageURL      string `json:"image_url"`
		LargeImageURL string `json:"large_image_url"`
	} `json:"jpg"`
}

type trailer struct {
	URL      *string `json:"url"`
	EmbedURL *string `json:"embed_url"`
}

type aired struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

type broadcast struct {
	String *string `json:"string"`
}

func names(refs []namedRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Name)
	}
	return out
}

type namedRef struct {
	Name string `json:"name"`
}
