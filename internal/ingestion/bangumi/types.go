package bangumi

import "encoding/json"

// subject is the relevant slice of the Bangumi /v0/subjects/{id} response.
type subject struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	NameCN     string         `json:"name_cn"`
	Summary    string         `json:"summary"`
	Date       string         `json:"date"`
	NSFW       bool           `json:"nsfw"`
	Images     subjectImages  `json:"images"`
	Rating     subjectRating  `json:"rating"`
	Collection map[string]int `json:"collection"`
	Tags       []subjectTag   `json:"tags"`
	Infobox    []infoboxItem  `json:"infobox"`
}

type subjectImages struct {
	Large  string `json:"large"`
	Common string `json:"common"`
	Medium string `json:"medium"`
}

type subjectRating struct {
	Score float64 `json:"score"`
	Rank  int64   `json:"rank"`
	Total int64   `json:"total"`
}

type subjectTag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// infoboxItem values come back either as a plain string or as a list of
// {v: ...} objects, so decoding is handled by infoboxValue.
type infoboxItem struct {
	Key   string       `json:"key"`
	Value infoboxValue `json:"value"`
}

// infoboxValue flattens both infobox value shapes into a string list.
type infoboxValue []string

func (v *infoboxValue) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*v = infoboxValue{single}
		return nil
	}
	var multi []struct {
		V string `json:"v"`
	}
	if err := json.Unmarshal(data, &multi); err != nil {
		return err
	}
	values := make(infoboxValue, 0, len(multi))
	for _, item := range multi {
		values = append(values, item.V)
	}
	*v = values
	return nil
}

// infoboxValues collects the values of every infobox entry whose key is
// in keys, in infobox order.
func infoboxValues(items []infoboxItem, keys ...string) []string {
	var out []string
	for _, item := range items {
		for _, key := range keys {
			if item.Key == key {
				out = append(out, item.Value...)
				break
			}
		}
	}
	return out
}
