package jikan

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"animehub/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(url string) *Client {
	return NewClient(
		WithAPIURL(url),
		WithRequestInterval(time.Millisecond),
	)
}

func TestClient_SeasonPaginatesAndFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/seasons/2024/winter", r.URL.Path)
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `{
				"data": [
					{"mal_id": 1, "title": "TV Show", "type": "TV", "genres": [{"name": "Action"}], "studios": [{"name": "MAPPA"}]},
					{"mal_id": 2, "title": "A Movie", "type": "Movie"}
				],
				"pagination": {"has_next_page": true, "current_page": 1}
			}`)
		case "2":
			fmt.Fprint(w, `{
				"data": [
					{"mal_id": 1, "title": "TV Show duplicate", "type": "TV"},
					{"mal_id": 3, "title": "Another TV Show", "type": "TV", "score": 6.5}
				],
				"pagination": {"has_next_page": false, "current_page": 2}
			}`)
		default:
			t.Fatalf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	records, err := testClient(srv.URL).Season(context.Background(), 2024, catalog.Winter)
	require.NoError(t, err)

	// The movie is filtered, the cross-page duplicate dropped.
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0].MalID)
	assert.Equal(t, "TV Show", records[0].Title)
	assert.Equal(t, int64(3), records[1].MalID)
	require.NotNil(t, records[1].Score)
	assert.InDelta(t, 6.5, *records[1].Score, 0.001)
}

func TestClient_SeasonNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Season(context.Background(), 1999, catalog.Summer)
	assert.ErrorIs(t, err, ErrSeasonNotFound)
}

func TestClient_ServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Season(context.Background(), 2024, catalog.Winter)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestClient_EmptySeason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [], "pagination": {"has_next_page": false}}`)
	}))
	defer srv.Close()

	records, err := testClient(srv.URL).Season(context.Background(), 2030, catalog.Fall)
	require.NoError(t, err)
	assert.Empty(t, records)
}
