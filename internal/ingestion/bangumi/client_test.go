package bangumi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(url string) *Client {
	return NewClient(
		WithAPIURL(url),
		WithWebURL(url),
		WithRequestInterval(time.Millisecond),
	)
}

func TestClient_SubjectIDsPaginates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.URL.Path, "/anime/browser/"), "path %s", r.URL.Path)
		require.True(t, strings.HasSuffix(r.URL.Path, "/tv/airtime/2024-1"), "path %s", r.URL.Path)
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `<html><body><ul id="browserItemList">
				<li id="item_1001" class="item"><h3>One</h3></li>
				<li id="item_1002" class="item"><h3>Two</h3></li>
				<li class="ad">not an item</li>
			</ul></body></html>`)
		case "2":
			fmt.Fprint(w, `<html><body><ul id="browserItemList">
				<li id="item_1003" class="item"><h3>Three</h3></li>
			</ul></body></html>`)
		default:
			fmt.Fprint(w, `<html><body><ul id="browserItemList"></ul></body></html>`)
		}
	}))
	defer srv.Close()

	ids, err := testClient(srv.URL).SubjectIDs(context.Background(), 2024, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1001, 1002, 1003}, ids)
}

func TestClient_SubjectIDsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).SubjectIDs(context.Background(), 2024, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestClient_Subject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v0/subjects/42", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		fmt.Fprint(w, `{
			"id": 42,
			"name": "original",
			"name_cn": "中文名",
			"rating": {"score": 7.2, "rank": 500, "total": 1200},
			"collection": {"wish": 10, "collect": 20},
			"nsfw": false
		}`)
	}))
	defer srv.Close()

	sub, err := testClient(srv.URL).Subject(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), sub.ID)
	assert.Equal(t, "中文名", sub.NameCN)
	assert.InDelta(t, 7.2, sub.Rating.Score, 0.001)
}

func TestClient_SubjectNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Subject(context.Background(), 7)
	assert.ErrorIs(t, err, ErrSubjectNotFound)
}
