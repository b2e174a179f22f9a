package main

import (
	"encoding/json"
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hnreader/internal/config"
	"hnreader/internal/handlers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fakeResponses = map[string]string{
	"/v0/topstories.json": `[1, 2]`,
	"/v0/item/1.json":     `{"id":1,"type":"story","by":"pg","title":"Hello HN","url":"https://www.example.com/post","score":42,"time":1700000000,"descendants":2,"kids":[10]}`,
	"/v0/item/2.json":     `{"id":2,"type":"story","by":"dang","title":"Ask HN: Anything?","text":"Just asking","score":7,"time":1700000000}`,
	"/v0/item/10.json":    `{"id":10,"type":"comment","by":"tptacek","text":"First <a href=\"https://news.ycombinator.com/item?id=2\">link</a>","parent":1,"time":1700000100,"kids":[11]}`,
	"/v0/item/11.json":    `{"id":11,"type":"comment","by":"patio11","text":"Nested reply","parent":10,"time":1700000200,"kids":[12]}`,
	"/v0/user/pg.json":    `{"id":"pg","created":1160418092,"karma":155000,"about":"Bug fixer.","submitted":[1,2]}`,
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	hn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body, ok := fakeResponses[r.URL.Path]
		if !ok {
			body = "null"
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(hn.Close)

	cfg := config.Config{
		Addr:          ":0",
		SessionSecret: "test-secret",
		StoryLimit:    30,
		ThreadDepth:   2,
		HN:            config.HN{BaseURL: hn.URL + "/v0", Timeout: 2 * time.Second, FanOut: 4},
		Cache:         config.Cache{Size: 50, TTL: time.Minute, TopRefreshInterval: 5 * time.Minute, MaxStale: 10 * time.Minute},
	}
	a, err := buildApp(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(a.engine)
	t.Cleanup(srv.Close)
	return srv
}

func noRedirect(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

func get(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	return resp.StatusCode, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestTopStoriesPage(t *testing.T) {
	srv := newTestServer(t)

	code, body := get(t, srv, "/")

	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Hello HN")
	assert.Contains(t, body, "(example.com)")
	assert.Contains(t, body, `href="/item/2"`)
	assert.Contains(t, body, "42 points by")
}

func TestStoryDetailPage(t *testing.T) {
	srv := newTestServer(t)

	code, body := get(t, srv, "/item/1")

	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "tptacek")
	assert.Contains(t, body, "Nested reply")
	assert.Contains(t, body, "Loading reply...")
	assert.Contains(t, body, `href="/comment/12"`)
}

func TestStoryWithoutComments(t *testing.T) {
	srv := newTestServer(t)

	code, body := get(t, srv, "/item/2")

	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Just asking")
	assert.Contains(t, body, "No comments yet.")
}

func TestMissingStory(t *testing.T) {
	srv := newTestServer(t)

	code, body := get(t, srv, "/item/999")

	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "Error: Story not found")
}

func TestCommentThreadPage(t *testing.T) {
	srv := newTestServer(t)

	code, body := get(t, srv, "/comment/10")

	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Nested reply")
	assert.Contains(t, body, `href="/item/2"`)
}

func TestUserPage(t *testing.T) {
	srv := newTestServer(t)

	code, body := get(t, srv, "/user/pg")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "155000")
	assert.Contains(t, body, "2006-10-09")

	code, _ = get(t, srv, "/user/nobody")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestEmptyCategory(t *testing.T) {
	srv := newTestServer(t)

	code, body := get(t, srv, "/jobs")

	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "No stories.")
}

func TestAPIStories(t *testing.T) {
	srv := newTestServer(t)

	code, body := get(t, srv, "/api/stories?limit=1")
	require.Equal(t, http.StatusOK, code)

	var env struct {
		Success bool `json:"success"`
		Data    []struct {
			ID    int    `json:"id"`
			Title string `json:"title"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	assert.True(t, env.Success)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Hello HN", env.Data[0].Title)

	code, _ = get(t, srv, "/api/stories?category=bogus")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAPIItem(t *testing.T) {
	srv := newTestServer(t)

	code, body := get(t, srv, "/api/item/999")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, `"error":"Story not found"`)

	code, _ = get(t, srv, "/api/item/abc")
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = get(t, srv, "/api/item/1/comments")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, "tptacek")
}

func TestSubmitFlow(t *testing.T) {
	srv := newTestServer(t)
	client := &http.Client{CheckRedirect: noRedirect}

	resp, err := client.PostForm(srv.URL+"/submit", url.Values{"title": {""}, "url": {"ftp://x"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = client.PostForm(srv.URL+"/submit", url.Values{"title": {"My story"}, "url": {"https://example.com"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/submit", resp.Header.Get("Location"))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/submit", nil)
	require.NoError(t, err)
	for _, ck := range resp.Cookies() {
		req.AddCookie(ck)
	}
	resp, err = client.Do(req)
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), html.EscapeString(handlers.SubmitFlash))
}

func TestSubmitPreview(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.PostForm(srv.URL+"/submit", url.Values{"title": {"t"}, "text": {"**bold**"}, "action": {"preview"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "<strong>bold</strong>")
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	code, body := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)

	get(t, srv, "/")
	code, body = get(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "hn_upstream_requests_total")
	assert.Contains(t, body, `hn_cache_lookups_total{result="miss"}`)
}
