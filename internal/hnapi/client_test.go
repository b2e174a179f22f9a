package hnapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHN 模拟 HN API，path -> JSON 响应
type fakeHN struct {
	mu       sync.Mutex
	bodies   map[string]string
	statuses map[string]int
	calls    atomic.Int32
	paths    []string
}

func newFakeHN() *fakeHN {
	return &fakeHN{bodies: map[string]string{}, statuses: map[string]int{}}
}

func (f *fakeHN) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	body, ok := f.bodies[r.URL.Path]
	status := f.statuses[r.URL.Path]
	f.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}
	if !ok {
		body = "null"
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}

type recordingObserver struct {
	mu    sync.Mutex
	codes map[string][]int
}

func (o *recordingObserver) ObserveRequest(resource string, code int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.codes == nil {
		o.codes = map[string][]int{}
	}
	o.codes[resource] = append(o.codes[resource], code)
}

func TestStoryLists(t *testing.T) {
	fake := newFakeHN()
	fake.bodies["/topstories.json"] = "[3,1,2]"
	fake.bodies["/newstories.json"] = "[9]"
	fake.bodies["/askstories.json"] = "[8]"
	fake.bodies["/showstories.json"] = "[7]"
	fake.bodies["/jobstories.json"] = "[6]"
	fake.bodies["/beststories.json"] = "[5]"
	server := httptest.NewServer(fake)
	defer server.Close()

	c := New(server.URL)
	ctx := context.Background()

	ids, err := c.TopStoryIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, ids)

	for fn, want := range map[string]struct {
		get func(context.Context) ([]int, error)
		ids []int
	}{
		"new":  {c.NewStoryIDs, []int{9}},
		"ask":  {c.AskStoryIDs, []int{8}},
		"show": {c.ShowStoryIDs, []int{7}},
		"job":  {c.JobStoryIDs, []int{6}},
		"best": {c.BestStoryIDs, []int{5}},
	} {
		got, err := want.get(ctx)
		require.NoError(t, err, fn)
		assert.Equal(t, want.ids, got, fn)
	}
}

func TestItemDecodesNullAsNil(t *testing.T) {
	fake := newFakeHN()
	fake.bodies["/item/1.json"] = `{"id":1,"type":"story","title":"Hi","by":"pg","time":5,"kids":[2,3]}`
	server := httptest.NewServer(fake)
	defer server.Close()

	c := New(server.URL)

	item, err := c.Item(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "story", item.Type)
	assert.Equal(t, "Hi", *item.Title)
	assert.Equal(t, []int{2, 3}, item.Kids)

	missing, err := c.Item(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestNonSuccessStatus(t *testing.T) {
	fake := newFakeHN()
	fake.statuses["/item/1.json"] = http.StatusServiceUnavailable
	server := httptest.NewServer(fake)
	defer server.Close()

	_, err := New(server.URL).Item(context.Background(), 1)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 503, statusErr.StatusCode)
	assert.Equal(t, "Hacker News API error: 503 Service Unavailable", err.Error())
}

func TestTransportErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := New(url).TopStoryIDs(context.Background())
	require.Error(t, err)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestItemsEmptyDoesNoRequests(t *testing.T) {
	fake := newFakeHN()
	server := httptest.NewServer(fake)
	defer server.Close()

	c := New(server.URL)
	items, err := c.Items(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)

	users, err := c.Users(context.Background(), []string{})
	require.NoError(t, err)
	assert.Empty(t, users)

	assert.Equal(t, int32(0), fake.calls.Load())
}

func TestItemsKeepOrderAndIsolateFailures(t *testing.T) {
	fake := newFakeHN()
	for i := 1; i <= 5; i++ {
		fake.bodies[fmt.Sprintf("/item/%d.json", i)] = fmt.Sprintf(`{"id":%d,"type":"story"}`, i)
	}
	fake.statuses["/item/3.json"] = http.StatusInternalServerError
	server := httptest.NewServer(fake)
	defer server.Close()

	obs := &recordingObserver{}
	c := New(server.URL, WithFanOut(2), WithObserver(obs))

	items, err := c.Items(context.Background(), []int{5, 4, 3, 2, 1})
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, 5, items[0].ID)
	assert.Equal(t, 4, items[1].ID)
	assert.Nil(t, items[2])
	assert.Equal(t, 1, items[4].ID)
	assert.Equal(t, int32(5), fake.calls.Load())
	assert.Len(t, obs.codes["item"], 5)
	assert.Contains(t, obs.codes["item"], 500)
}

func TestItemsFanOutIsBounded(t *testing.T) {
	var inFlight, peak atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/item/"), ".json")
		fmt.Fprintf(w, `{"id":%s}`, id)
	}))
	defer server.Close()

	ids := make([]int, 12)
	for i := range ids {
		ids[i] = i + 1
	}
	items, err := New(server.URL, WithFanOut(3)).Items(context.Background(), ids)
	require.NoError(t, err)
	assert.Len(t, items, 12)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestItemsCancelledContext(t *testing.T) {
	fake := newFakeHN()
	server := httptest.NewServer(fake)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(server.URL).Items(ctx, []int{1, 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUsers(t *testing.T) {
	fake := newFakeHN()
	fake.bodies["/user/pg.json"] = `{"id":"pg","created":1160418092,"karma":155000,"about":"bio"}`
	server := httptest.NewServer(fake)
	defer server.Close()

	users, err := New(server.URL).Users(context.Background(), []string{"pg", "ghost"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "pg", users[0].ID)
	assert.Equal(t, 155000, users[0].Karma)
	assert.Nil(t, users[1])
}

func TestUserEscapesHandle(t *testing.T) {
	type seen struct{ path, query string }
	var (
		mu   sync.Mutex
		reqs []seen
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		reqs = append(reqs, seen{path: r.URL.EscapedPath(), query: r.URL.RawQuery})
		mu.Unlock()
		fmt.Fprint(w, "null")
	}))
	defer server.Close()

	c := New(server.URL)
	for _, id := range []string{"a?b", "a/b", "../item/1"} {
		user, err := c.User(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, user)
	}

	require.Len(t, reqs, 3)
	assert.Equal(t, seen{path: "/user/a%3Fb.json"}, reqs[0])
	assert.Equal(t, seen{path: "/user/a%2Fb.json"}, reqs[1])
	assert.Equal(t, seen{path: "/user/..%2Fitem%2F1.json"}, reqs[2])
}
