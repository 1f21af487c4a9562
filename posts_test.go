package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/termfolio/termfolio/blogapi"
	"github.com/termfolio/termfolio/postcache"
)

func testPost(id int, title, content string, tags ...string) blogapi.Post {
	return blogapi.Post{ID: id, Title: title, Content: content, Tags: tags}
}

func newTestCache(t *testing.T) *postcache.Cache {
	t.Helper()
	c, err := postcache.Open(filepath.Join(t.TempDir(), "posts.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func newTestAPI(t *testing.T, h http.HandlerFunc) *blogapi.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := blogapi.New(srv.URL + "/api/v1")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestPostSourceWritesThrough(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":1,"title":"one","content":"a"},{"id":2,"title":"two","content":"b"}]`)
	})
	cache := newTestCache(t)
	src := NewPostSource(api, cache, nil)

	posts, cached, err := src.List(context.Background(), blogapi.ListOptions{Limit: PostsPerPage})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if cached {
		t.Error("List from a healthy API reported cached")
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	n, err := cache.Count(context.Background())
	if err != nil || n != 2 {
		t.Errorf("cache count = %d, %v; want 2", n, err)
	}
}

func TestPostSourceFallsBackToCache(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})
	cache := newTestCache(t)
	if err := cache.Put(context.Background(), []blogapi.Post{testPost(5, "kept", "offline copy")}); err != nil {
		t.Fatal(err)
	}
	src := NewPostSource(api, cache, nil)

	posts, cached, err := src.List(context.Background(), blogapi.ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !cached || len(posts) != 1 || posts[0].Title != "kept" {
		t.Errorf("List = %v cached=%v, want the cached post", posts, cached)
	}

	post, cached, err := src.Get(context.Background(), 5)
	if err != nil || post == nil || !cached {
		t.Fatalf("Get = %v, %v, %v", post, cached, err)
	}
	if post.Content != "offline copy" {
		t.Errorf("Get content = %q", post.Content)
	}
}

func TestPostSourceNoCacheReturnsAPIError(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})
	src := NewPostSource(api, nil, nil)
	if _, _, err := src.List(context.Background(), blogapi.ListOptions{}); err == nil {
		t.Error("List without cache should return the API error")
	}
	if _, _, err := NewPostSource(nil, nil, nil).Get(context.Background(), 1); err == nil {
		t.Error("Get without any source should fail")
	}
}

func TestPostSourceGetNotFound(t *testing.T) {
	api := newTestAPI(t, http.NotFound)
	post, cached, err := NewPostSource(api, newTestCache(t), nil).Get(context.Background(), 9)
	if err != nil || post != nil || cached {
		t.Errorf("Get = %v, %v, %v; want nil, false, nil", post, cached, err)
	}
}

func fullPage(start int) []blogapi.Post {
	var posts []blogapi.Post
	for i := 0; i < PostsPerPage; i++ {
		posts = append(posts, testPost(start+i, fmt.Sprintf("post %d", start+i), ""))
	}
	return posts
}

// runFetch executes a fetch command and feeds its result back.
func runFetch(t *testing.T, p *PostsPane) postsLoadedMsg {
	t.Helper()
	cmd := p.Cmd()
	if cmd == nil {
		t.Fatal("no fetch queued")
	}
	msg, ok := cmd().(postsLoadedMsg)
	if !ok {
		t.Fatalf("fetch returned %T", msg)
	}
	p.Loaded(msg)
	return msg
}

func TestPostsPanePaging(t *testing.T) {
	var queries []string
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		if r.URL.Query().Get("skip") == "" {
			json.NewEncoder(w).Encode(fullPage(1))
			return
		}
		io.WriteString(w, `[{"id":99,"title":"last","content":""}]`)
	})
	p := NewPostsPane(NewPostSource(api, nil, nil), DefaultKeyMap)
	runFetch(t, p)

	if !p.HasNext() {
		t.Fatal("a full page should have a next page")
	}
	p.HandleKey(tea.KeyMsg{Type: tea.KeyRight})
	runFetch(t, p)
	if p.Page() != 2 {
		t.Errorf("page = %d, want 2", p.Page())
	}
	if p.HasNext() {
		t.Error("a short page should be the last")
	}
	if want := "limit=12&skip=12"; queries[1] != want {
		t.Errorf("second query = %q, want %q", queries[1], want)
	}

	p.HandleKey(tea.KeyMsg{Type: tea.KeyRight})
	if p.Cmd() != nil {
		t.Error("next past the last page should not fetch")
	}
	p.HandleKey(tea.KeyMsg{Type: tea.KeyLeft})
	runFetch(t, p)
	if p.Page() != 1 {
		t.Errorf("page = %d, want 1", p.Page())
	}
}

func TestPostsPaneSearchAndOpen(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "" {
			fmt.Fprintf(w, `[{"id":3,"title":"about %s","content":"x"}]`, q)
			return
		}
		io.WriteString(w, `[]`)
	})
	p := NewPostsPane(NewPostSource(api, nil, nil), DefaultKeyMap)
	runFetch(t, p)
	if !strings.Contains(p.Render(50, 10), "no posts") {
		t.Error("empty listing should say so")
	}

	var opened []blogapi.Post
	p.OnOpen = func(post blogapi.Post) { opened = append(opened, post) }

	p.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("go")})
	p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	runFetch(t, p)
	if len(opened) != 0 {
		t.Fatal("enter with a changed query should search, not open")
	}
	if got := p.Posts(); len(got) != 1 || got[0].Title != "about go" {
		t.Fatalf("search results = %v", got)
	}
	if p.Title() != `posts: "go"` {
		t.Errorf("Title() = %q", p.Title())
	}

	p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if len(opened) != 1 || opened[0].ID != 3 {
		t.Errorf("opened = %v, want post 3", opened)
	}
}

func TestPostsPaneDropsStaleResults(t *testing.T) {
	p := &PostsPane{page: 1}
	p.load()
	stale := postsLoadedMsg{target: p, gen: p.gen, posts: fullPage(1)}
	p.load()
	if p.Loaded(stale) {
		t.Error("a superseded result was applied")
	}
	if !p.loading {
		t.Error("pane should still be loading")
	}
}

func TestPostsPaneCachedMarker(t *testing.T) {
	p := &PostsPane{page: 1}
	p.load()
	p.Loaded(postsLoadedMsg{target: p, gen: p.gen, posts: fullPage(1), cached: true})
	if !strings.Contains(p.Render(60, 20), "(cached)") {
		t.Error("cached results should be marked")
	}
}
