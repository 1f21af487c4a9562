package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/termfolio/termfolio/blogapi"
	"github.com/termfolio/termfolio/postcache"
)

// PostsPerPage is the size of one page of the post list.
const PostsPerPage = 12

const fetchTimeout = 10 * time.Second

// PostSource reads posts from the API, writing results through to the local
// cache and falling back to it when the API fails. Either side may be nil,
// and a nil source reports an error for every read.
type PostSource struct {
	api   *blogapi.Client
	cache *postcache.Cache
	log   func(format string, args ...any)
}

// NewPostSource combines an API client and a cache.
func NewPostSource(api *blogapi.Client, cache *postcache.Cache, logf func(string, ...any)) *PostSource {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &PostSource{api: api, cache: cache, log: logf}
}

// List returns one page of posts and whether it came from the cache.
func (s *PostSource) List(ctx context.Context, opts blogapi.ListOptions) ([]blogapi.Post, bool, error) {
	if s == nil {
		return nil, false, noSource(nil)
	}
	var apiErr error
	if s.api != nil {
		posts, err := s.api.ListPosts(ctx, opts)
		if err == nil {
			if s.cache != nil {
				if err := s.cache.Put(ctx, posts); err != nil {
					s.log("cache write: %v", err)
				}
			}
			return posts, false, nil
		}
		apiErr = err
		s.log("list posts: %v", err)
	}
	if s.cache == nil {
		return nil, false, noSource(apiErr)
	}
	posts, err := s.cache.List(ctx, opts)
	if err != nil {
		return nil, false, fmt.Errorf("cache: %w", err)
	}
	return posts, true, nil
}

// Get returns one post, or nil if neither side has it.
func (s *PostSource) Get(ctx context.Context, id int) (*blogapi.Post, bool, error) {
	if s == nil {
		return nil, false, noSource(nil)
	}
	var apiErr error
	if s.api != nil {
		post, err := s.api.GetPost(ctx, id)
		if err == nil {
			if post != nil && s.cache != nil {
				if err := s.cache.Put(ctx, []blogapi.Post{*post}); err != nil {
					s.log("cache write: %v", err)
				}
			}
			return post, false, nil
		}
		apiErr = err
		s.log("get post %d: %v", id, err)
	}
	if s.cache == nil {
		return nil, false, noSource(apiErr)
	}
	post, err := s.cache.Get(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("cache: %w", err)
	}
	return post, true, nil
}

func noSource(apiErr error) error {
	if apiErr != nil {
		return apiErr
	}
	return fmt.Errorf("no post source configured")
}

// postsLoadedMsg carries a page of posts back to the window that asked.
type postsLoadedMsg struct {
	target *PostsPane
	gen    int
	posts  []blogapi.Post
	cached bool
	err    error
}

// postLoadedMsg carries a single post back to its window.
type postLoadedMsg struct {
	target *DocPane
	id     int
	post   *blogapi.Post
	cached bool
	err    error
}

func fetchPosts(src *PostSource, target *PostsPane, gen int, opts blogapi.ListOptions) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		posts, cached, err := src.List(ctx, opts)
		return postsLoadedMsg{target: target, gen: gen, posts: posts, cached: cached, err: err}
	}
}

func fetchPost(src *PostSource, target *DocPane, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		post, cached, err := src.Get(ctx, id)
		return postLoadedMsg{target: target, id: id, post: post, cached: cached, err: err}
	}
}
