// publish uploads markdown posts to the blog API, or bundles them into a
// post cache database that termfolio can browse offline.
//
//	go build ./cmd/publish
//	publish -draft notes/first-post.md
//	publish -o posts.db notes/*.md
//
// A post file may start with YAML front matter:
//
//	---
//	title: Hello
//	tags: [go, tui]
//	draft: true
//	---
//
// Local images are uploaded and their links rewritten.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/termfolio/termfolio/blogapi"
	"github.com/termfolio/termfolio/postcache"
)

const tokenEnv = "TERMFOLIO_ADMIN_TOKEN"

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// creator is the part of the API client publishing needs.
type creator interface {
	uploader
	CreatePost(ctx context.Context, p blogapi.NewPost) (*blogapi.Post, error)
	CreateTempPost(ctx context.Context, p blogapi.NewPost) (*blogapi.Post, error)
}

func main() {
	apiBase := flag.String("api", blogapi.DefaultBaseURL, "content API base URL")
	token := flag.String("token", os.Getenv(tokenEnv), "admin token (default $"+tokenEnv+")")
	asDraft := flag.Bool("draft", false, "store every post as a draft")
	output := flag.String("o", "", "bundle into this post cache database instead of uploading")
	timeout := flag.Duration("timeout", 30*time.Second, "per-post request timeout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: publish [flags] post.md...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	out := colorprofile.NewWriter(os.Stdout, os.Environ())

	var drafts []draft
	for _, name := range flag.Args() {
		src, err := os.ReadFile(name)
		if err != nil {
			log.Fatal(err)
		}
		d, err := parsePost(src, name)
		if err != nil {
			log.Fatal(err)
		}
		drafts = append(drafts, d)
	}

	if *output != "" {
		n, err := bundle(context.Background(), *output, drafts)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintln(out, okStyle.Render("bundled"), fmt.Sprintf("%d post(s) into %s", n, *output))
		return
	}

	if *token == "" {
		log.Fatalf("an admin token is required: pass -token or set %s", tokenEnv)
	}
	client, err := blogapi.New(*apiBase, blogapi.WithAdminToken(*token))
	if err != nil {
		log.Fatal(err)
	}

	failed := 0
	for _, d := range drafts {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		post, err := publish(ctx, client, d, *asDraft)
		cancel()
		if err != nil {
			failed++
			fmt.Fprintln(out, failStyle.Render("failed"), d.Title+":", explain(err))
			continue
		}
		kind := "published"
		if *asDraft || d.Draft {
			kind = "drafted"
		}
		fmt.Fprintln(out, okStyle.Render(kind), fmt.Sprintf("#%d %s", post.ID, post.Title),
			dimStyle.Render(fmt.Sprintf("(%d tag(s))", len(post.Tags))))
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// publish uploads the draft's images and creates the post.
func publish(ctx context.Context, api creator, d draft, asDraft bool) (*blogapi.Post, error) {
	if _, err := uploadImages(ctx, api, &d); err != nil {
		return nil, err
	}
	np := blogapi.NewPost{Title: d.Title, Content: d.Body, Tags: d.Tags}
	if asDraft || d.Draft {
		return api.CreateTempPost(ctx, np)
	}
	return api.CreatePost(ctx, np)
}

// bundle writes the drafts into a post cache. Posts without an id in their
// front matter are numbered after the highest id already there, skipping ids
// other drafts claim.
func bundle(ctx context.Context, path string, drafts []draft) (int, error) {
	cache, err := postcache.Open(path)
	if err != nil {
		return 0, err
	}
	defer cache.Close()

	next, err := cache.MaxID(ctx)
	if err != nil {
		return 0, err
	}
	claimed := make(map[int]bool)
	for _, d := range drafts {
		if d.ID != 0 {
			claimed[d.ID] = true
		}
	}
	now := &blogapi.Time{Time: time.Now().UTC()}
	var posts []blogapi.Post
	for _, d := range drafts {
		id := d.ID
		if id == 0 {
			next++
			for claimed[next] {
				next++
			}
			id = next
		}
		posts = append(posts, blogapi.Post{
			ID:        id,
			Title:     d.Title,
			Content:   d.Body,
			Tags:      d.Tags,
			Thumbnail: firstImage(d.Body),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err := cache.Put(ctx, posts); err != nil {
		return 0, err
	}
	return len(posts), nil
}

func explain(err error) string {
	var se *blogapi.StatusError
	switch {
	case errors.As(err, &se) && (se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden):
		return "the API rejected the admin token"
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	}
	return err.Error()
}
