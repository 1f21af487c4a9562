package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/termfolio/termfolio/blogapi"
)

// PostsPane is the post list window: a search line, one page of posts and
// a pager.
type PostsPane struct {
	src  *PostSource
	keys KeyMap

	query   string // as typed
	applied string // query of the loaded page
	page    int
	posts   []blogapi.Post
	cached  bool
	err     error
	loading bool
	gen     int

	selected int
	height   int
	pending  tea.Cmd

	// OnOpen is called when a post is chosen
	OnOpen func(blogapi.Post)
}

// NewPostsPane creates the list and queues the first page.
func NewPostsPane(src *PostSource, keys KeyMap) *PostsPane {
	p := &PostsPane{src: src, keys: keys, page: 1}
	p.load()
	return p
}

func (p *PostsPane) Title() string {
	if p.applied != "" {
		return fmt.Sprintf("posts: %q", p.applied)
	}
	return "posts"
}

// Page returns the current 1-based page number.
func (p *PostsPane) Page() int { return p.page }

// Posts returns the loaded page.
func (p *PostsPane) Posts() []blogapi.Post { return p.posts }

// HasNext reports whether another page may follow: only a full page does.
func (p *PostsPane) HasNext() bool {
	return len(p.posts) == PostsPerPage
}

func (p *PostsPane) load() {
	p.gen++
	p.loading = true
	p.applied = strings.TrimSpace(p.query)
	p.pending = fetchPosts(p.src, p, p.gen, blogapi.ListOptions{
		Query: p.applied,
		Skip:  (p.page - 1) * PostsPerPage,
		Limit: PostsPerPage,
	})
}

// Cmd returns the queued fetch.
func (p *PostsPane) Cmd() tea.Cmd {
	cmd := p.pending
	p.pending = nil
	return cmd
}

// Loaded applies a fetch result. Results from superseded requests are
// dropped.
func (p *PostsPane) Loaded(msg postsLoadedMsg) bool {
	if msg.gen != p.gen {
		return false
	}
	p.loading = false
	p.err = msg.err
	p.cached = msg.cached
	p.posts = msg.posts
	p.selected = 0
	return true
}

func (p *PostsPane) search() {
	p.page = 1
	p.load()
}

func (p *PostsPane) prevPage() {
	if p.page > 1 && !p.loading {
		p.page--
		p.load()
	}
}

func (p *PostsPane) nextPage() {
	if p.HasNext() && !p.loading {
		p.page++
		p.load()
	}
}

func (p *PostsPane) open(i int) {
	if i < 0 || i >= len(p.posts) {
		return
	}
	p.selected = i
	if p.OnOpen != nil {
		p.OnOpen(p.posts[i])
	}
}

// Rows above the list: search line and separator. One footer row below.
const postsHeaderRows = 2

func (p *PostsPane) listRows(h int) int {
	return max(h-postsHeaderRows-1, 0)
}

const (
	pagerPrev = "‹ prev"
	pagerNext = "next ›"
)

func (p *PostsPane) footer() string {
	s := fmt.Sprintf("%s  page %d  %s", pagerPrev, p.page, pagerNext)
	if p.cached {
		s += "  (cached)"
	}
	return s
}

func (p *PostsPane) Render(w, h int) string {
	p.height = h
	var sb strings.Builder
	sb.WriteString("search: " + p.query + "▏\n")
	sb.WriteString(strings.Repeat("─", w) + "\n")

	rows := p.listRows(h)
	var list []string
	switch {
	case p.loading:
		list = []string{"loading…"}
	case p.err != nil:
		list = []string{"error: " + p.err.Error()}
	case len(p.posts) == 0:
		list = []string{"no posts"}
	default:
		for i, post := range p.posts {
			list = append(list, p.row(i, post, w))
		}
	}
	for i := 0; i < rows; i++ {
		if i < len(list) {
			sb.WriteString(list[i])
		}
		sb.WriteString("\n")
	}
	sb.WriteString(p.footer())
	return sb.String()
}

func (p *PostsPane) row(i int, post blogapi.Post, w int) string {
	marker := "  "
	if i == p.selected {
		marker = "> "
	}
	date := ""
	if post.CreatedAt != nil {
		date = post.CreatedAt.Format("2006-01-02")
	}
	var tags []string
	for _, t := range post.Tags {
		tags = append(tags, "#"+t)
	}
	right := strings.TrimSpace(strings.Join(tags, " ") + "  " + date)
	room := w - len(marker) - ansi.StringWidth(right) - 1
	title := post.Title
	if room < 8 {
		right = date
		room = w - len(marker) - ansi.StringWidth(right) - 1
	}
	title = ansi.Truncate(title, max(room, 0), "…")
	pad := max(w-len(marker)-ansi.StringWidth(title)-ansi.StringWidth(right), 1)
	return marker + title + strings.Repeat(" ", pad) + right
}

func (p *PostsPane) HandleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, p.keys.Up):
		if p.selected > 0 {
			p.selected--
		}
	case key.Matches(msg, p.keys.Down):
		if p.selected < len(p.posts)-1 {
			p.selected++
		}
	case key.Matches(msg, p.keys.Left), key.Matches(msg, p.keys.PgUp):
		p.prevPage()
	case key.Matches(msg, p.keys.Right), key.Matches(msg, p.keys.PgDn):
		p.nextPage()
	case key.Matches(msg, p.keys.Select):
		if strings.TrimSpace(p.query) != p.applied {
			p.search()
		} else {
			p.open(p.selected)
		}
	case msg.Type == tea.KeyBackspace:
		if r := []rune(p.query); len(r) > 0 {
			p.query = string(r[:len(r)-1])
		}
	case msg.Type == tea.KeySpace:
		p.query += " "
	case msg.Type == tea.KeyRunes:
		p.query += string(msg.Runes)
	default:
		return false
	}
	return true
}

func (p *PostsPane) HandleMouse(x, y int, msg tea.MouseMsg) bool {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if p.selected > 0 {
			p.selected--
		}
		return true
	case tea.MouseButtonWheelDown:
		if p.selected < len(p.posts)-1 {
			p.selected++
		}
		return true
	case tea.MouseButtonLeft:
	default:
		return false
	}
	if msg.Action != tea.MouseActionPress {
		return false
	}

	rows := p.listRows(p.height)
	if y == postsHeaderRows+rows {
		prev := ansi.StringWidth(pagerPrev)
		nextX := ansi.StringWidth(fmt.Sprintf("%s  page %d  ", pagerPrev, p.page))
		switch {
		case x < prev:
			p.prevPage()
		case x >= nextX && x < nextX+ansi.StringWidth(pagerNext):
			p.nextPage()
		}
		return true
	}
	if i := y - postsHeaderRows; i >= 0 && i < rows && !p.loading && p.err == nil {
		p.open(i)
		return true
	}
	return false
}
