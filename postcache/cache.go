// Package postcache keeps fetched posts in a local sqlite3 database so the
// posts windows still have something to show when the API is unreachable.
package postcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/termfolio/termfolio/blogapi"
)

const schema = `
CREATE TABLE IF NOT EXISTS posts (
	id         INTEGER PRIMARY KEY,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL,
	tags       TEXT NOT NULL DEFAULT '[]',
	thumbnail  TEXT NOT NULL DEFAULT '',
	created_at TEXT,
	updated_at TEXT,
	fetched_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS posts_created ON posts (created_at);
`

// Cache is a sqlite-backed post store.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database at path. The
// directory is created too.
func Open(path string) (*Cache, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("cache dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// One connection keeps :memory: databases coherent.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Put stores posts, replacing existing rows with the same id.
func (c *Cache) Put(ctx context.Context, posts []blogapi.Post) error {
	if len(posts) == 0 {
		return nil
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	ins, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO posts (id, title, content, tags, thumbnail, created_at, updated_at, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer ins.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, p := range posts {
		tags, err := json.Marshal(nonNil(p.Tags))
		if err != nil {
			return fmt.Errorf("post %d tags: %w", p.ID, err)
		}
		if _, err := ins.ExecContext(ctx, p.ID, p.Title, p.Content, string(tags), p.Thumbnail,
			formatTime(p.CreatedAt), formatTime(p.UpdatedAt), now); err != nil {
			return fmt.Errorf("insert post %d: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// List returns cached posts, newest first, filtered and paged like the API.
func (c *Cache) List(ctx context.Context, opts blogapi.ListOptions) ([]blogapi.Post, error) {
	query := `SELECT id, title, content, tags, thumbnail, created_at, updated_at FROM posts`
	var args []any
	if q := strings.TrimSpace(opts.Query); q != "" {
		query += ` WHERE title LIKE ? OR content LIKE ?`
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	limit := opts.Limit
	if limit <= 0 {
		limit = -1
	}
	query += ` LIMIT ? OFFSET ?`
	args = append(args, limit, max(opts.Skip, 0))

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer rows.Close()

	var posts []blogapi.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Get returns the cached post with id, or nil.
func (c *Cache) Get(ctx context.Context, id int) (*blogapi.Post, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, title, content, tags, thumbnail, created_at, updated_at FROM posts WHERE id = ?`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Count returns the number of cached posts.
func (c *Cache) Count(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n)
	return n, err
}

// MaxID returns the highest cached post id, or 0 when the cache is empty.
func (c *Cache) MaxID(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM posts`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (blogapi.Post, error) {
	var (
		p                blogapi.Post
		tags             string
		created, updated sql.NullString
	)
	if err := s.Scan(&p.ID, &p.Title, &p.Content, &tags, &p.Thumbnail, &created, &updated); err != nil {
		if err == sql.ErrNoRows {
			return p, err
		}
		return p, fmt.Errorf("scan: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		return p, fmt.Errorf("post %d tags: %w", p.ID, err)
	}
	if len(p.Tags) == 0 {
		p.Tags = nil
	}
	p.CreatedAt = parseTime(created)
	p.UpdatedAt = parseTime(updated)
	return p, nil
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func formatTime(t *blogapi.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s sql.NullString) *blogapi.Time {
	if !s.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil
	}
	return &blogapi.Time{Time: t}
}
