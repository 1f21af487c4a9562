// Package blogapi is a client for the blog content API: listing and reading
// posts, creating posts and uploading images.
package blogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is used when no base URL is configured. It includes the
// API version prefix.
const DefaultBaseURL = "http://localhost:8000/api/v1"

// AdminTokenHeader carries the admin token on write requests.
const AdminTokenHeader = "X-Admin-Token"

// Post is a post as returned by the API.
type Post struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags,omitempty"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	CreatedAt *Time    `json:"created_at,omitempty"`
	UpdatedAt *Time    `json:"updated_at,omitempty"`
}

// Time accepts RFC 3339 timestamps as well as the zone-less ISO form some
// backends emit. Zone-less values are taken as UTC.
type Time struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp %q: unrecognized format", s)
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// NewPost is the body of a create request.
type NewPost struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// ListOptions filters and pages a post listing.
type ListOptions struct {
	Query string
	Skip  int
	Limit int
}

// StatusError is returned for any non-2xx reply the client does not map to
// a value.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.StatusCode, body)
}

// Client talks to one API base URL.
type Client struct {
	base       *url.URL
	adminToken string
	http       *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithAdminToken sets the token sent on create and upload requests.
func WithAdminToken(token string) Option {
	return func(c *Client) { c.adminToken = token }
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for baseURL ("" means DefaultBaseURL).
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: unsupported scheme", baseURL)
	}
	c := &Client{
		base: u,
		http: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// HasAdminToken reports whether write requests will be authorized.
func (c *Client) HasAdminToken() bool {
	return c.adminToken != ""
}

// ListPosts returns one page of posts.
func (c *Client) ListPosts(ctx context.Context, opts ListOptions) ([]Post, error) {
	q := url.Values{}
	if opts.Query != "" {
		q.Set("q", opts.Query)
	}
	if opts.Skip > 0 {
		q.Set("skip", strconv.Itoa(opts.Skip))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/posts", q, nil, "", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns the post with the given id, or nil if there is none.
func (c *Client) GetPost(ctx context.Context, id int) (*Post, error) {
	var post Post
	err := c.do(ctx, http.MethodGet, "/posts/"+strconv.Itoa(id), nil, nil, "", &post)
	if se, ok := err.(*StatusError); ok && se.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost publishes a post.
func (c *Client) CreatePost(ctx context.Context, p NewPost) (*Post, error) {
	return c.create(ctx, "/posts", p)
}

// CreateTempPost stores a post as a draft.
func (c *Client) CreateTempPost(ctx context.Context, p NewPost) (*Post, error) {
	return c.create(ctx, "/posts/temp", p)
}

func (c *Client) create(ctx context.Context, path string, p NewPost) (*Post, error) {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	var created Post
	if err := c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(body), "application/json", &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UploadImage uploads an image as multipart field "image" and returns its
// public URL.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("multipart: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("multipart: %w", err)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/uploads/images", nil, &buf, mw.FormDataContentType(), &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", fmt.Errorf("upload %s: empty url in response", filename)
	}
	return out.URL, nil
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body io.Reader, contentType string, out any) error {
	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if method != http.MethodGet && c.adminToken != "" {
		req.Header.Set(AdminTokenHeader, c.adminToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(data)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", method, path, err)
	}
	return nil
}
