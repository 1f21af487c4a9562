package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontMatter is the YAML block a post file may start with.
type frontMatter struct {
	ID    int      `yaml:"id"`
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags"`
	Draft bool     `yaml:"draft"`
}

// draft is a post file ready to publish.
type draft struct {
	frontMatter
	Body string
	Dir  string // images are resolved against this directory
}

var fence = []byte("---")

// parsePost splits optional front matter from the markdown body. Without a
// title in the front matter the first "# " heading is used, and removed from
// the body.
func parsePost(src []byte, name string) (draft, error) {
	d := draft{Dir: filepath.Dir(name)}
	src = bytes.TrimPrefix(src, []byte("\ufeff"))
	body := src
	if hdr, rest, ok := splitFrontMatter(src); ok {
		if err := yaml.Unmarshal(hdr, &d.frontMatter); err != nil {
			return d, fmt.Errorf("%s: front matter: %w", name, err)
		}
		body = rest
	}
	d.Body = strings.TrimLeft(string(body), "\r\n")
	if d.Title == "" {
		d.Title, d.Body = titleFromHeading(d.Body)
	}
	if d.Title == "" {
		return d, fmt.Errorf("%s: no title", name)
	}
	return d, nil
}

func splitFrontMatter(src []byte) (hdr, rest []byte, ok bool) {
	if !bytes.HasPrefix(src, fence) {
		return nil, src, false
	}
	after := src[len(fence):]
	nl := bytes.IndexByte(after, '\n')
	if nl < 0 || len(bytes.TrimSpace(after[:nl])) != 0 {
		return nil, src, false
	}
	after = after[nl+1:]
	for off := 0; off <= len(after); {
		line := after[off:]
		end := bytes.IndexByte(line, '\n')
		if end < 0 {
			end = len(line)
		}
		if bytes.Equal(bytes.TrimRight(line[:end], "\r"), fence) {
			return after[:off], after[min(off+end+1, len(after)):], true
		}
		off += end + 1
	}
	return nil, src, false
}

func titleFromHeading(body string) (string, string) {
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		if t, ok := strings.CutPrefix(l, "# "); ok {
			rest := strings.Join(lines[i+1:], "\n")
			return strings.TrimSpace(t), strings.TrimLeft(rest, "\r\n")
		}
		break
	}
	return "", body
}

// imageRef matches ![alt](target) and ![alt](target "title").
var imageRef = regexp.MustCompile(`!\[([^\]]*)\]\(\s*([^)\s]+)((?:\s+"[^"]*")?)\s*\)`)

func isRemote(target string) bool {
	for _, p := range []string{"http://", "https://", "data:", "//"} {
		if strings.HasPrefix(target, p) {
			return true
		}
	}
	return false
}

// uploader stores an image and returns the URL it is served from.
type uploader interface {
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
}

// uploadImages uploads every local image the body references and rewrites
// the links to the returned URLs. Each file is uploaded once.
func uploadImages(ctx context.Context, up uploader, d *draft) ([]string, error) {
	urls := make(map[string]string)
	var uploaded []string
	var firstErr error
	d.Body = imageRef.ReplaceAllStringFunc(d.Body, func(m string) string {
		sub := imageRef.FindStringSubmatch(m)
		alt, target, title := sub[1], sub[2], sub[3]
		if isRemote(target) || firstErr != nil {
			return m
		}
		file := filepath.Join(d.Dir, filepath.FromSlash(target))
		u, ok := urls[file]
		if !ok {
			var err error
			u, err = uploadFile(ctx, up, file)
			if err != nil {
				firstErr = err
				return m
			}
			urls[file] = u
			uploaded = append(uploaded, u)
		}
		return "![" + alt + "](" + u + title + ")"
	})
	return uploaded, firstErr
}

func uploadFile(ctx context.Context, up uploader, file string) (string, error) {
	f, err := os.Open(file)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("image %s: not found", file)
	}
	if err != nil {
		return "", err
	}
	defer f.Close()
	return up.UploadImage(ctx, path.Base(filepath.ToSlash(file)), f)
}

// firstImage returns the target of the first image in body, for use as the
// thumbnail.
func firstImage(body string) string {
	if sub := imageRef.FindStringSubmatch(body); sub != nil {
		return sub[2]
	}
	return ""
}
