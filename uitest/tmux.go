// Package uitest drives the terminal UI inside a detached tmux session.
package uitest

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

const pollInterval = 200 * time.Millisecond

// Session is one tmux session with a fixed-size pane.
type Session struct {
	Name   string
	Width  int
	Height int
}

// RequireTmux reports an error when tmux is not installed.
func RequireTmux() error {
	if _, err := exec.LookPath("tmux"); err != nil {
		return errors.New("tmux not found in PATH")
	}
	return nil
}

// NewSession starts cmd in a new detached session, replacing any session
// with the same name.
func NewSession(name string, width, height int, cmd string) (*Session, error) {
	s := &Session{Name: name, Width: width, Height: height}
	exec.Command("tmux", "kill-session", "-t", name).Run()

	args := []string{
		"new-session", "-d",
		"-s", name,
		"-x", fmt.Sprint(width),
		"-y", fmt.Sprint(height),
		cmd,
	}
	if out, err := exec.Command("tmux", args...).CombinedOutput(); err != nil {
		return nil, fmt.Errorf("tmux new-session: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return s, nil
}

func (s *Session) Close() error {
	return exec.Command("tmux", "kill-session", "-t", s.Name).Run()
}

// SendKeys sends tmux key names ("Enter", "C-p", "F2") or plain text.
func (s *Session) SendKeys(keys ...string) error {
	args := append([]string{"send-keys", "-t", s.Name}, keys...)
	return exec.Command("tmux", args...).Run()
}

// SendLiteral types text without tmux key-name lookup.
func (s *Session) SendLiteral(text string) error {
	return exec.Command("tmux", "send-keys", "-t", s.Name, "-l", text).Run()
}

// sgrMouse encodes a mouse event in SGR (1006) form. x and y are 0-based
// cells; the final byte is M for press and motion, m for release.
func sgrMouse(button, x, y int, release bool) string {
	final := 'M'
	if release {
		final = 'm'
	}
	return fmt.Sprintf("\x1b[<%d;%d;%d%c", button, x+1, y+1, final)
}

const (
	mouseLeft   = 0
	mouseMotion = 32
)

// Click presses and releases the left button at (x, y).
func (s *Session) Click(x, y int) error {
	return s.SendLiteral(sgrMouse(mouseLeft, x, y, false) + sgrMouse(mouseLeft, x, y, true))
}

// Drag presses at (x0, y0), moves to (x1, y1) and releases there.
func (s *Session) Drag(x0, y0, x1, y1 int) error {
	seq := sgrMouse(mouseLeft, x0, y0, false) +
		sgrMouse(mouseLeft|mouseMotion, x1, y1, false) +
		sgrMouse(mouseLeft, x1, y1, true)
	return s.SendLiteral(seq)
}

// Capture returns the visible pane content.
func (s *Session) Capture() (string, error) {
	out, err := exec.Command("tmux", "capture-pane", "-t", s.Name, "-p").Output()
	if err != nil {
		return "", fmt.Errorf("capture-pane: %w", err)
	}
	return string(out), nil
}

// WaitFor polls until the screen contains pattern.
func (s *Session) WaitFor(pattern string, timeout time.Duration) error {
	return s.wait(fmt.Sprintf("%q", pattern), func(c string) bool {
		return strings.Contains(c, pattern)
	}, timeout)
}

// WaitForRegex polls until the screen matches the expression.
func (s *Session) WaitForRegex(expr string, timeout time.Duration) error {
	re, err := regexp.Compile(expr)
	if err != nil {
		return err
	}
	return s.wait("/"+expr+"/", re.MatchString, timeout)
}

func (s *Session) wait(what string, ok func(string) bool, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		content, err := s.Capture()
		if err != nil {
			return err
		}
		if ok(content) {
			return nil
		}
		time.Sleep(pollInterval)
	}
	content, _ := s.Capture()
	return fmt.Errorf("timeout waiting for %s\nscreen:\n%s", what, content)
}

// Contains reports whether the screen currently contains pattern.
func (s *Session) Contains(pattern string) (bool, error) {
	content, err := s.Capture()
	if err != nil {
		return false, err
	}
	return strings.Contains(content, pattern), nil
}

// Find returns the cell position of the first occurrence of pattern.
func (s *Session) Find(pattern string) (x, y int, ok bool, err error) {
	content, err := s.Capture()
	if err != nil {
		return 0, 0, false, err
	}
	for row, line := range strings.Split(content, "\n") {
		if i := strings.Index(line, pattern); i >= 0 {
			return len([]rune(line[:i])), row, true, nil
		}
	}
	return 0, 0, false, nil
}
