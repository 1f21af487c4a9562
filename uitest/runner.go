package uitest

import (
	"testing"
	"time"
)

// Runner ties a Session to a test and records every check in a Report.
type Runner struct {
	T       *testing.T
	Session *Session
	Report  *Report
}

// NewRunner starts cmd in a new session of the given size.
func NewRunner(t *testing.T, name string, width, height int, cmd, reportDir string) (*Runner, error) {
	session, err := NewSession(name, width, height, cmd)
	if err != nil {
		return nil, err
	}
	return &Runner{
		T:       t,
		Session: session,
		Report:  NewReport(name, reportDir),
	}, nil
}

func (r *Runner) Close() error {
	return r.Session.Close()
}

// Snapshot adds the current screen to the report.
func (r *Runner) Snapshot(label string) {
	content, err := r.Session.Capture()
	if err != nil {
		r.T.Logf("snapshot %q: %v", label, err)
		return
	}
	r.Report.AddSnapshot(label, content)
}

// Test records the outcome of fn; a failure also captures the screen.
func (r *Runner) Test(name string, fn func() bool) bool {
	passed := fn()
	r.Report.AddResult(name, passed)
	if passed {
		r.T.Logf("PASS: %s", name)
	} else {
		r.T.Errorf("FAIL: %s", name)
		r.Snapshot("failed: " + name)
	}
	return passed
}

func (r *Runner) SendKeys(keys ...string) {
	if err := r.Session.SendKeys(keys...); err != nil {
		r.T.Fatalf("send keys: %v", err)
	}
}

func (r *Runner) Type(text string) {
	if err := r.Session.SendLiteral(text); err != nil {
		r.T.Fatalf("type: %v", err)
	}
}

func (r *Runner) Click(x, y int) {
	if err := r.Session.Click(x, y); err != nil {
		r.T.Fatalf("click: %v", err)
	}
}

func (r *Runner) Drag(x0, y0, x1, y1 int) {
	if err := r.Session.Drag(x0, y0, x1, y1); err != nil {
		r.T.Fatalf("drag: %v", err)
	}
}

// Locate returns where pattern is on screen, failing the test if it is not.
func (r *Runner) Locate(pattern string) (x, y int) {
	x, y, ok, err := r.Session.Find(pattern)
	if err != nil {
		r.T.Fatalf("find %q: %v", pattern, err)
	}
	if !ok {
		r.Snapshot("missing: " + pattern)
		r.T.Fatalf("%q not on screen", pattern)
	}
	return x, y
}

func (r *Runner) WaitFor(pattern string, timeout time.Duration) bool {
	if err := r.Session.WaitFor(pattern, timeout); err != nil {
		r.T.Logf("WaitFor: %v", err)
		return false
	}
	return true
}

func (r *Runner) WaitForRegex(expr string, timeout time.Duration) bool {
	if err := r.Session.WaitForRegex(expr, timeout); err != nil {
		r.T.Logf("WaitForRegex: %v", err)
		return false
	}
	return true
}

func (r *Runner) Contains(pattern string) bool {
	found, err := r.Session.Contains(pattern)
	if err != nil {
		r.T.Logf("Contains: %v", err)
		return false
	}
	return found
}

func (r *Runner) Sleep(d time.Duration) {
	time.Sleep(d)
}

// GenerateReport writes the HTML report and logs its path.
func (r *Runner) GenerateReport() string {
	path, err := r.Report.Generate()
	if err != nil {
		r.T.Errorf("report: %v", err)
		return ""
	}
	r.T.Logf("report: %s", path)
	return path
}
