package uitest

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"
)

// Step is one entry of a report: a check result or a screen capture, kept
// in the order they happened.
type Step struct {
	Name   string
	Passed bool
	Screen string // set for captures
}

func (s Step) IsCapture() bool { return s.Screen != "" }

// Report collects steps and writes them as a single HTML page.
type Report struct {
	Title     string
	Started   time.Time
	Steps     []Step
	OutputDir string
}

func NewReport(title, outputDir string) *Report {
	return &Report{Title: title, Started: time.Now(), OutputDir: outputDir}
}

func (r *Report) AddResult(name string, passed bool) {
	r.Steps = append(r.Steps, Step{Name: name, Passed: passed})
}

func (r *Report) AddSnapshot(label, screen string) {
	r.Steps = append(r.Steps, Step{Name: label, Screen: screen})
}

// Passed counts passing checks.
func (r *Report) Passed() int {
	n := 0
	for _, s := range r.Steps {
		if !s.IsCapture() && s.Passed {
			n++
		}
	}
	return n
}

// Failed counts failing checks.
func (r *Report) Failed() int {
	n := 0
	for _, s := range r.Steps {
		if !s.IsCapture() && !s.Passed {
			n++
		}
	}
	return n
}

var reportPage = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} - {{.Stamp}}</title>
<style>
body { font-family: ui-monospace, 'DejaVu Sans Mono', monospace; max-width: 1200px; margin: 0 auto; padding: 20px; background: #14161f; color: #ddd; }
h1 { color: #5fd787; }
.summary { background: #1f2230; padding: 16px; border-radius: 6px; margin-bottom: 20px; }
.summary.pass { border-left: 4px solid #5fd787; }
.summary.fail { border-left: 4px solid #ff5f5f; }
.result { padding: 6px 12px; margin: 4px 0; border-radius: 4px; }
.result.pass { background: #1b3326; color: #5fd787; }
.result.fail { background: #3a1c1c; color: #ff5f5f; }
.capture { margin: 16px 0; background: #1f2230; border-radius: 6px; overflow: hidden; }
.capture h3 { margin: 0; padding: 8px 12px; color: #aaa; background: #14161f; }
.capture pre { margin: 0; padding: 12px; overflow-x: auto; line-height: 1.2; background: #0b0c12; color: #d7d7af; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Stamp}}</p>
<div class="summary {{if .Failed}}fail{{else}}pass{{end}}">
<strong>{{if .Failed}}{{.Failed}} check(s) failed{{else}}all checks passed{{end}}</strong>
<div>{{.Passed}} passed, {{.Failed}} failed</div>
</div>
{{range .Steps}}{{if .IsCapture}}<div class="capture"><h3>{{.Name}}</h3><pre>{{.Screen}}</pre></div>
{{else}}<div class="result {{if .Passed}}pass{{else}}fail{{end}}">{{if .Passed}}✓{{else}}✗{{end}} {{.Name}}</div>
{{end}}{{end}}
</body>
</html>
`))

// Generate writes the report and returns its path.
func (r *Report) Generate() (string, error) {
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("report dir: %w", err)
	}
	stamp := r.Started.Format("20060102-150405")
	path := filepath.Join(r.OutputDir, "ui-"+stamp+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("report: %w", err)
	}
	defer f.Close()

	data := struct {
		*Report
		Stamp  string
		Passed int
		Failed int
	}{r, stamp, r.Passed(), r.Failed()}
	if err := reportPage.Execute(f, data); err != nil {
		return "", fmt.Errorf("report: %w", err)
	}
	return path, nil
}
