package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/termfolio/termfolio/blogapi"
	"github.com/termfolio/termfolio/postcache"
)

func main() {
	configPath := flag.String("config", "", "config file (default: termfolio.json or termfolio.yaml here, then in ~/.config/termfolio)")
	apiBase := flag.String("api", "", "content API base URL, including the version prefix")
	cachePath := flag.String("cache", "", `post cache database ("off" disables it)`)
	logFile := flag.String("log", "", "also write the debug log to this file")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *apiBase != "" {
		cfg.APIBase = *apiBase
	}
	if *cachePath != "" {
		cfg.CachePath = *cachePath
	}

	logs := &logRing{}
	if *logFile != "" {
		f, err := tea.LogToFile(*logFile, "termfolio")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logs.mirror = true
	}

	api, err := blogapi.New(cfg.APIBase, blogapi.WithAdminToken(cfg.AdminToken))
	if err != nil {
		log.Fatal(err)
	}
	logs.addf("api: %s", api.BaseURL())

	var cache *postcache.Cache
	if path := resolveCachePath(cfg.CachePath); path != "" {
		cache, err = postcache.Open(path)
		if err != nil {
			logs.addf("cache disabled: %v", err)
		} else {
			defer cache.Close()
			logs.addf("cache: %s", path)
		}
	}

	m := NewModel(cfg, NewPostSource(api, cache, logs.addf), logs)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// resolveCachePath maps the cache_path setting to a file: "" is the user
// cache directory, "off" disables caching.
func resolveCachePath(setting string) string {
	switch setting {
	case "off":
		return ""
	case "":
		dir, err := os.UserCacheDir()
		if err != nil {
			return ""
		}
		return filepath.Join(dir, "termfolio", "posts.db")
	}
	return setting
}
