package main

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss/v2"
	"gopkg.in/yaml.v3"
)

//go:embed termfolio.default.json
var defaultConfigJSON []byte

//go:embed about.md
var aboutMarkdown string

// AccentColor is the highlight color from the config.
var AccentColor = lipgloss.Color("42")

// Config holds all termfolio configuration
type Config struct {
	Accent      string       `json:"accent" yaml:"accent"`
	APIBase     string       `json:"api_base" yaml:"api_base"`
	AdminToken  string       `json:"admin_token" yaml:"admin_token"`
	BaseZIndex  int          `json:"base_z_index" yaml:"base_z_index"`
	CachePath   string       `json:"cache_path" yaml:"cache_path"`
	Handle      string       `json:"handle" yaml:"handle"`
	Headline    string       `json:"headline" yaml:"headline"`
	Phrases     []string     `json:"phrases" yaml:"phrases"`
	DenyMessage string       `json:"deny_message" yaml:"deny_message"`
	GitHubURL   string       `json:"github_url" yaml:"github_url"`
	BGM         BGMConfig    `json:"bgm" yaml:"bgm"`
	Keys        KeyMapConfig `json:"keys" yaml:"keys"`
}

// BGMConfig describes the track credited in the BGM window
type BGMConfig struct {
	Credit  string `json:"credit" yaml:"credit"`
	URL     string `json:"url" yaml:"url"`
	Seconds int    `json:"seconds" yaml:"seconds"`
}

// KeyMapConfig defines key bindings in config file format
type KeyMapConfig struct {
	Quit           []string `json:"quit" yaml:"quit"`
	CycleWindow    []string `json:"cycle_window" yaml:"cycle_window"`
	CloseWindow    []string `json:"close_window" yaml:"close_window"`
	MinimizeWindow []string `json:"minimize_window" yaml:"minimize_window"`
	MaximizeWindow []string `json:"maximize_window" yaml:"maximize_window"`
	RestoreLast    []string `json:"restore_last" yaml:"restore_last"`
	ToggleDebug    []string `json:"toggle_debug" yaml:"toggle_debug"`
	CommandPalette []string `json:"command_palette" yaml:"command_palette"`
	Help           []string `json:"help" yaml:"help"`

	Up     []string `json:"up" yaml:"up"`
	Down   []string `json:"down" yaml:"down"`
	Left   []string `json:"left" yaml:"left"`
	Right  []string `json:"right" yaml:"right"`
	Home   []string `json:"home" yaml:"home"`
	End    []string `json:"end" yaml:"end"`
	PgUp   []string `json:"pgup" yaml:"pgup"`
	PgDn   []string `json:"pgdn" yaml:"pgdn"`
	Select []string `json:"select" yaml:"select"`
}

// AdminTokenEnv overrides the admin_token setting.
const AdminTokenEnv = "TERMFOLIO_ADMIN_TOKEN"

// ConfigPaths are searched in order when no config file is given.
func ConfigPaths() []string {
	dir := filepath.Join(os.Getenv("HOME"), ".config", "termfolio")
	return []string{
		"termfolio.json",
		"termfolio.yaml",
		filepath.Join(dir, "termfolio.json"),
		filepath.Join(dir, "termfolio.yaml"),
	}
}

// DefaultConfig returns the embedded default configuration.
func DefaultConfig() Config {
	var cfg Config
	if err := json.Unmarshal(defaultConfigJSON, &cfg); err != nil {
		panic("embedded default config is invalid: " + err.Error())
	}
	return cfg
}

// LoadConfig loads the given file, or the first config file found, over the
// embedded defaults. Settings missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return cfg, err
		}
	} else {
		for _, p := range ConfigPaths() {
			err := loadConfigFile(p, &cfg)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return cfg, err
			}
			break
		}
	}
	if tok := os.Getenv(AdminTokenEnv); tok != "" {
		cfg.AdminToken = tok
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// ToKeyMap converts config to KeyMap
func (c *Config) ToKeyMap() KeyMap {
	k := c.Keys
	return KeyMap{
		Quit:           binding(k.Quit, "quit"),
		CycleWindow:    binding(k.CycleWindow, "cycle window"),
		CloseWindow:    binding(k.CloseWindow, "close"),
		MinimizeWindow: binding(k.MinimizeWindow, "minimize"),
		MaximizeWindow: binding(k.MaximizeWindow, "maximize"),
		RestoreLast:    binding(k.RestoreLast, "restore"),
		ToggleDebug:    binding(k.ToggleDebug, "debug"),
		CommandPalette: binding(k.CommandPalette, "commands"),
		Help:           binding(k.Help, "help"),
		Up:             binding(k.Up, "up"),
		Down:           binding(k.Down, "down"),
		Left:           binding(k.Left, "prev page"),
		Right:          binding(k.Right, "next page"),
		Home:           binding(k.Home, "top"),
		End:            binding(k.End, "bottom"),
		PgUp:           binding(k.PgUp, "page up"),
		PgDn:           binding(k.PgDn, "page down"),
		Select:         binding(k.Select, "select"),
	}
}

// binding creates a key binding, returning disabled binding if keys is empty
func binding(keys []string, help string) key.Binding {
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], help),
	)
}
