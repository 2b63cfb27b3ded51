// Package config provides configuration loading for mainframe using TOML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment overrides, read from the process environment or a .env file.
const (
	EnvSite = "MAINFRAME_SITE"
	EnvLog  = "MAINFRAME_LOG"
)

// Site settings
type Site struct {
	Base      string `toml:"base"`   // URL or local directory serving the site
	Domain    string `toml:"domain"` // the site's own domain, for card status
	BlogFile  string `toml:"blogFile"`
	LinksFile string `toml:"linksFile"`
	CardLabel string `toml:"cardLabel"` // text/template for card labels
	NoFooter  bool   `toml:"noFooter"`
}

// Intro settings. Delays are in milliseconds.
type Intro struct {
	Disabled      bool `toml:"disabled"`
	TypingMs      int  `toml:"typingMs"`
	DotMs         int  `toml:"dotMs"`
	SystemCheckMs int  `toml:"systemCheckMs"`
	MessageMs     int  `toml:"messageMs"`
	FinalMs       int  `toml:"finalMs"`
	TransitionMs  int  `toml:"transitionMs"`
}

// HTTP fetching settings
type Fetcher struct {
	UserAgent      string `toml:"userAgent"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
}

// Storage settings
type Storage struct {
	Path string `toml:"path"` // preferences database; empty = default location
}

// Logging settings
type Logging struct {
	Path  string `toml:"path"` // empty = default location
	Level string `toml:"level"`
}

// Keybindings configuration
type Keybindings struct {
	Blog        string `toml:"blog"`
	Links       string `toml:"links"`
	ToggleTheme string `toml:"toggleTheme"`
	ToggleFKeys string `toml:"toggleFKeys"`
	Close       string `toml:"close"`
	Quit        string `toml:"quit"`
	Down        string `toml:"down"`
	Up          string `toml:"up"`
}

// Config is the main configuration struct
type Config struct {
	Site        Site        `toml:"site"`
	Intro       Intro       `toml:"intro"`
	Fetcher     Fetcher     `toml:"fetcher"`
	Storage     Storage     `toml:"storage"`
	Logging     Logging     `toml:"logging"`
	Keybindings Keybindings `toml:"keybindings"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Site: Site{
			Base:      "https://manni-dm.dev/",
			Domain:    "manni-dm.dev",
			BlogFile:  "blog.json",
			LinksFile: "links.json",
			CardLabel: "Visit {{.Title}}: {{.Description}}",
		},
		Intro: Intro{
			TypingMs:      20,
			DotMs:         1500,
			SystemCheckMs: 4000,
			MessageMs:     1000,
			FinalMs:       1000,
			TransitionMs:  500,
		},
		Fetcher: Fetcher{
			UserAgent:      "mainframe/1.0 (Terminal Site)",
			TimeoutSeconds: 30,
		},
		Logging: Logging{
			Level: "info",
		},
		Keybindings: Keybindings{
			Blog:        "b",
			Links:       "l",
			ToggleTheme: "t",
			ToggleFKeys: "f",
			Close:       "x",
			Quit:        "q",
			Down:        "j",
			Up:          "k",
		},
	}
}

// Ms converts a millisecond setting to a duration.
func Ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mainframe"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// StorePath returns the preferences database path.
func (c *Config) StorePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "prefs.db"), nil
}

// LogPath returns the log file path.
func (c *Config) LogPath() (string, error) {
	if c.Logging.Path != "" {
		return c.Logging.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "mainframe", "mainframe.log"), nil
}

// Load loads configuration, layering user config on top of defaults and
// environment overrides on top of that. Returns the default config if no
// user config exists.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		cfg := Default()
		applyEnv(cfg)
		return cfg, nil // Return defaults if we can't determine path
	}
	return LoadFile(configPath)
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		userCfg, md, err := loadFromTOML(path)
		if err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
		cfg = merge(cfg, userCfg, md)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	applyEnv(cfg)
	return cfg, nil
}

// loadFromTOML loads a TOML config file and returns the config along with
// the metadata recording which keys the file set.
func loadFromTOML(path string) (*Config, toml.MetaData, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, md, fmt.Errorf("parsing config TOML: %w", err)
	}
	return &cfg, md, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvSite); v != "" {
		cfg.Site.Base = v
	}
	if v := os.Getenv(EnvLog); v != "" {
		cfg.Logging.Path = v
	}
}

// merge layers user config on top of defaults.
// Only non-zero values from user config override defaults, except
// keybindings: one the file sets to "" is cleared, which disables it.
func merge(defaults, user *Config, md toml.MetaData) *Config {
	result := *defaults

	// Site
	mergeString(&result.Site.Base, user.Site.Base)
	mergeString(&result.Site.Domain, user.Site.Domain)
	mergeString(&result.Site.BlogFile, user.Site.BlogFile)
	mergeString(&result.Site.LinksFile, user.Site.LinksFile)
	mergeString(&result.Site.CardLabel, user.Site.CardLabel)
	if user.Site.NoFooter {
		result.Site.NoFooter = true
	}

	// Intro
	if user.Intro.Disabled {
		result.Intro.Disabled = true
	}
	mergeInt(&result.Intro.TypingMs, user.Intro.TypingMs)
	mergeInt(&result.Intro.DotMs, user.Intro.DotMs)
	mergeInt(&result.Intro.SystemCheckMs, user.Intro.SystemCheckMs)
	mergeInt(&result.Intro.MessageMs, user.Intro.MessageMs)
	mergeInt(&result.Intro.FinalMs, user.Intro.FinalMs)
	mergeInt(&result.Intro.TransitionMs, user.Intro.TransitionMs)

	// Fetcher
	mergeString(&result.Fetcher.UserAgent, user.Fetcher.UserAgent)
	mergeInt(&result.Fetcher.TimeoutSeconds, user.Fetcher.TimeoutSeconds)

	// Storage & logging
	mergeString(&result.Storage.Path, user.Storage.Path)
	mergeString(&result.Logging.Path, user.Logging.Path)
	mergeString(&result.Logging.Level, user.Logging.Level)

	// Keybindings - override each if defined
	kb, ukb := &result.Keybindings, user.Keybindings
	for _, b := range []struct {
		key string
		dst *string
		src string
	}{
		{"blog", &kb.Blog, ukb.Blog},
		{"links", &kb.Links, ukb.Links},
		{"toggleTheme", &kb.ToggleTheme, ukb.ToggleTheme},
		{"toggleFKeys", &kb.ToggleFKeys, ukb.ToggleFKeys},
		{"close", &kb.Close, ukb.Close},
		{"quit", &kb.Quit, ukb.Quit},
		{"down", &kb.Down, ukb.Down},
		{"up", &kb.Up, ukb.Up},
	} {
		if md.IsDefined("keybindings", b.key) {
			*b.dst = b.src
		}
	}

	return &result
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func mergeInt(dst *int, src int) {
	if src != 0 {
		*dst = src
	}
}

// MatchSingle is a simple helper for single-char bindings.
func MatchSingle(input byte, binding string) bool {
	return len(binding) == 1 && input == binding[0]
}

// DefaultTOML returns the default configuration as a TOML string.
// Used for --init-config to generate a user config file.
func DefaultTOML() string {
	return `# mainframe configuration
# Save to ~/.config/mainframe/config.toml and customize
# Only include settings you want to change from defaults

# Site settings
[site]
base = "https://manni-dm.dev/"   # URL or local directory (MAINFRAME_SITE overrides)
domain = "manni-dm.dev"          # Cards linking here are marked online
blogFile = "blog.json"
linksFile = "links.json"
cardLabel = "Visit {{.Title}}: {{.Description}}"
noFooter = false

# Boot-up intro, delays in milliseconds
[intro]
disabled = false
typingMs = 20
dotMs = 1500
systemCheckMs = 4000
messageMs = 1000
finalMs = 1000
transitionMs = 500

# HTTP fetching settings
[fetcher]
userAgent = "mainframe/1.0 (Terminal Site)"
timeoutSeconds = 30

# Preferences database (empty = ~/.config/mainframe/prefs.db)
[storage]
path = ""

# Log file (empty = ~/.cache/mainframe/mainframe.log, MAINFRAME_LOG overrides)
[logging]
path = ""
level = "info"

# Keybindings
[keybindings]
blog = "b"                       # F2 when F-keys are enabled
links = "l"                      # F8 when F-keys are enabled
toggleTheme = "t"
toggleFKeys = "f"
close = "x"                      # Esc also closes an article
quit = "q"
down = "j"
up = "k"
`
}
