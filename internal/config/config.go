package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// AIConfig selects the generative-text provider for tactical briefs.
type AIConfig struct {
	Provider string `yaml:"provider"` // "gemini" or "claude"
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

// ArchiveConfig controls the optional on-disk signal journal.
type ArchiveConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	Keyword          string         `yaml:"keyword"`
	PollInterval     string         `yaml:"poll_interval"`
	DemoPollInterval string         `yaml:"demo_poll_interval"`
	Demo             bool           `yaml:"demo"`
	SearchLimit      int            `yaml:"search_limit,omitempty"`
	CommentsPerVideo int            `yaml:"comments_per_video,omitempty"`
	Channels         []string       `yaml:"channels,omitempty"`
	YouTubeAPIKey    string         `yaml:"youtube_api_key,omitempty"`
	AI               *AIConfig      `yaml:"ai,omitempty"`
	Archive          *ArchiveConfig `yaml:"archive,omitempty"`
	APIListen        string         `yaml:"api_listen,omitempty"`
	LogLevel         string         `yaml:"log_level,omitempty"`
}

// YouTubeKey resolves the YouTube Data API key, config over env.
func (c *Config) YouTubeKey() string {
	if c.YouTubeAPIKey != "" {
		return c.YouTubeAPIKey
	}
	return os.Getenv("REPSCAN_YT_KEY")
}

// AIKey resolves the generative-text API key, config over env.
func (c *Config) AIKey() string {
	if c.AI != nil && c.AI.APIKey != "" {
		return c.AI.APIKey
	}
	return os.Getenv("REPSCAN_AI_KEY")
}

// AIProvider returns the configured provider, defaulting to gemini.
func (c *Config) AIProvider() string {
	if c.AI == nil || c.AI.Provider == "" {
		return "gemini"
	}
	return c.AI.Provider
}

// AIModel returns the configured model override, if any.
func (c *Config) AIModel() string {
	if c.AI == nil {
		return ""
	}
	return c.AI.Model
}

// PollDuration is the live scan interval, defaulting to 30s.
func (c *Config) PollDuration() time.Duration {
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// DemoPollDuration is the simulated-mode interval, defaulting to 5s.
func (c *Config) DemoPollDuration() time.Duration {
	d, err := time.ParseDuration(c.DemoPollInterval)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// GetSearchLimit caps video discovery per cycle, defaulting to 5.
func (c *Config) GetSearchLimit() int {
	if c.SearchLimit <= 0 {
		return 5
	}
	return c.SearchLimit
}

// GetCommentsPerVideo caps comment fetches per video, defaulting to 10.
func (c *Config) GetCommentsPerVideo() int {
	if c.CommentsPerVideo <= 0 {
		return 10
	}
	return c.CommentsPerVideo
}

// ArchiveEnabled reports whether ingested signals are journaled to disk.
func (c *Config) ArchiveEnabled() bool {
	return c.Archive != nil && c.Archive.Enabled
}

// GetLogLevel returns the configured log level, defaulting to info.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "repscan", "config.yaml")
}

func ArchivePath() string {
	return filepath.Join(xdg.CacheHome, "repscan", "archive.db")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, "repscan", "repscan.log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file, writing the embedded defaults on first
// run. A .env in the working directory is loaded first so keys can live
// outside the config file.
func Load(path string) (*Config, error) {
	godotenv.Load() // best effort; missing .env is fine

	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.Keyword == "" {
		return fmt.Errorf("keyword is required")
	}
	if cfg.AI != nil {
		switch cfg.AI.Provider {
		case "", "gemini", "claude":
		default:
			return fmt.Errorf("unknown ai provider %q (valid: gemini, claude)", cfg.AI.Provider)
		}
	}
	for i, ch := range cfg.Channels {
		if ch == "" {
			return fmt.Errorf("channel %d: id is required", i)
		}
	}
	return nil
}
