// Package config loads the sesqui.yaml file that describes the pages the
// command line tool builds.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"impractical.co/sesqui/components"
	"impractical.co/sesqui/timeline"
)

// FileName is the name of the configuration file looked for by default.
const FileName = "sesqui.yaml"

// KindTimeline is the block kind that mounts a searchable timeline.
const KindTimeline = "timeline"

// Environment variables that override the file.
const (
	EnvLogLevel  = "SESQUI_LOG_LEVEL"
	EnvOutputDir = "SESQUI_OUTPUT_DIR"
)

// ErrInvalid is returned, wrapped, for every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the whole sesqui.yaml file.
type Config struct {
	LogLevel  string         `yaml:"log_level"`
	LogFormat string         `yaml:"log_format"`
	OutputDir string         `yaml:"output_dir"`
	DataDir   string         `yaml:"data_dir"`
	Timeline  TimelineConfig `yaml:"timeline"`
	Pages     []PageConfig   `yaml:"pages"`
}

// TimelineConfig tunes the search box of every timeline.
type TimelineConfig struct {
	Debounce       time.Duration `yaml:"debounce"`
	MinQueryLength int           `yaml:"min_query_length"`
}

// PageConfig describes one output page.
type PageConfig struct {
	// File is the output path, relative to OutputDir.
	File        string        `yaml:"file"`
	Title       string        `yaml:"title"`
	Stylesheets []string      `yaml:"stylesheets"`
	Scripts     []string      `yaml:"scripts"`
	Blocks      []BlockConfig `yaml:"blocks"`
}

// BlockConfig is a component mounted into a page.
type BlockConfig struct {
	Selector string `yaml:"selector"`
	Kind     string `yaml:"kind"`

	// Source is the dataset of a timeline block: a path relative to
	// DataDir or an http(s) URL.
	Source string `yaml:"source"`

	// Config holds the component's options, decoded according to Kind.
	Config yaml.Node `yaml:"config"`
}

var idSelector = regexp.MustCompile(`^#[A-Za-z][\w-]*$`)

// MountPoint returns the id the block is mounted into, if its selector is a
// plain id selector.
func (b BlockConfig) MountPoint() (string, bool) {
	if !idSelector.MatchString(b.Selector) {
		return "", false
	}
	return strings.TrimPrefix(b.Selector, "#"), true
}

// MountPoints returns the ids of the page's blocks, in order, without
// duplicates.
func (p PageConfig) MountPoints() []string {
	var ids []string
	for _, block := range p.Blocks {
		id, ok := block.MountPoint()
		if !ok || slices.Contains(ids, id) {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// NewConfig returns a Config holding the defaults.
func NewConfig() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		OutputDir: "dist",
		DataDir:   "data",
		Timeline: TimelineConfig{
			Debounce:       timeline.DefaultDebounce,
			MinQueryLength: timeline.DefaultMinQueryLength,
		},
	}
}

// Load reads the file at path over the defaults, applies environment
// overrides, resolves relative directories against the file's directory,
// and validates the result.
func Load(path string) (*Config, error) {
	cfg := NewConfig()
	err := cfg.loadYAML(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	cfg.resolveDirs(filepath.Dir(path))
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path is chosen by the operator
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	err = yaml.Unmarshal(data, c)
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.LogLevel = level
	}
	if dir := os.Getenv(EnvOutputDir); dir != "" {
		c.OutputDir = dir
	}
}

func (c *Config) resolveDirs(base string) {
	if c.OutputDir != "" && !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(base, c.OutputDir)
	}
	if c.DataDir != "" && !filepath.IsAbs(c.DataDir) {
		c.DataDir = filepath.Join(base, c.DataDir)
	}
}

// Validate reports the first problem with the configuration.
func (c *Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return fmt.Errorf("%w: log_level must be 'debug', 'info', 'warn', or 'error', got %q", ErrInvalid, c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log_format must be 'text' or 'json', got %q", ErrInvalid, c.LogFormat)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir must be set", ErrInvalid)
	}
	if c.Timeline.Debounce <= 0 {
		return fmt.Errorf("%w: timeline.debounce must be positive, got %s", ErrInvalid, c.Timeline.Debounce)
	}
	if c.Timeline.MinQueryLength < 1 {
		return fmt.Errorf("%w: timeline.min_query_length must be at least 1, got %d", ErrInvalid, c.Timeline.MinQueryLength)
	}

	kinds := append(components.Kinds(), KindTimeline)
	files := map[string]struct{}{}
	for i, page := range c.Pages {
		if page.File == "" || !filepath.IsLocal(page.File) {
			return fmt.Errorf("%w: pages[%d].file must be a relative path inside output_dir, got %q", ErrInvalid, i, page.File)
		}
		file := filepath.Clean(page.File)
		if _, ok := files[file]; ok {
			return fmt.Errorf("%w: pages[%d].file %q is used by another page", ErrInvalid, i, page.File)
		}
		files[file] = struct{}{}

		for j, block := range page.Blocks {
			if strings.TrimSpace(block.Selector) == "" {
				return fmt.Errorf("%w: pages[%d].blocks[%d].selector must be set", ErrInvalid, i, j)
			}
			if !slices.Contains(kinds, block.Kind) {
				return fmt.Errorf("%w: pages[%d].blocks[%d].kind must be one of %s, got %q", ErrInvalid, i, j, strings.Join(kinds, ", "), block.Kind)
			}
			if block.Kind == KindTimeline && block.Source == "" && block.Config.IsZero() {
				return fmt.Errorf("%w: pages[%d].blocks[%d] is a timeline with neither a source nor an inline dataset", ErrInvalid, i, j)
			}
		}
	}
	return nil
}

// SlogLevel returns the log level as a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return level, fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.LogLevel)
	}
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}
