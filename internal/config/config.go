package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-sprintdeck/internal/fileutil"
	"github.com/alnah/go-sprintdeck/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength  = 200
	MaxAuthorLength = 200
	MaxDateLength   = 50
	MaxPathLength   = 4096
	MaxStyleLength  = 100
)

// Bounds for durations accepted from config files.
const (
	MinDebounce = 10 * time.Millisecond
	MaxDebounce = 10 * time.Second
	MaxTimeout  = 10 * time.Minute
)

// ConfigDirName is the directory searched under the user config dir.
const ConfigDirName = "go-sprintdeck"

// Config holds all configuration for the sprintdeck CLI.
type Config struct {
	Output     OutputConfig     `yaml:"output"`
	Render     RenderConfig     `yaml:"render"`
	TitleSlide TitleSlideConfig `yaml:"titleSlide"`
	Handout    HandoutConfig    `yaml:"handout"`
	Assets     AssetsConfig     `yaml:"assets"`
	Watch      WatchConfig      `yaml:"watch"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Used for batch renders when -o is absent
}

// RenderConfig defines deck rendering options.
type RenderConfig struct {
	Strict bool `yaml:"strict"` // Fail on unknown section tags instead of skipping
}

// TitleSlideConfig overrides fields of the outline's title slide.
// Empty fields leave the outline value alone.
type TitleSlideConfig struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Date   string `yaml:"date"` // Literal, "auto", or "auto:FORMAT"
	Logo   string `yaml:"logo"`
}

// HandoutConfig defines speaker handout options.
type HandoutConfig struct {
	Style         string        `yaml:"style"`         // Style name (default: "handout")
	IncludeSource bool          `yaml:"includeSource"` // Append the LaTeX source
	Timeout       time.Duration `yaml:"timeout"`       // PDF printing timeout
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// WatchConfig defines watch mode options.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"` // Quiet period before re-rendering
}

// Validate checks field lengths and ranges. Called by LoadConfig, and by
// callers that build a Config by hand.
func (c *Config) Validate() error {
	if err := validateFieldLength("titleSlide.title", c.TitleSlide.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("titleSlide.author", c.TitleSlide.Author, MaxAuthorLength); err != nil {
		return err
	}
	if err := validateFieldLength("titleSlide.date", c.TitleSlide.Date, MaxDateLength); err != nil {
		return err
	}
	if err := validateFieldLength("titleSlide.logo", c.TitleSlide.Logo, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("handout.style", c.Handout.Style, MaxStyleLength); err != nil {
		return err
	}

	if c.Handout.Timeout < 0 || c.Handout.Timeout > MaxTimeout {
		return fmt.Errorf("%w: handout.timeout must be between 0 and %v, got %v", ErrInvalidValue, MaxTimeout, c.Handout.Timeout)
	}
	if c.Watch.Debounce != 0 && (c.Watch.Debounce < MinDebounce || c.Watch.Debounce > MaxDebounce) {
		return fmt.Errorf("%w: watch.debounce must be between %v and %v, got %v", ErrInvalidValue, MinDebounce, MaxDebounce, c.Watch.Debounce)
	}

	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: no overrides, lenient tags,
// embedded assets.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a file; otherwise it is
// searched as NAME.yaml / NAME.yml in the current directory, then in
// the user config directory. A missing file is an error, never a silent
// fallback to defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists, in lookup order, where a config name is searched.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, ConfigDirName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
