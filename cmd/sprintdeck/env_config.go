package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-sprintdeck/internal/config"
)

const envPrefix = "SPRINTDECK_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // SPRINTDECK_CONFIG: config file name or path
	OutputDir  string        // SPRINTDECK_OUTPUT_DIR: batch output directory
	Style      string        // SPRINTDECK_STYLE: handout style name
	AssetPath  string        // SPRINTDECK_ASSET_PATH: custom asset directory
	Author     string        // SPRINTDECK_AUTHOR: title slide author
	Date       string        // SPRINTDECK_DATE: title slide date
	Timeout    time.Duration // SPRINTDECK_TIMEOUT: PDF printing timeout
	Workers    int           // SPRINTDECK_WORKERS: parallel renders
}

// knownEnvVars lists valid SPRINTDECK_* environment variables.
var knownEnvVars = map[string]bool{
	"SPRINTDECK_CONFIG":     true,
	"SPRINTDECK_OUTPUT_DIR": true,
	"SPRINTDECK_STYLE":      true,
	"SPRINTDECK_ASSET_PATH": true,
	"SPRINTDECK_AUTHOR":     true,
	"SPRINTDECK_DATE":       true,
	"SPRINTDECK_TIMEOUT":    true,
	"SPRINTDECK_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable or non-positive timeout and worker values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("SPRINTDECK_CONFIG"),
		OutputDir:  os.Getenv("SPRINTDECK_OUTPUT_DIR"),
		Style:      os.Getenv("SPRINTDECK_STYLE"),
		AssetPath:  os.Getenv("SPRINTDECK_ASSET_PATH"),
		Author:     os.Getenv("SPRINTDECK_AUTHOR"),
		Date:       os.Getenv("SPRINTDECK_DATE"),
	}

	if timeout := os.Getenv("SPRINTDECK_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("SPRINTDECK_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized SPRINTDECK_*
// variable, in name order.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig fills empty config fields from the environment.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Style != "" && cfg.Handout.Style == "" {
		cfg.Handout.Style = env.Style
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Author != "" && cfg.TitleSlide.Author == "" {
		cfg.TitleSlide.Author = env.Author
	}
	if env.Date != "" && cfg.TitleSlide.Date == "" {
		cfg.TitleSlide.Date = env.Date
	}
	if env.Timeout > 0 && cfg.Handout.Timeout == 0 {
		cfg.Handout.Timeout = env.Timeout
	}
}
