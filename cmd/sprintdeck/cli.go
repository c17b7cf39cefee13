package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	sprintdeck "github.com/alnah/go-sprintdeck"
	"github.com/alnah/go-sprintdeck/internal/config"
	"github.com/alnah/go-sprintdeck/internal/dateutil"
	"github.com/alnah/go-sprintdeck/internal/hints"
	"github.com/alnah/go-sprintdeck/internal/logging"
)

// defaultOutline is read when no outline path is given.
const defaultOutline = "outline.yaml"

const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// run dispatches args to a command and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	warnUnknownEnvVars(env.Stderr)

	cmd, rest, err := splitCommand(args)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		printUsage(env.Stderr)
		return exitCodeFor(err)
	}

	switch cmd {
	case "version":
		fmt.Fprintf(env.Stdout, "sprintdeck %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "render":
		err = runRender(ctx, rest, env)
	case "handout":
		err = runHandout(ctx, rest, env)
	case "watch":
		err = runWatch(ctx, rest, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// splitCommand picks the command from args. Without a command name the
// arguments go to render, so "sprintdeck" and "sprintdeck a.yaml -o x"
// both render.
func splitCommand(args []string) (string, []string, error) {
	if len(args) == 0 {
		return "render", nil, nil
	}

	switch first := args[0]; first {
	case "render", "handout", "watch", "doctor", "version", "help":
		return first, args[1:], nil
	case "-h", "--help":
		return "help", nil, nil
	case "--version":
		return "version", nil, nil
	default:
		if strings.HasPrefix(first, "-") || isOutlinePath(first) {
			return "render", args, nil
		}
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownCommand, first)
	}
}

func isOutlinePath(arg string) bool {
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// loadConfig loads the config named by --config or SPRINTDECK_CONFIG, then
// fills empty fields from the environment. Without a name the defaults are
// used.
func loadConfig(common *commonFlags, envCfg *envConfig) (*config.Config, error) {
	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// resolveTitleOverrides merges config and flag overrides (flags win) and
// expands "auto" dates against now.
func resolveTitleOverrides(f *titleFlags, cfg *config.Config, now func() time.Time) (sprintdeck.TitleOverrides, error) {
	o := sprintdeck.TitleOverrides{
		Title:  firstNonEmpty(f.title, cfg.TitleSlide.Title),
		Author: firstNonEmpty(f.author, cfg.TitleSlide.Author),
		Date:   firstNonEmpty(f.date, cfg.TitleSlide.Date),
		Logo:   firstNonEmpty(f.logo, cfg.TitleSlide.Logo),
	}

	if o.Date != "" {
		date, err := dateutil.Resolve(o.Date, now())
		if err != nil {
			return sprintdeck.TitleOverrides{}, err
		}
		o.Date = date
	}
	return o, nil
}

// parseDuration parses a flag value; empty means fallback.
func parseDuration(flagName, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: --%s %q, use a positive duration such as 30s", ErrInvalidDuration, flagName, value)
	}
	return d, nil
}

func newLogger(env *Environment, common *commonFlags) *zap.Logger {
	return logging.New(env.Stderr, logging.LevelFor(common.quiet, common.verbose))
}

// loadOutline reads an outline and applies title overrides.
func loadOutline(path string, overrides sprintdeck.TitleOverrides) (sprintdeck.Outline, error) {
	outline, err := sprintdeck.LoadOutline(path)
	if err != nil {
		return nil, err
	}
	return outline.WithTitleOverrides(overrides), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
