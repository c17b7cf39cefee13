package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	sprintdeck "github.com/alnah/go-sprintdeck"
	"github.com/alnah/go-sprintdeck/internal/config"
)

// defaultDebounce is the quiet period after the last change before a
// re-render. Editors often write a file in several steps.
const defaultDebounce = 300 * time.Millisecond

// runWatch executes the watch command.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, inputs, err := parseWatchFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(inputs) > 1 {
		return fmt.Errorf("%w: watch takes one outline, got %d", ErrUsage, len(inputs))
	}
	if flags.output == "" {
		return fmt.Errorf("%w: watch needs -o FILE.tex", ErrUsage)
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(&flags.common, envCfg)
	if err != nil {
		return err
	}
	overrides, err := resolveTitleOverrides(&flags.title, cfg, env.Now)
	if err != nil {
		return err
	}
	debounce, err := resolveDebounce(flags.debounce, cfg)
	if err != nil {
		return err
	}

	logger := newLogger(env, &flags.common)
	defer func() { _ = logger.Sync() }()

	deck, err := sprintdeck.NewDeck(
		sprintdeck.WithLogger(logger),
		sprintdeck.WithStrictTags(flags.strict || cfg.Render.Strict),
	)
	if err != nil {
		return err
	}

	input := defaultOutline
	if len(inputs) == 1 {
		input = inputs[0]
	}

	rebuild := func() error {
		doc, err := renderOutline(deck, input, overrides)
		if err != nil {
			return err
		}
		return writeOutput(flags.output, []byte(doc))
	}

	// The first render must succeed, so a typo in the path fails fast.
	if err := rebuild(); err != nil {
		return withHint(err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "wrote %s, watching %s (Ctrl+C to stop)\n", flags.output, input)
	}

	w := &outlineWatcher{
		path:     input,
		debounce: debounce,
		logger:   logger,
		rebuild: func() error {
			if err := rebuild(); err != nil {
				fmt.Fprintf(env.Stderr, "error: %v\n", withHint(err))
				return err
			}
			if !flags.common.quiet {
				fmt.Fprintf(env.Stderr, "%s rewrote %s\n", env.Now().Format("15:04:05"), flags.output)
			}
			return nil
		},
	}
	return w.Run(ctx)
}

// resolveDebounce picks the debounce: flag, then config, then default.
func resolveDebounce(flagValue string, cfg *config.Config) (time.Duration, error) {
	fallback := cfg.Watch.Debounce
	if fallback == 0 {
		fallback = defaultDebounce
	}
	d, err := parseDuration("debounce", flagValue, fallback)
	if err != nil {
		return 0, err
	}
	if d < config.MinDebounce || d > config.MaxDebounce {
		return 0, fmt.Errorf("%w: --debounce must be between %v and %v, got %v", ErrInvalidDuration, config.MinDebounce, config.MaxDebounce, d)
	}
	return d, nil
}

// outlineWatcher calls rebuild after the outline file changes and then
// stays quiet for debounce. It watches the parent directory, so editors
// that save by renaming a temp file over the outline are seen too.
type outlineWatcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger
	rebuild  func() error

	// ready, if set, is closed once the watch is registered.
	ready chan struct{}
}

// Run blocks until ctx is canceled. Rebuild failures are logged and the
// watch continues; only watcher setup errors are returned.
func (w *outlineWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", w.path, err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}
	w.logger.Debug("watching outline", zap.String("path", target), zap.Duration("debounce", w.debounce))
	if w.ready != nil {
		close(w.ready)
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event, target) {
				continue
			}
			w.logger.Debug("outline changed", zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			if err := w.rebuild(); err != nil {
				w.logger.Debug("rebuild failed", zap.Error(err))
			}
		}
	}
}

// relevant reports whether event is a write or create of the outline.
func (w *outlineWatcher) relevant(event fsnotify.Event, target string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
