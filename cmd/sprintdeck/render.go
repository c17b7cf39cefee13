package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	sprintdeck "github.com/alnah/go-sprintdeck"
	"github.com/alnah/go-sprintdeck/internal/fileutil"
	"github.com/alnah/go-sprintdeck/internal/hints"
)

// maxWorkers caps --workers; rendering is CPU-bound and short.
const maxWorkers = 32

// renderJob maps one outline to its output file.
type renderJob struct {
	input  string
	output string
}

// runRender executes the render command.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, inputs, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
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
	workers, err := resolveWorkers(flags.workers, envCfg.Workers)
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

	if len(inputs) == 0 {
		inputs = []string{defaultOutline}
	}

	if len(inputs) == 1 && flags.output == "" {
		doc, err := renderOutline(deck, inputs[0], overrides)
		if err != nil {
			return withHint(err)
		}
		_, err = io.WriteString(env.Stdout, doc)
		return err
	}

	jobs, err := planJobs(inputs, firstNonEmpty(flags.output, cfg.Output.DefaultDir))
	if err != nil {
		return err
	}

	start := time.Now()
	if err := renderBatch(ctx, deck, jobs, overrides, workers, env, flags.common.verbose); err != nil {
		return withHint(err)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "rendered %d deck(s) in %v\n", len(jobs), time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// renderOutline loads one outline and renders it. Errors name the file.
func renderOutline(deck *sprintdeck.Deck, path string, overrides sprintdeck.TitleOverrides) (string, error) {
	outline, err := loadOutline(path, overrides)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	doc, err := deck.Render(outline)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// planJobs assigns output paths. A single input with an output that is not
// an existing directory writes to that file; otherwise every input becomes
// DIR/<name>.tex.
func planJobs(inputs []string, output string) ([]renderJob, error) {
	if output == "" {
		return nil, fmt.Errorf("%w: use -o DIR or set output.defaultDir", ErrOutputRequired)
	}

	if len(inputs) == 1 && !isDirTarget(output) {
		return []renderJob{{input: inputs[0], output: output}}, nil
	}

	jobs := make([]renderJob, 0, len(inputs))
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		out := filepath.Join(output, texName(in))
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrOutputCollision, prev, in, out)
		}
		seen[out] = in
		jobs = append(jobs, renderJob{input: in, output: out})
	}
	return jobs, nil
}

// isDirTarget reports whether output names a directory: an existing one, or
// a path ending in a separator.
func isDirTarget(output string) bool {
	if strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(filepath.Separator)) {
		return true
	}
	info, err := os.Stat(output)
	return err == nil && info.IsDir()
}

// texName derives the deck file name from an outline path.
func texName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".tex"
}

// renderBatch renders jobs concurrently, at most workers at a time.
// The first failure cancels the jobs not yet started.
func renderBatch(ctx context.Context, deck *sprintdeck.Deck, jobs []renderJob, overrides sprintdeck.TitleOverrides, workers int, env *Environment, verbose bool) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			doc, err := renderOutline(deck, job.input, overrides)
			if err != nil {
				return err
			}
			if err := writeOutput(job.output, []byte(doc)); err != nil {
				return err
			}

			if verbose {
				fmt.Fprintf(env.Stderr, "%s -> %s (%v)\n", job.input, job.output, time.Since(start).Round(time.Microsecond))
			}
			return nil
		})
	}
	return g.Wait()
}

// writeOutput creates the parent directory and writes data atomically.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: creating %s: %v%s", ErrWriteOutput, dir, err, hints.ForOutputDirectory())
		}
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	return nil
}

// resolveWorkers picks the worker count: flag, then env, then GOMAXPROCS.
func resolveWorkers(flagWorkers, envWorkers int) (int, error) {
	if flagWorkers < 0 || flagWorkers > maxWorkers {
		return 0, fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidWorkers, flagWorkers, maxWorkers)
	}
	switch {
	case flagWorkers > 0:
		return flagWorkers, nil
	case envWorkers > 0:
		return min(envWorkers, maxWorkers), nil
	default:
		return min(runtime.GOMAXPROCS(0), maxWorkers), nil
	}
}
