package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sprintdeck "github.com/alnah/go-sprintdeck"
)

// runHandout executes the handout command.
func runHandout(ctx context.Context, args []string, env *Environment) error {
	flags, inputs, err := parseHandoutFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(inputs) > 1 {
		return fmt.Errorf("%w: handout takes one outline, got %d", ErrUsage, len(inputs))
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

	format := sprintdeck.FormatPDF
	if flags.format != "" {
		if format, err = sprintdeck.ParseFormat(flags.format); err != nil {
			return err
		}
	}
	timeout, err := parseDuration("timeout", flags.timeout, cfg.Handout.Timeout)
	if err != nil {
		return err
	}

	input := defaultOutline
	if len(inputs) == 1 {
		input = inputs[0]
	}
	output := handoutOutput(flags.output, input, format, cfg.Output.DefaultDir)

	logger := newLogger(env, &flags.common)
	defer func() { _ = logger.Sync() }()

	opts := []sprintdeck.HandoutOption{
		sprintdeck.WithHandoutLogger(logger),
		sprintdeck.WithHandoutStrictTags(flags.strict || cfg.Render.Strict),
		sprintdeck.WithHandoutStyle(firstNonEmpty(flags.style, cfg.Handout.Style)),
		sprintdeck.WithAssetPath(firstNonEmpty(flags.assetPath, cfg.Assets.BasePath)),
		sprintdeck.WithIncludeSource(flags.includeSource || cfg.Handout.IncludeSource),
		sprintdeck.WithHandoutTimeout(timeout),
	}
	if !flags.noFooter {
		opts = append(opts, sprintdeck.WithFooter(footerText(env)))
	}

	handout, err := sprintdeck.NewHandout(opts...)
	if err != nil {
		return withHint(err)
	}
	defer func() { _ = handout.Close() }()

	outline, err := loadOutline(input, overrides)
	if err != nil {
		return withHint(fmt.Errorf("%s: %w", input, err))
	}

	data, err := handout.Render(ctx, outline, format)
	if err != nil {
		return withHint(fmt.Errorf("%s: %w", input, err))
	}

	if output == "" {
		_, err = env.Stdout.Write(data)
		return err
	}
	if err := writeOutput(output, data); err != nil {
		return err
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "wrote %s\n", output)
	}
	return nil
}

// handoutOutput picks where the handout goes. Markdown and HTML default to
// stdout; PDF defaults to <name>.pdf in defaultDir or the current directory.
func handoutOutput(flagOutput, input string, format sprintdeck.Format, defaultDir string) string {
	if flagOutput != "" {
		if isDirTarget(flagOutput) {
			return filepath.Join(flagOutput, handoutName(input, format))
		}
		return flagOutput
	}
	if format != sprintdeck.FormatPDF {
		return ""
	}
	return filepath.Join(defaultDir, handoutName(input, format))
}

func handoutName(input string, format sprintdeck.Format) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + format.Extension()
}

func footerText(env *Environment) string {
	return fmt.Sprintf("Generated by sprintdeck %s on %s", Version, env.Now().Format("2006-01-02"))
}
