package main

import (
	"context"
	"errors"
	"fmt"

	sprintdeck "github.com/alnah/go-sprintdeck"
	"github.com/alnah/go-sprintdeck/internal/assets"
	"github.com/alnah/go-sprintdeck/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage           = errors.New("invalid usage")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrOutputRequired  = errors.New("an output directory is required for several outlines")
	ErrOutputCollision = errors.New("two outlines map to the same output file")
	ErrWriteOutput     = errors.New("failed to write output")
	ErrInvalidWorkers  = errors.New("invalid worker count")
	ErrInvalidDuration = errors.New("invalid duration")
)

// withHint appends an actionable hint to err when one applies.
// The returned error still matches err with errors.Is.
func withHint(err error) error {
	if err == nil {
		return nil
	}

	var hint string
	switch {
	case errors.Is(err, sprintdeck.ErrMissingTitleSlide):
		hint = hints.ForMissingTitleSlide()
	case errors.Is(err, sprintdeck.ErrUnknownSection):
		hint = hints.ForUnknownSection(sprintdeck.KnownTags())
	case errors.Is(err, sprintdeck.ErrOutlineParse):
		hint = hints.ForOutlineSyntax()
	case errors.Is(err, sprintdeck.ErrBrowserConnect):
		hint = hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		hint = hints.ForTimeout()
	case errors.Is(err, assets.ErrStyleNotFound):
		hint = hints.ForStyleNotFound([]string{assets.HandoutStyle})
	}

	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}
