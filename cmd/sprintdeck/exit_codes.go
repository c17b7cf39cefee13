package main

import (
	"errors"
	"os"

	sprintdeck "github.com/alnah/go-sprintdeck"
	"github.com/alnah/go-sprintdeck/internal/assets"
	"github.com/alnah/go-sprintdeck/internal/config"
	"github.com/alnah/go-sprintdeck/internal/dateutil"
)

// Exit codes for the sprintdeck CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Deck or handout written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or outline
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, sprintdeck.ErrBrowserConnect) ||
		errors.Is(err, sprintdeck.ErrPageCreate) ||
		errors.Is(err, sprintdeck.ErrPageLoad) ||
		errors.Is(err, sprintdeck.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, sprintdeck.ErrReadOutline) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/outline errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, sprintdeck.ErrInvalidFormat) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrOutputRequired) ||
		errors.Is(err, ErrOutputCollision) ||
		errors.Is(err, ErrInvalidWorkers) ||
		errors.Is(err, ErrInvalidDuration) ||
		sprintdeck.IsOutlineError(err) {
		return ExitUsage
	}

	return ExitGeneral
}
