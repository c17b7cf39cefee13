package sprintdeck

import "errors"

// Sentinel errors for library operations.
var (
	// Outline errors.
	ErrReadOutline       = errors.New("failed to read outline")
	ErrOutlineParse      = errors.New("failed to parse outline")
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidField      = errors.New("invalid field value")
	ErrMissingTitleSlide = errors.New("outline has no title_slide section")
	ErrUnknownSection    = errors.New("unknown section tag")

	// Rendering errors.
	ErrTemplateRender = errors.New("template rendering failed")

	// Handout errors.
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrInvalidFormat  = errors.New("invalid handout format")
)
