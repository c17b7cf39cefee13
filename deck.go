package sprintdeck

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"go.uber.org/zap"

	"github.com/alnah/go-sprintdeck/internal/assets"
)

// Template delimiters. Braces in the .tex templates stay literal.
const (
	leftDelim  = "<<"
	rightDelim = ">>"
)

// deckTemplates are parsed into every Deck.
var deckTemplates = []string{
	assets.DeckTemplate,
	assets.TitleSlideTemplate,
	assets.TimelineTemplate,
}

// Deck renders outlines into Beamer documents.
// A Deck is immutable after construction and safe for concurrent use.
type Deck struct {
	templates *template.Template
	strict    bool
	logger    *zap.Logger
}

// Option configures a Deck.
type Option func(*Deck)

// WithLogger sets the logger for diagnostics such as skipped sections.
// A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(d *Deck) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithStrictTags makes unknown section tags fail with ErrUnknownSection
// instead of being skipped.
func WithStrictTags(strict bool) Option {
	return func(d *Deck) {
		d.strict = strict
	}
}

// NewDeck creates a Deck from the built-in LaTeX templates.
func NewDeck(opts ...Option) (*Deck, error) {
	t, err := parseTemplates(assets.NewEmbeddedLoader())
	if err != nil {
		return nil, err
	}

	d := &Deck{
		templates: t,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func parseTemplates(loader assets.AssetLoader) (*template.Template, error) {
	root := template.New("sprintdeck").Delims(leftDelim, rightDelim)
	for _, name := range deckTemplates {
		content, err := loader.LoadTemplate(name)
		if err != nil {
			return nil, err
		}
		if _, err := root.New(name).Parse(content); err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %v", ErrTemplateRender, name, err)
		}
	}
	return root, nil
}

// Result holds a rendered document and the parts it was built from.
type Result struct {
	Document  string   // Complete .tex source
	Preamble  string   // Title slide declarations
	Fragments []string // One frame per content section, in outline order
	Skipped   []string // Unknown tags that produced no frame
}

// Render renders the outline into a complete LaTeX document.
func (d *Deck) Render(o Outline) (string, error) {
	res, err := d.RenderResult(o)
	if err != nil {
		return "", err
	}
	return res.Document, nil
}

// RenderResult renders the outline and returns the document with its parts.
// Any failure aborts the render; no partial document is returned.
func (d *Deck) RenderResult(o Outline) (*Result, error) {
	r := &sectionRenderer{
		templates: d.templates,
		strict:    d.strict,
		logger:    d.logger,
	}

	for i, s := range o {
		if s == nil {
			return nil, fmt.Errorf("%w: sections[%d] is nil", ErrInvalidField, i)
		}
		r.index = i
		if err := s.accept(r); err != nil {
			return nil, fmt.Errorf("sections[%d] (%s): %w", i, s.Tag(), err)
		}
	}

	if !r.hasTitle {
		return nil, ErrMissingTitleSlide
	}

	content := strings.Join(r.fragments, fragmentSeparator)
	doc, err := assembleDocument(d.templates, r.preamble, content)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("rendered deck",
		zap.Int("frames", len(r.fragments)),
		zap.Int("skipped", len(r.skipped)),
	)

	return &Result{
		Document:  doc,
		Preamble:  r.preamble,
		Fragments: r.fragments,
		Skipped:   r.skipped,
	}, nil
}

var defaultDeck = sync.OnceValues(func() (*Deck, error) {
	return NewDeck()
})

// Render renders the outline with a default Deck: embedded templates, unknown
// tags skipped, no logging.
func Render(o Outline) (string, error) {
	d, err := defaultDeck()
	if err != nil {
		return "", err
	}
	return d.Render(o)
}

// IsOutlineError reports whether err comes from malformed outline content
// rather than from I/O or the templates.
func IsOutlineError(err error) bool {
	return errors.Is(err, ErrOutlineParse) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidField) ||
		errors.Is(err, ErrMissingTitleSlide) ||
		errors.Is(err, ErrUnknownSection)
}
