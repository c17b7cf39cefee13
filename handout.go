package sprintdeck

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-sprintdeck/internal/assets"
	"github.com/alnah/go-sprintdeck/internal/pipeline"
)

// Format selects the handout output.
type Format string

// Handout formats.
const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// ParseFormat accepts "md", "markdown", "html" and "pdf", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q (want md, html, or pdf)", ErrInvalidFormat, s)
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	return string(f)
}

const (
	defaultHandoutTimeout = 30 * time.Second
	sourceHeading         = "LaTeX Source"
	emptyListText         = "_Nothing to report._"
)

// Compile-time interface checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector   = (*pipeline.CSSInjection)(nil)
	_ pdfConverter           = (*rodConverter)(nil)
)

// Handout renders a speaker handout for an outline: the same sections as
// the deck, laid out as a document. Create with NewHandout and call Close
// when done; the browser used for PDF output starts on first use.
// A Handout is not safe for concurrent use.
type Handout struct {
	deck          *Deck
	styles        assets.AssetLoader
	style         string
	includeSource bool
	footer        string

	htmlConverter  pipeline.HTMLConverter
	cssInjector    pipeline.CSSInjector
	footerInjector *pipeline.FooterInjection
	pdfConverter   pdfConverter
}

type handoutConfig struct {
	timeout       time.Duration
	style         string
	assetPath     string
	includeSource bool
	footer        string
	strict        bool
	logger        *zap.Logger
}

// HandoutOption configures a Handout.
type HandoutOption func(*handoutConfig)

// WithHandoutTimeout sets the PDF printing timeout. Zero keeps the default.
func WithHandoutTimeout(d time.Duration) HandoutOption {
	return func(c *handoutConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHandoutStyle selects the CSS style by name. Empty keeps "handout".
func WithHandoutStyle(name string) HandoutOption {
	return func(c *handoutConfig) {
		if name != "" {
			c.style = name
		}
	}
}

// WithAssetPath loads styles from path/styles/NAME.css first, falling back
// to the built-in styles.
func WithAssetPath(path string) HandoutOption {
	return func(c *handoutConfig) {
		c.assetPath = path
	}
}

// WithIncludeSource appends the rendered LaTeX source as a highlighted block.
func WithIncludeSource(include bool) HandoutOption {
	return func(c *handoutConfig) {
		c.includeSource = include
	}
}

// WithFooter sets a footer line for HTML and PDF output.
func WithFooter(text string) HandoutOption {
	return func(c *handoutConfig) {
		c.footer = text
	}
}

// WithHandoutStrictTags rejects unknown section tags, as WithStrictTags does
// for a Deck.
func WithHandoutStrictTags(strict bool) HandoutOption {
	return func(c *handoutConfig) {
		c.strict = strict
	}
}

// WithHandoutLogger sets the logger for diagnostics.
func WithHandoutLogger(l *zap.Logger) HandoutOption {
	return func(c *handoutConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewHandout creates a Handout. It fails if the asset path is invalid or the
// selected style cannot be found.
func NewHandout(opts ...HandoutOption) (*Handout, error) {
	cfg := handoutConfig{
		timeout: defaultHandoutTimeout,
		style:   assets.HandoutStyle,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	resolver, err := assets.NewAssetResolver(cfg.assetPath)
	if err != nil {
		return nil, err
	}
	if _, err := resolver.LoadStyle(cfg.style); err != nil {
		return nil, err
	}
	if resolver.HasCustomLoader() {
		cfg.logger.Debug("handout assets", zap.String("path", cfg.assetPath), zap.String("style", cfg.style))
	}

	deck, err := NewDeck(WithLogger(cfg.logger), WithStrictTags(cfg.strict))
	if err != nil {
		return nil, err
	}

	return &Handout{
		deck:           deck,
		styles:         resolver,
		style:          cfg.style,
		includeSource:  cfg.includeSource,
		footer:         cfg.footer,
		htmlConverter:  pipeline.NewGoldmarkConverter(),
		cssInjector:    &pipeline.CSSInjection{},
		footerInjector: &pipeline.FooterInjection{},
		pdfConverter:   newRodConverter(cfg.timeout),
	}, nil
}

// Close releases the browser, if one was started.
func (h *Handout) Close() error {
	if h.pdfConverter != nil {
		return h.pdfConverter.Close()
	}
	return nil
}

// Render produces the handout in the given format.
func (h *Handout) Render(ctx context.Context, o Outline, f Format) ([]byte, error) {
	switch f {
	case FormatMarkdown:
		md, err := h.Markdown(o)
		return []byte(md), err
	case FormatHTML:
		html, err := h.HTML(ctx, o)
		return []byte(html), err
	case FormatPDF:
		return h.PDF(ctx, o)
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, f)
}

// Markdown renders the handout as GitHub-flavored Markdown.
func (h *Handout) Markdown(o Outline) (string, error) {
	w := &handoutWriter{strict: h.deck.strict}
	for i, s := range o {
		if s == nil {
			return "", fmt.Errorf("%w: sections[%d] is nil", ErrInvalidField, i)
		}
		if err := s.accept(w); err != nil {
			return "", fmt.Errorf("sections[%d] (%s): %w", i, s.Tag(), err)
		}
	}

	ts, ok := o.TitleSlide()
	if !ok {
		return "", ErrMissingTitleSlide
	}

	var sb strings.Builder
	sb.WriteString("# " + ts.Title + "\n\n")
	sb.WriteString("_" + ts.Author + " · " + ts.Date + "_\n")
	for _, block := range w.blocks {
		sb.WriteString("\n" + block + "\n")
	}

	if h.includeSource {
		doc, err := h.deck.Render(o)
		if err != nil {
			return "", err
		}
		fence := codeFence(doc)
		sb.WriteString("\n## " + sourceHeading + "\n\n")
		sb.WriteString(fence + "latex\n" + doc + fence + "\n")
	}

	return sb.String(), nil
}

// HTML renders the handout as a standalone, styled HTML document.
func (h *Handout) HTML(ctx context.Context, o Outline) (string, error) {
	md, err := h.Markdown(o)
	if err != nil {
		return "", err
	}

	ts, _ := o.TitleSlide()
	html, err := h.htmlConverter.ToHTML(ctx, ts.Title, md)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	css, err := h.styles.LoadStyle(h.style)
	if err != nil {
		return "", err
	}
	html = h.cssInjector.InjectCSS(ctx, html, css)
	html = h.footerInjector.InjectFooter(ctx, html, h.footer)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return html, nil
}

// PDF renders the handout to PDF bytes through headless Chrome.
func (h *Handout) PDF(ctx context.Context, o Outline) ([]byte, error) {
	html, err := h.HTML(ctx, o)
	if err != nil {
		return nil, err
	}
	return h.pdfConverter.ToPDF(ctx, html)
}

// codeFence returns a backtick fence longer than any run inside content.
func codeFence(content string) string {
	fence := "```"
	for strings.Contains(content, fence) {
		fence += "`"
	}
	return fence
}

// ---------------------------------------------------------------------------
// handoutWriter
// ---------------------------------------------------------------------------

// handoutWriter turns sections into Markdown blocks, one per frame.
type handoutWriter struct {
	strict bool
	blocks []string
}

var _ sectionVisitor = (*handoutWriter)(nil)

func (w *handoutWriter) visitTitleSlide(TitleSlide) error { return nil }

func (w *handoutWriter) visitProjectTimeline(s ProjectTimeline) error {
	var sb strings.Builder
	sb.WriteString("## " + titleProjectTimeline + "\n\n")
	sb.WriteString("| Task | Start | End | Progress |\n")
	sb.WriteString("| --- | --- | --- | ---: |")
	for _, e := range s.Entries {
		fmt.Fprintf(&sb, "\n| %s | %s | %s | %s |",
			tableCell(e.Label), tableCell(e.Start), tableCell(e.End), tableCell(percent(e.Progress)))
	}
	w.blocks = append(w.blocks, sb.String())
	return nil
}

func (w *handoutWriter) visitAccomplishments(s Accomplishments) error {
	w.blocks = append(w.blocks, markdownList(titleAccomplishments, s.Items))
	return nil
}

func (w *handoutWriter) visitDemo(s Demo) error {
	w.blocks = append(w.blocks, "## "+titleDemo+"\n\n"+s.Description+" ["+s.LinkText+"]("+s.URL+") or video.")
	return nil
}

func (w *handoutWriter) visitNextSprint(s NextSprint) error {
	w.blocks = append(w.blocks, markdownList(titleNextSprint, s.Items))
	return nil
}

func (w *handoutWriter) visitConcernsOrRisks(s ConcernsOrRisks) error {
	w.blocks = append(w.blocks, markdownList(titleConcernsOrRisks, s.Items))
	return nil
}

func (w *handoutWriter) visitQAndA(s QAndA) error {
	w.blocks = append(w.blocks, "## "+titleQAndA+"\n\n"+s.Description)
	return nil
}

func (w *handoutWriter) visitProjectSummary(s ProjectSummary) error {
	w.blocks = append(w.blocks, markdownList(titleProjectSummary, s.Items))
	return nil
}

func (w *handoutWriter) visitUnknown(s UnknownSection) error {
	if w.strict {
		return fmt.Errorf("%w: %q", ErrUnknownSection, s.Name)
	}
	return nil
}

func markdownList(title string, items []string) string {
	if len(items) == 0 {
		return "## " + title + "\n\n" + emptyListText
	}
	var sb strings.Builder
	sb.WriteString("## " + title + "\n")
	for _, item := range items {
		sb.WriteString("\n- " + item)
	}
	return sb.String()
}

// percent appends a percent sign unless the value already carries a unit.
func percent(progress string) string {
	if _, err := strconv.ParseFloat(progress, 64); err != nil {
		return progress
	}
	return progress + "%"
}

func tableCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
