package sprintdeck

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/alnah/go-sprintdeck/internal/assets"
)

// Frame titles.
const (
	titleProjectTimeline = "Project Timeline"
	titleAccomplishments = "What We Have Accomplished So Far"
	titleDemo            = "Demo or Video of the Demo"
	titleNextSprint      = "On Deck for the Next Sprint"
	titleConcernsOrRisks = "Concerns and Risks"
	titleQAndA           = "Q&A"
	titleProjectSummary  = "Project Summary"
)

// Gantt chart bounds. They do not follow the timeline data.
const (
	ChartStart = "2023-03-06"
	ChartEnd   = "2023-06-11"
)

// ganttBarSeparator ends every bar line but the last with a LaTeX row break.
const ganttBarSeparator = " \\\\\n"

// sectionRenderer walks one outline. It lives for a single render.
type sectionRenderer struct {
	templates *template.Template
	strict    bool
	logger    *zap.Logger

	index     int // current section, for diagnostics
	preamble  string
	hasTitle  bool
	fragments []string
	skipped   []string
}

var _ sectionVisitor = (*sectionRenderer)(nil)

func (r *sectionRenderer) visitTitleSlide(s TitleSlide) error {
	preamble, err := executeTemplate(r.templates, assets.TitleSlideTemplate, s)
	if err != nil {
		return err
	}
	if r.hasTitle {
		r.logger.Warn("duplicate title slide, the last one wins", zap.Int("section", r.index))
	}
	r.preamble = preamble
	r.hasTitle = true
	return nil
}

func (r *sectionRenderer) visitProjectTimeline(s ProjectTimeline) error {
	bars := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		bars[i] = ganttBar(e)
	}

	frame, err := executeTemplate(r.templates, assets.TimelineTemplate, struct {
		Title      string
		ChartStart string
		ChartEnd   string
		Bars       string
	}{
		Title:      titleProjectTimeline,
		ChartStart: ChartStart,
		ChartEnd:   ChartEnd,
		Bars:       strings.Join(bars, ganttBarSeparator),
	})
	if err != nil {
		return err
	}
	r.fragments = append(r.fragments, frame)
	return nil
}

func (r *sectionRenderer) visitAccomplishments(s Accomplishments) error {
	r.fragments = append(r.fragments, bulletFrame(titleAccomplishments, s.Items))
	return nil
}

func (r *sectionRenderer) visitDemo(s Demo) error {
	line := s.Description + ` \href{` + s.URL + `}{\textcolor{blue}{` + s.LinkText + `}} or video.`
	r.fragments = append(r.fragments, textFrame(titleDemo, line))
	return nil
}

func (r *sectionRenderer) visitNextSprint(s NextSprint) error {
	r.fragments = append(r.fragments, bulletFrame(titleNextSprint, s.Items))
	return nil
}

func (r *sectionRenderer) visitConcernsOrRisks(s ConcernsOrRisks) error {
	r.fragments = append(r.fragments, bulletFrame(titleConcernsOrRisks, s.Items))
	return nil
}

func (r *sectionRenderer) visitQAndA(s QAndA) error {
	r.fragments = append(r.fragments, textFrame(titleQAndA, s.Description))
	return nil
}

func (r *sectionRenderer) visitProjectSummary(s ProjectSummary) error {
	r.fragments = append(r.fragments, bulletFrame(titleProjectSummary, s.Items))
	return nil
}

func (r *sectionRenderer) visitUnknown(s UnknownSection) error {
	if r.strict {
		return fmt.Errorf("%w: %q", ErrUnknownSection, s.Name)
	}
	r.logger.Debug("skipping unknown section", zap.String("tag", s.Name), zap.Int("section", r.index))
	r.skipped = append(r.skipped, s.Name)
	return nil
}

// ---------------------------------------------------------------------------
// Fragment builders
// ---------------------------------------------------------------------------

// bulletList wraps each item in \item, preserving order. Zero items still
// yield a begin/end pair.
func bulletList(items []string) string {
	var sb strings.Builder
	sb.WriteString(`\begin{itemize}`)
	for _, item := range items {
		sb.WriteString("\n\\item ")
		sb.WriteString(item)
	}
	sb.WriteString("\n\\end{itemize}")
	return sb.String()
}

func bulletFrame(title string, items []string) string {
	return `\begin{frame}{` + title + `}` + bulletList(items) + `\end{frame}`
}

func textFrame(title, body string) string {
	return `\begin{frame}{` + title + "}\n" + body + "\n\\end{frame}"
}

func ganttBar(e TimelineEntry) string {
	return fmt.Sprintf(`\ganttbar[progress=%s, bar label font=\tiny, bar/.append style={fill=%s}]{%s}{%s}{%s}`,
		e.Progress, e.Color, e.Label, e.Start, e.End)
}

func executeTemplate(t *template.Template, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateRender, name, err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
