package sprintdeck

// Tag identifies the kind of a section in an outline file.
type Tag string

// Recognized section tags.
const (
	TagTitleSlide      Tag = "title_slide"
	TagProjectTimeline Tag = "project_timeline"
	TagAccomplishments Tag = "accomplishments"
	TagDemo            Tag = "demo"
	TagNextSprint      Tag = "next_sprint"
	TagConcernsOrRisks Tag = "concerns_or_risks"
	TagQAndA           Tag = "q_and_a"
	TagProjectSummary  Tag = "project_summary"
)

// recognizedTags lists the tags in the order a multi-key outline record is
// expanded into sections.
var recognizedTags = []Tag{
	TagTitleSlide,
	TagProjectTimeline,
	TagAccomplishments,
	TagDemo,
	TagNextSprint,
	TagConcernsOrRisks,
	TagQAndA,
	TagProjectSummary,
}

// KnownTags returns the recognized tag names.
func KnownTags() []string {
	names := make([]string, len(recognizedTags))
	for i, t := range recognizedTags {
		names[i] = string(t)
	}
	return names
}

// Section is one entry of an Outline. The set of implementations is closed:
// TitleSlide, ProjectTimeline, Accomplishments, Demo, NextSprint,
// ConcernsOrRisks, QAndA, ProjectSummary and UnknownSection.
type Section interface {
	Tag() Tag
	accept(v sectionVisitor) error
}

// sectionVisitor has one method per Section implementation, so a renderer
// that misses a variant does not compile.
type sectionVisitor interface {
	visitTitleSlide(TitleSlide) error
	visitProjectTimeline(ProjectTimeline) error
	visitAccomplishments(Accomplishments) error
	visitDemo(Demo) error
	visitNextSprint(NextSprint) error
	visitConcernsOrRisks(ConcernsOrRisks) error
	visitQAndA(QAndA) error
	visitProjectSummary(ProjectSummary) error
	visitUnknown(UnknownSection) error
}

// TitleSlide holds the deck metadata. It feeds the preamble and never
// produces a frame of its own.
type TitleSlide struct {
	Title  string
	Author string
	Date   string // Free-form, not parsed
	Logo   string // Path passed to \includegraphics
}

// TimelineEntry is one bar of the project timeline. All values are copied
// into the chart as written: start may follow end and progress may fall
// outside 0-100 or carry its own unit.
type TimelineEntry struct {
	Label    string
	Start    string // ISO date, e.g. 2023-03-06
	End      string
	Progress string // e.g. 50, 42.5, 50.0
	Color    string // Any color xcolor understands
}

// ProjectTimeline renders a Gantt chart with one bar per entry.
type ProjectTimeline struct {
	Entries []TimelineEntry
}

// Accomplishments lists what the team finished.
type Accomplishments struct {
	Items []string
}

// Demo links to a live demo or a recording.
type Demo struct {
	Description string
	URL         string
	LinkText    string
}

// NextSprint lists planned work.
type NextSprint struct {
	Items []string
}

// ConcernsOrRisks lists open risks.
type ConcernsOrRisks struct {
	Items []string
}

// QAndA closes the talk.
type QAndA struct {
	Description string
}

// ProjectSummary lists summary points.
type ProjectSummary struct {
	Items []string
}

// UnknownSection records a tag the renderer does not know. It produces no
// frame, or ErrUnknownSection in strict mode.
type UnknownSection struct {
	Name string
}

func (TitleSlide) Tag() Tag      { return TagTitleSlide }
func (ProjectTimeline) Tag() Tag { return TagProjectTimeline }
func (Accomplishments) Tag() Tag { return TagAccomplishments }
func (Demo) Tag() Tag            { return TagDemo }
func (NextSprint) Tag() Tag      { return TagNextSprint }
func (ConcernsOrRisks) Tag() Tag { return TagConcernsOrRisks }
func (QAndA) Tag() Tag           { return TagQAndA }
func (ProjectSummary) Tag() Tag  { return TagProjectSummary }
func (u UnknownSection) Tag() Tag {
	return Tag(u.Name)
}

func (s TitleSlide) accept(v sectionVisitor) error      { return v.visitTitleSlide(s) }
func (s ProjectTimeline) accept(v sectionVisitor) error { return v.visitProjectTimeline(s) }
func (s Accomplishments) accept(v sectionVisitor) error { return v.visitAccomplishments(s) }
func (s Demo) accept(v sectionVisitor) error            { return v.visitDemo(s) }
func (s NextSprint) accept(v sectionVisitor) error      { return v.visitNextSprint(s) }
func (s ConcernsOrRisks) accept(v sectionVisitor) error { return v.visitConcernsOrRisks(s) }
func (s QAndA) accept(v sectionVisitor) error           { return v.visitQAndA(s) }
func (s ProjectSummary) accept(v sectionVisitor) error  { return v.visitProjectSummary(s) }
func (s UnknownSection) accept(v sectionVisitor) error  { return v.visitUnknown(s) }

// Outline is the ordered list of sections of one presentation.
type Outline []Section

// TitleSlide returns the last title slide in the outline.
func (o Outline) TitleSlide() (TitleSlide, bool) {
	var (
		ts    TitleSlide
		found bool
	)
	for _, s := range o {
		if t, ok := s.(TitleSlide); ok {
			ts, found = t, true
		}
	}
	return ts, found
}

// TitleOverrides replaces title slide fields. Empty fields keep the
// outline's value.
type TitleOverrides struct {
	Title  string
	Author string
	Date   string
	Logo   string
}

// IsZero reports whether no field is overridden.
func (t TitleOverrides) IsZero() bool {
	return t == TitleOverrides{}
}

// WithTitleOverrides returns a copy of the outline whose effective (last)
// title slide carries the overrides. An outline without a title slide gets
// one only when every field is overridden; otherwise it is returned as is
// and rendering still fails with ErrMissingTitleSlide. The receiver is not
// modified.
func (o Outline) WithTitleOverrides(t TitleOverrides) Outline {
	if t.IsZero() {
		return o
	}

	idx := -1
	for i := len(o) - 1; i >= 0; i-- {
		if _, ok := o[i].(TitleSlide); ok {
			idx = i
			break
		}
	}
	if idx < 0 {
		if !t.complete() {
			return o
		}
		out := make(Outline, len(o), len(o)+1)
		copy(out, o)
		return append(out, TitleSlide(t))
	}

	merged := o[idx].(TitleSlide)
	if t.Title != "" {
		merged.Title = t.Title
	}
	if t.Author != "" {
		merged.Author = t.Author
	}
	if t.Date != "" {
		merged.Date = t.Date
	}
	if t.Logo != "" {
		merged.Logo = t.Logo
	}

	out := make(Outline, len(o))
	copy(out, o)
	out[idx] = merged
	return out
}

func (t TitleOverrides) complete() bool {
	return t.Title != "" && t.Author != "" && t.Date != "" && t.Logo != ""
}
