package sprintdeck

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml/ast"

	"github.com/alnah/go-sprintdeck/internal/yamlutil"
)

// LoadOutline reads and parses an outline file.
func LoadOutline(path string) (Outline, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- outline path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadOutline, err)
	}
	return ParseOutline(data)
}

// ParseOutline decodes a YAML outline: a list of mappings from section tag to
// payload. A record holding several recognized tags yields one section per
// tag, in the order of KnownTags; unrecognized tags become UnknownSection in
// name order. Scalars are kept as written, so `progress: 50.0` stays 50.0
// and `date: 2023-04-01` equals `date: "2023-04-01"`.
func ParseOutline(data []byte) (Outline, error) {
	var records []any
	if err := yamlutil.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutlineParse, err)
	}
	src, err := yamlutil.ParseFile(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutlineParse, err)
	}
	dec := outlineDecoder{src: src}

	var outline Outline
	for i, rec := range records {
		path := fmt.Sprintf("sections[%d]", i)

		m, ok := rec.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a mapping of tag to payload, got %s", ErrInvalidField, path, describeType(rec))
		}

		sections, err := dec.decodeRecord(path, m)
		if err != nil {
			return nil, err
		}
		outline = append(outline, sections...)
	}
	return outline, nil
}

// outlineDecoder maps decoded records to sections. It reads scalar text
// back from the syntax tree so numbers keep their source spelling.
type outlineDecoder struct {
	src *ast.File
}

func (d outlineDecoder) decodeRecord(path string, m map[string]any) ([]Section, error) {
	var sections []Section
	for _, tag := range recognizedTags {
		payload, ok := m[string(tag)]
		if !ok {
			continue
		}
		s, err := d.decodeSection(path+"."+string(tag), tag, payload)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}

	var unknown []string
	for key := range m {
		if !isRecognized(Tag(key)) {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		sections = append(sections, UnknownSection{Name: key})
	}

	return sections, nil
}

func isRecognized(tag Tag) bool {
	for _, t := range recognizedTags {
		if t == tag {
			return true
		}
	}
	return false
}

func (d outlineDecoder) decodeSection(path string, tag Tag, payload any) (Section, error) {
	switch tag {
	case TagTitleSlide:
		return d.decodeTitleSlide(path, payload)
	case TagProjectTimeline:
		entries, err := d.decodeTimeline(path, payload)
		return ProjectTimeline{Entries: entries}, err
	case TagAccomplishments:
		items, err := d.stringList(path, payload)
		return Accomplishments{Items: items}, err
	case TagDemo:
		return d.decodeDemo(path, payload)
	case TagNextSprint:
		items, err := d.stringList(path, payload)
		return NextSprint{Items: items}, err
	case TagConcernsOrRisks:
		items, err := d.stringList(path, payload)
		return ConcernsOrRisks{Items: items}, err
	case TagQAndA:
		fields, err := mapping(path, payload)
		if err != nil {
			return nil, err
		}
		desc, err := d.stringField(path, fields, "description")
		return QAndA{Description: desc}, err
	case TagProjectSummary:
		items, err := d.stringList(path, payload)
		return ProjectSummary{Items: items}, err
	}
	return UnknownSection{Name: string(tag)}, nil
}

func (d outlineDecoder) decodeTitleSlide(path string, payload any) (Section, error) {
	fields, err := mapping(path, payload)
	if err != nil {
		return nil, err
	}

	var ts TitleSlide
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"title", &ts.Title},
		{"author", &ts.Author},
		{"date", &ts.Date},
		{"logo", &ts.Logo},
	} {
		if *f.dst, err = d.stringField(path, fields, f.key); err != nil {
			return nil, err
		}
	}
	return ts, nil
}

func (d outlineDecoder) decodeDemo(path string, payload any) (Section, error) {
	fields, err := mapping(path, payload)
	if err != nil {
		return nil, err
	}

	var demo Demo
	if demo.Description, err = d.stringField(path, fields, "description"); err != nil {
		return nil, err
	}
	if demo.URL, err = d.stringField(path, fields, "url"); err != nil {
		return nil, err
	}
	if demo.LinkText, err = d.stringField(path, fields, "link_text"); err != nil {
		return nil, err
	}
	return demo, nil
}

func (d outlineDecoder) decodeTimeline(path string, payload any) ([]TimelineEntry, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, path)
	}
	list, ok := payload.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a list of timeline entries, got %s", ErrInvalidField, path, describeType(payload))
	}

	entries := make([]TimelineEntry, 0, len(list))
	for i, item := range list {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		fields, err := mapping(itemPath, item)
		if err != nil {
			return nil, err
		}

		var e TimelineEntry
		for _, f := range []struct {
			key string
			dst *string
		}{
			{"label", &e.Label},
			{"start", &e.Start},
			{"end", &e.End},
			{"progress", &e.Progress},
			{"color", &e.Color},
		} {
			if *f.dst, err = d.stringField(itemPath, fields, f.key); err != nil {
				return nil, err
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ---------------------------------------------------------------------------
// Field helpers
// ---------------------------------------------------------------------------

func mapping(path string, payload any) (map[string]any, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, path)
	}
	m, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a mapping, got %s", ErrInvalidField, path, describeType(payload))
	}
	return m, nil
}

func (d outlineDecoder) stringField(path string, fields map[string]any, key string) (string, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s.%s", ErrMissingField, path, key)
	}
	s, ok := d.text(path+"."+key, v)
	if !ok {
		return "", fmt.Errorf("%w: %s.%s must be a scalar, got %s", ErrInvalidField, path, key, describeType(v))
	}
	return s, nil
}

func (d outlineDecoder) stringList(path string, payload any) ([]string, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, path)
	}
	list, ok := payload.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a list, got %s", ErrInvalidField, path, describeType(payload))
	}

	items := make([]string, 0, len(list))
	for i, v := range list {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		s, ok := d.text(itemPath, v)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a scalar, got %s", ErrInvalidField, itemPath, describeType(v))
		}
		items = append(items, s)
	}
	return items, nil
}

// text returns the scalar at path as written in the source. Values the tree
// cannot resolve directly, such as aliases, fall back to the decoded value.
func (d outlineDecoder) text(path string, v any) (string, bool) {
	if _, ok := v.(map[string]any); ok {
		return "", false
	}
	if _, ok := v.([]any); ok {
		return "", false
	}
	if s, ok := yamlutil.ScalarAt(d.src, "$"+strings.TrimPrefix(path, "sections")); ok {
		return s, true
	}
	return scalarText(v)
}

// scalarText renders a decoded YAML scalar as text.
func scalarText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case time.Time:
		return x.Format(time.DateOnly), true
	case int, int32, int64, uint, uint32, uint64:
		return fmt.Sprint(x), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	}
	return "", false
}

func describeType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "mapping"
	case []any:
		return "list"
	}
	return fmt.Sprintf("%T", v)
}
