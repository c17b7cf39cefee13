package sprintdeck

import (
	"text/template"

	"github.com/alnah/go-sprintdeck/internal/assets"
)

// fragmentSeparator joins content frames.
const fragmentSeparator = "\n"

// assembleDocument wraps the title slide preamble and the joined frames in
// the Beamer document: class and packages, theme colors, preamble, the
// \titlepage frame, content, and \end{document}. Only the two arguments vary.
func assembleDocument(t *template.Template, preamble, content string) (string, error) {
	doc, err := executeTemplate(t, assets.DeckTemplate, struct {
		Preamble string
		Content  string
	}{
		Preamble: preamble,
		Content:  content,
	})
	if err != nil {
		return "", err
	}
	return doc + "\n", nil
}
