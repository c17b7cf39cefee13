// Package sprintdeck renders a sprint review outline into a LaTeX Beamer
// slide deck, and optionally into a speaker handout.
//
// # Quick Start
//
// Load an outline and render it:
//
//	outline, err := sprintdeck.LoadOutline("outline.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc, err := sprintdeck.Render(outline)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(doc)
//
// Compile the result with any Beamer-capable engine (latexmk, pdflatex,
// xelatex, lualatex). The metropolis theme and pgfgantt must be installed.
//
// # Outline Format
//
// An outline is a YAML list. Each item maps one section tag to its payload:
//
//	- title_slide:
//	    title: Sprint 7
//	    author: Team A
//	    date: 2023-04-01
//	    logo: logo.png
//	- accomplishments:
//	    - Shipped API v2
//	- q_and_a:
//	    description: Open floor.
//
// Recognized tags are title_slide, project_timeline, accomplishments, demo,
// next_sprint, concerns_or_risks, q_and_a and project_summary. Every tag
// except title_slide becomes one frame, in outline order. Unknown tags are
// skipped unless the deck is built with WithStrictTags.
//
// Payload strings are copied into the document verbatim. LaTeX special
// characters are not escaped, so an outline may carry its own markup.
//
// # Sections as Values
//
// Outlines can be built in Go without YAML:
//
//	outline := sprintdeck.Outline{
//	    sprintdeck.TitleSlide{Title: "Sprint 7", Author: "Team A", Date: "2023-04-01", Logo: "logo.png"},
//	    sprintdeck.Accomplishments{Items: []string{"Shipped API v2"}},
//	}
//
// # Handouts
//
// A Handout renders the same outline as Markdown, HTML, or PDF. PDF output
// uses headless Chrome via go-rod; call Close when done:
//
//	h, err := sprintdeck.NewHandout(sprintdeck.WithHandoutTimeout(time.Minute))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer h.Close()
//	pdf, err := h.PDF(ctx, outline)
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package sprintdeck
