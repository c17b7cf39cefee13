package sprintdeck_test

import (
	"fmt"
	"strings"

	"github.com/alnah/go-sprintdeck"
)

// Example renders a small outline built in Go.
func Example() {
	outline := sprintdeck.Outline{
		sprintdeck.TitleSlide{Title: "Sprint 7", Author: "Team A", Date: "2023-04-01", Logo: "logo.png"},
		sprintdeck.QAndA{Description: "Open floor."},
	}

	doc, err := sprintdeck.Render(outline)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	start := strings.Index(doc, `\begin{frame}{Q&A}`)
	fmt.Println(doc[start : start+len("\\begin{frame}{Q&A}\nOpen floor.\n\\end{frame}")])
	// Output:
	// \begin{frame}{Q&A}
	// Open floor.
	// \end{frame}
}

// ExampleParseOutline decodes a YAML outline.
func ExampleParseOutline() {
	outline, err := sprintdeck.ParseOutline([]byte(`
- title_slide: {title: Sprint 7, author: Team A, date: 2023-04-01, logo: logo.png}
- accomplishments:
    - Shipped API v2
- retro: [not a known tag]
`))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, s := range outline {
		fmt.Println(s.Tag())
	}
	// Output:
	// title_slide
	// accomplishments
	// retro
}

// ExampleDeck_RenderResult inspects the parts of a rendered deck.
func ExampleDeck_RenderResult() {
	deck, err := sprintdeck.NewDeck()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res, err := deck.RenderResult(sprintdeck.Outline{
		sprintdeck.TitleSlide{Title: "Sprint 7", Author: "Team A", Date: "2023-04-01", Logo: "logo.png"},
		sprintdeck.NextSprint{Items: []string{"Billing", "SSO"}},
		sprintdeck.UnknownSection{Name: "retro"},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(res.Fragments[0])
	fmt.Println("skipped:", res.Skipped)
	// Output:
	// \begin{frame}{On Deck for the Next Sprint}\begin{itemize}
	// \item Billing
	// \item SSO
	// \end{itemize}\end{frame}
	// skipped: [retro]
}

// ExampleHandout_Markdown renders a handout without a browser.
func ExampleHandout_Markdown() {
	h, err := sprintdeck.NewHandout()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer h.Close()

	md, err := h.Markdown(sprintdeck.Outline{
		sprintdeck.TitleSlide{Title: "Sprint 7", Author: "Team A", Date: "2023-04-01", Logo: "logo.png"},
		sprintdeck.ConcernsOrRisks{Items: []string{"Vendor delay"}},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Print(md)
	// Output:
	// # Sprint 7
	//
	// _Team A · 2023-04-01_
	//
	// ## Concerns and Risks
	//
	// - Vendor delay
}
