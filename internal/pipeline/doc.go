// Package pipeline implements the HTML stages of the speaker handout:
//   - Markdown to HTML conversion via Goldmark, with GFM tables and chroma
//     highlighting for the LaTeX source appendix
//   - CSS injection into the HTML document
//   - Footer injection
//
// PDF printing is handled by the root sprintdeck package using headless
// Chrome (go-rod).
package pipeline
