// Package assets provides the LaTeX templates used to assemble decks and the
// CSS styles used for handouts.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// Deck templates (deck, titleslide, timeline) are always read from the
// EmbeddedLoader: the Beamer theme, colors and package list are fixed at
// build time. Handout styles go through an AssetResolver so a team can drop
// its own handout.css into an asset directory.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}.tex
//
// # Security
//
// Asset names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
