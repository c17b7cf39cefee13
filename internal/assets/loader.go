package assets

// Built-in asset names.
const (
	DeckTemplate       = "deck"
	TitleSlideTemplate = "titleslide"
	TimelineTemplate   = "timeline"
	HandoutStyle       = "handout"
)

// AssetLoader defines the contract for loading CSS styles and LaTeX templates.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads a LaTeX template by name (without .tex extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}
