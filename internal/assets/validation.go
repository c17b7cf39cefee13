package assets

import "fmt"

// MaxAssetNameLength bounds style and template names.
const MaxAssetNameLength = 100

// ValidateAssetName checks a bare style or template name such as "handout"
// or "timeline". The loaders add the directory and extension themselves
// (styles/NAME.css, templates/NAME.tex), so only ASCII letters, digits,
// '-' and '_' are accepted. Anything else, including separators, dots and
// spaces, yields ErrInvalidAssetName.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxAssetNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrInvalidAssetName, len(name), MaxAssetNameLength)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q (use letters, digits, '-' or '_')", ErrInvalidAssetName, name)
		}
	}
	return nil
}
