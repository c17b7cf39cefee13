// Package yamlutil wraps YAML parsing to isolate the external dependency.
// Outline files and config files both go through here, so size limits and
// error formatting stay consistent.
package yamlutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func checkData(data []byte) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	return nil
}

func validateInput(data []byte, v any) error {
	if err := checkData(data); err != nil {
		return err
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v. Syntax errors carry the line/column and a
// short source excerpt so users can find the broken line in their outline.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %s", describe(err))
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %s", describe(err))
	}
	return nil
}

// ParseFile parses data into a syntax tree. Callers that need scalars as
// written (50.0 rather than 50) read them back with ScalarAt.
func ParseFile(data []byte) (*ast.File, error) {
	if err := checkData(data); err != nil {
		return nil, err
	}
	f, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %s", describe(err))
	}
	return f, nil
}

// ScalarAt returns the source text of the scalar at a YAMLPath such as
// "$[0].items[2].name". It reports false when the path does not resolve to
// a plain scalar, for example through an alias.
func ScalarAt(f *ast.File, path string) (string, bool) {
	if f == nil {
		return "", false
	}
	p, err := yaml.PathString(path)
	if err != nil {
		return "", false
	}
	node, err := p.FilterFile(f)
	if err != nil {
		return "", false
	}
	return scalarText(node)
}

func scalarText(node ast.Node) (string, bool) {
	switch n := node.(type) {
	case *ast.StringNode:
		return n.Value, true
	case *ast.LiteralNode:
		return n.Value.Value, true
	case *ast.TagNode:
		return scalarText(n.Value)
	case *ast.IntegerNode, *ast.FloatNode, *ast.BoolNode, *ast.InfinityNode, *ast.NanNode:
		return n.GetToken().Value, true
	}
	return "", false
}

// describe renders a goccy error with position info but without ANSI colors.
func describe(err error) string {
	return strings.TrimSpace(yaml.FormatError(err, false, true))
}
