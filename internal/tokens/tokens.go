// Package tokens provides the tenant's design tokens (brand palette).
package tokens

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// DesignTokens holds the brand style constants a tenant configures.
type DesignTokens struct {
	Colors map[string]string `yaml:"colors" json:"colors"`
}

var hexPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// IsHex reports whether a value looks like a CSS hex color.
func IsHex(v string) bool {
	return hexPattern.MatchString(v)
}

// NormalizeHex lowercases a hex value for comparison.
func NormalizeHex(v string) string {
	return strings.ToLower(v)
}

// Primary returns the palette's primary color, or "" if none is named.
func (t *DesignTokens) Primary() string {
	if t == nil {
		return ""
	}
	return t.Colors["primary"]
}

// HasColor reports whether a hex value is in the palette, compared
// case-insensitively.
func (t *DesignTokens) HasColor(hex string) bool {
	if t == nil {
		return false
	}
	want := NormalizeHex(hex)
	for _, v := range t.Colors {
		if NormalizeHex(v) == want {
			return true
		}
	}
	return false
}

type tokensFile struct {
	Version int               `yaml:"version"`
	Colors  map[string]string `yaml:"colors"`
}

// Load reads design tokens from a YAML file.
func Load(path string) (*DesignTokens, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tokens file: %w", err)
	}

	var f tokensFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("failed to parse tokens YAML: %w", err)
	}

	if f.Version != 1 {
		return nil, fmt.Errorf("unsupported tokens version: %d", f.Version)
	}

	return &DesignTokens{Colors: f.Colors}, nil
}
