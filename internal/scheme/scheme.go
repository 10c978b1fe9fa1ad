// Package scheme provides color schemes for diagram rendering.
// Schemes can be loaded from embedded defaults or custom YAML files.
package scheme

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Sentinel errors for scheme operations.
var (
	ErrSchemeNotFound  = errors.New("color scheme not found")
	ErrSchemeParse     = errors.New("failed to parse color scheme")
	ErrInvalidColor    = errors.New("invalid color value")
	ErrInvalidName     = errors.New("invalid scheme name")
	ErrMissingRequired = errors.New("scheme missing required color")
)

// DefaultScheme is the name of the built-in default scheme.
const DefaultScheme = "slate"

// Scheme holds the colors and typography a diagram is rendered with.
type Scheme struct {
	Name       string `yaml:"name"`
	Background string `yaml:"background"`
	Surface    string `yaml:"surface"`
	Primary    string `yaml:"primary"`
	Accent     string `yaml:"accent"`
	Text       string `yaml:"text"`
	Muted      string `yaml:"muted"`
	FontFamily string `yaml:"fontFamily"`
}

// defaultFontFamily is used when a scheme omits fontFamily.
const defaultFontFamily = `-apple-system, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif`

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Validate checks that all required colors are present and hex-formed.
func (s *Scheme) Validate() error {
	required := map[string]string{
		"background": s.Background,
		"surface":    s.Surface,
		"primary":    s.Primary,
		"accent":     s.Accent,
		"text":       s.Text,
		"muted":      s.Muted,
	}
	for field, value := range required {
		if value == "" {
			return fmt.Errorf("%w: %s", ErrMissingRequired, field)
		}
		if !hexColorRe.MatchString(value) {
			return fmt.Errorf("%w: %s=%q", ErrInvalidColor, field, value)
		}
	}
	return nil
}

// Font returns the scheme's font stack, falling back to the default.
func (s *Scheme) Font() string {
	if s.FontFamily == "" {
		return defaultFontFamily
	}
	return s.FontFamily
}

// ValidateName rejects names with path separators or traversal so a
// scheme name can never escape the schemes directory.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
