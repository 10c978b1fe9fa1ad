package scheme

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

//go:embed schemes/*.yaml
var schemes embed.FS

// Load loads an embedded color scheme by name (without extension).
// Returns ErrSchemeNotFound if no embedded scheme has that name.
func Load(name string) (*Scheme, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	data, err := schemes.ReadFile("schemes/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrSchemeNotFound, name)
	}
	return parse(data)
}

// LoadFile loads a color scheme from a YAML file on disk.
func LoadFile(path string) (*Scheme, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-supplied scheme path is intentional
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSchemeNotFound, path, err)
	}
	return parse(data)
}

// List returns the embedded scheme names in sorted order.
func List() []string {
	entries, err := schemes.ReadDir("schemes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

func parse(data []byte) (*Scheme, error) {
	var s Scheme
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemeParse, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
