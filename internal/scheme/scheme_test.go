package scheme_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/promokit/go-diagram2png/internal/scheme"
)

func TestLoad_EmbeddedSchemes(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"slate", "paper", "meadow"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s, err := scheme.Load(name)
			if err != nil {
				t.Fatalf("Load(%q) error = %v", name, err)
			}
			if s.Name != name {
				t.Errorf("Name = %q, want %q", s.Name, name)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("embedded scheme invalid: %v", err)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		scheme  string
		wantErr error
	}{
		{name: "unknown scheme", scheme: "neon", wantErr: scheme.ErrSchemeNotFound},
		{name: "empty name", scheme: "", wantErr: scheme.ErrInvalidName},
		{name: "path traversal", scheme: "../etc/passwd", wantErr: scheme.ErrInvalidName},
		{name: "path separator", scheme: "a/b", wantErr: scheme.ErrInvalidName},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := scheme.Load(tt.scheme); !errors.Is(err, tt.wantErr) {
				t.Errorf("Load(%q) error = %v, want %v", tt.scheme, err, tt.wantErr)
			}
		})
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	want := []string{"meadow", "paper", "slate"}
	if got := scheme.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `name: custom
background: "#000000"
surface: "#111111"
primary: "#ff0000"
accent: "#00ff00"
text: "#ffffff"
muted: "#888888"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := scheme.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if s.Primary != "#ff0000" {
		t.Errorf("Primary = %q, want %q", s.Primary, "#ff0000")
	}
}

func TestLoadFile_InvalidColor(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	content := `name: bad
background: "blueish"
surface: "#111111"
primary: "#ff0000"
accent: "#00ff00"
text: "#ffffff"
muted: "#888888"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := scheme.LoadFile(path); !errors.Is(err, scheme.ErrInvalidColor) {
		t.Errorf("LoadFile() error = %v, want ErrInvalidColor", err)
	}
}

func TestScheme_Validate(t *testing.T) {
	t.Parallel()

	valid := scheme.Scheme{
		Name:       "x",
		Background: "#000",
		Surface:    "#ffffff",
		Primary:    "#ff000080",
		Accent:     "#0f0",
		Text:       "#fff",
		Muted:      "#888888",
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v for valid scheme", err)
	}

	missing := valid
	missing.Accent = ""
	if err := missing.Validate(); !errors.Is(err, scheme.ErrMissingRequired) {
		t.Errorf("Validate() error = %v, want ErrMissingRequired", err)
	}

	malformed := valid
	malformed.Text = "white"
	if err := malformed.Validate(); !errors.Is(err, scheme.ErrInvalidColor) {
		t.Errorf("Validate() error = %v, want ErrInvalidColor", err)
	}
}

func TestScheme_Font(t *testing.T) {
	t.Parallel()

	var s scheme.Scheme
	if s.Font() == "" {
		t.Error("Font() returned empty fallback")
	}

	s.FontFamily = "Inter, sans-serif"
	if s.Font() != "Inter, sans-serif" {
		t.Errorf("Font() = %q, want explicit stack", s.Font())
	}
}
