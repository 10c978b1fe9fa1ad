package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promokit/go-diagram2png/internal/fileutil"
)

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{name: "valid extension html", extension: "html", wantErr: nil},
		{name: "valid extension png", extension: "png", wantErr: nil},
		{name: "empty extension", extension: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "forward slash", extension: "a/b", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash", extension: `a\b`, wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte", extension: "png\x00", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) error = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	path, cleanup, err := fileutil.WriteTempFile("<html></html>", "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}
	defer cleanup()

	if !strings.Contains(filepath.Base(path), "diagram2png-") {
		t.Errorf("path %q does not contain the process-unique prefix", path)
	}
	if !strings.HasSuffix(path, ".html") {
		t.Errorf("path %q does not have the .html extension", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("content = %q, want %q", data, "<html></html>")
	}
}

func TestWriteTempBytes_Cleanup(t *testing.T) {
	t.Parallel()

	path, cleanup, err := fileutil.WriteTempBytes([]byte{0x89, 'P', 'N', 'G'}, "png")
	if err != nil {
		t.Fatalf("WriteTempBytes() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("temp file does not exist: %v", err)
	}

	cleanup()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("temp file still exists after cleanup at %s", path)
	}
}

// Concurrent writes must never hand out the same path.
func TestWriteTempFile_UniquePaths(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		path, cleanup, err := fileutil.WriteTempFile("x", "html")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}
		defer cleanup()
		if seen[path] {
			t.Fatalf("duplicate temp path %s", path)
		}
		seen[path] = true
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(regular file) = false, want true")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(directory) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true, want false")
	}
}
