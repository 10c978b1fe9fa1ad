package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	diagram2png "github.com/promokit/go-diagram2png"
)

// fakeRunner records exports without touching a browser.
type fakeRunner struct {
	mu    sync.Mutex
	calls []diagram2png.ExportOptions
	htmls []string
	err   error
}

func (f *fakeRunner) Export(ctx context.Context, html string, opts diagram2png.ExportOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, opts)
	f.htmls = append(f.htmls, html)
	if f.err != nil {
		return "", f.err
	}
	return opts.OutputPath, nil
}

const testDoc = `title: Test
sections:
  - type: cards
    cards:
      - title: One
        body: hello
`

func writeTestDoc(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(testDoc), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_ListPresets(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := run(context.Background(), &cliFlags{listPresets: true}, nil, &fakeRunner{}, &out)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	for _, want := range []string{"og-card", "x-post", "instagram-square"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing preset %q", want)
		}
	}
}

func TestRun_ListSchemes(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := run(context.Background(), &cliFlags{listSchemes: true}, nil, &fakeRunner{}, &out)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out.String(), "slate") {
		t.Error("output missing built-in scheme")
	}
}

func TestRun_NoInput(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &cliFlags{}, nil, &fakeRunner{}, &bytes.Buffer{})
	if !errors.Is(err, ErrNoInput) {
		t.Errorf("run() error = %v, want ErrNoInput", err)
	}
}

func TestRun_SingleDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeTestDoc(t, dir, "pitch.yaml")
	runner := &fakeRunner{}
	var out bytes.Buffer

	err := run(context.Background(), &cliFlags{}, []string{input}, runner, &out)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("exports = %d, want 1", len(runner.calls))
	}
	wantOut := filepath.Join(dir, "pitch.png")
	if runner.calls[0].OutputPath != wantOut {
		t.Errorf("OutputPath = %q, want %q", runner.calls[0].OutputPath, wantOut)
	}
	if !strings.Contains(runner.htmls[0], "diagram-root") {
		t.Error("document was not rendered to HTML")
	}
	if !strings.Contains(out.String(), "Created "+wantOut) {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestRun_RawHTMLPassesThrough(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "page.html")
	if err := os.WriteFile(input, []byte("<html><body>raw</body></html>"), 0o600); err != nil {
		t.Fatal(err)
	}
	runner := &fakeRunner{}

	err := run(context.Background(), &cliFlags{}, []string{input}, runner, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if runner.htmls[0] != "<html><body>raw</body></html>" {
		t.Errorf("HTML was rewritten: %q", runner.htmls[0])
	}
}

func TestRun_Batch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestDoc(t, dir, "a.yaml")
	writeTestDoc(t, dir, "b.yaml")
	outDir := t.TempDir()
	runner := &fakeRunner{}

	err := run(context.Background(), &cliFlags{out: outDir}, []string{dir}, runner, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if len(runner.calls) != 2 {
		t.Fatalf("exports = %d, want 2", len(runner.calls))
	}
	outputs := map[string]bool{}
	for _, call := range runner.calls {
		outputs[call.OutputPath] = true
	}
	for _, want := range []string{
		filepath.Join(outDir, "a.png"),
		filepath.Join(outDir, "b.png"),
	} {
		if !outputs[want] {
			t.Errorf("missing output %q in %v", want, outputs)
		}
	}
}

func TestRun_BatchCollectsErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestDoc(t, dir, "a.yaml")
	writeTestDoc(t, dir, "b.yaml")
	runner := &fakeRunner{err: diagram2png.ErrBrowserLaunch}

	err := run(context.Background(), &cliFlags{}, []string{dir}, runner, &bytes.Buffer{})
	if !errors.Is(err, diagram2png.ErrBrowserLaunch) {
		t.Errorf("run() error = %v, want wrapped ErrBrowserLaunch", err)
	}
}

func TestRun_EmptyDirectory(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &cliFlags{}, []string{t.TempDir()}, &fakeRunner{}, &bytes.Buffer{})
	if !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("run() error = %v, want ErrEmptyBatch", err)
	}
}

func TestBuildOptions_PresetWithOverrides(t *testing.T) {
	t.Parallel()

	flags := &cliFlags{preset: "x-post", scale: 3, cropMode: "tight"}
	opts, err := buildOptions(flags, "out.png", "")
	if err != nil {
		t.Fatalf("buildOptions() error = %v", err)
	}
	if opts.ViewportWidth != 1600 || opts.ViewportHeight != 900 {
		t.Errorf("viewport = %dx%d, want preset 1600x900", opts.ViewportWidth, opts.ViewportHeight)
	}
	if opts.DeviceScaleFactor != 3 {
		t.Errorf("scale = %d, want flag override 3", opts.DeviceScaleFactor)
	}
	if opts.CropMode != "tight" {
		t.Errorf("crop = %q, want flag override", opts.CropMode)
	}
}

func TestBuildOptions_UnknownPreset(t *testing.T) {
	t.Parallel()

	_, err := buildOptions(&cliFlags{preset: "tiktok"}, "out.png", "")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("buildOptions() error = %v, want ErrUnknownPreset", err)
	}
}

// An explicit --padding overrides the preset's padding mode.
func TestBuildOptions_ExplicitPaddingWins(t *testing.T) {
	t.Parallel()

	opts, err := buildOptions(&cliFlags{preset: "x-post", padding: 5}, "out.png", "")
	if err != nil {
		t.Fatalf("buildOptions() error = %v", err)
	}
	if opts.PaddingMode != "" || opts.Padding != 5 {
		t.Errorf("padding = (%q, %d), want (\"\", 5)", opts.PaddingMode, opts.Padding)
	}
}

func TestOutputPathFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags cliFlags
		input string
		batch bool
		want  string
	}{
		{
			name:  "single with explicit out",
			flags: cliFlags{out: "custom.png"},
			input: "docs/pitch.yaml",
			want:  "custom.png",
		},
		{
			name:  "single derives from input",
			input: "docs/pitch.yaml",
			want:  filepath.Join("docs", "pitch.png"),
		},
		{
			name:  "batch uses out directory",
			flags: cliFlags{out: "dist"},
			input: "docs/pitch.yaml",
			batch: true,
			want:  filepath.Join("dist", "pitch.png"),
		},
		{
			name:  "batch without out stays beside input",
			input: "docs/pitch.yaml",
			batch: true,
			want:  filepath.Join("docs", "pitch.png"),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := outputPathFor(&tt.flags, tt.input, tt.batch); got != tt.want {
				t.Errorf("outputPathFor() = %q, want %q", got, tt.want)
			}
		})
	}
}
