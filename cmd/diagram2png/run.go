package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	diagram2png "github.com/promokit/go-diagram2png"
	"github.com/promokit/go-diagram2png/internal/diagram"
	"github.com/promokit/go-diagram2png/internal/scheme"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput       = errors.New("usage: diagram2png [flags] <diagram.yaml | page.html | directory>")
	ErrReadInput     = errors.New("failed to read input file")
	ErrUnknownPreset = errors.New("unknown preset")
	ErrEmptyBatch    = errors.New("directory contains no diagram documents")
)

// exportRunner is the interface run uses to export; satisfied by both
// Exporter and ExportPool.
type exportRunner interface {
	Export(ctx context.Context, html string, opts diagram2png.ExportOptions) (string, error)
}

// run executes the CLI: list modes, single-file export, or batch export
// over a directory.
func run(ctx context.Context, flags *cliFlags, args []string, runner exportRunner, stdout io.Writer) error {
	switch {
	case flags.version:
		fmt.Fprintf(stdout, "diagram2png %s\n", Version)
		return nil
	case flags.listPresets:
		for _, name := range diagram2png.ListPresets() {
			p := diagram2png.GetPreset(name)
			fmt.Fprintf(stdout, "%-18s %s\n", name, p.Description)
		}
		return nil
	case flags.listSchemes:
		for _, name := range scheme.List() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	if len(args) == 0 {
		return ErrNoInput
	}

	inputs, batch, err := collectInputs(args[0])
	if err != nil {
		return err
	}

	if !batch {
		return exportOne(ctx, flags, inputs[0], outputPathFor(flags, inputs[0], batch), flags.htmlOut, runner, stdout)
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, input := range inputs {
		wg.Add(1)
		go func(input string) {
			defer wg.Done()
			// --html-out names a single file, so it only applies in single mode.
			err := exportOne(ctx, flags, input, outputPathFor(flags, input, batch), "", runner, stdout)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", input, err))
				mu.Unlock()
			}
		}(input)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// collectInputs resolves the input argument to a list of files. A
// directory yields all .yaml/.yml/.html files inside it (batch mode).
func collectInputs(path string) (inputs []string, batch bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrReadInput, path, err)
	}
	if !info.IsDir() {
		return []string{path}, false, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrReadInput, path, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml", ".html", ".htm":
			inputs = append(inputs, filepath.Join(path, entry.Name()))
		}
	}
	if len(inputs) == 0 {
		return nil, false, fmt.Errorf("%w: %s", ErrEmptyBatch, path)
	}
	sort.Strings(inputs)
	return inputs, true, nil
}

// outputPathFor derives the PNG path for an input. In single mode --out
// names the file; in batch mode it names the directory.
func outputPathFor(flags *cliFlags, input string, batch bool) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".png"
	if !batch {
		if flags.out != "" {
			return flags.out
		}
		return filepath.Join(filepath.Dir(input), base)
	}
	dir := flags.out
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base)
}

// exportOne renders one input to HTML and exports it.
func exportOne(ctx context.Context, flags *cliFlags, input, output, htmlOut string, runner exportRunner, stdout io.Writer) error {
	html, err := loadHTML(flags, input)
	if err != nil {
		return err
	}

	opts, err := buildOptions(flags, output, htmlOut)
	if err != nil {
		return err
	}

	if _, err := runner.Export(ctx, html, opts); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Created %s\n", output)
	return nil
}

// loadHTML reads the input: raw HTML files pass through, anything else
// is parsed as a diagram document and rendered.
func loadHTML(flags *cliFlags, path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-supplied input path is intentional
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrReadInput, path, err)
	}

	switch filepath.Ext(path) {
	case ".html", ".htm":
		return string(data), nil
	}

	doc, err := diagram.Parse(data)
	if err != nil {
		return "", err
	}

	sch, err := resolveScheme(flags, doc)
	if err != nil {
		return "", err
	}

	return diagram.NewRenderer().Render(doc, sch)
}

// resolveScheme picks the color scheme: the --scheme flag wins over the
// document, which wins over the default. Values containing a path
// separator load from disk, everything else from the embedded set.
func resolveScheme(flags *cliFlags, doc *diagram.Document) (*scheme.Scheme, error) {
	name := flags.scheme
	if name == "" {
		name = doc.Scheme
	}
	if name == "" {
		name = scheme.DefaultScheme
	}
	if strings.ContainsAny(name, `/\`) {
		return scheme.LoadFile(name)
	}
	return scheme.Load(name)
}

// buildOptions assembles ExportOptions from the preset (if any) with
// explicit flags layered on top.
func buildOptions(flags *cliFlags, output, htmlOut string) (diagram2png.ExportOptions, error) {
	var opts diagram2png.ExportOptions
	if flags.preset != "" {
		p := diagram2png.GetPreset(flags.preset)
		if p == nil {
			return opts, fmt.Errorf("%w: %q (see --list-presets)", ErrUnknownPreset, flags.preset)
		}
		opts = p.Options(output)
	} else {
		opts.OutputPath = output
	}

	if flags.width > 0 {
		opts.ViewportWidth = flags.width
	}
	if flags.height > 0 {
		opts.ViewportHeight = flags.height
	}
	if flags.scale > 0 {
		opts.DeviceScaleFactor = flags.scale
	}
	if flags.cropMode != "" {
		opts.CropMode = flags.cropMode
	}
	if flags.paddingMode != "" {
		opts.PaddingMode = flags.paddingMode
	}
	if flags.padding > 0 {
		opts.PaddingMode = ""
		opts.Padding = flags.padding
	}
	opts.HTMLPath = htmlOut
	opts.OmitBackground = flags.omitBackground

	return opts, nil
}
