package diagram2png

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/promokit/go-diagram2png/internal/fileutil"
)

// Exporter renders HTML documents to PNG files through a headless
// browser. Create with NewExporter; an Exporter is safe for concurrent
// use since every Export call acquires its own browser session.
type Exporter struct {
	cfg      exporterConfig
	capturer pageCapturer
}

// NewExporter creates an Exporter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithLogger).
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		cfg: exporterConfig{
			timeout:     defaultTimeout,
			settleDelay: defaultSettleDelay,
			logger:      slog.Default(),
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	// Create the rod capturer if not injected (e.g., by tests).
	if e.capturer == nil {
		e.capturer = &rodCapturer{
			sessions:    newRodSessionManager(e.cfg.logger),
			timeout:     e.cfg.timeout,
			settleDelay: e.cfg.settleDelay,
		}
	}

	return e
}

// Export renders html at the requested viewport and writes a PNG to
// opts.OutputPath, cropped to the detected content region unless the
// crop mode is "none". Crop-related failures degrade to the uncropped
// capture with a diagnostic; only missing dependencies, exhausted
// browser launch, and filesystem errors are fatal. Returns the output
// path on success.
//
// Temporary files created by the call are removed on every exit path.
// When opts.HTMLPath is set the caller owns that file and it is kept.
func (e *Exporter) Export(ctx context.Context, html string, opts ExportOptions) (string, error) {
	if html == "" {
		return "", ErrEmptyHTML
	}
	if opts.OutputPath == "" {
		return "", ErrEmptyOutput
	}
	opts.applyDefaults()
	if err := opts.validate(); err != nil {
		return "", err
	}

	if dir := filepath.Dir(opts.OutputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return "", fmt.Errorf("%w: %v", ErrOutputDir, err)
		}
	}

	mode := NormalizeCropMode(opts.CropMode)

	htmlPath := opts.HTMLPath
	if htmlPath == "" {
		path, cleanup, err := fileutil.WriteTempFile(html, "html")
		if err != nil {
			return "", fmt.Errorf("writing HTML: %w", err)
		}
		defer cleanup()
		htmlPath = path
	} else {
		if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
			return "", fmt.Errorf("writing HTML to %s: %w", htmlPath, err)
		}
		// The capturer navigates to file://<path>, which needs an
		// absolute path; a relative one would parse as the URL host.
		abs, err := filepath.Abs(htmlPath)
		if err != nil {
			return "", fmt.Errorf("resolving HTML path %s: %w", htmlPath, err)
		}
		htmlPath = abs
	}

	res, err := e.capturer.capture(ctx, htmlPath, captureOptions{
		width:          opts.ViewportWidth,
		height:         opts.ViewportHeight,
		scale:          opts.DeviceScaleFactor,
		omitBackground: opts.OmitBackground,
		detect:         mode != CropNone,
	})
	if err != nil {
		return "", err
	}

	pngPath, cleanup, err := fileutil.WriteTempBytes(res.png, "png")
	if err != nil {
		return "", fmt.Errorf("writing screenshot: %w", err)
	}
	defer cleanup()

	if mode == CropNone {
		if err := copyFile(pngPath, opts.OutputPath); err != nil {
			return "", err
		}
		return opts.OutputPath, nil
	}

	if err := e.writeCropped(pngPath, mode, res, &opts); err != nil {
		return "", err
	}
	return opts.OutputPath, nil
}

// writeCropped produces the final output from the raw capture. Every
// crop-related ambiguity falls back to the uncropped capture with a
// diagnostic; errors returned here are filesystem failures only.
func (e *Exporter) writeCropped(pngPath, mode string, res *captureResult, opts *ExportOptions) error {
	logger := e.cfg.logger

	if res.detectErr != nil {
		logger.Warn("content detection failed, exporting uncropped",
			"output", opts.OutputPath, "error", res.detectErr)
		return copyFile(pngPath, opts.OutputPath)
	}
	if res.box == nil {
		logger.Debug("no visible content region detected, exporting uncropped",
			"output", opts.OutputPath)
		return copyFile(pngPath, opts.OutputPath)
	}

	img, err := decodePNG(pngPath)
	if err != nil {
		logger.Warn("screenshot decode failed, exporting uncropped",
			"output", opts.OutputPath, "error", err)
		return copyFile(pngPath, opts.OutputPath)
	}

	padding := EffectivePadding(mode, opts.resolvePadding())
	bounds := img.Bounds()
	box := ComputeCropBox(res.box, bounds.Dx(), bounds.Dy(), opts.DeviceScaleFactor, padding)
	if box == nil {
		logger.Debug("degenerate content region, exporting uncropped",
			"output", opts.OutputPath)
		return copyFile(pngPath, opts.OutputPath)
	}

	return cropToFile(opts.OutputPath, img, box)
}

// copyFile writes src's content to dst.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src) // #nosec G304 -- src is a temp file this package created
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWritePNG, err)
	}
	if err := os.WriteFile(dst, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePNG, err)
	}
	return nil
}
