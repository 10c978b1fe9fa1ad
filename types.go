package diagram2png

import (
	"fmt"
	"log/slog"
	"time"
)

// Default export parameters.
const (
	DefaultViewportWidth  = 1200
	DefaultViewportHeight = 800
	DefaultScaleFactor    = 2
)

// ExportOptions configures one export call.
type ExportOptions struct {
	// OutputPath is where the final PNG is written (required).
	OutputPath string

	// Viewport size in CSS pixels. Zero values use the defaults.
	ViewportWidth  int
	ViewportHeight int

	// DeviceScaleFactor multiplies CSS pixels into bitmap pixels.
	// Zero uses the default.
	DeviceScaleFactor int

	// CropMode is one of "none", "safe", "tight". Unknown values are
	// sanitized to "safe", never rejected.
	CropMode string

	// PaddingMode, when set, resolves the crop padding from the policy
	// table ("none", "minimal", "comfortable") and takes precedence
	// over Padding.
	PaddingMode string

	// Padding is the crop expansion in CSS pixels. Used only when
	// PaddingMode is empty.
	Padding int

	// HTMLPath, when set, is a caller-owned path the HTML is written
	// to instead of a temporary file. The caller keeps the file; the
	// export will not delete it.
	HTMLPath string

	// OmitBackground renders the page with a transparent background.
	OmitBackground bool
}

// Options returns ExportOptions pre-filled from the preset's viewport,
// scale, and crop parameters.
func (p *Preset) Options(outputPath string) ExportOptions {
	return ExportOptions{
		OutputPath:        outputPath,
		ViewportWidth:     p.ViewportWidth,
		ViewportHeight:    p.ViewportHeight,
		DeviceScaleFactor: p.DeviceScaleFactor,
		CropMode:          p.CropMode,
		PaddingMode:       p.PaddingMode,
	}
}

// applyDefaults fills zero-valued fields.
func (o *ExportOptions) applyDefaults() {
	if o.ViewportWidth == 0 {
		o.ViewportWidth = DefaultViewportWidth
	}
	if o.ViewportHeight == 0 {
		o.ViewportHeight = DefaultViewportHeight
	}
	if o.DeviceScaleFactor == 0 {
		o.DeviceScaleFactor = DefaultScaleFactor
	}
}

// validate checks option values after defaults are applied.
func (o *ExportOptions) validate() error {
	if o.ViewportWidth <= 0 || o.ViewportHeight <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, o.ViewportWidth, o.ViewportHeight)
	}
	if o.DeviceScaleFactor < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidScale, o.DeviceScaleFactor)
	}
	if o.Padding < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPadding, o.Padding)
	}
	return nil
}

// resolvePadding returns the base padding in CSS pixels, before the
// crop-mode adjustment. With neither PaddingMode nor Padding set the
// default policy applies; an explicit zero is expressed with the
// "none" padding mode.
func (o *ExportOptions) resolvePadding() int {
	if o.PaddingMode != "" {
		return Policy{PaddingMode: o.PaddingMode}.ResolvePadding()
	}
	if o.Padding > 0 {
		return o.Padding
	}
	return DefaultPolicy.ResolvePadding()
}

// Option configures an Exporter.
type Option func(*Exporter)

// exporterConfig holds internal configuration for Exporter.
type exporterConfig struct {
	timeout     time.Duration
	settleDelay time.Duration
	logger      *slog.Logger
}

// Timing defaults. settleDelay is the fixed grace period after the
// network settles, covering CSS animation and late layout.
const (
	defaultTimeout     = 30 * time.Second
	defaultSettleDelay = 250 * time.Millisecond
)

// WithTimeout sets the per-export navigation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("diagram2png: WithTimeout duration must be positive")
	}
	return func(e *Exporter) {
		e.cfg.timeout = d
	}
}

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(logger *slog.Logger) Option {
	if logger == nil {
		panic("diagram2png: WithLogger logger must not be nil")
	}
	return func(e *Exporter) {
		e.cfg.logger = logger
	}
}
