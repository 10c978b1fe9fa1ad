package diagram2png

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyHTML      = errors.New("HTML content cannot be empty")
	ErrBrowserLaunch  = errors.New("failed to launch browser")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrScreenshot     = errors.New("screenshot capture failed")
	ErrOutputDir      = errors.New("failed to create output directory")
	ErrEmptyOutput    = errors.New("output path cannot be empty")
	ErrWritePNG       = errors.New("failed to write PNG file")

	// Crop pipeline errors. The orchestrator recovers from these by
	// shipping the uncropped capture; they surface only in diagnostics.
	ErrDetectContent = errors.New("content detection failed")
	ErrDecodeImage   = errors.New("failed to decode screenshot")
	ErrCropImage     = errors.New("failed to crop screenshot")

	// Export option validation errors.
	ErrInvalidViewport = errors.New("invalid viewport dimensions")
	ErrInvalidScale    = errors.New("invalid device scale factor")
	ErrInvalidPadding  = errors.New("invalid padding")
)
