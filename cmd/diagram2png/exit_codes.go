package main

import (
	"errors"
	"os"

	diagram2png "github.com/promokit/go-diagram2png"
	"github.com/promokit/go-diagram2png/internal/diagram"
	"github.com/promokit/go-diagram2png/internal/scheme"
)

// Exit codes for the diagram2png CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful export
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, document, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, diagram2png.ErrBrowserLaunch) ||
		errors.Is(err, diagram2png.ErrBrowserConnect) ||
		errors.Is(err, diagram2png.ErrPageCreate) ||
		errors.Is(err, diagram2png.ErrPageLoad) ||
		errors.Is(err, diagram2png.ErrScreenshot) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, diagram2png.ErrOutputDir) ||
		errors.Is(err, diagram2png.ErrWritePNG) ||
		errors.Is(err, ErrReadInput) {
		return ExitIO
	}

	// Usage and validation errors (exit 2)
	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrUnknownPreset) ||
		errors.Is(err, ErrEmptyBatch) ||
		errors.Is(err, diagram2png.ErrEmptyHTML) ||
		errors.Is(err, diagram2png.ErrEmptyOutput) ||
		errors.Is(err, diagram2png.ErrInvalidViewport) ||
		errors.Is(err, diagram2png.ErrInvalidScale) ||
		errors.Is(err, diagram2png.ErrInvalidPadding) ||
		errors.Is(err, diagram.ErrDocumentParse) ||
		errors.Is(err, diagram.ErrEmptyDocument) ||
		errors.Is(err, diagram.ErrUnknownSectionType) ||
		errors.Is(err, diagram.ErrSectionContent) ||
		errors.Is(err, scheme.ErrSchemeNotFound) ||
		errors.Is(err, scheme.ErrSchemeParse) ||
		errors.Is(err, scheme.ErrInvalidColor) ||
		errors.Is(err, scheme.ErrInvalidName) {
		return ExitUsage
	}

	return ExitGeneral
}
