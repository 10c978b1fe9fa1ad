package diagram2png

import "math"

// Crop mode constants.
const (
	CropNone  = "none"  // ship the full-page capture verbatim
	CropSafe  = "safe"  // crop to detected content with full padding
	CropTight = "tight" // crop to detected content with halved padding
)

// Padding mode constants.
const (
	PaddingModeNone        = "none"
	PaddingModeMinimal     = "minimal"
	PaddingModeComfortable = "comfortable"
)

// Padding constants in CSS pixels per padding mode.
const (
	paddingNonePx        = 0
	paddingMinimalPx     = 8
	paddingComfortablePx = 20
)

// Policy bundles a crop mode and a padding mode. Values are plain data
// and safe to share; DefaultPolicy is the process-wide default, callers
// override per export via ExportOptions.
type Policy struct {
	CropMode    string
	PaddingMode string
}

// DefaultPolicy is used when an export specifies no explicit policy.
var DefaultPolicy = Policy{CropMode: CropSafe, PaddingMode: PaddingModeMinimal}

// ResolvePadding maps the padding mode to its pixel constant.
// Unknown modes resolve to the minimal baseline; this is a total
// function with no failure mode.
func (p Policy) ResolvePadding() int {
	switch p.PaddingMode {
	case PaddingModeNone:
		return paddingNonePx
	case PaddingModeComfortable:
		return paddingComfortablePx
	default:
		return paddingMinimalPx
	}
}

// NormalizeCropMode sanitizes a crop mode string. Config values are
// never rejected: anything outside {none, safe, tight} becomes safe.
func NormalizeCropMode(mode string) string {
	switch mode {
	case CropNone, CropSafe, CropTight:
		return mode
	default:
		return CropSafe
	}
}

// EffectivePadding returns the padding to apply for a crop mode.
// Tight mode halves the padding (rounded); safe and none use it as-is.
func EffectivePadding(mode string, padding int) int {
	if padding < 0 {
		padding = 0
	}
	if NormalizeCropMode(mode) == CropTight {
		return int(math.Round(float64(padding) / 2))
	}
	return padding
}
