package diagram2png

import "sort"

// Preset is a fixed bundle of export parameters tuned for a publishing
// channel. Presets are immutable; GetPreset returns a copy.
type Preset struct {
	Name              string
	ViewportWidth     int
	ViewportHeight    int
	DeviceScaleFactor int
	CropMode          string
	PaddingMode       string
	Description       string
}

// presets is the fixed registry keyed by channel name. It is populated
// once at init and never mutated afterwards; no locking is required.
var presets = map[string]Preset{
	"og-card": {
		Name:              "og-card",
		ViewportWidth:     1200,
		ViewportHeight:    630,
		DeviceScaleFactor: 2,
		CropMode:          CropNone,
		PaddingMode:       PaddingModeNone,
		Description:       "Open Graph link preview card (1200x630 @2x, full frame)",
	},
	"x-post": {
		Name:              "x-post",
		ViewportWidth:     1600,
		ViewportHeight:    900,
		DeviceScaleFactor: 1,
		CropMode:          CropSafe,
		PaddingMode:       PaddingModeComfortable,
		Description:       "X/Twitter post image (16:9, cropped to content)",
	},
	"instagram-square": {
		Name:              "instagram-square",
		ViewportWidth:     1080,
		ViewportHeight:    1080,
		DeviceScaleFactor: 2,
		CropMode:          CropTight,
		PaddingMode:       PaddingModeMinimal,
		Description:       "Instagram square post (1080x1080 @2x, tight crop)",
	},
}

// ListPresets returns the registered preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPreset looks up a preset by exact name. Returns nil if the name is
// unknown or empty; it never errors.
func GetPreset(name string) *Preset {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	return &p
}
