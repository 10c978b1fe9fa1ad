// Package diagram2png exports rendered HTML diagrams to PNG files using
// headless Chrome.
//
// # Quick Start
//
// Create an exporter and export an HTML document:
//
//	exp := diagram2png.NewExporter()
//
//	out, err := exp.Export(ctx, htmlDoc, diagram2png.ExportOptions{
//	    OutputPath: "out/card.png",
//	    CropMode:   diagram2png.CropSafe,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Export Pipeline
//
// Each export runs these stages:
//
//  1. Materialize the HTML to a temporary file
//  2. Acquire a browser through an ordered chain of launch strategies
//  3. Load the page at the requested viewport and device scale factor
//  4. Capture a full-page PNG screenshot
//  5. Detect the content region in-page and crop to it with padding
//
// Detection and cropping degrade gracefully: when no content region can
// be determined the full capture is shipped and the call still succeeds.
// Temporary files are removed on every exit path.
//
// # Presets
//
// Fixed per-channel parameter bundles are available through the preset
// registry:
//
//	if p := diagram2png.GetPreset("og-card"); p != nil {
//	    out, err = exp.Export(ctx, htmlDoc, p.Options("out/og.png"))
//	}
//
// # Browser Acquisition
//
// The exporter tries progressively more permissive launch strategies:
// default managed launch, an executable named by DIAGRAM2PNG_BROWSER_BIN,
// a system-installed browser, a sandboxless launch, and finally a
// user-mode launch. Rod downloads a managed Chromium on first use when
// none is found.
//
// # Parallel Export
//
// Exports are independent; use ExportPool to bound how many browser
// processes run at once during batch work:
//
//	pool := diagram2png.NewExportPool(exp, diagram2png.ResolvePoolSize(0))
//	out, err := pool.Export(ctx, htmlDoc, opts)
package diagram2png
