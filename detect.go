package diagram2png

import (
	"fmt"

	"github.com/go-rod/rod"
)

// Selector tables for content-region detection. Diagram templates come
// from many independent generators with inconsistent root markup, so
// detection is a two-tier fallback over append-only lists rather than a
// hard requirement on a single selector. New layout families register a
// selector here without touching the detection script.
var (
	// preferredRootSelectors match the visual roots diagram templates
	// are expected to expose: layout-family container classes, the
	// explicit opt-in attribute, and common semantic landmarks.
	preferredRootSelectors = []string{
		".diagram-root",
		".layout-stack",
		".layout-grid",
		".layout-split",
		"[data-export-root]",
		"main",
		"article",
	}

	// genericContentSelectors are the second tier: graphic elements,
	// text blocks, and anything that looks like a card or panel.
	genericContentSelectors = []string{
		"svg",
		"img",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p",
		`[class*="card"]`,
		`[class*="panel"]`,
	}
)

// detectScript runs inside the rendered page. It unions the client
// rectangles of all visible matches for the first selector list, falling
// back to the second list, and returns null when neither yields a
// visible element. Visibility requires computed display != none,
// visibility != hidden, and a client rect larger than 2x2 CSS pixels.
const detectScript = `(preferred, generic) => {
	const visible = (el) => {
		const style = window.getComputedStyle(el);
		if (style.display === 'none' || style.visibility === 'hidden') return false;
		const r = el.getBoundingClientRect();
		return r.width > 2 && r.height > 2;
	};
	const unionOf = (selectors) => {
		let box = null;
		for (const selector of selectors) {
			for (const el of document.querySelectorAll(selector)) {
				if (!visible(el)) continue;
				const r = el.getBoundingClientRect();
				if (box === null) {
					box = { left: r.left, top: r.top, right: r.right, bottom: r.bottom };
				} else {
					box.left = Math.min(box.left, r.left);
					box.top = Math.min(box.top, r.top);
					box.right = Math.max(box.right, r.right);
					box.bottom = Math.max(box.bottom, r.bottom);
				}
			}
		}
		return box;
	};
	const box = unionOf(preferred) || unionOf(generic);
	if (box === null) return null;
	return { x: box.left, y: box.top, width: box.right - box.left, height: box.bottom - box.top };
}`

// detectContentBox evaluates the detection script in the page and
// returns the union bounding box in CSS pixels, or nil when no visible
// content matched either selector tier. Blocks until the in-page
// evaluation returns.
func detectContentBox(page *rod.Page) (*BoundingBox, error) {
	res, err := page.Eval(detectScript, preferredRootSelectors, genericContentSelectors)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetectContent, err)
	}
	if res == nil || res.Value.Nil() {
		return nil, nil
	}
	return &BoundingBox{
		X:      res.Value.Get("x").Num(),
		Y:      res.Value.Get("y").Num(),
		Width:  res.Value.Get("width").Num(),
		Height: res.Value.Get("height").Num(),
	}, nil
}
