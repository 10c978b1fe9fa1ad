package diagram

import (
	"fmt"
	"html"
	"strings"

	"github.com/promokit/go-diagram2png/internal/scheme"
)

// Renderer turns diagram documents into standalone HTML pages.
type Renderer struct {
	rich *richText
}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{rich: newRichText()}
}

// Render assembles the document into a complete HTML page styled with
// the given color scheme. The page root carries the diagram-root class
// the export pipeline's content detector looks for.
func (r *Renderer) Render(doc *Document, sch *scheme.Scheme) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}

	var body strings.Builder

	if doc.Title != "" {
		body.WriteString(`<header class="diagram-header">`)
		fmt.Fprintf(&body, "<h1>%s</h1>", html.EscapeString(doc.Title))
		if doc.Subtitle != "" {
			fmt.Fprintf(&body, `<p class="subtitle">%s</p>`, html.EscapeString(doc.Subtitle))
		}
		body.WriteString("</header>")
	}

	for _, sec := range doc.Sections {
		rendered, err := r.renderSection(&sec)
		if err != nil {
			return "", err
		}
		body.WriteString(rendered)
	}

	highlightCSS, err := HighlightCSS()
	if err != nil {
		return "", err
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
%s
%s
</style>
</head>
<body>
<div class="diagram-root">
%s
</div>
</body>
</html>`, html.EscapeString(doc.Title), buildSchemeCSS(sch), highlightCSS, body.String())

	return page, nil
}

// renderSection dispatches on the section type.
func (r *Renderer) renderSection(sec *Section) (string, error) {
	switch sec.Type {
	case SectionTimeline:
		return renderTimeline(sec), nil
	case SectionFunnel:
		return renderFunnel(sec), nil
	case SectionCards:
		return r.renderCards(sec)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSectionType, sec.Type)
	}
}

func sectionHeading(sec *Section) string {
	if sec.Title == "" {
		return ""
	}
	return fmt.Sprintf("<h2>%s</h2>", html.EscapeString(sec.Title))
}

// renderTimeline draws steps as a horizontal strip connected by an SVG
// baseline.
func renderTimeline(sec *Section) string {
	var b strings.Builder
	b.WriteString(`<section class="layout-stack timeline">`)
	b.WriteString(sectionHeading(sec))
	b.WriteString(`<svg class="timeline-axis" viewBox="0 0 100 2" preserveAspectRatio="none"><line x1="0" y1="1" x2="100" y2="1" stroke="currentColor" stroke-width="2"/></svg>`)
	b.WriteString(`<ol class="timeline-steps">`)
	for _, step := range sec.Steps {
		fmt.Fprintf(&b, `<li><span class="step-label">%s</span><span class="step-detail">%s</span></li>`,
			html.EscapeString(step.Label), html.EscapeString(step.Detail))
	}
	b.WriteString("</ol></section>")
	return b.String()
}

// renderFunnel draws stages as progressively narrower bars.
func renderFunnel(sec *Section) string {
	var b strings.Builder
	b.WriteString(`<section class="layout-stack funnel">`)
	b.WriteString(sectionHeading(sec))

	n := len(sec.Stages)
	for i, stage := range sec.Stages {
		// Narrow from 100% down to 40% across the stages.
		width := 100
		if n > 1 {
			width = 100 - (60*i)/(n-1)
		}
		fmt.Fprintf(&b, `<div class="funnel-stage" style="width: %d%%"><span class="stage-label">%s</span><span class="stage-value">%s</span></div>`,
			width, html.EscapeString(stage.Label), html.EscapeString(stage.Value))
	}
	b.WriteString("</section>")
	return b.String()
}

// renderCards draws titled panels with Markdown bodies.
func (r *Renderer) renderCards(sec *Section) (string, error) {
	var b strings.Builder
	b.WriteString(`<section class="layout-grid">`)
	b.WriteString(sectionHeading(sec))
	for _, card := range sec.Cards {
		body, err := r.rich.render(card.Body)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, `<div class="card"><h3>%s</h3><div class="card-body">%s</div></div>`,
			html.EscapeString(card.Title), body)
	}
	b.WriteString("</section>")
	return b.String(), nil
}

// buildSchemeCSS generates the page stylesheet from a color scheme.
func buildSchemeCSS(sch *scheme.Scheme) string {
	return fmt.Sprintf(`* { box-sizing: border-box; margin: 0; }
body {
  background: %s;
  color: %s;
  font-family: %s;
  padding: 48px;
}
.diagram-root { display: flex; flex-direction: column; gap: 32px; max-width: 1100px; margin: 0 auto; }
.diagram-header h1 { font-size: 2.4rem; color: %s; }
.diagram-header .subtitle { margin-top: 8px; color: %s; font-size: 1.2rem; }
h2 { font-size: 1.5rem; margin-bottom: 16px; }
.layout-stack, .layout-grid { background: %s; border-radius: 12px; padding: 32px; }
.layout-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(240px, 1fr)); gap: 20px; }
.layout-grid h2 { grid-column: 1 / -1; }
.timeline-axis { width: 100%%; height: 4px; color: %s; }
.timeline-steps { display: flex; justify-content: space-between; gap: 16px; list-style: none; padding: 12px 0 0; }
.timeline-steps li { display: flex; flex-direction: column; gap: 4px; }
.step-label { font-weight: 600; color: %s; }
.step-detail { color: %s; font-size: 0.9rem; }
.funnel { display: flex; flex-direction: column; align-items: center; gap: 8px; }
.funnel h2 { align-self: flex-start; }
.funnel-stage {
  display: flex; justify-content: space-between;
  background: %s; color: %s;
  padding: 12px 20px; border-radius: 6px;
}
.stage-value { font-weight: 700; }
.card { background: %s; border: 1px solid %s; border-radius: 8px; padding: 20px; }
.card h3 { color: %s; margin-bottom: 10px; }
.card-body { color: %s; line-height: 1.5; }
.card-body pre { padding: 12px; border-radius: 6px; overflow-x: auto; }
`,
		sch.Background, sch.Text, sch.Font(),
		sch.Primary, sch.Muted,
		sch.Surface,
		sch.Muted,
		sch.Primary, sch.Muted,
		sch.Primary, sch.Background,
		sch.Background, sch.Muted, sch.Accent, sch.Text)
}
