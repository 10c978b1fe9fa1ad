package diagram

import (
	"bytes"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrRichText indicates Markdown rendering failed.
var ErrRichText = errors.New("rich text rendering failed")

// highlightStyle is the chroma style used for fenced code in card
// bodies. CSS classes keep the markup small; the stylesheet comes from
// HighlightCSS.
const highlightStyle = "github"

// richText converts card-body Markdown to an HTML fragment.
type richText struct {
	md goldmark.Markdown
}

// newRichText creates a Markdown renderer with GFM extensions and
// class-based syntax highlighting.
func newRichText() *richText {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // tables, strikethrough, autolinks
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			// WithUnsafe intentionally not used; card bodies come from
			// arbitrary diagram documents.
		),
	)
	return &richText{md: md}
}

// render converts Markdown content to an HTML fragment.
func (r *richText) render(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRichText, err)
	}
	return buf.String(), nil
}

// HighlightCSS returns the stylesheet for class-based code highlighting.
func HighlightCSS() (string, error) {
	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}
	formatter := chromahtml.New(chromahtml.WithClasses(true))

	var buf bytes.Buffer
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("%w: highlight CSS: %v", ErrRichText, err)
	}
	return buf.String(), nil
}
