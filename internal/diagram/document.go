// Package diagram assembles marketing-style diagram documents into
// standalone HTML ready for PNG export.
package diagram

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for diagram operations.
var (
	ErrEmptyDocument      = errors.New("diagram document has no sections")
	ErrUnknownSectionType = errors.New("unknown section type")
	ErrDocumentParse      = errors.New("failed to parse diagram document")
	ErrSectionContent     = errors.New("section has no content")
)

// Section type constants.
const (
	SectionTimeline = "timeline"
	SectionFunnel   = "funnel"
	SectionCards    = "cards"
)

// Document is a diagram described as structured data. Documents are
// written by hand or emitted by generators; rendering turns one into a
// complete HTML page.
type Document struct {
	Title    string    `yaml:"title"`
	Subtitle string    `yaml:"subtitle"`
	Scheme   string    `yaml:"scheme"` // scheme name or YAML file path
	Sections []Section `yaml:"sections"`
}

// Section is one visual block of a diagram.
type Section struct {
	Type   string  `yaml:"type"`
	Title  string  `yaml:"title"`
	Steps  []Step  `yaml:"steps"`  // timeline
	Stages []Stage `yaml:"stages"` // funnel
	Cards  []Card  `yaml:"cards"`
}

// Step is one entry on a timeline.
type Step struct {
	Label  string `yaml:"label"`
	Detail string `yaml:"detail"`
}

// Stage is one level of a funnel.
type Stage struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Card is a titled panel whose body is Markdown.
type Card struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// Parse reads a Document from YAML and validates it.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentParse, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks that the document has renderable content.
func (d *Document) Validate() error {
	if len(d.Sections) == 0 {
		return ErrEmptyDocument
	}
	for i, sec := range d.Sections {
		switch sec.Type {
		case SectionTimeline:
			if len(sec.Steps) == 0 {
				return fmt.Errorf("%w: section %d (timeline)", ErrSectionContent, i)
			}
		case SectionFunnel:
			if len(sec.Stages) == 0 {
				return fmt.Errorf("%w: section %d (funnel)", ErrSectionContent, i)
			}
		case SectionCards:
			if len(sec.Cards) == 0 {
				return fmt.Errorf("%w: section %d (cards)", ErrSectionContent, i)
			}
		default:
			return fmt.Errorf("%w: %q (section %d)", ErrUnknownSectionType, sec.Type, i)
		}
	}
	return nil
}
