// Package story defines the renderer-agnostic content blocks an assembled
// document is made of, plus the grid-style directives that keep rendered
// tables visually correct.
//
// A story is an ordered []Block destined for a rendering gateway. Blocks
// carry no layout geometry of their own; tables instead carry a list of
// Directive values targeting rectangular cell ranges (span, alignment,
// underline, padding). Cell coordinates are always explicit non-negative
// (column, row) integers.
package story

import "encoding/json"

// Align is a horizontal alignment for paragraphs, tables and cell ranges.
type Align string

// Supported alignments.
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ParagraphStyle selects the text treatment of a paragraph block.
type ParagraphStyle string

// Paragraph styles.
const (
	StyleHeading ParagraphStyle = "heading"
	StyleNormal  ParagraphStyle = "normal"
)

// Block is a single renderable element of the story.
// Implementations: Paragraph, Table, Spacer, Image.
type Block interface {
	// BlockKind returns a stable identifier used by sinks to dispatch and
	// by the JSON export to tag elements.
	BlockKind() string
}

// Paragraph is a run of free text with a style and alignment.
type Paragraph struct {
	Text  string         `json:"text"`
	Style ParagraphStyle `json:"style"`
	Align Align          `json:"align"`
}

// BlockKind implements Block.
func (Paragraph) BlockKind() string { return "paragraph" }

// Heading returns a heading paragraph with the given alignment.
func Heading(text string, align Align) Paragraph {
	return Paragraph{Text: text, Style: StyleHeading, Align: align}
}

// Text returns a normal paragraph with the given alignment.
func Text(text string, align Align) Paragraph {
	return Paragraph{Text: text, Style: StyleNormal, Align: align}
}

// Table is a grid of string cells plus the style directives that shape it.
// HAlign positions the whole table within the page; HasHeader marks the
// first row as a title band.
type Table struct {
	Rows      [][]string  `json:"rows"`
	HAlign    Align       `json:"halign"`
	HasHeader bool        `json:"has_header,omitempty"`
	Style     []Directive `json:"style,omitempty"`
}

// BlockKind implements Block.
func (Table) BlockKind() string { return "table" }

// Cols returns the column count of the widest row.
func (t Table) Cols() int {
	cols := 0
	for _, r := range t.Rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	return cols
}

// Spacer reserves fixed vertical space between blocks. Dimensions are in
// points.
type Spacer struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// BlockKind implements Block.
func (Spacer) BlockKind() string { return "spacer" }

// Image references an image asset by path. The rendering gateway is
// responsible for decoding it.
type Image struct {
	Path   string `json:"path"`
	HAlign Align  `json:"halign"`
}

// BlockKind implements Block.
func (Image) BlockKind() string { return "image" }

// DirectiveKind identifies what a grid-style directive does.
type DirectiveKind string

// Directive kinds.
const (
	// DirectiveSpan merges the covered cells into one.
	DirectiveSpan DirectiveKind = "span"
	// DirectiveAlign sets horizontal alignment over the covered cells.
	DirectiveAlign DirectiveKind = "align"
	// DirectiveLineBelow draws a rule under the covered cells.
	DirectiveLineBelow DirectiveKind = "linebelow"
	// DirectiveLeftPadding sets the left cell padding (points) over the
	// covered cells.
	DirectiveLeftPadding DirectiveKind = "leftpadding"
)

// Cell addresses a single table cell by zero-based column and row.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Directive is a grid-style instruction targeting the rectangular cell range
// [Start, End] inclusive.
type Directive struct {
	Kind  DirectiveKind `json:"kind"`
	Start Cell          `json:"start"`
	End   Cell          `json:"end"`

	// Align is the alignment parameter for DirectiveAlign.
	Align Align `json:"align,omitempty"`
	// Width is the rule width in points for DirectiveLineBelow.
	Width float64 `json:"width,omitempty"`
	// Padding is the padding in points for DirectiveLeftPadding.
	Padding float64 `json:"padding,omitempty"`
}

// Covers reports whether the directive's range includes the cell at
// (col, row).
func (d Directive) Covers(col, row int) bool {
	return col >= d.Start.Col && col <= d.End.Col &&
		row >= d.Start.Row && row <= d.End.Row
}

// Span returns a span directive over the given range.
func Span(start, end Cell) Directive {
	return Directive{Kind: DirectiveSpan, Start: start, End: end}
}

// AlignRange returns an alignment directive over the given range.
func AlignRange(start, end Cell, a Align) Directive {
	return Directive{Kind: DirectiveAlign, Start: start, End: end, Align: a}
}

// LineBelow returns an underline directive over the given range.
func LineBelow(start, end Cell, width float64) Directive {
	return Directive{Kind: DirectiveLineBelow, Start: start, End: end, Width: width}
}

// LeftPadding returns a left-padding directive over the given range.
func LeftPadding(start, end Cell, pad float64) Directive {
	return Directive{Kind: DirectiveLeftPadding, Start: start, End: end, Padding: pad}
}

// taggedBlock wraps a block with its kind for JSON export.
type taggedBlock struct {
	Kind  string `json:"kind"`
	Block Block  `json:"block"`
}

// MarshalStory exports a story as indented JSON, each block tagged with its
// kind. This is the data interchange format for inspection and testing; it
// is not consumed by the rendering gateways.
func MarshalStory(blocks []Block) ([]byte, error) {
	tagged := make([]taggedBlock, len(blocks))
	for i, b := range blocks {
		tagged[i] = taggedBlock{Kind: b.BlockKind(), Block: b}
	}
	return json.MarshalIndent(tagged, "", "  ")
}
