// Package render defines the gateway boundary between document assembly and
// the concrete output backends.
//
// The core's sole obligation to a gateway is a well-formed story (an ordered
// block sequence with grid-style directives attached to its tables) plus the
// page geometry and document metadata in a Request. Gateway failures
// propagate to the caller unmodified; the core never retries or suppresses
// them.
package render

import (
	"context"

	"github.com/billforge/billforge/pkg/story"
)

// Inch is one inch in points, the unit all geometry is expressed in.
const Inch = 72.0

// Metadata is the document metadata embedded in the output artifact.
type Metadata struct {
	Title   string `json:"title" toml:"title"`
	Author  string `json:"author" toml:"author"`
	Subject string `json:"subject" toml:"subject"`
}

// DefaultMetadata returns the metadata used when the caller provides none.
func DefaultMetadata() Metadata {
	return Metadata{Title: "Invoice", Author: "billforge", Subject: "Invoice"}
}

// Geometry describes the page size and margins in points.
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64
}

// Letter returns US Letter geometry with one-inch margins, the default page
// setup.
func Letter() Geometry {
	return Geometry{
		PageWidth:    8.5 * Inch,
		PageHeight:   11 * Inch,
		MarginLeft:   Inch,
		MarginRight:  Inch,
		MarginTop:    Inch,
		MarginBottom: Inch,
	}
}

// Stamp is a page decoration drawn over the first page. OffsetX is measured
// from the left edge; OffsetY from the page bottom, negative values moving
// up. It is not a story block: it is a build-time instruction passed
// alongside the story.
type Stamp struct {
	Text    string
	OffsetX float64
	OffsetY float64
}

// PaidStamp returns the standard PAID decoration: three inches from the left
// edge, two inches above the page bottom.
func PaidStamp() Stamp {
	return Stamp{Text: "PAID", OffsetX: 3 * Inch, OffsetY: -2 * Inch}
}

// Request carries everything a gateway needs to produce the output artifact.
type Request struct {
	// Path is the destination of the artifact. Gateways that write to an
	// io.Writer instead may ignore it.
	Path  string
	Meta  Metadata
	Page  Geometry
	Story []story.Block
	// Stamp is the optional page decoration (nil when the invoice is
	// unpaid).
	Stamp *Stamp
}

// Gateway renders an assembled story into a final artifact.
type Gateway interface {
	Build(ctx context.Context, req Request) error
}
