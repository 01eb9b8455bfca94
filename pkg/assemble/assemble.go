package assemble

import (
	"github.com/billforge/billforge/pkg/invoice"
	"github.com/billforge/billforge/pkg/render"
	"github.com/billforge/billforge/pkg/story"
)

// Assemble builds the story for a populated document.
//
// The build order is fixed: logo, invoice info, party blocks (merged when
// both sides are present), items, transactions, bottom tip. Every step is
// independently skippable: no data means no heading and no block. The paid
// stamp is returned separately because it is a page decoration for the
// rendering gateway, not a story block; it is nil unless the document is
// marked paid.
func Assemble(d *invoice.Document) ([]story.Block, *render.Stamp) {
	var blocks []story.Block
	for _, build := range []func(*invoice.Document) []story.Block{
		buildLogo,
		buildInvoiceInfo,
		buildParties,
		buildItems,
		buildTransactions,
		buildBottomTip,
	} {
		blocks = append(blocks, build(d)...)
	}

	var stamp *render.Stamp
	if d.Paid {
		s := render.PaidStamp()
		stamp = &s
	}
	return blocks, stamp
}

// Request bundles the assembled story into a render request for the given
// destination. Zero-value metadata falls back to the defaults and zero-value
// geometry falls back to Letter with one-inch margins.
func Request(d *invoice.Document, path string, meta render.Metadata, page render.Geometry) render.Request {
	if meta == (render.Metadata{}) {
		meta = render.DefaultMetadata()
	}
	if page == (render.Geometry{}) {
		page = render.Letter()
	}

	blocks, stamp := Assemble(d)
	return render.Request{
		Path:  path,
		Meta:  meta,
		Page:  page,
		Story: blocks,
		Stamp: stamp,
	}
}
