// Package pdf implements the PDF rendering gateway on top of gofpdf.
//
// The gateway walks the story in order, drawing paragraphs, grid tables
// (honoring span, alignment, underline and padding directives), spacers and
// images, then applies the paid stamp decoration when present. It holds no
// state between builds and is safe for concurrent use with independent
// requests.
package pdf

import (
	"context"

	"github.com/jung-kurt/gofpdf"

	"github.com/billforge/billforge/pkg/errors"
	"github.com/billforge/billforge/pkg/render"
	"github.com/billforge/billforge/pkg/story"
)

// Font sizes in points.
const (
	headingSize = 16
	bodySize    = 10
	stampSize   = 50
)

// Row heights in points.
const (
	headingHeight = 24
	rowHeight     = 16
)

// cellPadding is the default horizontal padding inside table cells.
const cellPadding = 4

// fontFamily is the built-in font used throughout; invoices carry no custom
// text shaping.
const fontFamily = "Helvetica"

// Option configures the PDF gateway.
type Option func(*Gateway)

// WithRuleGray sets the gray level (0 black to 1 white) of directive-drawn
// rules.
func WithRuleGray(g float64) Option {
	return func(gw *Gateway) { gw.ruleGray = g }
}

// Gateway renders stories to PDF files.
type Gateway struct {
	ruleGray float64
}

// New creates a PDF gateway.
func New(opts ...Option) *Gateway {
	g := &Gateway{ruleGray: 0.5}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Build renders the request's story into a PDF at req.Path. Any underlying
// write or encoding failure is returned wrapped with ErrCodeRenderFailed.
func (g *Gateway) Build(ctx context.Context, req render.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: req.Page.PageWidth, Ht: req.Page.PageHeight},
	})
	doc.SetMargins(req.Page.MarginLeft, req.Page.MarginTop, req.Page.MarginRight)
	doc.SetAutoPageBreak(true, req.Page.MarginBottom)
	doc.SetTitle(req.Meta.Title, true)
	doc.SetAuthor(req.Meta.Author, true)
	doc.SetSubject(req.Meta.Subject, true)
	doc.AddPage()

	p := &page{doc: doc, geo: req.Page, ruleGray: g.ruleGray}
	for _, b := range req.Story {
		switch blk := b.(type) {
		case story.Paragraph:
			p.paragraph(blk)
		case story.Table:
			p.table(blk)
		case story.Spacer:
			doc.Ln(blk.H)
		case story.Image:
			p.image(blk)
		default:
			return errors.New(errors.ErrCodeUnsupported, "unknown block kind %q", b.BlockKind())
		}
	}

	if req.Stamp != nil {
		p.stamp(*req.Stamp)
	}

	if err := doc.OutputFileAndClose(req.Path); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", req.Path)
	}
	return nil
}

// page tracks drawing state for one build.
type page struct {
	doc      *gofpdf.Fpdf
	geo      render.Geometry
	ruleGray float64
}

// contentWidth returns the usable width between the margins.
func (p *page) contentWidth() float64 {
	return p.geo.PageWidth - p.geo.MarginLeft - p.geo.MarginRight
}

func alignStr(a story.Align) string {
	switch a {
	case story.AlignRight:
		return "R"
	case story.AlignCenter:
		return "C"
	default:
		return "L"
	}
}

func (p *page) paragraph(par story.Paragraph) {
	if par.Style == story.StyleHeading {
		p.doc.SetFont(fontFamily, "B", headingSize)
		p.doc.CellFormat(p.contentWidth(), headingHeight, par.Text, "", 1, alignStr(par.Align), false, 0, "")
		return
	}
	p.doc.SetFont(fontFamily, "", bodySize)
	p.doc.MultiCell(p.contentWidth(), rowHeight, par.Text, "", alignStr(par.Align), false)
}

func (p *page) image(img story.Image) {
	opts := gofpdf.ImageOptions{ReadDpi: true}
	x := p.geo.MarginLeft
	if img.HAlign == story.AlignRight {
		x = p.geo.PageWidth - p.geo.MarginRight
	}
	// Width/height zero lets gofpdf use the image's intrinsic size.
	p.doc.ImageOptions(img.Path, x, p.doc.GetY(), 0, 0, true, opts, 0, "")
}

// table lays out a grid honoring the table's style directives. Span starts
// absorb the width of the columns they cover; covered non-start cells are
// skipped entirely so row zipping stays intact.
func (p *page) table(tbl story.Table) {
	cols := tbl.Cols()
	if cols == 0 {
		return
	}

	pad := p.leftPaddingFor(tbl)
	widths := p.columnWidths(tbl, cols, pad)

	total := 0.0
	for _, w := range widths {
		total += w
	}
	startX := p.geo.MarginLeft
	switch tbl.HAlign {
	case story.AlignRight:
		startX = p.geo.PageWidth - p.geo.MarginRight - total
	case story.AlignCenter:
		startX = p.geo.MarginLeft + (p.contentWidth()-total)/2
	}

	for r, row := range tbl.Rows {
		p.doc.SetX(startX)
		if tbl.HasHeader && r == 0 {
			p.doc.SetFont(fontFamily, "B", bodySize)
		} else {
			p.doc.SetFont(fontFamily, "", bodySize)
		}

		y := p.doc.GetY()
		x := startX
		for c := 0; c < cols && c < len(row); c++ {
			w, skip := spanWidth(tbl.Style, widths, c, r)
			if skip {
				continue
			}
			align := cellAlign(tbl.Style, c, r)
			border := ""
			if tbl.HasHeader && r == 0 && len(tbl.Style) == 0 {
				border = "B"
			}
			p.doc.SetXY(x, y)
			p.doc.CellFormat(w, rowHeight, padText(row[c], pad), border, 0, align, false, 0, "")
			x += w
		}

		p.rules(tbl.Style, widths, startX, y+rowHeight, r)
		p.doc.SetXY(startX, y+rowHeight)
	}
	p.doc.Ln(rowHeight / 2)
}

// leftPaddingFor returns the effective left padding: a left-padding
// directive covering the table overrides the default.
func (p *page) leftPaddingFor(tbl story.Table) float64 {
	pad := float64(cellPadding)
	for _, d := range tbl.Style {
		if d.Kind == story.DirectiveLeftPadding {
			pad = d.Padding
		}
	}
	return pad
}

// padText simulates left cell padding with spaces when padding is nonzero;
// gofpdf has no per-cell padding control.
func padText(s string, pad float64) string {
	if s == "" || pad == 0 {
		return s
	}
	return " " + s
}

// columnWidths sizes columns to their widest content, scaled down
// proportionally when the table would overflow the content area.
func (p *page) columnWidths(tbl story.Table, cols int, pad float64) []float64 {
	p.doc.SetFont(fontFamily, "B", bodySize)
	widths := make([]float64, cols)
	for _, row := range tbl.Rows {
		for c := 0; c < cols && c < len(row); c++ {
			w := p.doc.GetStringWidth(row[c]) + 2*pad + 2
			if w > widths[c] {
				widths[c] = w
			}
		}
	}

	total := 0.0
	for _, w := range widths {
		total += w
	}
	if avail := p.contentWidth(); total > avail {
		scale := avail / total
		for i := range widths {
			widths[i] *= scale
		}
	}
	return widths
}

// spanWidth resolves the draw width of cell (c, r) under span directives.
// It returns skip=true for cells covered by a span that starts elsewhere.
func spanWidth(dirs []story.Directive, widths []float64, c, r int) (float64, bool) {
	for _, d := range dirs {
		if d.Kind != story.DirectiveSpan || !d.Covers(c, r) {
			continue
		}
		if c != d.Start.Col || r != d.Start.Row {
			return 0, true
		}
		w := 0.0
		for i := d.Start.Col; i <= d.End.Col && i < len(widths); i++ {
			w += widths[i]
		}
		return w, false
	}
	return widths[c], false
}

// cellAlign resolves the alignment of cell (c, r); the last covering
// directive wins, default left.
func cellAlign(dirs []story.Directive, c, r int) string {
	align := "L"
	for _, d := range dirs {
		if d.Kind == story.DirectiveAlign && d.Covers(c, r) {
			align = alignStr(d.Align)
		}
	}
	return align
}

// rules draws line-below directives that apply to row r.
func (p *page) rules(dirs []story.Directive, widths []float64, startX, y float64, r int) {
	for _, d := range dirs {
		if d.Kind != story.DirectiveLineBelow || d.Start.Row != r {
			continue
		}
		x1 := startX
		for i := 0; i < d.Start.Col && i < len(widths); i++ {
			x1 += widths[i]
		}
		x2 := x1
		for i := d.Start.Col; i <= d.End.Col && i < len(widths); i++ {
			x2 += widths[i]
		}
		gray := int(p.ruleGray * 255)
		p.doc.SetDrawColor(gray, gray, gray)
		p.doc.SetLineWidth(d.Width)
		p.doc.Line(x1, y, x2, y)
		p.doc.SetDrawColor(0, 0, 0)
	}
}

// stamp draws the rotated decoration over the first page.
func (p *page) stamp(s render.Stamp) {
	p.doc.SetPage(1)
	p.doc.SetFont(fontFamily, "B", stampSize)
	p.doc.SetTextColor(230, 51, 77)

	x := s.OffsetX
	y := p.geo.PageHeight + s.OffsetY // offset is relative to the page bottom
	p.doc.TransformBegin()
	p.doc.TransformRotate(45, x, y)
	p.doc.Text(x, y, s.Text)
	p.doc.TransformEnd()

	p.doc.SetTextColor(0, 0, 0)
}
