// Package term implements a terminal preview gateway.
//
// It renders the story as styled text so an invoice can be checked before a
// PDF is produced. Grid-style directives are approximated: alignment is
// honored per cell, spans collapse into their start cell (the covered cells
// are blank by construction), and underline/padding directives are ignored.
package term

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/billforge/billforge/pkg/render"
	"github.com/billforge/billforge/pkg/story"
)

// defaultWidth is the preview width in terminal cells.
const defaultWidth = 80

// Option configures the terminal gateway.
type Option func(*Gateway)

// WithWidth sets the preview width in terminal cells.
func WithWidth(w int) Option {
	return func(g *Gateway) { g.width = w }
}

// Gateway writes a text preview of the story to an io.Writer.
type Gateway struct {
	out   io.Writer
	width int

	heading lipgloss.Style
	body    lipgloss.Style
	header  lipgloss.Style
	stamp   lipgloss.Style
}

// New creates a terminal gateway writing to out.
func New(out io.Writer, opts ...Option) *Gateway {
	g := &Gateway{
		out:     out,
		width:   defaultWidth,
		heading: lipgloss.NewStyle().Bold(true),
		body:    lipgloss.NewStyle(),
		header:  lipgloss.NewStyle().Bold(true).Padding(0, 1),
		stamp:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Build writes the preview. The request path is ignored; the preview always
// goes to the gateway's writer.
func (g *Gateway) Build(ctx context.Context, req render.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if req.Stamp != nil {
		if err := g.write(g.stamp.Render(fmt.Sprintf("*** %s ***", req.Stamp.Text))); err != nil {
			return err
		}
	}

	for _, b := range req.Story {
		var err error
		switch blk := b.(type) {
		case story.Paragraph:
			err = g.paragraph(blk)
		case story.Table:
			err = g.table(blk)
		case story.Spacer:
			err = g.write("")
		case story.Image:
			err = g.write(g.body.Faint(true).Render(fmt.Sprintf("[image: %s]", blk.Path)))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *Gateway) write(line string) error {
	_, err := fmt.Fprintln(g.out, line)
	return err
}

func position(a story.Align) lipgloss.Position {
	switch a {
	case story.AlignRight:
		return lipgloss.Right
	case story.AlignCenter:
		return lipgloss.Center
	default:
		return lipgloss.Left
	}
}

func (g *Gateway) paragraph(p story.Paragraph) error {
	style := g.body
	if p.Style == story.StyleHeading {
		style = g.heading
	}
	return g.write(style.Width(g.width).Align(position(p.Align)).Render(p.Text))
}

func (g *Gateway) table(tbl story.Table) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Faint(true)).
		Rows(tbl.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if tbl.HasHeader && row == 0 {
				return g.header
			}
			style := lipgloss.NewStyle().Padding(0, 1)
			for _, d := range tbl.Style {
				if d.Kind == story.DirectiveAlign && d.Covers(col, row) {
					style = style.Align(position(d.Align))
				}
			}
			return style
		})

	rendered := t.Render()
	if tbl.HAlign != story.AlignLeft {
		rendered = lipgloss.PlaceHorizontal(g.width, position(tbl.HAlign), rendered)
	}
	return g.write(rendered)
}
