package term

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/billforge/billforge/pkg/render"
	"github.com/billforge/billforge/pkg/story"
)

func TestBuildWritesAllBlocks(t *testing.T) {
	var buf bytes.Buffer
	g := New(&buf, WithWidth(60))

	req := render.Request{
		Meta: render.DefaultMetadata(),
		Page: render.Letter(),
		Story: []story.Block{
			story.Heading("Invoice", story.AlignRight),
			story.Table{
				Rows:   [][]string{{"Invoice id:", "INV-42"}},
				HAlign: story.AlignRight,
			},
			story.Spacer{W: 5, H: 5},
			story.Text("Thanks for your business", story.AlignCenter),
			story.Image{Path: "logo.png", HAlign: story.AlignLeft},
		},
	}

	if err := g.Build(context.Background(), req); err != nil {
		t.Fatalf("Build error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Invoice", "INV-42", "Thanks for your business", "[image: logo.png]"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview missing %q:\n%s", want, out)
		}
	}
}

func TestBuildPaidStamp(t *testing.T) {
	var buf bytes.Buffer
	g := New(&buf)

	stamp := render.PaidStamp()
	req := render.Request{Stamp: &stamp}

	if err := g.Build(context.Background(), req); err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if !strings.Contains(buf.String(), "PAID") {
		t.Errorf("preview missing paid stamp:\n%s", buf.String())
	}
}

func TestBuildCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := New(&buf).Build(ctx, render.Request{})
	if err == nil {
		t.Fatal("Build should fail with a canceled context")
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written after cancellation")
	}
}

func TestBuildTableWithHeader(t *testing.T) {
	var buf bytes.Buffer
	g := New(&buf)

	req := render.Request{
		Story: []story.Block{
			story.Table{
				Rows: [][]string{
					{"Name", "Amount"},
					{"Widget", "10.00"},
				},
				HAlign:    story.AlignLeft,
				HasHeader: true,
				Style: []story.Directive{
					story.AlignRange(story.Cell{Col: 1, Row: 1}, story.Cell{Col: 1, Row: 1}, story.AlignRight),
				},
			},
		},
	}

	if err := g.Build(context.Background(), req); err != nil {
		t.Fatalf("Build error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Name", "Widget", "10.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview missing %q:\n%s", want, out)
		}
	}
}
