package story

import (
	"strings"
	"testing"
)

func TestTableCols(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want int
	}{
		{
			name: "uniform rows",
			rows: [][]string{{"a", "b", "c"}, {"d", "e", "f"}},
			want: 3,
		},
		{
			name: "ragged rows",
			rows: [][]string{{"a"}, {"b", "c", "d", "e"}},
			want: 4,
		},
		{
			name: "empty table",
			rows: nil,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := Table{Rows: tt.rows}
			if got := tbl.Cols(); got != tt.want {
				t.Errorf("Cols() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDirectiveCovers(t *testing.T) {
	d := Span(Cell{Col: 0, Row: 2}, Cell{Col: 3, Row: 2})

	tests := []struct {
		name     string
		col, row int
		want     bool
	}{
		{"start corner", 0, 2, true},
		{"end corner", 3, 2, true},
		{"inside", 2, 2, true},
		{"column past end", 4, 2, false},
		{"row above", 1, 1, false},
		{"row below", 1, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Covers(tt.col, tt.row); got != tt.want {
				t.Errorf("Covers(%d, %d) = %v, want %v", tt.col, tt.row, got, tt.want)
			}
		})
	}
}

func TestBlockKinds(t *testing.T) {
	tests := []struct {
		block Block
		want  string
	}{
		{Paragraph{}, "paragraph"},
		{Table{}, "table"},
		{Spacer{}, "spacer"},
		{Image{}, "image"},
	}

	for _, tt := range tests {
		if got := tt.block.BlockKind(); got != tt.want {
			t.Errorf("BlockKind() = %q, want %q", got, tt.want)
		}
	}
}

func TestMarshalStory(t *testing.T) {
	blocks := []Block{
		Heading("Invoice", AlignRight),
		Table{Rows: [][]string{{"Invoice id:", "INV-1"}}, HAlign: AlignRight},
		Spacer{W: 5, H: 5},
	}

	data, err := MarshalStory(blocks)
	if err != nil {
		t.Fatalf("MarshalStory error: %v", err)
	}

	out := string(data)
	for _, want := range []string{`"kind": "paragraph"`, `"kind": "table"`, `"kind": "spacer"`, `"Invoice id:"`} {
		if !strings.Contains(out, want) {
			t.Errorf("MarshalStory output missing %q:\n%s", want, out)
		}
	}
}
