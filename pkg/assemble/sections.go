// Package assemble turns a populated invoice document into a story of
// renderable blocks.
//
// Each section builder is a pure function from document state to its blocks;
// the assembler concatenates their outputs in a fixed order. Builders never
// see each other's output and nothing here retains state between calls, so
// assembly is a single synchronous pass.
package assemble

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/billforge/billforge/pkg/invoice"
	"github.com/billforge/billforge/pkg/money"
	"github.com/billforge/billforge/pkg/story"
)

// Section headings and table titles.
const (
	headingInvoice      = "Invoice"
	headingProvider     = "Service Provider"
	headingClient       = "Client"
	headingItems        = "Detail"
	headingTransactions = "Transaction"
)

// ruleWidth is the width in points of the underline drawn below merged
// party headings.
const ruleWidth = 1

// sparseRows converts an ordered field registry into display rows, skipping
// any field whose value is empty. The row count therefore varies with how
// many fields are populated, which the side-by-side merge depends on.
func sparseRows(fields []invoice.Field) [][]string {
	var rows [][]string
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		rows = append(rows, []string{f.Label + ":", f.Value})
	}
	return rows
}

// buildLogo emits the logo image block, left/top aligned, when a logo is
// set.
func buildLogo(d *invoice.Document) []story.Block {
	path := d.Logo()
	if path == "" {
		return nil
	}
	return []story.Block{story.Image{Path: path, HAlign: story.AlignLeft}}
}

// buildInvoiceInfo emits the right-floated invoice header block.
func buildInvoiceInfo(d *invoice.Document) []story.Block {
	if d.Invoice == nil {
		return nil
	}
	rows := sparseRows(d.Invoice.Fields())
	if len(rows) == 0 {
		return nil
	}
	return []story.Block{
		story.Heading(headingInvoice, story.AlignRight),
		story.Table{Rows: rows, HAlign: story.AlignRight},
	}
}

// buildParties emits the provider and client sections. When both are
// present they merge into one side-by-side grid; otherwise whichever exists
// renders alone as an independent headed table.
func buildParties(d *invoice.Document) []story.Block {
	var provider, client [][]string
	if d.Provider != nil {
		provider = sparseRows(d.Provider.Fields())
	}
	if d.Client != nil {
		client = sparseRows(d.Client.Fields())
	}

	if len(provider) > 0 && len(client) > 0 {
		return []story.Block{mergedPartyTable(provider, client)}
	}

	var blocks []story.Block
	if len(provider) > 0 {
		blocks = append(blocks,
			story.Heading(headingProvider, story.AlignRight),
			story.Table{Rows: provider, HAlign: story.AlignRight},
		)
	}
	if len(client) > 0 {
		blocks = append(blocks,
			story.Heading(headingClient, story.AlignLeft),
			story.Table{Rows: client, HAlign: story.AlignLeft},
		)
	}
	return blocks
}

// mergedPartyTable zips the provider and client row lists into one
// five-column grid headed by two spanned, underlined headings.
//
// The shorter side is padded with separate blank two-cell rows, never one
// wide blank row; row-by-row zipping relies on both lists having equal
// length and uniform width.
func mergedPartyTable(provider, client [][]string) story.Table {
	provider, client = padToEqualLength(provider, client)

	rows := [][]string{{headingProvider, "", "", headingClient, ""}}
	for i := range provider {
		rows = append(rows, []string{
			provider[i][0], provider[i][1],
			"",
			client[i][0], client[i][1],
		})
	}

	lastRow := len(rows) - 1
	return story.Table{
		Rows:      rows,
		HAlign:    story.AlignLeft,
		HasHeader: true,
		Style: []story.Directive{
			story.Span(story.Cell{Col: 0, Row: 0}, story.Cell{Col: 1, Row: 0}),
			story.Span(story.Cell{Col: 3, Row: 0}, story.Cell{Col: 4, Row: 0}),
			story.LineBelow(story.Cell{Col: 0, Row: 0}, story.Cell{Col: 1, Row: 0}, ruleWidth),
			story.LineBelow(story.Cell{Col: 3, Row: 0}, story.Cell{Col: 4, Row: 0}, ruleWidth),
			story.LeftPadding(story.Cell{Col: 0, Row: 0}, story.Cell{Col: 4, Row: lastRow}, 0),
		},
	}
}

// padToEqualLength pads the shorter row list with blank two-cell rows until
// both lists have the same length.
func padToEqualLength(a, b [][]string) ([][]string, [][]string) {
	for len(a) < len(b) {
		a = append(a, []string{"", ""})
	}
	for len(b) < len(a) {
		b = append(b, []string{"", ""})
	}
	return a, b
}

// buildItems emits the line-item table with its financial summary rows. The
// whole section, heading included, is omitted when there are no items.
//
// Summary policy: the subtotal accumulates unrounded; subtotal and tax are
// rounded independently and the total is their sum, re-rounded. The total is
// therefore built from rounded parts, not from rounding the raw sum — the
// two can differ by one minor unit.
func buildItems(d *invoice.Document) []story.Block {
	items := d.Items()
	if len(items) == 0 {
		return nil
	}

	rows := [][]string{{"Name", "Description", "Units", "Unit Price", "Amount"}}
	subtotal := decimal.Zero
	for _, it := range items {
		rows = append(rows, []string{
			it.Name,
			it.Description,
			strconv.Itoa(it.Units),
			money.Format2(it.UnitPrice),
			money.Format2(it.Amount),
		})
		subtotal = subtotal.Add(it.Amount)
	}

	cols := 5
	lastCol := cols - 1
	step := d.Precision()

	// Center the description column over the item rows only.
	style := []story.Directive{
		story.AlignRange(story.Cell{Col: 1, Row: 1}, story.Cell{Col: 1, Row: len(items)}, story.AlignCenter),
	}

	// summaryRow appends one summary row (label spanned across the leading
	// columns, figure in the last column) and its style directives. Row
	// indices are explicit: each appended row shifts the next by one.
	summaryRow := func(label string, figure decimal.Decimal) {
		row := make([]string, cols)
		row[0] = label
		row[lastCol] = money.Format2(figure)
		rows = append(rows, row)

		r := len(rows) - 1
		style = append(style,
			story.Span(story.Cell{Col: 0, Row: r}, story.Cell{Col: lastCol - 1, Row: r}),
			story.AlignRange(story.Cell{Col: 0, Row: r}, story.Cell{Col: lastCol - 1, Row: r}, story.AlignRight),
		)
	}

	roundedSubtotal := money.Round(subtotal, step)
	summaryRow("Subtotal", roundedSubtotal)

	roundedTax := decimal.Zero
	if rate, ok := d.TaxRate(); ok {
		tax := subtotal.Mul(rate).Div(decimal.NewFromInt(100))
		roundedTax = money.Round(tax, step)
		summaryRow(fmt.Sprintf("Vat/Tax (%s%%)", rate.String()), roundedTax)
	}

	total := money.Round(roundedSubtotal.Add(roundedTax), step)
	summaryRow("Total", total)

	return []story.Block{
		story.Heading(headingItems, story.AlignLeft),
		story.Table{Rows: rows, HAlign: story.AlignLeft, HasHeader: true, Style: style},
	}
}

// buildTransactions emits the payment table. The whole section, heading
// included, is omitted when there are no transactions.
func buildTransactions(d *invoice.Document) []story.Block {
	txs := d.Transactions()
	if len(txs) == 0 {
		return nil
	}

	rows := [][]string{{"Transaction id", "Gateway", "Transaction date", "Amount"}}
	for _, t := range txs {
		rows = append(rows, []string{
			t.ID,
			t.Gateway,
			invoice.FormatTime(t.Time),
			money.Format2(t.Amount),
		})
	}

	// Center the gateway column over the data rows.
	style := []story.Directive{
		story.AlignRange(story.Cell{Col: 1, Row: 1}, story.Cell{Col: 1, Row: len(txs)}, story.AlignCenter),
	}

	return []story.Block{
		story.Heading(headingTransactions, story.AlignLeft),
		story.Table{Rows: rows, HAlign: story.AlignLeft, HasHeader: true, Style: style},
	}
}

// buildBottomTip emits the closing free-text block preceded by fixed
// vertical spacing.
func buildBottomTip(d *invoice.Document) []story.Block {
	tip, align, ok := d.BottomTip()
	if !ok {
		return nil
	}
	return []story.Block{
		story.Spacer{W: 5, H: 5},
		story.Text(tip, align),
	}
}
