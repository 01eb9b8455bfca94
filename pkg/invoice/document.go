package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/billforge/billforge/pkg/money"
	"github.com/billforge/billforge/pkg/story"
)

// Document is the mutable accumulation point for one invoice. The caller
// populates it fully before assembly; during assembly it is read-only.
//
// Documents are not safe for concurrent use. Concurrent generation requires
// one independent Document per invoice; there is no process-wide state.
type Document struct {
	// Invoice, Provider and Client are each optional. A nil entity means
	// its section is silently omitted from the story.
	Invoice  *InvoiceInfo
	Provider *ServiceProviderInfo
	Client   *ClientInfo

	// Paid marks the invoice as settled; assembly then attaches a paid
	// stamp decoration to the render request.
	Paid bool

	precision      decimal.Decimal
	taxRate        *decimal.Decimal
	items          []Item
	transactions   []Transaction
	bottomTip      string
	bottomTipAlign story.Align
	logoPath       string
}

// Option configures a Document at construction time.
type Option func(*Document)

// WithPrecision sets the rounding step applied to every summary figure.
func WithPrecision(step decimal.Decimal) Option {
	return func(d *Document) { d.precision = step }
}

// New creates an empty document with the default rounding precision (0.01).
func New(opts ...Option) *Document {
	d := &Document{precision: money.DefaultStep}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddItem appends a line item. Insertion order is display order.
func (d *Document) AddItem(it Item) {
	d.items = append(d.items, it)
}

// Items returns a defensive copy of the line items.
func (d *Document) Items() []Item {
	out := make([]Item, len(d.items))
	copy(out, d.items)
	return out
}

// AddTransaction appends a payment transaction. Insertion order is display
// order.
func (d *Document) AddTransaction(t Transaction) {
	d.transactions = append(d.transactions, t)
}

// Transactions returns a defensive copy of the transactions.
func (d *Document) Transactions() []Transaction {
	out := make([]Transaction, len(d.transactions))
	copy(out, d.transactions)
	return out
}

// SetTaxRate configures the tax rate as a decimal percentage (7.5 means
// 7.5%). Without a rate, tax contributes zero to the total and no tax row is
// emitted.
func (d *Document) SetTaxRate(rate decimal.Decimal) {
	d.taxRate = &rate
}

// TaxRate returns the configured tax rate and whether one is set.
func (d *Document) TaxRate() (decimal.Decimal, bool) {
	if d.taxRate == nil {
		return decimal.Zero, false
	}
	return *d.taxRate, true
}

// Precision returns the rounding step for summary figures.
func (d *Document) Precision() decimal.Decimal {
	return d.precision
}

// SetBottomTip sets the free text rendered at the bottom of the document at
// the given alignment.
func (d *Document) SetBottomTip(text string, align story.Align) {
	d.bottomTip = text
	d.bottomTipAlign = align
}

// BottomTip returns the bottom tip text, its alignment, and whether one is
// set.
func (d *Document) BottomTip() (string, story.Align, bool) {
	if d.bottomTip == "" {
		return "", "", false
	}
	return d.bottomTip, d.bottomTipAlign, true
}

// SetLogo sets the logo image path rendered at the top of the document.
func (d *Document) SetLogo(path string) {
	d.logoPath = path
}

// Logo returns the logo image path, empty when unset.
func (d *Document) Logo() string {
	return d.logoPath
}
