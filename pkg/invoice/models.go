// Package invoice defines the entity models an invoice document is built
// from, and the Document that accumulates them before assembly.
//
// Entities are plain data holders created by the caller; they are read-only
// during assembly. Each info entity exposes a fixed, ordered display-field
// registry via Fields(); fields with empty values are skipped by the
// sparse-table builder, so the registry order is the display order.
package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a single invoice line. Amount is independently supplied, not
// derived from Units times UnitPrice; the two may legitimately differ (for
// example with partial units).
type Item struct {
	Name        string
	Description string
	Units       int
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// Transaction is a payment received against the invoice.
type Transaction struct {
	ID      string
	Gateway string
	Time    time.Time
	Amount  decimal.Decimal
}

// InvoiceInfo carries the invoice header metadata.
type InvoiceInfo struct {
	ID   string
	Date time.Time
	Due  time.Time
}

// ServiceProviderInfo identifies the invoicing party.
type ServiceProviderInfo struct {
	Name         string
	Street       string
	City         string
	State        string
	Country      string
	PostCode     string
	VATTaxNumber string
}

// ClientInfo identifies the billed party.
type ClientInfo struct {
	ID       string
	Name     string
	Street   string
	City     string
	State    string
	Country  string
	PostCode string
	Email    string
}

// Field is one (display label, formatted value) pair of an entity's display
// registry. An empty Value means the field is absent and its row is omitted.
type Field struct {
	Label string
	Value string
}

// Fields returns the ordered display registry for the invoice header.
func (i *InvoiceInfo) Fields() []Field {
	return []Field{
		{Label: "Invoice id", Value: i.ID},
		{Label: "Invoice date", Value: FormatTime(i.Date)},
		{Label: "Invoice due date", Value: FormatTime(i.Due)},
	}
}

// Fields returns the ordered display registry for the service provider.
func (p *ServiceProviderInfo) Fields() []Field {
	return []Field{
		{Label: "Name", Value: p.Name},
		{Label: "Street", Value: p.Street},
		{Label: "City", Value: p.City},
		{Label: "State", Value: p.State},
		{Label: "Country", Value: p.Country},
		{Label: "Post code", Value: p.PostCode},
		{Label: "Vat/Tax number", Value: p.VATTaxNumber},
	}
}

// Fields returns the ordered display registry for the client.
func (c *ClientInfo) Fields() []Field {
	return []Field{
		{Label: "Name", Value: c.Name},
		{Label: "Street", Value: c.Street},
		{Label: "City", Value: c.City},
		{Label: "State", Value: c.State},
		{Label: "Country", Value: c.Country},
		{Label: "Post code", Value: c.PostCode},
		{Label: "Email", Value: c.Email},
		{Label: "Client id", Value: c.ID},
	}
}

// FormatTime renders a timestamp for display. The zero time formats as the
// empty string so the field is treated as absent. A value at exact midnight
// formats as a bare date (2006-01-02); anything else includes the clock
// (2006-01-02 15:04).
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04")
}
