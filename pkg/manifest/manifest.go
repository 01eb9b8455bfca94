// Package manifest loads invoice manifests and converts them into documents
// ready for assembly.
//
// A manifest is the caller-facing configuration surface: entity data, line
// items, transactions, and rendering options in one file. The canonical
// format is TOML; the same structs carry JSON tags so the HTTP API accepts
// the identical shape as a request body.
package manifest

import (
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/billforge/billforge/pkg/errors"
	"github.com/billforge/billforge/pkg/invoice"
	"github.com/billforge/billforge/pkg/money"
	"github.com/billforge/billforge/pkg/render"
	"github.com/billforge/billforge/pkg/story"
)

// validate is the shared validator instance; validator.New is expensive and
// the instance is safe for concurrent use.
var validate = validator.New()

// Manifest is the top-level invoice description. Every section is optional;
// omission means the matching document section is omitted.
type Manifest struct {
	Meta         *render.Metadata     `toml:"meta" json:"meta,omitempty"`
	Invoice      *InvoiceSection      `toml:"invoice" json:"invoice,omitempty"`
	Provider     *ProviderSection     `toml:"provider" json:"provider,omitempty"`
	Client       *ClientSection       `toml:"client" json:"client,omitempty"`
	Items        []ItemSection        `toml:"items" json:"items,omitempty" validate:"dive"`
	Transactions []TransactionSection `toml:"transactions" json:"transactions,omitempty" validate:"dive"`
	Options      OptionsSection       `toml:"options" json:"options"`
}

// InvoiceSection is the invoice header metadata. An empty ID is defaulted to
// a generated UUID.
type InvoiceSection struct {
	ID   string    `toml:"id" json:"id"`
	Date time.Time `toml:"date" json:"date,omitempty"`
	Due  time.Time `toml:"due" json:"due,omitempty"`
}

// ProviderSection is the invoicing party.
type ProviderSection struct {
	Name         string `toml:"name" json:"name" validate:"required"`
	Street       string `toml:"street" json:"street,omitempty"`
	City         string `toml:"city" json:"city,omitempty"`
	State        string `toml:"state" json:"state,omitempty"`
	Country      string `toml:"country" json:"country,omitempty"`
	PostCode     string `toml:"post_code" json:"post_code,omitempty"`
	VATTaxNumber string `toml:"vat_tax_number" json:"vat_tax_number,omitempty"`
}

// ClientSection is the billed party.
type ClientSection struct {
	ID       string `toml:"client_id" json:"client_id,omitempty"`
	Name     string `toml:"name" json:"name" validate:"required"`
	Street   string `toml:"street" json:"street,omitempty"`
	City     string `toml:"city" json:"city,omitempty"`
	State    string `toml:"state" json:"state,omitempty"`
	Country  string `toml:"country" json:"country,omitempty"`
	PostCode string `toml:"post_code" json:"post_code,omitempty"`
	Email    string `toml:"email" json:"email,omitempty" validate:"omitempty,email"`
}

// ItemSection is one invoice line. Monetary fields are decimal strings so no
// precision is lost in transit.
type ItemSection struct {
	Name        string `toml:"name" json:"name" validate:"required"`
	Description string `toml:"description" json:"description,omitempty"`
	Units       int    `toml:"units" json:"units" validate:"gte=0"`
	UnitPrice   string `toml:"unit_price" json:"unit_price" validate:"required"`
	Amount      string `toml:"amount" json:"amount" validate:"required"`
}

// TransactionSection is one received payment.
type TransactionSection struct {
	ID      string    `toml:"id" json:"id" validate:"required"`
	Gateway string    `toml:"gateway" json:"gateway,omitempty"`
	Date    time.Time `toml:"date" json:"date,omitempty"`
	Amount  string    `toml:"amount" json:"amount" validate:"required"`
}

// OptionsSection carries the rendering options consumed by the core.
type OptionsSection struct {
	TaxRate        string `toml:"tax_rate" json:"tax_rate,omitempty"`
	Precision      string `toml:"precision" json:"precision,omitempty"`
	Paid           bool   `toml:"paid" json:"paid,omitempty"`
	BottomTip      string `toml:"bottom_tip" json:"bottom_tip,omitempty"`
	BottomTipAlign string `toml:"bottom_tip_align" json:"bottom_tip_align,omitempty" validate:"omitempty,oneof=left center right"`
	Logo           string `toml:"logo" json:"logo,omitempty"`
}

// Load reads and validates a TOML manifest file.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "manifest %s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "open %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads and validates a TOML manifest from r.
func Decode(r io.Reader) (*Manifest, error) {
	var m Manifest
	if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse manifest")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest's structural constraints (required names,
// non-negative units, well-formed email, known alignments).
func (m *Manifest) Validate() error {
	if err := validate.Struct(m); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidManifest, err, "invalid manifest")
	}
	return nil
}

// Metadata returns the document metadata, falling back to the defaults when
// the manifest has no meta section.
func (m *Manifest) Metadata() render.Metadata {
	if m.Meta == nil || *m.Meta == (render.Metadata{}) {
		return render.DefaultMetadata()
	}
	return *m.Meta
}

// Document converts the manifest into a populated invoice document. Decimal
// fields are parsed here; a non-decimal value surfaces immediately as an
// INVALID_AMOUNT error. A missing invoice ID is defaulted to a UUID.
func (m *Manifest) Document() (*invoice.Document, error) {
	var opts []invoice.Option
	if m.Options.Precision != "" {
		step, err := money.Parse(m.Options.Precision)
		if err != nil {
			return nil, err
		}
		opts = append(opts, invoice.WithPrecision(step))
	}

	doc := invoice.New(opts...)
	doc.Paid = m.Options.Paid

	if m.Invoice != nil {
		id := m.Invoice.ID
		if id == "" {
			id = uuid.NewString()
		}
		doc.Invoice = &invoice.InvoiceInfo{ID: id, Date: m.Invoice.Date, Due: m.Invoice.Due}
	}
	if m.Provider != nil {
		doc.Provider = &invoice.ServiceProviderInfo{
			Name:         m.Provider.Name,
			Street:       m.Provider.Street,
			City:         m.Provider.City,
			State:        m.Provider.State,
			Country:      m.Provider.Country,
			PostCode:     m.Provider.PostCode,
			VATTaxNumber: m.Provider.VATTaxNumber,
		}
	}
	if m.Client != nil {
		doc.Client = &invoice.ClientInfo{
			ID:       m.Client.ID,
			Name:     m.Client.Name,
			Street:   m.Client.Street,
			City:     m.Client.City,
			State:    m.Client.State,
			Country:  m.Client.Country,
			PostCode: m.Client.PostCode,
			Email:    m.Client.Email,
		}
	}

	for _, it := range m.Items {
		price, err := money.Parse(it.UnitPrice)
		if err != nil {
			return nil, err
		}
		amount, err := money.Parse(it.Amount)
		if err != nil {
			return nil, err
		}
		doc.AddItem(invoice.Item{
			Name:        it.Name,
			Description: it.Description,
			Units:       it.Units,
			UnitPrice:   price,
			Amount:      amount,
		})
	}

	for _, tx := range m.Transactions {
		amount, err := money.Parse(tx.Amount)
		if err != nil {
			return nil, err
		}
		doc.AddTransaction(invoice.Transaction{
			ID:      tx.ID,
			Gateway: tx.Gateway,
			Time:    tx.Date,
			Amount:  amount,
		})
	}

	if m.Options.TaxRate != "" {
		rate, err := money.Parse(m.Options.TaxRate)
		if err != nil {
			return nil, err
		}
		doc.SetTaxRate(rate)
	}

	if m.Options.BottomTip != "" {
		align, err := ParseAlign(m.Options.BottomTipAlign)
		if err != nil {
			return nil, err
		}
		doc.SetBottomTip(m.Options.BottomTip, align)
	}

	if m.Options.Logo != "" {
		doc.SetLogo(m.Options.Logo)
	}

	return doc, nil
}

// ParseAlign converts an alignment name to its story alignment. The empty
// string defaults to center, the bottom-tip default.
func ParseAlign(s string) (story.Align, error) {
	switch s {
	case "":
		return story.AlignCenter, nil
	case "left":
		return story.AlignLeft, nil
	case "center":
		return story.AlignCenter, nil
	case "right":
		return story.AlignRight, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidAlignment, "unknown alignment %q", s)
	}
}
