package manifest

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/billforge/billforge/pkg/errors"
	"github.com/billforge/billforge/pkg/story"
)

const sampleTOML = `
[meta]
title = "Invoice"
author = "Acme Billing"
subject = "Invoice"

[invoice]
id = "INV-2015-06"
date = 2015-06-01T13:30:00Z
due = 2015-07-01T00:00:00Z

[provider]
name = "Acme Corp"
street = "1 Industrial Way"
city = "Springfield"
country = "US"
post_code = "12345"
vat_tax_number = "VAT-999"

[client]
name = "Example Client"
email = "client@example.com"
client_id = "C-42"

[[items]]
name = "Widget"
description = "A widget"
units = 3
unit_price = "1.15"
amount = "3.45"

[[items]]
name = "Gadget"
units = 1
unit_price = "20.005"
amount = "20.005"

[[transactions]]
id = "tx-1"
gateway = "paypal"
date = 2015-06-02T09:00:00Z
amount = "9.90"

[options]
tax_rate = "7.5"
precision = "0.01"
paid = true
bottom_tip = "Email: billing@acme.example"
bottom_tip_align = "center"
logo = "logo.png"
`

func TestDecodeSample(t *testing.T) {
	m, err := Decode(strings.NewReader(sampleTOML))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	if m.Invoice.ID != "INV-2015-06" {
		t.Errorf("invoice id = %q", m.Invoice.ID)
	}
	if m.Provider.Name != "Acme Corp" || m.Client.Name != "Example Client" {
		t.Errorf("parties = %q / %q", m.Provider.Name, m.Client.Name)
	}
	if len(m.Items) != 2 || len(m.Transactions) != 1 {
		t.Errorf("items = %d, transactions = %d", len(m.Items), len(m.Transactions))
	}
	if !m.Options.Paid || m.Options.TaxRate != "7.5" {
		t.Errorf("options = %+v", m.Options)
	}
}

func TestDocumentConversion(t *testing.T) {
	m, err := Decode(strings.NewReader(sampleTOML))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	doc, err := m.Document()
	if err != nil {
		t.Fatalf("Document error: %v", err)
	}

	if doc.Invoice == nil || doc.Invoice.ID != "INV-2015-06" {
		t.Error("invoice info not carried over")
	}
	if !doc.Paid {
		t.Error("paid flag not carried over")
	}
	items := doc.Items()
	if len(items) != 2 || !items[0].UnitPrice.Equal(mustDec(t, "1.15")) {
		t.Errorf("items = %+v", items)
	}
	rate, ok := doc.TaxRate()
	if !ok || !rate.Equal(mustDec(t, "7.5")) {
		t.Errorf("tax rate = %s, %v", rate, ok)
	}
	tip, align, ok := doc.BottomTip()
	if !ok || tip == "" || align != story.AlignCenter {
		t.Errorf("bottom tip = %q, %q, %v", tip, align, ok)
	}
	if doc.Logo() != "logo.png" {
		t.Errorf("logo = %q", doc.Logo())
	}
}

func TestDocumentDefaultsInvoiceID(t *testing.T) {
	m, err := Decode(strings.NewReader("[invoice]\n"))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	doc, err := m.Document()
	if err != nil {
		t.Fatalf("Document error: %v", err)
	}
	if doc.Invoice == nil || doc.Invoice.ID == "" {
		t.Error("missing invoice id should be defaulted to a UUID")
	}
}

func TestDecodeRejectsMissingName(t *testing.T) {
	_, err := Decode(strings.NewReader("[provider]\nstreet = \"somewhere\"\n"))
	if err == nil {
		t.Fatal("provider without a name should fail validation")
	}
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("error code = %q, want INVALID_MANIFEST", errors.GetCode(err))
	}
}

func TestDecodeRejectsBadEmail(t *testing.T) {
	_, err := Decode(strings.NewReader("[client]\nname = \"C\"\nemail = \"not-an-email\"\n"))
	if err == nil {
		t.Fatal("bad email should fail validation")
	}
}

func TestDecodeRejectsNegativeUnits(t *testing.T) {
	src := "[[items]]\nname = \"w\"\nunits = -1\nunit_price = \"1\"\namount = \"1\"\n"
	if _, err := Decode(strings.NewReader(src)); err == nil {
		t.Fatal("negative units should fail validation")
	}
}

func TestDocumentRejectsBadDecimal(t *testing.T) {
	src := "[[items]]\nname = \"w\"\nunits = 1\nunit_price = \"abc\"\namount = \"1\"\n"
	m, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	_, err = m.Document()
	if err == nil {
		t.Fatal("non-decimal unit price should fail conversion")
	}
	if !errors.Is(err, errors.ErrCodeInvalidAmount) {
		t.Errorf("error code = %q, want INVALID_AMOUNT", errors.GetCode(err))
	}
}

func TestDecodeRejectsUnknownAlignment(t *testing.T) {
	src := "[options]\nbottom_tip = \"hi\"\nbottom_tip_align = \"justified\"\n"
	if _, err := Decode(strings.NewReader(src)); err == nil {
		t.Fatal("unknown alignment should fail validation")
	}
}

func TestParseAlign(t *testing.T) {
	tests := []struct {
		in      string
		want    story.Align
		wantErr bool
	}{
		{"", story.AlignCenter, false},
		{"left", story.AlignLeft, false},
		{"center", story.AlignCenter, false},
		{"right", story.AlignRight, false},
		{"justified", "", true},
	}

	for _, tt := range tests {
		got, err := ParseAlign(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAlign(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAlign(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAlign(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does/not/exist.toml")
	if err == nil {
		t.Fatal("Load should fail for a missing file")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %q, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad test decimal %q: %v", s, err)
	}
	return d
}
