package invoice

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"invoicegen/pkg/models"
)

var testNow = time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)

func testNormalizer(d Defaults) *StandardNormalizer {
	n := NewNormalizer(d)
	n.now = func() time.Time { return testNow }
	n.log = zerolog.Nop()
	return n
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decP(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNormalizeDerivedTotals(t *testing.T) {
	n := testNormalizer(Defaults{})

	inv, err := n.Normalize(models.InvoiceRequest{
		Customer: models.Customer{Name: "Jane Doe", Email: "jane@x.com"},
		Amount:   decP("1000.00"),
		Item:     "Consulting",
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if len(inv.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(inv.Items))
	}
	if inv.Items[0].Description != "Consulting" {
		t.Errorf("item description = %q, want %q", inv.Items[0].Description, "Consulting")
	}
	if !inv.Items[0].Amount.Equal(dec("1000.00")) {
		t.Errorf("item amount = %s, want 1000.00", inv.Items[0].Amount)
	}
	if !inv.Subtotal.Equal(dec("1000.00")) {
		t.Errorf("subtotal = %s, want 1000.00", inv.Subtotal)
	}
	if !inv.TaxRate.Equal(dec("0.21")) {
		t.Errorf("tax rate = %s, want 0.21", inv.TaxRate)
	}
	if !inv.TaxAmount.Equal(dec("210.00")) {
		t.Errorf("tax amount = %s, want 210.00", inv.TaxAmount)
	}
	if !inv.TotalAmount.Equal(dec("1210.00")) {
		t.Errorf("total amount = %s, want 1210.00", inv.TotalAmount)
	}
	if inv.Currency != "EUR" {
		t.Errorf("currency = %q, want EUR", inv.Currency)
	}
	if inv.Status != models.StatusDraft {
		t.Errorf("status = %q, want %q", inv.Status, models.StatusDraft)
	}
}

func TestNormalizeSubtotalIsItemSum(t *testing.T) {
	n := testNormalizer(Defaults{})

	inv, err := n.Normalize(models.InvoiceRequest{
		Customer: models.Customer{Name: "Acme"},
		Items: []models.LineItem{
			{Description: "Design", Amount: dec("250.50")},
			{Description: "Development", Amount: dec("749.50")},
		},
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if !inv.Subtotal.Equal(dec("1000")) {
		t.Errorf("subtotal = %s, want 1000", inv.Subtotal)
	}
	if !inv.TaxAmount.Equal(dec("210")) {
		t.Errorf("tax amount = %s, want 210", inv.TaxAmount)
	}
	if !inv.TotalAmount.Equal(dec("1210")) {
		t.Errorf("total = %s, want 1210", inv.TotalAmount)
	}
}

// Overrides are trusted verbatim, even when they break the arithmetic
// identity. This mirrors the caller contract; it is not recomputed away.
func TestNormalizeOverrides(t *testing.T) {
	tests := []struct {
		name         string
		req          models.InvoiceRequest
		wantSubtotal string
		wantTax      string
		wantTotal    string
	}{
		{
			name: "explicit subtotal wins over item sum",
			req: models.InvoiceRequest{
				Items:    []models.LineItem{{Description: "X", Amount: dec("100")}},
				Subtotal: decP("500"),
			},
			wantSubtotal: "500",
			wantTax:      "105",
			wantTotal:    "605",
		},
		{
			name: "explicit zero tax amount is honored",
			req: models.InvoiceRequest{
				Amount:    decP("1000"),
				Item:      "Consulting",
				TaxAmount: decP("0"),
			},
			wantSubtotal: "1000",
			wantTax:      "0",
			wantTotal:    "1000",
		},
		{
			name: "explicit total may diverge from subtotal plus tax",
			req: models.InvoiceRequest{
				Amount:      decP("1000"),
				TotalAmount: decP("999"),
			},
			wantSubtotal: "1000",
			wantTax:      "210",
			wantTotal:    "999",
		},
		{
			name: "tax rate override drives derived amounts",
			req: models.InvoiceRequest{
				Amount:  decP("1000"),
				TaxRate: decP("0.10"),
			},
			wantSubtotal: "1000",
			wantTax:      "100",
			wantTotal:    "1100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := testNormalizer(Defaults{})
			inv, err := n.Normalize(tt.req)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if !inv.Subtotal.Equal(dec(tt.wantSubtotal)) {
				t.Errorf("subtotal = %s, want %s", inv.Subtotal, tt.wantSubtotal)
			}
			if !inv.TaxAmount.Equal(dec(tt.wantTax)) {
				t.Errorf("tax amount = %s, want %s", inv.TaxAmount, tt.wantTax)
			}
			if !inv.TotalAmount.Equal(dec(tt.wantTotal)) {
				t.Errorf("total = %s, want %s", inv.TotalAmount, tt.wantTotal)
			}
		})
	}
}

func TestNormalizeNoLineItems(t *testing.T) {
	n := testNormalizer(Defaults{})

	tests := []struct {
		name string
		req  models.InvoiceRequest
	}{
		{"empty request", models.InvoiceRequest{Customer: models.Customer{Name: "Jane"}}},
		{"subtotal alone derives no items", models.InvoiceRequest{Subtotal: decP("100")}},
		{"description alone derives no items", models.InvoiceRequest{Item: "Consulting"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.req)
			if !errors.Is(err, ErrNoLineItems) {
				t.Fatalf("Normalize() error = %v, want ErrNoLineItems", err)
			}
		})
	}
}

func TestNormalizeSynthesizesItem(t *testing.T) {
	n := testNormalizer(Defaults{})

	inv, err := n.Normalize(models.InvoiceRequest{Amount: decP("42.50")})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(inv.Items) != 1 {
		t.Fatalf("expected 1 synthesized item, got %d", len(inv.Items))
	}
	if inv.Items[0].Description != DefaultItemDescription {
		t.Errorf("description = %q, want %q", inv.Items[0].Description, DefaultItemDescription)
	}

	// An explicit item list wins over the flat fallback pair.
	inv, err = n.Normalize(models.InvoiceRequest{
		Items:  []models.LineItem{{Description: "Hosting", Amount: dec("10")}},
		Amount: decP("9999"),
		Item:   "ignored",
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(inv.Items) != 1 || inv.Items[0].Description != "Hosting" {
		t.Fatalf("expected the explicit item list to win, got %+v", inv.Items)
	}
	if !inv.Subtotal.Equal(dec("10")) {
		t.Errorf("subtotal = %s, want 10", inv.Subtotal)
	}
}

func TestNormalizeDates(t *testing.T) {
	n := testNormalizer(Defaults{})

	inv, err := n.Normalize(models.InvoiceRequest{Amount: decP("1")})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if !inv.InvoiceDate.Equal(testNow) {
		t.Errorf("invoice date = %v, want %v", inv.InvoiceDate, testNow)
	}
	if want := testNow.AddDate(0, 0, 31); !inv.DueDate.Equal(want) {
		t.Errorf("due date = %v, want %v", inv.DueDate, want)
	}

	inv, err = n.Normalize(models.InvoiceRequest{
		Amount:      decP("1"),
		InvoiceDate: "2026-07-01",
		DueDate:     "2026-09-30",
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got := inv.InvoiceDate.Format(DateLayout); got != "2026-07-01" {
		t.Errorf("invoice date = %s, want 2026-07-01", got)
	}
	if got := inv.DueDate.Format(DateLayout); got != "2026-09-30" {
		t.Errorf("due date = %s, want 2026-09-30", got)
	}

	// Malformed dates fall back to the defaults rather than failing.
	inv, err = n.Normalize(models.InvoiceRequest{Amount: decP("1"), DueDate: "soon"})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if want := testNow.AddDate(0, 0, 31); !inv.DueDate.Equal(want) {
		t.Errorf("due date = %v, want default %v", inv.DueDate, want)
	}
}

func TestNormalizeDueDateFollowsInvoiceDate(t *testing.T) {
	n := testNormalizer(Defaults{})

	inv, err := n.Normalize(models.InvoiceRequest{
		Amount:      decP("1"),
		InvoiceDate: "2026-01-10",
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got := inv.DueDate.Format(DateLayout); got != "2026-02-10" {
		t.Errorf("due date = %s, want 2026-02-10 (invoice date + 31 days)", got)
	}
}

func TestNormalizeNumberPreserved(t *testing.T) {
	n := testNormalizer(Defaults{})

	inv, err := n.Normalize(models.InvoiceRequest{
		Amount:        decP("1"),
		InvoiceNumber: "INV-2025-01-CAFE1",
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if inv.InvoiceNumber != "INV-2025-01-CAFE1" {
		t.Errorf("invoice number = %q, want the caller-supplied one", inv.InvoiceNumber)
	}
}

func TestNormalizeCustomerDefault(t *testing.T) {
	n := testNormalizer(Defaults{})

	inv, err := n.Normalize(models.InvoiceRequest{Amount: decP("1")})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if inv.Customer.Name != DefaultCustomerName {
		t.Errorf("customer name = %q, want %q", inv.Customer.Name, DefaultCustomerName)
	}
	if inv.Customer.Email != "" {
		t.Errorf("customer email = %q, want empty", inv.Customer.Email)
	}
}

func TestNormalizeSellerProfile(t *testing.T) {
	// Built-in placeholders apply when nothing is configured.
	n := testNormalizer(Defaults{})
	inv, err := n.Normalize(models.InvoiceRequest{Amount: decP("1")})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if inv.Seller.Name != "Your Company Name" {
		t.Errorf("seller name = %q, want placeholder", inv.Seller.Name)
	}
	if inv.Seller.VATID != "NL123456789B01" {
		t.Errorf("seller VAT = %q, want placeholder", inv.Seller.VATID)
	}

	// Configured defaults win over placeholders, request overrides win over both.
	n = testNormalizer(Defaults{Seller: models.SellerProfile{Name: "Freelance BV", Email: "billing@freelance.example"}})
	inv, err = n.Normalize(models.InvoiceRequest{
		Amount:       decP("1"),
		CompanyEmail: "invoices@freelance.example",
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if inv.Seller.Name != "Freelance BV" {
		t.Errorf("seller name = %q, want configured default", inv.Seller.Name)
	}
	if inv.Seller.Email != "invoices@freelance.example" {
		t.Errorf("seller email = %q, want request override", inv.Seller.Email)
	}
	if inv.Seller.Phone != "+31 123 456 789" {
		t.Errorf("seller phone = %q, want placeholder", inv.Seller.Phone)
	}
}

func TestNormalizeDefaultsBackfill(t *testing.T) {
	n := NewNormalizer(Defaults{})
	if n.defaults.Currency != DefaultCurrency {
		t.Errorf("currency default = %q, want %q", n.defaults.Currency, DefaultCurrency)
	}
	if n.defaults.TaxRate == nil || !n.defaults.TaxRate.Equal(dec("0.21")) {
		t.Errorf("tax rate default = %v, want 0.21", n.defaults.TaxRate)
	}
	if n.defaults.DueInDays != DefaultDueInDays {
		t.Errorf("due days default = %d, want %d", n.defaults.DueInDays, DefaultDueInDays)
	}
}

// A host configured for a 0% regime must not fall back to the 21% default;
// only a nil rate does.
func TestNormalizeConfiguredZeroTaxRate(t *testing.T) {
	n := testNormalizer(Defaults{TaxRate: decP("0")})

	inv, err := n.Normalize(models.InvoiceRequest{Amount: decP("1000")})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if !inv.TaxRate.IsZero() {
		t.Errorf("tax rate = %s, want 0", inv.TaxRate)
	}
	if !inv.TaxAmount.IsZero() {
		t.Errorf("tax amount = %s, want 0", inv.TaxAmount)
	}
	if !inv.TotalAmount.Equal(dec("1000")) {
		t.Errorf("total = %s, want 1000", inv.TotalAmount)
	}

	// A request-level override still wins over the configured rate.
	inv, err = n.Normalize(models.InvoiceRequest{Amount: decP("1000"), TaxRate: decP("0.05")})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if !inv.TaxAmount.Equal(dec("50")) {
		t.Errorf("tax amount = %s, want 50", inv.TaxAmount)
	}
}
