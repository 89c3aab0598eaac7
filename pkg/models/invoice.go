package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an invoice. Only drafts exist today;
// the type is kept so a finalization flow can be added without reshaping records.
type Status string

// StatusDraft is the only status the engine produces.
const StatusDraft Status = "DRAFT"

// Customer identifies the billed party. Email is optional and never validated.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LineItem is one billable entry on an invoice.
type LineItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // monetary value, full precision retained
}

// SellerProfile describes the issuing party as printed on the document.
type SellerProfile struct {
	Name     string // company display name, doubles as text branding when no logo is set
	Address  string
	Email    string
	Phone    string
	VATID    string
	LogoPath string // optional path to a PNG or JPEG logo file
}

// Invoice is a fully normalized invoice record. Every field is populated
// by the normalizer; the record is treated as immutable once built.
type Invoice struct {
	InvoiceNumber string
	InvoiceDate   time.Time
	DueDate       time.Time
	Customer      Customer
	Items         []LineItem

	// TaxAmount and TotalAmount are consistent with Subtotal and TaxRate
	// unless the caller overrode them; overrides are trusted verbatim and
	// never re-validated against the arithmetic identity.
	Subtotal    decimal.Decimal
	TaxRate     decimal.Decimal // fraction in [0,1]
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
	Currency    string

	Seller SellerProfile
	Status Status
}
