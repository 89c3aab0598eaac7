// Package invoice completes partial invoice requests into fully specified
// records.
//
// The normalizer fills every omitted field with a deterministic default:
// identifiers, dates, the seller profile, and the subtotal/tax/total
// arithmetic. Supplied values always win over derived ones, even an explicit
// zero, and even when the result breaks the subtotal+tax identity: callers
// are trusted verbatim and overrides are never re-validated.
//
// Defaults that depend on time (invoice date, due date, the generated
// invoice number) are resolved against the clock at call time, so
// normalizing the same partial request twice yields different dates and
// numbers. That is intentional: draft timestamps reflect generation time.
//
// The only hard failure is a request with no line items and no flat amount
// to synthesize one from; everything else normalizes. Negative amounts and
// unknown currency codes pass through unchecked.
package invoice

import (
	"github.com/shopspring/decimal"

	"invoicegen/pkg/models"
)

// Defaults applied where the caller left fields blank.
const (
	DefaultCurrency        = "EUR"
	DefaultDueInDays       = 31
	DefaultCustomerName    = "Customer"
	DefaultItemDescription = "Services"

	// DateLayout is the wire format for caller-supplied and emitted dates.
	DateLayout = "2006-01-02"
)

// Seller placeholders, used when neither the request nor the configured
// defaults carry a value.
const (
	defaultCompanyName    = "Your Company Name"
	defaultCompanyAddress = "Your Company Address"
	defaultCompanyEmail   = "company@example.com"
	defaultCompanyPhone   = "+31 123 456 789"
	defaultCompanyVAT     = "NL123456789B01"
)

// DefaultTaxRate returns the fallback tax rate of 21%.
func DefaultTaxRate() decimal.Decimal {
	return decimal.New(21, -2)
}

// Normalizer completes a partial invoice request into a full record.
type Normalizer interface {
	// Normalize resolves every omitted field of req against the configured
	// defaults and the current time. It fails only when no line item can be
	// derived; the error then matches ErrNoLineItems.
	Normalize(req models.InvoiceRequest) (*models.Invoice, error)
}

// Defaults carries the host-configured fallbacks a normalizer applies.
// Zero-valued fields fall back to the package defaults at construction.
// TaxRate is a pointer so a configured 0% rate stays distinct from an
// unset one; only nil falls back to DefaultTaxRate.
type Defaults struct {
	Currency  string
	TaxRate   *decimal.Decimal
	DueInDays int
	Seller    models.SellerProfile
}
