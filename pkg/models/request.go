package models

import "github.com/shopspring/decimal"

// InvoiceRequest is the loosely-typed request the caller hands to the engine.
// Every field except the line items (or the flat Amount fallback) is optional.
// Money fields are pointers so that an explicit zero override can be told
// apart from an omitted field.
type InvoiceRequest struct {
	Customer Customer `json:"customer"`

	// Items is the ordered list of billable entries. When empty, a single
	// item is synthesized from Amount and Item, which mirrors the flat
	// request shape conversational callers produce.
	Items  []LineItem       `json:"items,omitempty"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Item   string           `json:"item,omitempty"`

	// Identity and date overrides. Dates use the YYYY-MM-DD layout.
	InvoiceNumber string `json:"invoice_number,omitempty"`
	InvoiceDate   string `json:"invoice_date,omitempty"`
	DueDate       string `json:"due_date,omitempty"`

	// Monetary overrides. A supplied value wins over the derived one,
	// even when it breaks the subtotal+tax identity.
	Subtotal    *decimal.Decimal `json:"subtotal,omitempty"`
	TaxRate     *decimal.Decimal `json:"tax_rate,omitempty"`
	TaxAmount   *decimal.Decimal `json:"tax_amount,omitempty"`
	TotalAmount *decimal.Decimal `json:"total_amount,omitempty"`
	Currency    string           `json:"currency,omitempty"`

	// Seller overrides, each independently defaulted when empty.
	CompanyName    string `json:"company_name,omitempty"`
	CompanyAddress string `json:"company_address,omitempty"`
	CompanyEmail   string `json:"company_email,omitempty"`
	CompanyPhone   string `json:"company_phone,omitempty"`
	CompanyVAT     string `json:"company_vat,omitempty"`
	CompanyLogo    string `json:"company_logo,omitempty"`
}
