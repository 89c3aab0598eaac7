package invoice

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"invoicegen/internal/logger"
	"invoicegen/pkg/models"
)

// StandardNormalizer implements Normalizer with the package defaults.
type StandardNormalizer struct {
	defaults Defaults
	now      func() time.Time
	log      zerolog.Logger
}

// NewNormalizer creates a normalizer around the given defaults. Unset
// default fields are backfilled with the package constants, so an empty
// Defaults yields the stock EUR/21%/31-day behavior. A non-nil TaxRate is
// kept verbatim, zero included.
func NewNormalizer(defaults Defaults) *StandardNormalizer {
	if defaults.Currency == "" {
		defaults.Currency = DefaultCurrency
	}
	if defaults.TaxRate == nil {
		rate := DefaultTaxRate()
		defaults.TaxRate = &rate
	}
	if defaults.DueInDays == 0 {
		defaults.DueInDays = DefaultDueInDays
	}
	defaults.Seller = fillSeller(defaults.Seller)
	return &StandardNormalizer{
		defaults: defaults,
		now:      time.Now,
		log:      logger.WithComponent("normalizer"),
	}
}

// Normalize implements Normalizer.
func (n *StandardNormalizer) Normalize(req models.InvoiceRequest) (*models.Invoice, error) {
	now := n.now()

	items, err := n.resolveItems(req)
	if err != nil {
		return nil, err
	}

	subtotal := sumAmounts(items)
	if req.Subtotal != nil {
		subtotal = *req.Subtotal
	}

	taxRate := *n.defaults.TaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}

	taxAmount := subtotal.Mul(taxRate)
	if req.TaxAmount != nil {
		taxAmount = *req.TaxAmount
	}

	total := subtotal.Add(taxAmount)
	if req.TotalAmount != nil {
		total = *req.TotalAmount
	}

	invoiceDate := n.resolveDate("invoice_date", req.InvoiceDate, now)
	dueDate := n.resolveDate("due_date", req.DueDate, invoiceDate.AddDate(0, 0, n.defaults.DueInDays))

	number := req.InvoiceNumber
	if number == "" {
		number = NewInvoiceNumber(now)
	}

	currency := req.Currency
	if currency == "" {
		currency = n.defaults.Currency
	}

	customer := req.Customer
	if customer.Name == "" {
		customer.Name = DefaultCustomerName
	}

	inv := &models.Invoice{
		InvoiceNumber: number,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		Customer:      customer,
		Items:         items,
		Subtotal:      subtotal,
		TaxRate:       taxRate,
		TaxAmount:     taxAmount,
		TotalAmount:   total,
		Currency:      currency,
		Seller:        n.resolveSeller(req),
		Status:        models.StatusDraft,
	}

	n.log.Debug().
		Str("invoice_number", inv.InvoiceNumber).
		Int("items", len(inv.Items)).
		Str("subtotal", inv.Subtotal.StringFixed(2)).
		Str("total", inv.TotalAmount.StringFixed(2)).
		Str("currency", inv.Currency).
		Msg("Request normalized")

	return inv, nil
}

// resolveItems returns the request's item list, synthesizing a one-element
// list from the flat amount/item pair when the list is empty.
func (n *StandardNormalizer) resolveItems(req models.InvoiceRequest) ([]models.LineItem, error) {
	if len(req.Items) > 0 {
		items := make([]models.LineItem, len(req.Items))
		copy(items, req.Items)
		return items, nil
	}
	if req.Amount == nil {
		return nil, NewNormalizationError("Normalize", ErrNoLineItems,
			"request has an empty item list and no flat amount")
	}
	desc := req.Item
	if desc == "" {
		desc = DefaultItemDescription
	}
	return []models.LineItem{{Description: desc, Amount: *req.Amount}}, nil
}

// resolveDate parses a caller-supplied YYYY-MM-DD value, falling back to def
// when the field is absent or malformed. Malformed values are not an error:
// the request stays normalizable, matching the permissive caller contract.
func (n *StandardNormalizer) resolveDate(field, value string, def time.Time) time.Time {
	if value == "" {
		return def
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		n.log.Warn().
			Str("field", field).
			Str("value", value).
			Msg("Unparseable date in request, using default")
		return def
	}
	return t
}

func (n *StandardNormalizer) resolveSeller(req models.InvoiceRequest) models.SellerProfile {
	return fillSeller(models.SellerProfile{
		Name:     firstNonEmpty(req.CompanyName, n.defaults.Seller.Name),
		Address:  firstNonEmpty(req.CompanyAddress, n.defaults.Seller.Address),
		Email:    firstNonEmpty(req.CompanyEmail, n.defaults.Seller.Email),
		Phone:    firstNonEmpty(req.CompanyPhone, n.defaults.Seller.Phone),
		VATID:    firstNonEmpty(req.CompanyVAT, n.defaults.Seller.VATID),
		LogoPath: firstNonEmpty(req.CompanyLogo, n.defaults.Seller.LogoPath),
	})
}

// fillSeller backfills empty profile fields with the placeholder values.
// The logo path stays empty when unset; text branding is the fallback.
func fillSeller(s models.SellerProfile) models.SellerProfile {
	if s.Name == "" {
		s.Name = defaultCompanyName
	}
	if s.Address == "" {
		s.Address = defaultCompanyAddress
	}
	if s.Email == "" {
		s.Email = defaultCompanyEmail
	}
	if s.Phone == "" {
		s.Phone = defaultCompanyPhone
	}
	if s.VATID == "" {
		s.VATID = defaultCompanyVAT
	}
	return s
}

func sumAmounts(items []models.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Amount)
	}
	return sum
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
