// Package engine runs the normalize-render pipeline: a partial request in,
// a structured result plus a persisted document artifact out.
//
// One Generate call is a single synchronous request-scoped transform. The
// engine keeps no shared mutable state between invocations beyond the
// output directory, performs no retries, and has no partial-success mode:
// either a complete invoice and artifact pair comes back, or nothing was
// persisted.
package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"invoicegen/internal/invoice"
	"invoicegen/internal/logger"
	"invoicegen/internal/render"
	"invoicegen/pkg/models"
)

// Engine wires a normalizer and a renderer.
type Engine struct {
	normalizer invoice.Normalizer
	renderer   render.Renderer
	log        zerolog.Logger
}

// New creates an engine from its two components.
func New(n invoice.Normalizer, r render.Renderer) *Engine {
	return &Engine{
		normalizer: n,
		renderer:   r,
		log:        logger.WithComponent("engine"),
	}
}

// Result is the caller-facing output contract.
type Result struct {
	InvoiceNumber string            `json:"invoice_number"`
	InvoiceDate   string            `json:"invoice_date"`
	DueDate       string            `json:"due_date"`
	Customer      models.Customer   `json:"customer"`
	Items         []models.LineItem `json:"items"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	TaxRate       decimal.Decimal   `json:"tax_rate"`
	TaxAmount     decimal.Decimal   `json:"tax_amount"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	Currency      string            `json:"currency"`
	Status        models.Status     `json:"status"`
	PDF           models.Artifact   `json:"pdf"`
}

// Generate normalizes req, renders the document, and assembles the result.
// Errors are terminal for the request and leave nothing persisted.
func (e *Engine) Generate(ctx context.Context, req models.InvoiceRequest) (*Result, error) {
	inv, err := e.normalizer.Normalize(req)
	if err != nil {
		e.log.Error().Err(err).Msg("Request rejected during normalization")
		return nil, err
	}

	artifact, err := e.renderer.Render(ctx, inv)
	if err != nil {
		e.log.Error().
			Err(err).
			Str("invoice_number", inv.InvoiceNumber).
			Msg("Invoice rendering failed")
		return nil, err
	}

	e.log.Info().
		Str("invoice_number", inv.InvoiceNumber).
		Str("customer", inv.Customer.Name).
		Str("total", inv.TotalAmount.StringFixed(2)).
		Str("currency", inv.Currency).
		Str("file", artifact.Filepath).
		Msg("Invoice generated")

	return newResult(inv, artifact), nil
}

func newResult(inv *models.Invoice, artifact *models.Artifact) *Result {
	return &Result{
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate.Format(invoice.DateLayout),
		DueDate:       inv.DueDate.Format(invoice.DateLayout),
		Customer:      inv.Customer,
		Items:         inv.Items,
		Subtotal:      inv.Subtotal,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		TotalAmount:   inv.TotalAmount,
		Currency:      inv.Currency,
		Status:        inv.Status,
		PDF:           *artifact,
	}
}

// BeforeMessage is the conversational lead-in a chat host shows before
// presenting the invoice.
func (r *Result) BeforeMessage() string {
	return fmt.Sprintf("I'll create an invoice for %s.", r.Customer.Name)
}

// AfterMessage is the conversational follow-up shown after the invoice.
func (r *Result) AfterMessage() string {
	return fmt.Sprintf("Here's the invoice (#%s) for %s. Would you like me to send this to your client at %s?",
		r.InvoiceNumber, r.Customer.Name, r.Customer.Email)
}
