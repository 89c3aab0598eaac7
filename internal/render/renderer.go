// Package render lays out normalized invoices into single-page PDF
// documents and persists them to an output directory.
//
// Rendering is a pure presentation concern: a malformed invoice record
// (negative amounts, odd currency codes) is rendered as-is, since the
// normalizer is the sole validation boundary. The renderer fails only on
// bad visual input (an unreadable logo) or on storage I/O.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"

	// Logo decoders. The logo is the only untrusted external input.
	_ "image/jpeg"
	_ "image/png"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"invoicegen/internal/logger"
	"invoicegen/pkg/models"
)

// Renderer produces a persisted document artifact from an invoice record.
type Renderer interface {
	Render(ctx context.Context, inv *models.Invoice) (*models.Artifact, error)
}

// PDFRenderer composes the fixed invoice layout through a DocumentBuilder
// and writes the result to its output directory.
type PDFRenderer struct {
	outputDir  string
	newBuilder func() DocumentBuilder
	log        zerolog.Logger
}

// NewPDFRenderer creates a renderer writing into outputDir, creating the
// directory if needed.
func NewPDFRenderer(outputDir string) (*PDFRenderer, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, NewRenderError("NewPDFRenderer", ErrStorageWrite,
			"creating output directory: "+err.Error())
	}
	return &PDFRenderer{
		outputDir:  outputDir,
		newBuilder: NewMarotoBuilder,
		log:        logger.WithComponent("render"),
	}, nil
}

// Render implements Renderer. Either a complete artifact is persisted or
// nothing is; there is no partial-success mode.
func (r *PDFRenderer) Render(ctx context.Context, inv *models.Invoice) (*models.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := r.newBuilder()
	if err := composeInvoice(b, inv); err != nil {
		return nil, err
	}

	data, err := b.Output()
	if err != nil {
		return nil, NewRenderError("Render", ErrRenderFailed, err.Error())
	}

	filename := ArtifactFilename(inv.InvoiceNumber)
	path, err := writeArtifact(r.outputDir, filename, data)
	if err != nil {
		return nil, err
	}

	artifact := &models.Artifact{
		Filename: filename,
		Filepath: path,
		Size:     int64(len(data)),
		Pages:    1, // single-page layout; field kept for a future pagination policy
		URL:      "/invoices/" + filename,
	}

	r.log.Info().
		Str("invoice_number", inv.InvoiceNumber).
		Str("file", path).
		Int64("size", artifact.Size).
		Msg("Invoice document persisted")

	return artifact, nil
}

// composeInvoice emits the band sequence: header, parties, dates, line-item
// table, totals, payment footer, closing note.
func composeInvoice(b DocumentBuilder, inv *models.Invoice) error {
	logo, ext, err := loadLogo(inv.Seller.LogoPath)
	if err != nil {
		return err
	}

	// Header band: logo or text branding left, "INVOICE" and number right.
	left := Span{Width: 6, Lines: []StyledText{
		{Text: inv.Seller.Name, Style: TextStyle{Bold: true, Size: 16}},
	}}
	if logo != nil {
		left = Span{Width: 6, Image: logo, ImageExt: ext}
	}
	b.AddRow(20, RowStyle{},
		left,
		Span{Width: 6, Lines: []StyledText{
			{Text: "INVOICE", Style: TextStyle{Bold: true, Size: 12, Align: AlignRight}},
			{Text: "#" + inv.InvoiceNumber, Style: TextStyle{Align: AlignRight}},
		}},
	)
	b.AddSpacer(10)

	// Parties band: seller block left, bill-to block right, equal halves.
	b.AddRow(30, RowStyle{},
		Span{Width: 6, Lines: []StyledText{
			{Text: inv.Seller.Name, Style: TextStyle{Bold: true}},
			{Text: inv.Seller.Address},
			{Text: "Email: " + inv.Seller.Email},
			{Text: "Phone: " + inv.Seller.Phone},
			{Text: "VAT: " + inv.Seller.VATID},
		}},
		Span{Width: 6, Lines: []StyledText{
			{Text: "Bill To:", Style: TextStyle{Bold: true}},
			{Text: inv.Customer.Name},
			{Text: "Email: " + inv.Customer.Email},
		}},
	)

	// Dates band.
	b.AddRow(6, RowStyle{},
		Span{Width: 6, Lines: []StyledText{{Text: "Invoice Date:", Style: TextStyle{Bold: true}}}},
		Span{Width: 6, Lines: []StyledText{{Text: "Due Date:", Style: TextStyle{Bold: true}}}},
	)
	b.AddRow(6, RowStyle{},
		Span{Width: 6, Lines: []StyledText{{Text: inv.InvoiceDate.Format("2006-01-02")}}},
		Span{Width: 6, Lines: []StyledText{{Text: inv.DueDate.Format("2006-01-02")}}},
	)
	b.AddSpacer(5)

	// Line-item table. An empty item list still renders the header row.
	rows := make([][]string, 0, len(inv.Items))
	for _, item := range inv.Items {
		rows = append(rows, []string{item.Description, formatAmount(inv.Currency, item.Amount)})
	}
	b.AddRuledTable([]string{"Description", "Amount"}, rows, []int{8, 4})
	b.AddSpacer(5)

	// Totals block.
	b.AddRow(6, RowStyle{},
		Span{Width: 8, Lines: []StyledText{{Text: "Subtotal:"}}},
		Span{Width: 4, Lines: []StyledText{{Text: formatAmount(inv.Currency, inv.Subtotal), Style: TextStyle{Align: AlignRight}}}},
	)
	b.AddRow(6, RowStyle{},
		Span{Width: 8, Lines: []StyledText{{Text: taxLabel(inv.TaxRate)}}},
		Span{Width: 4, Lines: []StyledText{{Text: formatAmount(inv.Currency, inv.TaxAmount), Style: TextStyle{Align: AlignRight}}}},
	)
	b.AddRow(7, RowStyle{TopRule: true},
		Span{Width: 8, Lines: []StyledText{{Text: "Total:", Style: TextStyle{Bold: true}}}},
		Span{Width: 4, Lines: []StyledText{{Text: formatAmount(inv.Currency, inv.TotalAmount), Style: TextStyle{Bold: true, Align: AlignRight}}}},
	)
	b.AddSpacer(10)

	// Payment footer.
	b.AddParagraph("Payment Information:", TextStyle{Bold: true})
	b.AddParagraph("Please make payment to: "+inv.Seller.Name, TextStyle{})
	b.AddParagraph("Bank: Your Bank Name", TextStyle{})
	b.AddParagraph("IBAN: NL00 BANK 0123 4567 89", TextStyle{})
	b.AddParagraph("Reference: "+inv.InvoiceNumber, TextStyle{})
	b.AddSpacer(10)

	b.AddParagraph("Thank you for your business!", TextStyle{Align: AlignCenter})
	return nil
}

// loadLogo reads and sniffs the seller logo. An empty path is the text
// branding fallback; a supplied path that cannot be read or decoded is a
// render failure, never a silently blank cell.
func loadLogo(path string) ([]byte, string, error) {
	if path == "" {
		return nil, "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", NewRenderError("loadLogo", ErrRenderFailed,
			"reading logo file: "+err.Error())
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", NewRenderError("loadLogo", ErrRenderFailed,
			fmt.Sprintf("logo %s is not a valid image: %v", path, err))
	}
	return data, format, nil
}

// formatAmount renders a monetary value with its currency prefix and fixed
// two-decimal presentation, e.g. "EUR 1000.00".
func formatAmount(currency string, amount decimal.Decimal) string {
	return currency + " " + amount.StringFixed(2)
}

// taxLabel renders the integer-percent tax label, e.g. "Tax (21%):".
func taxLabel(rate decimal.Decimal) string {
	return fmt.Sprintf("Tax (%s%%):", rate.Mul(decimal.New(100, 0)).Round(0).String())
}
