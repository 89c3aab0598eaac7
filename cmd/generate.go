package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"invoicegen/internal/config"
	"invoicegen/internal/engine"
	"invoicegen/internal/invoice"
	"invoicegen/internal/logger"
	"invoicegen/internal/render"
	"invoicegen/pkg/models"
)

var generateCmd = &cobra.Command{
	Use:   "generate [request.json]",
	Short: "Generate a PDF invoice from a partial invoice request",
	Long: `Normalize a loosely-specified invoice request into a complete invoice
record and render it as a styled single-page PDF in the output directory.

The request is either a JSON document or the flat flag set (--customer,
--amount, --item, ...). Every omitted field gets a deterministic default:
invoice number, dates, 21% tax, EUR currency, and the configured seller
profile. Supplied values always win, including explicit zero overrides.

The command prints the structured result as JSON, including the artifact
descriptor (filename, path, byte size, page count, retrieval URL).`,
	Example: `  # Generate from a request document
  invoicegen generate request.json

  # Generate from flat flags (the conversational-caller shape)
  invoicegen generate --customer "Jane Doe" --email jane@x.com --amount 1000 --item Consulting

  # Write the result JSON to a file and the PDF to a custom directory
  invoicegen generate request.json -o result.json --out-dir /var/invoices`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("output", "o", "", "Result JSON output file path (default: stdout)")
	generateCmd.Flags().String("out-dir", "", "Override the configured invoice output directory")
	generateCmd.Flags().Int("timeout", 30, "Generation timeout in seconds")

	// Flat request flags, mirroring the conversational caller's tool signature.
	generateCmd.Flags().String("customer", "", "Customer name")
	generateCmd.Flags().String("email", "", "Customer email")
	generateCmd.Flags().Float64("amount", 0, "Invoice amount for a single synthesized line item")
	generateCmd.Flags().String("item", "", "Line item description")
	generateCmd.Flags().String("due-date", "", "Due date (YYYY-MM-DD, default: invoice date + 31 days)")
	generateCmd.Flags().Float64("tax-rate", 0, "Tax rate as a fraction (default: 0.21)")
	generateCmd.Flags().String("currency", "", "Currency code (default: EUR)")
	generateCmd.Flags().String("logo", "", "Path to a PNG/JPEG company logo")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("generate")

	outputPath, _ := cmd.Flags().GetString("output")
	outDir, _ := cmd.Flags().GetString("out-dir")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	req, err := buildRequest(cmd, args, log)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if outDir != "" {
		cfg.OutputDir = outDir
	}

	ctx, cancel := createGenerateContext(timeoutSecs, log)
	defer cancel()

	renderer, err := render.NewPDFRenderer(cfg.OutputDir)
	if err != nil {
		log.Error().
			Err(err).
			Str("output_dir", cfg.OutputDir).
			Msg("Failed to prepare output directory")
		return fmt.Errorf("failed to prepare output directory %s: %w", cfg.OutputDir, err)
	}
	eng := engine.New(invoice.NewNormalizer(cfg.NormalizerDefaults()), renderer)

	log.Info().
		Str("customer", req.Customer.Name).
		Str("output_dir", cfg.OutputDir).
		Msg("Generating invoice")

	startTime := time.Now()
	result, err := eng.Generate(ctx, req)
	if err != nil {
		return handleGenerateError(err, log)
	}

	log.Info().
		Str("invoice_number", result.InvoiceNumber).
		Str("total", result.TotalAmount.StringFixed(2)).
		Str("currency", result.Currency).
		Str("file", result.PDF.Filepath).
		Dur("duration", time.Since(startTime)).
		Msg("Invoice generation completed successfully")

	return outputResult(result, outputPath, log)
}

// buildRequest assembles the invoice request from a JSON document or the
// flat flag set. The two shapes are mutually exclusive.
func buildRequest(cmd *cobra.Command, args []string, log zerolog.Logger) (models.InvoiceRequest, error) {
	var req models.InvoiceRequest

	if len(args) == 1 {
		if cmd.Flags().Changed("customer") || cmd.Flags().Changed("amount") {
			return req, fmt.Errorf("a request file and flat request flags are mutually exclusive")
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			log.Error().Err(err).Str("file", args[0]).Msg("Failed to read request file")
			return req, fmt.Errorf("failed to read request file: %w", err)
		}
		if err := json.Unmarshal(data, &req); err != nil {
			log.Error().Err(err).Str("file", args[0]).Msg("Request file is not valid JSON")
			return req, fmt.Errorf("invalid request JSON in %s: %w", args[0], err)
		}
		return req, nil
	}

	if !cmd.Flags().Changed("customer") || !cmd.Flags().Changed("amount") {
		return req, fmt.Errorf("either a request file or --customer and --amount are required")
	}

	req.Customer.Name, _ = cmd.Flags().GetString("customer")
	req.Customer.Email, _ = cmd.Flags().GetString("email")
	req.Item, _ = cmd.Flags().GetString("item")
	req.DueDate, _ = cmd.Flags().GetString("due-date")
	req.Currency, _ = cmd.Flags().GetString("currency")
	req.CompanyLogo, _ = cmd.Flags().GetString("logo")

	amount, _ := cmd.Flags().GetFloat64("amount")
	d := decimal.NewFromFloat(amount)
	req.Amount = &d

	// Changed-check keeps an explicit zero distinguishable from an omitted flag.
	if cmd.Flags().Changed("tax-rate") {
		rate, _ := cmd.Flags().GetFloat64("tax-rate")
		r := decimal.NewFromFloat(rate)
		req.TaxRate = &r
	}

	return req, nil
}

// createGenerateContext creates a context with timeout and signal handling
func createGenerateContext(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling invoice generation")
			cancel()
		case <-ctx.Done():
			// Context completed normally
		}
	}()

	return ctx, cancel
}

// handleGenerateError provides user-friendly error messages for generation failures
func handleGenerateError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Invoice generation failed")

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("invoice generation timed out. Try increasing --timeout")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("invoice generation was canceled")
	case errors.Is(err, invoice.ErrNoLineItems):
		return fmt.Errorf("the request has no line items and no amount to derive one from. " +
			"Provide items[] in the request document, or --amount with --item")
	case errors.Is(err, render.ErrRenderFailed):
		return fmt.Errorf("the invoice could not be rendered. Check that the logo is a readable PNG or JPEG: %w", err)
	case errors.Is(err, render.ErrStorageWrite):
		return fmt.Errorf("the PDF could not be written. Check the output directory and its permissions: %w", err)
	default:
		return fmt.Errorf("invoice generation failed: %w", err)
	}
}

// outputResult formats and outputs the generation result as JSON
func outputResult(result *engine.Result, outputPath string, log zerolog.Logger) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal result to JSON")
		return fmt.Errorf("failed to create JSON output: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			log.Error().
				Err(err).
				Str("output_file", outputPath).
				Msg("Failed to write output file")
			return fmt.Errorf("failed to write output file: %w", err)
		}

		log.Info().
			Str("output_file", outputPath).
			Int("bytes", len(jsonData)).
			Msg("Result written to file")
		return nil
	}

	fmt.Println(string(jsonData))
	return nil
}
