package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ptcmobile/handlers"
	"ptcmobile/services"
)

// newRenderCmd renders an invoice to a file without starting the server.
func newRenderCmd(profile services.CompanyProfile, logger *zap.Logger) *cobra.Command {
	var (
		sample bool
		input  string
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an invoice to PDF, Excel or HTML",
		Example: "  ptcmobile render --sample --format pdf\n" +
			"  ptcmobile render --input invoice.json --format xlsx --out bill.xlsx",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := loadInvoice(sample, input)
			if err != nil {
				return err
			}

			var renderer services.DocumentRenderer
			for _, r := range handlers.DocumentRenderers() {
				if r.Format() == strings.ToLower(format) {
					renderer = r
				}
			}
			if renderer == nil {
				return fmt.Errorf("unknown format %q (want pdf, xlsx or html)", format)
			}

			doc, err := services.RenderDocument(inv, time.Now())
			if err != nil {
				return err
			}
			res, err := renderer.Render(cmd.Context(), doc, profile)
			if err != nil {
				return err
			}

			if out == "" {
				out = res.Filename
			}
			if err := os.WriteFile(out, res.Body, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			logger.Info("render: wrote invoice",
				zap.String("file", out),
				zap.String("format", renderer.Format()),
				zap.Int("bytes", len(res.Body)),
			)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&sample, "sample", false, "render the built-in sample invoice")
	cmd.Flags().StringVar(&input, "input", "", "invoice JSON file")
	cmd.Flags().StringVar(&format, "format", services.FormatPDF, "output format: pdf, xlsx or html")
	cmd.Flags().StringVar(&out, "out", "", "output file (default Invoice_<no>.<format>)")
	cmd.MarkFlagsMutuallyExclusive("sample", "input")
	cmd.MarkFlagsOneRequired("sample", "input")

	return cmd
}

func loadInvoice(sample bool, input string) (*services.Invoice, error) {
	if sample {
		return services.SampleInvoice(), nil
	}
	if input == "" {
		return nil, errors.New("either --sample or --input is required")
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("open invoice: %w", err)
	}
	defer f.Close()
	return services.DecodeInvoice(f)
}
