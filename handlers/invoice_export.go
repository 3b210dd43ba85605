package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"ptcmobile/services"
)

var errNothingRendered = fmt.Errorf("no generated invoice: %w", services.ErrInvalidTransition)

// HandleInvoiceDocument returns a handler that serves the markup of the last
// generated invoice, for the preview frame. The markup kept by generate is
// served as is; without it the document is rendered with the profile it was
// generated with.
func HandleInvoiceDocument(d *InvoiceDeps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		w, err := d.Store.Get(GetWorkspaceID(e.Request))
		if err != nil {
			return d.fail(e, "invoice_document", err)
		}
		if w.Document == nil {
			return d.fail(e, "invoice_document", errNothingRendered)
		}

		if w.Markup != "" {
			return e.HTML(http.StatusOK, w.Markup)
		}
		markup, err := d.RenderMarkup(e.Request.Context(), w.Document, w.Profile)
		if err != nil {
			return d.fail(e, "invoice_document", fmt.Errorf("%w: html: %v", services.ErrExternalRender, err))
		}
		return e.HTML(http.StatusOK, markup)
	}
}

// HandleInvoiceExport returns a handler that downloads the last generated
// invoice as {format}: pdf, xlsx or html.
func HandleInvoiceExport(d *InvoiceDeps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		format := e.Request.PathValue("format")
		renderer, ok := d.renderer(format)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, fmt.Sprintf("Unknown export format %q", format))
		}

		w, err := d.Store.Get(GetWorkspaceID(e.Request))
		if err != nil {
			return d.fail(e, "invoice_export", err)
		}
		if w.Document == nil {
			return d.fail(e, "invoice_export", errNothingRendered)
		}

		start := time.Now()
		out, err := renderer.Render(e.Request.Context(), w.Document, w.Profile)
		d.Metrics.ObserveRender(format, time.Since(start), err)
		if err != nil {
			return d.fail(e, "invoice_export", err)
		}

		d.Logger.Info("invoice_export: rendered",
			zap.String("workspace", w.ID),
			zap.String("format", format),
			zap.String("filename", out.Filename),
			zap.Int("bytes", len(out.Body)),
		)

		e.Response.Header().Set("Content-Type", out.ContentType)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, out.Filename))
		e.Response.Write(out.Body)
		return nil
	}
}

// InvoiceSnapshot is the JSON view of a workspace.
type InvoiceSnapshot struct {
	State   services.ScreenState `json:"state"`
	Invoice *services.Invoice    `json:"invoice"`
	Totals  SnapshotTotals       `json:"totals"`
	// RenderedAt is set once the invoice has been generated.
	RenderedAt *time.Time `json:"renderedAt,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// SnapshotTotals are the entry form totals with two decimals.
type SnapshotTotals struct {
	TotalFreight    string `json:"totalFreight"`
	TotalCommission string `json:"totalCommission"`
	TotalAdvance    string `json:"totalAdvance"`
	TotalBalance    string `json:"totalBalance"`
}

// HandleInvoiceAPI returns a handler that reports the session's invoice as
// JSON.
func HandleInvoiceAPI(d *InvoiceDeps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		w, err := d.Store.Get(GetWorkspaceID(e.Request))
		if err != nil {
			status, msg := errorStatus(err)
			return e.JSON(status, map[string]string{"error": msg})
		}

		totals := w.Invoice.Totals()
		snap := InvoiceSnapshot{
			State:   w.State,
			Invoice: w.Invoice,
			Totals: SnapshotTotals{
				TotalFreight:    services.FormatAmount(totals.TotalFreight),
				TotalCommission: services.FormatAmount(totals.TotalCommission),
				TotalAdvance:    services.FormatAmount(totals.TotalAdvance),
				TotalBalance:    services.FormatAmount(totals.TotalBalance),
			},
			UpdatedAt: w.UpdatedAt,
		}
		if w.Document != nil {
			at := w.Document.RenderedAt
			snap.RenderedAt = &at
		}
		return e.JSON(http.StatusOK, snap)
	}
}
