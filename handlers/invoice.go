package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"ptcmobile/metrics"
	"ptcmobile/services"
	"ptcmobile/templates"
)

// InvoiceDeps is the state shared by the invoice and settings handlers.
type InvoiceDeps struct {
	App       *pocketbase.PocketBase
	Store     *services.WorkspaceStore
	Renderers []services.DocumentRenderer
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	// Company is printed when no profile has been saved yet.
	Company services.CompanyProfile
	Now     func() time.Time
	// RenderMarkup renders the preview frame's HTML.
	RenderMarkup func(ctx context.Context, doc *services.RenderedDocument, profile services.CompanyProfile) (string, error)
}

// DocumentRenderers lists the download formats in the order they are offered.
func DocumentRenderers() []services.DocumentRenderer {
	return []services.DocumentRenderer{
		services.PDFRenderer{},
		services.ExcelRenderer{},
		templates.HTMLRenderer{},
	}
}

// NewInvoiceDeps wires every document renderer.
func NewInvoiceDeps(app *pocketbase.PocketBase, store *services.WorkspaceStore, m *metrics.Metrics, logger *zap.Logger, company services.CompanyProfile) *InvoiceDeps {
	return &InvoiceDeps{
		App:       app,
		Store:     store,
		Renderers: DocumentRenderers(),
		Metrics:   m,
		Logger:    logger,
		Company:   company,
		Now:       time.Now,

		RenderMarkup: templates.RenderMarkup,
	}
}

func (d *InvoiceDeps) formats() []string {
	formats := make([]string, 0, len(d.Renderers))
	for _, r := range d.Renderers {
		formats = append(formats, r.Format())
	}
	return formats
}

func (d *InvoiceDeps) renderer(format string) (services.DocumentRenderer, bool) {
	for _, r := range d.Renderers {
		if r.Format() == format {
			return r, true
		}
	}
	return nil, false
}

func (d *InvoiceDeps) profile() services.CompanyProfile {
	return services.LoadCompanyProfile(d.App, d.Company)
}

func isHTMX(e *core.RequestEvent) bool {
	return e.Request.Header.Get("HX-Request") == "true"
}

// redirectToInvoice sends the browser back to the invoice screen, which shows
// the editor or the preview depending on the workspace state.
func redirectToInvoice(e *core.RequestEvent) error {
	if isHTMX(e) {
		e.Response.Header().Set("HX-Redirect", "/invoice")
		return e.String(http.StatusOK, "")
	}
	return e.Redirect(http.StatusSeeOther, "/invoice")
}

func editorData(w *services.Workspace) templates.EditorData {
	return templates.EditorData{Invoice: w.Invoice, Totals: w.Invoice.Totals()}
}

// respondEditor re-renders the editor fragment for HTMX and redirects
// everything else.
func respondEditor(e *core.RequestEvent, w *services.Workspace) error {
	if !isHTMX(e) {
		return redirectToInvoice(e)
	}
	return templates.InvoiceEditor(editorData(w)).Render(e.Request.Context(), e.Response)
}

// HandleInvoicePage returns a handler that shows the editor, or the preview
// when the workspace has a generated invoice on screen.
func HandleInvoicePage(d *InvoiceDeps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		w, err := d.Store.Get(GetWorkspaceID(e.Request))
		if err != nil {
			return d.fail(e, "invoice_page", err)
		}

		var component templ.Component
		if w.State == services.StatePreviewing && w.Document != nil {
			data := templates.PreviewData{Document: w.Document, Formats: d.formats()}
			if isHTMX(e) {
				component = templates.InvoicePreview(data)
			} else {
				component = templates.InvoicePreviewPage(data)
			}
		} else {
			if isHTMX(e) {
				component = templates.InvoiceEditor(editorData(w))
			} else {
				component = templates.InvoiceEditorPage(editorData(w))
			}
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleInvoiceNew returns a handler that replaces the invoice with a blank
// one dated today.
func HandleInvoiceNew(d *InvoiceDeps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		now := d.Now()
		w, err := d.Store.Update(GetWorkspaceID(e.Request), now, func(w *services.Workspace) error {
			w.Reset(services.NewInvoice(now))
			return nil
		})
		if err != nil {
			return d.fail(e, "invoice_new", err)
		}
		d.Logger.Info("invoice_new: started blank invoice", zap.String("workspace", w.ID))
		SetToast(e, ToastInfo, "Started a new invoice")
		return respondEditor(e, w)
	}
}

// HandleInvoiceSample returns a handler that loads the sample trip.
func HandleInvoiceSample(d *InvoiceDeps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		w, err := d.Store.Update(GetWorkspaceID(e.Request), d.Now(), func(w *services.Workspace) error {
			w.Reset(services.SampleInvoice())
			return nil
		})
		if err != nil {
			return d.fail(e, "invoice_sample", err)
		}
		SetToast(e, ToastInfo, "Sample invoice loaded")
		return respondEditor(e, w)
	}
}

// HandleHeaderPatch returns a handler that sets one header field from the
// form values "field" and "value".
func HandleHeaderPatch(d *InvoiceDeps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		field := services.HeaderField(e.Request.FormValue("field"))
		value := e.Request.FormValue("value")

		return d.editInvoice(e, "invoice_header", func(inv *services.Invoice) error {
			return inv.SetHeaderField(field, value)
		})
	}
}

// HandleLinePatch returns a handler that sets one field of the line at
// {index}. Amount changes recompute the line and the header commission.
func HandleLinePatch(d *InvoiceDeps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		index, err := lineIndex(e)
		if err != nil {
			return d.fail(e, "invoice_line", err)
		}
		field := services.LineField(e.Request.FormValue("field"))
		value := e.Request.FormValue("value")

		return d.editInvoice(e, "invoice_line", func(inv *services.Invoice) error {
			return inv.SetLineField(index, field, value)
		})
	}
}

// HandleLineAdd returns a handler that appends a vehicle line.
func HandleLineAdd(d *InvoiceDeps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return d.editInvoice(e, "invoice_line_add", func(inv *services.Invoice) error {
			inv.AddLine()
			return nil
		})
	}
}

// HandleLineRemove returns a handler that removes the line at {index}. The
// last remaining line is kept.
func HandleLineRemove(d *InvoiceDeps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		index, err := lineIndex(e)
		if err != nil {
			return d.fail(e, "invoice_line_remove", err)
		}

		return d.editInvoice(e, "invoice_line_remove", func(inv *services.Invoice) error {
			removed, err := inv.RemoveLine(index)
			if err == nil && !removed {
				SetToast(e, ToastInfo, "An invoice needs at least one vehicle")
			}
			return err
		})
	}
}

// HandleInvoicePreview returns a handler that generates the invoice and
// switches the screen to the preview.
func HandleInvoicePreview(d *InvoiceDeps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		now := d.Now()
		profile := d.profile()

		markup := func(doc *services.RenderedDocument, profile services.CompanyProfile) (string, error) {
			start := time.Now()
			html, err := d.RenderMarkup(e.Request.Context(), doc, profile)
			d.Metrics.ObserveRender(services.FormatHTML, time.Since(start), err)
			if err != nil {
				return "", fmt.Errorf("%w: html: %v", services.ErrExternalRender, err)
			}
			return html, nil
		}

		w, err := d.Store.Update(GetWorkspaceID(e.Request), now, func(w *services.Workspace) error {
			_, err := w.Preview(now, profile, markup)
			return err
		})
		if err != nil {
			return d.fail(e, "invoice_preview", err)
		}

		d.Logger.Info("invoice_preview: generated",
			zap.String("workspace", w.ID),
			zap.String("invoice_no", w.Invoice.Header.InvoiceNo),
			zap.Int("lines", len(w.Invoice.Lines)),
			zap.String("balance", services.FormatAmount(w.Document.TotalBalance)),
		)
		return redirectToInvoice(e)
	}
}

// HandleInvoiceBack returns a handler that leaves the preview for the editor.
func HandleInvoiceBack(d *InvoiceDeps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		_, err := d.Store.Update(GetWorkspaceID(e.Request), d.Now(), func(w *services.Workspace) error {
			return w.Back()
		})
		if err != nil {
			return d.fail(e, "invoice_back", err)
		}
		return redirectToInvoice(e)
	}
}

// editInvoice applies fn to the session's invoice and re-renders the editor.
func (d *InvoiceDeps) editInvoice(e *core.RequestEvent, op string, fn func(inv *services.Invoice) error) error {
	w, err := d.Store.Update(GetWorkspaceID(e.Request), d.Now(), func(w *services.Workspace) error {
		return w.Edit(fn)
	})
	if err != nil {
		return d.fail(e, op, err)
	}
	return respondEditor(e, w)
}

func lineIndex(e *core.RequestEvent) (int, error) {
	raw := e.Request.PathValue("index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("line %q: %w", raw, services.ErrIndexOutOfRange)
	}
	return index, nil
}
