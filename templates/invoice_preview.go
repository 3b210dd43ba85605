package templates

import (
	"context"

	"github.com/a-h/templ"

	"ptcmobile/services"
)

// PreviewData describes the generated invoice shown after "Generate Invoice".
type PreviewData struct {
	Document *services.RenderedDocument
	Formats  []string
}

var formatLabels = map[string]string{
	services.FormatPDF:  "Download PDF",
	services.FormatXLSX: "Download Excel",
	services.FormatHTML: "Download HTML",
}

// InvoicePreviewPage is the full preview page.
func InvoicePreviewPage(data PreviewData) templ.Component {
	return Page("Invoice Preview", InvoicePreview(data))
}

// InvoicePreview shows the rendered document in a frame with the print and
// download actions and the way back to the form.
func InvoicePreview(data PreviewData) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div id="invoice-preview">`)
		h.raw(`<div class="card"><div class="actions">`)
		h.raw(`<button class="secondary" hx-post="/invoice/back">Back to Edit</button>`)
		h.raw(`<button type="button" onclick="document.getElementById('invoice-frame').contentWindow.print()">Print</button>`)
		for _, f := range data.Formats {
			label, ok := formatLabels[f]
			if !ok {
				label = "Download " + f
			}
			h.raw(`<a class="button" href="/invoice/export/`)
			h.text(f)
			h.raw(`" download>`)
			h.text(label)
			h.raw(`</a>`)
		}
		h.raw(`</div></div>`)

		h.raw(`<div class="card"><p>`)
		h.text(services.DocumentFilename(data.Document, services.FormatPDF))
		h.raw(` &middot; Balance `)
		h.text(services.FormatINR(data.Document.TotalBalance))
		h.raw(`</p><iframe id="invoice-frame" title="Invoice" src="/invoice/document" style="width: 100%; height: 80vh; border: 1px solid #ccc;"></iframe></div>`)
		h.raw(`</div>`)
	})
}
