package templates

import (
	"context"

	"github.com/a-h/templ"

	"ptcmobile/services"
)

// EditorData is what the invoice entry form needs.
type EditorData struct {
	Invoice *services.Invoice
	Totals  services.InvoiceTotals
}

type fieldLabel struct {
	label     string
	inputType string
}

var headerLabels = map[services.HeaderField]fieldLabel{
	services.HeaderInvoiceNo:     {"Invoice No.", "text"},
	services.HeaderBillDate:      {"Bill Date", "date"},
	services.HeaderPartyName:     {"Party Name", "text"},
	services.HeaderLoadingDate:   {"Loading Date", "date"},
	services.HeaderUnloadingDate: {"Unloading Date", "date"},
	services.HeaderFrom:          {"From", "text"},
	services.HeaderTo:            {"To", "text"},
	services.HeaderBackTo:        {"Back To", "text"},
	services.HeaderPartyAddress:  {"Party Address", "text"},
}

var lineLabels = map[services.LineField]string{
	services.LineLRNo:             "LR No.",
	services.LineVehicleNo:        "Vehicle No.",
	services.LineContainerNo:      "Container No.",
	services.LineFreight:          "Freight",
	services.LineUnloadingCharges: "Unloading Ch.",
	services.LineDetention:        "Detention",
	services.LineWeightCharges:    "Weight Ch.",
	services.LineOthers:           "Others",
	services.LineCommission:       "Commission",
	services.LineAdvance:          "Advance",
	services.LineTotalFreight:     "Total Freight",
	services.LineBalance:          "Balance",
}

// InvoiceEditorPage is the full editor page.
func InvoiceEditorPage(data EditorData) templ.Component {
	return Page("Invoice", InvoiceEditor(data))
}

// InvoiceEditor is the swappable entry form. Every field change re-renders it
// through hx-patch so derived totals stay current.
func InvoiceEditor(data EditorData) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		inv := data.Invoice

		h.raw(`<div id="invoice-editor" hx-target="#invoice-editor" hx-swap="outerHTML">`)

		h.raw(`<div class="card"><div class="actions">`)
		h.raw(`<button class="secondary" hx-post="/invoice/new">New Invoice</button>`)
		h.raw(`<button class="secondary" hx-post="/invoice/sample">Load Sample</button>`)
		h.raw(`</div></div>`)

		h.raw(`<div class="card"><h3>Bill Details</h3><div class="grid">`)
		for _, f := range services.HeaderFields {
			fl := headerLabels[f]
			h.raw(`<div><label>`)
			h.text(fl.label)
			h.raw(`</label><input name="value" type="`)
			h.raw(fl.inputType)
			h.raw(`" value="`)
			h.text(inv.HeaderValue(f))
			h.raw(`" hx-patch="/invoice/header" hx-trigger="change" hx-vals='{"field":"`)
			h.text(string(f))
			h.raw(`"}'></div>`)
		}
		h.raw(`<div><label>Commission</label><input readonly value="`)
		h.text(inv.Header.Commission)
		h.raw(`"></div>`)
		h.raw(`</div></div>`)

		for i, line := range inv.Lines {
			writeLineCard(h, i, line, len(inv.Lines))
		}

		h.raw(`<div class="card"><div class="actions">`)
		h.raw(`<button class="secondary" hx-post="/invoice/lines">+ Add Vehicle</button>`)
		h.raw(`</div></div>`)

		h.raw(`<div class="card"><div class="totals">`)
		for _, t := range [][2]string{
			{"Total Freight", services.FormatINR(data.Totals.TotalFreight)},
			{"Total Commission", services.FormatINR(data.Totals.TotalCommission)},
			{"Total Advance", services.FormatINR(data.Totals.TotalAdvance)},
			{"Total Balance", services.FormatINR(data.Totals.TotalBalance)},
		} {
			h.raw(`<div><label>`)
			h.raw(t[0])
			h.raw(`</label><span>`)
			h.text(t[1])
			h.raw(`</span></div>`)
		}
		h.raw(`</div></div>`)

		h.raw(`<div class="card"><div class="actions">`)
		h.raw(`<button hx-post="/invoice/preview">Generate Invoice</button>`)
		h.raw(`</div></div>`)

		h.raw(`</div>`)
	})
}

func writeLineCard(h *htmlWriter, index int, line services.VehicleLine, count int) {
	h.rawf(`<div class="card" id="vehicle-%d"><h3>Vehicle %d</h3><div class="grid">`, index, index+1)

	editable := append(append([]services.LineField{}, services.IdentifierFields...), services.AmountFields...)
	for _, f := range editable {
		h.raw(`<div><label>`)
		h.text(lineLabels[f])
		h.raw(`</label><input name="value" value="`)
		h.text(line.Value(f))
		if isAmount(f) {
			h.raw(`" inputmode="decimal`)
		}
		h.rawf(`" hx-patch="/invoice/lines/%d" hx-trigger="change" hx-vals='{"field":"`, index)
		h.text(string(f))
		h.raw(`"}'></div>`)
	}
	for _, f := range []services.LineField{services.LineTotalFreight, services.LineBalance} {
		h.raw(`<div><label>`)
		h.text(lineLabels[f])
		h.raw(`</label><input readonly value="`)
		h.text(line.Value(f))
		h.raw(`"></div>`)
	}
	h.raw(`</div>`)

	if count > 1 {
		h.rawf(`<div class="actions"><button class="danger" hx-delete="/invoice/lines/%d">Remove</button></div>`, index)
	}
	h.raw(`</div>`)
}

func isAmount(f services.LineField) bool {
	for _, a := range services.AmountFields {
		if a == f {
			return true
		}
	}
	return false
}
