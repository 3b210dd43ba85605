package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"ptcmobile/services"
	"ptcmobile/testhelpers"
)

func TestHandleInvoicePage_FullPage(t *testing.T) {
	d := newTestDeps(t)
	id := testhelpers.NewTestWorkspace(t, d.Store, nil)

	rec := serve(t, d, HandleInvoicePage(d), newWorkspaceRequest(http.MethodGet, "/invoice", nil, id, false))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"<!DOCTYPE html>",
		`id="invoice-editor"`,
		`value="2024-08-20"`,
	)
}

func TestHandleInvoicePage_HTMXPartial(t *testing.T) {
	d := newTestDeps(t)
	id := testhelpers.NewTestWorkspace(t, d.Store, services.SampleInvoice())

	rec := serve(t, d, HandleInvoicePage(d), newWorkspaceRequest(http.MethodGet, "/invoice", nil, id, true))

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, `id="invoice-editor"`, `value="SAHIL ROADWAYS"`)
	testhelpers.AssertHTMLNotContains(t, body, "<!DOCTYPE html>")
}

func TestHandleInvoicePage_Previewing(t *testing.T) {
	d := newTestDeps(t)
	id := previewWorkspace(t, d, services.SampleInvoice())

	rec := serve(t, d, HandleInvoicePage(d), newWorkspaceRequest(http.MethodGet, "/invoice", nil, id, false))

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		`id="invoice-preview"`,
		`href="/invoice/export/pdf"`,
		`href="/invoice/export/xlsx"`,
		`href="/invoice/export/html"`,
	)
	testhelpers.AssertHTMLNotContains(t, rec.Body.String(), `id="invoice-editor"`)
}

func TestHandleInvoicePage_UnknownWorkspace(t *testing.T) {
	d := newTestDeps(t)

	rec := serve(t, d, HandleInvoicePage(d), newWorkspaceRequest(http.MethodGet, "/invoice", nil, "missing", true))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleInvoiceNewAndSample(t *testing.T) {
	d := newTestDeps(t)
	id := testhelpers.NewTestWorkspace(t, d.Store, nil)

	rec := serve(t, d, HandleInvoiceSample(d), newWorkspaceRequest(http.MethodPost, "/invoice/sample", nil, id, true))
	testhelpers.AssertHTMLContains(t, rec.Body.String(), `value="SAHIL ROADWAYS"`)
	if got := mustWorkspace(t, d, id).Invoice.Header.PartyName; got != "SAHIL ROADWAYS" {
		t.Errorf("expected sample party, got %q", got)
	}

	rec = serve(t, d, HandleInvoiceNew(d), newWorkspaceRequest(http.MethodPost, "/invoice/new", nil, id, true))
	testhelpers.AssertHTMLNotContains(t, rec.Body.String(), "SAHIL ROADWAYS")
	w := mustWorkspace(t, d, id)
	if w.Invoice.Header.BillDate != "2024-08-20" || len(w.Invoice.Lines) != 1 {
		t.Errorf("expected blank invoice dated today, got %+v", w.Invoice.Header)
	}
}

func TestHandleInvoiceNew_LeavesPreview(t *testing.T) {
	d := newTestDeps(t)
	id := previewWorkspace(t, d, services.SampleInvoice())

	serve(t, d, HandleInvoiceNew(d), newWorkspaceRequest(http.MethodPost, "/invoice/new", nil, id, true))

	if w := mustWorkspace(t, d, id); w.State != services.StateEditing || w.Document != nil {
		t.Errorf("expected editing without a document, got %s", w.State)
	}
}

func TestHandleHeaderPatch(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		value      string
		wantStatus int
	}{
		{"party name", "partyName", "NEW PARTY", http.StatusOK},
		{"invoice number", "invoiceNo", "42", http.StatusOK},
		{"derived commission", "commission", "100", http.StatusBadRequest},
		{"unknown field", "gstin", "X", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t)
			id := testhelpers.NewTestWorkspace(t, d.Store, services.SampleInvoice())

			form := url.Values{"field": {tt.field}, "value": {tt.value}}
			rec := serve(t, d, HandleHeaderPatch(d), newWorkspaceRequest(http.MethodPatch, "/invoice/header", form, id, true))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusOK {
				testhelpers.AssertHTMLContains(t, rec.Body.String(), `value="`+tt.value+`"`)
				return
			}
			if rec.Header().Get("HX-Reswap") != "none" {
				t.Error("expected HX-Reswap none on rejected edit")
			}
			if got := mustWorkspace(t, d, id).Invoice.Header.Commission; got != "500.00" {
				t.Errorf("commission changed to %q", got)
			}
		})
	}
}

func TestHandleHeaderPatch_NonHTMXRedirects(t *testing.T) {
	d := newTestDeps(t)
	id := testhelpers.NewTestWorkspace(t, d.Store, nil)

	form := url.Values{"field": {"partyName"}, "value": {"ACME"}}
	rec := serve(t, d, HandleHeaderPatch(d), newWorkspaceRequest(http.MethodPatch, "/invoice/header", form, id, false))

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/invoice" {
		t.Errorf("expected 303 to /invoice, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestHandleLinePatch_RecomputesTotals(t *testing.T) {
	d := newTestDeps(t)
	id := testhelpers.NewTestWorkspace(t, d.Store, services.SampleInvoice())

	req := newWorkspaceRequest(http.MethodPatch, "/invoice/lines/0", url.Values{"field": {"freight"}, "value": {"30000"}}, id, true)
	req.SetPathValue("index", "0")
	rec := serve(t, d, HandleLinePatch(d), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		`<input readonly value="35102.00">`,
		`<input readonly value="9102.00">`,
		"₹9,102.00",
	)
	line := mustWorkspace(t, d, id).Invoice.Lines[0]
	if line.TotalFreight != "35102.00" || line.Balance != "9102.00" {
		t.Errorf("expected recomputed line, got total %s balance %s", line.TotalFreight, line.Balance)
	}
}

func TestHandleLinePatch_CommissionUpdatesHeader(t *testing.T) {
	d := newTestDeps(t)
	id := testhelpers.NewTestWorkspace(t, d.Store, services.SampleInvoice())

	req := newWorkspaceRequest(http.MethodPatch, "/invoice/lines/0", url.Values{"field": {"commission"}, "value": {"750"}}, id, true)
	req.SetPathValue("index", "0")
	serve(t, d, HandleLinePatch(d), req)

	if got := mustWorkspace(t, d, id).Invoice.Header.Commission; got != "750.00" {
		t.Errorf("expected header commission 750.00, got %q", got)
	}
}

func TestHandleLinePatch_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		index string
		field string
	}{
		{"non numeric index", "abc", "freight"},
		{"out of range", "5", "freight"},
		{"negative", "-1", "freight"},
		{"derived total", "0", "totalFreight"},
		{"unknown field", "0", "tonnage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t)
			id := testhelpers.NewTestWorkspace(t, d.Store, services.SampleInvoice())

			req := newWorkspaceRequest(http.MethodPatch, "/invoice/lines/"+tt.index, url.Values{"field": {tt.field}, "value": {"1"}}, id, true)
			req.SetPathValue("index", tt.index)
			rec := serve(t, d, HandleLinePatch(d), req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleLineAddRemove(t *testing.T) {
	d := newTestDeps(t)
	id := testhelpers.NewTestWorkspace(t, d.Store, services.SampleInvoice())

	rec := serve(t, d, HandleLineAdd(d), newWorkspaceRequest(http.MethodPost, "/invoice/lines", nil, id, true))
	testhelpers.AssertHTMLContains(t, rec.Body.String(), `id="vehicle-1"`, `hx-delete="/invoice/lines/1"`)
	if w := mustWorkspace(t, d, id); len(w.Invoice.Lines) != 2 || w.Invoice.Header.Commission != "1000.00" {
		t.Fatalf("expected 2 lines and commission 1000.00, got %d %s", len(w.Invoice.Lines), w.Invoice.Header.Commission)
	}

	req := newWorkspaceRequest(http.MethodDelete, "/invoice/lines/0", nil, id, true)
	req.SetPathValue("index", "0")
	serve(t, d, HandleLineRemove(d), req)
	if w := mustWorkspace(t, d, id); len(w.Invoice.Lines) != 1 || w.Invoice.Header.Commission != "500.00" {
		t.Fatalf("expected 1 line and commission 500.00, got %d %s", len(w.Invoice.Lines), w.Invoice.Header.Commission)
	}
}

func TestHandleLineRemove_KeepsLastLine(t *testing.T) {
	d := newTestDeps(t)
	id := testhelpers.NewTestWorkspace(t, d.Store, services.SampleInvoice())

	req := newWorkspaceRequest(http.MethodDelete, "/invoice/lines/0", nil, id, true)
	req.SetPathValue("index", "0")
	rec := serve(t, d, HandleLineRemove(d), req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("HX-Trigger") == "" {
		t.Error("expected an info toast")
	}
	if n := len(mustWorkspace(t, d, id).Invoice.Lines); n != 1 {
		t.Errorf("expected the last line to be kept, got %d lines", n)
	}
}

func TestHandleEdit_WhilePreviewingConflicts(t *testing.T) {
	d := newTestDeps(t)
	id := previewWorkspace(t, d, services.SampleInvoice())

	form := url.Values{"field": {"partyName"}, "value": {"LATE EDIT"}}
	rec := serve(t, d, HandleHeaderPatch(d), newWorkspaceRequest(http.MethodPatch, "/invoice/header", form, id, true))

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
	if got := mustWorkspace(t, d, id).Invoice.Header.PartyName; got != "SAHIL ROADWAYS" {
		t.Errorf("party changed to %q while previewing", got)
	}
}

func TestHandleInvoicePreview(t *testing.T) {
	d := newTestDeps(t)
	id := testhelpers.NewTestWorkspace(t, d.Store, services.SampleInvoice())

	rec := serve(t, d, HandleInvoicePreview(d), newWorkspaceRequest(http.MethodPost, "/invoice/preview", nil, id, true))

	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/invoice")
	w := mustWorkspace(t, d, id)
	if w.State != services.StatePreviewing {
		t.Fatalf("expected previewing, got %s", w.State)
	}
	if w.Document == nil || !w.Document.RenderedAt.Equal(testNow) {
		t.Errorf("expected document rendered at %v", testNow)
	}

	rec = serve(t, d, HandleInvoicePreview(d), newWorkspaceRequest(http.MethodPost, "/invoice/preview", nil, id, true))
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 on second generate, got %d", rec.Code)
	}
}

func TestHandleInvoicePreview_KeepsGeneratedMarkup(t *testing.T) {
	d := newTestDeps(t)
	id := testhelpers.NewTestWorkspace(t, d.Store, services.SampleInvoice())
	serve(t, d, HandleInvoicePreview(d), newWorkspaceRequest(http.MethodPost, "/invoice/preview", nil, id, true))

	renamed := services.DefaultCompanyProfile()
	renamed.Name = "PALAK LOGISTICS"
	testhelpers.SeedTestProfile(t, d.App, renamed)

	rec := serve(t, d, HandleInvoiceDocument(d), newWorkspaceRequest(http.MethodGet, "/invoice/document", nil, id, false))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if body != mustWorkspace(t, d, id).Markup {
		t.Error("expected the frame to serve the markup kept by generate")
	}
	testhelpers.AssertHTMLContains(t, body, "<h1>PALAK TRANSPORT CORP</h1>")
	testhelpers.AssertHTMLNotContains(t, body, "PALAK LOGISTICS")

	rec = serve(t, d, HandleInvoiceExport(d), exportRequest(id, "html"))
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "<h1>PALAK TRANSPORT CORP</h1>")
}

func TestHandleInvoicePreview_RenderFailureRestoresPrevious(t *testing.T) {
	d := newTestDeps(t)
	id := previewWorkspace(t, d, services.SampleInvoice())
	first := mustWorkspace(t, d, id).Document
	serve(t, d, HandleInvoiceBack(d), newWorkspaceRequest(http.MethodPost, "/invoice/back", nil, id, true))
	serve(t, d, HandleHeaderPatch(d), newWorkspaceRequest(http.MethodPatch, "/invoice/header",
		url.Values{"field": {"partyName"}, "value": {"LATE EDIT"}}, id, true))

	d.RenderMarkup = func(context.Context, *services.RenderedDocument, services.CompanyProfile) (string, error) {
		return "", errors.New("template exploded")
	}
	rec := serve(t, d, HandleInvoicePreview(d), newWorkspaceRequest(http.MethodPost, "/invoice/preview", nil, id, true))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "try again") {
		t.Errorf("expected a retry toast, got %q", rec.Header().Get("HX-Trigger"))
	}
	if got := testutil.ToFloat64(d.Metrics.FailuresTotal.WithLabelValues("html")); got != 1 {
		t.Errorf("expected 1 html failure counted, got %v", got)
	}

	w := mustWorkspace(t, d, id)
	if w.State != services.StateEditing {
		t.Errorf("expected editing after a failed generate, got %s", w.State)
	}
	if w.Document == nil || w.Document.Header.PartyName != first.Header.PartyName {
		t.Errorf("expected the previous document to be kept, got %+v", w.Document)
	}
	if w.Invoice.Header.PartyName != "LATE EDIT" {
		t.Errorf("expected the edit to survive, got %q", w.Invoice.Header.PartyName)
	}

	rec = serve(t, d, HandleInvoiceExport(d), exportRequest(id, "html"))
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Bill To: SAHIL ROADWAYS")
	testhelpers.AssertHTMLNotContains(t, rec.Body.String(), "LATE EDIT")
}

func TestHandleInvoiceBack(t *testing.T) {
	d := newTestDeps(t)
	id := previewWorkspace(t, d, services.SampleInvoice())

	rec := serve(t, d, HandleInvoiceBack(d), newWorkspaceRequest(http.MethodPost, "/invoice/back", nil, id, true))

	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/invoice")
	w := mustWorkspace(t, d, id)
	if w.State != services.StateEditing {
		t.Errorf("expected editing, got %s", w.State)
	}
	if w.Invoice.Header.PartyName != "SAHIL ROADWAYS" {
		t.Error("expected the invoice to survive going back")
	}

	rec = serve(t, d, HandleInvoiceBack(d), newWorkspaceRequest(http.MethodPost, "/invoice/back", nil, id, true))
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 when already editing, got %d", rec.Code)
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrIndexOutOfRange, http.StatusBadRequest},
		{services.ErrUnknownField, http.StatusBadRequest},
		{services.ErrDerivedField, http.StatusBadRequest},
		{services.ErrInvalidTransition, http.StatusConflict},
		{services.ErrNotEditing, http.StatusConflict},
		{services.ErrInvalidModel, http.StatusUnprocessableEntity},
		{services.ErrExternalRender, http.StatusBadGateway},
		{services.ErrWorkspaceNotFound, http.StatusNotFound},
		{errNothingRendered, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got, _ := errorStatus(tt.err); got != tt.want {
				t.Errorf("errorStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
