package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"ptcmobile/metrics"
	"ptcmobile/services"
	"ptcmobile/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

var testNow = time.Date(2024, 8, 20, 10, 0, 0, 0, time.UTC)

// newTestDeps returns handler dependencies backed by a fresh test app, an
// empty workspace store and a private metrics registry.
func newTestDeps(t *testing.T) *InvoiceDeps {
	t.Helper()

	app := testhelpers.NewTestApp(t)
	store := services.NewWorkspaceStore(time.Hour)
	m := metrics.New(prometheus.NewRegistry())
	d := NewInvoiceDeps(app, store, m, zap.NewNop(), services.DefaultCompanyProfile())
	d.Now = func() time.Time { return testNow }
	return d
}

// newWorkspaceRequest builds a request bound to workspace id. A non-nil form
// is sent url-encoded in the body.
func newWorkspaceRequest(method, target string, form url.Values, id string, htmx bool) *http.Request {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return req.WithContext(context.WithValue(req.Context(), WorkspaceIDKey, id))
}

// serve runs handler against req and returns the recorder.
func serve(t *testing.T, d *InvoiceDeps, handler func(*core.RequestEvent) error, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	e := newTestRequestEvent(d.App, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func mustWorkspace(t *testing.T, d *InvoiceDeps, id string) *services.Workspace {
	t.Helper()

	w, err := d.Store.Get(id)
	if err != nil {
		t.Fatalf("workspace %s: %v", id, err)
	}
	return w
}

// previewWorkspace returns a workspace holding inv that has already been
// generated with the saved profile.
func previewWorkspace(t *testing.T, d *InvoiceDeps, inv *services.Invoice) string {
	t.Helper()

	id := testhelpers.NewTestWorkspace(t, d.Store, inv)
	if _, err := d.Store.Update(id, testNow, func(w *services.Workspace) error {
		_, err := w.Generate(testNow, d.profile())
		return err
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	return id
}
