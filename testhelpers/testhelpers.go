// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"

	"ptcmobile/collections"
	"ptcmobile/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// SeedTestProfile stores profile as the company profile and returns it.
func SeedTestProfile(t *testing.T, app *pocketbase.PocketBase, profile services.CompanyProfile) services.CompanyProfile {
	t.Helper()

	if err := services.SaveCompanyProfile(app, profile); err != nil {
		t.Fatalf("failed to save test company profile: %v", err)
	}
	return profile
}

// NewTestWorkspace creates a workspace in store holding inv, in the editing
// state, and returns its id.
func NewTestWorkspace(t *testing.T, store *services.WorkspaceStore, inv *services.Invoice) string {
	t.Helper()

	now := time.Now()
	w := store.Create(now)
	if inv == nil {
		return w.ID
	}
	if _, err := store.Update(w.ID, now, func(w *services.Workspace) error {
		w.Reset(inv)
		return nil
	}); err != nil {
		t.Fatalf("failed to prepare test workspace: %v", err)
	}
	return w.ID
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
