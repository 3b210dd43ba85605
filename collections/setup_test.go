package collections_test

import (
	"testing"

	"ptcmobile/collections"
	"ptcmobile/services"
	"ptcmobile/testhelpers"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"company_profiles",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	collections.Setup(app)

	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_CompanyProfileFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("company_profiles")

	for _, f := range append(services.CompanyProfileFieldNames(), "created", "updated") {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("company_profiles: missing field %q", f)
		}
	}

	nameField, ok := col.Fields.GetByName("name").(*core.TextField)
	if !ok {
		t.Fatalf("name field is not a TextField")
	}
	if !nameField.Required {
		t.Errorf("company_profiles.name should be required")
	}
	if tf, ok := col.Fields.GetByName("tagline").(*core.TextField); !ok || tf.Required {
		t.Errorf("company_profiles.tagline should be an optional TextField")
	}
}

func TestSetup_LogsThroughZap(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, err := app.FindCollectionByNameOrId("company_profiles")
	if err != nil {
		t.Fatalf("company_profiles: %v", err)
	}
	if err := app.Delete(col); err != nil {
		t.Fatalf("delete company_profiles: %v", err)
	}

	logCore, logs := observer.New(zap.DebugLevel)
	defer zap.ReplaceGlobals(zap.New(logCore))()

	collections.Setup(app)
	collections.Setup(app)

	if n := logs.FilterMessage("collections: created").FilterField(zap.String("collection", "company_profiles")).Len(); n != 1 {
		t.Errorf("expected 1 created entry, got %d", n)
	}
	if n := logs.FilterMessage("collections: already exists").Len(); n != 1 {
		t.Errorf("expected 1 already-exists entry, got %d", n)
	}
}
