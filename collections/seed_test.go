package collections_test

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"ptcmobile/collections"
	"ptcmobile/services"
	"ptcmobile/testhelpers"
)

func TestSeed_CreatesProfile(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app, services.DefaultCompanyProfile()); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	col, _ := app.FindCollectionByNameOrId("company_profiles")
	records, err := app.FindAllRecords(col)
	if err != nil {
		t.Fatalf("query company_profiles error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(records))
	}
	if got := records[0].GetString("name"); got != "PALAK TRANSPORT CORP" {
		t.Errorf("name = %q, want PALAK TRANSPORT CORP", got)
	}
	if got := records[0].GetString("ifsc"); got != "HDFC0002822" {
		t.Errorf("ifsc = %q, want HDFC0002822", got)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app, services.DefaultCompanyProfile()); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	other := services.DefaultCompanyProfile()
	other.Name = "SOMEONE ELSE"
	if err := collections.Seed(app, other); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	col, _ := app.FindCollectionByNameOrId("company_profiles")
	records, _ := app.FindAllRecords(col)
	if len(records) != 1 {
		t.Fatalf("expected 1 profile after re-seed, got %d", len(records))
	}
	if got := records[0].GetString("name"); got != "PALAK TRANSPORT CORP" {
		t.Errorf("re-seed overwrote name: %q", got)
	}
}

func TestSeed_InvalidProfile(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app, services.CompanyProfile{}); err == nil {
		t.Fatal("expected error seeding a profile without a name")
	}
}

func TestSeed_LogsInsert(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	logCore, logs := observer.New(zap.InfoLevel)
	defer zap.ReplaceGlobals(zap.New(logCore))()

	if err := collections.Seed(app, services.DefaultCompanyProfile()); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	if err := collections.Seed(app, services.DefaultCompanyProfile()); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	entries := logs.FilterMessage("seed: inserting company profile").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 insert logged, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["name"]; got != "PALAK TRANSPORT CORP" {
		t.Errorf("logged name = %v, want PALAK TRANSPORT CORP", got)
	}
}
