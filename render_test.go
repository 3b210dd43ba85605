package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"ptcmobile/services"
)

func runRender(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRenderCmd(services.DefaultCompanyProfile(), zap.NewNop())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderCmd_Sample(t *testing.T) {
	tests := []struct {
		format string
		prefix string
	}{
		{"pdf", "%PDF-"},
		{"xlsx", "PK"},
		{"html", "<!DOCTYPE html>"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out."+tt.format)

			if _, err := runRender(t, "--sample", "--format", tt.format, "--out", path); err != nil {
				t.Fatalf("render: %v", err)
			}
			body, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read output: %v", err)
			}
			if !strings.HasPrefix(string(body), tt.prefix) {
				t.Errorf("expected output to start with %q", tt.prefix)
			}
		})
	}
}

func TestRenderCmd_Input(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "invoice.json")
	data := `{"header": {"invoiceNo": "17", "partyName": "ACME"}, "vehicles": [{"lrNo": "1", "freight": "100"}]}`
	if err := os.WriteFile(input, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "bill.html")

	if _, err := runRender(t, "--input", input, "--format", "HTML", "--out", path); err != nil {
		t.Fatalf("render: %v", err)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(body), "Bill To: ACME") || !strings.Contains(string(body), "One Hundred Only") {
		t.Error("expected the input invoice in the output")
	}
}

func TestRenderCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no source", []string{"--format", "pdf"}},
		{"both sources", []string{"--sample", "--input", "x.json"}},
		{"unknown format", []string{"--sample", "--format", "docx"}},
		{"missing input", []string{"--input", filepath.Join(t.TempDir(), "missing.json")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runRender(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
