package parsers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/spergel/new-finance-sub001/pkg/errors"
)

func TestParseJSONSnapshot(t *testing.T) {
	payload := `[
		{"company_name": "Acme Corp", "investment_type": "Term Loan", "fair_value": "1,000.00", "spread": "5.5%"},
		{"company_name": "Beta LLC", "fair_value": 250}
	]`

	holdings, stats, err := ParseJSONSnapshot(strings.NewReader(payload), "test.json")
	if err != nil {
		t.Fatalf("Expected parse to succeed, got: %v", err)
	}

	if stats.RecordsParsed != 2 || stats.RecordsSkipped != 0 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if len(holdings) != 2 {
		t.Fatalf("Expected 2 holdings, got %d", len(holdings))
	}
	if holdings[0].CompanyName != "Acme Corp" {
		t.Errorf("Expected Acme Corp, got %s", holdings[0].CompanyName)
	}
	if !holdings[0].FairValue.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected fair value 1000, got %s", holdings[0].FairValue)
	}
	if holdings[0].Spread != 5.5 {
		t.Errorf("Expected spread 5.5, got %v", holdings[0].Spread)
	}
}

func TestParseJSONSnapshotNotListShaped(t *testing.T) {
	payload := `{"holdings": []}`

	_, _, err := ParseJSONSnapshot(strings.NewReader(payload), "test.json")
	if err == nil {
		t.Fatal("Expected a non-array payload to fail")
	}

	engineErr, ok := errors.AsEngineError(err)
	if !ok {
		t.Fatalf("Expected an EngineError, got %T", err)
	}
	if engineErr.Code != errors.CodeNotListShaped {
		t.Errorf("Expected code %s, got %s", errors.CodeNotListShaped, engineErr.Code)
	}
	if engineErr.Category != errors.CategoryParse {
		t.Errorf("Expected parse category, got %s", engineErr.Category)
	}
}

func TestParseJSONSnapshotInvalidJSON(t *testing.T) {
	_, _, err := ParseJSONSnapshot(strings.NewReader(`[{"company_name": `), "test.json")
	if err == nil {
		t.Fatal("Expected truncated JSON to fail")
	}
}

func TestParseJSONSnapshotSkipsNonObjects(t *testing.T) {
	payload := `[{"company_name": "Acme Corp"}, 42, "noise", {"company_name": "Beta LLC"}]`

	holdings, stats, err := ParseJSONSnapshot(strings.NewReader(payload), "test.json")
	if err != nil {
		t.Fatalf("Expected non-object elements to be skipped, got: %v", err)
	}
	if len(holdings) != 2 {
		t.Errorf("Expected 2 holdings, got %d", len(holdings))
	}
	if stats.RecordsSkipped != 2 {
		t.Errorf("Expected 2 skipped records, got %d", stats.RecordsSkipped)
	}
}

func TestParseJSONSnapshotEmptyArray(t *testing.T) {
	holdings, stats, err := ParseJSONSnapshot(strings.NewReader(`[]`), "test.json")
	if err != nil {
		t.Fatalf("Expected empty array to parse, got: %v", err)
	}
	if len(holdings) != 0 || stats.RecordsParsed != 0 {
		t.Errorf("Expected no holdings, got %d", len(holdings))
	}
}

func TestLoadSnapshotDispatch(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "snapshot.json")
	if err := os.WriteFile(jsonPath, []byte(`[{"company_name": "Acme Corp"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	holdings, stats, err := LoadSnapshot(jsonPath, nil)
	if err != nil {
		t.Fatalf("Expected JSON load to succeed, got: %v", err)
	}
	if len(holdings) != 1 || stats.Format != "json" {
		t.Errorf("Unexpected result: %d holdings, format %s", len(holdings), stats.Format)
	}

	csvPath := filepath.Join(dir, "snapshot.csv")
	if err := os.WriteFile(csvPath, []byte("company,fair value\nAcme Corp,100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	holdings, stats, err = LoadSnapshot(csvPath, nil)
	if err != nil {
		t.Fatalf("Expected CSV load to succeed, got: %v", err)
	}
	if len(holdings) != 1 || stats.Format != "csv" {
		t.Errorf("Unexpected result: %d holdings, format %s", len(holdings), stats.Format)
	}
}

func TestLoadSnapshotSniffsUnknownExtension(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "snapshot.dat")
	if err := os.WriteFile(path, []byte(`  [{"company_name": "Acme Corp"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	holdings, stats, err := LoadSnapshot(path, nil)
	if err != nil {
		t.Fatalf("Expected sniffed JSON load to succeed, got: %v", err)
	}
	if len(holdings) != 1 || stats.Format != "json" {
		t.Errorf("Unexpected result: %d holdings, format %s", len(holdings), stats.Format)
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	_, _, err := LoadSnapshot("/nonexistent/snapshot.json", nil)
	if err == nil {
		t.Fatal("Expected missing file to fail")
	}

	engineErr, ok := errors.AsEngineError(err)
	if !ok {
		t.Fatalf("Expected an EngineError, got %T", err)
	}
	if engineErr.Code != errors.CodeFileNotFound {
		t.Errorf("Expected file-not-found code, got %s", engineErr.Code)
	}
}
