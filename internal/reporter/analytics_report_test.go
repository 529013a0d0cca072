package reporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spergel/new-finance-sub001/internal/engine"
	"github.com/spergel/new-finance-sub001/internal/models"
)

func sampleAnalyticsReport() *engine.AnalyticsReport {
	holdings := []*models.Holding{
		{
			CompanyName:     "Acme Corp",
			InvestmentType:  "Term Loan",
			Industry:        "Software",
			FairValue:       decimal.NewFromInt(90),
			PrincipalAmount: decimal.NewFromInt(100),
			Spread:          5.5,
			FloorRate:       1.0,
			MaturityDate:    time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			CompanyName:    "Beta LLC",
			InvestmentType: "Equity",
			Industry:       "Healthcare",
			FairValue:      decimal.NewFromInt(60),
			PIK:            true,
		},
	}

	reference := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	report := engine.BuildAnalyticsReport(holdings, reference, nil)
	report.PeriodLabel = "2024-06-30"
	report.ProcessedAt = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	return report
}

func TestWriteAnalyticsReportConsole(t *testing.T) {
	rg, err := NewReportGenerator(nil)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := rg.WriteAnalyticsReport(sampleAnalyticsReport(), &buf); err != nil {
		t.Fatalf("Expected console report to render, got: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"=== OVERVIEW ===",
		"Total fair value: 150.00",
		"Industry HHI:",
		"=== INDUSTRY DISTRIBUTION ===",
		"=== RATE STRUCTURE ===",
		"=== SPREADS ===",
		"=== RATE FLOORS ===",
		"=== PAYMENT-IN-KIND ===",
		"=== FAIR VALUE / PRINCIPAL ===",
		"=== MATURITY LADDER ===",
		"=== TOP HOLDINGS ===",
		"=== RED FLAGS ===",
		"Software",
		"near_maturity",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected console output to contain %q\nGot:\n%s", want, output)
		}
	}
}

func TestWriteAnalyticsReportConsoleWithoutLadder(t *testing.T) {
	holdings := []*models.Holding{
		{CompanyName: "Acme Corp", FairValue: decimal.NewFromInt(100)},
	}
	report := engine.BuildAnalyticsReport(holdings, time.Time{}, nil)

	rg, err := NewReportGenerator(nil)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := rg.WriteAnalyticsReport(report, &buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "MATURITY LADDER") {
		t.Error("Expected no ladder section without a reference date")
	}
}

func TestWriteAnalyticsReportJSON(t *testing.T) {
	cfg := DefaultReportConfig()
	cfg.Format = FormatJSON
	rg, err := NewReportGenerator(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := rg.WriteAnalyticsReport(sampleAnalyticsReport(), &buf); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got: %v", err)
	}
	if decoded["holding_count"] != float64(2) {
		t.Errorf("Expected holding_count 2, got %v", decoded["holding_count"])
	}
	if _, ok := decoded["industries"]; !ok {
		t.Error("Expected industries in JSON output")
	}
	if _, ok := decoded["maturity_ladder"]; !ok {
		t.Error("Expected maturity ladder in JSON output")
	}
}

func TestWriteAnalyticsReportCSV(t *testing.T) {
	cfg := DefaultReportConfig()
	cfg.Format = FormatCSV
	rg, err := NewReportGenerator(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := rg.WriteAnalyticsReport(sampleAnalyticsReport(), &buf); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Expected valid CSV, got: %v", err)
	}

	if rows[0][0] != "section" {
		t.Errorf("Expected header row, got %v", rows[0])
	}

	sections := map[string]bool{}
	for _, row := range rows[1:] {
		sections[row[0]] = true
	}
	for _, want := range []string{"industry", "investment_type", "rate_structure", "maturity", "top_holding"} {
		if !sections[want] {
			t.Errorf("Expected CSV section %q, got sections %v", want, sections)
		}
	}
}

func TestWriteAnalyticsReportNil(t *testing.T) {
	rg, err := NewReportGenerator(nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := rg.WriteAnalyticsReport(nil, &bytes.Buffer{}); err == nil {
		t.Error("Expected nil report to fail")
	}
}
