package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spergel/new-finance-sub001/internal/diff"
	"github.com/spergel/new-finance-sub001/internal/engine"
	"github.com/spergel/new-finance-sub001/internal/models"
)

// WriteDiffReport renders a snapshot comparison in the configured format.
func (rg *ReportGenerator) WriteDiffReport(report *engine.DiffReport, writer io.Writer) error {
	if report == nil {
		return fmt.Errorf("diff report cannot be nil")
	}

	switch rg.config.Format {
	case FormatConsole:
		return rg.writeDiffConsole(report, writer)
	case FormatJSON:
		return rg.writeDiffJSON(report, writer)
	case FormatCSV:
		return rg.writeDiffCSV(report, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", rg.config.Format)
	}
}

func (rg *ReportGenerator) writeDiffConsole(report *engine.DiffReport, w io.Writer) error {
	fmt.Fprintf(w, "SNAPSHOT DIFF REPORT\n")
	if report.BeforeLabel != "" || report.AfterLabel != "" {
		fmt.Fprintf(w, "Periods: %s -> %s\n", report.BeforeLabel, report.AfterLabel)
	}
	fmt.Fprintf(w, "Generated: %s\n\n", report.ProcessedAt.Format(time.RFC3339))

	summary := report.Summary
	fmt.Fprintf(w, "=== SUMMARY ===\n")
	fmt.Fprintf(w, "Before: %d holdings, fair value %s\n",
		summary.TotalBefore.Count, summary.TotalBefore.FairValue.StringFixed(2))
	fmt.Fprintf(w, "After:  %d holdings, fair value %s\n",
		summary.TotalAfter.Count, summary.TotalAfter.FairValue.StringFixed(2))
	fmt.Fprintf(w, "Net fair value change: %s\n\n", summary.NetFairValueDelta.StringFixed(2))

	fmt.Fprintf(w, "Added:     %d (fair value %s)\n", summary.Added.Count, summary.Added.FairValue.StringFixed(2))
	fmt.Fprintf(w, "Removed:   %d (fair value %s)\n", summary.Removed.Count, summary.Removed.FairValue.StringFixed(2))
	fmt.Fprintf(w, "Modified:  %d (fair value %s)\n", summary.Modified.Count, summary.Modified.FairValue.StringFixed(2))
	fmt.Fprintf(w, "Unchanged: %d (fair value %s)\n\n", summary.Unchanged.Count, summary.Unchanged.FairValue.StringFixed(2))

	rg.writeChangeSection(w, "ADDED HOLDINGS", report.Changes, diff.ChangeAdded)
	rg.writeChangeSection(w, "REMOVED HOLDINGS", report.Changes, diff.ChangeRemoved)
	rg.writeChangeSection(w, "MODIFIED HOLDINGS", report.Changes, diff.ChangeModified)
	if rg.config.IncludeUnchanged {
		rg.writeChangeSection(w, "UNCHANGED HOLDINGS", report.Changes, diff.ChangeUnchanged)
	}

	return nil
}

func (rg *ReportGenerator) writeChangeSection(w io.Writer, title string, changes []diff.ChangeRecord, changeType diff.ChangeType) {
	var selected []diff.ChangeRecord
	for _, change := range changes {
		if change.Type == changeType {
			selected = append(selected, change)
		}
	}
	if len(selected) == 0 {
		return
	}

	fmt.Fprintf(w, "=== %s (%d) ===\n", title, len(selected))
	for i, change := range selected {
		if i >= rg.config.MaxListItems {
			fmt.Fprintf(w, "  ... and %d more\n", len(selected)-rg.config.MaxListItems)
			break
		}
		rg.writeChangeRecord(w, i+1, change)
	}
	fmt.Fprintf(w, "\n")
}

func (rg *ReportGenerator) writeChangeRecord(w io.Writer, ordinal int, change diff.ChangeRecord) {
	h := change.After
	if h == nil {
		h = change.Before
	}
	fmt.Fprintf(w, "  %d. %s / %s (FV %s)\n",
		ordinal, displayName(h), h.InvestmentTypeOrUnknown(), h.FairValue.StringFixed(2))

	for _, fieldChange := range change.Changes {
		fmt.Fprintf(w, "       %s: %s -> %s (%s)\n",
			fieldChange.Field,
			fieldChange.Before.StringFixed(2),
			fieldChange.After.StringFixed(2),
			signedFixed(fieldChange.Delta))
	}
}

func (rg *ReportGenerator) writeDiffJSON(report *engine.DiffReport, w io.Writer) error {
	out := *report
	if !rg.config.IncludeUnchanged {
		filtered := make([]diff.ChangeRecord, 0, len(report.Changes))
		for _, change := range report.Changes {
			if change.Type != diff.ChangeUnchanged {
				filtered = append(filtered, change)
			}
		}
		out.Changes = filtered
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(&out)
}

func (rg *ReportGenerator) writeDiffCSV(report *engine.DiffReport, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = rg.config.CSVDelimiter
	defer csvWriter.Flush()

	if rg.config.CSVHeaders {
		headers := []string{"change_type", "company_name", "investment_type", "field", "before", "after", "delta"}
		if err := csvWriter.Write(headers); err != nil {
			return fmt.Errorf("failed to write CSV headers: %w", err)
		}
	}

	for _, change := range report.Changes {
		if change.Type == diff.ChangeUnchanged && !rg.config.IncludeUnchanged {
			continue
		}

		h := change.After
		if h == nil {
			h = change.Before
		}

		if len(change.Changes) == 0 {
			record := []string{
				change.Type.String(), h.CompanyName, h.InvestmentType,
				diff.FieldFairValue, beforeFV(change), afterFV(change), "",
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write change record: %w", err)
			}
			continue
		}

		for _, fieldChange := range change.Changes {
			record := []string{
				change.Type.String(), h.CompanyName, h.InvestmentType,
				fieldChange.Field,
				fieldChange.Before.String(),
				fieldChange.After.String(),
				fieldChange.Delta.String(),
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write change record: %w", err)
			}
		}
	}

	return csvWriter.Error()
}

func beforeFV(change diff.ChangeRecord) string {
	if change.Before == nil {
		return ""
	}
	return change.Before.FairValue.String()
}

func afterFV(change diff.ChangeRecord) string {
	if change.After == nil {
		return ""
	}
	return change.After.FairValue.String()
}

func displayName(h *models.Holding) string {
	if h == nil || h.CompanyName == "" {
		return "(unnamed)"
	}
	return h.CompanyName
}

func signedFixed(d decimal.Decimal) string {
	s := d.StringFixed(2)
	if !d.IsNegative() && !d.IsZero() {
		return "+" + s
	}
	return s
}
