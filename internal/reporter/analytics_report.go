package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spergel/new-finance-sub001/internal/analytics"
	"github.com/spergel/new-finance-sub001/internal/engine"
)

// WriteAnalyticsReport renders a single-snapshot analytics report in the
// configured format.
func (rg *ReportGenerator) WriteAnalyticsReport(report *engine.AnalyticsReport, writer io.Writer) error {
	if report == nil {
		return fmt.Errorf("analytics report cannot be nil")
	}

	switch rg.config.Format {
	case FormatConsole:
		return rg.writeAnalyticsConsole(report, writer)
	case FormatJSON:
		return rg.writeAnalyticsJSON(report, writer)
	case FormatCSV:
		return rg.writeAnalyticsCSV(report, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", rg.config.Format)
	}
}

func (rg *ReportGenerator) writeAnalyticsConsole(report *engine.AnalyticsReport, w io.Writer) error {
	fmt.Fprintf(w, "PORTFOLIO ANALYTICS REPORT\n")
	if report.PeriodLabel != "" {
		fmt.Fprintf(w, "Period: %s\n", report.PeriodLabel)
	}
	fmt.Fprintf(w, "Generated: %s\n\n", report.ProcessedAt.Format(time.RFC3339))

	fmt.Fprintf(w, "=== OVERVIEW ===\n")
	fmt.Fprintf(w, "Holdings:         %d\n", report.HoldingCount)
	fmt.Fprintf(w, "Total fair value: %s\n", report.TotalFairValue.StringFixed(2))
	fmt.Fprintf(w, "Industry HHI:     %.0f\n\n", report.IndustryConcentration)

	rg.writeDistributionSection(w, "INDUSTRY DISTRIBUTION", report.Industries)
	rg.writeDistributionSection(w, "INVESTMENT TYPES", report.InvestmentTypes)

	fmt.Fprintf(w, "=== RATE STRUCTURE ===\n")
	rg.writeBucketLine(w, report.RateStructure.Floating)
	rg.writeBucketLine(w, report.RateStructure.Fixed)
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "=== SPREADS ===\n")
	ss := report.SpreadStats
	fmt.Fprintf(w, "With spread data:    %d\n", ss.WithSpread)
	fmt.Fprintf(w, "Without spread data: %d\n", ss.WithoutSpread)
	if ss.WithSpread > 0 {
		fmt.Fprintf(w, "Average: %.2f%%  Median: %.2f%%  Min: %.2f%%  Max: %.2f%%\n", ss.Average, ss.Median, ss.Min, ss.Max)
		for _, band := range report.SpreadDistribution {
			fmt.Fprintf(w, "  %-12s %4d (%.1f%%)\n", band.Range, band.Count, band.Percentage)
		}
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "=== RATE FLOORS ===\n")
	fr := report.FloorRates
	fmt.Fprintf(w, "With floor:    %d\n", fr.WithFloor)
	fmt.Fprintf(w, "Without floor: %d\n", fr.WithoutFloor)
	if fr.WithFloor > 0 {
		fmt.Fprintf(w, "Average: %.2f%%  Min: %.2f%%  Max: %.2f%%\n", fr.Average, fr.Min, fr.Max)
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "=== PAYMENT-IN-KIND ===\n")
	fmt.Fprintf(w, "PIK holdings: %d (fair value %s, %.1f%% of snapshot)\n",
		report.PIK.Count, report.PIK.FairValue.StringFixed(2), report.PIK.PercentOfFairValue)
	if report.PIK.AverageRate > 0 {
		fmt.Fprintf(w, "Average PIK rate: %.2f%%\n", report.PIK.AverageRate)
	}
	fmt.Fprintf(w, "\n")

	rg.writeRatioSection(w, "FAIR VALUE / PRINCIPAL", report.FVToPrincipal, report.FVToPrincipalDistribution)
	rg.writeRatioSection(w, "FAIR VALUE / COST", report.FVToCost, report.FVToCostDistribution)

	if len(report.MaturityLadder) > 0 {
		fmt.Fprintf(w, "=== MATURITY LADDER ===\n")
		for _, rung := range report.MaturityLadder {
			fmt.Fprintf(w, "  %-8s %4d holdings, fair value %s (%.1f%%)\n",
				rung.Range, rung.Count, rung.FairValue.StringFixed(2), rung.Percentage)
		}
		fmt.Fprintf(w, "\n")
	}

	if len(report.TopHoldings) > 0 {
		fmt.Fprintf(w, "=== TOP HOLDINGS ===\n")
		for i, top := range report.TopHoldings {
			fmt.Fprintf(w, "  %d. %s / %s: %s (%.1f%%)\n",
				i+1, displayName(top.Holding), top.Holding.InvestmentTypeOrUnknown(),
				top.Holding.FairValue.StringFixed(2), top.Percentage)
		}
		fmt.Fprintf(w, "\n")
	}

	if len(report.RedFlags) > 0 {
		fmt.Fprintf(w, "=== RED FLAGS ===\n")
		for _, flagged := range report.RedFlags {
			fmt.Fprintf(w, "  %s / %s:\n", displayName(flagged.Holding), flagged.Holding.InvestmentTypeOrUnknown())
			for _, flag := range flagged.Flags {
				fmt.Fprintf(w, "    [%s] %s: %s\n", flag.Severity, flag.Type, flag.Message)
			}
		}
	}

	return nil
}

func (rg *ReportGenerator) writeDistributionSection(w io.Writer, title string, buckets []analytics.Bucket) {
	if len(buckets) == 0 {
		return
	}
	fmt.Fprintf(w, "=== %s ===\n", title)
	for _, bucket := range FoldBuckets(buckets, rg.config.MaxDistributionRows) {
		rg.writeBucketLine(w, bucket)
	}
	fmt.Fprintf(w, "\n")
}

func (rg *ReportGenerator) writeBucketLine(w io.Writer, bucket analytics.Bucket) {
	fmt.Fprintf(w, "  %-32s %4d holdings, fair value %s (%.1f%%)\n",
		bucket.Category, bucket.Count, bucket.FairValue.StringFixed(2), bucket.Percentage)
}

func (rg *ReportGenerator) writeRatioSection(w io.Writer, title string, stats analytics.FVRatioStats, bands []analytics.RangeBucket) {
	fmt.Fprintf(w, "=== %s ===\n", title)
	if stats.Count == 0 {
		fmt.Fprintf(w, "No holdings with both sides of the ratio present.\n\n")
		return
	}
	fmt.Fprintf(w, "Holdings: %d (excluded %d)\n", stats.Count, stats.Excluded)
	fmt.Fprintf(w, "Average: %.3f  Median: %.3f  Min: %.3f  Max: %.3f\n", stats.Average, stats.Median, stats.Min, stats.Max)
	for _, band := range bands {
		fmt.Fprintf(w, "  %-12s %4d (%.1f%%)\n", band.Range, band.Count, band.Percentage)
	}
	fmt.Fprintf(w, "\n")
}

func (rg *ReportGenerator) writeAnalyticsJSON(report *engine.AnalyticsReport, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// writeAnalyticsCSV flattens the report's distributions into section-tagged
// rows. Scalar statistics render as single-row sections.
func (rg *ReportGenerator) writeAnalyticsCSV(report *engine.AnalyticsReport, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = rg.config.CSVDelimiter
	defer csvWriter.Flush()

	if rg.config.CSVHeaders {
		if err := csvWriter.Write([]string{"section", "category", "count", "fair_value", "percentage"}); err != nil {
			return fmt.Errorf("failed to write CSV headers: %w", err)
		}
	}

	writeBuckets := func(section string, buckets []analytics.Bucket) error {
		for _, bucket := range buckets {
			record := []string{
				section, bucket.Category,
				strconv.Itoa(bucket.Count),
				bucket.FairValue.String(),
				formatFloat(bucket.Percentage),
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write %s row: %w", section, err)
			}
		}
		return nil
	}

	if err := writeBuckets("industry", report.Industries); err != nil {
		return err
	}
	if err := writeBuckets("investment_type", report.InvestmentTypes); err != nil {
		return err
	}
	if err := writeBuckets("rate_structure", []analytics.Bucket{
		report.RateStructure.Floating, report.RateStructure.Fixed,
	}); err != nil {
		return err
	}

	for _, rung := range report.MaturityLadder {
		record := []string{
			"maturity", rung.Range,
			strconv.Itoa(rung.Count),
			rung.FairValue.String(),
			formatFloat(rung.Percentage),
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write maturity row: %w", err)
		}
	}

	for _, top := range report.TopHoldings {
		record := []string{
			"top_holding", displayName(top.Holding),
			"1",
			top.Holding.FairValue.String(),
			formatFloat(top.Percentage),
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write top-holding row: %w", err)
		}
	}

	return csvWriter.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
