// Package reporter renders diff and analytics reports for terminal, JSON,
// and CSV consumption.
//
// Supported output formats:
//   - Console: human-readable sectioned output for terminal display
//   - JSON: structured data for programmatic consumption
//   - CSV: flat rows for spreadsheet applications
//
// Display concerns live here and only here: in particular, capping a
// distribution to its top rows and folding the remainder into an "Other"
// bucket is done at render time, so the analytics layer always hands over
// complete distributions.
package reporter

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/spergel/new-finance-sub001/internal/analytics"
)

// OutputFormat represents the supported report output formats.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
)

// IsValid checks if the output format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatConsole, FormatJSON, FormatCSV:
		return true
	default:
		return false
	}
}

// ReportConfig holds configuration options for report generation.
type ReportConfig struct {
	Format OutputFormat `json:"format"`

	// IncludeUnchanged includes unchanged holdings in diff output.
	IncludeUnchanged bool `json:"include_unchanged"`

	// MaxDistributionRows caps rendered distributions; rows beyond the cap
	// fold into an "Other" bucket. Non-positive disables folding.
	MaxDistributionRows int `json:"max_distribution_rows"`

	// MaxListItems caps per-section change lists in console output.
	MaxListItems int `json:"max_list_items"`

	// CSV options
	CSVDelimiter rune `json:"csv_delimiter"`
	CSVHeaders   bool `json:"csv_headers"`
}

// DefaultReportConfig returns a default report configuration.
func DefaultReportConfig() *ReportConfig {
	return &ReportConfig{
		Format:              FormatConsole,
		IncludeUnchanged:    false,
		MaxDistributionRows: 8,
		MaxListItems:        10,
		CSVDelimiter:        ',',
		CSVHeaders:          true,
	}
}

// Validate validates the report configuration.
func (c *ReportConfig) Validate() error {
	if !c.Format.IsValid() {
		return fmt.Errorf("invalid output format: %s", c.Format)
	}
	if c.MaxListItems < 1 {
		return fmt.Errorf("max list items must be at least 1, got %d", c.MaxListItems)
	}
	return nil
}

// ReportGenerator renders diff and analytics reports in the configured
// format.
type ReportGenerator struct {
	config *ReportConfig
}

// NewReportGenerator creates a report generator. A nil config uses
// DefaultReportConfig.
func NewReportGenerator(config *ReportConfig) (*ReportGenerator, error) {
	if config == nil {
		config = DefaultReportConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report configuration: %w", err)
	}
	return &ReportGenerator{config: config}, nil
}

// FoldBuckets caps a distribution to max rows, folding the remainder into a
// single "Other" bucket that aggregates their counts, fair value, and
// percentage. A non-positive max returns the input unchanged. This is
// purely presentational; analytics consumers get the unfolded distribution.
func FoldBuckets(buckets []analytics.Bucket, max int) []analytics.Bucket {
	if max <= 0 || len(buckets) <= max {
		return buckets
	}

	folded := make([]analytics.Bucket, max, max+1)
	copy(folded, buckets[:max])

	other := analytics.Bucket{Category: "Other", FairValue: decimal.Zero}
	for _, bucket := range buckets[max:] {
		other.Count += bucket.Count
		other.FairValue = other.FairValue.Add(bucket.FairValue)
		other.Percentage += bucket.Percentage
	}

	return append(folded, other)
}
