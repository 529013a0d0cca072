// Package parsers loads portfolio snapshots from files into normalized
// holding records.
//
// Two input shapes are supported:
//   - JSON: an array of loosely-typed holding objects, as produced by the
//     upstream extraction pipeline
//   - CSV: one holding per row, with configurable header aliases for the
//     column naming variations seen across issuers
//
// Individual malformed fields never fail a load: they degrade through the
// models coercion helpers and the holding participates with zeroed fields.
// The one hard failure is a payload that is not list-shaped at all, which is
// a contract violation from the data-supplying layer and surfaces as a
// categorized parse error.
package parsers

import (
	"fmt"
	"strings"
)

// Canonical CSV column names, matching the JSON field names.
const (
	ColumnCompanyName    = "company_name"
	ColumnInvestmentType = "investment_type"
	ColumnIndustry       = "industry"
	ColumnFairValue      = "fair_value"
	ColumnCost           = "cost"
	ColumnAmortizedCost  = "amortized_cost"
	ColumnPrincipal      = "principal_amount"
	ColumnSpread         = "spread"
	ColumnFloorRate      = "floor_rate"
	ColumnPIK            = "pik"
	ColumnPIKRate        = "pik_rate"
	ColumnMaturityDate   = "maturity_date"
)

// SnapshotConfig controls CSV snapshot parsing.
type SnapshotConfig struct {
	Delimiter rune `json:"delimiter"`
	HasHeader bool `json:"has_header"`
	// ColumnAliases maps normalized header names to canonical column
	// names, extending the built-in aliases.
	ColumnAliases map[string]string `json:"column_aliases,omitempty"`
}

// DefaultSnapshotConfig returns a configuration for comma-delimited files
// with a header row and the built-in column aliases.
func DefaultSnapshotConfig() *SnapshotConfig {
	return &SnapshotConfig{
		Delimiter: ',',
		HasHeader: true,
	}
}

// Validate validates the configuration.
func (c *SnapshotConfig) Validate() error {
	if c.Delimiter == 0 {
		return fmt.Errorf("delimiter must be set")
	}
	if !c.HasHeader {
		return fmt.Errorf("headerless CSV snapshots are not supported; columns cannot be identified positionally")
	}
	return nil
}

// builtinAliases maps the header variations seen across issuer filings to
// canonical column names. Header names are normalized before lookup.
var builtinAliases = map[string]string{
	"company":           ColumnCompanyName,
	"company_name":      ColumnCompanyName,
	"name":              ColumnCompanyName,
	"issuer":            ColumnCompanyName,
	"portfolio_company": ColumnCompanyName,

	"investment_type": ColumnInvestmentType,
	"type":            ColumnInvestmentType,
	"security_type":   ColumnInvestmentType,
	"instrument":      ColumnInvestmentType,

	"industry": ColumnIndustry,
	"sector":   ColumnIndustry,

	"fair_value": ColumnFairValue,
	"fv":         ColumnFairValue,
	"value":      ColumnFairValue,
	"mark":       ColumnFairValue,

	"cost":           ColumnCost,
	"amortized_cost": ColumnAmortizedCost,

	"principal_amount": ColumnPrincipal,
	"principal":        ColumnPrincipal,
	"par":              ColumnPrincipal,
	"par_amount":       ColumnPrincipal,

	"spread":      ColumnSpread,
	"margin":      ColumnSpread,
	"rate_margin": ColumnSpread,

	"floor_rate": ColumnFloorRate,
	"floor":      ColumnFloorRate,

	"pik":      ColumnPIK,
	"pik_rate": ColumnPIKRate,

	"maturity_date": ColumnMaturityDate,
	"maturity":      ColumnMaturityDate,
}

// canonicalColumn resolves a raw header cell to a canonical column name.
// The second return is false for unrecognized headers, which are ignored.
func (c *SnapshotConfig) canonicalColumn(header string) (string, bool) {
	normalized := normalizeHeader(header)
	if c.ColumnAliases != nil {
		if canonical, ok := c.ColumnAliases[normalized]; ok {
			return canonical, true
		}
	}
	canonical, ok := builtinAliases[normalized]
	return canonical, ok
}

// normalizeHeader lowercases a header cell and collapses separators to
// underscores so "Fair Value" and "fair-value" both resolve.
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_'
	}), "_")
}
