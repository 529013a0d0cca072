// Package models defines the holding record shared by the diff and analytics
// engines, together with the coercion helpers that turn loosely-typed
// upstream fields into canonical values.
//
// Portfolio snapshots arrive from upstream extraction pipelines with
// unreliable typing: monetary fields may be JSON numbers, quoted numbers,
// currency-formatted strings ("$1,234.56"), empty strings, or missing
// entirely. All coercion lives here so that no consumer ever parses a raw
// field itself. Coercion never fails: a value that cannot be parsed degrades
// to zero, which doubles as "absent" for presence checks.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RateType classifies the interest-rate structure of a holding.
type RateType string

const (
	// RateTypeFloating marks holdings priced as a spread over a reference rate.
	RateTypeFloating RateType = "floating"
	// RateTypeFixed marks holdings without a reference-rate spread,
	// including equity positions.
	RateTypeFixed RateType = "fixed"
)

// String returns the string representation of RateType.
func (r RateType) String() string {
	return string(r)
}

// Holding represents one line-item investment position within a portfolio
// snapshot. Monetary fields use decimal arithmetic; rate fields are
// percentage points. A zero value in any optional field means the upstream
// filing did not report it.
type Holding struct {
	CompanyName    string `json:"company_name"`
	InvestmentType string `json:"investment_type"`
	Industry       string `json:"industry,omitempty"`

	FairValue       decimal.Decimal `json:"fair_value"`
	Cost            decimal.Decimal `json:"cost"`
	AmortizedCost   decimal.Decimal `json:"amortized_cost"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`

	Spread    float64 `json:"spread,omitempty"`
	FloorRate float64 `json:"floor_rate,omitempty"`

	PIK     bool    `json:"pik,omitempty"`
	PIKRate float64 `json:"pik_rate,omitempty"`

	MaturityDate time.Time `json:"maturity_date,omitempty"`
}

// NewHolding creates a Holding with the identity fields set.
func NewHolding(companyName, investmentType string) *Holding {
	return &Holding{
		CompanyName:    companyName,
		InvestmentType: investmentType,
	}
}

// CostBasis returns the holding's cost basis: the first present value among
// cost and amortized cost. The second return reports whether either side
// carried a value at all.
func (h *Holding) CostBasis() (decimal.Decimal, bool) {
	if !h.Cost.IsZero() {
		return h.Cost, true
	}
	if !h.AmortizedCost.IsZero() {
		return h.AmortizedCost, true
	}
	return decimal.Zero, false
}

// HasSpread reports whether the holding carries spread data. A zero spread
// counts as absent; upstream filings never report a genuine 0bp margin.
func (h *Holding) HasSpread() bool {
	return h.Spread != 0
}

// RateType derives the rate structure: floating when a reference-rate spread
// is present, fixed otherwise.
func (h *Holding) RateType() RateType {
	if h.HasSpread() {
		return RateTypeFloating
	}
	return RateTypeFixed
}

// HasFloor reports whether the holding carries a reference-rate floor.
func (h *Holding) HasFloor() bool {
	return h.FloorRate > 0
}

// HasPIK reports whether any portion of income accrues as payment-in-kind.
func (h *Holding) HasPIK() bool {
	return h.PIK || h.PIKRate > 0
}

// HasMaturity reports whether a maturity date was extracted for the holding.
func (h *Holding) HasMaturity() bool {
	return !h.MaturityDate.IsZero()
}

// IndustryOrUnknown returns the industry classification, substituting
// "Unknown" for missing or blank values so distribution buckets never drop
// holdings silently.
func (h *Holding) IndustryOrUnknown() string {
	industry := strings.TrimSpace(h.Industry)
	if industry == "" {
		return "Unknown"
	}
	return industry
}

// InvestmentTypeOrUnknown returns the investment type, substituting
// "Unknown" for missing or blank values.
func (h *Holding) InvestmentTypeOrUnknown() string {
	it := strings.TrimSpace(h.InvestmentType)
	if it == "" {
		return "Unknown"
	}
	return it
}

// String returns a compact representation for logs and error messages.
func (h *Holding) String() string {
	return fmt.Sprintf("Holding{Company: %s, Type: %s, FV: %s}",
		h.CompanyName, h.InvestmentType, h.FairValue.StringFixed(2))
}

// Clone returns a deep copy of the holding. Decimal values are immutable so
// a field-wise copy is sufficient.
func (h *Holding) Clone() *Holding {
	copied := *h
	return &copied
}

// CoerceAmount converts a loosely-typed monetary string into a decimal.
// Currency symbols, thousand separators and surrounding whitespace are
// stripped; empty or unparseable input degrades to zero rather than
// returning an error, per the normalizer contract.
func CoerceAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	// Accounting convention: parenthesized values are negative.
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CoerceRate converts a loosely-typed rate string into percentage points.
// A trailing percent sign is tolerated; unparseable input degrades to zero.
func CoerceRate(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// CoerceBool interprets loose truthy markers used by upstream extraction
// for indicator columns ("true", "yes", "y", "1", "pik").
func CoerceBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "pik", "x":
		return true
	default:
		return false
	}
}

// dateFormats lists the maturity-date layouts seen in extracted filings.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02T15:04:05Z07:00",
	"Jan 2, 2006",
	"January 2, 2006",
	"1/2006",
	"01/2006",
	"2006",
}

// CoerceDate parses a maturity date from the formats commonly produced by
// filing extraction. Month-only and year-only dates resolve to the first of
// the period. Unparseable input degrades to the zero time, meaning "no
// maturity reported".
func CoerceDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
