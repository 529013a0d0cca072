package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spergel/new-finance-sub001/internal/analytics"
	"github.com/spergel/new-finance-sub001/internal/models"
	"github.com/spergel/new-finance-sub001/internal/parsers"
	"github.com/spergel/new-finance-sub001/internal/redflags"
)

// AnalyticsReport bundles every analytic computed over one snapshot. All
// distributions are complete and unfolded; the reporter applies any top-N
// folding for display.
type AnalyticsReport struct {
	PeriodLabel    string          `json:"period_label,omitempty"`
	HoldingCount   int             `json:"holding_count"`
	TotalFairValue decimal.Decimal `json:"total_fair_value"`

	Industries      []analytics.Bucket      `json:"industries"`
	InvestmentTypes []analytics.Bucket      `json:"investment_types"`
	RateStructure   analytics.RateStructure `json:"rate_structure"`

	// IndustryConcentration is the Herfindahl index over the industry
	// distribution.
	IndustryConcentration float64 `json:"industry_concentration"`

	SpreadStats            analytics.SpreadStats      `json:"spread_stats"`
	SpreadDistribution     []analytics.RangeBucket    `json:"spread_distribution,omitempty"`
	SpreadByIndustry       []analytics.CategorySpread `json:"spread_by_industry,omitempty"`
	SpreadByInvestmentType []analytics.CategorySpread `json:"spread_by_investment_type,omitempty"`

	FloorRates analytics.FloorRateAnalysis `json:"floor_rates"`
	PIK        analytics.PIKAnalysis       `json:"pik"`

	FVToPrincipal             analytics.FVRatioStats  `json:"fv_to_principal"`
	FVToPrincipalDistribution []analytics.RangeBucket `json:"fv_to_principal_distribution"`
	FVToCost                  analytics.FVRatioStats  `json:"fv_to_cost"`
	FVToCostDistribution      []analytics.RangeBucket `json:"fv_to_cost_distribution"`

	// MaturityLadder is only computed when the period label parses as a
	// reference date; maturity buckets are meaningless without an anchor.
	MaturityLadder []analytics.MaturityBucket `json:"maturity_ladder,omitempty"`

	TopHoldings []analytics.TopHolding  `json:"top_holdings"`
	RedFlags    []redflags.HoldingFlags `json:"red_flags,omitempty"`

	ParseStats  *parsers.ParseStats `json:"parse_stats,omitempty"`
	ProcessedAt time.Time           `json:"processed_at"`
}

// BuildAnalyticsReport runs the full analytics suite over an in-memory
// holdings collection. The reference date anchors maturity-relative
// analytics; a zero reference skips the maturity ladder and the
// near-maturity red-flag rule. A nil config uses DefaultConfig.
func BuildAnalyticsReport(holdings []*models.Holding, reference time.Time, config *Config) *AnalyticsReport {
	if config == nil {
		config = DefaultConfig()
	}

	industries := analytics.GetIndustryDistribution(holdings)

	report := &AnalyticsReport{
		HoldingCount:   len(holdings),
		TotalFairValue: analytics.TotalFairValue(holdings),

		Industries:      industries,
		InvestmentTypes: analytics.GetInvestmentTypeDistribution(holdings),
		RateStructure:   analytics.GetRateStructure(holdings),

		IndustryConcentration: analytics.GetHerfindahlIndex(industries),

		SpreadStats:            analytics.GetSpreadStats(holdings),
		SpreadDistribution:     analytics.GetSpreadDistribution(holdings),
		SpreadByIndustry:       analytics.GetAverageSpreadByIndustry(holdings),
		SpreadByInvestmentType: analytics.GetAverageSpreadByInvestmentType(holdings),

		FloorRates: analytics.GetFloorRateAnalysis(holdings),
		PIK:        analytics.GetPIKAnalysis(holdings),

		FVToPrincipal:             analytics.GetFVRatioStats(holdings, analytics.RatioToPrincipal),
		FVToPrincipalDistribution: analytics.GetFVRatioDistribution(holdings, analytics.RatioToPrincipal),
		FVToCost:                  analytics.GetFVRatioStats(holdings, analytics.RatioToCost),
		FVToCostDistribution:      analytics.GetFVRatioDistribution(holdings, analytics.RatioToCost),

		TopHoldings: analytics.GetTopHoldings(holdings, config.TopN),
		RedFlags:    redflags.CheckAll(holdings, reference, config.RedFlags),
	}

	if !reference.IsZero() {
		report.MaturityLadder = analytics.GetMaturityLadder(holdings, reference)
	}

	return report
}
