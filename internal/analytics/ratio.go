package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/spergel/new-finance-sub001/internal/models"
)

// RatioBasis selects the denominator for fair-value-ratio analysis.
type RatioBasis string

const (
	// RatioToPrincipal compares fair value against principal outstanding,
	// a marks-versus-par view of credit holdings.
	RatioToPrincipal RatioBasis = "principal"
	// RatioToCost compares fair value against cost basis (first-present of
	// cost and amortized cost), a gain/loss view.
	RatioToCost RatioBasis = "cost"
)

// FVRatioStats summarizes fair-value ratios over the holdings where both
// sides of the ratio are present and the denominator is non-zero. Excluded
// counts how many holdings lacked either side.
type FVRatioStats struct {
	Basis    RatioBasis `json:"basis"`
	Count    int        `json:"count"`
	Excluded int        `json:"excluded"`
	Average  float64    `json:"average"`
	Median   float64    `json:"median"`
	Min      float64    `json:"min"`
	Max      float64    `json:"max"`
}

// GetFVRatioStats computes ratio statistics against the chosen basis.
func GetFVRatioStats(holdings []*models.Holding, basis RatioBasis) FVRatioStats {
	stats := FVRatioStats{Basis: basis}

	ratios := collectRatios(holdings, basis, &stats.Excluded)
	if len(ratios) == 0 {
		return stats
	}

	sort.Float64s(ratios)
	stats.Count = len(ratios)
	stats.Average = stat.Mean(ratios, nil)
	stats.Median = sortedMedian(ratios)
	stats.Min = ratios[0]
	stats.Max = ratios[len(ratios)-1]

	return stats
}

// ratioBands defines the rule-based histogram for fair-value ratios. The
// 0.90-1.00 and 1.00-1.10 bands straddle par, where most performing credit
// marks cluster.
var ratioBands = []struct {
	label string
	upper float64
}{
	{"< 0.50", 0.50},
	{"0.50 - 0.80", 0.80},
	{"0.80 - 0.90", 0.90},
	{"0.90 - 1.00", 1.00},
	{"1.00 - 1.10", 1.10},
	{">= 1.10", 0},
}

// GetFVRatioDistribution buckets fair-value ratios into the rule-based
// bands, ordered by range. All bands are reported, including empty ones,
// so consumers see the full shape of the histogram.
func GetFVRatioDistribution(holdings []*models.Holding, basis RatioBasis) []RangeBucket {
	var excluded int
	ratios := collectRatios(holdings, basis, &excluded)

	counts := make([]int, len(ratioBands))
	for _, ratio := range ratios {
		placed := false
		for i, band := range ratioBands[:len(ratioBands)-1] {
			if ratio < band.upper {
				counts[i]++
				placed = true
				break
			}
		}
		if !placed {
			counts[len(ratioBands)-1]++
		}
	}

	buckets := make([]RangeBucket, 0, len(ratioBands))
	for i, band := range ratioBands {
		pct := 0.0
		if len(ratios) > 0 {
			pct = float64(counts[i]) / float64(len(ratios)) * 100
		}
		buckets = append(buckets, RangeBucket{
			Range:      band.label,
			Count:      counts[i],
			Percentage: pct,
		})
	}

	return buckets
}

// collectRatios extracts fair-value ratios for the chosen basis, counting
// holdings that lack either side of the ratio into excluded.
func collectRatios(holdings []*models.Holding, basis RatioBasis, excluded *int) []float64 {
	var ratios []float64

	for _, h := range holdings {
		if h == nil {
			continue
		}

		denominator := decimal.Zero
		switch basis {
		case RatioToCost:
			denominator, _ = h.CostBasis()
		default:
			denominator = h.PrincipalAmount
		}

		if denominator.IsZero() || h.FairValue.IsZero() {
			*excluded++
			continue
		}

		ratios = append(ratios, h.FairValue.Div(denominator).InexactFloat64())
	}

	return ratios
}
