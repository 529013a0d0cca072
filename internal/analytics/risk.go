package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/spergel/new-finance-sub001/internal/models"
)

// GetHerfindahlIndex computes the Herfindahl concentration index over a
// distribution: the sum of squared percentage shares with percentages on the
// 0-100 scale. An empty distribution scores 0; a single-bucket distribution
// holding 100% scores 10000. Higher means more concentrated.
func GetHerfindahlIndex(buckets []Bucket) float64 {
	index := 0.0
	for _, bucket := range buckets {
		index += bucket.Percentage * bucket.Percentage
	}
	return index
}

// FloorRateAnalysis partitions holdings by the presence of a reference-rate
// floor and summarizes floor levels among the with-floor subset, in
// percentage points.
type FloorRateAnalysis struct {
	WithFloor    int     `json:"with_floor"`
	WithoutFloor int     `json:"without_floor"`
	Average      float64 `json:"average"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
}

// GetFloorRateAnalysis computes floor-rate statistics for a snapshot.
func GetFloorRateAnalysis(holdings []*models.Holding) FloorRateAnalysis {
	analysis := FloorRateAnalysis{}

	var floors []float64
	for _, h := range holdings {
		if h == nil {
			continue
		}
		if h.HasFloor() {
			analysis.WithFloor++
			floors = append(floors, h.FloorRate)
		} else {
			analysis.WithoutFloor++
		}
	}

	if len(floors) == 0 {
		return analysis
	}

	sort.Float64s(floors)
	analysis.Average = stat.Mean(floors, nil)
	analysis.Min = floors[0]
	analysis.Max = floors[len(floors)-1]

	return analysis
}

// PIKAnalysis aggregates holdings with payment-in-kind income.
type PIKAnalysis struct {
	Count              int             `json:"count"`
	FairValue          decimal.Decimal `json:"fair_value"`
	PercentOfFairValue float64         `json:"percent_of_fair_value"`
	AverageRate        float64         `json:"average_rate"`
}

// GetPIKAnalysis computes PIK aggregates: count and fair value of flagged
// holdings, their share of snapshot fair value, and the average PIK rate
// among holdings that report one (0 when none do).
func GetPIKAnalysis(holdings []*models.Holding) PIKAnalysis {
	analysis := PIKAnalysis{FairValue: decimal.Zero}

	var rates []float64
	for _, h := range holdings {
		if h == nil || !h.HasPIK() {
			continue
		}
		analysis.Count++
		analysis.FairValue = analysis.FairValue.Add(h.FairValue)
		if h.PIKRate > 0 {
			rates = append(rates, h.PIKRate)
		}
	}

	analysis.PercentOfFairValue = percentOf(analysis.FairValue, TotalFairValue(holdings))
	if len(rates) > 0 {
		analysis.AverageRate = stat.Mean(rates, nil)
	}

	return analysis
}

// TopHolding annotates a holding with its share of snapshot fair value.
type TopHolding struct {
	Holding    *models.Holding `json:"holding"`
	Percentage float64         `json:"percentage"`
}

// GetTopHoldings returns the n largest holdings by fair value, descending,
// each annotated with its percentage of total snapshot fair value. Ties
// break by company name then investment type for determinism. A non-positive
// n yields an empty result.
func GetTopHoldings(holdings []*models.Holding, n int) []TopHolding {
	if n <= 0 {
		return nil
	}

	sorted := make([]*models.Holding, 0, len(holdings))
	for _, h := range holdings {
		if h != nil {
			sorted = append(sorted, h)
		}
	}

	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].FairValue.Equal(sorted[j].FairValue) {
			return sorted[i].FairValue.GreaterThan(sorted[j].FairValue)
		}
		if sorted[i].CompanyName != sorted[j].CompanyName {
			return sorted[i].CompanyName < sorted[j].CompanyName
		}
		return sorted[i].InvestmentType < sorted[j].InvestmentType
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	total := TotalFairValue(holdings)
	top := make([]TopHolding, 0, len(sorted))
	for _, h := range sorted {
		top = append(top, TopHolding{
			Holding:    h,
			Percentage: percentOf(h.FairValue, total),
		})
	}

	return top
}
