// Package analytics turns a flat holdings collection into distributional and
// risk statistics: category distributions, concentration indices, spread and
// floor-rate statistics, PIK aggregates, fair-value-ratio analysis, maturity
// ladders, and top-holdings rankings.
//
// Every function is a pure transformation over the holdings it is given.
// Zero denominators (empty collections, zero total fair value) produce
// well-defined zero results, never NaN or errors. Distributions are always
// complete and unfolded; capping to top-N with an "Other" remainder is a
// presentation concern that lives in the reporter.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/spergel/new-finance-sub001/internal/models"
)

// Bucket is one category's share of a distribution.
type Bucket struct {
	Category   string          `json:"category"`
	Count      int             `json:"count"`
	FairValue  decimal.Decimal `json:"fair_value"`
	Percentage float64         `json:"percentage"`
}

// TotalFairValue sums fair value across a holdings collection.
func TotalFairValue(holdings []*models.Holding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		if h == nil {
			continue
		}
		total = total.Add(h.FairValue)
	}
	return total
}

// Distribution buckets holdings by the category the extractor derives,
// accumulating count and fair value per distinct category and computing each
// bucket's percentage of total fair value (0 when the total is 0). Buckets
// sort by fair value descending, ties broken by category name ascending.
//
// The extractor must map missing data to an explicit category (the
// specializations use "Unknown") so that no holding is silently dropped.
func Distribution(holdings []*models.Holding, category func(*models.Holding) string) []Bucket {
	byCategory := make(map[string]*Bucket)

	for _, h := range holdings {
		if h == nil {
			continue
		}
		name := category(h)
		bucket, ok := byCategory[name]
		if !ok {
			bucket = &Bucket{Category: name, FairValue: decimal.Zero}
			byCategory[name] = bucket
		}
		bucket.Count++
		bucket.FairValue = bucket.FairValue.Add(h.FairValue)
	}

	total := TotalFairValue(holdings)

	buckets := make([]Bucket, 0, len(byCategory))
	for _, bucket := range byCategory {
		bucket.Percentage = percentOf(bucket.FairValue, total)
		buckets = append(buckets, *bucket)
	}

	sort.Slice(buckets, func(i, j int) bool {
		if !buckets[i].FairValue.Equal(buckets[j].FairValue) {
			return buckets[i].FairValue.GreaterThan(buckets[j].FairValue)
		}
		return buckets[i].Category < buckets[j].Category
	})

	return buckets
}

// GetIndustryDistribution buckets holdings by industry classification.
func GetIndustryDistribution(holdings []*models.Holding) []Bucket {
	return Distribution(holdings, func(h *models.Holding) string {
		return h.IndustryOrUnknown()
	})
}

// GetInvestmentTypeDistribution buckets holdings by investment type.
func GetInvestmentTypeDistribution(holdings []*models.Holding) []Bucket {
	return Distribution(holdings, func(h *models.Holding) string {
		return h.InvestmentTypeOrUnknown()
	})
}

// RateStructure splits a snapshot between fixed-rate and floating-rate
// holdings. Floating means a present, non-zero spread.
type RateStructure struct {
	Fixed    Bucket `json:"fixed"`
	Floating Bucket `json:"floating"`
}

// GetRateStructure computes the fixed/floating split of a snapshot.
func GetRateStructure(holdings []*models.Holding) RateStructure {
	rs := RateStructure{
		Fixed:    Bucket{Category: "Fixed", FairValue: decimal.Zero},
		Floating: Bucket{Category: "Floating", FairValue: decimal.Zero},
	}

	for _, h := range holdings {
		if h == nil {
			continue
		}
		if h.RateType() == models.RateTypeFloating {
			rs.Floating.Count++
			rs.Floating.FairValue = rs.Floating.FairValue.Add(h.FairValue)
		} else {
			rs.Fixed.Count++
			rs.Fixed.FairValue = rs.Fixed.FairValue.Add(h.FairValue)
		}
	}

	total := TotalFairValue(holdings)
	rs.Fixed.Percentage = percentOf(rs.Fixed.FairValue, total)
	rs.Floating.Percentage = percentOf(rs.Floating.FairValue, total)

	return rs
}

// percentOf computes part/total*100, returning 0 when the total is zero.
func percentOf(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
