package analytics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/spergel/new-finance-sub001/internal/models"
)

// SpreadStats summarizes the interest margins of a snapshot's floating-rate
// holdings, in percentage points. Holdings without spread data are counted
// separately rather than skewing the statistics toward zero.
type SpreadStats struct {
	WithSpread    int     `json:"with_spread"`
	WithoutSpread int     `json:"without_spread"`
	Average       float64 `json:"average"`
	Median        float64 `json:"median"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	StdDev        float64 `json:"std_dev"`
}

// GetSpreadStats computes spread statistics over holdings with a present,
// non-zero spread. An empty subset yields all-zero statistics.
func GetSpreadStats(holdings []*models.Holding) SpreadStats {
	stats := SpreadStats{}

	var spreads []float64
	for _, h := range holdings {
		if h == nil {
			continue
		}
		if h.HasSpread() {
			stats.WithSpread++
			spreads = append(spreads, h.Spread)
		} else {
			stats.WithoutSpread++
		}
	}

	if len(spreads) == 0 {
		return stats
	}

	sort.Float64s(spreads)

	stats.Average = stat.Mean(spreads, nil)
	stats.Median = sortedMedian(spreads)
	stats.Min = spreads[0]
	stats.Max = spreads[len(spreads)-1]
	if len(spreads) > 1 {
		stats.StdDev = stat.StdDev(spreads, nil)
	}

	return stats
}

// RangeBucket is one histogram band: a human-readable range label, the
// number of holdings in the band, and the band's share of the bucketed
// population.
type RangeBucket struct {
	Range      string  `json:"range"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// GetSpreadDistribution buckets spread-bearing holdings into 100bp bands,
// ordered ascending by band. Empty bands are omitted. Percentages are
// relative to the spread-bearing population, not the whole snapshot.
func GetSpreadDistribution(holdings []*models.Holding) []RangeBucket {
	counts := make(map[int]int)
	total := 0

	for _, h := range holdings {
		if h == nil || !h.HasSpread() {
			continue
		}
		band := int(math.Floor(h.Spread))
		if band < 0 {
			band = 0
		}
		counts[band]++
		total++
	}

	if total == 0 {
		return nil
	}

	bands := make([]int, 0, len(counts))
	for band := range counts {
		bands = append(bands, band)
	}
	sort.Ints(bands)

	buckets := make([]RangeBucket, 0, len(bands))
	for _, band := range bands {
		buckets = append(buckets, RangeBucket{
			Range:      fmt.Sprintf("%d%% - %d%%", band, band+1),
			Count:      counts[band],
			Percentage: float64(counts[band]) / float64(total) * 100,
		})
	}

	return buckets
}

// CategorySpread reports the average spread of the spread-bearing holdings
// within one category.
type CategorySpread struct {
	Category      string  `json:"category"`
	Count         int     `json:"count"`
	AverageSpread float64 `json:"average_spread"`
}

// GetAverageSpreadByIndustry computes per-industry average spreads over
// spread-bearing holdings, sorted by average descending with ties broken by
// category name.
func GetAverageSpreadByIndustry(holdings []*models.Holding) []CategorySpread {
	return averageSpreadBy(holdings, func(h *models.Holding) string {
		return h.IndustryOrUnknown()
	})
}

// GetAverageSpreadByInvestmentType computes per-investment-type average
// spreads over spread-bearing holdings.
func GetAverageSpreadByInvestmentType(holdings []*models.Holding) []CategorySpread {
	return averageSpreadBy(holdings, func(h *models.Holding) string {
		return h.InvestmentTypeOrUnknown()
	})
}

func averageSpreadBy(holdings []*models.Holding, category func(*models.Holding) string) []CategorySpread {
	byCategory := make(map[string][]float64)

	for _, h := range holdings {
		if h == nil || !h.HasSpread() {
			continue
		}
		name := category(h)
		byCategory[name] = append(byCategory[name], h.Spread)
	}

	results := make([]CategorySpread, 0, len(byCategory))
	for name, spreads := range byCategory {
		results = append(results, CategorySpread{
			Category:      name,
			Count:         len(spreads),
			AverageSpread: stat.Mean(spreads, nil),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].AverageSpread != results[j].AverageSpread {
			return results[i].AverageSpread > results[j].AverageSpread
		}
		return results[i].Category < results[j].Category
	})

	return results
}

// sortedMedian computes the median of an ascending-sorted, non-empty slice
// using the standard midpoint rule: the mean of the two middle values for
// even counts.
func sortedMedian(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
