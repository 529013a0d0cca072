package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spergel/new-finance-sub001/internal/models"
)

// MaturityBucket is one rung of the maturity ladder.
type MaturityBucket struct {
	Range      string          `json:"range"`
	Count      int             `json:"count"`
	FairValue  decimal.Decimal `json:"fair_value"`
	Percentage float64         `json:"percentage"`
}

// Maturity ladder rung labels, in ladder order.
const (
	maturityMatured = "Matured"
	maturityUnder1  = "< 1y"
	maturity1to3    = "1y - 3y"
	maturity3to5    = "3y - 5y"
	maturityOver5   = "5y +"
	maturityUnknown = "Unknown"
)

var maturityOrder = []string{
	maturityMatured,
	maturityUnder1,
	maturity1to3,
	maturity3to5,
	maturityOver5,
	maturityUnknown,
}

// GetMaturityLadder buckets holdings by time to maturity relative to the
// given reference date (the snapshot's period date, never the system clock).
// Holdings without a maturity date land in the Unknown rung; dates on or
// before the reference land in Matured. All rungs are reported, including
// empty ones, so the ladder always has the same shape. Percentages are of
// total snapshot fair value.
func GetMaturityLadder(holdings []*models.Holding, reference time.Time) []MaturityBucket {
	byRange := make(map[string]*MaturityBucket, len(maturityOrder))
	for _, label := range maturityOrder {
		byRange[label] = &MaturityBucket{Range: label, FairValue: decimal.Zero}
	}

	for _, h := range holdings {
		if h == nil {
			continue
		}
		bucket := byRange[maturityRange(h, reference)]
		bucket.Count++
		bucket.FairValue = bucket.FairValue.Add(h.FairValue)
	}

	total := TotalFairValue(holdings)
	ladder := make([]MaturityBucket, 0, len(maturityOrder))
	for _, label := range maturityOrder {
		bucket := byRange[label]
		bucket.Percentage = percentOf(bucket.FairValue, total)
		ladder = append(ladder, *bucket)
	}

	return ladder
}

// maturityRange classifies one holding's time to maturity.
func maturityRange(h *models.Holding, reference time.Time) string {
	if !h.HasMaturity() {
		return maturityUnknown
	}
	if !h.MaturityDate.After(reference) {
		return maturityMatured
	}

	switch {
	case h.MaturityDate.Before(reference.AddDate(1, 0, 0)):
		return maturityUnder1
	case h.MaturityDate.Before(reference.AddDate(3, 0, 0)):
		return maturity1to3
	case h.MaturityDate.Before(reference.AddDate(5, 0, 0)):
		return maturity3to5
	default:
		return maturityOver5
	}
}
