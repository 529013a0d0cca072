package diff

import (
	"github.com/shopspring/decimal"

	"github.com/spergel/new-finance-sub001/internal/models"
)

// TypeTotals aggregates one change type: how many holdings it covers and
// their fair value. For added and unchanged records the fair value is the
// after-side mark, for removed records the before-side mark, and for
// modified records the after-side mark (the current value of the changed
// position).
type TypeTotals struct {
	Count     int             `json:"count"`
	FairValue decimal.Decimal `json:"fair_value"`
}

// SnapshotTotals aggregates one whole snapshot side of the diff.
type SnapshotTotals struct {
	Count     int             `json:"count"`
	FairValue decimal.Decimal `json:"fair_value"`
}

// Summary reduces a change list into per-type and per-side aggregates.
//
// NetFairValueDelta is the signed sum of per-holding fair-value deltas
// (added: +after, removed: -before, matched: after-before) and always
// equals TotalAfter.FairValue - TotalBefore.FairValue. Matched pairs
// contribute their delta even when tolerance classifies them as
// unchanged, so sub-epsilon drift still reconciles with the side totals.
type Summary struct {
	Added     TypeTotals `json:"added"`
	Removed   TypeTotals `json:"removed"`
	Modified  TypeTotals `json:"modified"`
	Unchanged TypeTotals `json:"unchanged"`

	TotalBefore SnapshotTotals `json:"total_before"`
	TotalAfter  SnapshotTotals `json:"total_after"`

	NetFairValueDelta decimal.Decimal `json:"net_fair_value_delta"`
}

// Summarize reduces a change list into a Summary. An empty (or nil) change
// list yields all-zero totals.
func Summarize(changes []ChangeRecord) *Summary {
	summary := &Summary{
		Added:             TypeTotals{FairValue: decimal.Zero},
		Removed:           TypeTotals{FairValue: decimal.Zero},
		Modified:          TypeTotals{FairValue: decimal.Zero},
		Unchanged:         TypeTotals{FairValue: decimal.Zero},
		TotalBefore:       SnapshotTotals{FairValue: decimal.Zero},
		TotalAfter:        SnapshotTotals{FairValue: decimal.Zero},
		NetFairValueDelta: decimal.Zero,
	}

	for _, change := range changes {
		switch change.Type {
		case ChangeAdded:
			fv := fairValueOf(change.After)
			summary.Added.Count++
			summary.Added.FairValue = summary.Added.FairValue.Add(fv)
			summary.NetFairValueDelta = summary.NetFairValueDelta.Add(fv)
		case ChangeRemoved:
			fv := fairValueOf(change.Before)
			summary.Removed.Count++
			summary.Removed.FairValue = summary.Removed.FairValue.Add(fv)
			summary.NetFairValueDelta = summary.NetFairValueDelta.Sub(fv)
		case ChangeModified:
			after := fairValueOf(change.After)
			summary.Modified.Count++
			summary.Modified.FairValue = summary.Modified.FairValue.Add(after)
			summary.NetFairValueDelta = summary.NetFairValueDelta.Add(after.Sub(fairValueOf(change.Before)))
		case ChangeUnchanged:
			summary.Unchanged.Count++
			summary.Unchanged.FairValue = summary.Unchanged.FairValue.Add(fairValueOf(change.After))
			summary.NetFairValueDelta = summary.NetFairValueDelta.Add(fairValueOf(change.After).Sub(fairValueOf(change.Before)))
		}

		if change.Before != nil {
			summary.TotalBefore.Count++
			summary.TotalBefore.FairValue = summary.TotalBefore.FairValue.Add(change.Before.FairValue)
		}
		if change.After != nil {
			summary.TotalAfter.Count++
			summary.TotalAfter.FairValue = summary.TotalAfter.FairValue.Add(change.After.FairValue)
		}
	}

	return summary
}

// fairValueOf reads a holding's fair value, tolerating nil.
func fairValueOf(h *models.Holding) decimal.Decimal {
	if h == nil {
		return decimal.Zero
	}
	return h.FairValue
}
