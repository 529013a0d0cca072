package matcher

import (
	"github.com/spergel/new-finance-sub001/internal/models"
)

// Pair holds one matched before/after holding sharing an identity key.
type Pair struct {
	Before *models.Holding
	After  *models.Holding
}

// MatchSet is the three-way partition produced by Match. Every holding from
// either input appears in exactly one of the three collections.
type MatchSet struct {
	// Pairs lists matched holdings in the before snapshot's encounter order.
	Pairs []Pair
	// BeforeOnly lists holdings whose key has no remaining counterpart in
	// the after snapshot.
	BeforeOnly []*models.Holding
	// AfterOnly lists holdings whose key has no remaining counterpart in
	// the before snapshot, in the after snapshot's encounter order.
	AfterOnly []*models.Holding

	// BeforeStats and AfterStats describe the indexed inputs.
	BeforeStats IndexStats
	AfterStats  IndexStats
}

// Match partitions two snapshots' holdings by identity key. For a key
// present on both sides, holdings pair positionally in encounter order:
// the first unpaired before entry with the first unpaired after entry.
// A key with 2 entries before and 1 after therefore yields 1 pair and
// 1 before-only entry, never 2 before-only entries.
//
// Passing a nil config uses DefaultKeyConfig. The function is pure: it
// never mutates the input slices or holdings, and identical inputs produce
// identical output.
func Match(before, after []*models.Holding, cfg *KeyConfig) *MatchSet {
	if cfg == nil {
		cfg = DefaultKeyConfig()
	}

	beforeIdx := newHoldingIndex(before, cfg)
	afterIdx := newHoldingIndex(after, cfg)

	set := &MatchSet{
		BeforeStats: beforeIdx.stats(),
		AfterStats:  afterIdx.stats(),
	}

	for _, key := range beforeIdx.keys {
		beforeEntries := beforeIdx.get(key)
		afterEntries := afterIdx.get(key)

		paired := len(beforeEntries)
		if len(afterEntries) < paired {
			paired = len(afterEntries)
		}

		for i := 0; i < paired; i++ {
			set.Pairs = append(set.Pairs, Pair{Before: beforeEntries[i], After: afterEntries[i]})
		}
		for i := paired; i < len(beforeEntries); i++ {
			set.BeforeOnly = append(set.BeforeOnly, beforeEntries[i])
		}
	}

	for _, key := range afterIdx.keys {
		beforeEntries := beforeIdx.get(key)
		afterEntries := afterIdx.get(key)

		for i := len(beforeEntries); i < len(afterEntries); i++ {
			set.AfterOnly = append(set.AfterOnly, afterEntries[i])
		}
	}

	return set
}
