package matcher

import (
	"github.com/spergel/new-finance-sub001/internal/models"
)

// holdingIndex groups one snapshot's holdings by identity key while
// preserving both the key encounter order and the positional order of
// holdings under each key. Positional order is what makes duplicate-key
// pairing deterministic.
type holdingIndex struct {
	byKey map[string][]*models.Holding
	keys  []string
}

// newHoldingIndex builds an index over a snapshot using the given key
// configuration.
func newHoldingIndex(holdings []*models.Holding, cfg *KeyConfig) *holdingIndex {
	idx := &holdingIndex{
		byKey: make(map[string][]*models.Holding, len(holdings)),
	}

	for _, h := range holdings {
		if h == nil {
			continue
		}
		key := cfg.Key(h)
		if _, seen := idx.byKey[key]; !seen {
			idx.keys = append(idx.keys, key)
		}
		idx.byKey[key] = append(idx.byKey[key], h)
	}

	return idx
}

// get returns the holdings recorded under a key, in encounter order.
func (idx *holdingIndex) get(key string) []*models.Holding {
	return idx.byKey[key]
}

// IndexStats describes the shape of an indexed snapshot. The duplicate-key
// count is worth surfacing in logs: within one snapshot a key should be
// unique, and repeats usually indicate an upstream extraction artifact.
type IndexStats struct {
	TotalHoldings int `json:"total_holdings"`
	DistinctKeys  int `json:"distinct_keys"`
	DuplicateKeys int `json:"duplicate_keys"`
}

// stats computes summary statistics for the index.
func (idx *holdingIndex) stats() IndexStats {
	s := IndexStats{
		DistinctKeys: len(idx.keys),
	}
	for _, hs := range idx.byKey {
		s.TotalHoldings += len(hs)
		if len(hs) > 1 {
			s.DuplicateKeys++
		}
	}
	return s
}
