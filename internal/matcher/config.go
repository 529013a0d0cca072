// Package matcher reconciles two portfolio snapshots by deriving a stable
// identity key per holding and partitioning the collections into matched
// pairs, before-only holdings, and after-only holdings.
//
// The identity key is the case-normalized, whitespace-collapsed company name,
// optionally combined with the investment type to distinguish multiple
// instruments in the same issuer. Duplicate keys within one snapshot are
// paired positionally in encounter order so that no holding is silently
// collapsed or dropped.
//
// Example usage:
//
//	cfg := matcher.DefaultKeyConfig()
//	set := matcher.Match(beforeHoldings, afterHoldings, cfg)
//	for _, pair := range set.Pairs {
//		// pair.Before and pair.After share an identity key
//	}
package matcher

import (
	"strings"

	"github.com/spergel/new-finance-sub001/internal/models"
)

// keySeparator joins the normalized key components. Normalization collapses
// whitespace runs, so the separator cannot collide with component text.
const keySeparator = "|"

// KeyConfig controls how the identity key is derived from a holding.
type KeyConfig struct {
	// IncludeInvestmentType adds the investment type to the key so that
	// multiple instruments in the same issuer (e.g. a first-lien loan and
	// common equity) match independently. Filings that report one row per
	// issuer can disable this to match on company name alone.
	IncludeInvestmentType bool
}

// DefaultKeyConfig returns the default key composition: company name plus
// investment type.
func DefaultKeyConfig() *KeyConfig {
	return &KeyConfig{
		IncludeInvestmentType: true,
	}
}

// Clone returns a copy of the configuration.
func (c *KeyConfig) Clone() *KeyConfig {
	copied := *c
	return &copied
}

// Key derives the identity key for a holding.
func (c *KeyConfig) Key(h *models.Holding) string {
	if !c.IncludeInvestmentType {
		return NormalizeKeyPart(h.CompanyName)
	}
	return NormalizeKeyPart(h.CompanyName) + keySeparator + NormalizeKeyPart(h.InvestmentType)
}

// NormalizeKeyPart canonicalizes one key component: surrounding whitespace
// is trimmed, inner whitespace runs collapse to a single space, and the
// result is upper-cased. Upstream extraction is inconsistent about casing
// and spacing across periods; anything stricter (punctuation stripping,
// suffix normalization) risks merging genuinely distinct issuers.
func NormalizeKeyPart(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}
