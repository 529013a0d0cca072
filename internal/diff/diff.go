// Package diff computes field-level changes between two portfolio snapshots.
//
// The engine pairs holdings across snapshots via the identity matcher, then
// compares a fixed ordered set of trackable numeric fields under an absolute
// tolerance, classifying each holding as added, removed, modified, or
// unchanged. It never fails on malformed or partially-populated holdings:
// missing fields participate as zero, and the output covers every input
// holding exactly once.
//
// Example usage:
//
//	engine := diff.NewEngine(nil)
//	changes := engine.ComputeDiff(beforeHoldings, afterHoldings)
//	summary := diff.Summarize(changes)
package diff

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/spergel/new-finance-sub001/internal/matcher"
	"github.com/spergel/new-finance-sub001/internal/models"
)

// ChangeType classifies one holding's fate between two snapshots.
type ChangeType string

const (
	ChangeAdded     ChangeType = "added"
	ChangeRemoved   ChangeType = "removed"
	ChangeModified  ChangeType = "modified"
	ChangeUnchanged ChangeType = "unchanged"
)

// String returns the string representation of ChangeType.
func (t ChangeType) String() string {
	return string(t)
}

// Trackable field names, in comparison order.
const (
	FieldFairValue = "fair_value"
	FieldCost      = "cost"
	FieldPrincipal = "principal_amount"
	FieldSpread    = "spread"
	FieldFloorRate = "floor_rate"
	FieldPIKRate   = "pik_rate"
)

// FieldChange records one trackable field whose before/after values differ
// beyond tolerance. Delta is always after minus before.
type FieldChange struct {
	Field  string          `json:"field"`
	Before decimal.Decimal `json:"before"`
	After  decimal.Decimal `json:"after"`
	Delta  decimal.Decimal `json:"delta"`
}

// ChangeRecord describes one holding's change between snapshots. Added
// records carry only After, removed records only Before; modified and
// unchanged records carry both.
type ChangeRecord struct {
	Type    ChangeType      `json:"type"`
	Before  *models.Holding `json:"before,omitempty"`
	After   *models.Holding `json:"after,omitempty"`
	Changes []FieldChange   `json:"changes,omitempty"`
}

// Config holds the diff engine's tuning parameters.
type Config struct {
	// Epsilon is the absolute tolerance below which two numeric values are
	// considered equal, absorbing floating-point and rounding noise from
	// upstream extraction. Expressed in monetary units for monetary fields
	// and percentage points for rate fields.
	Epsilon decimal.Decimal

	// Keys controls identity-key derivation for the matching stage.
	Keys *matcher.KeyConfig
}

// DefaultConfig returns the default engine configuration: epsilon 0.01 and
// the default identity key composition.
func DefaultConfig() *Config {
	return &Config{
		Epsilon: decimal.NewFromFloat(0.01),
		Keys:    matcher.DefaultKeyConfig(),
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Epsilon.IsNegative() {
		return fmt.Errorf("epsilon must be non-negative, got %s", c.Epsilon.String())
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	copied := *c
	if c.Keys != nil {
		copied.Keys = c.Keys.Clone()
	}
	return &copied
}

// Engine compares snapshots under a fixed configuration. The zero-cost way
// to use the package is the package-level ComputeDiff, which runs with
// defaults.
type Engine struct {
	config *Config
}

// NewEngine creates a diff engine. A nil config uses DefaultConfig.
func NewEngine(config *Config) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	return &Engine{config: config}
}

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// ComputeDiff compares two snapshots and returns one change record per
// holding in the union of both inputs. The result order is deterministic:
// matched and removed holdings follow the before snapshot's order, added
// holdings follow the after snapshot's order.
func (e *Engine) ComputeDiff(before, after []*models.Holding) []ChangeRecord {
	set := matcher.Match(before, after, e.config.Keys)

	records := make([]ChangeRecord, 0, len(set.Pairs)+len(set.BeforeOnly)+len(set.AfterOnly))

	for _, pair := range set.Pairs {
		changes := e.compareFields(pair.Before, pair.After)
		record := ChangeRecord{
			Type:    ChangeUnchanged,
			Before:  pair.Before,
			After:   pair.After,
			Changes: changes,
		}
		if len(changes) > 0 {
			record.Type = ChangeModified
		}
		records = append(records, record)
	}

	for _, h := range set.BeforeOnly {
		records = append(records, ChangeRecord{Type: ChangeRemoved, Before: h})
	}

	for _, h := range set.AfterOnly {
		records = append(records, ChangeRecord{Type: ChangeAdded, After: h})
	}

	return records
}

// trackedFields defines the comparison order and value extraction for every
// trackable field. Cost compares the first-present of cost and amortized
// cost, mirroring how the analytics read a holding's basis.
var trackedFields = []struct {
	name  string
	value func(h *models.Holding) decimal.Decimal
}{
	{FieldFairValue, func(h *models.Holding) decimal.Decimal { return h.FairValue }},
	{FieldCost, func(h *models.Holding) decimal.Decimal {
		basis, _ := h.CostBasis()
		return basis
	}},
	{FieldPrincipal, func(h *models.Holding) decimal.Decimal { return h.PrincipalAmount }},
	{FieldSpread, func(h *models.Holding) decimal.Decimal { return decimal.NewFromFloat(h.Spread) }},
	{FieldFloorRate, func(h *models.Holding) decimal.Decimal { return decimal.NewFromFloat(h.FloorRate) }},
	{FieldPIKRate, func(h *models.Holding) decimal.Decimal { return decimal.NewFromFloat(h.PIKRate) }},
}

// compareFields returns the field changes between a matched pair.
// Differences within epsilon are treated as equal.
func (e *Engine) compareFields(before, after *models.Holding) []FieldChange {
	var changes []FieldChange

	for _, field := range trackedFields {
		b := field.value(before)
		a := field.value(after)

		if a.Sub(b).Abs().LessThanOrEqual(e.config.Epsilon) {
			continue
		}

		changes = append(changes, FieldChange{
			Field:  field.name,
			Before: b,
			After:  a,
			Delta:  a.Sub(b),
		})
	}

	return changes
}

// ComputeDiff compares two snapshots with the default configuration.
func ComputeDiff(before, after []*models.Holding) []ChangeRecord {
	return NewEngine(nil).ComputeDiff(before, after)
}
