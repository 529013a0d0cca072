// Package redflags applies a fixed rule set per holding to emit advisory
// flags about potential valuation or risk concerns: marks hovering at or
// below par, markdowns against cost basis, payment-in-kind income, and
// approaching maturities.
//
// Flags are advisory annotations, not validation errors. Evaluation is pure:
// the classifier never mutates the holding, and the maturity rule takes the
// snapshot's reference date as an explicit parameter instead of reading the
// system clock, so results are reproducible.
package redflags

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spergel/new-finance-sub001/internal/models"
)

// FlagType identifies one rule in the fixed rule set.
type FlagType string

const (
	// FlagNearPrincipal fires when fair value sits within the tolerance
	// band around principal, a mark pinned at par.
	FlagNearPrincipal FlagType = "fv_near_principal"
	// FlagBelowPrincipal fires when fair value is strictly below principal
	// beyond the tolerance band.
	FlagBelowPrincipal FlagType = "fv_below_principal"
	// FlagBelowCost fires when fair value is marked below cost basis.
	FlagBelowCost FlagType = "fv_below_cost"
	// FlagPIK fires when any portion of income accrues as payment-in-kind.
	FlagPIK FlagType = "has_pik"
	// FlagNearMaturity fires when the maturity date falls within the
	// configured horizon of the snapshot's reference date.
	FlagNearMaturity FlagType = "near_maturity"
)

// Severity ranks how much attention a flag deserves.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Flag is one advisory annotation on a holding.
type Flag struct {
	Type     FlagType `json:"type"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Config holds the classifier's thresholds.
type Config struct {
	// ParTolerance is the band around principal, as a fraction of
	// principal, inside which fair value counts as "approximately par".
	ParTolerance float64

	// DeepDiscount is the fraction of principal below which a markdown
	// escalates from medium to high severity.
	DeepDiscount float64

	// DeepMarkdown is the fraction of cost basis below which a
	// below-cost mark escalates from low to medium severity.
	DeepMarkdown float64

	// MaturityHorizonMonths is how far ahead of the reference date a
	// maturity counts as "near".
	MaturityHorizonMonths int
}

// DefaultConfig returns the default thresholds: 1% par tolerance, 10% deep
// discount, 20% deep markdown, 12-month maturity horizon.
func DefaultConfig() *Config {
	return &Config{
		ParTolerance:          0.01,
		DeepDiscount:          0.10,
		DeepMarkdown:          0.20,
		MaturityHorizonMonths: 12,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.ParTolerance < 0 {
		return fmt.Errorf("par tolerance must be non-negative, got %f", c.ParTolerance)
	}
	if c.DeepDiscount < 0 || c.DeepDiscount > 1 {
		return fmt.Errorf("deep discount must be within [0, 1], got %f", c.DeepDiscount)
	}
	if c.DeepMarkdown < 0 || c.DeepMarkdown > 1 {
		return fmt.Errorf("deep markdown must be within [0, 1], got %f", c.DeepMarkdown)
	}
	if c.MaturityHorizonMonths < 0 {
		return fmt.Errorf("maturity horizon must be non-negative, got %d months", c.MaturityHorizonMonths)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	copied := *c
	return &copied
}

// Check evaluates the rule set against one holding. The reference date is
// the snapshot's period date; it anchors the near-maturity rule. A nil
// config uses DefaultConfig. Multiple flags may co-occur; zero flags means
// nothing noteworthy.
func Check(h *models.Holding, reference time.Time, cfg *Config) []Flag {
	if h == nil {
		return nil
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var flags []Flag
	flags = appendPrincipalFlags(flags, h, cfg)
	flags = appendCostFlag(flags, h, cfg)
	flags = appendPIKFlag(flags, h)
	flags = appendMaturityFlag(flags, h, reference, cfg)
	return flags
}

func appendPrincipalFlags(flags []Flag, h *models.Holding, cfg *Config) []Flag {
	if h.PrincipalAmount.IsZero() || h.FairValue.IsZero() {
		return flags
	}

	tolerance := h.PrincipalAmount.Mul(decimal.NewFromFloat(cfg.ParTolerance)).Abs()
	diff := h.FairValue.Sub(h.PrincipalAmount)

	if diff.Abs().LessThanOrEqual(tolerance) {
		return append(flags, Flag{
			Type:     FlagNearPrincipal,
			Severity: SeverityInfo,
			Message: fmt.Sprintf("fair value %s is approximately equal to principal %s",
				h.FairValue.StringFixed(2), h.PrincipalAmount.StringFixed(2)),
		})
	}

	if diff.IsNegative() {
		discount := h.PrincipalAmount.Sub(h.FairValue).Div(h.PrincipalAmount)
		severity := SeverityMedium
		if discount.GreaterThan(decimal.NewFromFloat(cfg.DeepDiscount)) {
			severity = SeverityHigh
		}
		return append(flags, Flag{
			Type:     FlagBelowPrincipal,
			Severity: severity,
			Message: fmt.Sprintf("fair value %s is %s%% below principal %s",
				h.FairValue.StringFixed(2),
				discount.Mul(decimal.NewFromInt(100)).StringFixed(1),
				h.PrincipalAmount.StringFixed(2)),
		})
	}

	return flags
}

func appendCostFlag(flags []Flag, h *models.Holding, cfg *Config) []Flag {
	basis, ok := h.CostBasis()
	if !ok || h.FairValue.IsZero() || !h.FairValue.LessThan(basis) {
		return flags
	}

	markdown := basis.Sub(h.FairValue).Div(basis)
	severity := SeverityLow
	if markdown.GreaterThan(decimal.NewFromFloat(cfg.DeepMarkdown)) {
		severity = SeverityMedium
	}

	return append(flags, Flag{
		Type:     FlagBelowCost,
		Severity: severity,
		Message: fmt.Sprintf("fair value %s is marked %s%% below cost basis %s",
			h.FairValue.StringFixed(2),
			markdown.Mul(decimal.NewFromInt(100)).StringFixed(1),
			basis.StringFixed(2)),
	})
}

func appendPIKFlag(flags []Flag, h *models.Holding) []Flag {
	if !h.HasPIK() {
		return flags
	}

	message := "income accrues partly as payment-in-kind"
	if h.PIKRate > 0 {
		message = fmt.Sprintf("income accrues partly as payment-in-kind at %.2f%%", h.PIKRate)
	}

	return append(flags, Flag{
		Type:     FlagPIK,
		Severity: SeverityInfo,
		Message:  message,
	})
}

func appendMaturityFlag(flags []Flag, h *models.Holding, reference time.Time, cfg *Config) []Flag {
	if !h.HasMaturity() || reference.IsZero() {
		return flags
	}

	horizon := reference.AddDate(0, cfg.MaturityHorizonMonths, 0)
	if h.MaturityDate.After(horizon) {
		return flags
	}

	severity := SeverityMedium
	message := fmt.Sprintf("maturity %s falls within %d months of the reporting date",
		h.MaturityDate.Format("2006-01-02"), cfg.MaturityHorizonMonths)
	if !h.MaturityDate.After(reference) {
		severity = SeverityHigh
		message = fmt.Sprintf("maturity %s has already passed the reporting date",
			h.MaturityDate.Format("2006-01-02"))
	}

	return append(flags, Flag{
		Type:     FlagNearMaturity,
		Severity: severity,
		Message:  message,
	})
}

// HoldingFlags pairs a holding with the flags raised against it.
type HoldingFlags struct {
	Holding *models.Holding `json:"holding"`
	Flags   []Flag          `json:"flags"`
}

// CheckAll evaluates the rule set across a snapshot, returning only the
// holdings that raised at least one flag, in input order.
func CheckAll(holdings []*models.Holding, reference time.Time, cfg *Config) []HoldingFlags {
	var flagged []HoldingFlags
	for _, h := range holdings {
		if flags := Check(h, reference, cfg); len(flags) > 0 {
			flagged = append(flagged, HoldingFlags{Holding: h, Flags: flags})
		}
	}
	return flagged
}
