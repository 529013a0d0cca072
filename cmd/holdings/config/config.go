// Package config assembles engine and reporter configurations from CLI
// flag values.
package config

import (
	"github.com/shopspring/decimal"

	"github.com/spergel/new-finance-sub001/internal/engine"
	"github.com/spergel/new-finance-sub001/internal/matcher"
	"github.com/spergel/new-finance-sub001/internal/reporter"
	"github.com/spergel/new-finance-sub001/pkg/errors"
)

// EngineOptions carries the flag values that tune the analysis pipeline.
type EngineOptions struct {
	// Epsilon is the diff tolerance in monetary units.
	Epsilon float64
	// MatchByType includes investment type in the identity key.
	MatchByType bool
	// TopN bounds the top-holdings ranking.
	TopN int
	// ParTolerance is the fair-value-near-principal band, as a fraction.
	ParTolerance float64
	// MaturityHorizonMonths is the near-maturity lookahead.
	MaturityHorizonMonths int
}

// CreateEngineConfig builds a validated engine configuration from flag
// values, starting from defaults.
func CreateEngineConfig(opts EngineOptions) (*engine.Config, error) {
	cfg := engine.DefaultConfig()

	if opts.Epsilon < 0 {
		return nil, errors.ConfigurationError(errors.CodeInvalidConfig, "epsilon", opts.Epsilon, nil).
			WithSuggestion("the diff tolerance must be non-negative")
	}
	cfg.Diff.Epsilon = decimal.NewFromFloat(opts.Epsilon)
	cfg.Diff.Keys = &matcher.KeyConfig{IncludeInvestmentType: opts.MatchByType}

	if opts.TopN > 0 {
		cfg.TopN = opts.TopN
	}
	if opts.ParTolerance > 0 {
		cfg.RedFlags.ParTolerance = opts.ParTolerance
	}
	if opts.MaturityHorizonMonths > 0 {
		cfg.RedFlags.MaturityHorizonMonths = opts.MaturityHorizonMonths
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CreateReportConfig builds a validated report configuration from flag
// values.
func CreateReportConfig(format string, includeUnchanged bool, maxRows int) (*reporter.ReportConfig, error) {
	cfg := reporter.DefaultReportConfig()
	cfg.Format = reporter.OutputFormat(format)
	cfg.IncludeUnchanged = includeUnchanged
	if maxRows != 0 {
		cfg.MaxDistributionRows = maxRows
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigurationError(errors.CodeInvalidConfig, "output_format", format, err).
			WithSuggestion("supported formats: console, json, csv")
	}
	return cfg, nil
}
