// Package engine orchestrates the full analysis workflow for the CLI:
// loading snapshot files, computing snapshot diffs, running the analytics
// suite, and evaluating red flags.
//
// The computation packages underneath are pure; the engine is where file
// access, logging and timing live.
//
// Example usage:
//
//	service, err := engine.NewService(nil)
//	report, err := service.Diff(&engine.DiffRequest{
//		BeforeFile: "2024-q1.json",
//		AfterFile:  "2024-q2.json",
//	})
package engine

import (
	"time"

	"github.com/spergel/new-finance-sub001/internal/diff"
	"github.com/spergel/new-finance-sub001/internal/models"
	"github.com/spergel/new-finance-sub001/internal/parsers"
	"github.com/spergel/new-finance-sub001/internal/redflags"
	"github.com/spergel/new-finance-sub001/pkg/errors"
	"github.com/spergel/new-finance-sub001/pkg/logger"
)

// Config aggregates the tunable parameters of the whole pipeline.
type Config struct {
	Diff     *diff.Config
	RedFlags *redflags.Config
	Parser   *parsers.SnapshotConfig

	// TopN bounds the top-holdings ranking in analytics reports.
	TopN int
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() *Config {
	return &Config{
		Diff:     diff.DefaultConfig(),
		RedFlags: redflags.DefaultConfig(),
		Parser:   parsers.DefaultSnapshotConfig(),
		TopN:     10,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.TopN <= 0 {
		return errors.ConfigurationError(errors.CodeInvalidConfig, "top_n", c.TopN, nil).
			WithSuggestion("top-N must be positive")
	}
	if c.Diff != nil {
		if err := c.Diff.Validate(); err != nil {
			return errors.ConfigurationError(errors.CodeInvalidConfig, "diff", nil, err)
		}
	}
	if c.RedFlags != nil {
		if err := c.RedFlags.Validate(); err != nil {
			return errors.ConfigurationError(errors.CodeInvalidConfig, "red_flags", nil, err)
		}
	}
	return nil
}

// Service runs the analysis pipeline under a fixed configuration.
type Service struct {
	config *Config
	logger logger.Logger
}

// NewService creates a pipeline service. A nil config uses DefaultConfig.
func NewService(config *Config) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		config: config,
		logger: logger.GetGlobalLogger().WithComponent("engine"),
	}, nil
}

// DiffRequest names the two snapshot files to compare and their period
// labels for reporting.
type DiffRequest struct {
	BeforeFile  string
	AfterFile   string
	BeforeLabel string
	AfterLabel  string
}

// Validate validates the request.
func (r *DiffRequest) Validate() error {
	if r.BeforeFile == "" {
		return errors.ValidationError(errors.CodeMissingField, "before_file", nil, nil)
	}
	if r.AfterFile == "" {
		return errors.ValidationError(errors.CodeMissingField, "after_file", nil, nil)
	}
	return nil
}

// DiffReport is the complete result of a snapshot comparison.
type DiffReport struct {
	BeforeLabel string              `json:"before_label,omitempty"`
	AfterLabel  string              `json:"after_label,omitempty"`
	Changes     []diff.ChangeRecord `json:"changes"`
	Summary     *diff.Summary       `json:"summary"`

	BeforeParse *parsers.ParseStats `json:"before_parse,omitempty"`
	AfterParse  *parsers.ParseStats `json:"after_parse,omitempty"`
	ProcessedAt time.Time           `json:"processed_at"`
}

// Diff loads both snapshot files and computes the field-level diff and its
// summary.
func (s *Service) Diff(req *DiffRequest) (*DiffReport, error) {
	if req == nil {
		return nil, errors.ValidationError(errors.CodeMissingField, "request", nil, nil)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	op := logger.NewOperationLogger("diff", s.logger).
		WithField("before", req.BeforeFile).
		WithField("after", req.AfterFile)

	op.Step("load_before")
	before, beforeStats, err := parsers.LoadSnapshot(req.BeforeFile, s.config.Parser)
	if err != nil {
		op.Failure(err, "failed to load before snapshot")
		return nil, err
	}

	op.Step("load_after")
	after, afterStats, err := parsers.LoadSnapshot(req.AfterFile, s.config.Parser)
	if err != nil {
		op.Failure(err, "failed to load after snapshot")
		return nil, err
	}

	op.Step("compute_diff")
	changes := diff.NewEngine(s.config.Diff).ComputeDiff(before, after)
	summary := diff.Summarize(changes)

	op.WithField("changes", len(changes)).Success("diff complete")

	return &DiffReport{
		BeforeLabel: req.BeforeLabel,
		AfterLabel:  req.AfterLabel,
		Changes:     changes,
		Summary:     summary,
		BeforeParse: beforeStats,
		AfterParse:  afterStats,
		ProcessedAt: time.Now().UTC(),
	}, nil
}

// AnalyzeRequest names the snapshot file to analyze and its period label.
// The label, when parseable as a date, anchors maturity-relative analytics.
type AnalyzeRequest struct {
	SnapshotFile string
	PeriodLabel  string
}

// Validate validates the request.
func (r *AnalyzeRequest) Validate() error {
	if r.SnapshotFile == "" {
		return errors.ValidationError(errors.CodeMissingField, "snapshot_file", nil, nil)
	}
	return nil
}

// Analyze loads one snapshot and runs the full analytics and red-flag suite
// over it.
func (s *Service) Analyze(req *AnalyzeRequest) (*AnalyticsReport, error) {
	if req == nil {
		return nil, errors.ValidationError(errors.CodeMissingField, "request", nil, nil)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	op := logger.NewOperationLogger("analyze", s.logger).
		WithField("snapshot", req.SnapshotFile)

	op.Step("load")
	holdings, stats, err := parsers.LoadSnapshot(req.SnapshotFile, s.config.Parser)
	if err != nil {
		op.Failure(err, "failed to load snapshot")
		return nil, err
	}

	reference := models.CoerceDate(req.PeriodLabel)

	op.Step("analytics")
	report := BuildAnalyticsReport(holdings, reference, s.config)
	report.PeriodLabel = req.PeriodLabel
	report.ParseStats = stats
	report.ProcessedAt = time.Now().UTC()

	op.WithField("holdings", len(holdings)).Success("analysis complete")
	return report, nil
}
