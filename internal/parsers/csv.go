package parsers

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/spergel/new-finance-sub001/internal/models"
	"github.com/spergel/new-finance-sub001/pkg/errors"
	"github.com/spergel/new-finance-sub001/pkg/logger"
)

// ParseCSVSnapshot parses a CSV snapshot: one holding per row, columns
// identified by header with alias resolution. The company name column must
// be present; every other column is optional. Malformed field values degrade
// through the models coercion helpers rather than failing the row.
func ParseCSVSnapshot(r io.Reader, source string, cfg *SnapshotConfig) ([]*models.Holding, *ParseStats, error) {
	if cfg == nil {
		cfg = DefaultSnapshotConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, errors.ConfigurationError(errors.CodeInvalidConfig, "snapshot_parser", cfg, err)
	}

	log := logger.GetGlobalLogger().WithComponent("parsers")

	reader := csv.NewReader(r)
	reader.Comma = cfg.Delimiter
	reader.TrimLeadingSpace = true
	// Column counts vary across extracted filings; tolerate ragged rows.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ParseStats{Source: source, Format: "csv"}, nil
	}
	if err != nil {
		return nil, nil, errors.ParseError(errors.CodeInvalidFormat, source, err)
	}

	columns := make(map[int]string, len(header))
	for i, cell := range header {
		if canonical, ok := cfg.canonicalColumn(cell); ok {
			columns[i] = canonical
		}
	}

	if !hasColumn(columns, ColumnCompanyName) {
		return nil, nil, errors.ParseError(errors.CodeMissingColumn, source, nil).
			WithContext("header", strings.Join(header, ","))
	}

	stats := &ParseStats{Source: source, Format: "csv"}
	var holdings []*models.Holding

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.ParseError(errors.CodeInvalidFormat, source, err)
		}

		if isBlankRow(row) {
			stats.RecordsSkipped++
			continue
		}

		holdings = append(holdings, holdingFromRow(row, columns))
		stats.RecordsParsed++
	}

	log.WithFields(logger.Fields{
		"source":  source,
		"parsed":  stats.RecordsParsed,
		"skipped": stats.RecordsSkipped,
	}).Debug("parsed CSV snapshot")

	return holdings, stats, nil
}

// holdingFromRow normalizes one CSV row into a Holding using the resolved
// column mapping.
func holdingFromRow(row []string, columns map[int]string) *models.Holding {
	h := &models.Holding{}

	for i, cell := range row {
		column, ok := columns[i]
		if !ok {
			continue
		}

		switch column {
		case ColumnCompanyName:
			h.CompanyName = strings.TrimSpace(cell)
		case ColumnInvestmentType:
			h.InvestmentType = strings.TrimSpace(cell)
		case ColumnIndustry:
			h.Industry = strings.TrimSpace(cell)
		case ColumnFairValue:
			h.FairValue = models.CoerceAmount(cell)
		case ColumnCost:
			h.Cost = models.CoerceAmount(cell)
		case ColumnAmortizedCost:
			h.AmortizedCost = models.CoerceAmount(cell)
		case ColumnPrincipal:
			h.PrincipalAmount = models.CoerceAmount(cell)
		case ColumnSpread:
			h.Spread = models.CoerceRate(cell)
		case ColumnFloorRate:
			h.FloorRate = models.CoerceRate(cell)
		case ColumnPIK:
			h.PIK = models.CoerceBool(cell)
		case ColumnPIKRate:
			h.PIKRate = models.CoerceRate(cell)
		case ColumnMaturityDate:
			h.MaturityDate = models.CoerceDate(cell)
		}
	}

	return h
}

func hasColumn(columns map[int]string, name string) bool {
	for _, column := range columns {
		if column == name {
			return true
		}
	}
	return false
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
