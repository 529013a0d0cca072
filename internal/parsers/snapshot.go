package parsers

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spergel/new-finance-sub001/internal/models"
	"github.com/spergel/new-finance-sub001/pkg/errors"
	"github.com/spergel/new-finance-sub001/pkg/logger"
)

// ParseStats summarizes one snapshot load.
type ParseStats struct {
	Source         string `json:"source"`
	Format         string `json:"format"`
	RecordsParsed  int    `json:"records_parsed"`
	RecordsSkipped int    `json:"records_skipped"`
}

// LoadSnapshot reads a snapshot file, dispatching on extension: .json parses
// as a JSON array of holding objects, .csv as a delimited file; anything
// else is sniffed by content.
func LoadSnapshot(path string, cfg *SnapshotConfig) ([]*models.Holding, *ParseStats, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.FileError(errors.CodeFileNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, nil, errors.FileError(errors.CodeFilePermission, path, err)
		}
		return nil, nil, errors.FileError(errors.CodeFileNotFound, path, err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSONSnapshot(file, path)
	case ".csv":
		return ParseCSVSnapshot(file, path, cfg)
	default:
		return parseSniffed(file, path, cfg)
	}
}

// ParseJSONSnapshot parses a JSON snapshot: an array of loosely-typed
// holding objects. A payload whose top level is not an array is a contract
// violation and fails fast; malformed fields within objects degrade to
// zero values instead.
func ParseJSONSnapshot(r io.Reader, source string) ([]*models.Holding, *ParseStats, error) {
	log := logger.GetGlobalLogger().WithComponent("parsers")

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.FileError(errors.CodeFileNotFound, source, err)
	}

	if !looksLikeArray(data) {
		return nil, nil, errors.ParseError(errors.CodeNotListShaped, source, nil)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, errors.ParseError(errors.CodeInvalidFormat, source, err)
	}

	stats := &ParseStats{Source: source, Format: "json"}
	holdings := make([]*models.Holding, 0, len(raw))

	for _, element := range raw {
		var rh models.RawHolding
		if err := json.Unmarshal(element, &rh); err != nil {
			// Non-object elements (bare numbers, strings) carry no
			// holding data at all; skip them rather than fabricating
			// empty records.
			stats.RecordsSkipped++
			continue
		}
		holdings = append(holdings, rh.Normalize())
		stats.RecordsParsed++
	}

	log.WithFields(logger.Fields{
		"source":  source,
		"parsed":  stats.RecordsParsed,
		"skipped": stats.RecordsSkipped,
	}).Debug("parsed JSON snapshot")

	return holdings, stats, nil
}

// looksLikeArray reports whether the first significant byte opens a JSON
// array.
func looksLikeArray(data []byte) bool {
	for _, b := range data {
		if unicode.IsSpace(rune(b)) {
			continue
		}
		return b == '['
	}
	return false
}

// parseSniffed handles files without a recognized extension: JSON if the
// content opens an array or object, CSV otherwise.
func parseSniffed(r io.Reader, source string, cfg *SnapshotConfig) ([]*models.Holding, *ParseStats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.FileError(errors.CodeFileNotFound, source, err)
	}

	trimmed := bytes.TrimLeftFunc(data, unicode.IsSpace)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return ParseJSONSnapshot(bytes.NewReader(data), source)
	}
	return ParseCSVSnapshot(bytes.NewReader(data), source, cfg)
}
