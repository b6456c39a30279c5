// internal/services/export_service.go
package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/textlens/TextLensHub/internal/models"
)

// MissingValue is the literal rendered for any absent numeric field.
const MissingValue = "N/A"

// FileSink is the single capability with an environment side effect in
// the export pipeline: accept these bytes, this filename, this MIME
// type, and hand them to the user. Serialization stays pure so it is
// testable without a browser or filesystem.
type FileSink interface {
	Emit(filename, mimeType string, payload []byte) error
}

// DiskSink writes export payloads into a directory. The console app
// uses it; the HTTP API uses a download-response sink instead.
type DiskSink struct {
	Dir string
}

// Emit writes the payload under the sink directory.
func (d DiskSink) Emit(filename, _ string, payload []byte) error {
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	return os.WriteFile(filepath.Join(d.Dir, filename), payload, 0644)
}

// ExportService converts normalized analysis results into tabular
// exports. Columns, labels, filenames and sheet names are fixed per
// kind; numbers render with two decimals. Export is never throttled.
type ExportService struct{}

// NewExportService creates the exporter.
func NewExportService() *ExportService {
	return &ExportService{}
}

// ToRows flattens a normalized result into export rows for its kind.
func (s *ExportService) ToRows(result *models.AnalysisResult) ([]models.ExportRow, error) {
	switch result.Kind {
	case models.KindSentiment:
		if result.Sentiment == nil {
			return []models.ExportRow{}, nil
		}
		return lo.Map(result.Sentiment.Sentences, func(sent models.SentenceSentiment, _ int) models.ExportRow {
			return models.ExportRow{
				sent.Text,
				formatNumber(sent.Score),
				formatNumber(sent.Magnitude),
				sent.Category,
			}
		}), nil

	case models.KindEntity:
		return lo.Map(result.Entities, func(e models.Entity, _ int) models.ExportRow {
			return models.ExportRow{e.Name, e.Type, formatOptional(e.Salience)}
		}), nil

	case models.KindEntitySentiment:
		return lo.Map(result.EntitySentiments, func(e models.EntitySentiment, _ int) models.ExportRow {
			score, magnitude := MissingValue, MissingValue
			if e.Sentiment != nil {
				score = formatNumber(e.Sentiment.Score)
				magnitude = formatNumber(e.Sentiment.Magnitude)
			}
			return models.ExportRow{e.Name, e.Type, score, magnitude, formatOptional(e.Salience)}
		}), nil

	case models.KindEntitySentimentBySentence:
		return lo.Map(result.Sentences, func(sent models.SentenceSalience, _ int) models.ExportRow {
			return models.ExportRow{
				sent.Text,
				formatOptional(sent.Sentiment),
				formatOptional(sent.Magnitude),
				formatOptional(sent.AggregatedSalience),
			}
		}), nil

	case models.KindSyntax:
		return lo.Map(result.Tokens, func(t models.SyntaxToken, _ int) models.ExportRow {
			dependency := t.Dependency
			if dependency == "" {
				dependency = MissingValue
			}
			return models.ExportRow{t.Text, t.PartOfSpeech, dependency}
		}), nil

	default:
		return nil, fmt.Errorf("unknown analysis kind: %s", result.Kind)
	}
}

// SerializeCSV renders header and rows as CSV bytes. Pure: identical
// input yields byte-identical output.
func (s *ExportService) SerializeCSV(layout models.ExportLayout, rows []models.ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(layout.Columns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SerializeXLSX renders header and rows as a single-sheet workbook.
func (s *ExportService) SerializeXLSX(layout models.ExportLayout, rows []models.ExportRow) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", layout.Sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	writeRow := func(rowIndex int, cells []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIndex)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(cells))
		for i, c := range cells {
			values[i] = c
		}
		return file.SetSheetRow(layout.Sheet, cell, &values)
	}

	if err := writeRow(1, layout.Columns); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	for i, row := range rows {
		if err := writeRow(i+2, row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Export runs the full pipeline for one result: rows, serialization,
// then exactly one Emit on the sink.
func (s *ExportService) Export(result *models.AnalysisResult, format models.ExportFormat, sink FileSink) error {
	layout, ok := models.LayoutFor(result.Kind)
	if !ok {
		return fmt.Errorf("no export layout for kind: %s", result.Kind)
	}

	rows, err := s.ToRows(result)
	if err != nil {
		return err
	}

	var payload []byte
	var mimeType string
	switch format {
	case models.FormatCSV:
		payload, err = s.SerializeCSV(layout, rows)
		mimeType = models.MIMECSV
	case models.FormatXLSX:
		payload, err = s.SerializeXLSX(layout, rows)
		mimeType = models.MIMEXLSX
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
	if err != nil {
		return err
	}

	return sink.Emit(layout.Filename(format), mimeType, payload)
}

// formatNumber renders a present numeric value with fixed two decimals.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatOptional renders an optional numeric value, using the missing
// literal instead of a misleading zero when the field was absent.
func formatOptional(v *float64) string {
	if v == nil {
		return MissingValue
	}
	return formatNumber(*v)
}
