// internal/services/export_service_test.go
package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/textlens/TextLensHub/internal/models"
)

// captureSink records Emit calls without touching the filesystem.
type captureSink struct {
	calls    int
	filename string
	mimeType string
	payload  []byte
}

func (c *captureSink) Emit(filename, mimeType string, payload []byte) error {
	c.calls++
	c.filename = filename
	c.mimeType = mimeType
	c.payload = payload
	return nil
}

func floatPtr(v float64) *float64 { return &v }

func entityResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Kind: models.KindEntity,
		Entities: []models.Entity{
			{Name: "Paris", Type: "LOCATION", Salience: floatPtr(0.8234)},
		},
	}
}

func TestExport_EntityCSV(t *testing.T) {
	exporter := NewExportService()
	sink := &captureSink{}

	err := exporter.Export(entityResult(), models.FormatCSV, sink)
	require.NoError(t, err)

	require.Equal(t, 1, sink.calls)
	require.Equal(t, "entity_analysis.csv", sink.filename)
	require.Equal(t, models.MIMECSV, sink.mimeType)
	require.Equal(t, "Entity,Type,Salience\nParis,LOCATION,0.82\n", string(sink.payload))
}

func TestExport_MissingSalienceRendersNA(t *testing.T) {
	exporter := NewExportService()
	result := &models.AnalysisResult{
		Kind: models.KindEntity,
		Entities: []models.Entity{
			{Name: "Louvre", Type: "LOCATION"},
		},
	}

	rows, err := exporter.ToRows(result)
	require.NoError(t, err)
	require.Equal(t, []models.ExportRow{{"Louvre", "LOCATION", "N/A"}}, rows)
}

func TestExport_EntityXLSXRoundTrip(t *testing.T) {
	exporter := NewExportService()
	sink := &captureSink{}

	err := exporter.Export(entityResult(), models.FormatXLSX, sink)
	require.NoError(t, err)
	require.Equal(t, "entity_analysis.xlsx", sink.filename)
	require.Equal(t, models.MIMEXLSX, sink.mimeType)

	workbook, err := excelize.OpenReader(bytes.NewReader(sink.payload))
	require.NoError(t, err)
	defer workbook.Close()

	require.Equal(t, []string{"Entities Analysis"}, workbook.GetSheetList())

	rows, err := workbook.GetRows("Entities Analysis")
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Entity", "Type", "Salience"},
		{"Paris", "LOCATION", "0.82"},
	}, rows)
}

func TestExport_SentimentRows(t *testing.T) {
	exporter := NewExportService()
	result := &models.AnalysisResult{
		Kind: models.KindSentiment,
		Sentiment: &models.SentimentResult{
			Score:     0.5,
			Magnitude: 1.2,
			Sentences: []models.SentenceSentiment{
				{Text: "Great product.", Score: 0.8, Magnitude: 0.8, Category: models.CategoryPositive},
				{Text: "It exists.", Score: 0, Magnitude: 0.1, Category: models.CategoryNeutral},
			},
		},
	}

	rows, err := exporter.ToRows(result)
	require.NoError(t, err)
	require.Equal(t, []models.ExportRow{
		{"Great product.", "0.80", "0.80", "positive"},
		{"It exists.", "0.00", "0.10", "neutral"},
	}, rows)
}

func TestExport_EntitySentimentMissingSentiment(t *testing.T) {
	exporter := NewExportService()
	result := &models.AnalysisResult{
		Kind: models.KindEntitySentiment,
		EntitySentiments: []models.EntitySentiment{
			{Name: "Paris", Type: "LOCATION", Salience: floatPtr(0.6),
				Sentiment: &models.SentimentScore{Score: 0.437, Magnitude: 0.9}},
			{Name: "Berlin", Type: "LOCATION"},
		},
	}

	rows, err := exporter.ToRows(result)
	require.NoError(t, err)
	require.Equal(t, []models.ExportRow{
		{"Paris", "LOCATION", "0.44", "0.90", "0.60"},
		{"Berlin", "LOCATION", "N/A", "N/A", "N/A"},
	}, rows)
}

func TestExport_SyntaxEmptyDependency(t *testing.T) {
	exporter := NewExportService()
	result := &models.AnalysisResult{
		Kind: models.KindSyntax,
		Tokens: []models.SyntaxToken{
			{Text: "Paris", PartOfSpeech: "NOUN", Dependency: "NSUBJ"},
			{Text: ".", PartOfSpeech: "PUNCT"},
		},
	}

	rows, err := exporter.ToRows(result)
	require.NoError(t, err)
	require.Equal(t, []models.ExportRow{
		{"Paris", "NOUN", "NSUBJ"},
		{".", "PUNCT", "N/A"},
	}, rows)
}

func TestExport_FilenamesPerKind(t *testing.T) {
	tests := []struct {
		kind models.AnalysisKind
		csv  string
	}{
		{models.KindSentiment, "sentiment_analysis.csv"},
		{models.KindEntity, "entity_analysis.csv"},
		{models.KindEntitySentiment, "entity_sentiment_analysis.csv"},
		{models.KindEntitySentimentBySentence, "sentence_analysis.csv"},
		{models.KindSyntax, "syntactic_analysis.csv"},
	}
	for _, tt := range tests {
		layout, ok := models.LayoutFor(tt.kind)
		require.True(t, ok)
		require.Equal(t, tt.csv, layout.Filename(models.FormatCSV))
	}
}

func TestExport_SerializationIsDeterministic(t *testing.T) {
	exporter := NewExportService()
	layout, _ := models.LayoutFor(models.KindEntity)
	rows := []models.ExportRow{{"Paris", "LOCATION", "0.82"}}

	first, err := exporter.SerializeCSV(layout, rows)
	require.NoError(t, err)
	second, err := exporter.SerializeCSV(layout, rows)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestExport_EmptyResultStillHasHeader(t *testing.T) {
	exporter := NewExportService()
	sink := &captureSink{}

	err := exporter.Export(&models.AnalysisResult{
		Kind:     models.KindEntity,
		Entities: []models.Entity{},
	}, models.FormatCSV, sink)
	require.NoError(t, err)
	require.Equal(t, "Entity,Type,Salience\n", string(sink.payload))
}
