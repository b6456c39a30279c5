// internal/models/export.go
package models

// ExportRow is one serialized table row. Cells are already rendered as
// strings (two-decimal numbers, or the literal "N/A" for missing values)
// and are ordered to match the column set of the kind being exported.
type ExportRow []string

// ExportFormat selects the serialization of an export request.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// ParseExportFormat maps a request parameter to an ExportFormat.
func ParseExportFormat(s string) (ExportFormat, bool) {
	switch ExportFormat(s) {
	case FormatCSV, FormatXLSX:
		return ExportFormat(s), true
	}
	return "", false
}

// MIME types for the two export formats.
const (
	MIMECSV  = "text/csv"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportLayout fixes the column labels, file basename and workbook sheet
// name for one analysis kind. Column order is part of the contract.
type ExportLayout struct {
	Columns  []string
	Basename string
	Sheet    string
}

var exportLayouts = map[AnalysisKind]ExportLayout{
	KindSentiment: {
		Columns:  []string{"Sentence", "Score", "Magnitude", "Category"},
		Basename: "sentiment_analysis",
		Sheet:    "Sentiment Analysis",
	},
	KindEntity: {
		Columns:  []string{"Entity", "Type", "Salience"},
		Basename: "entity_analysis",
		Sheet:    "Entities Analysis",
	},
	KindEntitySentiment: {
		Columns:  []string{"Name", "Type", "Sentiment Score", "Magnitude", "Salience"},
		Basename: "entity_sentiment_analysis",
		Sheet:    "Entity Sentiment Analysis",
	},
	KindEntitySentimentBySentence: {
		Columns:  []string{"Sentence", "Sentiment Score", "Magnitude", "Aggregated Salience"},
		Basename: "sentence_analysis",
		Sheet:    "Sentiment Analysis",
	},
	KindSyntax: {
		Columns:  []string{"Token", "PartOfSpeech", "Dependency"},
		Basename: "syntactic_analysis",
		Sheet:    "Syntax Analysis",
	},
}

// LayoutFor returns the fixed export layout of a kind.
func LayoutFor(kind AnalysisKind) (ExportLayout, bool) {
	layout, ok := exportLayouts[kind]
	return layout, ok
}

// Filename returns the fixed download name for a kind and format,
// e.g. "entity_analysis.csv".
func (l ExportLayout) Filename(format ExportFormat) string {
	return l.Basename + "." + string(format)
}
