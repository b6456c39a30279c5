// cmd/demo/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"github.com/textlens/TextLensHub/internal/config"
	"github.com/textlens/TextLensHub/internal/models"
	"github.com/textlens/TextLensHub/internal/nlp"
	"github.com/textlens/TextLensHub/internal/services"
)

// Console companion to the dashboard: runs one analysis through the
// same pipeline and prints the result as a table, optionally exporting
// it to disk.
func main() {
	kindFlag := flag.String("kind", string(models.KindSentiment), "analysis kind (sentiment, entity, entity_sentiment, entity_sentiment_sentences, syntax)")
	textFlag := flag.String("text", "", "text to analyze")
	fileFlag := flag.String("file", "", "read text from a file instead of -text")
	exportFlag := flag.String("export", "", "also export the result (csv or xlsx)")
	outFlag := flag.String("out", "exports", "directory for exported files")
	flag.Parse()

	kind, ok := models.ParseKind(*kindFlag)
	if !ok {
		color.Red.Printf("unknown analysis kind: %s\n", *kindFlag)
		os.Exit(1)
	}

	text := *textFlag
	if *fileFlag != "" {
		data, err := os.ReadFile(*fileFlag)
		if err != nil {
			color.Red.Printf("failed to read %s: %v\n", *fileFlag, err)
			os.Exit(1)
		}
		text = string(data)
	}

	cfg, err := config.Load()
	if err != nil {
		color.Red.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	client := nlp.NewClient(cfg.AnalysisBaseURL, time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)
	analysis := services.NewAnalysisService(client, nlp.NewThrottle(), nil)
	exporter := services.NewExportService()

	color.Cyan.Printf("analyzing %d characters with %s...\n", len(text), kind)

	result, err := analysis.Analyze(context.Background(), kind, text)
	if err != nil {
		color.Yellow.Println(nlp.UserMessage(err))
		os.Exit(1)
	}

	printResult(exporter, result)

	if *exportFlag != "" {
		format, ok := models.ParseExportFormat(*exportFlag)
		if !ok {
			color.Red.Printf("unknown export format: %s\n", *exportFlag)
			os.Exit(1)
		}

		sink := services.DiskSink{Dir: *outFlag}
		if err := exporter.Export(result, format, sink); err != nil {
			color.Red.Printf("export failed: %v\n", err)
			os.Exit(1)
		}

		layout, _ := models.LayoutFor(kind)
		color.Green.Printf("exported %s\n", layout.Filename(format))
	}
}

func printResult(exporter *services.ExportService, result *models.AnalysisResult) {
	if result.Kind == models.KindSentiment && result.Sentiment != nil {
		color.Green.Printf("overall score %.2f, magnitude %.2f\n",
			result.Sentiment.Score, result.Sentiment.Magnitude)
	}

	layout, ok := models.LayoutFor(result.Kind)
	if !ok {
		return
	}

	rows, err := exporter.ToRows(result)
	if err != nil {
		color.Red.Printf("failed to build table: %v\n", err)
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(layout.Columns)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()

	fmt.Printf("%d rows\n", len(rows))
}
