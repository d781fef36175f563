// Command analyze runs the extraction pipeline once over a raw extraction
// JSON file (page texts plus tables) and prints the assembled bundle.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/seatsafety/report-analyzer/internal/llm"
	"github.com/seatsafety/report-analyzer/internal/llm/openai"
	"github.com/seatsafety/report-analyzer/internal/pipeline"
	"github.com/seatsafety/report-analyzer/internal/report"
)

func main() {
	var (
		input   = flag.String("in", "", "path to extraction JSON (page_texts + tables)")
		source  = flag.String("source", "", "source file name the report id is derived from (defaults to -in)")
		useLLM  = flag.Bool("llm", false, "generate the narrative with the configured model instead of rules")
		pretty  = flag.Bool("pretty", true, "indent the output JSON")
		timeout = flag.Duration("timeout", 2*time.Minute, "overall processing timeout")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if *input == "" {
		logger.Error("usage: analyze -in extraction.json [-source report.pdf]")
		os.Exit(2)
	}
	if *source == "" {
		*source = *input
	}

	raw, err := os.ReadFile(*input)
	if err != nil {
		logger.Error("read input", "path", *input, "error", err)
		os.Exit(1)
	}
	var doc report.RawDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		logger.Error("decode input", "path", *input, "error", err)
		os.Exit(1)
	}

	var narrator llm.Narrator = llm.NewRuleNarrator(logger)
	if *useLLM {
		narrator = openai.NewClient(openai.Config{}, logger)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	bundle, err := pipeline.NewProcessor(logger, narrator).Process(ctx, *source, doc)
	if err != nil {
		logger.Error("process", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(bundle); err != nil {
		logger.Error("encode bundle", "error", err)
		os.Exit(1)
	}
}
