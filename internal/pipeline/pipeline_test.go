package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/seatsafety/report-analyzer/constants"
	"github.com/seatsafety/report-analyzer/internal/llm"
	"github.com/seatsafety/report-analyzer/internal/report"
)

const kieltPage1 = `Prüfbericht Nr. KIELT19_19
Versuchs- und Messbedingungen
Schlittengeschwindigkeit: 49,1 km/h
`

const kieltPage2 = `Prüfling:
  Typ: D44
  Hersteller: Kiel Sitze GmbH

Prüfergebnis:
  Prüfer: M. Muster
`

const kieltPage3 = `Prüfergebnisse
Belastungswerte:
a Kopf über 3 ms [g] 58,15
ThAC [g] 25,40
`

func kieltDocument() report.RawDocument {
	return report.RawDocument{
		PageTexts: []string{kieltPage1, kieltPage2, kieltPage3},
		Tables: []report.Table{
			{
				Page:       3,
				TableIndex: 0,
				Rows: [][]string{
					{"Messgröße", "Einheit", "Test 1", "Test 2", "Grenzwert"},
					{"HAC, [150 ms]", "", "58,15", "64,72", "500"},
				},
			},
		},
	}
}

func TestAnalyzeKieltDocument(t *testing.T) {
	a := Analyze("KIELT19_19.pdf", kieltDocument(), nil)

	if a.ReportID != "kielt19_19" {
		t.Fatalf("report id = %q", a.ReportID)
	}
	if a.Format != constants.FormatKielt {
		t.Fatalf("format = %q", a.Format)
	}
	if a.Language != "de" {
		t.Fatalf("language = %q", a.Language)
	}

	if a.KieltMetadata == nil {
		t.Fatal("expected page-2 metadata for kielt format")
	}
	if a.KieltMetadata.TestObject.TypeName != "D44" {
		t.Fatalf("type name = %q", a.KieltMetadata.TestObject.TypeName)
	}

	if got := a.Sections[constants.SectionTestConditions]; !strings.Contains(got, "Schlittengeschwindigkeit") {
		t.Fatalf("test_conditions = %q", got)
	}

	if len(a.Parameters) == 0 {
		t.Fatal("expected measurement parameters")
	}

	if v, ok := a.Measured.Left.Value(constants.MetricHAC); !ok || v != 58.15 {
		t.Fatalf("left HAC = %v ok=%v", v, ok)
	}
	if v, ok := a.Measured.Right.Value(constants.MetricHAC); !ok || v != 64.72 {
		t.Fatalf("right HAC = %v ok=%v", v, ok)
	}

	if a.Classification.Left.Overall != constants.StatusPass {
		t.Fatalf("left overall = %q", a.Classification.Left.Overall)
	}
}

func TestAnalyzeNonKieltSkipsPageMetadata(t *testing.T) {
	doc := report.RawDocument{PageTexts: []string{"Some unrelated acceptance report.", "Page two."}}
	a := Analyze("report.pdf", doc, nil)

	if a.Format != constants.FormatGeneric {
		t.Fatalf("format = %q", a.Format)
	}
	if a.KieltMetadata != nil {
		t.Fatal("generic documents must not carry page-2 metadata")
	}
}

type stubNarrator struct {
	payload llm.NarrativePayload
	err     error
	called  bool
}

func (s *stubNarrator) GenerateNarrative(_ context.Context, _ llm.NarrativeRequest) (llm.NarrativePayload, []byte, error) {
	s.called = true
	return s.payload, nil, s.err
}

func TestProcessAttachesNarrative(t *testing.T) {
	stub := &stubNarrator{payload: llm.NarrativePayload{
		Summary: "Der Test wurde bestanden.",
		Results: "Alle Werte unter dem Grenzwert.",
	}}
	p := NewProcessor(nil, stub)

	bundle, err := p.Process(context.Background(), "KIELT19_19.pdf", kieltDocument())
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !stub.called {
		t.Fatal("narrator was not invoked")
	}
	if bundle.Narrative.Summary != "Der Test wurde bestanden." {
		t.Fatalf("summary = %q", bundle.Narrative.Summary)
	}
	if bundle.ReportID != "kielt19_19" {
		t.Fatalf("report id = %q", bundle.ReportID)
	}
	if len(bundle.Subsections) == 0 {
		t.Fatal("expected subsections in bundle")
	}
}

func TestProcessDegradesOnNarratorError(t *testing.T) {
	stub := &stubNarrator{err: errors.New("model unavailable")}
	p := NewProcessor(nil, stub)

	bundle, err := p.Process(context.Background(), "KIELT19_19.pdf", kieltDocument())
	if err != nil {
		t.Fatalf("process should degrade, got %v", err)
	}
	if bundle.Narrative.Summary == "" {
		t.Fatal("placeholder narrative missing after degrade")
	}
}

func TestProcessWithoutNarrator(t *testing.T) {
	p := NewProcessor(nil, nil)
	bundle, err := p.Process(context.Background(), "KIELT19_19.pdf", kieltDocument())
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if bundle.Narrative.Results == "" {
		t.Fatal("results narrative should fall back to section text or placeholder")
	}
}
