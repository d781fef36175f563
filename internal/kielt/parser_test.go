package kielt

import (
	"reflect"
	"testing"

	"github.com/seatsafety/report-analyzer/internal/report"
)

const samplePage2 = `Seite 2
Auftraggeber: Metrobus GmbH
Anwesende: Herr Mustermann, Frau Testerin
Versuchsbedingungen: UN-R80 Phase 2.2, Sitzrückhaltesystem
Justierung/Kontrolle: MINIdau 200 Hz, Prüfstand kalibriert am 12.03.2024
Schlittenverzögerung: 35 g / 120 ms
Examiner: IWW Kiel
Testfahrzeug: MAN Lion's Coach C (M3)

Prüfling:
Bezeichnung: Reisebussitz Doppelsitz
Hersteller: SeatWorks GmbH
Typ: LX-900
Serien-Nr.: SN-456
Baujahr: 2023
Gewicht: 85 kg
Hinten montiert:
    Gurt: 3-Punkt Serie
    Adapter: Standardaufnahme
Vorne montiert:
    Gurt: 3-Punkt Serie
    Adapter: Crash-Adapter B

Prüfergebnis:
Ergebnis: bestanden
Freigabe: Serienfertigung frei
Prüfer: Dipl.-Ing. Schmidt
Datum: 22.03.2024
Dummyprüfung:
    Dummy Checks: P10 + 50M Hybrid III geprüft
    Rückhaltung: keine Auffälligkeiten
    Kanten: alle Kanten gerundet
    Bemerkung: keine Beanstandung

Lehnen / Winkel:
Position          Hinten links   Hinten rechts   Vorne links   Vorne rechts
Vorher:           14,5°          13,8°           16,2°         16,1°
Nachher:          13,5°          13,2°           15,9°         15,5°`

func TestParsePageSimpleFields(t *testing.T) {
	meta := ParsePage(samplePage2, nil)

	tests := []struct {
		field string
		got   string
		want  string
	}{
		{"auftraggeber", meta.Client, "Metrobus GmbH"},
		{"anwesende", meta.Attendees, "Herr Mustermann, Frau Testerin"},
		{"versuchsbedingungen", meta.TestConditions, "UN-R80 Phase 2.2, Sitzrückhaltesystem"},
		{"justierung_kontrolle", meta.AdjustmentControl, "MINIdau 200 Hz, Prüfstand kalibriert am 12.03.2024"},
		{"schlittenverzoegerung", meta.SledDeceleration, "35 g / 120 ms"},
		{"examiner", meta.Examiner, "IWW Kiel"},
		{"testfahrzeug", meta.TestVehicle, "MAN Lion's Coach C (M3)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.field, tt.got, tt.want)
		}
	}
}

func TestParsePageTestObject(t *testing.T) {
	meta := ParsePage(samplePage2, nil)

	want := report.TestObject{
		Designation:  "Reisebussitz Doppelsitz",
		Manufacturer: "SeatWorks GmbH",
		TypeName:     "LX-900",
		SerialNumber: "SN-456",
		BuildYear:    "2023",
		Weight:       "85 kg",
		RearMounted:  report.MountingConfig{"gurt": "3-Punkt Serie", "adapter": "Standardaufnahme"},
		FrontMounted: report.MountingConfig{"gurt": "3-Punkt Serie", "adapter": "Crash-Adapter B"},
	}
	if !reflect.DeepEqual(meta.TestObject, want) {
		t.Errorf("TestObject = %+v, want %+v", meta.TestObject, want)
	}
}

func TestParsePageTestResult(t *testing.T) {
	meta := ParsePage(samplePage2, nil)
	res := meta.TestResult

	if res.Result != "bestanden" {
		t.Errorf("ergebnis = %q, want bestanden", res.Result)
	}
	if res.Release != "Serienfertigung frei" {
		t.Errorf("freigabe = %q", res.Release)
	}
	if res.Examiner != "Dipl.-Ing. Schmidt" {
		t.Errorf("pruefer = %q", res.Examiner)
	}
	if res.Date != "22.03.2024" {
		t.Errorf("datum = %q", res.Date)
	}

	wantChecks := report.DummyChecklist{
		DummyChecks: "P10 + 50M Hybrid III geprüft",
		Restraint:   "keine Auffälligkeiten",
		Edges:       "alle Kanten gerundet",
		Remark:      "keine Beanstandung",
	}
	if res.DummyCheck != wantChecks {
		t.Errorf("dummypruefung = %+v, want %+v", res.DummyCheck, wantChecks)
	}
}

func TestParsePageAngleTable(t *testing.T) {
	meta := ParsePage(samplePage2, nil)

	wantBefore := map[string]float64{
		"hinten_links": 14.5, "hinten_rechts": 13.8,
		"vorne_links": 16.2, "vorne_rechts": 16.1,
	}
	wantAfter := map[string]float64{
		"hinten_links": 13.5, "hinten_rechts": 13.2,
		"vorne_links": 15.9, "vorne_rechts": 15.5,
	}
	checkRow := func(row report.AngleReading, want map[string]float64, label string) {
		t.Helper()
		if len(row) != len(want) {
			t.Fatalf("%s has %d positions, want %d", label, len(row), len(want))
		}
		for position, value := range want {
			got := row[position]
			if got == nil || *got != value {
				t.Errorf("%s[%s] = %v, want %v", label, position, got, value)
			}
		}
	}
	checkRow(meta.AngleTable.Before, wantBefore, "vorher")
	checkRow(meta.AngleTable.After, wantAfter, "nachher")
}

func TestParsePageSharpEdgeCriterion(t *testing.T) {
	text := "Prüfergebnis:\nErgebnis: bestanden\nKriterium „scharfe Kanten“: erfüllt\n"
	meta := ParsePage(text, nil)

	if got := meta.TestResult.Criteria[CriterionSharpEdges]; got != "erfüllt" {
		t.Errorf("scharfe_kanten = %q, want erfüllt", got)
	}
}

func TestParsePageMissingBlocks(t *testing.T) {
	meta := ParsePage("Seite 2\nAuftraggeber: ACME\n", nil)

	if meta.Client != "ACME" {
		t.Errorf("auftraggeber = %q, want ACME", meta.Client)
	}
	if meta.TestObject.Designation != "" || len(meta.TestObject.RearMounted) != 0 {
		t.Errorf("empty page produced test object %+v", meta.TestObject)
	}
	if meta.AngleTable.Before != nil || meta.AngleTable.After != nil {
		t.Errorf("empty page produced angle table %+v", meta.AngleTable)
	}
}

func TestExtractSubfieldsContinuation(t *testing.T) {
	text := "Gurt: 3-Punkt\nSerie nachgerüstet\n\nAdapter: Standard"
	got := ExtractSubfields(text)

	if got["gurt"] != "3-Punkt Serie nachgerüstet" {
		t.Errorf("gurt = %q, want continuation appended", got["gurt"])
	}
	if got["adapter"] != "Standard" {
		t.Errorf("adapter = %q", got["adapter"])
	}
}

func TestNormalizeSubfieldKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Gurt", "gurt"},
		{"Rückhaltung", "rueckhaltung"},
		{"Maße (B/H)", "masse_b_h"},
		{"Prüf-Nr.", "pruef_nr"},
	}
	for _, tt := range tests {
		if got := normalizeSubfieldKey(tt.in); got != tt.want {
			t.Errorf("normalizeSubfieldKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
