package report

// Kielt page-2 metadata. JSON keys keep the German labels of the source
// documents so persisted bundles line up with what a reviewer sees in the
// report itself.

// MountingConfig is one indented "key: value" block describing how the seat
// was mounted for the test.
type MountingConfig map[string]string

// TestObject is the Prüfling sub-record: the seat under test plus its two
// mounting configurations.
type TestObject struct {
	Designation  string         `json:"bezeichnung"`
	Manufacturer string         `json:"hersteller"`
	TypeName     string         `json:"typ"`
	SerialNumber string         `json:"seriennummer"`
	BuildYear    string         `json:"baujahr"`
	Weight       string         `json:"gewicht"`
	RearMounted  MountingConfig `json:"hinten_montiert"`
	FrontMounted MountingConfig `json:"vorne_montiert"`
}

// DummyChecklist is the Dummyprüfung sub-block of the test result.
type DummyChecklist struct {
	DummyChecks string `json:"dummy_checks"`
	Restraint   string `json:"rueckhaltung"`
	Edges       string `json:"kanten"`
	Remark      string `json:"bemerkung"`
}

// TestResult is the Prüfergebnis sub-record with its checklist and named
// pass/fail criteria (e.g. the "scharfe Kanten" sharp-edge criterion).
type TestResult struct {
	Result     string            `json:"ergebnis"`
	Release    string            `json:"freigabe"`
	Examiner   string            `json:"pruefer"`
	Date       string            `json:"datum"`
	DummyCheck DummyChecklist    `json:"dummypruefung"`
	Criteria   map[string]string `json:"criteria"`
}

// AngleReading maps a fixed seat position name to the measured backrest
// angle in degrees. A nil value marks a token that did not normalize.
type AngleReading map[string]*float64

// AngleTable is the Vorher/Nachher backrest angle comparison, keyed by row.
// A nil row means the row label was not found on the page.
type AngleTable struct {
	Before AngleReading `json:"vorher,omitempty"`
	After  AngleReading `json:"nachher,omitempty"`
}

// KieltPageMetadata is everything parsed from page 2 of a Kielt-format
// report. String fields are "" when their label never matched.
type KieltPageMetadata struct {
	Client            string     `json:"auftraggeber"`
	Attendees         string     `json:"anwesende"`
	TestConditions    string     `json:"versuchsbedingungen"`
	AdjustmentControl string     `json:"justierung_kontrolle"`
	SledDeceleration  string     `json:"schlittenverzoegerung"`
	Examiner          string     `json:"examiner"`
	TestVehicle       string     `json:"testfahrzeug"`
	TestObject        TestObject `json:"pruefling"`
	TestResult        TestResult `json:"pruefergebnis"`
	AngleTable        AngleTable `json:"lehnen_winkel_table"`
	RawPageText       string     `json:"raw_page_text"`
}
