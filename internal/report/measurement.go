package report

import "github.com/seatsafety/report-analyzer/constants"

// MeasurementParameter is one named, unit-tagged group of numeric values
// extracted from text patterns or tables. Identity is (Name, Unit); Values
// are de-duplicated by numeric equality while RawValues keeps the first
// string form that produced each value, for audit and display.
type MeasurementParameter struct {
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Values    []float64 `json:"values"`
	RawValues []string  `json:"raw_values"`
}

// DummyMeasurementSet maps each injury metric to the value observed for one
// test dummy. A nil entry means the metric was not observed (UNKNOWN), which
// is distinct from an observed zero.
type DummyMeasurementSet map[constants.Metric]*float64

// Value returns the observed value for the metric, if any.
func (s DummyMeasurementSet) Value(m constants.Metric) (float64, bool) {
	v, ok := s[m]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// MeasuredValues pairs the two symmetric dummies.
type MeasuredValues struct {
	Left  DummyMeasurementSet `json:"left_dummy"`
	Right DummyMeasurementSet `json:"right_dummy"`
}

// DummyDetail is one line of the per-dummy measurement detail block: an
// observed value next to its fixed limit. Value is nil when the measurement
// was not observed.
type DummyDetail struct {
	Name  string   `json:"name"`
	Unit  string   `json:"unit"`
	Value *float64 `json:"value"`
	Limit float64  `json:"limit"`
}
