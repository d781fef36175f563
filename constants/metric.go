package constants

// Metric is one of the standardized injury criteria evaluated per dummy.
type Metric string

const (
	MetricHAC  Metric = "HAC"  // Head Acceleration Criterion
	MetricThAC Metric = "ThAC" // Thorax Acceleration Criterion, g
	MetricFAC  Metric = "FAC"  // Femur Acceleration Criterion, kN
)

// Metrics lists the classified criteria in evaluation order.
var Metrics = []Metric{MetricHAC, MetricThAC, MetricFAC}

// Subject identifies one of the two symmetric test dummies.
type Subject string

const (
	SubjectLeft  Subject = "left_dummy"
	SubjectRight Subject = "right_dummy"
)

// VerdictStatus is the outcome of comparing a measurement against its limit,
// or of aggregating such outcomes.
type VerdictStatus string

const (
	StatusPass    VerdictStatus = "PASS"
	StatusFail    VerdictStatus = "FAIL"
	StatusPartial VerdictStatus = "PARTIAL" // subject-level only: mixed pass/fail
	StatusUnknown VerdictStatus = "UNKNOWN" // no value observed, never a parse failure
)
