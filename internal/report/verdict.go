package report

import "github.com/seatsafety/report-analyzer/constants"

// MetricVerdict is the outcome of comparing one observed metric against its
// fixed safety limit. Value is nil when nothing was observed; in that case
// Status is UNKNOWN and the verdict does not count toward the summary.
type MetricVerdict struct {
	Metric constants.Metric        `json:"metric"`
	Value  *float64                `json:"value"`
	Limit  float64                 `json:"limit"`
	Status constants.VerdictStatus `json:"status"`
}

// SubjectVerdict aggregates all metric verdicts of one dummy.
type SubjectVerdict struct {
	Subject constants.Subject       `json:"subject"`
	Metrics []MetricVerdict         `json:"metrics"`
	Overall constants.VerdictStatus `json:"overall_result"`
}

// ReportSummary rolls both subjects up into report-level counts. SuccessRate
// is pre-rendered with one decimal place ("87.5%"), "0.0%" when nothing was
// observed.
type ReportSummary struct {
	TotalTests  int    `json:"total_tests"`
	Passed      int    `json:"passed"`
	Failed      int    `json:"failed"`
	SuccessRate string `json:"success_rate"`
}

// Classification bundles the full pass/fail evaluation of one document.
type Classification struct {
	Left    SubjectVerdict               `json:"left_dummy"`
	Right   SubjectVerdict               `json:"right_dummy"`
	Limits  map[constants.Metric]float64 `json:"limits"`
	Summary ReportSummary                `json:"overall_summary"`
}

// Subjects returns both subject verdicts in left, right order.
func (c Classification) Subjects() []SubjectVerdict {
	return []SubjectVerdict{c.Left, c.Right}
}
