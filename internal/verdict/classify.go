package verdict

import (
	"fmt"
	"log/slog"

	"github.com/seatsafety/report-analyzer/constants"
	"github.com/seatsafety/report-analyzer/internal/report"
)

// DefaultLimits are the fixed regulatory safety limits per metric: head
// acceleration in g over the criterion window, thorax acceleration in g,
// femur load in kN.
var DefaultLimits = map[constants.Metric]float64{
	constants.MetricHAC:  500.0,
	constants.MetricThAC: 30.0,
	constants.MetricFAC:  10.0,
}

// Classify compares both dummies' measured values against DefaultLimits.
// A value equal to the limit passes; only strictly greater fails. Metrics
// without an observed value stay UNKNOWN and are not counted in the
// summary.
func Classify(measured report.MeasuredValues, logger *slog.Logger) report.Classification {
	if logger == nil {
		logger = slog.Default()
	}

	c := report.Classification{
		Limits: DefaultLimits,
	}
	passed, failed := 0, 0
	c.Left = classifySubject(constants.SubjectLeft, measured.Left, &passed, &failed)
	c.Right = classifySubject(constants.SubjectRight, measured.Right, &passed, &failed)

	total := passed + failed
	c.Summary = report.ReportSummary{
		TotalTests:  total,
		Passed:      passed,
		Failed:      failed,
		SuccessRate: successRate(passed, total),
	}

	logger.Debug("verdict.classify.done",
		"total", total,
		"passed", passed,
		"failed", failed,
		"left", string(c.Left.Overall),
		"right", string(c.Right.Overall))
	return c
}

func classifySubject(subject constants.Subject, set report.DummyMeasurementSet, passed, failed *int) report.SubjectVerdict {
	sv := report.SubjectVerdict{
		Subject: subject,
		Metrics: make([]report.MetricVerdict, 0, len(constants.Metrics)),
	}

	anyPass, anyFail := false, false
	for _, metric := range constants.Metrics {
		mv := report.MetricVerdict{
			Metric: metric,
			Limit:  DefaultLimits[metric],
			Status: constants.StatusUnknown,
		}
		if value, ok := set.Value(metric); ok {
			v := value
			mv.Value = &v
			if value <= mv.Limit {
				mv.Status = constants.StatusPass
				anyPass = true
				*passed++
			} else {
				mv.Status = constants.StatusFail
				anyFail = true
				*failed++
			}
		}
		sv.Metrics = append(sv.Metrics, mv)
	}

	switch {
	case anyPass && !anyFail:
		sv.Overall = constants.StatusPass
	case anyPass && anyFail:
		sv.Overall = constants.StatusPartial
	case anyFail:
		sv.Overall = constants.StatusFail
	default:
		sv.Overall = constants.StatusUnknown
	}
	return sv
}

func successRate(passed, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(passed)/float64(total)*100.0)
}

// Evaluate groups raw measurement parameters and classifies the result in
// one step.
func Evaluate(params []report.MeasurementParameter, logger *slog.Logger) (report.MeasuredValues, report.Classification) {
	measured := GroupMeasurements(params)
	return measured, Classify(measured, logger)
}
