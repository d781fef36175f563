// Package verdict groups extracted measurement parameters onto the two
// test dummies and classifies them against the regulatory limits.
package verdict

import (
	"strings"

	"github.com/seatsafety/report-analyzer/constants"
	"github.com/seatsafety/report-analyzer/internal/measure"
	"github.com/seatsafety/report-analyzer/internal/report"
)

// grouped holds metric values in extraction order before they are assigned
// to a subject.
type grouped struct {
	hac      []float64
	thac     []float64
	facLeft  []float64
	facRight []float64
	fac      []float64
}

var (
	rightTokens = []string{"right", "rechts", "sag"}
	leftTokens  = []string{"left", "links", "sol"}
)

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}

// groupParameters sorts parameter values into metric buckets by the tokens
// of their normalized names. Thorax tokens are tested before the head
// criterion because "thac" contains "hac".
func groupParameters(params []report.MeasurementParameter) grouped {
	var g grouped
	for _, p := range params {
		identifier := measure.NormalizeIdentifier(p.Name)
		if identifier == "" {
			continue
		}
		switch {
		case strings.Contains(identifier, "thac") || strings.Contains(identifier, "thorax"):
			g.thac = append(g.thac, p.Values...)
		case strings.Contains(identifier, "hac"):
			g.hac = append(g.hac, p.Values...)
		case strings.Contains(identifier, "fac"):
			switch {
			case containsAny(identifier, rightTokens):
				g.facRight = append(g.facRight, p.Values...)
			case containsAny(identifier, leftTokens):
				g.facLeft = append(g.facLeft, p.Values...)
			default:
				g.fac = append(g.fac, p.Values...)
			}
		}
	}
	return g
}

// GroupMeasurements assigns grouped metric values to the left and right
// dummy. HAC and ThAC alternate left then right in value order; femur
// values use their side tokens, with sideless values filling positionally.
func GroupMeasurements(params []report.MeasurementParameter) report.MeasuredValues {
	g := groupParameters(params)
	measured := report.MeasuredValues{
		Left:  report.DummyMeasurementSet{},
		Right: report.DummyMeasurementSet{},
	}

	assignDual := func(metric constants.Metric, values []float64) {
		if len(values) == 0 {
			return
		}
		v := values[0]
		measured.Left[metric] = &v
		if len(values) >= 2 {
			w := values[1]
			measured.Right[metric] = &w
		}
	}
	assignDual(constants.MetricHAC, g.hac)
	assignDual(constants.MetricThAC, g.thac)

	if len(g.facLeft) > 0 {
		v := g.facLeft[0]
		measured.Left[constants.MetricFAC] = &v
	}
	if len(g.facRight) > 0 {
		v := g.facRight[0]
		measured.Right[constants.MetricFAC] = &v
	}
	if len(g.fac) > 0 {
		if measured.Left[constants.MetricFAC] == nil {
			v := g.fac[0]
			measured.Left[constants.MetricFAC] = &v
		}
		if len(g.fac) >= 2 && measured.Right[constants.MetricFAC] == nil {
			v := g.fac[1]
			measured.Right[constants.MetricFAC] = &v
		}
	}
	return measured
}
