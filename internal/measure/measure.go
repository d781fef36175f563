// Package measure pulls measurement parameters out of report text and out
// of extracted table matrices, then merges both under canonical parameter
// names.
package measure

import (
	"log/slog"

	"github.com/seatsafety/report-analyzer/internal/numparse"
	"github.com/seatsafety/report-analyzer/internal/report"
)

type paramKey struct {
	name string
	unit string
}

// collector accumulates named parameters in first-seen order, dropping
// values already recorded for the same parameter.
type collector struct {
	order  []paramKey
	params map[paramKey]*report.MeasurementParameter
	logger *slog.Logger
}

func newCollector(logger *slog.Logger) *collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &collector{params: make(map[paramKey]*report.MeasurementParameter), logger: logger}
}

func (c *collector) add(name, unit string, value float64, raw string) {
	key := paramKey{name: name, unit: unit}
	p, ok := c.params[key]
	if !ok {
		p = &report.MeasurementParameter{Name: name, Unit: unit}
		c.params[key] = p
		c.order = append(c.order, key)
	}
	for _, existing := range p.Values {
		if existing == value {
			return
		}
	}
	p.Values = append(p.Values, value)
	p.RawValues = append(p.RawValues, raw)
}

func (c *collector) result() []report.MeasurementParameter {
	out := make([]report.MeasurementParameter, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, *c.params[key])
	}
	return out
}

// Extract runs the text signatures over text and the table scanner over
// tables, merging everything into one ordered parameter list. Text matches
// come first so their presentation order is stable.
func Extract(text string, tables []report.Table, logger *slog.Logger) []report.MeasurementParameter {
	c := newCollector(logger)
	c.scanText(text)
	tablesUsed := 0
	for _, tbl := range tables {
		if tableRows(tbl, c.add) {
			tablesUsed++
		}
	}
	c.logger.Debug("measure.extract.done",
		"parameters", len(c.order),
		"tables_scanned", len(tables),
		"tables_used", tablesUsed)
	return c.result()
}

// FromText extracts parameters from running text only.
func FromText(text string, logger *slog.Logger) []report.MeasurementParameter {
	c := newCollector(logger)
	c.scanText(text)
	return c.result()
}

func (c *collector) scanText(text string) {
	for _, sig := range textSignatures {
		for _, m := range sig.Pattern.FindAllStringSubmatch(text, -1) {
			raw := m[1]
			v, ok := numparse.Decimal(raw)
			if !ok {
				c.logger.Warn("measure.value.unparsed", "parameter", sig.Name, "raw", raw)
				continue
			}
			c.add(sig.Name, sig.Unit, v, raw)
		}
	}
}
