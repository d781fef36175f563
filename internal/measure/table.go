package measure

import (
	"strings"

	"github.com/seatsafety/report-analyzer/internal/numparse"
	"github.com/seatsafety/report-analyzer/internal/report"
)

// Header keyword groups, matched against folded cell text.
var (
	nameHeaderKeywords  = []string{"messgrosse", "measurement", "parameter", "kriterium", "olcum"}
	unitHeaderKeywords  = []string{"einheit", "unit", "birim"}
	valueHeaderKeywords = []string{"test", "messwert", "wert", "value", "deger", "sonuc"}
	limitHeaderKeywords = []string{"grenzwert", "limit", "soll", "sinir"}
)

// columnLayout is the role assignment derived from a header row.
type columnLayout struct {
	nameCol   int
	unitCol   int // -1 when absent
	valueCols []int
	limitCols map[int]bool
}

func matchesAny(cell string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(cell, kw) {
			return true
		}
	}
	return false
}

// classifyHeader scores a candidate header row by the distinct column roles
// it names, not by how many cells match. A row qualifies when it covers two
// roles, or one role in a row of at least three columns, so a short row of
// repeated value keywords ("Test A", "Test B") is not mistaken for a header.
func classifyHeader(cells []string) (columnLayout, bool) {
	layout := columnLayout{nameCol: 0, unitCol: -1, limitCols: make(map[int]bool)}
	roles := make(map[string]bool, 4)
	nameSeen := false
	for i, raw := range cells {
		cell := NormalizeIdentifier(raw)
		if cell == "" {
			continue
		}
		switch {
		case matchesAny(cell, limitHeaderKeywords):
			layout.limitCols[i] = true
			roles["limit"] = true
		case matchesAny(cell, nameHeaderKeywords):
			if !nameSeen {
				layout.nameCol = i
				nameSeen = true
			}
			roles["name"] = true
		case matchesAny(cell, unitHeaderKeywords):
			if layout.unitCol < 0 {
				layout.unitCol = i
			}
			roles["unit"] = true
		case matchesAny(cell, valueHeaderKeywords):
			layout.valueCols = append(layout.valueCols, i)
			roles["value"] = true
		}
	}
	if len(roles) < 2 && !(len(roles) >= 1 && len(cells) >= 3) {
		return layout, false
	}
	if len(layout.valueCols) == 0 {
		for i := range cells {
			if i == layout.nameCol || i == layout.unitCol || layout.limitCols[i] {
				continue
			}
			layout.valueCols = append(layout.valueCols, i)
		}
	}
	return layout, true
}

// splitRowLabel separates a trailing bracketed unit from a row label, so
// "a Kopf über 3 ms [g]" yields the label and "g".
func splitRowLabel(label string) (string, string) {
	label = strings.TrimSpace(label)
	if m := bracketUnit.FindStringSubmatchIndex(label); m != nil {
		unit := strings.TrimSpace(label[m[2]:m[3]])
		return strings.TrimSpace(label[:m[0]]), unit
	}
	return label, ""
}

// tableRows walks one table matrix and emits the measurements below its
// header row. Tables without a recognizable header are skipped.
func tableRows(tbl report.Table, collect func(name, unit string, value float64, raw string)) bool {
	headerIdx := -1
	var layout columnLayout
	for i, row := range tbl.Rows {
		if l, ok := classifyHeader(row); ok {
			headerIdx, layout = i, l
			break
		}
	}
	if headerIdx < 0 {
		return false
	}

	for _, row := range tbl.Rows[headerIdx+1:] {
		if layout.nameCol >= len(row) {
			continue
		}
		label, bracketed := splitRowLabel(row[layout.nameCol])
		if label == "" {
			continue
		}
		unit := ""
		if layout.unitCol >= 0 && layout.unitCol < len(row) {
			unit = strings.TrimSpace(row[layout.unitCol])
		}
		if unit == "" {
			unit = bracketed
		}
		name := label
		if canonical, ok := canonicalNames[NormalizeIdentifier(label)]; ok {
			name, unit = canonical.Name, canonical.Unit
		}
		for _, col := range layout.valueCols {
			if col >= len(row) || layout.limitCols[col] {
				continue
			}
			for _, token := range numberToken.FindAllString(row[col], -1) {
				if v, ok := numparse.Decimal(token); ok {
					collect(name, unit, v, token)
				}
			}
		}
	}
	return true
}
