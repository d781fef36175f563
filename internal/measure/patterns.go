package measure

import "regexp"

// textSignature recognizes one measurement line in running text and binds
// it to its presentation name and unit.
type textSignature struct {
	Name    string
	Unit    string
	Pattern *regexp.Regexp
}

var textSignatures = []textSignature{
	{
		Name:    "Baş ivmesi (a Kopf über 3 ms)",
		Unit:    "g",
		Pattern: regexp.MustCompile(`(?i)a\s+Kopf\s+über\s+3\s*ms\s*\[g\]\s*([\d,\.]+)`),
	},
	{
		Name:    "Göğüs ivmesi (ThAC)",
		Unit:    "g",
		Pattern: regexp.MustCompile(`(?i)ThAC\s*\[g\]\s*([\d,\.]+)`),
	},
	{
		Name:    "Sağ femur kuvveti (FAC right)",
		Unit:    "kN",
		Pattern: regexp.MustCompile(`(?i)FAC\s+right\s+F\s*\[kN\]\s*([\d,\.]+)`),
	},
	{
		Name:    "Sol femur kuvveti (FAC left)",
		Unit:    "kN",
		Pattern: regexp.MustCompile(`(?i)FAC\s+left\s+F\s*\[kN\]\s*([\d,\.]+)`),
	},
	{
		Name:    "HAC (Head Acceleration Criterion)",
		Unit:    "",
		Pattern: regexp.MustCompile(`(?i)\bHAC,?\s*\[[^\]]*ms\]\s*([\d,\.]+)`),
	},
}

// canonicalNames maps a normalized row identifier to the presentation name
// and unit used for the matching text signature, so table rows and text
// lines merge under one key.
var canonicalNames = map[string]struct{ Name, Unit string }{
	"a kopf uber 3 ms": {"Baş ivmesi (a Kopf über 3 ms)", "g"},
	"thac":             {"Göğüs ivmesi (ThAC)", "g"},
	"fac right f":      {"Sağ femur kuvveti (FAC right)", "kN"},
	"fac left f":       {"Sol femur kuvveti (FAC left)", "kN"},
	"hac":              {"HAC (Head Acceleration Criterion)", ""},
}

// numberToken matches one numeric token inside a table cell.
var numberToken = regexp.MustCompile(`[-+]?[0-9][0-9.,]*`)

// bracketUnit captures a unit suffix like "[g]" or "(kN)" at the end of a
// row label.
var bracketUnit = regexp.MustCompile(`[\[\(]\s*([^\]\)]*?)\s*[\]\)]\s*$`)
