package assemble

import (
	"regexp"
	"strings"

	"github.com/seatsafety/report-analyzer/internal/report"
)

var metadataWhitespace = regexp.MustCompile(`\s+`)

func normalizeMetadataValue(value string) string {
	return metadataWhitespace.ReplaceAllString(strings.TrimSpace(value), " ")
}

// labelValue finds the first line containing "Label: value" for any of the
// labels and returns the cleaned value.
func labelValue(text string, labels ...string) string {
	for _, label := range labels {
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(label) + `\s*[:=\-]\s*(.+)`)
		if err != nil {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			if m := re.FindStringSubmatch(line); m != nil {
				return normalizeMetadataValue(m[1])
			}
		}
	}
	return ""
}

// stripAtLabel cuts a value short at the first occurrence of any stop
// label, used where two labeled fields share one extracted line.
func stripAtLabel(value string, stopLabels ...string) string {
	if value == "" {
		return value
	}
	for _, label := range stopLabels {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(label) + `\b\s*[:=\-]?`)
		if err != nil {
			continue
		}
		if m := re.FindStringIndex(value); m != nil {
			value = value[:m[0]]
			break
		}
	}
	return normalizeMetadataValue(value)
}

// DeriveMetadata computes the high-level report metadata from the page-2
// record and the raw page texts. Later pages carry the lab name (page 3)
// and the vehicle platform (page 4).
func DeriveMetadata(kieltMeta *report.KieltPageMetadata, pageTexts []string) report.Metadata {
	var meta report.Metadata

	if kieltMeta != nil {
		if kieltMeta.TestObject.Designation != "" {
			meta.SeatModel = normalizeMetadataValue(kieltMeta.TestObject.Designation)
		} else if kieltMeta.TestObject.TypeName != "" {
			meta.SeatModel = normalizeMetadataValue(kieltMeta.TestObject.TypeName)
		}
		meta.TestStandard = normalizeMetadataValue(kieltMeta.TestConditions)
	}
	if meta.TestStandard == "" && len(pageTexts) >= 2 {
		meta.TestStandard = labelValue(pageTexts[1], "Versuchsbedingungen", "Testbedingungen")
	}

	if len(pageTexts) >= 3 {
		lab := labelValue(pageTexts[2], "Bearbeiter")
		meta.LabName = stripAtLabel(lab, "Versuchsbed. nach")
	}

	if len(pageTexts) >= 4 {
		meta.VehiclePlatform = labelValue(pageTexts[3], "Test vehicle", "Testfahrzeug", "Versuchsfahrzeug")
	}
	if meta.VehiclePlatform == "" && kieltMeta != nil {
		meta.VehiclePlatform = normalizeMetadataValue(kieltMeta.TestVehicle)
	}

	return meta
}
