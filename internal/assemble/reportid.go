package assemble

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/seatsafety/report-analyzer/internal/report"
)

var trailingYear = regexp.MustCompile(`(\d{2})$`)

// ExtractReportID derives the report identifier from a source filename,
// e.g. "kielt19_19.pdf" becomes "kielt19_19".
func ExtractReportID(filename string) string {
	if filename == "" {
		return ""
	}
	base := strings.ToLower(filename)
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, ".pdf")
	return base
}

// ParseReportID splits a report identifier of the form
// [company][type][YY]_[number], e.g. "kielt19_19": company "kiel",
// type "t" for test, year 2019, test number 19.
func ParseReportID(reportID string) report.IDBreakdown {
	if reportID == "" || len(reportID) < 7 {
		return report.IDBreakdown{Description: "Invalid report ID format"}
	}

	parts := strings.Split(reportID, "_")
	if len(parts) != 2 {
		return report.IDBreakdown{
			Company:     reportID,
			Description: "Non-standard report ID format",
		}
	}
	prefix, testNumber := parts[0], parts[1]

	breakdown := report.IDBreakdown{TestNumber: testNumber}
	if m := trailingYear.FindStringSubmatchIndex(prefix); m != nil {
		year := prefix[m[2]:m[3]]
		companyType := prefix[:m[0]]
		if len(companyType) > 1 {
			breakdown.Company = companyType[:len(companyType)-1]
		} else {
			breakdown.Company = companyType
		}
		if len(companyType) > 0 {
			breakdown.Type = string(companyType[len(companyType)-1])
			if breakdown.Type == "t" {
				breakdown.Type = "test"
			}
		}
		breakdown.Year = "20" + year
		breakdown.Description = fmt.Sprintf("Test #%s in year 20%s", testNumber, year)
	} else {
		breakdown.Company = prefix
		breakdown.Description = fmt.Sprintf("Test #%s", testNumber)
	}
	return breakdown
}
