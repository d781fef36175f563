package constants

// ReportFormat identifies the document dialect a report was authored in.
// Detection is a keyword-priority lookup; see internal/format.
type ReportFormat string

// Stable values (stored as-is in the report table).
const (
	FormatKielt   ReportFormat = "kielt_format" // Kielt/TÜV dialect, German headings
	FormatJUnit   ReportFormat = "junit_format" // JUnit-style machine reports
	FormatGeneric ReportFormat = "generic"      // anything else
)

// Languages supported by the section heading tables, in scoring order.
var Languages = []string{"tr", "en", "de"}

// DefaultLanguage is used when language identification finds no heading hits.
const DefaultLanguage = "tr"
