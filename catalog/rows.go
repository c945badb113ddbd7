package catalog

import (
	"regexp"
	"strings"
)

// Row is one row of the schedule-of-classes table as exposed by whatever
// fetched it.
type Row interface {
	// Class is the row's class attribute.
	Class() string
	// CellCount is the number of data cells in the row.
	CellCount() int
	// CellText is the trimmed text of data cell i, or "" when out of range.
	CellText(i int) string
	// SpanningText is the text of the full-width cell that carries the
	// department heading, if the row has one.
	SpanningText() (string, bool)
	// HeaderTexts are the texts of the course-header cells.
	HeaderTexts() []string
}

type RowKind int

const (
	Unclassified RowKind = iota
	DepartmentHeader
	CourseHeader
	SectionRow
)

func (k RowKind) String() string {
	switch k {
	case DepartmentHeader:
		return "department header"
	case CourseHeader:
		return "course header"
	case SectionRow:
		return "section row"
	default:
		return "unclassified"
	}
}

const (
	sectionRowClass = "sectxt"
	sectionCells    = 12
)

var departmentCodePattern = regexp.MustCompile(`\(([A-Z ]{4,5})\)`)

// Classification is what Classify learned about a row. Value holds the
// department code for department headers and the course name for course
// headers.
type Classification struct {
	Kind  RowKind
	Value string
}

// Classify checks for a department header, a course header and a section
// row, in that order, and reports the first that fits.
func Classify(row Row) Classification {
	if text, ok := row.SpanningText(); ok {
		if code := DepartmentCode(text); code != "" {
			return Classification{Kind: DepartmentHeader, Value: code}
		}
	}

	if headers := row.HeaderTexts(); len(headers) > 1 {
		return Classification{Kind: CourseHeader, Value: headers[1]}
	}

	// Short section rows are dropped rather than treated as malformed.
	if strings.Contains(row.Class(), sectionRowClass) && row.CellCount() >= sectionCells {
		return Classification{Kind: SectionRow}
	}

	return Classification{Kind: Unclassified}
}

// DepartmentCode returns the first parenthesized department code in text.
// Codes are padded with spaces on the listing ("(CSE )"), so the match is
// trimmed; all-blank matches are skipped.
func DepartmentCode(text string) string {
	for _, match := range departmentCodePattern.FindAllStringSubmatch(text, -1) {
		if code := strings.TrimSpace(match[1]); code != "" {
			return code
		}
	}
	return ""
}
