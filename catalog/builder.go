package catalog

import (
	"regexp"
)

// Section cell positions on a section row.
const (
	cellSectionType = 3
	cellDays        = 5
	cellTimes       = 6
	cellBuilding    = 7
	cellRoom        = 8
	cellProfessor   = 9
	cellSeats       = 10
	cellSpaces      = 11
)

var waitlistPattern = regexp.MustCompile(`Waitlist\((\d+)\)`)

// Builder turns classified rows into a Catalog. The current department and
// course carry over from row to row until the next header replaces them.
type Builder struct {
	catalog    *Catalog
	department string
	course     string
}

func NewBuilder() *Builder {
	return &Builder{catalog: New()}
}

// Catalog is the tree built so far. It stays valid between rows.
func (b *Builder) Catalog() *Catalog {
	return b.catalog
}

// Context returns the department code and course name rows currently
// attach to. Empty strings mean none has been seen yet.
func (b *Builder) Context() (department, course string) {
	return b.department, b.course
}

// Apply classifies row and folds it into the catalog.
func (b *Builder) Apply(row Row) (RowKind, error) {
	classification := Classify(row)
	switch classification.Kind {
	case DepartmentHeader:
		b.AddDepartment(classification.Value)
	case CourseHeader:
		if err := b.AddCourse(classification.Value); err != nil {
			return classification.Kind, err
		}
	case SectionRow:
		if err := b.AddSection(ParseSection(row)); err != nil {
			return classification.Kind, err
		}
	}
	return classification.Kind, nil
}

func (b *Builder) AddDepartment(code string) {
	b.department = code
	b.catalog.AddDepartment(code)
}

func (b *Builder) AddCourse(name string) error {
	department, ok := b.catalog.Department(b.department)
	if !ok {
		return &ContextError{Kind: CourseHeader, Department: b.department, Course: name}
	}
	b.course = name
	department.AddCourse(name)
	return nil
}

func (b *Builder) AddSection(section Section) error {
	department, ok := b.catalog.Department(b.department)
	if !ok {
		return &ContextError{Kind: SectionRow, Department: b.department, Course: b.course}
	}
	course, ok := department.Course(b.course)
	if !ok {
		return &ContextError{Kind: SectionRow, Department: b.department, Course: b.course}
	}
	course.Sections = append(course.Sections, &section)
	return nil
}

// ParseSection reads the section fields from a section row.
func ParseSection(row Row) Section {
	return Section{
		SectionType:    row.CellText(cellSectionType),
		Days:           row.CellText(cellDays),
		Times:          row.CellText(cellTimes),
		BuildingName:   row.CellText(cellBuilding),
		RoomNumber:     row.CellText(cellRoom),
		Professor:      row.CellText(cellProfessor),
		SeatsRemaining: SeatsRemaining(row.CellText(cellSeats)),
		Spaces:         row.CellText(cellSpaces),
	}
}

// SeatsRemaining stores a waitlist of N as "-N" and anything else verbatim.
func SeatsRemaining(text string) string {
	if match := waitlistPattern.FindStringSubmatch(text); match != nil {
		return "-" + match[1]
	}
	return text
}
