package catalog

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type fakeRow struct {
	class    string
	cells    []string
	spanning *string
	headers  []string
}

func (r fakeRow) Class() string  { return r.class }
func (r fakeRow) CellCount() int { return len(r.cells) }
func (r fakeRow) CellText(i int) string {
	if i < 0 || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}
func (r fakeRow) SpanningText() (string, bool) {
	if r.spanning == nil {
		return "", false
	}
	return *r.spanning, true
}
func (r fakeRow) HeaderTexts() []string { return r.headers }

func departmentRow(text string) fakeRow {
	return fakeRow{spanning: &text}
}

func courseRow(name string) fakeRow {
	return fakeRow{class: "crsheader", headers: []string{"1", name, "Intro (4 Units)"}}
}

func sectionRow(sectionType, professor, seats string) fakeRow {
	return fakeRow{
		class: "sectxt",
		cells: []string{"", "123456", "", sectionType, "A00", "TuTh", "3:30p-4:50p", "CENTR", "115", professor, seats, "200"},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		row  fakeRow
		want Classification
	}{
		{"department", departmentRow("Computer Science & Engineering (CSE )"), Classification{Kind: DepartmentHeader, Value: "CSE"}},
		{"first department code wins", departmentRow("Mathematics (MATH) (CSE )"), Classification{Kind: DepartmentHeader, Value: "MATH"}},
		{"spanning cell without code", departmentRow("Note: (see dept)"), Classification{Kind: Unclassified}},
		{"course", courseRow("CSE 101"), Classification{Kind: CourseHeader, Value: "CSE 101"}},
		{"single header cell", fakeRow{headers: []string{"only"}}, Classification{Kind: Unclassified}},
		{"section", sectionRow("LE", "Smith, Jane", "10"), Classification{Kind: SectionRow}},
		{"short section", fakeRow{class: "sectxt", cells: make([]string, 11)}, Classification{Kind: Unclassified}},
		{"other row", fakeRow{class: "nonenrtxt", cells: make([]string, 13)}, Classification{Kind: Unclassified}},
	}
	for _, tt := range tests {
		if got := Classify(tt.row); got != tt.want {
			t.Fatalf("%s: expected %+v got %+v", tt.name, tt.want, got)
		}
	}
}

func TestSeatsRemaining(t *testing.T) {
	tests := map[string]string{
		"Waitlist(3)":       "-3",
		"FULL Waitlist(12)": "-12",
		"42":                "42",
		"":                  "",
		"Unlim":             "Unlim",
	}
	for in, want := range tests {
		if got := SeatsRemaining(in); got != want {
			t.Fatalf("SeatsRemaining(%q): expected %q got %q", in, want, got)
		}
	}
}

func TestBuilderIdempotentInsert(t *testing.T) {
	b := NewBuilder()
	b.AddDepartment("CSE")
	if err := b.AddCourse("CSE 101"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.AddSection(Section{SectionType: "LE"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b.AddDepartment("CSE")
	if err := b.AddCourse("CSE 101"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	departments := b.Catalog().Departments()
	if len(departments) != 1 {
		t.Fatalf("expected 1 department got %d", len(departments))
	}
	courses := departments[0].Courses()
	if len(courses) != 1 || len(courses[0].Sections) != 1 {
		t.Fatalf("expected existing course and section to survive re-insert, got %+v", courses)
	}
}

func TestBuilderMissingContext(t *testing.T) {
	b := NewBuilder()
	if _, err := b.Apply(sectionRow("LE", "Smith, Jane", "1")); !errors.Is(err, ErrMissingContext) {
		t.Fatalf("expected ErrMissingContext for orphan section, got %v", err)
	}
	if _, err := b.Apply(courseRow("CSE 101")); !errors.Is(err, ErrMissingContext) {
		t.Fatalf("expected ErrMissingContext for orphan course, got %v", err)
	}

	b.AddDepartment("CSE")
	if err := b.AddSection(Section{}); !errors.Is(err, ErrMissingContext) {
		t.Fatalf("expected ErrMissingContext for section without course, got %v", err)
	}

	if err := b.AddCourse("CSE 101"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.AddDepartment("MATH")
	err := b.AddSection(Section{})
	var contextErr *ContextError
	if !errors.As(err, &contextErr) || contextErr.Department != "MATH" || contextErr.Course != "CSE 101" {
		t.Fatalf("expected context error naming MATH / CSE 101, got %v", err)
	}
}

func TestBuilderEndToEnd(t *testing.T) {
	b := NewBuilder()
	rows := []Row{
		departmentRow("Computer Science & Engineering (CSE )"),
		courseRow("CSE 101"),
		sectionRow("LE", "Smith, Jane", "Waitlist(2)"),
		fakeRow{class: "sectxt", cells: []string{"too", "short"}},
		sectionRow("DI", "Smith, Jane", "12"),
	}
	for _, row := range rows {
		if _, err := b.Apply(row); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	data, err := json.Marshal(b.Catalog())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"CSE":{"CSE 101":[` +
		`{"sectionType":"LE","days":"TuTh","times":"3:30p-4:50p","buildingName":"CENTR","roomNumber":"115","professor":"Smith, Jane","seatsRemaining":"-2","spaces":"200"},` +
		`{"sectionType":"DI","days":"TuTh","times":"3:30p-4:50p","buildingName":"CENTR","roomNumber":"115","professor":"Smith, Jane","seatsRemaining":"12","spaces":"200"}` +
		`]}}`
	if string(data) != want {
		t.Fatalf("unexpected catalog JSON\nexpected %s\ngot      %s", want, data)
	}
	if department, course := b.Context(); department != "CSE" || course != "CSE 101" {
		t.Fatalf("unexpected context %q %q", department, course)
	}
}

func TestCatalogJSONKeepsOrderAndRatings(t *testing.T) {
	c := New()
	math := c.AddDepartment("MATH")
	math.AddCourse("MATH 20C").Sections = []*Section{{SectionType: "LE"}}
	math.AddCourse("MATH 18")
	cse := c.AddDepartment("CSE")
	course := cse.AddCourse("CSE 12")
	rated := &Section{SectionType: "LE", Professor: "Lee, Ann"}
	rated.SetRating(&Rating{Rating: 4.1, NumRatings: 3, Department: "Computer Science", ProfessorID: "abc"})
	unrated := &Section{SectionType: "DI"}
	unrated.SetRating(nil)
	course.Sections = []*Section{rated, unrated}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	text := string(data)
	if strings.Index(text, `"MATH"`) > strings.Index(text, `"CSE"`) {
		t.Fatalf("expected insertion order MATH before CSE: %s", text)
	}
	if strings.Index(text, `"MATH 20C"`) > strings.Index(text, `"MATH 18"`) {
		t.Fatalf("expected course insertion order: %s", text)
	}
	if !strings.Contains(text, `"MATH 18":[]`) {
		t.Fatalf("expected empty course as empty list: %s", text)
	}
	if !strings.Contains(text, `"professor_rating":null`) {
		t.Fatalf("expected explicit null rating: %s", text)
	}
	if strings.Count(text, "professor_rating") != 2 {
		t.Fatalf("expected professor_rating only on enriched sections: %s", text)
	}

	decoded := New()
	if err := json.Unmarshal(data, decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	departments := decoded.Departments()
	if len(departments) != 2 || departments[0].Code != "MATH" || departments[1].Code != "CSE" {
		t.Fatalf("expected decoded order MATH, CSE got %+v", departments)
	}
	sections := departments[1].Courses()[0].Sections
	if !sections[0].Rated() || sections[0].ProfessorRating == nil || sections[0].ProfessorRating.ProfessorID != "abc" {
		t.Fatalf("expected decoded individual rating, got %+v", sections[0])
	}
	if !sections[1].Rated() || sections[1].ProfessorRating != nil {
		t.Fatalf("expected decoded null rating to stay rated, got %+v", sections[1])
	}
	if departments[0].Courses()[0].Sections[0].Rated() {
		t.Fatalf("expected raw section to stay unrated")
	}
}
