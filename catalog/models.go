package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Catalog is the Department -> Course -> Section tree of one scrape. Maps
// are keyed by department code and course name; insertion order is kept so
// snapshots list departments and courses in the order they were scraped.
type Catalog struct {
	departments map[string]*Department
	order       []string
}

type Department struct {
	Code    string
	courses map[string]*Course
	order   []string
}

type Course struct {
	Name     string
	Sections []*Section
}

type Section struct {
	SectionType    string `json:"sectionType"`
	Days           string `json:"days"`
	Times          string `json:"times"`
	BuildingName   string `json:"buildingName"`
	RoomNumber     string `json:"roomNumber"`
	Professor      string `json:"professor"`
	SeatsRemaining string `json:"seatsRemaining"`
	Spaces         string `json:"spaces"`

	ProfessorRating *Rating `json:"-"`
	rated           bool
}

// Rating is either an individual professor's rating (ProfessorID set) or a
// department aggregate (NumProfessors set).
type Rating struct {
	Rating         float64 `json:"rating"`
	Difficulty     float64 `json:"difficulty"`
	NumRatings     int     `json:"num_ratings"`
	WouldTakeAgain float64 `json:"would_take_again"`
	Department     string  `json:"department"`
	ProfessorID    string  `json:"professor_id,omitempty"`
	NumProfessors  *int    `json:"num_professors,omitempty"`
}

func New() *Catalog {
	return &Catalog{departments: make(map[string]*Department)}
}

// AddDepartment returns the department for code, creating it on first use.
func (c *Catalog) AddDepartment(code string) *Department {
	if department, ok := c.departments[code]; ok {
		return department
	}
	department := &Department{Code: code, courses: make(map[string]*Course)}
	c.departments[code] = department
	c.order = append(c.order, code)
	return department
}

func (c *Catalog) Department(code string) (*Department, bool) {
	department, ok := c.departments[code]
	return department, ok
}

func (c *Catalog) Departments() []*Department {
	departments := make([]*Department, 0, len(c.order))
	for _, code := range c.order {
		departments = append(departments, c.departments[code])
	}
	return departments
}

// Sections calls fn for every section in catalog order.
func (c *Catalog) Sections(fn func(department *Department, course *Course, section *Section)) {
	for _, department := range c.Departments() {
		for _, course := range department.Courses() {
			for _, section := range course.Sections {
				fn(department, course, section)
			}
		}
	}
}

func (c *Catalog) SectionCount() int {
	count := 0
	c.Sections(func(*Department, *Course, *Section) { count++ })
	return count
}

// AddCourse returns the course called name, creating it on first use.
func (d *Department) AddCourse(name string) *Course {
	if course, ok := d.courses[name]; ok {
		return course
	}
	course := &Course{Name: name}
	d.courses[name] = course
	d.order = append(d.order, name)
	return course
}

func (d *Department) Course(name string) (*Course, bool) {
	course, ok := d.courses[name]
	return course, ok
}

func (d *Department) Courses() []*Course {
	courses := make([]*Course, 0, len(d.order))
	for _, name := range d.order {
		courses = append(courses, d.courses[name])
	}
	return courses
}

// SetRating records the enrichment result. A nil rating is kept as an
// explicit null in enriched snapshots.
func (s *Section) SetRating(rating *Rating) {
	s.ProfessorRating = rating
	s.rated = true
}

// Rated reports whether enrichment has run on the section.
func (s *Section) Rated() bool {
	return s.rated
}

type plainSection Section

func (s Section) MarshalJSON() ([]byte, error) {
	if !s.rated {
		return json.Marshal(plainSection(s))
	}
	return json.Marshal(struct {
		plainSection
		ProfessorRating *Rating `json:"professor_rating"`
	}{plainSection(s), s.ProfessorRating})
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var wire struct {
		plainSection
		ProfessorRating json.RawMessage `json:"professor_rating"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*s = Section(wire.plainSection)
	if len(wire.ProfessorRating) == 0 {
		return nil
	}
	var rating *Rating
	if err := json.Unmarshal(wire.ProfessorRating, &rating); err != nil {
		return fmt.Errorf("professor_rating: %w", err)
	}
	s.SetRating(rating)
	return nil
}

func (c *Catalog) MarshalJSON() ([]byte, error) {
	return marshalObject(c.order, func(code string) interface{} { return c.departments[code] })
}

func (c *Catalog) UnmarshalJSON(data []byte) error {
	*c = *New()
	return unmarshalObject(data, func(code string, value json.RawMessage) error {
		return json.Unmarshal(value, c.AddDepartment(code))
	})
}

func (d *Department) MarshalJSON() ([]byte, error) {
	return marshalObject(d.order, func(name string) interface{} {
		sections := d.courses[name].Sections
		if sections == nil {
			sections = []*Section{}
		}
		return sections
	})
}

func (d *Department) UnmarshalJSON(data []byte) error {
	if d.courses == nil {
		d.courses = make(map[string]*Course)
	}
	return unmarshalObject(data, func(name string, value json.RawMessage) error {
		course := d.AddCourse(name)
		var sections []*Section
		if err := json.Unmarshal(value, &sections); err != nil {
			return fmt.Errorf("course %q: %w", name, err)
		}
		course.Sections = append(course.Sections, sections...)
		return nil
	})
}

func marshalObject(keys []string, value func(key string) interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		encodedValue, err := json.Marshal(value(key))
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(encodedValue)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func unmarshalObject(data []byte, field func(key string, value json.RawMessage) error) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if token == nil {
		return nil
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", token)
	}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}
		key, ok := token.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", token)
		}
		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return err
		}
		if err := field(key, value); err != nil {
			return err
		}
	}
	_, err = decoder.Token()
	return err
}
