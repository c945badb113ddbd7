package rating

// Stats are department-level averages used when a section's instructor has
// no individual match. Averages only count present, non-zero values.
type Stats struct {
	Department        string
	AvgRating         float64
	AvgDifficulty     float64
	AvgWouldTakeAgain float64
	TotalRatings      int
	NumProfessors     int
}

type Aggregates struct {
	stats map[string]*Stats
	order []string
}

type accumulator struct {
	ratings, difficulties, wouldTakeAgain []float64
	totalRatings                          int
}

func Aggregate(records []ProfessorRecord) *Aggregates {
	accumulators := make(map[string]*accumulator)
	var order []string

	for _, record := range records {
		acc, ok := accumulators[record.Department]
		if !ok {
			acc = &accumulator{}
			accumulators[record.Department] = acc
			order = append(order, record.Department)
		}
		if present(record.AvgRating) {
			acc.ratings = append(acc.ratings, *record.AvgRating)
		}
		if present(record.AvgDifficulty) {
			acc.difficulties = append(acc.difficulties, *record.AvgDifficulty)
		}
		if present(record.WouldTakeAgainPercent) {
			acc.wouldTakeAgain = append(acc.wouldTakeAgain, *record.WouldTakeAgainPercent)
		}
		if record.NumRatings != nil {
			acc.totalRatings += *record.NumRatings
		}
	}

	aggregates := &Aggregates{stats: make(map[string]*Stats, len(order)), order: order}
	for _, department := range order {
		acc := accumulators[department]
		aggregates.stats[department] = &Stats{
			Department:        department,
			AvgRating:         mean(acc.ratings),
			AvgDifficulty:     mean(acc.difficulties),
			AvgWouldTakeAgain: mean(acc.wouldTakeAgain),
			TotalRatings:      acc.totalRatings,
			NumProfessors:     len(acc.ratings),
		}
	}
	return aggregates
}

func present(v *float64) bool {
	return v != nil && *v != 0
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func (a *Aggregates) Get(department string) (*Stats, bool) {
	stats, ok := a.stats[department]
	return stats, ok
}

// Departments returns external department names in first-seen order.
func (a *Aggregates) Departments() []string {
	departments := make([]string, len(a.order))
	copy(departments, a.order)
	return departments
}

// MappingEntry ties one rating-source department to the catalog department
// codes it covers.
type MappingEntry struct {
	Name  string   `yaml:"name"`
	Codes []string `yaml:"codes"`
}

// DepartmentMapping is ordered; the first entry that covers a code and has
// stats wins.
type DepartmentMapping []MappingEntry

func DefaultDepartmentMapping() DepartmentMapping {
	return DepartmentMapping{
		{Name: "Mathematics", Codes: []string{"MATH"}},
		{Name: "Computer Science", Codes: []string{"CSE"}},
		{Name: "Electrical Engineering & Computer Science", Codes: []string{"CSE", "ECE"}},
	}
}

func (m DepartmentMapping) Resolve(code string, aggregates *Aggregates) (*Stats, bool) {
	if aggregates == nil {
		return nil, false
	}
	for _, entry := range m {
		if !entry.covers(code) {
			continue
		}
		if stats, ok := aggregates.Get(entry.Name); ok {
			return stats, true
		}
	}
	return nil, false
}

func (e MappingEntry) covers(code string) bool {
	for _, c := range e.Codes {
		if c == code {
			return true
		}
	}
	return false
}
