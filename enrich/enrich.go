package enrich

import (
	"context"
	"math"
	"strings"

	"github.com/brequin/brequin/soc/catalog"
	"github.com/brequin/brequin/soc/logger"
	"github.com/brequin/brequin/soc/rating"
)

// Resolver turns an instructor string into a rating record, or nil when the
// instructor has none. Both *rating.Matcher and *rating.CachedLookup are
// Resolvers.
type Resolver interface {
	Resolve(ctx context.Context, instructor string) (*rating.ProfessorRecord, error)
}

type Pipeline struct {
	Resolver Resolver
	// Aggregates and Mapping drive the department fallback. It is skipped
	// when Aggregate is false or Aggregates is nil.
	Aggregates *rating.Aggregates
	Mapping    rating.DepartmentMapping
	Aggregate  bool
	Log        *logger.Logger
}

type Summary struct {
	Sections    int
	Individual  int
	Aggregate   int
	Unrated     int
	Instructors int
}

// Run sets professor_rating on every section of c. Only the rating is
// touched, so running it again over the same catalog gives the same result.
func (p *Pipeline) Run(ctx context.Context, c *catalog.Catalog) (Summary, error) {
	log := logger.OrNop(p.Log)
	var summary Summary
	instructors := make(map[string]bool)

	for _, department := range c.Departments() {
		fallback := p.departmentRating(department.Code)
		for _, course := range department.Courses() {
			for _, section := range course.Sections {
				summary.Sections++
				record, err := p.Resolver.Resolve(ctx, section.Professor)
				if err != nil {
					return summary, err
				}

				switch {
				case record != nil:
					section.SetRating(individualRating(record))
					summary.Individual++
					instructors[strings.TrimSpace(section.Professor)] = true
				case fallback != nil:
					copied := *fallback
					section.SetRating(&copied)
					summary.Aggregate++
				default:
					section.SetRating(nil)
					summary.Unrated++
				}
			}
		}
	}

	summary.Instructors = len(instructors)
	log.Info("Enriched catalog",
		"sections", summary.Sections,
		"individual", summary.Individual,
		"aggregate", summary.Aggregate,
		"unrated", summary.Unrated,
		"instructors", summary.Instructors)
	return summary, nil
}

func (p *Pipeline) departmentRating(code string) *catalog.Rating {
	if !p.Aggregate {
		return nil
	}
	stats, ok := p.Mapping.Resolve(code, p.Aggregates)
	if !ok {
		return nil
	}
	return aggregateRating(stats)
}

func individualRating(record *rating.ProfessorRecord) *catalog.Rating {
	r := &catalog.Rating{
		Rating:         valueOrZero(record.AvgRating),
		Difficulty:     valueOrZero(record.AvgDifficulty),
		WouldTakeAgain: valueOrZero(record.WouldTakeAgainPercent),
		Department:     record.Department,
		ProfessorID:    record.ID,
	}
	if record.NumRatings != nil {
		r.NumRatings = *record.NumRatings
	}
	return r
}

func aggregateRating(stats *rating.Stats) *catalog.Rating {
	numProfessors := stats.NumProfessors
	return &catalog.Rating{
		Rating:         round1(stats.AvgRating),
		Difficulty:     round1(stats.AvgDifficulty),
		NumRatings:     stats.TotalRatings,
		WouldTakeAgain: round1(stats.AvgWouldTakeAgain),
		Department:     stats.Department,
		NumProfessors:  &numProfessors,
	}
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
