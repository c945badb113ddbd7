package enrich

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/brequin/brequin/soc/rating"
)

func (s Summary) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Sections", "Individual", "Aggregate", "Unrated", "Instructors"})
	table.Append([]string{
		strconv.Itoa(s.Sections),
		strconv.Itoa(s.Individual),
		strconv.Itoa(s.Aggregate),
		strconv.Itoa(s.Unrated),
		strconv.Itoa(s.Instructors),
	})
	table.Render()
}

// WriteDepartmentTable prints one row of averages per rating-source
// department, in first-seen order.
func WriteDepartmentTable(w io.Writer, aggregates *rating.Aggregates) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Department", "Professors", "Ratings", "Avg Rating", "Avg Difficulty", "Would Take Again"})
	for _, department := range aggregates.Departments() {
		stats, _ := aggregates.Get(department)
		table.Append([]string{
			department,
			strconv.Itoa(stats.NumProfessors),
			strconv.Itoa(stats.TotalRatings),
			strconv.FormatFloat(round1(stats.AvgRating), 'f', 1, 64),
			strconv.FormatFloat(round1(stats.AvgDifficulty), 'f', 1, 64),
			strconv.FormatFloat(round1(stats.AvgWouldTakeAgain), 'f', 1, 64) + "%",
		})
	}
	table.Render()
}
