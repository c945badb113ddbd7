package db

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/brequin/brequin/soc/rating"
)

// WriteProfessorTable prints one row per record in the order given. Missing
// statistics print as null, matching what the store holds for them.
func WriteProfessorTable(w io.Writer, records []rating.ProfessorRecord) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Department", "Rating", "Difficulty", "Ratings", "Would Take Again"})
	for _, record := range records {
		table.Append([]string{
			record.ID,
			record.FullName(),
			record.Department,
			FormatOptionalFloat(record.AvgRating),
			FormatOptionalFloat(record.AvgDifficulty),
			FormatOptionalInt(record.NumRatings),
			FormatOptionalFloat(record.WouldTakeAgainPercent),
		})
	}
	table.Render()
}
