package db

import (
	"github.com/brequin/brequin/soc/rating"
	"github.com/jackc/pgx/v5"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS professors (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		full_name TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		avg_rating DOUBLE PRECISION,
		avg_difficulty DOUBLE PRECISION,
		num_ratings INTEGER,
		would_take_again_percent DOUBLE PRECISION,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS professors_last_name_idx ON professors (lower(last_name))`,
}

const professorColumns = `id, first_name, last_name, full_name, department, avg_rating, avg_difficulty, num_ratings, would_take_again_percent`

func professorArgs(record rating.ProfessorRecord) []any {
	return []any{
		record.ID,
		record.FirstName,
		record.LastName,
		record.FullName(),
		record.Department,
		record.AvgRating,
		record.AvgDifficulty,
		record.NumRatings,
		record.WouldTakeAgainPercent,
	}
}

func scanProfessor(row pgx.Row) (rating.ProfessorRecord, error) {
	var record rating.ProfessorRecord
	err := row.Scan(
		&record.ID,
		&record.FirstName,
		&record.LastName,
		&record.Name,
		&record.Department,
		&record.AvgRating,
		&record.AvgDifficulty,
		&record.NumRatings,
		&record.WouldTakeAgainPercent,
	)
	return record, err
}
