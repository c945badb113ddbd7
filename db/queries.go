package db

import (
	"context"
	"strconv"

	"github.com/brequin/brequin/soc/names"
	"github.com/brequin/brequin/soc/rating"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const listProfessors = `SELECT ` + professorColumns + ` FROM professors ORDER BY department, last_name, first_name, id`
const insertProfessor = `INSERT INTO professors (` + professorColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT (id) DO UPDATE SET first_name=EXCLUDED.first_name, last_name=EXCLUDED.last_name, full_name=EXCLUDED.full_name, department=EXCLUDED.department, avg_rating=EXCLUDED.avg_rating, avg_difficulty=EXCLUDED.avg_difficulty, num_ratings=EXCLUDED.num_ratings, would_take_again_percent=EXCLUDED.would_take_again_percent, updated_at=now()`

// $1 is the normalized instructor name. A professor is a candidate when
// their last name appears in it or it appears in their full name.
const searchProfessors = `SELECT ` + professorColumns + ` FROM professors WHERE (last_name <> '' AND position(lower(last_name) IN $1) > 0) OR (full_name <> '' AND position($1 IN lower(full_name)) > 0) ORDER BY id`

func FormatOptionalFloat(f *float64) string {
	if f != nil {
		return strconv.FormatFloat(*f, 'f', 1, 64)
	}
	return "null"
}

func FormatOptionalInt(i *int) string {
	if i != nil {
		return strconv.Itoa(*i)
	}
	return "null"
}

func insertCallback(ct pgconn.CommandTag) error {
	return nil
}

func (d *Database) ListProfessors(ctx context.Context) ([]rating.ProfessorRecord, error) {
	return d.queryProfessors(ctx, listProfessors)
}

// SearchProfessors returns the candidates for instructor. It implements
// rating.Searcher.
func (d *Database) SearchProfessors(ctx context.Context, instructor string) ([]rating.ProfessorRecord, error) {
	normalized := names.Normalize(instructor)
	if normalized == "" {
		return nil, nil
	}
	return d.queryProfessors(ctx, searchProfessors, normalized)
}

func (d *Database) queryProfessors(ctx context.Context, sql string, args ...any) ([]rating.ProfessorRecord, error) {
	rows, err := d.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []rating.ProfessorRecord
	for rows.Next() {
		record, err := scanProfessor(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// InsertProfessors upserts records by id and returns how many were sent.
// Records without an id are skipped.
func (d *Database) InsertProfessors(ctx context.Context, records []rating.ProfessorRecord) (int, error) {
	batch := pgx.Batch{}
	var queuedQueries []*pgx.QueuedQuery

	for _, record := range records {
		if record.ID == "" {
			continue
		}
		queuedQueries = append(queuedQueries, batch.Queue(insertProfessor, professorArgs(record)...))
	}
	if len(queuedQueries) == 0 {
		return 0, nil
	}

	for _, queuedQuery := range queuedQueries {
		queuedQuery.Exec(insertCallback)
	}

	if err := d.Pool.SendBatch(ctx, &batch).Close(); err != nil {
		return 0, err
	}

	return len(queuedQueries), nil
}
