package rating

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrNotFound = errors.New("professor not found")

// ProfessorRecord is one entry of the rating source. Nil metrics mean the
// source had no value.
type ProfessorRecord struct {
	ID                    string
	FirstName             string
	LastName              string
	Name                  string
	Department            string
	AvgRating             *float64
	AvgDifficulty         *float64
	NumRatings            *int
	WouldTakeAgainPercent *float64
}

func (r *ProfessorRecord) FullName() string {
	if name := strings.TrimSpace(r.Name); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName))
}

// snapshotRecord is the on-disk snapshot layout.
type snapshotRecord struct {
	ID                    string   `json:"id"`
	FirstName             string   `json:"first_name"`
	LastName              string   `json:"last_name"`
	FullName              string   `json:"full_name,omitempty"`
	Department            string   `json:"department"`
	AvgRating             *float64 `json:"avg_rating"`
	NumRatings            *int     `json:"num_ratings"`
	WouldTakeAgainPercent *float64 `json:"would_take_again_percent"`
	AvgDifficulty         *float64 `json:"avg_difficulty"`
}

// sourceRecord is the layout the rating site itself uses.
type sourceRecord struct {
	FirstName             string   `json:"firstName"`
	LastName              string   `json:"lastName"`
	AvgRating             *float64 `json:"avgRating"`
	NumRatings            *int     `json:"numRatings"`
	WouldTakeAgainPercent *float64 `json:"wouldTakeAgainPercent"`
	AvgDifficulty         *float64 `json:"avgDifficulty"`
}

func (r ProfessorRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotRecord{
		ID:                    r.ID,
		FirstName:             r.FirstName,
		LastName:              r.LastName,
		FullName:              r.FullName(),
		Department:            r.Department,
		AvgRating:             r.AvgRating,
		NumRatings:            r.NumRatings,
		WouldTakeAgainPercent: r.WouldTakeAgainPercent,
		AvgDifficulty:         r.AvgDifficulty,
	})
}

// UnmarshalJSON accepts both snapshot (snake_case) and source (camelCase)
// field names. Snapshot fields win when both are present.
func (r *ProfessorRecord) UnmarshalJSON(data []byte) error {
	var snapshot snapshotRecord
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return err
	}
	var source sourceRecord
	if err := json.Unmarshal(data, &source); err != nil {
		return err
	}

	*r = ProfessorRecord{
		ID:                    snapshot.ID,
		FirstName:             firstNonEmpty(snapshot.FirstName, source.FirstName),
		LastName:              firstNonEmpty(snapshot.LastName, source.LastName),
		Name:                  snapshot.FullName,
		Department:            snapshot.Department,
		AvgRating:             firstFloat(snapshot.AvgRating, source.AvgRating),
		AvgDifficulty:         firstFloat(snapshot.AvgDifficulty, source.AvgDifficulty),
		WouldTakeAgainPercent: firstFloat(snapshot.WouldTakeAgainPercent, source.WouldTakeAgainPercent),
		NumRatings:            snapshot.NumRatings,
	}
	if r.NumRatings == nil {
		r.NumRatings = source.NumRatings
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstFloat(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func ReadRecords(r io.Reader) ([]ProfessorRecord, error) {
	var records []ProfessorRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode professor records: %w", err)
	}
	return records, nil
}

// Dedupe keeps the first record for every id. Records without an id are
// kept as they are.
func Dedupe(records []ProfessorRecord) []ProfessorRecord {
	seen := make(map[string]bool)
	out := make([]ProfessorRecord, 0, len(records))
	for _, record := range records {
		if record.ID != "" {
			if seen[record.ID] {
				continue
			}
			seen[record.ID] = true
		}
		out = append(out, record)
	}
	return out
}

// FilterDepartments keeps records whose department contains any keyword,
// case-insensitively. No keywords keeps everything.
func FilterDepartments(records []ProfessorRecord, keywords []string) []ProfessorRecord {
	if len(keywords) == 0 {
		return records
	}
	var out []ProfessorRecord
	for _, record := range records {
		department := strings.ToLower(record.Department)
		if department == "" {
			continue
		}
		for _, keyword := range keywords {
			if strings.Contains(department, strings.ToLower(keyword)) {
				out = append(out, record)
				break
			}
		}
	}
	return out
}
