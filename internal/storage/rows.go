package storage

import (
	"database/sql"

	"github.com/julianstephens/interviewdesk/internal/models"
)

// Columns is the select list every store reads interviews with, in the order
// ScanInterview expects.
const Columns = "id, interviewee, date, time, duration, role, department, interviewer, additional_notes, email, phone"

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanInterview reads one row selected with Columns.
func ScanInterview(row Scanner) (models.Interview, error) {
	var (
		r  models.Interview
		id int64
	)
	err := row.Scan(&id, &r.Interviewee, &r.Date, &r.Time, &r.Duration, &r.Role,
		&r.Department, &r.Interviewer, &r.AdditionalNotes, &r.Email, &r.Phone)
	if err != nil {
		return models.Interview{}, err
	}
	r.ID = models.NewID(id)
	return r, nil
}

// ScanInterviews drains rows. It always returns a non-nil slice on success.
func ScanInterviews(rows *sql.Rows) ([]models.Interview, error) {
	defer rows.Close()

	out := []models.Interview{}
	for rows.Next() {
		r, err := ScanInterview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
