package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/interviewdesk/internal/models"
)

func interview(id int64, interviewee, interviewer, date, start, duration string) models.Interview {
	return models.Interview{
		ID:          models.NewID(id),
		Interviewee: interviewee,
		Interviewer: interviewer,
		Date:        date,
		Time:        start,
		Duration:    duration,
	}
}

func TestValidateInterviews(t *testing.T) {
	tests := []struct {
		name      string
		records   []models.Interview
		wantTypes []ConflictType
	}{
		{
			name:    "empty",
			records: nil,
		},
		{
			name: "back to back is fine",
			records: []models.Interview{
				interview(1, "Ada", "Grace", "2024-06-10", "09:00:00", "01:00:00"),
				interview(2, "Linus", "Grace", "2024-06-10", "10:00:00", "01:00:00"),
			},
		},
		{
			name: "interviewer double-booked",
			records: []models.Interview{
				interview(1, "Ada", "Grace", "2024-06-10", "09:00:00", "01:00:00"),
				interview(2, "Linus", "grace", "2024-06-10", "09:30:00", "00:45:00"),
			},
			wantTypes: []ConflictType{ConflictInterviewerDoubleBooked},
		},
		{
			name: "unassigned interviews never collide",
			records: []models.Interview{
				interview(1, "Ada", "", "2024-06-10", "09:00:00", "01:00:00"),
				interview(2, "Linus", "", "2024-06-10", "09:00:00", "01:00:00"),
			},
		},
		{
			name: "same interviewee twice",
			records: []models.Interview{
				interview(1, "Ada", "Grace", "2024-06-10", "09:00:00", "02:00:00"),
				interview(2, "Ada", "Alan", "2024-06-10", "10:00:00", "01:00:00"),
			},
			wantTypes: []ConflictType{ConflictIntervieweeOverlap},
		},
		{
			name: "different days",
			records: []models.Interview{
				interview(1, "Ada", "Grace", "2024-06-10", "09:00:00", "01:00:00"),
				interview(2, "Linus", "Grace", "2024-06-11", "09:00:00", "01:00:00"),
			},
		},
		{
			name: "invalid time",
			records: []models.Interview{
				interview(1, "Ada", "Grace", "2024-06-10", "9am", "01:00:00"),
			},
			wantTypes: []ConflictType{ConflictInvalidDateTime},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New().ValidateInterviews(tt.records)
			if len(result.Conflicts) != len(tt.wantTypes) {
				t.Fatalf("ValidateInterviews() got %d conflicts, want %d: %+v", len(result.Conflicts), len(tt.wantTypes), result.Conflicts)
			}
			for i, want := range tt.wantTypes {
				if result.Conflicts[i].Type != want {
					t.Errorf("conflict %d type = %s, want %s", i, result.Conflicts[i].Type, want)
				}
			}
		})
	}
}

func TestConflictDetails(t *testing.T) {
	result := New().ValidateInterviews([]models.Interview{
		interview(2, "Linus", "Grace", "2024-06-10", "09:30:00", "01:00:00"),
		interview(1, "Ada", "Grace", "2024-06-10", "09:00:00", "01:00:00"),
	})
	if len(result.Conflicts) != 1 {
		t.Fatalf("expected one conflict, got %+v", result.Conflicts)
	}
	c := result.Conflicts[0]
	if c.TimeRange != "09:30-10:00" {
		t.Errorf("TimeRange = %q, want 09:30-10:00", c.TimeRange)
	}
	if strings.Join(c.IDs, ",") != "1,2" {
		t.Errorf("IDs = %v, want [1 2]", c.IDs)
	}
	if !strings.Contains(c.Description, "Grace is double-booked on 2024-06-10") {
		t.Errorf("Description = %q", c.Description)
	}
}

func TestFormatReport(t *testing.T) {
	empty := ValidationResult{}
	if got := empty.FormatReport(); got != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", got)
	}

	r := ValidationResult{Conflicts: []Conflict{{Description: "first"}, {Description: "second"}}}
	want := "Conflicts detected:\n- first\n- second\n"
	if got := r.FormatReport(); got != want {
		t.Errorf("FormatReport() = %q, want %q", got, want)
	}
}
