package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/interviewdesk/internal/constants"
	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/utils"
)

// ConflictType represents the type of scheduling conflict
type ConflictType string

const (
	ConflictInterviewerDoubleBooked ConflictType = "interviewer_double_booked"
	ConflictIntervieweeOverlap      ConflictType = "interviewee_overlap"
	ConflictInvalidDateTime         ConflictType = "invalid_datetime"
)

// Conflict is one problem found in a set of interviews.
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD, when it applies
	Items       []string // people involved
	TimeRange   string   // HH:MM-HH:MM of the overlap
	IDs         []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

type slot struct {
	record     models.Interview
	start, end time.Time
}

// Validator checks interviews for scheduling conflicts.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateInterviews reports malformed records and pairs of interviews that
// overlap for the same interviewer or the same interviewee. Unassigned
// interviews never conflict on the interviewer side.
func (v *Validator) ValidateInterviews(records []models.Interview) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	slots := make([]slot, 0, len(records))
	for _, r := range records {
		s, err := toSlot(r)
		if err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Interview with %s (ID: %s) has an invalid schedule: %v", r.Interviewee, r.IDString(), err),
				Date:        r.Date,
				Items:       []string{r.Interviewee},
				IDs:         []string{r.IDString()},
			})
			continue
		}
		slots = append(slots, s)
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].start.Before(slots[j].start)
	})

	byInterviewer := groupBy(slots, func(r models.Interview) string { return r.Interviewer })
	for _, k := range sortedKeys(byInterviewer) {
		for _, pair := range overlaps(byInterviewer[k]) {
			result.Conflicts = append(result.Conflicts, conflict(ConflictInterviewerDoubleBooked,
				fmt.Sprintf("%s is double-booked", pair[0].record.Interviewer), pair))
		}
	}

	byInterviewee := groupBy(slots, func(r models.Interview) string { return r.Interviewee })
	for _, k := range sortedKeys(byInterviewee) {
		for _, pair := range overlaps(byInterviewee[k]) {
			result.Conflicts = append(result.Conflicts, conflict(ConflictIntervieweeOverlap,
				fmt.Sprintf("%s has overlapping interviews", pair[0].record.Interviewee), pair))
		}
	}

	return result
}

func toSlot(r models.Interview) (slot, error) {
	start, err := time.ParseInLocation(constants.DateFormat+" "+constants.ClockFormat, r.Date+" "+r.Time, time.Local)
	if err != nil {
		return slot{}, fmt.Errorf("bad date or time %q %q", r.Date, r.Time)
	}
	minutes, err := utils.DurationMinutes(r.Duration)
	if err != nil {
		return slot{}, err
	}
	if minutes <= 0 {
		return slot{}, fmt.Errorf("duration %q is empty", r.Duration)
	}
	return slot{record: r, start: start, end: start.Add(time.Duration(minutes) * time.Minute)}, nil
}

// groupBy buckets slots by a non-empty key. Keys compare case-insensitively.
func groupBy(slots []slot, key func(models.Interview) string) map[string][]slot {
	out := map[string][]slot{}
	for _, s := range slots {
		k := strings.TrimSpace(key(s.record))
		if k == "" {
			continue
		}
		out[strings.ToLower(k)] = append(out[strings.ToLower(k)], s)
	}
	return out
}

func sortedKeys(m map[string][]slot) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// overlaps returns every overlapping pair of start-sorted slots. Touching
// intervals do not overlap.
func overlaps(slots []slot) [][2]slot {
	var out [][2]slot
	for i := range slots {
		for j := i + 1; j < len(slots); j++ {
			if !slots[j].start.Before(slots[i].end) {
				break
			}
			out = append(out, [2]slot{slots[i], slots[j]})
		}
	}
	return out
}

func conflict(kind ConflictType, what string, pair [2]slot) Conflict {
	a, b := pair[0], pair[1]
	overlapStart := b.start
	overlapEnd := a.end
	if b.end.Before(overlapEnd) {
		overlapEnd = b.end
	}
	timeRange := overlapStart.Format(constants.ShortClockFormat) + "-" + overlapEnd.Format(constants.ShortClockFormat)
	return Conflict{
		Type: kind,
		Description: fmt.Sprintf("%s on %s %s: %s (ID: %s) and %s (ID: %s)",
			what, a.record.Date, timeRange,
			a.record.Interviewee, a.record.IDString(),
			b.record.Interviewee, b.record.IDString()),
		Date:      a.record.Date,
		Items:     []string{a.record.Interviewee, b.record.Interviewee},
		TimeRange: timeRange,
		IDs:       []string{a.record.IDString(), b.record.IDString()},
	}
}
