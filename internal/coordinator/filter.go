package coordinator

import (
	"sort"

	"github.com/julianstephens/interviewdesk/internal/constants"
	"github.com/julianstephens/interviewdesk/internal/models"
)

// FilterState holds the local filters. Role and Department use "all" (or the
// empty string) to mean no restriction.
type FilterState struct {
	UnassignedOnly bool
	Role           string
	Department     string
}

// DefaultFilter matches every record.
func DefaultFilter() FilterState {
	return FilterState{Role: constants.FilterAll, Department: constants.FilterAll}
}

// IsDefault reports whether f restricts nothing.
func (f FilterState) IsDefault() bool {
	return !f.UnassignedOnly && isAll(f.Role) && isAll(f.Department)
}

func isAll(v string) bool {
	return v == "" || v == constants.FilterAll
}

// Matches reports whether r passes every active clause of f.
func Matches(r models.Interview, f FilterState) bool {
	if f.UnassignedOnly && r.Interviewer != "" {
		return false
	}
	if !isAll(f.Role) && r.Role != f.Role {
		return false
	}
	if !isAll(f.Department) && r.Department != f.Department {
		return false
	}
	return true
}

// Project returns the records of rs that match f, in order. The result is a
// fresh slice.
func Project(rs []models.Interview, f FilterState) []models.Interview {
	out := make([]models.Interview, 0, len(rs))
	for _, r := range rs {
		if Matches(r, f) {
			out = append(out, r)
		}
	}
	return out
}

// FilterChange is one user action against the filters. Nil fields are left
// alone.
type FilterChange struct {
	UnassignedOnly *bool
	Role           *string
	Department     *string
}

// Apply folds the change into f and reports whether anything changed.
func (c FilterChange) Apply(f *FilterState) bool {
	before := *f
	if c.UnassignedOnly != nil {
		f.UnassignedOnly = *c.UnassignedOnly
	}
	if c.Role != nil {
		f.Role = normalizeAll(*c.Role)
	}
	if c.Department != nil {
		f.Department = normalizeAll(*c.Department)
	}
	return before != *f
}

func normalizeAll(v string) string {
	if v == "" {
		return constants.FilterAll
	}
	return v
}

// distinct returns the sorted non-empty values pick yields over rs.
func distinct(rs []models.Interview, pick func(models.Interview) string) []string {
	seen := make(map[string]struct{})
	for _, r := range rs {
		if v := pick(r); v != "" {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
