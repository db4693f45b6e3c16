package coordinator

import (
	"github.com/julianstephens/interviewdesk/internal/models"
)

// RecordSet is the authoritative list for the current view plus the fencing
// generation of the latest dispatch.
type RecordSet struct {
	records    []models.Interview
	generation uint64
}

// Generation returns the current fencing token.
func (rs *RecordSet) Generation() uint64 {
	return rs.generation
}

// next bumps and returns the generation for a new dispatch.
func (rs *RecordSet) next() uint64 {
	rs.generation++
	return rs.generation
}

// Records returns a copy of the authoritative list.
func (rs *RecordSet) Records() []models.Interview {
	out := make([]models.Interview, len(rs.records))
	copy(out, rs.records)
	return out
}

// Len returns the number of authoritative records.
func (rs *RecordSet) Len() int {
	return len(rs.records)
}

// Replace swaps in a fresh list wholesale.
func (rs *RecordSet) Replace(records []models.Interview) {
	rs.records = make([]models.Interview, len(records))
	copy(rs.records, records)
}

// Find returns the record with id.
func (rs *RecordSet) Find(id int64) (models.Interview, bool) {
	if i := rs.index(id); i >= 0 {
		return rs.records[i], true
	}
	return models.Interview{}, false
}

// Upsert replaces the record holding r's id, or appends r when none does.
// Records without an id are always appended.
func (rs *RecordSet) Upsert(r models.Interview) {
	if r.ID != nil {
		if i := rs.index(*r.ID); i >= 0 {
			rs.records[i] = r
			return
		}
	}
	rs.records = append(rs.records, r)
}

// ReplaceByID overwrites the record with r's id and reports whether one was
// found.
func (rs *RecordSet) ReplaceByID(r models.Interview) bool {
	if r.ID == nil {
		return false
	}
	i := rs.index(*r.ID)
	if i < 0 {
		return false
	}
	rs.records[i] = r
	return true
}

// RemoveByID drops every record holding id and reports whether any was
// removed.
func (rs *RecordSet) RemoveByID(id int64) bool {
	kept := rs.records[:0]
	removed := false
	for _, r := range rs.records {
		if r.ID != nil && *r.ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	rs.records = kept
	return removed
}

func (rs *RecordSet) index(id int64) int {
	for i, r := range rs.records {
		if r.ID != nil && *r.ID == id {
			return i
		}
	}
	return -1
}
