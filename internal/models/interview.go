package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// Interview is a single scheduled interview as exchanged with the backend.
// ID is nil until the server assigns one.
type Interview struct {
	ID              *int64 `json:"id"`
	Interviewee     string `json:"interviewee" validate:"required"`
	Date            string `json:"date" validate:"required,isodate"`                 // YYYY-MM-DD
	Time            string `json:"time" validate:"required,clock"`                   // HH:MM:SS
	Duration        string `json:"duration" validate:"required,clock"`               // HH:MM:SS
	Role            string `json:"role"`
	Department      string `json:"department"`
	Interviewer     string `json:"interviewer"` // empty means unassigned
	AdditionalNotes string `json:"additional_notes"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone"`
}

// NewID returns a pointer to id, for building records in code.
func NewID(id int64) *int64 {
	return &id
}

// HasID reports whether the record has been persisted.
func (i Interview) HasID() bool {
	return i.ID != nil
}

// SameEntity reports whether both records carry the same server id.
// Records without an id never match anything, including each other.
func (i Interview) SameEntity(other Interview) bool {
	if i.ID == nil || other.ID == nil {
		return false
	}
	return *i.ID == *other.ID
}

// Assigned reports whether an interviewer has been set.
func (i Interview) Assigned() bool {
	return i.Interviewer != ""
}

// IDString renders the id for display, "-" when unset.
func (i Interview) IDString() string {
	if i.ID == nil {
		return "-"
	}
	return strconv.FormatInt(*i.ID, 10)
}

// Patch is a sparse set of field changes keyed by JSON field name.
type Patch map[string]any

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return len(p) == 0
}

// Fields returns the patched field names in sorted order.
func (p Patch) Fields() []string {
	fields := make([]string, 0, len(p))
	for k := range p {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// Diff builds the merge patch that turns before into after. The id is never
// part of a patch.
func Diff(before, after Interview) (Patch, error) {
	before.ID, after.ID = nil, nil

	original, err := json.Marshal(before)
	if err != nil {
		return nil, fmt.Errorf("failed to encode original record: %w", err)
	}
	modified, err := json.Marshal(after)
	if err != nil {
		return nil, fmt.Errorf("failed to encode modified record: %w", err)
	}

	raw, err := jsonpatch.CreateMergePatch(original, modified)
	if err != nil {
		return nil, fmt.Errorf("failed to diff records: %w", err)
	}

	patch := Patch{}
	if err := json.Unmarshal(raw, &patch); err != nil {
		return nil, fmt.Errorf("failed to decode patch: %w", err)
	}
	delete(patch, "id")
	return patch, nil
}

// Apply merges the patch into a copy of the record. The record id is kept
// regardless of what the patch says.
func (i Interview) Apply(p Patch) (Interview, error) {
	if p.IsEmpty() {
		return i, nil
	}

	original, err := json.Marshal(i)
	if err != nil {
		return Interview{}, fmt.Errorf("failed to encode record: %w", err)
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return Interview{}, fmt.Errorf("failed to encode patch: %w", err)
	}

	merged, err := jsonpatch.MergePatch(original, raw)
	if err != nil {
		return Interview{}, fmt.Errorf("failed to apply patch: %w", err)
	}

	var out Interview
	if err := json.Unmarshal(merged, &out); err != nil {
		return Interview{}, fmt.Errorf("failed to decode patched record: %w", err)
	}
	out.ID = i.ID
	return out, nil
}
