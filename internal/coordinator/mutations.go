package coordinator

import (
	"context"
	"errors"

	"github.com/julianstephens/interviewdesk/internal/logger"
	"github.com/julianstephens/interviewdesk/internal/models"
)

// ErrMissingID is returned when deleting a record that was never persisted.
var ErrMissingID = errors.New("record has no id")

// Outcome is the result of an update that did not fail.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeNoChanges
	OutcomeMissingID
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoChanges:
		return "no changes"
	case OutcomeMissingID:
		return "missing id"
	default:
		return "applied"
	}
}

// CheckUpdate resolves the local preconditions of an update. Anything other
// than OutcomeApplied means no request should be made.
func CheckUpdate(id *int64, patch models.Patch) Outcome {
	if id == nil {
		return OutcomeMissingID
	}
	if patch.IsEmpty() {
		return OutcomeNoChanges
	}
	return OutcomeApplied
}

// CreateRemote sends draft to the backend. Safe off the UI loop.
func (c *Coordinator) CreateRemote(ctx context.Context, draft models.Interview) (models.Interview, error) {
	draft.ID = nil
	return c.source.Create(ctx, draft)
}

// CommitCreate adds a server-confirmed record. A record already holding the
// same id is replaced, so ids never repeat.
func (c *Coordinator) CommitCreate(created models.Interview) {
	c.set.Upsert(created)
	c.recompute()
	logger.Debug("Committed create", "id", created.IDString())
}

// ApplyCreate creates draft remotely and commits the result. On failure
// nothing changes locally and the backend error is returned as is.
func (c *Coordinator) ApplyCreate(ctx context.Context, draft models.Interview) (models.Interview, error) {
	created, err := c.CreateRemote(ctx, draft)
	if err != nil {
		return models.Interview{}, err
	}
	c.CommitCreate(created)
	return created, nil
}

// UpdateRemote sends patch for id. A missing id or an empty patch is answered
// locally with the matching outcome and no request. Safe off the UI loop.
func (c *Coordinator) UpdateRemote(ctx context.Context, id *int64, patch models.Patch) (models.Interview, Outcome, error) {
	if o := CheckUpdate(id, patch); o != OutcomeApplied {
		return models.Interview{}, o, nil
	}
	updated, err := c.source.Update(ctx, *id, patch)
	if err != nil {
		return models.Interview{}, OutcomeApplied, err
	}
	return updated, OutcomeApplied, nil
}

// CommitUpdate swaps in the server-confirmed record by id. Records not in the
// current set are ignored.
func (c *Coordinator) CommitUpdate(updated models.Interview) {
	if c.set.ReplaceByID(updated) {
		c.recompute()
	}
	logger.Debug("Committed update", "id", updated.IDString())
}

// ApplyUpdate updates a record remotely and commits the result.
func (c *Coordinator) ApplyUpdate(ctx context.Context, id *int64, patch models.Patch) (models.Interview, Outcome, error) {
	updated, outcome, err := c.UpdateRemote(ctx, id, patch)
	if err != nil || outcome != OutcomeApplied {
		return updated, outcome, err
	}
	c.CommitUpdate(updated)
	return updated, outcome, nil
}

// DeleteRemote deletes record on the backend. Safe off the UI loop.
func (c *Coordinator) DeleteRemote(ctx context.Context, record models.Interview) error {
	if record.ID == nil {
		return ErrMissingID
	}
	return c.source.Delete(ctx, *record.ID)
}

// CommitDelete removes the record's id from the set.
func (c *Coordinator) CommitDelete(record models.Interview) {
	if record.ID == nil {
		return
	}
	if c.set.RemoveByID(*record.ID) {
		c.recompute()
	}
	logger.Debug("Committed delete", "id", record.IDString())
}

// ApplyDelete deletes record remotely and removes it locally on success.
func (c *Coordinator) ApplyDelete(ctx context.Context, record models.Interview) error {
	if err := c.DeleteRemote(ctx, record); err != nil {
		return err
	}
	c.CommitDelete(record)
	return nil
}
