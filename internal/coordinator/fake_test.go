package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/remote"
	"github.com/julianstephens/interviewdesk/internal/utils"
)

// fakeSource answers every read with the records registered for its request
// line and records each call it receives.
type fakeSource struct {
	responses map[string][]models.Interview
	failures  map[string]error
	calls     []string

	nextID    int64
	createErr error
	updateErr error
	deleteErr error
}

var _ remote.Source = (*fakeSource)(nil)

func newFakeSource() *fakeSource {
	return &fakeSource{
		responses: make(map[string][]models.Interview),
		failures:  make(map[string]error),
		nextID:    100,
	}
}

func (f *fakeSource) read(line string) ([]models.Interview, error) {
	f.calls = append(f.calls, line)
	if err := f.failures[line]; err != nil {
		return nil, err
	}
	return f.responses[line], nil
}

func (f *fakeSource) ByDate(_ context.Context, date time.Time) ([]models.Interview, error) {
	return f.read("GET /interview/date/?date=" + utils.FormatDate(date))
}

func (f *fakeSource) ByRange(_ context.Context, start, end time.Time) ([]models.Interview, error) {
	return f.read(fmt.Sprintf("GET /interview/date-range?start_date=%s&end_date=%s",
		utils.FormatDate(start), utils.FormatDate(end)))
}

func (f *fakeSource) ByMonth(_ context.Context, month time.Month, year int) ([]models.Interview, error) {
	return f.read(fmt.Sprintf("GET /interview/month?month=%02d&year=%d", int(month), year))
}

func (f *fakeSource) ByPreset(_ context.Context, preset string) ([]models.Interview, error) {
	return f.read("GET /interview/" + preset + "/")
}

func (f *fakeSource) Create(_ context.Context, draft models.Interview) (models.Interview, error) {
	f.calls = append(f.calls, "POST /interview/schedule/")
	if f.createErr != nil {
		return models.Interview{}, f.createErr
	}
	f.nextID++
	draft.ID = models.NewID(f.nextID)
	return draft, nil
}

func (f *fakeSource) Update(_ context.Context, id int64, patch models.Patch) (models.Interview, error) {
	f.calls = append(f.calls, fmt.Sprintf("PATCH /interview/%d/", id))
	if f.updateErr != nil {
		return models.Interview{}, f.updateErr
	}
	base := models.Interview{ID: models.NewID(id)}
	return base.Apply(patch)
}

func (f *fakeSource) Delete(_ context.Context, id int64) error {
	f.calls = append(f.calls, fmt.Sprintf("DELETE /interview/%d/", id))
	return f.deleteErr
}

func rec(id int64, interviewer string) models.Interview {
	return models.Interview{
		ID:          models.NewID(id),
		Interviewee: fmt.Sprintf("candidate-%d", id),
		Date:        "2024-06-10",
		Time:        "09:00:00",
		Duration:    "01:00:00",
		Interviewer: interviewer,
	}
}

func ids(rs []models.Interview) []int64 {
	out := make([]int64, 0, len(rs))
	for _, r := range rs {
		if r.ID != nil {
			out = append(out, *r.ID)
		}
	}
	return out
}
