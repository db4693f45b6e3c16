package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/interviewdesk/internal/constants"
	"github.com/julianstephens/interviewdesk/internal/coordinator"
	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/remote"
	"github.com/julianstephens/interviewdesk/internal/storage/sqlite"
)

// wednesday is the fixed "today" for preset ranges.
var wednesday = time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)

func setupServer(t *testing.T) (*httptest.Server, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "interviewdesk.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(New(store, Options{
		Metrics: true,
		Now:     func() time.Time { return wednesday },
	}).Handler())
	t.Cleanup(srv.Close)
	return srv, store
}

func seed(t *testing.T, store *sqlite.Store, records ...models.Interview) []models.Interview {
	t.Helper()
	out := make([]models.Interview, 0, len(records))
	for _, r := range records {
		created, err := store.Create(context.Background(), r)
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}

func sample(name, date string) models.Interview {
	return models.Interview{
		Interviewee: name,
		Date:        date,
		Time:        "09:00:00",
		Duration:    "01:00:00",
		Role:        "Backend",
		Department:  "Platform",
	}
}

func do(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func names(t *testing.T, body []byte) []string {
	t.Helper()
	var records []models.Interview
	require.NoError(t, json.Unmarshal(body, &records))
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Interviewee)
	}
	return out
}

func TestReadEndpoints(t *testing.T) {
	srv, store := setupServer(t)
	seed(t, store,
		sample("sun", "2024-06-09"),
		sample("mon", "2024-06-10"),
		sample("fri", "2024-06-14"),
		sample("sat", "2024-06-15"),
		sample("july", "2024-07-01"),
	)

	tests := []struct {
		path string
		want []string
	}{
		{path: "/api/interview/date/?date=2024-06-10", want: []string{"mon"}},
		{path: "/api/interview/date-range?start_date=2024-06-10&end_date=2024-06-14", want: []string{"mon", "fri"}},
		{path: "/api/interview/month?month=06&year=2024", want: []string{"sun", "mon", "fri", "sat"}},
		{path: "/api/interview/month?month=7&year=2024", want: []string{"july"}},
		{path: "/api/interview/week/", want: []string{"sun", "mon", "fri", "sat"}},
		{path: "/api/interview/work-week/", want: []string{"mon", "fri"}},
		{path: "/api/interview/month/", want: []string{"sun", "mon", "fri", "sat"}},
		{path: "/api/interview/date/?date=2030-01-01", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := do(t, http.MethodGet, srv.URL+tt.path, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
			assert.Equal(t, tt.want, names(t, body))
		})
	}
}

func TestReadEndpointsRejectBadParams(t *testing.T) {
	srv, _ := setupServer(t)

	tests := []struct {
		path  string
		field string
	}{
		{path: "/api/interview/date/?date=06-10-2024", field: "date"},
		{path: "/api/interview/date-range?start_date=2024-06-10", field: "end_date"},
		{path: "/api/interview/date-range?start_date=2024-06-10&end_date=2024-06-01", field: "end_date"},
		{path: "/api/interview/month?month=13&year=2024", field: "month"},
		{path: "/api/interview/month?month=01", field: "year"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := do(t, http.MethodGet, srv.URL+tt.path, nil)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var fe FieldErrors
			require.NoError(t, json.Unmarshal(body, &fe))
			assert.Contains(t, fe, tt.field)
		})
	}
}

func TestCreate(t *testing.T) {
	srv, _ := setupServer(t)

	draft := sample("Ada", "2024-06-10")
	draft.Time = "9:30"
	draft.ID = models.NewID(77)
	resp, body := do(t, http.MethodPost, srv.URL+"/api/interview/schedule/", draft)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var created models.Interview
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotNil(t, created.ID)
	assert.NotEqual(t, int64(77), *created.ID, "client ids are ignored")
	assert.Equal(t, "09:30:00", created.Time)
	assert.NotEmpty(t, resp.Header.Get(constants.RequestIDHeader))
}

func TestCreateValidation(t *testing.T) {
	srv, _ := setupServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/interview/schedule/", map[string]any{
		"interviewee": "",
		"date":        "10/06/2024",
		"time":        "09:00:00",
		"duration":    "1h",
		"email":       "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var fe FieldErrors
	require.NoError(t, json.Unmarshal(body, &fe))
	assert.Equal(t, []string{"This field is required."}, fe["interviewee"])
	assert.Contains(t, fe, "date")
	assert.Contains(t, fe, "duration")
	assert.Equal(t, []string{"Enter a valid email address."}, fe["email"])
	assert.NotContains(t, fe, "time")
}

func TestPatch(t *testing.T) {
	srv, store := setupServer(t)
	rec := seed(t, store, sample("Ada", "2024-06-10"))[0]
	url := srv.URL + "/api/interview/" + rec.IDString() + "/"

	resp, body := do(t, http.MethodPatch, url, map[string]any{"interviewer": "Bob", "id": 999})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var updated models.Interview
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, *rec.ID, *updated.ID)
	assert.Equal(t, "Bob", updated.Interviewer)
	assert.Equal(t, "Ada", updated.Interviewee, "untouched fields survive")

	resp, body = do(t, http.MethodPatch, url, map[string]any{"date": "tomorrow"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), `"date"`)

	resp, _ = do(t, http.MethodPatch, srv.URL+"/api/interview/9999/", map[string]any{"role": "SRE"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDelete(t *testing.T) {
	srv, store := setupServer(t)
	rec := seed(t, store, sample("Ada", "2024-06-10"))[0]
	url := srv.URL + "/api/interview/" + rec.IDString() + "/"

	resp, body := do(t, http.MethodDelete, url, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)

	resp, _ = do(t, http.MethodDelete, url, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, http.MethodDelete, srv.URL+"/api/interview/abc/", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := setupServer(t)
	do(t, http.MethodGet, srv.URL+"/api/interview/week/", nil)

	resp, body := do(t, http.MethodGet, srv.URL+"/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "interviewdesk_api_requests_total"))
}

func TestPresetRange(t *testing.T) {
	start, end := presetRange("week", wednesday)
	assert.Equal(t, "2024-06-09", start.Format(constants.DateFormat))
	assert.Equal(t, "2024-06-15", end.Format(constants.DateFormat))

	start, end = presetRange("work-week", wednesday)
	assert.Equal(t, "2024-06-10", start.Format(constants.DateFormat))
	assert.Equal(t, "2024-06-14", end.Format(constants.DateFormat))
}

// TestConsoleAgainstServer drives the coordinator through the HTTP client
// against a live server.
func TestConsoleAgainstServer(t *testing.T) {
	srv, store := setupServer(t)
	seed(t, store,
		sample("unassigned", "2024-06-10"),
		models.Interview{Interviewee: "assigned", Date: "2024-06-11", Time: "10:00:00", Duration: "00:30:00", Interviewer: "Bob"},
	)

	client, err := remote.NewClient(srv.URL+"/api", time.Second)
	require.NoError(t, err)
	c := coordinator.New(client, coordinator.Options{Today: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	require.NoError(t, c.Load(ctx, coordinator.ChangeMode(coordinator.ModeWeek)))
	assert.Len(t, c.Visible(), 2)

	yes := true
	c.SetFilter(coordinator.FilterChange{UnassignedOnly: &yes})
	require.Len(t, c.Visible(), 1)
	assert.Equal(t, "unassigned", c.Visible()[0].Interviewee)

	created, err := c.ApplyCreate(ctx, sample("new", "2024-06-12"))
	require.NoError(t, err)
	assert.Len(t, c.Visible(), 2)

	target := c.Visible()[0]
	edited := target
	edited.Interviewer = "Eve"
	patch, err := models.Diff(target, edited)
	require.NoError(t, err)
	_, outcome, err := c.ApplyUpdate(ctx, target.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, coordinator.OutcomeApplied, outcome)
	assert.Len(t, c.Visible(), 1, "assigned record drops out of the unassigned view")

	require.NoError(t, c.ApplyDelete(ctx, created))
	assert.Empty(t, c.Visible())
	assert.Len(t, c.Records(), 2)

	_, err = c.ApplyCreate(ctx, models.Interview{Interviewee: "bad"})
	var ve *remote.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "date")
}
