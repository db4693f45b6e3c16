// Package coordinator keeps the visible interview list consistent with the
// selected view, the local filters and the mutations made from the console.
//
// A Coordinator is not safe for concurrent use. All methods except Run and
// the *Remote mutation halves must be called from a single goroutine (the
// bubbletea Update loop, or the goroutine of a CLI command).
package coordinator

import (
	"context"
	"time"

	"github.com/julianstephens/interviewdesk/internal/logger"
	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/remote"
	"github.com/julianstephens/interviewdesk/internal/utils"
)

// Status is the fetch state of the coordinator.
type Status int

const (
	StatusIdle Status = iota
	StatusFetching
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusFetching:
		return "fetching"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Fetch is a dispatched query stamped with its generation.
type Fetch struct {
	Generation uint64
	Query      Query
}

// FetchResult is what came back for a Fetch.
type FetchResult struct {
	Generation uint64
	Query      Query
	Records    []models.Interview
	Err        error
}

// Options configures a Coordinator.
type Options struct {
	// WeekStart is the first day of a week view. The zero value is Sunday.
	WeekStart time.Weekday
	// Today anchors the initial selector. Zero means utils.Today().
	Today time.Time
}

// Coordinator owns the view selector, the filters and the record set.
type Coordinator struct {
	source    remote.Source
	weekStart time.Weekday

	selector ViewSelector
	filter   FilterState
	set      RecordSet
	visible  []models.Interview

	status   Status
	err      error
	inflight Fetch
}

// New returns an idle coordinator with a day view on today and the default
// filter. Nothing is fetched until Refresh or DispatchView is called.
func New(source remote.Source, opts Options) *Coordinator {
	today := opts.Today
	if today.IsZero() {
		today = utils.Today()
	}
	c := &Coordinator{
		source:    source,
		weekStart: opts.WeekStart,
		selector:  NewSelector(today),
		filter:    DefaultFilter(),
	}
	c.recompute()
	return c
}

func (c *Coordinator) Selector() ViewSelector  { return c.selector }
func (c *Coordinator) Filter() FilterState     { return c.filter }
func (c *Coordinator) Status() Status          { return c.status }
func (c *Coordinator) Generation() uint64      { return c.set.Generation() }
func (c *Coordinator) WeekStart() time.Weekday { return c.weekStart }

// Err returns the error of the last applied fetch, or nil.
func (c *Coordinator) Err() error {
	return c.err
}

// Records returns a copy of the authoritative list.
func (c *Coordinator) Records() []models.Interview {
	return c.set.Records()
}

// Visible returns a copy of the filtered projection.
func (c *Coordinator) Visible() []models.Interview {
	out := make([]models.Interview, len(c.visible))
	copy(out, c.visible)
	return out
}

// Find looks up an authoritative record by id.
func (c *Coordinator) Find(id int64) (models.Interview, bool) {
	return c.set.Find(id)
}

// InFlight returns the outstanding fetch, if any.
func (c *Coordinator) InFlight() (Fetch, bool) {
	return c.inflight, c.status == StatusFetching
}

// CurrentQuery resolves the selector as it stands.
func (c *Coordinator) CurrentQuery() Query {
	return Resolve(c.selector, c.weekStart)
}

// DispatchView applies a selector change. When the selector actually changed
// it starts a new fetch and returns it; otherwise it returns false and the
// current fetch, if any, stays current.
func (c *Coordinator) DispatchView(change SelectorChange) (Fetch, bool) {
	if !change.Apply(&c.selector) {
		return Fetch{}, false
	}
	return c.dispatch(), true
}

// Refresh starts a new fetch for the current selector. It is also the way out
// of the error state; failures are never retried automatically.
func (c *Coordinator) Refresh() Fetch {
	return c.dispatch()
}

func (c *Coordinator) dispatch() Fetch {
	f := Fetch{Generation: c.set.next(), Query: c.CurrentQuery()}
	c.inflight = f
	c.status = StatusFetching
	logger.Debug("Dispatching fetch", "generation", f.Generation, "query", f.Query.String())
	return f
}

// Run executes f against the source. It touches no coordinator state and may
// be called from any goroutine.
func (c *Coordinator) Run(ctx context.Context, f Fetch) FetchResult {
	records, err := f.Query.Run(ctx, c.source)
	return FetchResult{Generation: f.Generation, Query: f.Query, Records: records, Err: err}
}

// ApplyFetch applies res if it belongs to the latest dispatch and reports
// whether it did. A superseded result is dropped without touching state.
// A failed current result moves to the error state and keeps the last known
// records.
func (c *Coordinator) ApplyFetch(res FetchResult) bool {
	if res.Generation != c.set.Generation() || c.status != StatusFetching {
		logger.Debug("Discarding stale fetch", "generation", res.Generation, "current", c.set.Generation())
		return false
	}

	if res.Err != nil {
		c.status = StatusError
		c.err = res.Err
		logger.Warn("Fetch failed", "generation", res.Generation, "query", res.Query.String(), "error", res.Err)
		return true
	}

	c.set.Replace(res.Records)
	c.status = StatusIdle
	c.err = nil
	c.recompute()
	logger.Debug("Fetch applied", "generation", res.Generation, "records", c.set.Len())
	return true
}

// Load dispatches change (or a refresh when it changes nothing), runs the
// query and applies the result in one call, for callers without an event
// loop.
func (c *Coordinator) Load(ctx context.Context, change SelectorChange) error {
	f, ok := c.DispatchView(change)
	if !ok {
		f = c.Refresh()
	}
	c.ApplyFetch(c.Run(ctx, f))
	return c.err
}

// SetFilter applies a filter change and recomputes the visible projection.
// It reports whether the filters changed.
func (c *Coordinator) SetFilter(change FilterChange) bool {
	if !change.Apply(&c.filter) {
		return false
	}
	c.recompute()
	return true
}

// ResetFilter restores the default filter.
func (c *Coordinator) ResetFilter() bool {
	if c.filter == DefaultFilter() {
		return false
	}
	c.filter = DefaultFilter()
	c.recompute()
	return true
}

// RoleOptions lists the distinct roles in the authoritative set.
func (c *Coordinator) RoleOptions() []string {
	return distinct(c.set.records, func(r models.Interview) string { return r.Role })
}

// DepartmentOptions lists the distinct departments in the authoritative set.
func (c *Coordinator) DepartmentOptions() []string {
	return distinct(c.set.records, func(r models.Interview) string { return r.Department })
}

func (c *Coordinator) recompute() {
	c.visible = Project(c.set.records, c.filter)
}
