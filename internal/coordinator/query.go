package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/remote"
	"github.com/julianstephens/interviewdesk/internal/utils"
)

// QueryKind identifies which read endpoint a query targets.
type QueryKind int

const (
	QueryDate QueryKind = iota
	QueryRange
	QueryMonth
	QueryPreset
)

// Query is a resolved read request. Only the fields for Kind are set.
type Query struct {
	Kind   QueryKind
	Date   time.Time // QueryDate
	Start  time.Time // QueryRange
	End    time.Time // QueryRange
	Month  time.Month
	Year   int
	Preset Preset
}

// Resolve maps a selector to exactly one query. A preset wins over the mode;
// otherwise day, week and month map to the date, range and month endpoints.
func Resolve(s ViewSelector, weekStart time.Weekday) Query {
	if s.Preset.Active() {
		return Query{Kind: QueryPreset, Preset: s.Preset}
	}
	switch s.Mode {
	case ModeWeek:
		return Query{
			Kind:  QueryRange,
			Start: utils.StartOfWeek(s.Anchor, weekStart),
			End:   utils.EndOfWeek(s.Anchor, weekStart),
		}
	case ModeMonth:
		return Query{Kind: QueryMonth, Month: s.Anchor.Month(), Year: s.Anchor.Year()}
	default:
		return Query{Kind: QueryDate, Date: utils.TruncateDay(s.Anchor)}
	}
}

// String renders the request line the query maps to, relative to the API
// base.
func (q Query) String() string {
	switch q.Kind {
	case QueryRange:
		return fmt.Sprintf("GET /interview/date-range?start_date=%s&end_date=%s",
			utils.FormatDate(q.Start), utils.FormatDate(q.End))
	case QueryMonth:
		return fmt.Sprintf("GET /interview/month?month=%02d&year=%d", int(q.Month), q.Year)
	case QueryPreset:
		return fmt.Sprintf("GET /interview/%s/", q.Preset)
	default:
		return "GET /interview/date/?date=" + utils.FormatDate(q.Date)
	}
}

// Run executes the query against src.
func (q Query) Run(ctx context.Context, src remote.Source) ([]models.Interview, error) {
	switch q.Kind {
	case QueryRange:
		return src.ByRange(ctx, q.Start, q.End)
	case QueryMonth:
		return src.ByMonth(ctx, q.Month, q.Year)
	case QueryPreset:
		return src.ByPreset(ctx, string(q.Preset))
	default:
		return src.ByDate(ctx, q.Date)
	}
}
