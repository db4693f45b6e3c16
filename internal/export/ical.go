package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/julianstephens/interviewdesk/internal/constants"
	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/utils"
)

const productID = "-//interviewdesk//interviewdesk " + constants.Version + "//EN"

// ErrEmpty is returned when there is nothing to export. A calendar needs at
// least one component.
var ErrEmpty = errors.New("no interviews to export")

// Event converts one interview into a VEVENT. Date and time are read in loc.
func Event(r models.Interview, loc *time.Location, stamp time.Time) (*ical.Event, error) {
	start, err := time.ParseInLocation(constants.DateFormat+" "+constants.ClockFormat, r.Date+" "+r.Time, loc)
	if err != nil {
		return nil, fmt.Errorf("interview %s: invalid date or time: %w", r.IDString(), err)
	}
	minutes, err := utils.DurationMinutes(r.Duration)
	if err != nil {
		return nil, fmt.Errorf("interview %s: %w", r.IDString(), err)
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, fmt.Sprintf("interview-%s@%s", r.IDString(), constants.AppName))
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, start)
	event.Props.SetDateTime(ical.PropDateTimeEnd, start.Add(time.Duration(minutes)*time.Minute))
	event.Props.SetText(ical.PropSummary, summary(r))
	if desc := description(r); desc != "" {
		event.Props.SetText(ical.PropDescription, desc)
	}
	if r.Interviewer == "" {
		event.Props.SetText(ical.PropStatus, "TENTATIVE")
	} else {
		event.Props.SetText(ical.PropStatus, "CONFIRMED")
	}
	return event, nil
}

func summary(r models.Interview) string {
	if r.Role == "" {
		return "Interview: " + r.Interviewee
	}
	return fmt.Sprintf("Interview: %s (%s)", r.Interviewee, r.Role)
}

func description(r models.Interview) string {
	var lines []string
	add := func(label, v string) {
		if v != "" {
			lines = append(lines, label+": "+v)
		}
	}
	add("Department", r.Department)
	if r.Interviewer == "" {
		lines = append(lines, "Interviewer: unassigned")
	} else {
		add("Interviewer", r.Interviewer)
	}
	add("Email", r.Email)
	add("Phone", r.Phone)
	add("Notes", r.AdditionalNotes)
	return strings.Join(lines, "\n")
}

// Calendar builds a calendar holding one event per interview.
func Calendar(records []models.Interview, loc *time.Location, stamp time.Time) (*ical.Calendar, error) {
	if loc == nil {
		loc = time.Local
	}
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, r := range records {
		event, err := Event(r, loc, stamp)
		if err != nil {
			return nil, err
		}
		cal.Children = append(cal.Children, event.Component)
	}
	return cal, nil
}

// WriteICS encodes records as an iCalendar stream.
func WriteICS(w io.Writer, records []models.Interview, loc *time.Location) error {
	if len(records) == 0 {
		return ErrEmpty
	}
	cal, err := Calendar(records, loc, time.Now())
	if err != nil {
		return err
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}
