package utils

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q) failed: %v", s, err)
	}
	return d
}

func TestStartAndEndOfWeek(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		weekStart time.Weekday
		wantStart string
		wantEnd   string
	}{
		{
			name:      "monday with sunday start",
			date:      "2024-06-10",
			weekStart: time.Sunday,
			wantStart: "2024-06-09",
			wantEnd:   "2024-06-15",
		},
		{
			name:      "sunday with sunday start",
			date:      "2024-06-09",
			weekStart: time.Sunday,
			wantStart: "2024-06-09",
			wantEnd:   "2024-06-15",
		},
		{
			name:      "sunday with monday start",
			date:      "2024-06-09",
			weekStart: time.Monday,
			wantStart: "2024-06-03",
			wantEnd:   "2024-06-09",
		},
		{
			name:      "week spanning a month boundary",
			date:      "2024-07-02",
			weekStart: time.Sunday,
			wantStart: "2024-06-30",
			wantEnd:   "2024-07-06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDate(t, tt.date)
			if got := FormatDate(StartOfWeek(d, tt.weekStart)); got != tt.wantStart {
				t.Errorf("StartOfWeek() = %s, want %s", got, tt.wantStart)
			}
			if got := FormatDate(EndOfWeek(d, tt.weekStart)); got != tt.wantEnd {
				t.Errorf("EndOfWeek() = %s, want %s", got, tt.wantEnd)
			}
		})
	}
}

func TestWorkWeekAndMonthBounds(t *testing.T) {
	mon, fri := WorkWeek(mustDate(t, "2024-06-15"))
	if FormatDate(mon) != "2024-06-10" || FormatDate(fri) != "2024-06-14" {
		t.Errorf("WorkWeek() = %s..%s, want 2024-06-10..2024-06-14", FormatDate(mon), FormatDate(fri))
	}

	first, last := MonthBounds(mustDate(t, "2024-02-17"))
	if FormatDate(first) != "2024-02-01" || FormatDate(last) != "2024-02-29" {
		t.Errorf("MonthBounds() = %s..%s, want 2024-02-01..2024-02-29", FormatDate(first), FormatDate(last))
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Weekday
		wantErr bool
	}{
		{input: "sun", want: time.Sunday},
		{input: "Monday", want: time.Monday},
		{input: " fri ", want: time.Friday},
		{input: "6", want: time.Saturday},
		{input: "7", wantErr: true},
		{input: "someday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekday(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekday() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseWeekday() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "09:30", want: "09:30:00"},
		{input: "9:05", want: "09:05:00"},
		{input: "14:15:30", want: "14:15:30"},
		{input: "25:00", wantErr: true},
		{input: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeTime(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeTime() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDurationConversions(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		unit      DurationUnit
		want      string
		wantValue string
		wantUnit  DurationUnit
	}{
		{name: "90 minutes", value: "90", unit: UnitMinutes, want: "01:30:00", wantValue: "90", wantUnit: UnitMinutes},
		{name: "60 minutes reads back as hours", value: "60", unit: UnitMinutes, want: "01:00:00", wantValue: "1", wantUnit: UnitHours},
		{name: "2 hours", value: "2", unit: UnitHours, want: "02:00:00", wantValue: "2", wantUnit: UnitHours},
		{name: "45 minutes", value: "45", unit: UnitMinutes, want: "00:45:00", wantValue: "45", wantUnit: UnitMinutes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DurationFromValue(tt.value, tt.unit)
			if err != nil {
				t.Fatalf("DurationFromValue() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("DurationFromValue() = %q, want %q", got, tt.want)
			}

			value, unit, err := SplitDuration(got)
			if err != nil {
				t.Fatalf("SplitDuration() failed: %v", err)
			}
			if value != tt.wantValue || unit != tt.wantUnit {
				t.Errorf("SplitDuration() = %s %s, want %s %s", value, unit, tt.wantValue, tt.wantUnit)
			}
		})
	}

	if _, err := DurationFromValue("0", UnitMinutes); err == nil {
		t.Error("DurationFromValue(0) should return an error")
	}
	if _, err := DurationFromValue("abc", UnitHours); err == nil {
		t.Error("DurationFromValue(abc) should return an error")
	}
}

func TestValidateClock(t *testing.T) {
	valid := []string{"00:30:00", "01:00:00", "26:00:00"}
	for _, v := range valid {
		if !ValidateClock(v) {
			t.Errorf("ValidateClock(%q) = false, want true", v)
		}
	}
	invalid := []string{"", "1:00", "01:60:00", "aa:bb:cc", "1:00:00"}
	for _, v := range invalid {
		if ValidateClock(v) {
			t.Errorf("ValidateClock(%q) = true, want false", v)
		}
	}
}
