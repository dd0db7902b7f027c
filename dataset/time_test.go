package dataset

import (
	"testing"
	"time"

	"github.com/padraicbc/nzcrash/models"
)

func TestDeriveYearUsesAuckland(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want int
	}{
		{
			// 13:00 UTC on New Year's Eve is already 02:00 NZDT on 1 January.
			name: "UTC new year's eve is NZ new year",
			in:   time.Date(2019, 12, 31, 13, 0, 0, 0, time.UTC),
			want: 2020,
		},
		{
			name: "NZ local date keeps its year",
			in:   models.NewDate(2020, 6, 1).Time,
			want: 2020,
		},
		{
			// Winter: NZST is UTC+12, so 11:00 UTC is still the same day.
			name: "winter offset",
			in:   time.Date(2021, 6, 30, 11, 0, 0, 0, time.UTC),
			want: 2021,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveYear(tt.in); got != tt.want {
				t.Errorf("DeriveYear(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestYearBucketingFromDateKeepsNullTimes(t *testing.T) {
	tod, err := models.ParseTimeOfDay("08:00")
	if err != nil {
		t.Fatalf("ParseTimeOfDay: %v", err)
	}
	d2 := models.NewDate(2020, 6, 1)
	dt := models.CombineDateTime(d2, tod)
	crashes := []models.Crash{
		{ID: 1, Date: models.NewDate(2020, 1, 1), Severity: models.SeverityMinor},
		{ID: 2, Date: d2, Time: &tod, DateTime: &dt, Severity: models.SeverityMinor},
	}

	// Bucketing from Date keeps the crash with an unrecorded time.
	byDate := map[int]int{}
	for _, c := range crashes {
		byDate[DeriveYear(c.Date.Time)]++
	}
	if byDate[2020] != 2 {
		t.Errorf("date bucketing: year 2020 = %d crashes, want 2", byDate[2020])
	}

	// The naive DateTime path silently drops it, which is exactly why
	// time-bucket aggregations must never be driven from DateTime.
	byDateTime := map[int]int{}
	for _, c := range crashes {
		if c.DateTime != nil {
			byDateTime[DeriveYear(*c.DateTime)]++
		}
	}
	if byDateTime[2020] != 1 {
		t.Errorf("datetime bucketing: year 2020 = %d crashes, expected the null-time row dropped", byDateTime[2020])
	}
}
