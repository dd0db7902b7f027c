package models

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2020-06-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year() != 2020 || d.Month() != time.June || d.Day() != 1 {
		t.Errorf("parsed %v", d)
	}
	if d.Location() != Auckland {
		t.Errorf("date zone = %v, want Pacific/Auckland", d.Location())
	}
	if got := d.String(); got != "2020-06-01" {
		t.Errorf("String() = %q", got)
	}

	for _, bad := range []string{"", "01/06/2020", "2020-13-01", "june 1"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("17:30")
	if err != nil {
		t.Fatalf("ParseTimeOfDay: %v", err)
	}
	if tod.Hour != 17 || tod.Minute != 30 {
		t.Errorf("parsed %+v", tod)
	}
	if got := tod.String(); got != "17:30" {
		t.Errorf("String() = %q", got)
	}

	for _, bad := range []string{"", "25:00", "9am", "17:30:00"} {
		if _, err := ParseTimeOfDay(bad); err == nil {
			t.Errorf("ParseTimeOfDay(%q) should fail", bad)
		}
	}
}

func TestCombineDateTime(t *testing.T) {
	d := NewDate(2020, time.June, 1)
	dt := CombineDateTime(d, TimeOfDay{Hour: 8, Minute: 15})

	if dt.Year() != 2020 || dt.Month() != time.June || dt.Day() != 1 || dt.Hour() != 8 || dt.Minute() != 15 {
		t.Errorf("combined %v", dt)
	}
	if dt.Location() != Auckland {
		t.Errorf("combined zone = %v", dt.Location())
	}

	// NZ daylight saving: UTC+13 in January, UTC+12 in June.
	_, summer := CombineDateTime(NewDate(2020, time.January, 15), TimeOfDay{Hour: 12}).Zone()
	_, winter := CombineDateTime(NewDate(2020, time.June, 15), TimeOfDay{Hour: 12}).Zone()
	if summer != 13*3600 {
		t.Errorf("summer offset = %d, want +13h", summer)
	}
	if winter != 12*3600 {
		t.Errorf("winter offset = %d, want +12h", winter)
	}
}
