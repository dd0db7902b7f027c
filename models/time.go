package models

import (
	"database/sql/driver"
	"fmt"
	"time"
	// Crash timestamps are only meaningful in the NZ zone, so carry tzdata
	// rather than depending on the host zoneinfo database.
	_ "time/tzdata"
)

const (
	dateLayout = "2006-01-02"
	todLayout  = "15:04"
)

// Auckland is the fixed reporting zone for the whole dataset. All dates and
// derived years use NZ civil time, with historical DST rules applied.
var Auckland *time.Location

func init() {
	loc, err := time.LoadLocation("Pacific/Auckland")
	if err != nil {
		panic(fmt.Sprintf("load Pacific/Auckland: %v", err))
	}
	Auckland = loc
}

// Date is a calendar date in the Auckland zone with no time component.
// It always holds midnight Auckland of the day in question.
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD value in the Auckland zone.
func ParseDate(raw string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, raw, Auckland)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return Date{Time: t}, nil
}

// NewDate builds a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, Auckland)}
}

func (d Date) String() string { return d.Format(dateLayout) }

// Value implements driver.Valuer so Date stores as a SQL date.
func (d Date) Value() (driver.Value, error) { return d.Time, nil }

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v.In(Auckland)
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// TimeOfDay is a wall-clock time with no date attached. Crashes frequently
// have a known date but an unrecorded time, so the two are kept separate
// rather than faked into a midnight timestamp.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an HH:MM value.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	t, err := time.Parse(todLayout, raw)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: %w", raw, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// Value implements driver.Valuer, storing HH:MM text.
func (t TimeOfDay) Value() (driver.Value, error) { return t.String(), nil }

// Scan implements sql.Scanner.
func (t *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = TimeOfDay{Hour: v.Hour(), Minute: v.Minute()}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

// CombineDateTime merges a date and a time-of-day into a full Auckland
// timestamp. Crash.DateTime must always equal this combination when both
// parts are known.
func CombineDateTime(d Date, t TimeOfDay) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, 0, 0, Auckland)
}
