package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Crash is one recorded traffic incident, the primary entity.
// Time, DateTime and the coordinate pair are genuinely optional: nil means
// the source never recorded them, not that they are zero.
type Crash struct {
	bun.BaseModel `bun:"table:crashes,alias:cr"`

	ID         int        `bun:"id,pk" json:"id"`
	Date       Date       `bun:"date,notnull,type:date" json:"date"`
	Time       *TimeOfDay `bun:"time" json:"time,omitempty"`
	DateTime   *time.Time `bun:"datetime" json:"datetime,omitempty"`
	Severity   Severity   `bun:"severity,notnull" json:"severity"`
	Fatalities int        `bun:"fatalities,notnull" json:"fatalities"`
	Easting    *float64   `bun:"easting" json:"easting,omitempty"`
	Northing   *float64   `bun:"northing" json:"northing,omitempty"`
}
