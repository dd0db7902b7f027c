package dataset

import (
	"time"

	"github.com/padraicbc/nzcrash/models"
)

// DeriveYear extracts the calendar year in the Pacific/Auckland zone, with
// historical NZ daylight-saving rules applied.
//
// Time-bucketed aggregations must derive their bucket from a crash's Date,
// never from DateTime: the time of day is unrecorded for a large and
// time-varying share of crashes, so any DateTime-driven bucketing silently
// drops those rows from the counts.
func DeriveYear(t time.Time) int {
	return t.In(models.Auckland).Year()
}
