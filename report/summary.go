// Package report reproduces the example analyses shipped with the dataset:
// joins across the four tables and the summary tables and charts built from
// them. Everything here is a pure function of a loaded dataset, built
// exclusively on the dataset package's join/aggregate contract.
package report

import (
	"sort"

	"github.com/padraicbc/nzcrash/dataset"
	"github.com/padraicbc/nzcrash/models"
)

// YearCount is one calendar year's crash count.
type YearCount struct {
	Year    int
	Crashes int
}

// SeverityCount is one severity level's crash count, ranked worst-first.
type SeverityCount struct {
	Severity models.Severity
	Crashes  int
}

// FatalitySummary keeps the fatal-crash count and the fatality count
// strictly apart. Two fatal crashes with three and one deaths are two fatal
// crashes and four fatalities; conflating the two numbers is the classic
// mistake with this dataset.
type FatalitySummary struct {
	FatalCrashes int
	Fatalities   int
}

// Summaries bundles every vignette summary for rendering.
type Summaries struct {
	PerYear         []YearCount
	BySeverity      []SeverityCount
	Fatalities      FatalitySummary
	ByCauseCategory []OrderedCategory
	ByVehicleType   []OrderedCategory
	FatalByVehicle  []OrderedCategory
	ByObjectStruck  []OrderedCategory
}

// Build computes all summaries from a loaded dataset.
func Build(d *dataset.Dataset) (*Summaries, error) {
	s := &Summaries{}
	var err error
	if s.PerYear, err = CrashesPerYear(d); err != nil {
		return nil, err
	}
	if s.BySeverity, err = CrashesBySeverity(d); err != nil {
		return nil, err
	}
	if s.Fatalities, err = Fatalities(d); err != nil {
		return nil, err
	}
	if s.ByCauseCategory, err = CrashesByCauseCategory(d); err != nil {
		return nil, err
	}
	if s.ByVehicleType, err = VehiclesByType(d); err != nil {
		return nil, err
	}
	if s.FatalByVehicle, err = FatalCrashVehicles(d); err != nil {
		return nil, err
	}
	if s.ByObjectStruck, err = ObjectsStruckCounts(d); err != nil {
		return nil, err
	}
	return s, nil
}

// yearRow is the derived relation behind the per-year bucketing.
type yearRow struct {
	Year int `bun:"year"`
}

// CrashesPerYear counts crashes per calendar year, bucketed from Date. The
// date is always recorded, so crashes with an unknown time of day still land
// in their year; bucketing from DateTime would silently drop them.
func CrashesPerYear(d *dataset.Dataset) ([]YearCount, error) {
	rows := make([]yearRow, 0, len(d.Crashes))
	for _, c := range d.Crashes {
		rows = append(rows, yearRow{Year: dataset.DeriveYear(c.Date.Time)})
	}
	aggs, err := dataset.Aggregate(rows, []string{"year"}, dataset.Count)
	if err != nil {
		return nil, err
	}
	out := make([]YearCount, 0, len(aggs))
	for _, a := range aggs {
		out = append(out, YearCount{Year: a.Key[0].(int), Crashes: a.Value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

// CrashesBySeverity counts crashes per severity level, ordered worst-first
// by the level's own rank rather than by frequency.
func CrashesBySeverity(d *dataset.Dataset) ([]SeverityCount, error) {
	aggs, err := dataset.Aggregate(d.Crashes, []string{"severity"}, dataset.Count)
	if err != nil {
		return nil, err
	}
	out := make([]SeverityCount, 0, len(aggs))
	for _, a := range aggs {
		out = append(out, SeverityCount{Severity: a.Key[0].(models.Severity), Crashes: a.Value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Severity.Rank() < out[j].Severity.Rank() })
	return out, nil
}

// Fatalities reports the number of fatal crashes alongside the number of
// deaths, never substituting one for the other.
func Fatalities(d *dataset.Dataset) (FatalitySummary, error) {
	counts, err := dataset.Aggregate(d.Crashes, []string{"severity"}, dataset.Count)
	if err != nil {
		return FatalitySummary{}, err
	}
	sums, err := dataset.Aggregate(d.Crashes, []string{"severity"},
		dataset.SumBy(func(c models.Crash) int { return c.Fatalities }))
	if err != nil {
		return FatalitySummary{}, err
	}

	var s FatalitySummary
	for _, a := range counts {
		if a.Key[0] == models.SeverityFatal {
			s.FatalCrashes = a.Value
		}
	}
	for _, a := range sums {
		s.Fatalities += a.Value
	}
	return s, nil
}

// CrashesByCauseCategory counts crashes (not cause rows) per cause category.
// A crash with several causes in one category is deduplicated on
// (cause_category, id) first, so it counts once; the same crash still counts
// under each distinct category it appears in.
func CrashesByCauseCategory(d *dataset.Dataset) ([]OrderedCategory, error) {
	distinct, err := dataset.DistinctBy(d.Causes, "cause_category", "id")
	if err != nil {
		return nil, err
	}
	aggs, err := dataset.Aggregate(distinct, []string{"cause_category"}, dataset.Count)
	if err != nil {
		return nil, err
	}
	return RankByDescendingCount(aggs), nil
}

// VehiclesByType counts vehicle involvement per vehicle type. This counts
// vehicles, not crashes: a two-car crash contributes two rows under "Car".
func VehiclesByType(d *dataset.Dataset) ([]OrderedCategory, error) {
	aggs, err := dataset.Aggregate(d.Vehicles, []string{"vehicle"}, dataset.Count)
	if err != nil {
		return nil, err
	}
	return RankByDescendingCount(aggs), nil
}

// FatalCrashVehicles counts vehicle involvement in fatal crashes only: a
// fan-out join of fatal crashes against vehicles on id, counted by type.
func FatalCrashVehicles(d *dataset.Dataset) ([]OrderedCategory, error) {
	var fatal []models.Crash
	for _, c := range d.Crashes {
		if c.Severity == models.SeverityFatal {
			fatal = append(fatal, c)
		}
	}
	pairs, err := dataset.JoinOn(fatal, d.Vehicles, "id")
	if err != nil {
		return nil, err
	}
	involved := make([]models.Vehicle, 0, len(pairs))
	for _, p := range pairs {
		involved = append(involved, p.Right)
	}
	aggs, err := dataset.Aggregate(involved, []string{"vehicle"}, dataset.Count)
	if err != nil {
		return nil, err
	}
	return RankByDescendingCount(aggs), nil
}

// ObjectsStruckCounts counts struck objects by description, most frequent
// first.
func ObjectsStruckCounts(d *dataset.Dataset) ([]OrderedCategory, error) {
	aggs, err := dataset.Aggregate(d.ObjectsStruck, []string{"object"}, dataset.Count)
	if err != nil {
		return nil, err
	}
	return RankByDescendingCount(aggs), nil
}
