package dataset

import (
	"errors"
	"testing"

	"github.com/padraicbc/nzcrash/models"
)

func testCauses() []models.Cause {
	return []models.Cause{
		{ID: 1, VehicleID: intp(1), CauseCategory: "Driver", CauseSubcategory: "Alcohol or drugs", Cause: "Alcohol"},
		{ID: 1, VehicleID: intp(2), CauseCategory: "Driver", CauseSubcategory: "Too fast for conditions", Cause: "Speeding"},
		{ID: 2, VehicleID: nil, CauseCategory: "Environment", CauseSubcategory: "Weather", Cause: "Fog"},
		{ID: 3, VehicleID: intp(1), CauseCategory: "Driver", CauseSubcategory: "Alcohol or drugs", Cause: "Alcohol"},
		{ID: 3, VehicleID: nil, CauseCategory: "Environment", CauseSubcategory: "Weather", Cause: "Ice"},
	}
}

func TestGroupByKeepsNullGroups(t *testing.T) {
	groups, err := GroupBy(testCauses(), "vehicle_id")
	if err != nil {
		t.Fatalf("GroupBy: %v", err)
	}

	var nullRows int
	total := 0
	for _, g := range groups {
		total += len(g.Rows)
		if g.Key[0] == nil {
			nullRows = len(g.Rows)
		}
	}
	if total != 5 {
		t.Errorf("grouping dropped rows: %d of 5 grouped", total)
	}
	if nullRows != 2 {
		t.Errorf("null vehicle_id group has %d rows, want 2", nullRows)
	}
}

func TestGroupByFirstSeenOrder(t *testing.T) {
	groups, err := GroupBy(testCauses(), "cause_category")
	if err != nil {
		t.Fatalf("GroupBy: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Key[0] != "Driver" || groups[1].Key[0] != "Environment" {
		t.Errorf("groups out of first-seen order: %v, %v", groups[0].Key, groups[1].Key)
	}
}

func TestDistinctByGuardsDoubleCounting(t *testing.T) {
	// Crash 1 has two Driver causes: category counts must report one crash
	// for Driver, not two.
	distinct, err := DistinctBy(testCauses(), "cause_category", "id")
	if err != nil {
		t.Fatalf("DistinctBy: %v", err)
	}
	aggs, err := Aggregate(distinct, []string{"cause_category"}, Count)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	counts := map[string]int{}
	for _, a := range aggs {
		counts[a.Key.String()] = a.Value
	}
	if counts["Driver"] != 2 {
		t.Errorf("Driver crashes = %d, want 2 (crashes 1 and 3, crash 1 once)", counts["Driver"])
	}
	if counts["Environment"] != 2 {
		t.Errorf("Environment crashes = %d, want 2", counts["Environment"])
	}

	// Without the guard the fan-out leaks into the count.
	naive, err := Aggregate(testCauses(), []string{"cause_category"}, Count)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	for _, a := range naive {
		if a.Key.String() == "Driver" && a.Value != 3 {
			t.Errorf("naive Driver rows = %d, want 3", a.Value)
		}
	}
}

type categoryCount struct {
	Category string `bun:"cause_category"`
	N        int    `bun:"n"`
}

func TestAggregateCountIdempotent(t *testing.T) {
	aggs, err := Aggregate(testCauses(), []string{"cause_category"}, Count)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	// Re-aggregating an already aggregated count by the same keys with an
	// identity reducer changes nothing.
	rows := make([]categoryCount, 0, len(aggs))
	for _, a := range aggs {
		rows = append(rows, categoryCount{Category: a.Key[0].(string), N: a.Value})
	}
	again, err := Aggregate(rows, []string{"cause_category"}, func(rs []categoryCount) int { return rs[0].N })
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	if len(again) != len(aggs) {
		t.Fatalf("re-aggregation changed group count: %d -> %d", len(aggs), len(again))
	}
	for i := range aggs {
		if again[i].Key.String() != aggs[i].Key.String() || again[i].Value != aggs[i].Value {
			t.Errorf("group %d changed: %v=%d -> %v=%d",
				i, aggs[i].Key, aggs[i].Value, again[i].Key, again[i].Value)
		}
	}
}

func TestReducers(t *testing.T) {
	crashes := testCrashes()

	aggs, err := Aggregate(crashes, []string{"severity"},
		SumBy(func(c models.Crash) int { return c.Fatalities }))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	sums := map[string]int{}
	for _, a := range aggs {
		sums[a.Key.String()] = a.Value
	}
	if sums["fatal"] != 4 {
		t.Errorf("fatal fatalities sum = %d, want 4", sums["fatal"])
	}

	fatalities := func(c models.Crash) int { return c.Fatalities }
	if got := MinBy(fatalities)(crashes); got != 0 {
		t.Errorf("min fatalities = %d, want 0", got)
	}
	if got := MaxBy(fatalities)(crashes); got != 3 {
		t.Errorf("max fatalities = %d, want 3", got)
	}
	if got := Count(crashes); got != 4 {
		t.Errorf("count = %d, want 4", got)
	}
}

func TestGroupByMissingColumn(t *testing.T) {
	_, err := GroupBy(testCauses(), "category")
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if se.Table != "causes" || se.Column != "category" {
		t.Errorf("got %s.%s, want causes.category", se.Table, se.Column)
	}
}
