// Package dataset holds the four New Zealand crash-statistics relations and
// the join/aggregation contract every analysis goes through. The tables are
// loaded once from static CSV files, validated against their structural
// invariants, and never mutated afterwards; every operation is a pure
// function of its inputs, so any number of readers may share a Dataset.
package dataset

import (
	"fmt"

	"github.com/padraicbc/nzcrash/models"
)

// Dataset is the immutable in-memory crash dataset: one parent relation and
// three child relations fanning out on crash id.
type Dataset struct {
	Crashes       []models.Crash
	Causes        []models.Cause
	Vehicles      []models.Vehicle
	ObjectsStruck []models.ObjectStruck
}

// SeverityPolicy decides the severity a crash ought to have from the
// information it carries. ok == false means the policy abstains: it cannot
// classify that crash. The boundary between "serious" and "minor" injuries
// is undefined upstream, so no policy in this package encodes a guessed
// threshold; callers with an actual policy inject their own.
type SeverityPolicy func(c models.Crash) (severity models.Severity, ok bool)

// FatalRulePolicy asserts only the unconditional rule: any deaths make a
// crash fatal. It abstains for every crash without fatalities.
func FatalRulePolicy(c models.Crash) (models.Severity, bool) {
	if c.Fatalities > 0 {
		return models.SeverityFatal, true
	}
	return "", false
}

// CheckSeverity re-derives each crash's severity under the given policy and
// reports the first crash whose recorded severity disagrees. Crashes the
// policy abstains on are skipped.
func (d *Dataset) CheckSeverity(policy SeverityPolicy) error {
	for _, c := range d.Crashes {
		want, ok := policy(c)
		if !ok {
			continue
		}
		if c.Severity != want {
			return fmt.Errorf("crash %d: severity is %q, policy derives %q", c.ID, c.Severity, want)
		}
	}
	return nil
}
