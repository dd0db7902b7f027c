package models

import "fmt"

// Severity is the derived classification of a crash outcome. It is never set
// independently: fatalities > 0 forces Fatal, and the serious/minor boundary
// is decided upstream. The exact threshold between "serious" and "minor"
// injuries is undefined in the source data, which is why nothing in this
// package guesses one (see dataset.SeverityPolicy).
type Severity string

const (
	SeverityFatal     Severity = "fatal"
	SeveritySerious   Severity = "serious"
	SeverityMinor     Severity = "minor"
	SeverityNonInjury Severity = "non-injury"
)

// severityRank orders severities worst-first for chart axes and sorting.
var severityRank = map[Severity]int{
	SeverityFatal:     0,
	SeveritySerious:   1,
	SeverityMinor:     2,
	SeverityNonInjury: 3,
}

// Valid reports whether s is one of the four known severity levels.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// Rank returns the ordering rank of s, worst outcome first (fatal == 0).
func (s Severity) Rank() int {
	r, ok := severityRank[s]
	if !ok {
		return len(severityRank)
	}
	return r
}

// Severities lists all levels worst-first.
func Severities() []Severity {
	return []Severity{SeverityFatal, SeveritySerious, SeverityMinor, SeverityNonInjury}
}

// ParseSeverity converts a raw source value into a Severity.
func ParseSeverity(raw string) (Severity, error) {
	s := Severity(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown severity %q", raw)
	}
	return s, nil
}
