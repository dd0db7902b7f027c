package dataset

import "fmt"

// LoadError reports a source table that is missing, malformed, or in breach
// of a structural invariant. Loading stops at the first failure; no partial
// dataset is ever returned.
type LoadError struct {
	Table string
	Row   int // 1-based data row, 0 when the failure is not row-specific
	Err   error
}

func (e *LoadError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("load %s: row %d: %v", e.Table, e.Row, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Table, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SchemaError reports a join or aggregation that referenced a column absent
// from the named table. The operation is abandoned outright; there is no
// best-effort result.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s has no column %q", e.Table, e.Column)
}
