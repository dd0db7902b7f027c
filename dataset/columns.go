package dataset

import (
	"fmt"
	"reflect"
	"strings"
)

// Join and group keys are addressed by column name, the way the upstream
// analyses address them, rather than by Go field. Column names come from the
// same bun struct tags the export path uses, so the in-memory contract and
// the SQL rendition of a table can never disagree about naming.

const nullKey = "\x00null"

// relation describes the column layout of a row struct.
type relation struct {
	table string
	cols  map[string][]int // column name -> struct field index path
}

func relationOf(t reflect.Type) relation {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	rel := relation{
		table: strings.ToLower(t.Name()),
		cols:  make(map[string][]int, t.NumField()),
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("bun")
		if f.Anonymous && f.Type.Name() == "BaseModel" {
			// bun:"table:crashes,alias:cr"
			for _, part := range strings.Split(tag, ",") {
				if name, ok := strings.CutPrefix(part, "table:"); ok {
					rel.table = name
				}
			}
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		rel.cols[name] = f.Index
	}
	return rel
}

// fieldPaths resolves key columns to field index paths, or a *SchemaError
// for the first key the relation does not carry.
func (r relation) fieldPaths(keys []string) ([][]int, error) {
	paths := make([][]int, 0, len(keys))
	for _, k := range keys {
		idx, ok := r.cols[k]
		if !ok {
			return nil, &SchemaError{Table: r.table, Column: k}
		}
		paths = append(paths, idx)
	}
	return paths, nil
}

// keyValues extracts the raw key column values from one row. A nil pointer
// column yields a nil entry.
func keyValues(row reflect.Value, paths [][]int) []any {
	for row.Kind() == reflect.Pointer {
		row = row.Elem()
	}
	vals := make([]any, 0, len(paths))
	for _, p := range paths {
		f := row.FieldByIndex(p)
		if f.Kind() == reflect.Pointer {
			if f.IsNil() {
				vals = append(vals, nil)
				continue
			}
			f = f.Elem()
		}
		vals = append(vals, f.Interface())
	}
	return vals
}

// canonical renders key values into a comparable string. Nulls render as a
// reserved marker so they form their own group instead of colliding with
// empty strings.
func canonical(vals []any) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		if v == nil {
			parts = append(parts, nullKey)
			continue
		}
		parts = append(parts, fmt.Sprintf("%v", v))
	}
	return strings.Join(parts, "\x1f")
}

// hasNull reports whether any key value is null. Inner joins follow SQL
// semantics: a null key never matches anything.
func hasNull(vals []any) bool {
	for _, v := range vals {
		if v == nil {
			return true
		}
	}
	return false
}
