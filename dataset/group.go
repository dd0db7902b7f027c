package dataset

import (
	"fmt"
	"reflect"
	"strings"
)

// Key holds one group's key column values, in the order the key columns were
// requested. A nil entry means the row value was null: null keys form their
// own group rather than being dropped.
type Key []any

func (k Key) String() string {
	parts := make([]string, 0, len(k))
	for _, v := range k {
		if v == nil {
			parts = append(parts, "<null>")
			continue
		}
		parts = append(parts, fmt.Sprintf("%v", v))
	}
	return strings.Join(parts, "|")
}

// Group is one group-by bucket.
type Group[T any] struct {
	Key  Key
	Rows []T
}

// Aggregation is one reduced group.
type Aggregation[V any] struct {
	Key   Key
	Value V
}

// GroupBy partitions rows by the named key columns. Groups come back in
// first-seen row order, and rows keep their input order within a group. A
// key column missing from the row type returns a *SchemaError.
func GroupBy[T any](rows []T, keys ...string) ([]Group[T], error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("group-by requires at least one key column")
	}

	rel := relationOf(reflect.TypeOf((*T)(nil)).Elem())
	paths, err := rel.fieldPaths(keys)
	if err != nil {
		return nil, err
	}

	var out []Group[T]
	seen := make(map[string]int)
	for i := range rows {
		vals := keyValues(reflect.ValueOf(rows[i]), paths)
		ck := canonical(vals)
		gi, ok := seen[ck]
		if !ok {
			gi = len(out)
			seen[ck] = gi
			out = append(out, Group[T]{Key: Key(vals)})
		}
		out[gi].Rows = append(out[gi].Rows, rows[i])
	}
	return out, nil
}

// Aggregate groups rows by the named key columns and reduces each group.
// Reducers must be order-insensitive (count, sum, min, max) so that any
// partitioned evaluation folds to the same values as a single pass.
func Aggregate[T, V any](rows []T, keys []string, reduce func([]T) V) ([]Aggregation[V], error) {
	groups, err := GroupBy(rows, keys...)
	if err != nil {
		return nil, err
	}
	out := make([]Aggregation[V], 0, len(groups))
	for _, g := range groups {
		out = append(out, Aggregation[V]{Key: g.Key, Value: reduce(g.Rows)})
	}
	return out, nil
}

// DistinctBy keeps the first row for each distinct key tuple. It is the
// standard guard against fan-out double counting: deduplicate causes on
// (cause_category, id) before counting crashes per category.
func DistinctBy[T any](rows []T, keys ...string) ([]T, error) {
	groups, err := GroupBy(rows, keys...)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Rows[0])
	}
	return out, nil
}

// Count is the row-count reducer.
func Count[T any](rows []T) int { return len(rows) }

// SumBy builds a reducer summing f over a group.
func SumBy[T any](f func(T) int) func([]T) int {
	return func(rows []T) int {
		var n int
		for _, r := range rows {
			n += f(r)
		}
		return n
	}
}

// MinBy builds a reducer taking the minimum of f over a group.
func MinBy[T any](f func(T) int) func([]T) int {
	return func(rows []T) int {
		min := 0
		for i, r := range rows {
			if v := f(r); i == 0 || v < min {
				min = v
			}
		}
		return min
	}
}

// MaxBy builds a reducer taking the maximum of f over a group.
func MaxBy[T any](f func(T) int) func([]T) int {
	return func(rows []T) int {
		max := 0
		for i, r := range rows {
			if v := f(r); i == 0 || v > max {
				max = v
			}
		}
		return max
	}
}
