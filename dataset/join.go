package dataset

import (
	"fmt"
	"reflect"
)

// Pair is one row of a join result.
type Pair[L, R any] struct {
	Left  L
	Right R
}

// JoinOn inner-joins left and right on the named key columns. The result has
// the full relational fan-out: each matching key group contributes
// left-group-size x right-group-size pairs, and nothing is deduplicated —
// callers that count crashes over a fanned-out child table must group or
// deduplicate explicitly. Rows with a null key column never match. Output
// order is left order, then right order within a key.
func JoinOn[L, R any](left []L, right []R, keys ...string) ([]Pair[L, R], error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("join requires at least one key column")
	}

	lrel := relationOf(reflect.TypeOf((*L)(nil)).Elem())
	lpaths, err := lrel.fieldPaths(keys)
	if err != nil {
		return nil, err
	}
	rrel := relationOf(reflect.TypeOf((*R)(nil)).Elem())
	rpaths, err := rrel.fieldPaths(keys)
	if err != nil {
		return nil, err
	}

	index := make(map[string][]int, len(right))
	for i := range right {
		vals := keyValues(reflect.ValueOf(right[i]), rpaths)
		if hasNull(vals) {
			continue
		}
		k := canonical(vals)
		index[k] = append(index[k], i)
	}

	var out []Pair[L, R]
	for i := range left {
		vals := keyValues(reflect.ValueOf(left[i]), lpaths)
		if hasNull(vals) {
			continue
		}
		for _, ri := range index[canonical(vals)] {
			out = append(out, Pair[L, R]{Left: left[i], Right: right[ri]})
		}
	}
	return out, nil
}
