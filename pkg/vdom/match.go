package vdom

import (
	"fmt"

	"github.com/vango-dev/vtree/internal/errors"
)

// Pair is one reconciliation step. Old is nil for an insert, New is nil
// for a deletion.
type Pair struct {
	Old *VNode
	New *VNode
}

// Match pairs old and next siblings in the order the pairs must be applied.
//
// Keyed children are paired with the remaining old child carrying the same
// key, or inserted. Unkeyed children take the oldest remaining old child,
// whatever its key. Old children left over are appended as deletions after
// every new child, so they never shift the indices of earlier inserts.
//
// Match is pure: the key diagnostics it finds are returned, not logged.
func Match(old, next []*VNode) ([]Pair, []*errors.Error) {
	unmatched := make([]*VNode, len(old))
	copy(unmatched, old)
	pairs := make([]Pair, 0, len(next)+len(old))
	var diags []*errors.Error

	keyed := 0
	for _, c := range next {
		if c.HasKey() {
			keyed++
		}
	}
	if keyed != 0 && keyed != len(next) {
		diags = append(diags, errors.New(errors.CodePartialKey).
			WithDetailf("%d of %d elements in the list have a key", keyed, len(next)))
	}

	seen := make(map[any]bool, keyed)
	for _, c := range next {
		if !c.HasKey() {
			var o *VNode
			if len(unmatched) > 0 {
				o = unmatched[0]
				unmatched = unmatched[1:]
			}
			pairs = append(pairs, Pair{Old: o, New: c})
			continue
		}

		if seen[c.Key] {
			diags = append(diags, errors.New(errors.CodeDuplicateKey).
				WithComponent(Name(c)).
				WithDetail(fmt.Sprintf("Found duplicate key '%v' on %s element.", c.Key, Name(c))))
		}
		seen[c.Key] = true

		match := -1
		for i, o := range unmatched {
			if o.HasKey() && o.Key == c.Key {
				match = i
				break
			}
		}
		if match == -1 {
			pairs = append(pairs, Pair{New: c})
			continue
		}
		pairs = append(pairs, Pair{Old: unmatched[match], New: c})
		unmatched = append(unmatched[:match:match], unmatched[match+1:]...)
	}

	for _, o := range unmatched {
		pairs = append(pairs, Pair{Old: o})
	}
	return pairs, diags
}

// MissingKeys reports whether a non-empty list has a child without a key.
func MissingKeys(children []*VNode) bool {
	for _, c := range children {
		if !c.HasKey() {
			return true
		}
	}
	return false
}
