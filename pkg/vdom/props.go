package vdom

import (
	"reflect"
	"sort"
)

// Props holds element attributes or component arguments.
type Props map[string]any

// Children returns the normalized children passed to a component.
func (p Props) Children() []*VNode {
	children, _ := p["children"].([]*VNode)
	return children
}

// String returns the named prop as a string, or "".
func (p Props) String(name string) string {
	s, _ := p[name].(string)
	return s
}

// Int returns the named prop as an int, or 0.
func (p Props) Int(name string) int {
	n, _ := p[name].(int)
	return n
}

// PropChange is one property update computed by DiffProps.
type PropChange struct {
	Name    string
	Value   any
	Removed bool
}

// DiffProps returns the property changes that turn prev into next, sorted
// by name. The reserved "key" and "children" entries are skipped.
func DiffProps(prev, next Props) []PropChange {
	var changes []PropChange

	for name, prevVal := range prev {
		if reserved(name) {
			continue
		}
		nextVal, exists := next[name]
		if !exists {
			changes = append(changes, PropChange{Name: name, Removed: true})
		} else if !PropsEqual(prevVal, nextVal) {
			changes = append(changes, PropChange{Name: name, Value: nextVal})
		}
	}

	for name, nextVal := range next {
		if reserved(name) {
			continue
		}
		if _, exists := prev[name]; !exists {
			changes = append(changes, PropChange{Name: name, Value: nextVal})
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Name < changes[j].Name })
	return changes
}

func reserved(name string) bool {
	return name == "key" || name == "children"
}

// PropsEqual compares two prop values for equality.
func PropsEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}
