package engine

import (
	"math"
	"reflect"

	"github.com/vango-dev/vtree/internal/errors"
)

// UseState returns the current value of the calling component's next state
// slot and a setter for it. On the first render the slot holds initial.
//
// UseState must be called unconditionally from a component body; calling it
// anywhere else panics with a V003 error.
//
// The setter ignores values identical to the stored one. Called while the
// owning component renders, it schedules another pass of the render loop.
// Called from anywhere else, it re-renders the component and applies the
// result to the backend before returning.
func UseState[T any](initial T) (T, func(T)) {
	f := active
	if f == nil {
		panic(errors.New(errors.CodeInvalidHookCall).
			WithDetail("UseState was called outside of a component render."))
	}

	inst := f.inst
	idx := f.hook
	f.hook++

	for len(inst.slots) <= idx {
		inst.slots = append(inst.slots, slot{})
	}
	if !inst.slots[idx].set {
		inst.slots[idx] = slot{value: initial, set: true}
	}

	value, ok := slotValue[T](inst.slots[idx].value)
	if !ok {
		f.engine.report(errors.New(errors.CodeHookCountMismatch).
			WithComponent(inst.Name()).
			WithDetailf("hook %d held a %T where a %T was expected; the slot was reset",
				idx, inst.slots[idx].value, initial))
		inst.slots[idx] = slot{value: initial, set: true}
		value = initial
	}

	e := f.engine
	return value, func(next T) {
		e.setState(inst, idx, next)
	}
}

func slotValue[T any](v any) (T, bool) {
	if v == nil {
		var zero T
		return zero, true
	}
	t, ok := v.(T)
	return t, ok
}

// setState stores value in slot idx of inst and schedules the re-render.
func (e *Engine) setState(inst *Instance, idx int, value any) {
	if inst.disposed {
		e.report(errors.New(errors.CodeSetAfterDisposal).WithComponent(inst.Name()))
		return
	}
	for len(inst.slots) <= idx {
		inst.slots = append(inst.slots, slot{})
	}
	if inst.slots[idx].set && sameValue(inst.slots[idx].value, value) {
		return
	}

	f := active
	if f != nil && f.inst != inst {
		e.report(errors.New(errors.CodeCrossComponentSet).
			WithComponent(inst.Name()).
			WithDetailf("set while %s was rendering; the update was dropped", f.inst.Name()))
		return
	}

	inst.slots[idx] = slot{value: value, set: true}
	if inst.unmounted {
		return
	}
	if f != nil {
		f.changed = true
		return
	}
	if err := e.update(inst); err != nil {
		e.fail(inst, err)
	}
}

// sameValue reports whether b is indistinguishable from a as a state value.
// Comparable values use ==, NaN equals NaN, and slices, maps, funcs and
// channels compare by reference.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Float32, reflect.Float64:
		x, y := va.Float(), vb.Float()
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	}
	if !va.Comparable() {
		return false
	}
	return va.Equal(vb)
}
