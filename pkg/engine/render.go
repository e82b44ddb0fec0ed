package engine

import (
	"context"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// renderComponent runs v's component function until its state settles and
// returns the normalized output. domParent is the nearest native ancestor
// the output will be placed under.
//
// The instance is created on first render. A setter called by the
// component itself during the render causes another pass; after
// MaxRerenders extra passes the loop gives up and keeps the last output.
func (e *Engine) renderComponent(domParent, v *vdom.VNode) *vdom.VNode {
	v.DOMParent = domParent

	inst := e.registry.Get(v.Identity)
	if inst == nil {
		inst = e.registry.Create(v)
		inst.engine = e
	}
	inst.Owner = v

	f := &frame{engine: e, inst: inst}
	defer enter(f)()

	var out *vdom.VNode
	iterations := 0
	for {
		f.hook = 0
		f.changed = false
		out = vdom.Normalize(v.Comp(v.Props))
		iterations++

		if inst.rendered && f.hook != inst.HookCount {
			e.report(e.componentError(errors.CodeHookCountMismatch, v).
				WithDetailf("%d hooks on the previous render, %d on this one", inst.HookCount, f.hook))
			if e.cfg.HookMismatch == HookMismatchReset {
				inst.slots = nil
			}
		}
		inst.HookCount = f.hook
		inst.rendered = true

		if !f.changed {
			break
		}
		if iterations > e.cfg.MaxRerenders {
			e.report(e.componentError(errors.CodeExcessiveRerender, v).
				WithDetailf("gave up after %d renders", iterations))
			break
		}
	}

	inst.Output = out
	e.observer.ComponentRendered(vdom.Name(v), iterations)
	return out
}

// componentError builds a diagnostic pointing at v's component function.
func (e *Engine) componentError(code string, v *vdom.VNode) *errors.Error {
	d := errors.New(code).WithComponent(vdom.Name(v))
	if file, line := vdom.ComponentSource(v.Comp); file != "" {
		d.Location = &errors.Location{File: file, Line: line}
	}
	return d
}

// update re-renders inst in place after a state change outside render.
func (e *Engine) update(inst *Instance) error {
	owner := inst.Owner
	return e.commit(context.Background(), "update", vdom.Name(owner), func() error {
		prev := inst.Output
		next := e.renderComponent(owner.DOMParent, owner)
		return e.diff(owner.DOMParent, prev, next)
	})
}
