package engine

import (
	"fmt"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// diff reconciles old against current. Both sit at the same position among
// the virtual children of root, the nearest native ancestor.
//
// Every native or text node that survives is re-placed at the index its
// preceding siblings imply, so after each step the leading children of
// root.DOMRef are exactly the nodes processed so far.
func (e *Engine) diff(root, old, current *vdom.VNode) error {
	switch {
	case old == nil && current == nil:
		return nil
	case old == nil:
		return e.insert(root, current)
	case current == nil:
		e.detach(old)
		return nil
	case !vdom.SameType(old, current):
		e.detach(old)
		return e.insert(root, current)
	}

	switch current.Kind {
	case vdom.KindComponent:
		current.Identity = old.Identity
		current.DOMParent = old.DOMParent
		var prev *vdom.VNode
		if inst := e.registry.Get(old.Identity); inst != nil {
			prev = inst.Output
		}
		next := e.renderComponent(root, current)
		if multi(prev) != multi(next) && prev != nil && next != nil {
			if multi(next) {
				e.checkKeys(next)
			}
			return e.diffChildren(root, members(prev), members(next))
		}
		return e.diff(root, prev, next)

	case vdom.KindFragment:
		e.checkKeys(current)
		return e.diffChildren(root, old.Children, current.Children)

	case vdom.KindElement:
		current.DOMRef = old.DOMRef
		for _, ch := range vdom.DiffProps(old.Props, current.Props) {
			if ch.Removed {
				e.backend.RemoveProperty(current.DOMRef, ch.Name)
			} else {
				e.backend.SetProperty(current.DOMRef, ch.Name, ch.Value)
			}
		}
		if err := e.place(root, current); err != nil {
			return err
		}
		return e.diffChildren(current, old.Children, current.Children)

	default:
		current.DOMRef = old.DOMRef
		if old.Text != current.Text {
			e.backend.SetText(current.DOMRef, current.Text)
		}
		return e.place(root, current)
	}
}

// multi reports whether a component output stands for several siblings.
func multi(v *vdom.VNode) bool {
	return v != nil && v.Kind == vdom.KindFragment
}

// members returns the siblings an output stands for.
func members(v *vdom.VNode) []*vdom.VNode {
	if multi(v) {
		return v.Children
	}
	return []*vdom.VNode{v}
}

// diffChildren pairs two child lists and diffs each pair in order.
// Deletions go first: survivors then keep their relative order and rarely
// need to move.
func (e *Engine) diffChildren(root *vdom.VNode, old, next []*vdom.VNode) error {
	pairs, diags := vdom.Match(old, next)
	for _, d := range diags {
		e.report(d)
	}
	for _, p := range pairs {
		if p.New == nil {
			e.detach(p.Old)
		}
	}
	for _, p := range pairs {
		if p.New == nil {
			continue
		}
		if err := e.diff(root, p.Old, p.New); err != nil {
			return err
		}
	}
	return nil
}

// checkKeys warns about a user-built list with unkeyed members.
func (e *Engine) checkKeys(frag *vdom.VNode) {
	if frag.Internal || len(frag.Children) == 0 {
		return
	}
	if vdom.MissingKeys(frag.Children) {
		e.report(errors.New(errors.CodeMissingKey).
			WithDetailf("%d children, first is %s", len(frag.Children), vdom.Name(frag.Children[0])))
	}
}

// insert materializes v and inserts its nodes under root at v's position.
func (e *Engine) insert(root, v *vdom.VNode) error {
	nodes, err := e.materialize(root, v)
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		return nil
	}

	index := 0
	if e.backend.ChildCount(root.DOMRef) > 0 {
		index = e.insertionIndex(root, v)
	}
	for _, n := range nodes {
		if err := e.backend.InsertAt(root.DOMRef, n, index); err != nil {
			return fmt.Errorf("insert %s into %s: %w", vdom.Name(v), vdom.Name(root), err)
		}
		index++
	}
	return nil
}

// place moves an updated native or text node to its expected index.
// A node already in place costs no mutation.
func (e *Engine) place(root, v *vdom.VNode) error {
	want := e.insertionIndex(root, v)
	if e.backend.IndexOf(root.DOMRef, v.DOMRef) == want {
		return nil
	}
	if err := e.backend.InsertAt(root.DOMRef, v.DOMRef, want); err != nil {
		return fmt.Errorf("move %s within %s: %w", vdom.Name(v), vdom.Name(root), err)
	}
	return nil
}

// materialize creates the presentation nodes for v. Components are
// rendered on the way; native children are built under their parent.
func (e *Engine) materialize(root, v *vdom.VNode) ([]dom.Node, error) {
	if v == nil {
		return nil, nil
	}

	switch v.Kind {
	case vdom.KindComponent:
		return e.materialize(root, e.renderComponent(root, v))

	case vdom.KindFragment:
		e.checkKeys(v)
		var nodes []dom.Node
		for _, c := range v.Children {
			ns, err := e.materialize(root, c)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, ns...)
		}
		return nodes, nil

	case vdom.KindElement:
		n := e.backend.CreateElement(v.Tag)
		for _, ch := range vdom.DiffProps(nil, v.Props) {
			e.backend.SetProperty(n, ch.Name, ch.Value)
		}
		v.DOMRef = n

		var kids []dom.Node
		for _, c := range v.Children {
			ns, err := e.materialize(v, c)
			if err != nil {
				return nil, err
			}
			kids = append(kids, ns...)
		}
		if len(kids) > 0 {
			e.backend.ReplaceChildren(n, kids...)
		}
		return []dom.Node{n}, nil

	default:
		v.DOMRef = e.backend.CreateText(v.Text)
		return []dom.Node{v.DOMRef}, nil
	}
}

// insertionIndex returns the number of presentation nodes that precede
// target among root's children. Components and fragments contribute all
// their nodes, and the search descends into them when target is inside.
func (e *Engine) insertionIndex(root, target *vdom.VNode) int {
	if n, ok := e.nodesBefore(root.Children, target); ok {
		return n
	}
	return e.backend.ChildCount(root.DOMRef)
}

func (e *Engine) nodesBefore(list []*vdom.VNode, target *vdom.VNode) (int, bool) {
	n := 0
	for _, c := range list {
		if c == nil {
			continue
		}
		if c == target {
			return n, true
		}
		if c.Kind == vdom.KindComponent || c.Kind == vdom.KindFragment {
			if inner, ok := e.nodesBefore(e.expand(c), target); ok {
				return n + inner, true
			}
		}
		n += e.size(c)
	}
	return n, false
}

// expand returns the virtual children a component or fragment stands for.
func (e *Engine) expand(v *vdom.VNode) []*vdom.VNode {
	switch v.Kind {
	case vdom.KindComponent:
		if inst := e.registry.Get(v.Identity); inst != nil && inst.Output != nil {
			return []*vdom.VNode{inst.Output}
		}
		return nil
	case vdom.KindFragment:
		return v.Children
	default:
		return nil
	}
}

// size returns the number of presentation nodes v occupies.
func (e *Engine) size(v *vdom.VNode) int {
	switch v.Kind {
	case vdom.KindElement, vdom.KindText:
		if v.DOMRef == nil {
			return 0
		}
		return 1
	default:
		n := 0
		for _, c := range e.expand(v) {
			if c != nil {
				n += e.size(c)
			}
		}
		return n
	}
}

// detach removes every presentation node under v and releases the
// component instances it contained.
func (e *Engine) detach(v *vdom.VNode) {
	if v == nil {
		return
	}
	switch v.Kind {
	case vdom.KindComponent:
		inst := e.registry.Get(v.Identity)
		if inst == nil {
			return
		}
		e.detach(inst.Output)
		e.release(inst)
	case vdom.KindFragment:
		for _, c := range v.Children {
			e.detach(c)
		}
	default:
		if v.DOMRef != nil {
			e.backend.Remove(v.DOMRef)
		}
		e.releaseWithin(v.Children)
	}
}

// releaseWithin releases the instances below nodes whose presentation
// nodes left together with a removed ancestor.
func (e *Engine) releaseWithin(nodes []*vdom.VNode) {
	for _, c := range nodes {
		if c == nil {
			continue
		}
		if c.Kind == vdom.KindComponent {
			if inst := e.registry.Get(c.Identity); inst != nil {
				if inst.Output != nil {
					e.releaseWithin([]*vdom.VNode{inst.Output})
				}
				e.release(inst)
			}
			continue
		}
		e.releaseWithin(c.Children)
	}
}

// release marks inst as out of the tree. Its setters keep storing values
// but never render again. With DisposeOnUnmount the record is dropped too.
func (e *Engine) release(inst *Instance) {
	inst.unmounted = true
	if e.cfg.DisposeOnUnmount {
		e.dispose(inst)
	}
}

func (e *Engine) dispose(inst *Instance) {
	inst.disposed = true
	inst.slots = nil
	e.registry.Delete(inst.ID)
}
