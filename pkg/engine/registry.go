package engine

import "github.com/vango-dev/vtree/pkg/vdom"

// slot is one state cell. set distinguishes "never initialized" from a
// stored zero value.
type slot struct {
	value any
	set   bool
}

// Instance is the persistent record of one mounted component.
type Instance struct {
	// ID is the identity stored on the owning VNode.
	ID uint64

	// Owner is the component element currently associated with the instance.
	Owner *vdom.VNode

	// Output is the last stabilized render result.
	Output *vdom.VNode

	// HookCount is the number of hook calls observed on the previous render.
	HookCount int

	slots     []slot
	rendered  bool
	unmounted bool
	disposed  bool
	engine    *Engine
}

// Slots returns the number of allocated state slots.
func (i *Instance) Slots() int {
	return len(i.slots)
}

// Disposed reports whether the instance was dropped from the registry.
func (i *Instance) Disposed() bool {
	return i.disposed
}

// Mounted reports whether the instance's output is still in the tree.
func (i *Instance) Mounted() bool {
	return i.rendered && !i.unmounted
}

// Name returns the diagnostic name of the owning component.
func (i *Instance) Name() string {
	return vdom.Name(i.Owner)
}

// Registry maps instance identities to their records.
type Registry struct {
	instances map[uint64]*Instance
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{instances: make(map[uint64]*Instance)}
}

// Get returns the instance for id, or nil.
func (r *Registry) Get(id uint64) *Instance {
	if id == 0 {
		return nil
	}
	return r.instances[id]
}

// Create allocates a record for owner and stamps owner with its identity.
func (r *Registry) Create(owner *vdom.VNode) *Instance {
	inst := &Instance{ID: nextID(), Owner: owner}
	owner.Identity = inst.ID
	r.instances[inst.ID] = inst
	return inst
}

// Delete removes the record for id.
func (r *Registry) Delete(id uint64) {
	delete(r.instances, id)
}

// Len returns the number of live records.
func (r *Registry) Len() int {
	return len(r.instances)
}

// Clear drops every record. Meant for resetting state between tests.
func (r *Registry) Clear() {
	for id, inst := range r.instances {
		inst.disposed = true
		delete(r.instances, id)
	}
}
