package dom

// Node is an opaque handle to a presentation node owned by a Backend.
type Node interface{}

// Backend is the presentation tree consumed by the reconciler.
//
// All operations are synchronous. InsertAt is the only mutation that can
// fail; an attached child passed to InsertAt is detached first and the
// index is interpreted after the detach.
type Backend interface {
	CreateElement(tag string) Node
	CreateText(text string) Node
	SetProperty(n Node, name string, value any)
	RemoveProperty(n Node, name string)
	SetText(n Node, text string)
	ReplaceChildren(parent Node, children ...Node)
	InsertAt(parent, child Node, index int) error
	Append(parent, child Node)
	Remove(n Node)
	ChildCount(parent Node) int
	// IndexOf returns the position of child under parent, or -1.
	IndexOf(parent, child Node) int
}
