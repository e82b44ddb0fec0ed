package dom

// OpKind identifies a recorded backend mutation.
type OpKind uint8

const (
	OpCreateElement OpKind = iota + 1
	OpCreateText
	OpSetProperty
	OpRemoveProperty
	OpSetText
	OpReplaceChildren
	OpInsert
	OpAppend
	OpRemove
)

// String returns the string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpCreateElement:
		return "create_element"
	case OpCreateText:
		return "create_text"
	case OpSetProperty:
		return "set_property"
	case OpRemoveProperty:
		return "remove_property"
	case OpSetText:
		return "set_text"
	case OpReplaceChildren:
		return "replace_children"
	case OpInsert:
		return "insert"
	case OpAppend:
		return "append"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Op is one recorded mutation.
type Op struct {
	Kind  OpKind
	Node  Node   // Target (or created) node
	Name  string // Tag, property name, or text
	Value any    // Property value
	Index int    // Insert position
}

// Recorder is a Backend decorator that records every mutation it forwards.
// Reads (ChildCount, IndexOf) are not recorded.
type Recorder struct {
	next Backend
	ops  []Op

	// OnOp, if set, is called after each mutation is applied.
	OnOp func(Op)
}

// NewRecorder wraps next.
func NewRecorder(next Backend) *Recorder {
	return &Recorder{next: next}
}

// Ops returns the mutations recorded since the last Reset.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Len returns the number of recorded mutations.
func (r *Recorder) Len() int {
	return len(r.ops)
}

// Count returns how many mutations of the given kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset forgets recorded mutations.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}

func (r *Recorder) record(op Op) {
	r.ops = append(r.ops, op)
	if r.OnOp != nil {
		r.OnOp(op)
	}
}

func (r *Recorder) CreateElement(tag string) Node {
	n := r.next.CreateElement(tag)
	r.record(Op{Kind: OpCreateElement, Node: n, Name: tag})
	return n
}

func (r *Recorder) CreateText(text string) Node {
	n := r.next.CreateText(text)
	r.record(Op{Kind: OpCreateText, Node: n, Name: text})
	return n
}

func (r *Recorder) SetProperty(n Node, name string, value any) {
	r.next.SetProperty(n, name, value)
	r.record(Op{Kind: OpSetProperty, Node: n, Name: name, Value: value})
}

func (r *Recorder) RemoveProperty(n Node, name string) {
	r.next.RemoveProperty(n, name)
	r.record(Op{Kind: OpRemoveProperty, Node: n, Name: name})
}

func (r *Recorder) SetText(n Node, text string) {
	r.next.SetText(n, text)
	r.record(Op{Kind: OpSetText, Node: n, Name: text})
}

func (r *Recorder) ReplaceChildren(parent Node, children ...Node) {
	r.next.ReplaceChildren(parent, children...)
	r.record(Op{Kind: OpReplaceChildren, Node: parent, Index: len(children)})
}

func (r *Recorder) InsertAt(parent, child Node, index int) error {
	if err := r.next.InsertAt(parent, child, index); err != nil {
		return err
	}
	r.record(Op{Kind: OpInsert, Node: child, Index: index})
	return nil
}

func (r *Recorder) Append(parent, child Node) {
	r.next.Append(parent, child)
	r.record(Op{Kind: OpAppend, Node: child})
}

func (r *Recorder) Remove(n Node) {
	r.next.Remove(n)
	r.record(Op{Kind: OpRemove, Node: n})
}

func (r *Recorder) ChildCount(parent Node) int {
	return r.next.ChildCount(parent)
}

func (r *Recorder) IndexOf(parent, child Node) int {
	return r.next.IndexOf(parent, child)
}
