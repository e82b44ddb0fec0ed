package vdom

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/vango-dev/vtree/pkg/dom"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <p>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Function component invocation
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Component is a function component. It receives its props, with the
// normalized children under "children", and returns anything Normalize
// accepts.
type Component func(props Props) any

// VNode is the virtual element.
type VNode struct {
	Kind     VKind
	Tag      string    // Element tag name, lower case
	Props    Props     // Attributes; components also get "children"
	Children []*VNode  // Element and fragment children
	Key      any       // Reconciliation key; nil matches positionally
	Text     string    // For KindText
	Comp     Component // For KindComponent
	Internal bool      // Fragment created by normalization, exempt from key checks

	// Set by the engine.
	DOMRef    dom.Node // Presentation node, for KindElement and KindText only
	DOMParent *VNode   // Nearest enclosing native element or root
	Identity  uint64   // Instance identity once a component is mounted

	compID uintptr
}

// HasKey reports whether the node carries a key.
func (v *VNode) HasKey() bool {
	return v != nil && v.Key != nil
}

// IsComponent reports whether v is a function component invocation.
func IsComponent(v *VNode) bool {
	return v != nil && v.Kind == KindComponent
}

// IsFragment reports whether v is a fragment.
func IsFragment(v *VNode) bool {
	return v != nil && v.Kind == KindFragment
}

// IsNativeNode reports whether v is a native element.
func IsNativeNode(v *VNode) bool {
	return v != nil && v.Kind == KindElement
}

// IsText reports whether v is a text node.
func IsText(v *VNode) bool {
	return v != nil && v.Kind == KindText
}

// SameType reports whether b can update a in place: same tag for
// elements, same function for components, and any pair of texts or of
// fragments. Props and keys are not considered.
func SameType(a, b *VNode) bool {
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindElement:
		return a.Tag == b.Tag
	case KindComponent:
		return a.ComponentID() == b.ComponentID()
	default:
		return true
	}
}

// ComponentID returns the identity of the component function, or 0.
func (v *VNode) ComponentID() uintptr {
	if v == nil || v.Kind != KindComponent {
		return 0
	}
	if v.compID == 0 && v.Comp != nil {
		v.compID = componentID(v.Comp)
	}
	return v.compID
}

// Name returns a short diagnostic name: <App>, <Fragment>, <p>, #text.
func Name(v *VNode) string {
	switch {
	case v == nil:
		return "<nil>"
	case v.Kind == KindComponent:
		return "<" + ComponentName(v.Comp) + ">"
	case v.Kind == KindFragment:
		return "<Fragment>"
	case v.Kind == KindElement:
		return "<" + v.Tag + ">"
	default:
		return "#text"
	}
}

// componentID uses the function's code pointer; Go funcs are not comparable.
// Closures created from the same literal share an identity.
func componentID(c Component) uintptr {
	return reflect.ValueOf(c).Pointer()
}

// ComponentName returns the unqualified name of a component function.
func ComponentName(c Component) string {
	if c == nil {
		return "nil"
	}
	fn := runtime.FuncForPC(componentID(c))
	if fn == nil {
		return "anonymous"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

// ComponentSource returns the file and line where c is defined.
func ComponentSource(c Component) (string, int) {
	if c == nil {
		return "", 0
	}
	fn := runtime.FuncForPC(componentID(c))
	if fn == nil {
		return "", 0
	}
	return fn.FileLine(fn.Entry())
}
