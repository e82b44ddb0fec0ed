// Package vtree is the public API of the vtree rendering engine.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/vtree"
//
// Usage:
//
//	func Counter(props vtree.Props) any {
//	    count, setCount := vtree.UseState(0)
//	    if count < 3 {
//	        setCount(count + 1)
//	    }
//	    return vtree.H("p", nil, "Clicked ", count, " times")
//	}
//
//	root, err := vtree.CreateRoot(container)
//	if err != nil { ... }
//	err = root.Render(vtree.H(Counter, nil))
//
// The functions here use the process-wide engine returned by
// engine.Default(). Create an engine with engine.New to pick another
// backend, logger or observer.
package vtree

import (
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/engine"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// =============================================================================
// Element model
// =============================================================================

// VNode is a virtual element.
type VNode = vdom.VNode

// Props holds element attributes and component arguments.
type Props = vdom.Props

// Component is a function component.
type Component = vdom.Component

// CreateElement builds a virtual element. typeOrTag is a tag name or a
// Component; children may be elements, slices of elements, strings,
// numbers, booleans or nil.
func CreateElement(typeOrTag any, props Props, children ...any) *VNode {
	return vdom.CreateElement(typeOrTag, props, children...)
}

// H is shorthand for CreateElement.
func H(typeOrTag any, props Props, children ...any) *VNode {
	return vdom.CreateElement(typeOrTag, props, children...)
}

// Fragment groups its children without a wrapper element.
//
//	vtree.H(vtree.Fragment, nil, a, b)
func Fragment(props Props) any {
	return vdom.Fragment(props)
}

// Text creates a text node.
func Text(s string) *VNode {
	return vdom.Text(s)
}

// =============================================================================
// Rendering
// =============================================================================

// Root binds a virtual tree to a presentation container.
type Root = engine.Root

// CreateRoot binds container to the default engine.
// It returns a V004 error when container is nil.
func CreateRoot(container dom.Node) (*Root, error) {
	return engine.Default().CreateRoot(container)
}

// UseState returns the value of the calling component's next state slot and
// its setter. It panics when called outside a component render.
func UseState[T any](initial T) (T, func(T)) {
	return engine.UseState(initial)
}
