// Package vdom provides the virtual element model for vtree.
//
// A VNode describes one node of the desired UI: a native element, a text
// node, a fragment grouping several siblings without a wrapper, or a
// function component invocation. Nodes are plain data; the engine package
// owns every behaviour that touches state or the presentation tree.
//
// # Creating elements
//
//	vdom.CreateElement("ul", vdom.Props{"class": "todo"},
//	    vdom.Range(items, func(item string, i int) *vdom.VNode {
//	        return vdom.CreateElement("li", vdom.Props{"key": item}, item)
//	    }),
//	)
//
// Children are normalized on the way in: a single slice argument is
// flattened, nested slices become internal fragments, strings and numbers
// become text nodes, and nil or boolean children are dropped.
//
// # Matching
//
// Match pairs an old and a new list of siblings for reconciliation. Keyed
// children are paired by key and survive reordering; unkeyed children are
// paired positionally.
package vdom
