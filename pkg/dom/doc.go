// Package dom defines the presentation tree the reconciler drives.
//
// The engine never touches a concrete UI toolkit. It talks to a Backend,
// a small set of synchronous mutations over opaque Node handles: create an
// element or text node, set or remove a property, set text, insert a child
// at an index, append, remove, and read child counts.
//
// HTML is the bundled backend. It keeps the tree as golang.org/x/net/html
// nodes, so a rendered container can be serialized with Render or queried
// with FindByText the way a browser test would query the document.
//
// Recorder wraps any Backend and records every mutation, which is how tests
// assert that an unchanged tree produces no work and how metrics count
// mutations per commit.
package dom
