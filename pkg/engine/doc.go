// Package engine keeps a presentation tree in sync with a virtual tree.
//
// An Engine owns three things: the instance registry (one record of hook
// state per mounted component), the render driver that runs component
// functions until their state settles, and the reconciler that diffs an old
// and a new virtual subtree into Backend mutations.
//
// Everything is synchronous and single-threaded. A state setter called from
// an event handler re-renders its component and applies the diff before it
// returns; a setter called by the component while it renders is absorbed by
// the render loop, so the backend only ever sees stabilized output.
//
//	func Counter(props vdom.Props) any {
//	    count, setCount := engine.UseState(0)
//	    onClick = func() { setCount(count + 1) }
//	    return vdom.CreateElement("p", nil, count)
//	}
//
//	root, _ := engine.Default().CreateRoot(container)
//	_ = root.Render(vdom.CreateElement(Counter, nil))
//
// Engines are not safe for concurrent use. Callers that drive one from
// several goroutines must serialize access themselves.
package engine
