package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf is Text with fmt.Sprintf formatting.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// If returns node when cond holds. A nil child is dropped by CreateElement,
// so If can sit inline in a children list.
func If(cond bool, node *VNode) *VNode {
	return IfElse(cond, node, nil)
}

// IfElse picks one of two nodes.
func IfElse(cond bool, then, otherwise *VNode) *VNode {
	if cond {
		return then
	}
	return otherwise
}

// Range maps items to nodes, skipping nil results. Give each node a key
// when the list can reorder.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	return collect(len(items), func(i int) *VNode { return fn(items[i], i) })
}

// Repeat builds n nodes from their index.
func Repeat(n int, fn func(i int) *VNode) []*VNode {
	return collect(n, fn)
}

func collect(n int, fn func(i int) *VNode) []*VNode {
	if n <= 0 {
		return nil
	}
	out := make([]*VNode, 0, n)
	for i := 0; i < n; i++ {
		if node := fn(i); node != nil {
			out = append(out, node)
		}
	}
	return out
}
