package vdom

import (
	"fmt"
	"strings"

	"github.com/vango-dev/vtree/internal/errors"
)

// CreateElement builds a VNode from a tag or a component.
//
// typeOrTag must be a tag string, a Component, or a func(Props) any;
// anything else panics with an InvalidElementType error. The "key" prop
// is moved to VNode.Key. Children are normalized as described in the
// package documentation.
func CreateElement(typeOrTag any, props Props, children ...any) *VNode {
	p := make(Props, len(props)+1)
	for name, value := range props {
		if !reserved(name) {
			p[name] = value
		}
	}
	key := normalizeKey(props["key"])
	kids := normalizeChildren(children)

	if tag, ok := typeOrTag.(string); ok {
		if tag == "" {
			panic(errors.New(errors.CodeInvalidElementType).WithDetail("empty tag name"))
		}
		return &VNode{
			Kind:     KindElement,
			Tag:      strings.ToLower(tag),
			Props:    p,
			Children: kids,
			Key:      key,
		}
	}

	comp, ok := componentOf(typeOrTag)
	if !ok {
		panic(errors.New(errors.CodeInvalidElementType).
			WithDetailf("element types must be a tag string or a component function, but got %T", typeOrTag))
	}
	p["children"] = kids
	return &VNode{
		Kind:     KindComponent,
		Comp:     comp,
		Props:    p,
		Children: kids,
		Key:      key,
		compID:   componentID(comp),
	}
}

// Fragment renders its children without a wrapper element. Use it as a
// component: CreateElement(vdom.Fragment, vdom.Props{"key": id}, a, b).
func Fragment(props Props) any {
	return &VNode{Kind: KindFragment, Children: props.Children()}
}

// Normalize turns a component's return value into at most one node.
// A returned slice becomes a fragment that is subject to key checks.
func Normalize(result any) *VNode {
	if items, ok := sliceOf(result); ok {
		return &VNode{Kind: KindFragment, Children: normalizeList(items)}
	}
	return toNode(result)
}

func componentOf(v any) (Component, bool) {
	switch fn := v.(type) {
	case Component:
		return fn, fn != nil
	case func(Props) any:
		return Component(fn), fn != nil
	default:
		return nil, false
	}
}

func normalizeChildren(children []any) []*VNode {
	for len(children) == 1 {
		items, ok := sliceOf(children[0])
		if !ok {
			break
		}
		children = items
	}
	return normalizeList(children)
}

func normalizeList(items []any) []*VNode {
	out := make([]*VNode, 0, len(items))
	for _, item := range items {
		if n := toNode(item); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// toNode converts one child. Nested slices become internal fragments.
func toNode(v any) *VNode {
	if items, ok := sliceOf(v); ok {
		return &VNode{Kind: KindFragment, Children: normalizeList(items), Internal: true}
	}
	switch x := v.(type) {
	case nil, bool:
		return nil
	case *VNode:
		return x
	case string:
		return Text(x)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return Text(fmt.Sprint(x))
	case fmt.Stringer:
		return Text(x.String())
	default:
		panic(errors.New(errors.CodeInvalidChild).WithDetailf("unsupported child of type %T", v))
	}
}

func sliceOf(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []*VNode:
		items := make([]any, len(s))
		for i, n := range s {
			items[i] = n
		}
		return items, true
	case []string:
		items := make([]any, len(s))
		for i, text := range s {
			items[i] = text
		}
		return items, true
	default:
		return nil, false
	}
}

func normalizeKey(v any) any {
	switch k := v.(type) {
	case nil:
		return nil
	case string, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return k
	default:
		return fmt.Sprint(k)
	}
}
