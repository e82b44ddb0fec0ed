package vdom

import (
	stderrors "errors"
	"testing"

	"github.com/vango-dev/vtree/internal/errors"
)

type label string

func (l label) String() string { return "label:" + string(l) }

func TestCreateElementNative(t *testing.T) {
	props := Props{"class": "card", "key": "c1"}
	n := CreateElement("DIV", props, "hello", 42, nil, false, true, Text("t"), label("x"))

	if n.Kind != KindElement || n.Tag != "div" {
		t.Fatalf("got %v <%s>", n.Kind, n.Tag)
	}
	if n.Key != "c1" {
		t.Errorf("Key = %v, want c1", n.Key)
	}
	if _, ok := n.Props["key"]; ok {
		t.Error("key should be stripped from props")
	}
	if _, ok := props["key"]; !ok {
		t.Error("caller's props must not be mutated")
	}

	want := []string{"hello", "42", "t", "label:x"}
	if len(n.Children) != len(want) {
		t.Fatalf("children = %d, want %d", len(n.Children), len(want))
	}
	for i, w := range want {
		if n.Children[i].Kind != KindText || n.Children[i].Text != w {
			t.Errorf("child %d = %v %q, want text %q", i, n.Children[i].Kind, n.Children[i].Text, w)
		}
	}
}

func TestCreateElementFlattensSingleSlice(t *testing.T) {
	items := []*VNode{CreateElement("li", nil, "a"), nil, CreateElement("li", nil, "b")}
	n := CreateElement("ul", nil, items)

	if len(n.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(n.Children))
	}
	for _, c := range n.Children {
		if c.Kind != KindElement {
			t.Errorf("child kind = %v, want Element", c.Kind)
		}
	}
}

func TestCreateElementNestedSliceIsInternalFragment(t *testing.T) {
	n := CreateElement("ul", nil, "head", []string{"a", "b"})

	if len(n.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(n.Children))
	}
	frag := n.Children[1]
	if frag.Kind != KindFragment || !frag.Internal {
		t.Fatalf("nested slice = %v internal=%v, want internal fragment", frag.Kind, frag.Internal)
	}
	if len(frag.Children) != 2 {
		t.Errorf("fragment children = %d, want 2", len(frag.Children))
	}
}

func TestCreateElementComponent(t *testing.T) {
	n := CreateElement(Greeting, Props{"name": "Ada", "key": 7}, "child")

	if n.Kind != KindComponent {
		t.Fatalf("Kind = %v", n.Kind)
	}
	if n.Key != 7 {
		t.Errorf("Key = %v, want 7", n.Key)
	}
	if got := n.Props.Children(); len(got) != 1 || got[0].Text != "child" {
		t.Errorf("props children = %v", got)
	}
	if n.ComponentID() == 0 {
		t.Error("ComponentID should be set")
	}

	lit := CreateElement(func(p Props) any { return nil }, nil)
	if lit.Kind != KindComponent {
		t.Errorf("func literal Kind = %v", lit.Kind)
	}
}

func TestCreateElementInvalidType(t *testing.T) {
	for _, typ := range []any{nil, 42, "", struct{}{}, func() {}} {
		func() {
			defer func() {
				r := recover()
				err, ok := r.(*errors.Error)
				if !ok {
					t.Fatalf("CreateElement(%T) panic = %v, want *errors.Error", typ, r)
				}
				if !stderrors.Is(err, errors.New(errors.CodeInvalidElementType)) {
					t.Errorf("code = %s, want V001", err.Code)
				}
			}()
			CreateElement(typ, nil)
		}()
	}
}

func TestCreateElementInvalidChild(t *testing.T) {
	defer func() {
		err, ok := recover().(*errors.Error)
		if !ok || err.Code != errors.CodeInvalidChild {
			t.Fatalf("panic = %v, want V002", err)
		}
	}()
	CreateElement("div", nil, map[string]int{})
}

func TestNormalize(t *testing.T) {
	if Normalize(nil) != nil || Normalize(true) != nil {
		t.Error("nil and bool render nothing")
	}
	if got := Normalize(3.5); got.Kind != KindText || got.Text != "3.5" {
		t.Errorf("Normalize(3.5) = %+v", got)
	}

	list := Normalize([]*VNode{Text("a"), Text("b")})
	if list.Kind != KindFragment || list.Internal {
		t.Errorf("returned slice = %v internal=%v, want user fragment", list.Kind, list.Internal)
	}

	single := CreateElement("p", nil)
	if Normalize(single) != single {
		t.Error("a node normalizes to itself")
	}
}

func TestFragmentComponent(t *testing.T) {
	n := CreateElement(Fragment, Props{"key": "g"}, Text("a"), Text("b"))
	out := Normalize(n.Comp(n.Props))

	if out.Kind != KindFragment || out.Internal {
		t.Fatalf("Fragment output = %v internal=%v", out.Kind, out.Internal)
	}
	if len(out.Children) != 2 {
		t.Errorf("children = %d, want 2", len(out.Children))
	}
	if n.Key != "g" {
		t.Errorf("Key = %v, want g", n.Key)
	}
}

func TestKeyNormalization(t *testing.T) {
	type id struct{ n int }
	n := CreateElement("li", Props{"key": id{3}})
	if n.Key != "{3}" {
		t.Errorf("Key = %#v, want \"{3}\"", n.Key)
	}
}
