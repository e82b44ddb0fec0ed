package demo

import (
	"slices"

	"github.com/vango-dev/vtree/pkg/engine"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func init() {
	register(App{
		Name:        "keyed",
		Description: "Keyed letters that keep their nodes across inserts, removals and reorders",
		New:         newKeyed,
	})
}

type keyedState struct {
	letters setter[[]string]
}

// Letters renders one keyed list item per letter.
func Letters(props vdom.Props) any {
	st := props["state"].(*keyedState)
	letters, set := engine.UseState([]string{"A", "C"})
	st.letters.bind(letters, set)

	return h("ul", nil, vdom.Range(letters, func(l string, _ int) *vdom.VNode {
		return h("li", vdom.Props{"key": l}, l)
	}))
}

// insertMiddle adds the first letter not yet present in the middle.
func insertMiddle(letters []string) []string {
	for c := 'A'; c <= 'Z'; c++ {
		l := string(c)
		if !slices.Contains(letters, l) {
			mid := len(letters) / 2
			return slices.Insert(slices.Clone(letters), mid, l)
		}
	}
	return letters
}

func newKeyed() *Mount {
	st := &keyedState{}
	m := newMount()
	m.Tree = h(Letters, vdom.Props{"state": st})
	m.on("insert", func() { st.letters.update(insertMiddle) })
	m.on("remove-first", func() {
		st.letters.update(func(l []string) []string {
			if len(l) == 0 {
				return l
			}
			return slices.Clone(l[1:])
		})
	})
	m.on("reverse", func() {
		st.letters.update(func(l []string) []string {
			out := slices.Clone(l)
			slices.Reverse(out)
			return out
		})
	})
	m.on("rotate", func() {
		st.letters.update(func(l []string) []string {
			if len(l) < 2 {
				return l
			}
			return append(slices.Clone(l[1:]), l[0])
		})
	})
	return m
}
