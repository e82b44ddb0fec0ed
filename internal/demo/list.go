package demo

import (
	"fmt"

	"github.com/vango-dev/vtree/pkg/engine"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func init() {
	register(App{
		Name:        "list",
		Description: "Unkeyed paragraphs driven by a count; logs a missing key warning",
		New:         newList,
	})
}

type listState struct {
	count setter[int]
}

// Items returns its paragraphs as a bare list, without keys.
func Items(props vdom.Props) any {
	st := props["state"].(*listState)
	count, set := engine.UseState(0)
	st.count.bind(count, set)

	return vdom.Repeat(count, func(i int) *vdom.VNode {
		return h("p", nil, fmt.Sprintf("Test Item %d", i))
	})
}

func newList() *Mount {
	st := &listState{}
	m := newMount()
	m.Tree = h("section", vdom.Props{"id": "list"},
		h("h1", nil, "Items"),
		h(Items, vdom.Props{"state": st}),
	)
	m.on("add", func() { st.count.update(func(n int) int { return n + 1 }) })
	m.on("remove", func() {
		st.count.update(func(n int) int {
			if n == 0 {
				return 0
			}
			return n - 1
		})
	})
	return m
}
