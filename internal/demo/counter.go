package demo

import (
	"github.com/vango-dev/vtree/pkg/engine"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func init() {
	register(App{
		Name:        "counter",
		Description: "A single counter with increment, decrement and reset",
		New:         newCounter,
	})
}

type counterState struct {
	count setter[int]
}

// Counter renders the current count.
func Counter(props vdom.Props) any {
	st := props["state"].(*counterState)
	count, set := engine.UseState(0)
	st.count.bind(count, set)

	return h("div", vdom.Props{"class": "counter"},
		h("p", nil, "Count: ", count),
		vdom.If(count < 0, h("p", vdom.Props{"class": "warning"}, "Below zero")),
	)
}

func newCounter() *Mount {
	st := &counterState{}
	m := newMount()
	m.Tree = h(Counter, vdom.Props{"state": st})
	m.on("increment", func() { st.count.update(func(n int) int { return n + 1 }) })
	m.on("decrement", func() { st.count.update(func(n int) int { return n - 1 }) })
	m.on("reset", func() { st.count.update(func(int) int { return 0 }) })
	return m
}
