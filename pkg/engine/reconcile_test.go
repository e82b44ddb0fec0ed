package engine

import (
	"fmt"
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

var h = vdom.CreateElement

func TestRenderParagraph(t *testing.T) {
	f := setup(t)
	f.render(t, h("p", nil, "Test Text"))

	if dom.FindByText(f.container, "Test Text") == nil {
		t.Fatalf("text not found in %q", f.html())
	}
	if got := f.html(); got != "<p>Test Text</p>" {
		t.Errorf("html = %q, want %q", got, "<p>Test Text</p>")
	}
}

func TestRenderReplacesRootOfDifferentType(t *testing.T) {
	f := setup(t)
	f.render(t, h("p", nil, "first"))
	f.render(t, h("section", nil, "second"))

	if got := f.html(); got != "<section>second</section>" {
		t.Errorf("html = %q", got)
	}
}

func TestRenderList(t *testing.T) {
	f := setup(t)
	f.render(t, []any{
		h("p", vdom.Props{"key": 1}, "one"),
		h("p", vdom.Props{"key": 2}, "two"),
	})

	if got := f.html(); got != "<p>one</p><p>two</p>" {
		t.Errorf("html = %q", got)
	}
}

func TestPropsAreSetAndRemoved(t *testing.T) {
	f := setup(t)
	f.render(t, h("div", vdom.Props{"class": "a", "id": "x"}))
	el := dom.Children(f.container)[0]

	f.render(t, h("div", vdom.Props{"class": "b"}))
	if dom.Children(f.container)[0] != el {
		t.Fatal("element was recreated")
	}
	if v, _ := dom.Attr(el, "class"); v != "b" {
		t.Errorf("class = %q, want b", v)
	}
	if _, ok := dom.Attr(el, "id"); ok {
		t.Error("id should have been removed")
	}
}

func TestTextUpdatedInPlace(t *testing.T) {
	f := setup(t)
	f.render(t, h("p", nil, "before"))
	f.rec.Reset()

	f.render(t, h("p", nil, "after"))
	if got := f.html(); got != "<p>after</p>" {
		t.Errorf("html = %q", got)
	}
	if f.rec.Len() != 1 || f.rec.Count(dom.OpSetText) != 1 {
		t.Errorf("ops = %v, want a single set_text", f.rec.Ops())
	}
}

func Shell(props vdom.Props) any {
	return h("main", nil,
		h("header", nil, props.String("title")),
		props.Children(),
	)
}

func Item(props vdom.Props) any {
	return h("li", nil, props.String("label"))
}

func noopTree() *vdom.VNode {
	return h(Shell, vdom.Props{"title": "Inbox"},
		h("ul", nil, []*vdom.VNode{
			h(Item, vdom.Props{"key": "a", "label": "A"}),
			h(Item, vdom.Props{"key": "b", "label": "B"}),
		}),
		[]any{h("span", nil, "x"), "tail"},
	)
}

func TestNoopDiffProducesNoMutations(t *testing.T) {
	f := setup(t)
	f.render(t, noopTree())
	before := f.html()
	f.rec.Reset()

	f.render(t, noopTree())
	if f.rec.Len() != 0 {
		t.Errorf("re-render of an identical tree produced %d mutations: %v", f.rec.Len(), f.rec.Ops())
	}
	if got := f.html(); got != before {
		t.Errorf("html = %q, want %q", got, before)
	}
}

func keyedList(items []string) *vdom.VNode {
	return h("ul", nil, vdom.Range(items, func(s string, _ int) *vdom.VNode {
		return h("li", vdom.Props{"key": s}, s)
	}))
}

func TestKeyedReconciliation(t *testing.T) {
	tests := []struct {
		name    string
		before  []string
		after   []string
		creates int
		removes int
	}{
		{"insert middle", []string{"A", "C"}, []string{"A", "B", "C"}, 1, 0},
		{"remove middle", []string{"A", "B", "C"}, []string{"A", "C"}, 0, 1},
		{"remove first", []string{"A", "B", "C"}, []string{"B", "C"}, 0, 1},
		{"reverse", []string{"A", "B", "C", "D"}, []string{"D", "C", "B", "A"}, 0, 0},
		{"rotate", []string{"A", "B", "C"}, []string{"B", "C", "A"}, 0, 0},
		{"swap and insert", []string{"A", "B"}, []string{"B", "X", "A"}, 1, 0},
		{"replace all", []string{"A", "B"}, []string{"C", "D"}, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			f.render(t, keyedList(tt.before))
			ul := dom.Children(f.container)[0]

			nodes := make(map[string]*html.Node)
			for _, li := range dom.Children(ul) {
				nodes[dom.TextContent(li)] = li
			}
			f.rec.Reset()

			f.render(t, keyedList(tt.after))

			if got := texts(ul); !equalStrings(got, tt.after) {
				t.Fatalf("order = %v, want %v", got, tt.after)
			}
			for _, li := range dom.Children(ul) {
				if old, ok := nodes[dom.TextContent(li)]; ok && old != li {
					t.Errorf("node for %q was recreated", dom.TextContent(li))
				}
			}
			if got := f.rec.Count(dom.OpCreateElement); got != tt.creates {
				t.Errorf("creates = %d, want %d", got, tt.creates)
			}
			if got := f.rec.Count(dom.OpRemove); got != tt.removes {
				t.Errorf("removes = %d, want %d", got, tt.removes)
			}
		})
	}
}

func TestKeyedRemovalDoesNotMoveSurvivors(t *testing.T) {
	f := setup(t)
	f.render(t, keyedList([]string{"A", "B", "C"}))
	f.rec.Reset()

	f.render(t, keyedList([]string{"A", "C"}))
	if got := f.rec.Count(dom.OpInsert); got != 0 {
		t.Errorf("inserts = %d, want 0", got)
	}
}

func TestPositionalFallback(t *testing.T) {
	list := func(items ...string) *vdom.VNode {
		return h("div", nil, vdom.Range(items, func(s string, _ int) *vdom.VNode {
			return h("p", nil, s)
		}))
	}

	f := setup(t)
	f.render(t, list("x", "y"))
	div := dom.Children(f.container)[0]
	old := dom.Children(div)
	f.rec.Reset()

	f.render(t, list("n", "x", "y"))

	got := dom.Children(div)
	if want := []string{"n", "x", "y"}; !equalStrings(texts(div), want) {
		t.Fatalf("order = %v, want %v", texts(div), want)
	}
	// The old nodes are morphed in place; only the last one is new.
	if got[0] != old[0] || got[1] != old[1] {
		t.Error("positional partners were not reused")
	}
	if got := f.rec.Count(dom.OpSetText); got != 2 {
		t.Errorf("set_text = %d, want 2", got)
	}
	if got := f.rec.Count(dom.OpCreateElement); got != 1 {
		t.Errorf("creates = %d, want 1", got)
	}
}

func Pair(props vdom.Props) any {
	return []*vdom.VNode{
		h("p", vdom.Props{"key": "one"}, "one"),
		h("p", vdom.Props{"key": "two"}, "two"),
	}
}

func TestInsertionIndexCountsMultiNodeChildren(t *testing.T) {
	tests := []struct {
		name   string
		layout func(show bool) *vdom.VNode
		want   []string
	}{
		{
			name: "component",
			layout: func(show bool) *vdom.VNode {
				return h("div", nil,
					h(Pair, nil),
					vdom.If(show, h("p", vdom.Props{"key": "x"}, "x")),
					h("p", vdom.Props{"key": "tail"}, "tail"),
				)
			},
			want: []string{"one", "two", "x", "tail"},
		},
		{
			name: "fragment",
			layout: func(show bool) *vdom.VNode {
				return h("div", nil,
					h("p", nil, "head"),
					[]any{h("p", nil, "a"), h("p", nil, "b")},
					vdom.If(show, h("p", nil, "x")),
				)
			},
			want: []string{"head", "a", "b", "x"},
		},
		{
			name: "nested components",
			layout: func(show bool) *vdom.VNode {
				return h("div", nil,
					h(Shell2, nil, h(Pair, nil)),
					vdom.If(show, h("p", nil, "x")),
				)
			},
			want: []string{"head", "one", "two", "x"},
		},
		{
			name: "before component",
			layout: func(show bool) *vdom.VNode {
				return h("div", nil,
					h("p", nil, "head"),
					vdom.If(show, h("p", nil, "x")),
					h(Pair, nil),
				)
			},
			want: []string{"head", "x", "one", "two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			f.render(t, tt.layout(false))
			f.render(t, tt.layout(true))

			div := dom.Children(f.container)[0]
			if got := texts(div); !equalStrings(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

// Shell2 renders a heading followed by its children, without a wrapper.
func Shell2(props vdom.Props) any {
	return []any{h("p", nil, "head"), props.Children()}
}

func TestMissingKeyWarning(t *testing.T) {
	unkeyed := func(vdom.Props) any {
		return []*vdom.VNode{h("p", nil, "a"), h("p", nil, "b"), h("p", nil, "c")}
	}
	keyed := func(vdom.Props) any {
		return []*vdom.VNode{
			h("p", vdom.Props{"key": "a"}, "a"),
			h("p", vdom.Props{"key": "b"}, "b"),
		}
	}

	tests := []struct {
		name string
		comp vdom.Component
		want int
	}{
		{"unkeyed list", unkeyed, 1},
		{"keyed list", keyed, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			f.render(t, h(tt.comp, nil))
			if got := f.col.count("V010"); got != tt.want {
				t.Errorf("missing key diagnostics = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNestedSlicesAreNotKeyChecked(t *testing.T) {
	f := setup(t)
	f.render(t, h("ul", nil, h("li", nil, "a"), []any{h("li", nil, "b"), h("li", nil, "c")}))

	if got := f.col.count("V010"); got != 0 {
		t.Errorf("missing key diagnostics = %d, want 0", got)
	}
	if got := f.html(); got != "<ul><li>a</li><li>b</li><li>c</li></ul>" {
		t.Errorf("html = %q", got)
	}
}

func TestComponentReceivesChildren(t *testing.T) {
	f := setup(t)
	f.render(t, h(Shell, vdom.Props{"title": "T"}, h("p", nil, "body")))

	want := "<main><header>T</header><p>body</p></main>"
	if got := f.html(); got != want {
		t.Errorf("html = %q, want %q", got, want)
	}
}

func TestComponentReturningNil(t *testing.T) {
	empty := func(vdom.Props) any { return nil }

	f := setup(t)
	f.render(t, h("div", nil, h(empty, nil), h("p", nil, "after")))
	if got := f.html(); got != "<div><p>after</p></div>" {
		t.Errorf("html = %q", got)
	}
}

func TestComponentTypeChangeReplacesOutput(t *testing.T) {
	f := setup(t)
	f.render(t, h("div", nil, h(Item, vdom.Props{"label": "x"})))
	li := dom.Children(dom.Children(f.container)[0])[0]

	f.render(t, h("div", nil, h(Shell, vdom.Props{"title": "y"})))
	if got := f.html(); got != "<div><main><header>y</header></main></div>" {
		t.Errorf("html = %q", got)
	}
	if li.Parent != nil {
		t.Error("output of the replaced component is still attached")
	}
}

func TestUnmount(t *testing.T) {
	f := setup(t)
	f.render(t, noopTree())
	if f.engine.Registry().Len() == 0 {
		t.Fatal("no instances registered")
	}

	if err := f.root.Unmount(); err != nil {
		t.Fatalf("Unmount() error = %v", err)
	}
	if got := f.html(); got != "" {
		t.Errorf("html = %q, want empty", got)
	}
	if got := f.engine.Registry().Len(); got != 0 {
		t.Errorf("registry has %d instances after unmount", got)
	}
}

func TestRemovingElementDisposesNestedComponents(t *testing.T) {
	tree := func(show bool) *vdom.VNode {
		return h("div", nil, vdom.If(show, h("section", nil, h(Item, vdom.Props{"label": "x"}))))
	}

	f := setup(t)
	f.render(t, tree(true))
	if got := f.engine.Registry().Len(); got != 1 {
		t.Fatalf("registry len = %d, want 1", got)
	}
	f.render(t, tree(false))
	if got := f.engine.Registry().Len(); got != 0 {
		t.Errorf("registry len = %d, want 0", got)
	}
}

func TestDisposeOnUnmountDisabled(t *testing.T) {
	f := setup(t, WithDisposeOnUnmount(false))
	f.render(t, h("div", nil, h(Item, vdom.Props{"label": "x"})))
	f.render(t, h("div", nil))

	if got := f.engine.Registry().Len(); got != 1 {
		t.Errorf("registry len = %d, want 1", got)
	}
	if got := f.html(); got != "<div></div>" {
		t.Errorf("html = %q", got)
	}
}

func TestRemovedInstanceStaysDetached(t *testing.T) {
	tests := []struct {
		name string
		wrap func(*vdom.VNode) *vdom.VNode
	}{
		{"direct child", func(c *vdom.VNode) *vdom.VNode { return h("div", nil, c) }},
		{"under removed element", func(c *vdom.VNode) *vdom.VNode { return h("div", nil, h("section", nil, c)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, WithDisposeOnUnmount(false))
			child := h(Child, nil)
			f.render(t, tt.wrap(child))
			stale := setChild
			inst := f.engine.Registry().Get(child.Identity)
			if inst == nil || !inst.Mounted() {
				t.Fatal("expected a mounted instance")
			}

			f.render(t, h("div", nil))
			f.rec.Reset()
			stale("later")

			if got := f.html(); got != "<div></div>" {
				t.Errorf("html = %q, want the removed node to stay out", got)
			}
			if f.rec.Len() != 0 {
				t.Errorf("mutations = %d, want 0", f.rec.Len())
			}
			if inst.Mounted() || inst.Disposed() {
				t.Errorf("Mounted() = %v, Disposed() = %v, want false, false", inst.Mounted(), inst.Disposed())
			}
			if f.col.count("V023") != 0 {
				t.Error("unexpected disposal diagnostic")
			}
		})
	}
}

func OneOrTwo(props vdom.Props) any {
	if props.Int("n") == 1 {
		return h("p", nil, "a")
	}
	return []any{h("p", nil, "a"), h("p", nil, "b")}
}

func TestComponentOutputSwitchesBetweenOneAndMany(t *testing.T) {
	f := setup(t)
	f.render(t, h("div", nil, h(OneOrTwo, vdom.Props{"n": 1}), h("span", nil, "end")))
	div := dom.Children(f.container)[0]
	first := dom.Children(div)[0]

	f.rec.Reset()
	f.render(t, h("div", nil, h(OneOrTwo, vdom.Props{"n": 2}), h("span", nil, "end")))
	if got := f.html(); got != "<div><p>a</p><p>b</p><span>end</span></div>" {
		t.Fatalf("html = %q", got)
	}
	if dom.Children(div)[0] != first {
		t.Error("first <p> was recreated instead of updated in place")
	}
	if got := f.rec.Count(dom.OpCreateElement); got != 1 {
		t.Errorf("created elements = %d, want 1", got)
	}
	if got := f.rec.Count(dom.OpRemove); got != 0 {
		t.Errorf("removals = %d, want 0", got)
	}

	f.rec.Reset()
	f.render(t, h("div", nil, h(OneOrTwo, vdom.Props{"n": 1}), h("span", nil, "end")))
	if got := f.html(); got != "<div><p>a</p><span>end</span></div>" {
		t.Fatalf("html = %q", got)
	}
	if dom.Children(div)[0] != first {
		t.Error("first <p> was recreated when shrinking")
	}
	if got := f.rec.Count(dom.OpRemove); got != 1 {
		t.Errorf("removals = %d, want 1", got)
	}
	if got := f.rec.Count(dom.OpCreateElement); got != 0 {
		t.Errorf("created elements = %d, want 0", got)
	}
}

func TestCreateRootRejectsNilContainer(t *testing.T) {
	e := New(dom.NewHTML())
	tests := []struct {
		name      string
		container dom.Node
	}{
		{"untyped nil", nil},
		{"typed nil", (*html.Node)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.CreateRoot(tt.container)
			if err == nil {
				t.Fatal("expected error")
			}
			if !isCode(err, "V004") {
				t.Errorf("error = %v, want V004", err)
			}
		})
	}
}

func TestCommitsAreObserved(t *testing.T) {
	f := setup(t)
	f.render(t, h("p", nil, "x"))

	if len(f.col.commits) != 1 {
		t.Fatalf("commits = %d, want 1", len(f.col.commits))
	}
	c := f.col.commits[0]
	if c.Trigger != "render" || c.Component != "<p>" {
		t.Errorf("commit = %+v", c)
	}
	// create p, create text, replace children, insert
	if c.Total() != 4 {
		t.Errorf("mutations = %d, want 4 (%v)", c.Total(), c.Mutations)
	}
}

func ExampleRoot_Render() {
	container := dom.NewContainer("div")
	root, _ := New(dom.NewHTML()).CreateRoot(container)
	_ = root.Render(h("ul", nil, vdom.Repeat(2, func(i int) *vdom.VNode {
		return h("li", vdom.Props{"key": i}, fmt.Sprintf("item %d", i))
	})))
	fmt.Println(dom.InnerHTML(container))
	// Output: <ul><li>item 0</li><li>item 1</li></ul>
}
