package engine

import (
	stderrors "errors"
	"io"
	"log/slog"
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
)

// collector records observer events.
type collector struct {
	renders map[string]int
	commits []Commit
	diags   []*errors.Error
}

func newCollector() *collector {
	return &collector{renders: make(map[string]int)}
}

func (c *collector) ComponentRendered(component string, iterations int) {
	c.renders[component] += iterations
}

func (c *collector) Committed(commit Commit) {
	c.commits = append(c.commits, commit)
}

func (c *collector) Diagnostic(d *errors.Error) {
	c.diags = append(c.diags, d)
}

func (c *collector) count(code string) int {
	n := 0
	for _, d := range c.diags {
		if d.Code == code {
			n++
		}
	}
	return n
}

type fixture struct {
	engine    *Engine
	root      *Root
	container *html.Node
	rec       *dom.Recorder
	col       *collector
}

func setup(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		container: dom.NewContainer("div"),
		rec:       dom.NewRecorder(dom.NewHTML()),
		col:       newCollector(),
	}
	opts = append([]Option{
		WithObserver(f.col),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	f.engine = New(f.rec, opts...)

	root, err := f.engine.CreateRoot(f.container)
	if err != nil {
		t.Fatalf("CreateRoot() error = %v", err)
	}
	f.root = root
	return f
}

func (f *fixture) render(t *testing.T, tree any) {
	t.Helper()
	if err := f.root.Render(tree); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
}

func (f *fixture) html() string {
	return dom.InnerHTML(f.container)
}

// texts returns the text of each element child of n.
func texts(n *html.Node) []string {
	var out []string
	for _, c := range dom.Children(n) {
		out = append(out, dom.TextContent(c))
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isCode(err error, code string) bool {
	var e *errors.Error
	return stderrors.As(err, &e) && e.Code == code
}
