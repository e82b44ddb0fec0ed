package demo

import (
	"fmt"

	"github.com/vango-dev/vtree/pkg/engine"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func init() {
	register(App{
		Name:        "todo",
		Description: "A todo list with keyed item components and a derived summary",
		New:         newTodo,
	})
}

type task struct {
	ID    int
	Title string
	Done  bool
}

type todoState struct {
	tasks  setter[[]task]
	nextID int
}

// TodoApp owns the task list.
func TodoApp(props vdom.Props) any {
	st := props["state"].(*todoState)
	tasks, set := engine.UseState([]task{})
	st.tasks.bind(tasks, set)

	return h("div", vdom.Props{"class": "todo"},
		h("h1", nil, "Todo"),
		h("ul", nil, vdom.Range(tasks, func(t task, _ int) *vdom.VNode {
			return h(TodoItem, vdom.Props{"key": t.ID, "title": t.Title, "done": t.Done})
		})),
		h(Summary, vdom.Props{"tasks": tasks}),
	)
}

// TodoItem renders one task.
func TodoItem(props vdom.Props) any {
	class := "open"
	if props["done"] == true {
		class = "done"
	}
	return h("li", vdom.Props{"class": class}, props.String("title"))
}

// Summary keeps the open task count in its own state, syncing it during
// render when the list changes.
func Summary(props vdom.Props) any {
	tasks, _ := props["tasks"].([]task)
	open := 0
	for _, t := range tasks {
		if !t.Done {
			open++
		}
	}

	shown, setShown := engine.UseState(-1)
	if shown != open {
		setShown(open)
	}
	return h("p", vdom.Props{"class": "summary"}, vdom.Textf("%d open", shown))
}

func newTodo() *Mount {
	st := &todoState{}
	m := newMount()
	m.Tree = h(TodoApp, vdom.Props{"state": st})
	m.on("add", func() {
		st.nextID++
		id := st.nextID
		st.tasks.update(func(ts []task) []task {
			out := make([]task, len(ts), len(ts)+1)
			copy(out, ts)
			return append(out, task{ID: id, Title: fmt.Sprintf("Task %d", id)})
		})
	})
	m.on("complete-first", func() {
		st.tasks.update(func(ts []task) []task {
			out := make([]task, len(ts))
			copy(out, ts)
			for i := range out {
				if !out[i].Done {
					out[i].Done = true
					break
				}
			}
			return out
		})
	})
	m.on("clear-done", func() {
		st.tasks.update(func(ts []task) []task {
			var out []task
			for _, t := range ts {
				if !t.Done {
					out = append(out, t)
				}
			}
			return out
		})
	})
	return m
}
