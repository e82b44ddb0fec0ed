// Package demo holds the built-in apps the CLI renders and the preview
// server serves. Each app exposes named actions that drive its state the
// way an event handler would.
package demo

import (
	"sort"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/vdom"
)

var h = vdom.CreateElement

// App is a named demo application.
type App struct {
	Name        string
	Description string

	// New builds a fresh tree. Its actions work once the tree is rendered.
	New func() *Mount
}

// Mount is one instance of an app: the tree to render and the actions
// bound to its state.
type Mount struct {
	Tree    *vdom.VNode
	actions map[string]func()
}

func newMount() *Mount {
	return &Mount{actions: make(map[string]func())}
}

func (m *Mount) on(name string, fn func()) {
	m.actions[name] = fn
}

// Actions returns the action names in sorted order.
func (m *Mount) Actions() []string {
	names := make([]string, 0, len(m.actions))
	for name := range m.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run invokes the named action. The state change re-renders synchronously.
func (m *Mount) Run(name string) error {
	fn, ok := m.actions[name]
	if !ok {
		return errors.New(errors.CodeUnknownAction).WithDetailf("no action %q", name)
	}
	fn()
	return nil
}

// setter holds a state setter captured during render.
type setter[T any] struct {
	value T
	set   func(T)
}

func (s *setter[T]) bind(value T, set func(T)) {
	s.value, s.set = value, set
}

// update applies fn to the current value. It does nothing before the
// owning component has rendered.
func (s *setter[T]) update(fn func(T) T) {
	if s.set != nil {
		s.set(fn(s.value))
	}
}

var apps = map[string]App{}

func register(app App) {
	apps[app.Name] = app
}

// Get returns the app with the given name.
func Get(name string) (App, error) {
	app, ok := apps[name]
	if !ok {
		return App{}, errors.New(errors.CodeUnknownApp).WithDetailf("no app %q", name)
	}
	return app, nil
}

// Names returns the registered app names in sorted order.
func Names() []string {
	names := make([]string, 0, len(apps))
	for name := range apps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
