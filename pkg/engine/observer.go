package engine

import (
	"time"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
)

// Commit describes one reconciliation pass that reached the backend.
type Commit struct {
	// Trigger is "render", "update" or "unmount".
	Trigger string

	// Component names the root of the pass.
	Component string

	// Mutations counts backend mutations by kind.
	Mutations map[dom.OpKind]int

	Duration time.Duration
	Err      error
}

// Total returns the number of mutations in the commit.
func (c Commit) Total() int {
	n := 0
	for _, v := range c.Mutations {
		n += v
	}
	return n
}

// Observer receives engine events. Implementations must not call back into
// the engine.
type Observer interface {
	// ComponentRendered is called once per stabilized component render,
	// with the number of times the component function ran.
	ComponentRendered(component string, iterations int)

	// Committed is called after every outermost reconciliation pass.
	Committed(c Commit)

	// Diagnostic is called for every reported diagnostic.
	Diagnostic(d *errors.Error)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) ComponentRendered(string, int) {}
func (NopObserver) Committed(Commit)              {}
func (NopObserver) Diagnostic(*errors.Error)      {}

// Observers fans events out to several observers.
type Observers []Observer

func (o Observers) ComponentRendered(component string, iterations int) {
	for _, ob := range o {
		ob.ComponentRendered(component, iterations)
	}
}

func (o Observers) Committed(c Commit) {
	for _, ob := range o {
		ob.Committed(c)
	}
}

func (o Observers) Diagnostic(d *errors.Error) {
	for _, ob := range o {
		ob.Diagnostic(d)
	}
}
