package engine

// frame holds the trackers of the component currently rendering.
type frame struct {
	engine *Engine
	inst   *Instance

	// hook is the index of the next hook call.
	hook int

	// changed is set when the instance sets its own state mid-render.
	changed bool
}

// active is the frame of the component currently rendering, or nil.
// Rendering is single-threaded; renderComponent saves and restores it so
// nested renders leave the outer frame intact.
var active *frame

// enter makes f the active frame and returns a func restoring the previous one.
func enter(f *frame) (restore func()) {
	prev := active
	active = f
	return func() { active = prev }
}

// Rendering reports whether a component is currently rendering.
func Rendering() bool {
	return active != nil
}
