package engine

import (
	"context"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Root binds a virtual tree to a presentation container.
type Root struct {
	engine *Engine

	// node stands in for the container in the virtual tree, so the
	// container is the domParent of top-level components.
	node *vdom.VNode
	tree *vdom.VNode
}

// CreateRoot binds container to the engine. A nil container is a V004 error.
func (e *Engine) CreateRoot(container dom.Node) (*Root, error) {
	if isNil(container) {
		return nil, errors.New(errors.CodeContainerMissing)
	}
	return &Root{
		engine: e,
		node:   &vdom.VNode{Kind: vdom.KindElement, Tag: "#root", DOMRef: container},
	}, nil
}

// Container returns the presentation container.
func (r *Root) Container() dom.Node {
	return r.node.DOMRef
}

// Tree returns the last rendered virtual tree.
func (r *Root) Tree() *vdom.VNode {
	return r.tree
}

// Engine returns the engine the root renders with.
func (r *Root) Engine() *Engine {
	return r.engine
}

// Render reconciles the container with tree, which may be an element or a
// list of elements. The first call builds the presentation tree; later
// calls diff against the previous tree.
func (r *Root) Render(tree any) error {
	return r.RenderContext(context.Background(), tree)
}

// RenderContext is Render with a parent context for the commit span.
func (r *Root) RenderContext(ctx context.Context, tree any) error {
	next := vdom.Normalize(tree)
	return r.engine.commit(ctx, "render", vdom.Name(next), func() error {
		prev := r.tree
		r.tree = next
		if next == nil {
			r.node.Children = nil
		} else {
			r.node.Children = []*vdom.VNode{next}
		}
		return r.engine.diff(r.node, prev, next)
	})
}

// Unmount removes the tree from the container and disposes its instances.
func (r *Root) Unmount() error {
	return r.engine.commit(context.Background(), "unmount", vdom.Name(r.tree), func() error {
		r.engine.detach(r.tree)
		r.tree = nil
		r.node.Children = nil
		return nil
	})
}
