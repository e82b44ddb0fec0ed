package dom

import (
	"fmt"
	"strconv"

	"github.com/vango-dev/vtree/internal/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML is a Backend over golang.org/x/net/html nodes.
type HTML struct{}

// NewHTML returns the HTML backend.
func NewHTML() *HTML {
	return &HTML{}
}

// NewContainer creates a detached element to render into.
func NewContainer(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

func asHTML(n Node) *html.Node {
	hn, ok := n.(*html.Node)
	if !ok {
		panic(fmt.Sprintf("dom: %T is not an *html.Node", n))
	}
	return hn
}

func (h *HTML) CreateElement(tag string) Node {
	return NewContainer(tag)
}

func (h *HTML) CreateText(text string) Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// SetProperty sets an attribute. true renders as an empty attribute and
// false removes it.
func (h *HTML) SetProperty(n Node, name string, value any) {
	hn := asHTML(n)
	if b, ok := value.(bool); ok && !b {
		h.RemoveProperty(n, name)
		return
	}
	val := ""
	if _, ok := value.(bool); !ok {
		val = PropString(value)
	}
	for i := range hn.Attr {
		if hn.Attr[i].Key == name {
			hn.Attr[i].Val = val
			return
		}
	}
	hn.Attr = append(hn.Attr, html.Attribute{Key: name, Val: val})
}

func (h *HTML) RemoveProperty(n Node, name string) {
	hn := asHTML(n)
	for i := range hn.Attr {
		if hn.Attr[i].Key == name {
			hn.Attr = append(hn.Attr[:i], hn.Attr[i+1:]...)
			return
		}
	}
}

func (h *HTML) SetText(n Node, text string) {
	asHTML(n).Data = text
}

func (h *HTML) ReplaceChildren(parent Node, children ...Node) {
	p := asHTML(parent)
	for c := p.FirstChild; c != nil; c = p.FirstChild {
		p.RemoveChild(c)
	}
	for _, c := range children {
		h.Append(parent, c)
	}
}

func (h *HTML) InsertAt(parent, child Node, index int) error {
	p, c := asHTML(parent), asHTML(child)
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	count := h.ChildCount(parent)
	if index < 0 || index > count {
		return errors.New(errors.CodeInvalidIndex).
			WithDetailf("index %d outside [0, %d] under <%s>", index, count, p.Data)
	}
	if index == count {
		p.AppendChild(c)
		return nil
	}
	ref := p.FirstChild
	for i := 0; i < index; i++ {
		ref = ref.NextSibling
	}
	p.InsertBefore(c, ref)
	return nil
}

func (h *HTML) Append(parent, child Node) {
	c := asHTML(child)
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	asHTML(parent).AppendChild(c)
}

func (h *HTML) Remove(n Node) {
	hn := asHTML(n)
	if hn.Parent != nil {
		hn.Parent.RemoveChild(hn)
	}
}

func (h *HTML) ChildCount(parent Node) int {
	count := 0
	for c := asHTML(parent).FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

func (h *HTML) IndexOf(parent, child Node) int {
	i := 0
	for c := asHTML(parent).FirstChild; c != nil; c = c.NextSibling {
		if c == child {
			return i
		}
		i++
	}
	return -1
}

// PropString converts a property value to its attribute text.
func PropString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
