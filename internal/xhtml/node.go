// Package xhtml is a small builder for XHTML narrative fragments on top of
// golang.org/x/net/html.
//
// Every builder method appends a new child element and returns it, so tables
// can be written the way they read:
//
//	tr := x.Table("grid").Tr()
//	tr.Th().B().Attribute("title", "GET a resource (read interaction)").Tx("Read")
//
// Text is stored raw and escaped when the tree is serialised.
package xhtml

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node is a mutable handle to an element in a narrative tree.
type Node struct {
	n *html.Node
}

// NewFragment returns an empty div that acts as the root of a narrative.
func NewFragment() *Node {
	return &Node{n: &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}}
}

// Wrap adopts an existing html.Node.
func Wrap(n *html.Node) *Node {
	return &Node{n: n}
}

// Raw exposes the underlying html.Node.
func (x *Node) Raw() *html.Node {
	return x.n
}

// Name is the element name, or "" for non-element nodes.
func (x *Node) Name() string {
	if x.n.Type != html.ElementNode {
		return ""
	}
	return x.n.Data
}

func (x *Node) element(a atom.Atom) *Node {
	child := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	x.n.AppendChild(child)
	return &Node{n: child}
}

func (x *Node) Div() *Node  { return x.element(atom.Div) }
func (x *Node) H2() *Node   { return x.element(atom.H2) }
func (x *Node) Para() *Node { return x.element(atom.P) }
func (x *Node) Tr() *Node   { return x.element(atom.Tr) }
func (x *Node) Th() *Node   { return x.element(atom.Th) }
func (x *Node) Td() *Node   { return x.element(atom.Td) }
func (x *Node) B() *Node    { return x.element(atom.B) }

// Table appends a table. A non-empty class is set on it.
func (x *Node) Table(class string) *Node {
	t := x.element(atom.Table)
	if class != "" {
		t.Attribute("class", class)
	}
	return t
}

// Ah appends a hyperlink to href.
func (x *Node) Ah(href string) *Node {
	return x.element(atom.A).Attribute("href", href)
}

// Attribute sets (or replaces) an attribute and returns the node.
func (x *Node) Attribute(name, value string) *Node {
	for i, a := range x.n.Attr {
		if a.Key == name {
			x.n.Attr[i].Val = value
			return x
		}
	}
	x.n.Attr = append(x.n.Attr, html.Attribute{Key: name, Val: value})
	return x
}

// GetAttribute returns the value of an attribute and whether it is set.
func (x *Node) GetAttribute(name string) (string, bool) {
	for _, a := range x.n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Tx appends a text node and returns the receiver.
func (x *Node) Tx(text string) *Node {
	x.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return x
}

// AddText is Tx without the return value; empty text still produces a node
// so an empty cell is distinguishable from a missing one only by content.
func (x *Node) AddText(text string) {
	x.Tx(text)
}

// AppendChild grafts a detached node under x.
func (x *Node) AppendChild(child *html.Node) {
	x.n.AppendChild(child)
}

// AdoptChildren moves every child of from, text nodes included, to the end
// of x in order. from is left empty.
func (x *Node) AdoptChildren(from *Node) {
	for c := from.n.FirstChild; c != nil; c = from.n.FirstChild {
		from.n.RemoveChild(c)
		x.n.AppendChild(c)
	}
}

// Children lists the element children of x.
func (x *Node) Children() []*Node {
	var out []*Node
	for c := x.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, &Node{n: c})
		}
	}
	return out
}

// Text concatenates all text beneath x.
func (x *Node) Text() string {
	var buf bytes.Buffer
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(x.n)
	return buf.String()
}

// Render serialises x and its subtree.
func (x *Node) Render(w io.Writer) error {
	return html.Render(w, x.n)
}

// RenderChildren serialises only the children of x, which is what callers
// embedding a fragment into a larger page want.
func (x *Node) RenderChildren(w io.Writer) error {
	for c := x.n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}
	return nil
}

// String renders x, returning "" on error.
func (x *Node) String() string {
	var buf bytes.Buffer
	if err := x.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}
