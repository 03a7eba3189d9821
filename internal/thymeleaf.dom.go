package internal

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is a view over an element node of a parsed document. Attribute names
// are compared case-insensitively, the way the HTML parser stores them.
type Element struct {
	node *html.Node
}

// WrapElement wraps an element node. It returns nil for nil or non-element nodes.
func WrapElement(node *html.Node) *Element {
	if node == nil || node.Type != html.ElementNode {
		return nil
	}
	return &Element{node: node}
}

// Node returns the underlying node
func (e *Element) Node() *html.Node {
	return e.node
}

// TagName returns the element tag name
func (e *Element) TagName() string {
	return e.node.Data
}

func qualifiedName(attr html.Attribute) string {
	if attr.Namespace != StringValueEmpty {
		return attr.Namespace + StrNamespaceSeparator + attr.Key
	}
	return attr.Key
}

func (e *Element) attributeIndex(name string) int {
	name = strings.ToLower(name)
	for i, attr := range e.node.Attr {
		if qualifiedName(attr) == name {
			return i
		}
	}
	return -1
}

// HasAttribute reports whether the element carries the named attribute
func (e *Element) HasAttribute(name string) bool {
	return e.attributeIndex(name) >= 0
}

// GetAttribute returns the attribute value and whether it exists
func (e *Element) GetAttribute(name string) (string, bool) {
	i := e.attributeIndex(name)
	if i < 0 {
		return StringValueEmpty, false
	}
	return e.node.Attr[i].Val, true
}

// SetAttribute sets an attribute, keeping its position if it already exists
func (e *Element) SetAttribute(name, value string) {
	if i := e.attributeIndex(name); i >= 0 {
		e.node.Attr[i].Val = value
		return
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: strings.ToLower(name), Val: value})
}

// RemoveAttribute removes the named attribute if present
func (e *Element) RemoveAttribute(name string) {
	i := e.attributeIndex(name)
	if i < 0 {
		return
	}
	e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
}

// AttributeNames returns the qualified attribute names in document order
func (e *Element) AttributeNames() []string {
	names := make([]string, 0, len(e.node.Attr))
	for _, attr := range e.node.Attr {
		names = append(names, qualifiedName(attr))
	}
	return names
}

// Children returns a snapshot of the element's child elements.
// Call it again after a mutation to observe the new child list.
func (e *Element) Children() []*Element {
	var children []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, &Element{node: c})
		}
	}
	return children
}

// FirstElementChild returns the first child element, or nil
func (e *Element) FirstElementChild() *Element {
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return &Element{node: c}
		}
	}
	return nil
}

// NextElementSibling returns the next sibling element, or nil
func (e *Element) NextElementSibling() *Element {
	for c := e.node.NextSibling; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return &Element{node: c}
		}
	}
	return nil
}

// IsChildOf reports whether parent is the element's current parent
func (e *Element) IsChildOf(parent *Element) bool {
	return parent != nil && e.node.Parent == parent.node
}

// Parent returns the parent element, or nil at the document root
func (e *Element) Parent() *Element {
	return WrapElement(e.node.Parent)
}

// Attached reports whether the element still has a parent node
func (e *Element) Attached() bool {
	return e.node.Parent != nil
}

// Remove detaches the element from its parent
func (e *Element) Remove() {
	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
}

// RemoveChildren detaches every child node
func (e *Element) RemoveChildren() {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
}

// ReplaceChildren replaces all child nodes with nodes
func (e *Element) ReplaceChildren(nodes ...*html.Node) {
	e.RemoveChildren()
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		e.node.AppendChild(n)
	}
}

// SetText replaces all child nodes with a single text node.
// The text is escaped when the document is rendered.
func (e *Element) SetText(text string) {
	e.ReplaceChildren(&html.Node{Type: html.TextNode, Data: text})
}

// Unwrap replaces the element by its own child nodes
func (e *Element) Unwrap() {
	parent := e.node.Parent
	if parent == nil {
		return
	}
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		parent.InsertBefore(c, e.node)
		c = next
	}
	parent.RemoveChild(e.node)
}

// TextContent returns the concatenated text of all descendant text nodes
func (e *Element) TextContent() string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
			walk(c)
		}
	}
	walk(e.node)
	return sb.String()
}

// ClassList returns the element's classes in order
func (e *Element) ClassList() []string {
	value, _ := e.GetAttribute(AttrClass)
	return strings.Fields(value)
}

// AddClass appends classes that are not yet present
func (e *Element) AddClass(names ...string) {
	classes := e.ClassList()
	seen := make(map[string]bool, len(classes))
	for _, c := range classes {
		seen[c] = true
	}
	changed := false
	for _, name := range names {
		for _, c := range strings.Fields(name) {
			if !seen[c] {
				seen[c] = true
				classes = append(classes, c)
				changed = true
			}
		}
	}
	if changed {
		e.SetAttribute(AttrClass, strings.Join(classes, StrSpace))
	}
}

// ParseDocument parses a full HTML document. The parser never fetches or
// executes external resources.
func ParseDocument(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// DocumentElement returns the root element of a parsed document
func DocumentElement(doc *html.Node) *Element {
	if doc == nil {
		return nil
	}
	if doc.Type == html.ElementNode {
		return &Element{node: doc}
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return &Element{node: c}
		}
	}
	return nil
}

// RenderDocument serializes a document
func RenderDocument(w io.Writer, doc *html.Node) error {
	return html.Render(w, doc)
}

// ParseFragment parses markup as the content of the given element
func ParseFragment(markup string, context *Element) ([]*html.Node, error) {
	contextNode := &html.Node{Type: html.ElementNode, Data: atom.Body.String(), DataAtom: atom.Body}
	if context != nil {
		// Parse against a detached copy of the context so the parser sees the
		// right insertion mode without touching the live tree.
		contextNode = &html.Node{
			Type:     html.ElementNode,
			Data:     context.node.Data,
			DataAtom: context.node.DataAtom,
		}
	}
	return html.ParseFragment(strings.NewReader(markup), contextNode)
}
