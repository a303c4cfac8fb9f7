package htmltree

import (
	"strings"

	"github.com/beevik/etree"
)

// A single name/value pair on an element, in source order.  Boolean
// attributes (present without a value) carry an empty Value.
type Attribute struct {
	Key   string
	Value string
}

// Read-only view of one element in a parsed tree: tag name, attributes in
// source order, the text inside the element before its first child, the tail
// text between its end tag and the next sibling, and its element children.
type Node struct {
	el *etree.Element
}

// Element name, lowercased.
func (node *Node) Tag() string {
	return node.el.FullTag()
}

// Attributes in source order.
func (node *Node) Attrs() []Attribute {
	attrs := make([]Attribute, 0, len(node.el.Attr))
	for _, attr := range node.el.Attr {
		attrs = append(attrs, Attribute{Key: attr.FullKey(), Value: attr.Value})
	}
	return attrs
}

// Look up an attribute value by its lowercased key.  The boolean result
// distinguishes a boolean attribute (present, empty value) from an absent
// one.
func (node *Node) Attr(key string) (string, bool) {
	for _, attr := range node.el.Attr {
		if attr.FullKey() == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Text immediately inside the element, before its first child.
func (node *Node) Text() string {
	return node.el.Text()
}

// Text immediately following the element's end tag, before the next sibling
// or the parent's end tag.
func (node *Node) Tail() string {
	return node.el.Tail()
}

// Element children in document order.  Comments and processing instructions
// are carried in the tree and serialized in place, but are not children.
func (node *Node) Children() []*Node {
	els := node.el.ChildElements()
	children := make([]*Node, 0, len(els))
	for _, el := range els {
		children = append(children, &Node{el: el})
	}
	return children
}

// Whether the element is one of the HTML void elements (br, img, hr, ...),
// which always serialize in self-closing form.
func (node *Node) IsVoid() bool {
	return isVoidName(node.el.Tag)
}

// Find the first descendant element with the tag name tagName, including the
// node itself, in depth-first document order.  Returns nil if no element
// matches.
func (node *Node) Find(tagName string) *Node {
	tagName = strings.ToLower(tagName)

	stk := make(stack[*etree.Element], 0, 16)
	stk.Push(node.el)

	for el, ok := stk.Pop(); ok; el, ok = stk.Pop() {
		if el.Tag == tagName {
			return &Node{el: el}
		}

		// reverse iteration so that first child is popped first
		els := el.ChildElements()
		for i := len(els) - 1; i >= 0; i-- {
			stk.Push(els[i])
		}
	}

	return nil
}

// Find all descendant elements with the tag name tagName, including the node
// itself, in depth-first document order.  Returns an empty, non-nil slice if
// no element matches.
func (node *Node) FindAll(tagName string) []*Node {
	tagName = strings.ToLower(tagName)
	matches := make([]*Node, 0, 16)

	stk := make(stack[*etree.Element], 0, 16)
	stk.Push(node.el)

	for el, ok := stk.Pop(); ok; el, ok = stk.Pop() {
		if el.Tag == tagName {
			matches = append(matches, &Node{el: el})
		}

		// reverse iteration so that first child is popped first
		els := el.ChildElements()
		for i := len(els) - 1; i >= 0; i-- {
			stk.Push(els[i])
		}
	}

	return matches
}

// Concatenated text of the node and all its descendants, in document order.
// The node's own tail is not included.
func (node *Node) TextContent() string {
	var sb strings.Builder

	stk := make(stack[etree.Token], 0, 16)
	for i := len(node.el.Child) - 1; i >= 0; i-- {
		stk.Push(node.el.Child[i])
	}

	for tok, ok := stk.Pop(); ok; tok, ok = stk.Pop() {
		switch tok := tok.(type) {
		case *etree.CharData:
			sb.WriteString(tok.Data)
		case *etree.Element:
			for i := len(tok.Child) - 1; i >= 0; i-- {
				stk.Push(tok.Child[i])
			}
		}
	}

	return sb.String()
}
