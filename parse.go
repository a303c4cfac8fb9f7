package htmltree

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Elements that never have content and never take a closing tag.
var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

func isVoidName(name string) bool {
	a := atom.Lookup([]byte(name))
	return a != 0 && voidElements[a]
}

var equals = []byte("=")

func isSpace(c byte) bool {
	return c == '\t' || c == '\n' || c == '\f' || c == '\r' || c == ' '
}

// Find the end of a tag field, scanning past a quoted or unquoted attribute
// value if the field has one.
func findAttrEnd(data []byte) int {
	i := 0
	for {
		i++
		if i >= len(data) || isSpace(data[i]) {
			return i
		} else if data[i] == '=' {
			break
		}
	}

	i += 1
	if i >= len(data) || isSpace(data[i]) {
		return i
	}

	if data[i] == '"' || data[i] == '\'' {
		quote := data[i]
		i++
		for i < len(data) && data[i] != quote {
			i++
		}
		if i < len(data) {
			// step past the closing quote; an unterminated quote ends
			// the field at end of input
			i++
		}
	} else {
		for i < len(data) && !isSpace(data[i]) {
			i++
		}
	}

	return i
}

// Split the interior of a start tag into its fields: the tag name followed by
// one attribute per field (e.g. <tag attr1=val attr2="val with space">
// => ["tag", "attr1=val", `attr2="val with space"`]).
func splitAttrs(data []byte) [][]byte {
	fields := make([][]byte, 0, 8)

	i := 0
	for {
		for i < len(data) && isSpace(data[i]) {
			i++
		}
		if i >= len(data) {
			break
		}

		n := findAttrEnd(data[i:])
		fields = append(fields, data[i:i+n])
		i += n
	}

	return fields
}

// Split one attribute field into a lowercased key and a decoded value.  A
// bare field (no '=') is a boolean attribute with an empty value.
func parseAttr(field []byte) (string, string) {
	keyData, valData, found := bytes.Cut(field, equals)
	key := strings.ToLower(string(keyData))
	if !found {
		return key, ""
	}

	valData = bytes.Trim(valData, "\"'")
	return key, html.UnescapeString(string(valData))
}

func parseStartTag(tok token) (string, []Attribute, error) {
	fields := splitAttrs(tok.Data)
	if len(fields) == 0 {
		return "", nil, &MalformedMarkupError{Loc: tok.Loc, Reason: "empty start tag"}
	}

	name := strings.ToLower(string(fields[0]))

	attrs := make([]Attribute, 0, len(fields)-1)
	for _, field := range fields[1:] {
		key, val := parseAttr(field)
		attrs = append(attrs, Attribute{Key: key, Value: val})
	}

	return name, attrs, nil
}

// Split a processing instruction body into target and instruction on the
// first space, so the serializer can rejoin them byte-identically.
func splitPI(data string) (string, string) {
	target, inst, found := strings.Cut(data, " ")
	if !found {
		return data, ""
	}
	return target, inst
}

// Build an element tree from the token stream, maintaining a stack of open
// elements whose bottom entry is the document itself.  Elements still open at
// the end of input are closed as if their end tags had been seen.
func build(tokens []token) (*etree.Document, *etree.Element, error) {
	doc := etree.NewDocument()
	open := make(stack[*etree.Element], 0, 16)
	open.Push(&doc.Element)

loop:
	for _, tok := range tokens {
		parent, ok := open.Peek()
		if !ok {
			return nil, nil, &MalformedMarkupError{Loc: tok.Loc, Reason: "empty element stack"}
		}
		atDocument := open.Len() == 1

		switch tok.Kind {
		case eofToken:
			// remaining open elements auto-close; their children are
			// already attached
			break loop

		case doctypeToken:
			// consumed, nothing emitted

		case textToken:
			text := html.UnescapeString(string(tok.Data))
			if atDocument {
				if strings.TrimSpace(text) != "" {
					return nil, nil, &MalformedMarkupError{Loc: tok.Loc, Reason: "text outside root element"}
				}
				continue loop
			}
			parent.AddChild(etree.NewText(text))

		case commentToken:
			parent.AddChild(etree.NewComment(string(tok.Data)))

		case piToken:
			target, inst := splitPI(string(tok.Data))
			parent.AddChild(etree.NewProcInst(target, inst))

		case tagOpenToken, tagSelfcloseToken:
			name, attrs, err := parseStartTag(tok)
			if err != nil {
				return nil, nil, err
			}
			if atDocument && len(doc.ChildElements()) > 0 {
				return nil, nil, &MalformedMarkupError{Tag: name, Loc: tok.Loc, Reason: "multiple root elements"}
			}

			el := etree.NewElement(name)
			for _, attr := range attrs {
				el.CreateAttr(attr.Key, attr.Value)
			}
			parent.AddChild(el)

			if tok.Kind == tagOpenToken && !isVoidName(name) {
				open.Push(el)
			}

		case tagCloseToken:
			name := strings.ToLower(string(bytes.TrimSpace(tok.Data)))
			if name == "" {
				return nil, nil, &MalformedMarkupError{Loc: tok.Loc, Reason: "empty end tag"}
			}
			if isVoidName(name) {
				// e.g. </br>; void elements are never on the stack
				continue loop
			}
			if atDocument {
				return nil, nil, &MalformedMarkupError{Tag: name, Loc: tok.Loc, Reason: "end tag without open element"}
			}
			if parent.Tag != name {
				reason := fmt.Sprintf("end tag does not match open element %q", parent.Tag)
				return nil, nil, &MalformedMarkupError{Tag: name, Loc: tok.Loc, Reason: reason}
			}
			open.Pop()

		default:
			return nil, nil, &MalformedMarkupError{Loc: tok.Loc, Reason: fmt.Sprintf("unexpected token: %s", tok.Kind)}
		}
	}

	roots := doc.ChildElements()
	if len(roots) == 0 {
		loc := Location{Line: 1, Col: 1}
		if len(tokens) > 0 {
			loc = tokens[len(tokens)-1].Loc
		}
		return nil, nil, &MalformedMarkupError{Loc: loc, Reason: "no root element"}
	}

	return doc, roots[0], nil
}
