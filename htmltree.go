// Package htmltree parses HTML documents into an element tree that
// serializes as well-formed XML.
//
// The parser is tolerant of HTML's looser grammar: void elements (<br>,
// <img>, ...) need no closing tag, attributes may be unquoted or valueless,
// entities are decoded, and elements left open at the end of input are
// closed automatically.  The serializer re-escapes text and attribute values
// so the output is always acceptable to an XML parser.
package htmltree

import (
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
)

// A parsed document: a single root element plus any comments and processing
// instructions around it.  Trees are read-only after parsing and safe for
// concurrent use.
type Tree struct {
	doc  *etree.Document
	root *etree.Element
}

// Parse an HTML document or fragment.  Returns a complete tree or an error;
// there is no partial result.  Structural problems are reported as
// *MalformedMarkupError, unclosed tokens as *UnterminatedTokenError.
func FromText(text string) (*Tree, error) {
	tokens, err := lex([]byte(text))
	if err != nil {
		return nil, err
	}

	doc, root, err := build(tokens)
	if err != nil {
		return nil, err
	}

	return &Tree{doc: doc, root: root}, nil
}

// Parse an HTML file.
func ParseFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read html file %s: %w", path, err)
	}
	return FromText(string(data))
}

// The document's root element.
func (t *Tree) Root() *Node {
	return &Node{el: t.root}
}

// Serialize the tree as well-formed XML.  Always succeeds.
func (t *Tree) String() string {
	return serialize(t.doc)
}

// Write the XML serialization of the tree to w.  Implements io.WriterTo.
func (t *Tree) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.String())
	return int64(n), err
}
