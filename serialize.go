package htmltree

import (
	"strings"

	"github.com/beevik/etree"
)

// XML has five predefined entities; HTML text decoded during parsing may
// contain any of the characters they stand for, so content is re-escaped on
// the way out.  Content needs & < >, attribute values additionally need the
// double quote that delimits them.
var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
)

// XML comments cannot contain "--".  Break up any run of hyphen pairs rather
// than emitting a comment that no XML parser would accept.
func guardComment(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "- -")
	}
	if strings.HasSuffix(s, "-") {
		// a trailing hyphen would run into the closing delimiter
		s += " "
	}
	return s
}

func writeToken(sb *strings.Builder, tok etree.Token) {
	switch tok := tok.(type) {
	case *etree.Element:
		writeElement(sb, tok)
	case *etree.CharData:
		sb.WriteString(textEscaper.Replace(tok.Data))
	case *etree.Comment:
		sb.WriteString("<!--")
		sb.WriteString(guardComment(tok.Data))
		sb.WriteString("-->")
	case *etree.ProcInst:
		sb.WriteString("<?")
		sb.WriteString(tok.Target)
		if tok.Inst != "" {
			sb.WriteString(" ")
			sb.WriteString(tok.Inst)
		}
		sb.WriteString("?>")
	}
}

func writeElement(sb *strings.Builder, el *etree.Element) {
	sb.WriteString("<")
	sb.WriteString(el.FullTag())

	for _, attr := range el.Attr {
		sb.WriteString(" ")
		sb.WriteString(attr.FullKey())
		sb.WriteString(`="`)
		sb.WriteString(attrEscaper.Replace(attr.Value))
		sb.WriteString(`"`)
	}

	// Originally-void elements keep their self-closing form.  A non-void
	// element that happens to be empty still gets an explicit end tag.
	if isVoidName(el.Tag) && len(el.Child) == 0 {
		sb.WriteString(" />")
		return
	}

	sb.WriteString(">")
	for _, child := range el.Child {
		writeToken(sb, child)
	}
	sb.WriteString("</")
	sb.WriteString(el.FullTag())
	sb.WriteString(">")
}

func serialize(doc *etree.Document) string {
	var sb strings.Builder
	for _, tok := range doc.Child {
		writeToken(&sb, tok)
	}
	return sb.String()
}
