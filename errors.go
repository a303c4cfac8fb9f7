package htmltree

import "fmt"

// Reported when the input cannot be shaped into a single well-nested tree:
// a closing tag that does not match the open element, content outside the
// root element, multiple root elements, or no root element at all.
type MalformedMarkupError struct {
	Tag    string // offending tag name, if any
	Loc    Location
	Reason string
}

func (e *MalformedMarkupError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("%s: malformed markup: %s: %q", e.Loc, e.Reason, e.Tag)
	}
	return fmt.Sprintf("%s: malformed markup: %s", e.Loc, e.Reason)
}

// Reported when a "<", "<!--", or "<?" opens a token whose closing delimiter
// never appears before the end of input.
type UnterminatedTokenError struct {
	Delim string   // the closing delimiter that was never found
	Loc   Location // where the token started
}

func (e *UnterminatedTokenError) Error() string {
	return fmt.Sprintf("%s: unterminated token: missing %q", e.Loc, e.Delim)
}
