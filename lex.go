package htmltree

import (
	"bytes"
	"fmt"
)

// Cursor location in the input text.
type Location struct {
	Line int // 1-indexed line number
	Col  int // 1-indexed column number
	Pos  int // 0-indexed byte offset
}

// Error message-friendly string representation.
func (loc Location) String() string {
	return fmt.Sprintf("%d:%d", loc.Line, loc.Col)
}

type tokenKind int

const (
	invalidToken tokenKind = iota
	textToken
	tagOpenToken
	tagCloseToken
	tagSelfcloseToken
	commentToken
	piToken
	doctypeToken
	eofToken
)

func (kind tokenKind) String() string {
	switch kind {
	case textToken:
		return "textToken"
	case tagOpenToken:
		return "tagOpenToken"
	case tagCloseToken:
		return "tagCloseToken"
	case tagSelfcloseToken:
		return "tagSelfcloseToken"
	case commentToken:
		return "commentToken"
	case piToken:
		return "piToken"
	case doctypeToken:
		return "doctypeToken"
	case eofToken:
		return "eofToken"
	default:
		return "invalidToken"
	}
}

type token struct {
	Kind tokenKind
	Loc  Location
	Data []byte
}

func (tok token) String() string {
	return fmt.Sprintf("%s: %s %q", tok.Loc, tok.Kind, tok.Data)
}

var (
	commentStart     = []byte("<!--")
	commentEnd       = []byte("-->")
	declarationStart = []byte("<!")
	piStart          = []byte("<?")
	piEnd            = []byte("?>")
	closeTagStart    = []byte("</")
	tagEnd           = []byte(">")
)

// Advance through data until it is prefixed by prefix, updating line and
// column counts along the way.  The boolean result reports whether the prefix
// was found before the end of input.
func stepUntil(data []byte, prefix []byte, loc Location) (Location, bool) {
	for loc.Pos < len(data) && !bytes.HasPrefix(data[loc.Pos:], prefix) {
		if data[loc.Pos] == '\n' {
			loc.Line++
			loc.Col = 1
		} else {
			loc.Col++
		}
		loc.Pos++
	}

	return loc, loc.Pos < len(data)
}

// Skip n bytes of a delimiter.  Delimiters never contain newlines.
func skip(loc Location, n int) Location {
	loc.Pos += n
	loc.Col += n
	return loc
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// A '<' opens a markup token only when followed by a tag name, '/', '!', or
// '?'.  Any other '<' (e.g. "5 < 6") is ordinary text.
func isTokenStart(data []byte, i int) bool {
	if data[i] != '<' || i+1 >= len(data) {
		return false
	}
	c := data[i+1]
	return isLetter(c) || c == '/' || c == '!' || c == '?'
}

func lexComment(data []byte, loc Location) (token, Location, error) {
	tok := token{Kind: commentToken, Loc: loc}

	inner := skip(loc, len(commentStart))
	end, ok := stepUntil(data, commentEnd, inner)
	if !ok {
		return tok, end, &UnterminatedTokenError{Delim: string(commentEnd), Loc: loc}
	}

	tok.Data = data[inner.Pos:end.Pos]
	return tok, skip(end, len(commentEnd)), nil
}

func lexPI(data []byte, loc Location) (token, Location, error) {
	tok := token{Kind: piToken, Loc: loc}

	inner := skip(loc, len(piStart))
	end, ok := stepUntil(data, piEnd, inner)
	if !ok {
		return tok, end, &UnterminatedTokenError{Delim: string(piEnd), Loc: loc}
	}

	tok.Data = data[inner.Pos:end.Pos]
	return tok, skip(end, len(piEnd)), nil
}

func lexDeclaration(data []byte, loc Location) (token, Location, error) {
	tok := token{Kind: doctypeToken, Loc: loc}

	inner := skip(loc, len(declarationStart))
	end, ok := stepUntil(data, tagEnd, inner)
	if !ok {
		return tok, end, &UnterminatedTokenError{Delim: string(tagEnd), Loc: loc}
	}

	tok.Data = data[inner.Pos:end.Pos]
	return tok, skip(end, len(tagEnd)), nil
}

func lexTagClose(data []byte, loc Location) (token, Location, error) {
	tok := token{Kind: tagCloseToken, Loc: loc}

	inner := skip(loc, len(closeTagStart))
	end, ok := stepUntil(data, tagEnd, inner)
	if !ok {
		return tok, end, &UnterminatedTokenError{Delim: string(tagEnd), Loc: loc}
	}

	tok.Data = data[inner.Pos:end.Pos]
	return tok, skip(end, len(tagEnd)), nil
}

// Scan a start tag for its closing '>', honoring quoted attribute values so
// that a '>' inside quotes stays part of the value.
func lexTagOpen(data []byte, loc Location) (token, Location, error) {
	tok := token{Loc: loc}

	cur := skip(loc, 1)
	var quote byte
	for cur.Pos < len(data) {
		c := data[cur.Pos]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
		} else if c == '"' || c == '\'' {
			quote = c
		} else if c == '>' {
			break
		}

		if c == '\n' {
			cur.Line++
			cur.Col = 1
		} else {
			cur.Col++
		}
		cur.Pos++
	}

	if cur.Pos >= len(data) {
		return tok, cur, &UnterminatedTokenError{Delim: string(tagEnd), Loc: loc}
	}

	start := loc.Pos + 1
	if cur.Pos > start && data[cur.Pos-1] == '/' {
		tok.Kind = tagSelfcloseToken
		tok.Data = data[start : cur.Pos-1]
	} else {
		tok.Kind = tagOpenToken
		tok.Data = data[start:cur.Pos]
	}

	return tok, skip(cur, len(tagEnd)), nil
}

// Consume a run of text up to the next '<' that opens a markup token, or the
// end of input.  Never fails and never produces an empty token: the lexer
// only dispatches here when the current byte does not open a token.
func lexText(data []byte, loc Location) (token, Location) {
	tok := token{Kind: textToken, Loc: loc}

	cur := loc
	for cur.Pos < len(data) && !(data[cur.Pos] == '<' && isTokenStart(data, cur.Pos)) {
		if data[cur.Pos] == '\n' {
			cur.Line++
			cur.Col = 1
		} else {
			cur.Col++
		}
		cur.Pos++
	}

	tok.Data = data[loc.Pos:cur.Pos]
	return tok, cur
}

func lex(data []byte) ([]token, error) {
	tokens := make([]token, 0, len(data)/5)
	loc := Location{Line: 1, Col: 1, Pos: 0}

	for loc.Pos < len(data) {
		var tok token
		var err error

		switch {
		case !isTokenStart(data, loc.Pos):
			tok, loc = lexText(data, loc)
		case bytes.HasPrefix(data[loc.Pos:], commentStart):
			tok, loc, err = lexComment(data, loc)
		case bytes.HasPrefix(data[loc.Pos:], declarationStart):
			tok, loc, err = lexDeclaration(data, loc)
		case bytes.HasPrefix(data[loc.Pos:], piStart):
			tok, loc, err = lexPI(data, loc)
		case bytes.HasPrefix(data[loc.Pos:], closeTagStart):
			tok, loc, err = lexTagClose(data, loc)
		default:
			tok, loc, err = lexTagOpen(data, loc)
		}

		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}

	tokens = append(tokens, token{Kind: eofToken, Loc: loc})
	return tokens, nil
}
