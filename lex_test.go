package htmltree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type lexedToken struct {
	Kind string
	Data string
}

func lexTokens(t *testing.T, input string) []lexedToken {
	t.Helper()

	tokens, err := lex([]byte(input))
	if err != nil {
		t.Fatalf("lex(%q) error = %v", input, err)
	}

	out := make([]lexedToken, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, lexedToken{Kind: tok.Kind.String(), Data: string(tok.Data)})
	}
	return out
}

func TestLex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []lexedToken
	}{
		{
			name:  "text and element",
			input: "<p>hi</p>",
			want: []lexedToken{
				{"tagOpenToken", "p"},
				{"textToken", "hi"},
				{"tagCloseToken", "p"},
				{"eofToken", ""},
			},
		},
		{
			name:  "self closing",
			input: "<br/>",
			want: []lexedToken{
				{"tagSelfcloseToken", "br"},
				{"eofToken", ""},
			},
		},
		{
			name:  "self closing with space",
			input: "<br />",
			want: []lexedToken{
				{"tagSelfcloseToken", "br "},
				{"eofToken", ""},
			},
		},
		{
			name:  "comment",
			input: "<!-- c -->",
			want: []lexedToken{
				{"commentToken", " c "},
				{"eofToken", ""},
			},
		},
		{
			name:  "processing instruction",
			input: "<?test?>",
			want: []lexedToken{
				{"piToken", "test"},
				{"eofToken", ""},
			},
		},
		{
			name:  "doctype",
			input: "<!DOCTYPE html>",
			want: []lexedToken{
				{"doctypeToken", "DOCTYPE html"},
				{"eofToken", ""},
			},
		},
		{
			name:  "attributes kept raw",
			input: `<div class="x y">`,
			want: []lexedToken{
				{"tagOpenToken", `div class="x y"`},
				{"eofToken", ""},
			},
		},
		{
			name:  "angle bracket inside quoted attribute",
			input: `<a title="a>b">`,
			want: []lexedToken{
				{"tagOpenToken", `a title="a>b"`},
				{"eofToken", ""},
			},
		},
		{
			name:  "angle bracket inside single-quoted attribute",
			input: `<a title='a>b'>`,
			want: []lexedToken{
				{"tagOpenToken", `a title='a>b'`},
				{"eofToken", ""},
			},
		},
		{
			name:  "angle bracket in text",
			input: "a < b",
			want: []lexedToken{
				{"textToken", "a < b"},
				{"eofToken", ""},
			},
		},
		{
			name:  "trailing angle bracket",
			input: "a<",
			want: []lexedToken{
				{"textToken", "a<"},
				{"eofToken", ""},
			},
		},
		{
			name:  "mixed document",
			input: "<!DOCTYPE html><html>x<br></html>",
			want: []lexedToken{
				{"doctypeToken", "DOCTYPE html"},
				{"tagOpenToken", "html"},
				{"textToken", "x"},
				{"tagOpenToken", "br"},
				{"tagCloseToken", "html"},
				{"eofToken", ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lexTokens(t, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("lex(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestLexLocations(t *testing.T) {
	tokens, err := lex([]byte("<p>\nhi\n</p>"))
	if err != nil {
		t.Fatalf("lex() error = %v", err)
	}

	wantLocs := []Location{
		{Line: 1, Col: 1, Pos: 0},  // <p>
		{Line: 1, Col: 4, Pos: 3},  // "\nhi\n"
		{Line: 3, Col: 1, Pos: 7},  // </p>
		{Line: 3, Col: 5, Pos: 11}, // eof
	}

	if len(tokens) != len(wantLocs) {
		t.Fatalf("lex() returned %d tokens, want %d", len(tokens), len(wantLocs))
	}
	for i, want := range wantLocs {
		if tokens[i].Loc != want {
			t.Errorf("token %d (%s) location = %v, want %v", i, tokens[i].Kind, tokens[i].Loc, want)
		}
	}
}

func TestLexUnterminated(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantDelim string
	}{
		{"comment", "<!-- never closed", "-->"},
		{"processing instruction", "<?php echo", "?>"},
		{"start tag", "<div class=", ">"},
		{"unterminated attribute quote", `<div a="x>`, ">"},
		{"unterminated single attribute quote", "<div a='x>", ">"},
		{"end tag", "</div", ">"},
		{"doctype", "<!DOCTYPE html", ">"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lex([]byte(tt.input))
			if err == nil {
				t.Fatalf("lex(%q) error = nil, want UnterminatedTokenError", tt.input)
			}

			var unterminated *UnterminatedTokenError
			if !errors.As(err, &unterminated) {
				t.Fatalf("lex(%q) error = %v, want UnterminatedTokenError", tt.input, err)
			}
			if unterminated.Delim != tt.wantDelim {
				t.Errorf("Delim = %q, want %q", unterminated.Delim, tt.wantDelim)
			}
		})
	}
}
