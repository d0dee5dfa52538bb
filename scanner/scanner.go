// Package scanner turns s-expression source text into a flat sequence of
// tokens. It is the first stage of the sexpc pipeline: a single
// left-to-right pass that picks each branch from the current character
// alone and never backtracks.
package scanner

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"modernc.org/token"
)

// Kind identifies the lexical class of a token.
type Kind int

const (
	Paren  Kind = iota // "(" or ")", distinguished by Text
	Number             // maximal run of ASCII digits
	String             // raw text between double quotes
	Name               // maximal run of ASCII letters
)

var kindNames = [...]string{
	Paren:  "paren",
	Number: "number",
	String: "string",
	Name:   "name",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexeme. For String tokens Text holds the content
// without the surrounding quotes.
type Token struct {
	Kind Kind
	Text string
	Pos  token.Position
}

// IsOpen reports whether t is an opening parenthesis.
func (t Token) IsOpen() bool { return t.Kind == Paren && t.Text == "(" }

// IsClose reports whether t is a closing parenthesis.
func (t Token) IsClose() bool { return t.Kind == Paren && t.Text == ")" }

func (t Token) String() string {
	if t.Kind == String {
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	}
	return fmt.Sprintf("%s %s", t.Kind, t.Text)
}

var (
	ErrUnknownCharacter   = errors.New("unknown character")
	ErrUnterminatedString = errors.New("unterminated string")
)

// LexError reports the first character the scanner could not handle.
// Char is the offending character for ErrUnknownCharacter and the opening
// quote for ErrUnterminatedString; Pos points at it.
type LexError struct {
	Err  error
	Char rune
	Pos  token.Position
}

func (e *LexError) Error() string {
	if !e.Pos.IsValid() {
		return fmt.Sprintf("%v %q", e.Err, e.Char)
	}
	return fmt.Sprintf("%s: %v %q", e.Pos, e.Err, e.Char)
}

func (e *LexError) Unwrap() error { return e.Err }

// Scanner holds the cursor over one source text.
type Scanner struct {
	src  string
	pos  int
	file *token.File
}

// New creates a Scanner for src. The name only shows up in error
// positions and may be empty.
func New(name, src string) *Scanner {
	f := token.NewFile(name, len(src))
	f.SetLinesForContent([]byte(src))
	return &Scanner{src: src, file: f}
}

// Tokenize scans src with an unnamed Scanner.
func Tokenize(src string) ([]Token, error) {
	return New("", src).Tokenize()
}

// Tokenize scans the whole input and returns every token in source order.
// Nothing is returned alongside an error.
func (s *Scanner) Tokenize() ([]Token, error) {
	var toks []Token
	for s.pos < len(s.src) {
		ch, size := s.peek()
		start := s.pos
		switch {
		case ch == '(' || ch == ')':
			s.pos++
			toks = append(toks, s.emit(Paren, start))
		case unicode.IsSpace(ch):
			s.pos += size
		case isDigit(ch):
			s.skipWhile(isDigit)
			toks = append(toks, s.emit(Number, start))
		case ch == '"':
			tok, err := s.scanString()
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
		case isLetter(ch):
			s.skipWhile(isLetter)
			toks = append(toks, s.emit(Name, start))
		default:
			return nil, &LexError{Err: ErrUnknownCharacter, Char: ch, Pos: s.position(start)}
		}
	}
	return toks, nil
}

// scanString consumes a double-quoted string. The opening quote is at the
// cursor.
func (s *Scanner) scanString() (Token, error) {
	start := s.pos
	s.pos++
	for s.pos < len(s.src) && s.src[s.pos] != '"' {
		s.pos++
	}
	if s.pos >= len(s.src) {
		return Token{}, &LexError{Err: ErrUnterminatedString, Char: '"', Pos: s.position(start)}
	}
	tok := Token{Kind: String, Text: s.src[start+1 : s.pos], Pos: s.position(start)}
	s.pos++
	return tok, nil
}

func (s *Scanner) skipWhile(pred func(rune) bool) {
	for s.pos < len(s.src) {
		ch, size := s.peek()
		if !pred(ch) {
			return
		}
		s.pos += size
	}
}

func (s *Scanner) emit(kind Kind, start int) Token {
	return Token{Kind: kind, Text: s.src[start:s.pos], Pos: s.position(start)}
}

// peek decodes the rune at the cursor without advancing.
func (s *Scanner) peek() (rune, int) {
	return utf8.DecodeRuneInString(s.src[s.pos:])
}

func (s *Scanner) position(offset int) token.Position {
	return s.file.Position(s.file.Pos(offset))
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isLetter(ch rune) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}
