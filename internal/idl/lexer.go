package idl

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/idlbridge/idlbridge/internal/errors"
)

// lexer is a one-token-lookahead wrapper around text/scanner.
type lexer struct {
	s    scanner.Scanner
	tok  rune
	text string
	pos  scanner.Position
	err  error
}

func newLexer(filename, src string) *lexer {
	l := &lexer{}
	l.s.Init(strings.NewReader(src))
	l.s.Filename = filename
	l.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanStrings | scanner.ScanComments | scanner.SkipComments
	l.s.Error = func(s *scanner.Scanner, msg string) {
		if l.err == nil {
			l.err = errors.Parse(nil, "%s: %s", s.Position, msg)
		}
	}
	l.next()
	return l
}

func (l *lexer) next() {
	l.tok = l.s.Scan()
	l.text = l.s.TokenText()
	l.pos = l.s.Position
}

// is reports whether the current token is the identifier or punctuation s.
func (l *lexer) is(s string) bool {
	return l.tok != scanner.EOF && l.tok != scanner.String && l.text == s
}

// accept consumes the current token if it is s.
func (l *lexer) accept(s string) bool {
	if l.is(s) {
		l.next()
		return true
	}
	return false
}

// expect consumes s or fails.
func (l *lexer) expect(s string) error {
	if !l.accept(s) {
		return l.errorf("expected %q", s)
	}
	return nil
}

// ident consumes an identifier and returns it.
func (l *lexer) ident() (string, error) {
	if l.tok != scanner.Ident {
		return "", l.errorf("expected identifier")
	}
	name := l.text
	l.next()
	return name, nil
}

func (l *lexer) errorf(format string, args ...any) error {
	if l.err != nil {
		return l.err
	}
	found := l.text
	if l.tok == scanner.EOF {
		found = "end of file"
	}
	return errors.Parse(nil, "%s: %s, found %q", l.pos, fmt.Sprintf(format, args...), found)
}
