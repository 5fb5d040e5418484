package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is returned for malformed manifest text.
var ErrSyntax = errors.New("manifest syntax error")

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokString
	tokOpen
	tokClose
)

type token struct {
	kind tokenKind
	text string
	line int
}

type lexer struct {
	src  string
	pos  int
	line int
}

func (l *lexer) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, l.line, fmt.Sprintf(format, args...))
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case strings.HasPrefix(l.src[l.pos:], "//"):
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}, nil
	}

	switch c := l.src[l.pos]; c {
	case '{':
		l.pos++
		return token{kind: tokOpen, line: l.line}, nil
	case '}':
		l.pos++
		return token{kind: tokClose, line: l.line}, nil
	case '"':
		return l.quoted()
	default:
		start := l.pos
		for l.pos < len(l.src) && !strings.ContainsRune(" \t\r\n{}\"", rune(l.src[l.pos])) {
			l.pos++
		}
		return token{kind: tokString, text: l.src[start:l.pos], line: l.line}, nil
	}
}

func (l *lexer) quoted() (token, error) {
	line := l.line
	l.pos++ // opening quote
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '"':
			l.pos++
			return token{kind: tokString, text: b.String(), line: line}, nil
		case '\\':
			if l.pos+1 >= len(l.src) {
				return token{}, l.errorf("unterminated escape")
			}
			l.pos++
			switch e := l.src[l.pos]; e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(e)
			}
		case '\n':
			l.line++
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
		l.pos++
	}
	l.line = line
	return token{}, l.errorf("unterminated string")
}

// Parse parses manifest text into a tree. The root holds the top-level
// keys, normally just "In Game Actions".
func Parse(text string) (*Node, error) {
	l := &lexer{src: text, line: 1}
	root := NewNode()
	if err := parseBlock(l, root, false); err != nil {
		return nil, err
	}
	return root, nil
}

func parseBlock(l *lexer, n *Node, nested bool) error {
	for {
		key, err := l.next()
		if err != nil {
			return err
		}
		switch key.kind {
		case tokEOF:
			if nested {
				return l.errorf("unexpected end of input, missing '}'")
			}
			return nil
		case tokClose:
			if !nested {
				return l.errorf("unexpected '}'")
			}
			return nil
		case tokOpen:
			return l.errorf("unexpected '{', expected key")
		}

		val, err := l.next()
		if err != nil {
			return err
		}
		switch val.kind {
		case tokString:
			n.Set(key.text, val.text)
		case tokOpen:
			child := NewNode()
			if err := parseBlock(l, child, true); err != nil {
				return err
			}
			n.SetChild(key.text, child)
		default:
			return l.errorf("missing value for key %q", key.text)
		}
	}
}
