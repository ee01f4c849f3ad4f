package parser

import (
	"bytes"
	"unicode/utf8"
)

var balancePrefix = []byte("Balance:")

// Lexer tokenizes records files and add input.
type Lexer struct {
	source    []byte
	filename  string
	pos       int
	line      int
	column    int
	lineStart bool
	keywords  bool
	tokens    []Token
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source []byte, filename string) *Lexer {
	return &Lexer{
		source:    source,
		filename:  filename,
		line:      1,
		column:    1,
		lineStart: true,
		keywords:  true,
		tokens:    make([]Token, 0, len(source)/6+8),
	}
}

// WithoutKeywords makes the lexer scan Balance: as an ordinary word.
func (l *Lexer) WithoutKeywords() *Lexer {
	l.keywords = false
	return l
}

// ScanAll lexes the entire source and returns all tokens, ending with EOF.
func (l *Lexer) ScanAll() []Token {
	for l.pos < len(l.source) {
		l.skipWhitespace()
		if l.pos >= len(l.source) {
			break
		}
		l.tokens = append(l.tokens, l.scanToken())
	}

	l.tokens = append(l.tokens, Token{
		Type:   EOF,
		Start:  l.pos,
		End:    l.pos,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens
}

func (l *Lexer) scanToken() Token {
	start := l.pos
	tok := Token{Start: start, Line: l.line, Column: l.column}

	switch ch := l.source[l.pos]; {
	case ch == '\n':
		l.advance()
		tok.Type = NEWLINE
	case ch == ',':
		l.advance()
		tok.Type = COMMA
	case l.keywords && l.lineStart && bytes.HasPrefix(l.source[l.pos:], balancePrefix):
		for range balancePrefix {
			l.advance()
		}
		tok.Type = BALANCE
	default:
		for l.pos < len(l.source) && !isSeparator(l.source[l.pos]) {
			l.advance()
		}
		tok.Type = WORD
		if isInteger(l.source[start:l.pos]) {
			tok.Type = INTEGER
		}
	}

	tok.End = l.pos
	l.lineStart = tok.Type == NEWLINE
	return tok
}

func (l *Lexer) advance() {
	if l.source[l.pos] == '\n' {
		l.pos++
		l.line++
		l.column = 1
		return
	}
	_, size := utf8.DecodeRune(l.source[l.pos:])
	l.pos += size
	l.column++
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source) {
		switch l.source[l.pos] {
		case ' ', '\t', '\r', '\v', '\f':
			l.advance()
		default:
			return
		}
	}
}

func isSeparator(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\v', '\f', '\n', ',':
		return true
	}
	return false
}

// isInteger matches an optional leading minus followed by ASCII digits.
func isInteger(b []byte) bool {
	if len(b) > 0 && b[0] == '-' {
		b = b[1:]
	}
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
