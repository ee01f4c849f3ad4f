// Package parser turns records files and add input into entries.
//
// Both inputs share one lexer. Add input separates entries with commas or
// newlines; a records file holds one entry per line plus a Balance: line.
// Category names are not checked here, that needs the category tree and
// happens in the ledger.
package parser

import (
	"context"
	"strconv"

	"github.com/robinvdvleuten/spendlog/telemetry"
)

// Entry is a syntactically valid record entry.
type Entry struct {
	Pos         Position
	Category    string
	Description string
	Amount      int64
	Text        string
}

// File is the parsed content of a records file.
type File struct {
	Filename   string
	Entries    []Entry
	Balance    int64
	HasBalance bool
	Errors     []error
}

type parser struct {
	source   []byte
	filename string
	tokens   []Token
	pos      int
}

func newParser(source []byte, filename string, lexer *Lexer) *parser {
	return &parser{
		source:   source,
		filename: filename,
		tokens:   lexer.ScanAll(),
	}
}

// ParseEntries parses add input. Entries are separated by commas or
// newlines; blank entries are ignored. The returned errors are all
// *ParseError.
func ParseEntries(filename string, source []byte) ([]Entry, []error) {
	p := newParser(source, filename, NewLexer(source, filename).WithoutKeywords())

	var entries []Entry
	var errs []error
	for !p.done() {
		group := p.collect(func(t Token) bool { return t.Type == COMMA || t.Type == NEWLINE })
		p.skip()
		if len(group) == 0 {
			continue
		}
		entry, err := p.entry(group)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, errs
}

// ParseFile parses a records file. Malformed lines end up in File.Errors and
// never stop later lines from parsing. When several Balance: lines are
// present the last valid one wins.
func ParseFile(ctx context.Context, filename string, source []byte) *File {
	timer := telemetry.FromContext(ctx).Start("parser.parse")
	defer timer.End()

	p := newParser(source, filename, NewLexer(source, filename))
	f := &File{Filename: filename}

	for !p.done() {
		line := p.collect(func(t Token) bool { return t.Type == NEWLINE })
		p.skip()
		if len(line) == 0 {
			continue
		}

		if line[0].Type == BALANCE {
			balance, err := p.balance(line)
			if err != nil {
				f.Errors = append(f.Errors, err)
				continue
			}
			f.Balance = balance
			f.HasBalance = true
			continue
		}

		if comma := indexOf(line, COMMA); comma >= 0 {
			f.Errors = append(f.Errors, &ParseError{
				Pos:  line[comma].position(filename),
				Text: p.text(line),
				Err:  ErrUnexpectedToken,
			})
			continue
		}

		entry, err := p.entry(line)
		if err != nil {
			f.Errors = append(f.Errors, err)
			continue
		}
		f.Entries = append(f.Entries, entry)
	}

	return f
}

func (p *parser) done() bool {
	return p.tokens[p.pos].Type == EOF
}

// collect returns the tokens up to, not including, the first token matching
// stop or EOF.
func (p *parser) collect(stop func(Token) bool) []Token {
	start := p.pos
	for !p.done() && !stop(p.tokens[p.pos]) {
		p.pos++
	}
	return p.tokens[start:p.pos]
}

// skip consumes a single separator token.
func (p *parser) skip() {
	if !p.done() {
		p.pos++
	}
}

func (p *parser) text(toks []Token) string {
	return string(p.source[toks[0].Start:toks[len(toks)-1].End])
}

func (p *parser) entry(toks []Token) (Entry, error) {
	pos := toks[0].position(p.filename)
	text := p.text(toks)

	if len(toks) != 3 {
		return Entry{}, &ParseError{Pos: pos, Text: text, Err: ErrWrongFieldCount}
	}

	amountTok := toks[2]
	if amountTok.Type != INTEGER {
		return Entry{}, &ParseError{Pos: amountTok.position(p.filename), Text: text, Err: ErrInvalidAmount}
	}
	amount, err := strconv.ParseInt(amountTok.String(p.source), 10, 64)
	if err != nil {
		return Entry{}, &ParseError{Pos: amountTok.position(p.filename), Text: text, Err: ErrInvalidAmount}
	}

	return Entry{
		Pos:         pos,
		Category:    toks[0].String(p.source),
		Description: toks[1].String(p.source),
		Amount:      amount,
		Text:        text,
	}, nil
}

func (p *parser) balance(toks []Token) (int64, error) {
	fail := &ParseError{Pos: toks[0].position(p.filename), Text: p.text(toks), Err: ErrInvalidBalance}
	if len(toks) != 2 || toks[1].Type != INTEGER {
		return 0, fail
	}
	balance, err := strconv.ParseInt(toks[1].String(p.source), 10, 64)
	if err != nil {
		return 0, fail
	}
	return balance, nil
}

func indexOf(toks []Token, typ TokenType) int {
	for i, t := range toks {
		if t.Type == typ {
			return i
		}
	}
	return -1
}
