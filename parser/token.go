package parser

// TokenType represents the type of token scanned from the input.
type TokenType uint8

const (
	EOF TokenType = iota

	BALANCE // Balance: at the start of a line

	WORD    // any run of characters without whitespace or commas
	INTEGER // 123 or -123

	COMMA   // ,
	NEWLINE // \n
)

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	BALANCE: "BALANCE",
	WORD:    "WORD",
	INTEGER: "INTEGER",
	COMMA:   ",",
	NEWLINE: "NEWLINE",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token stores byte offsets into the source buffer instead of its text.
type Token struct {
	Type   TokenType
	Start  int // Byte offset into source buffer
	End    int // End offset (exclusive)
	Line   int // Line number (1-indexed)
	Column int // Column number (1-indexed, in runes)
}

// String materializes the token text from the source buffer.
func (t Token) String(source []byte) string {
	if t.Start > len(source) || t.End > len(source) || t.Start > t.End {
		return ""
	}
	return string(source[t.Start:t.End])
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}
