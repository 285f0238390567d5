package internal

import "fmt"

// Position represents a location in the source template
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Token is a lexical unit handed to tag compilers.
// Type is TokenTypeText, TokenTypeVariable, or the keyword of a block tag
// ("for", "endfor", "if", "else", ...). Contents is the raw, trimmed text
// between the delimiters.
type Token struct {
	Type     string
	Contents string
	Position Position
}

// String returns a human-readable representation of the token
func (t Token) String() string {
	if t.Contents == "" {
		return fmt.Sprintf("Token{%s @ %s}", t.Type, t.Position)
	}
	return fmt.Sprintf("Token{%s: %q @ %s}", t.Type, t.Contents, t.Position)
}

// IsEOF returns true if this is the end-of-input token
func (t Token) IsEOF() bool {
	return t.Type == TokenTypeEOF
}

// IsText returns true if this is a literal text token
func (t Token) IsText() bool {
	return t.Type == TokenTypeText
}

// IsVariable returns true if this is a {{ ... }} token
func (t Token) IsVariable() bool {
	return t.Type == TokenTypeVariable
}

// IsBlock returns true if this is a {% ... %} token
func (t Token) IsBlock() bool {
	return !t.IsEOF() && !t.IsText() && !t.IsVariable()
}

// NewTextToken creates a text token
func NewTextToken(content string, pos Position) Token {
	return Token{Type: TokenTypeText, Contents: content, Position: pos}
}

// NewVariableToken creates a variable token
func NewVariableToken(contents string, pos Position) Token {
	return Token{Type: TokenTypeVariable, Contents: contents, Position: pos}
}

// NewBlockToken creates a block token whose type is the tag keyword
func NewBlockToken(keyword, contents string, pos Position) Token {
	return Token{Type: keyword, Contents: contents, Position: pos}
}

// NewEOFToken creates an EOF token at the given position
func NewEOFToken(pos Position) Token {
	return Token{Type: TokenTypeEOF, Position: pos}
}

// SplitContents splits tag contents into whitespace-separated fields,
// keeping quoted sections together.
func SplitContents(contents string) []string {
	var (
		fields []string
		cur    []byte
		quote  byte
	)
	for i := 0; i < len(contents); i++ {
		ch := contents[i]
		switch {
		case quote != 0:
			cur = append(cur, ch)
			if ch == quote {
				quote = 0
			}
		case ch == CharDoubleQuote || ch == CharSingleQuote:
			quote = ch
			cur = append(cur, ch)
		case isSpace(ch):
			if len(cur) > 0 {
				fields = append(fields, string(cur))
				cur = cur[:0]
			}
		default:
			cur = append(cur, ch)
		}
	}
	if len(cur) > 0 {
		fields = append(fields, string(cur))
	}
	return fields
}

// isReservedTokenType reports whether a block keyword would shadow a
// non-block token type
func isReservedTokenType(keyword string) bool {
	return keyword == TokenTypeText || keyword == TokenTypeVariable || keyword == TokenTypeEOF
}

func isSpace(ch byte) bool {
	return ch == CharSpace || ch == CharTab || ch == CharNewline || ch == CharCarriageRet
}
