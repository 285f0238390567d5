package internal

import (
	"strings"

	"go.uber.org/zap"
)

// LexerConfig holds lexer configuration
type LexerConfig struct {
	VariableOpen  string // default "{{"
	VariableClose string // default "}}"
	BlockOpen     string // default "{%"
	BlockClose    string // default "%}"
	CommentOpen   string // default "{#"
	CommentClose  string // default "#}"
}

// DefaultLexerConfig returns the default lexer configuration
func DefaultLexerConfig() LexerConfig {
	return LexerConfig{
		VariableOpen:  StrVariableOpen,
		VariableClose: StrVariableClose,
		BlockOpen:     StrBlockOpen,
		BlockClose:    StrBlockClose,
		CommentOpen:   StrCommentOpen,
		CommentClose:  StrCommentClose,
	}
}

// Lexer tokenizes template source into a token stream
type Lexer struct {
	source string
	config LexerConfig
	pos    int // Current byte position
	line   int // Current line (1-indexed)
	column int // Current column (1-indexed)
	logger *zap.Logger
}

// NewLexer creates a new lexer with default configuration
func NewLexer(source string, logger *zap.Logger) *Lexer {
	return NewLexerWithConfig(source, DefaultLexerConfig(), logger)
}

// NewLexerWithConfig creates a lexer with custom configuration
func NewLexerWithConfig(source string, config LexerConfig, logger *zap.Logger) *Lexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgLexerCreated, zap.Int(LogFieldSource, len(source)))
	return &Lexer{
		source: source,
		config: config,
		line:   1,
		column: 1,
		logger: logger,
	}
}

// Tokenize processes the source and returns a token stream terminated by EOF
func (l *Lexer) Tokenize() ([]Token, error) {
	l.logger.Debug(LogMsgTokenizerStart)
	var tokens []Token

	for !l.isAtEnd() {
		switch {
		case l.matchStr(l.config.VariableOpen):
			tok, err := l.scanTag(l.config.VariableOpen, l.config.VariableClose)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, NewVariableToken(tok.Contents, tok.Position))

		case l.matchStr(l.config.BlockOpen):
			tok, err := l.scanTag(l.config.BlockOpen, l.config.BlockClose)
			if err != nil {
				return nil, err
			}
			fields := SplitContents(tok.Contents)
			if len(fields) == 0 {
				return nil, &LexerError{Message: ErrMsgEmptyBlockTag, Position: tok.Position}
			}
			if isReservedTokenType(fields[0]) {
				return nil, &LexerError{Message: ErrMsgReservedTagName, Position: tok.Position}
			}
			tokens = append(tokens, NewBlockToken(fields[0], tok.Contents, tok.Position))

		case l.matchStr(l.config.CommentOpen):
			if _, err := l.scanTag(l.config.CommentOpen, l.config.CommentClose); err != nil {
				return nil, err
			}

		default:
			tokens = append(tokens, l.scanText())
		}
	}

	tokens = append(tokens, NewEOFToken(l.currentPosition()))
	l.logger.Debug(LogMsgTokenizerEnd, zap.Int(LogFieldTokens, len(tokens)))
	return tokens, nil
}

// scanText scans literal text until the next opening delimiter
func (l *Lexer) scanText() Token {
	startPos := l.currentPosition()
	var sb strings.Builder

	for !l.isAtEnd() {
		if l.matchStr(l.config.VariableOpen) || l.matchStr(l.config.BlockOpen) || l.matchStr(l.config.CommentOpen) {
			break
		}
		sb.WriteByte(l.advance())
	}

	return NewTextToken(sb.String(), startPos)
}

// scanTag consumes open ... close and returns the trimmed inner contents
func (l *Lexer) scanTag(open, closeDelim string) (Token, error) {
	startPos := l.currentPosition()
	l.advanceN(len(open))

	end := strings.Index(l.source[l.pos:], closeDelim)
	if end < 0 {
		return Token{}, &LexerError{Message: ErrMsgUnterminatedTag, Position: startPos}
	}

	contents := strings.TrimSpace(l.source[l.pos : l.pos+end])
	l.advanceN(end + len(closeDelim))
	return Token{Contents: contents, Position: startPos}, nil
}

// currentPosition returns the current position
func (l *Lexer) currentPosition() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// isAtEnd returns true if we've reached the end of source
func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

// advance consumes and returns the current character
func (l *Lexer) advance() byte {
	if l.isAtEnd() {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	if ch == CharNewline {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

// advanceN advances by n characters
func (l *Lexer) advanceN(n int) {
	for i := 0; i < n && !l.isAtEnd(); i++ {
		l.advance()
	}
}

// matchStr returns true if the remaining source starts with s
func (l *Lexer) matchStr(s string) bool {
	return s != "" && strings.HasPrefix(l.source[l.pos:], s)
}

// LexerError represents a lexer error with position
type LexerError struct {
	Message  string
	Position Position
}

func (e *LexerError) Error() string {
	return e.Message + " at " + e.Position.String()
}
