package internal

import (
	"strings"

	"go.uber.org/zap"
)

// Parser drives tag compilation over a token stream. Tag compilers receive
// the parser so they can parse nested bodies and consume terminators.
type Parser struct {
	tokens  []Token
	pos     int
	tags    *TagTable
	filters *FilterTable
	logger  *zap.Logger
}

// NewParser creates a new parser for the given token stream
func NewParser(tokens []Token, tags *TagTable, filters *FilterTable, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tags == nil {
		tags = DefaultTagTable()
	}
	if filters == nil {
		filters = DefaultFilterTable()
	}
	logger.Debug(LogMsgParserCreated, zap.Int(LogFieldTokens, len(tokens)))
	return &Parser{
		tokens:  tokens,
		tags:    tags,
		filters: filters,
		logger:  logger,
	}
}

// ParseTemplate parses the whole stream into a top-level node list
func (p *Parser) ParseTemplate() ([]Node, error) {
	p.logger.Debug(LogMsgParserStart)
	nodes, err := p.Parse()
	if err != nil {
		return nil, err
	}
	p.logger.Debug(LogMsgParserEnd, zap.Int(LogFieldNodes, len(nodes)))
	return nodes, nil
}

// Parse compiles tokens into nodes until a block token whose keyword is in
// stop is at the front of the stream. That token is left unconsumed. Running
// out of tokens while stop keywords are pending is an unclosed tag error.
func (p *Parser) Parse(stop ...string) ([]Node, error) {
	var nodes []Node

	for {
		tok := p.peek()
		if tok.IsEOF() {
			if len(stop) > 0 {
				return nil, NewSyntaxError(ErrMsgUnclosedTag+": "+ErrMsgExpected+" "+strings.Join(stop, ", "), StringValueEmpty, tok.Position)
			}
			return nodes, nil
		}
		if tok.IsBlock() && containsString(stop, tok.Type) {
			return nodes, nil
		}
		p.pos++

		compile, ok := p.tags.Get(tok.Type)
		if !ok {
			return nil, NewSyntaxError(ErrMsgUnknownTag+": "+tok.Type, tok.Contents, tok.Position)
		}
		node, err := compile(p, tok)
		if err != nil {
			return nil, err
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}
}

// NextToken removes and returns the first token. An EOF token is returned
// once the stream is exhausted.
func (p *Parser) NextToken() Token {
	tok := p.peek()
	if !tok.IsEOF() {
		p.pos++
	}
	return tok
}

// DeleteFirstToken discards the first token
func (p *Parser) DeleteFirstToken() {
	p.NextToken()
}

// Filters returns the filter table bound at compile time
func (p *Parser) Filters() *FilterTable {
	return p.filters
}

// Logger returns the parser logger
func (p *Parser) Logger() *zap.Logger {
	return p.logger
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		var last Position
		if n := len(p.tokens); n > 0 {
			last = p.tokens[n-1].Position
		}
		return NewEOFToken(last)
	}
	return p.tokens[p.pos]
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
