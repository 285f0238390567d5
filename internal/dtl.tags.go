package internal

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// TagCompiler builds a node from a token. Block compilers use the parser to
// consume their bodies and terminators.
type TagCompiler func(p *Parser, tok Token) (Node, error)

// TagTable is an immutable keyword -> compiler lookup
type TagTable struct {
	compilers map[string]TagCompiler
}

// NewTagTable copies the given compilers into a new table
func NewTagTable(compilers map[string]TagCompiler) *TagTable {
	t := &TagTable{compilers: make(map[string]TagCompiler, len(compilers))}
	for name, c := range compilers {
		t.compilers[name] = c
	}
	return t
}

// DefaultTagTable returns the text, variable, for and if compilers
func DefaultTagTable() *TagTable {
	return NewTagTable(map[string]TagCompiler{
		TokenTypeText:     CompileText,
		TokenTypeVariable: CompileVariable,
		TagFor:            CompileFor,
		TagIf:             CompileIf,
	})
}

// Get retrieves a compiler by keyword
func (t *TagTable) Get(name string) (TagCompiler, bool) {
	c, ok := t.compilers[name]
	return c, ok
}

// Names returns all keywords in sorted order
func (t *TagTable) Names() []string {
	names := make([]string, 0, len(t.compilers))
	for name := range t.compilers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CompileText wraps literal text
func CompileText(_ *Parser, tok Token) (Node, error) {
	return NewTextNode(tok.Contents, tok.Position), nil
}

// CompileVariable compiles the filter expression of a {{ }} token
func CompileVariable(p *Parser, tok Token) (Node, error) {
	expr, err := ParseFilterExpression(tok.Contents, p.Filters(), tok.Position)
	if err != nil {
		return nil, err
	}
	return NewVariableNode(expr, tok.Position), nil
}

// CompileFor handles `for <item> in <list> [reversed]` ... `endfor`
func CompileFor(p *Parser, tok Token) (Node, error) {
	fields := SplitContents(tok.Contents)
	valid := (len(fields) == 4 || (len(fields) == 5 && fields[4] == KeywordReversed)) &&
		fields[2] == KeywordIn
	if !valid {
		return nil, NewSyntaxError(fmt.Sprintf(ErrFmtUnexpectedSyntax, TagFor), tok.Contents, tok.Position)
	}

	body, err := p.Parse(TagEndFor)
	if err != nil {
		return nil, err
	}
	p.DeleteFirstToken()

	p.Logger().Debug(LogMsgTagCompiled, zap.String(LogFieldTag, TagFor), zap.Int(LogFieldNodes, len(body)))
	return NewForNode(fields[1], fields[3], body, len(fields) == 5, tok.Position), nil
}

// CompileIf handles `if [not] a (and|or) [not] b ...` with an optional else
func CompileIf(p *Parser, tok Token) (Node, error) {
	positive, negative, op, err := parseIfCondition(tok)
	if err != nil {
		return nil, err
	}

	then, err := p.Parse(TagElse, TagEndIf)
	if err != nil {
		return nil, err
	}

	var els []Node
	if term := p.NextToken(); term.Type == TagElse {
		els, err = p.Parse(TagEndIf)
		if err != nil {
			return nil, err
		}
		p.DeleteFirstToken()
	}

	p.Logger().Debug(LogMsgTagCompiled, zap.String(LogFieldTag, TagIf), zap.Int(LogFieldNodes, len(then)+len(els)))
	return NewIfNode(positive, negative, op, then, els, tok.Position), nil
}

// parseIfCondition reads alternating `[not] name` and connective fields.
// Every connective in one tag must be the same.
func parseIfCondition(tok Token) (positive, negative []string, op IfOperator, err error) {
	fail := func(msg string) ([]string, []string, IfOperator, error) {
		return nil, nil, IfOperatorNone, NewSyntaxError(msg, tok.Contents, tok.Position)
	}

	args := SplitContents(tok.Contents)[1:]
	expectName := true
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !expectName {
			next := connective(arg)
			if next == IfOperatorNone {
				return fail(ErrMsgIfExpectedOperator)
			}
			if op != IfOperatorNone && op != next {
				return fail(ErrMsgIfMixedOperators)
			}
			op = next
			expectName = true
			continue
		}

		switch {
		case arg == KeywordNot:
			i++
			if i >= len(args) || isIfKeyword(args[i]) {
				return fail(ErrMsgIfMissingNameAfterNot)
			}
			negative = append(negative, args[i])
		case isIfKeyword(arg):
			return fail(ErrMsgIfExpectedName)
		default:
			positive = append(positive, arg)
		}
		expectName = false
	}

	if len(positive)+len(negative) == 0 {
		return fail(ErrMsgIfEmptyCondition)
	}
	if expectName {
		return fail(ErrMsgIfDanglingOperator)
	}
	return positive, negative, op, nil
}

func connective(s string) IfOperator {
	switch s {
	case KeywordAnd:
		return IfOperatorAnd
	case KeywordOr:
		return IfOperatorOr
	}
	return IfOperatorNone
}

func isIfKeyword(s string) bool {
	return s == KeywordNot || connective(s) != IfOperatorNone
}
