package internal

import (
	"strconv"
	"strings"
)

// operand is a filter expression base or a stage argument: either a
// literal fixed at compile time or a variable path resolved per render.
type operand struct {
	raw       string
	literal   any
	isLiteral bool
}

func parseOperand(raw string) operand {
	if s, ok := unquote(raw); ok {
		return operand{raw: raw, literal: s, isLiteral: true}
	}
	if n, ok := parseNumberLiteral(raw); ok {
		return operand{raw: raw, literal: n, isLiteral: true}
	}
	return operand{raw: raw}
}

func (o operand) resolve(ctx ContextAccessor) any {
	if o.isLiteral {
		return o.literal
	}
	v, _ := ctx.Get(o.raw)
	return v
}

type filterStage struct {
	filter *Filter
	arg    operand
	hasArg bool
}

// FilterExpression is a compiled `base|filter:arg|filter` pipeline
type FilterExpression struct {
	raw    string
	base   operand
	stages []filterStage
}

// ParseFilterExpression compiles contents against the given filter table.
// Filter names are bound here, so an unknown filter is a syntax error.
func ParseFilterExpression(contents string, filters *FilterTable, pos Position) (*FilterExpression, error) {
	raw := strings.TrimSpace(contents)
	if raw == StringValueEmpty {
		return nil, NewSyntaxError(ErrMsgEmptyExpression, contents, pos)
	}

	parts := splitUnquoted(raw, CharPipe, -1)
	base := strings.TrimSpace(parts[0])
	if base == StringValueEmpty {
		return nil, NewSyntaxError(ErrMsgEmptyExpression, contents, pos)
	}
	if !validOperand(base) {
		return nil, NewSyntaxError(ErrMsgInvalidVariable, contents, pos)
	}

	expr := &FilterExpression{raw: raw, base: parseOperand(base)}
	for _, part := range parts[1:] {
		stage, err := parseStage(part, filters, contents, pos)
		if err != nil {
			return nil, err
		}
		expr.stages = append(expr.stages, stage)
	}
	return expr, nil
}

func parseStage(part string, filters *FilterTable, contents string, pos Position) (filterStage, error) {
	pieces := splitUnquoted(part, CharColon, 2)
	name := strings.TrimSpace(pieces[0])
	if name == StringValueEmpty {
		return filterStage{}, NewSyntaxError(ErrMsgEmptyFilterName, contents, pos)
	}
	f, ok := filters.Get(name)
	if !ok {
		return filterStage{}, NewSyntaxError(ErrMsgUnknownFilter+": "+name, contents, pos)
	}

	stage := filterStage{filter: f}
	if len(pieces) == 2 {
		argRaw := strings.TrimSpace(pieces[1])
		if argRaw == StringValueEmpty || !validOperand(argRaw) {
			return filterStage{}, NewSyntaxError(ErrMsgInvalidFilterArg+": "+name, contents, pos)
		}
		stage.arg = parseOperand(argRaw)
		stage.hasArg = true
	}
	return stage, nil
}

// Resolve evaluates the base against ctx and runs every stage in order
func (e *FilterExpression) Resolve(ctx ContextAccessor) (any, error) {
	value := e.base.resolve(ctx)
	for _, stage := range e.stages {
		arg := NoArg
		if stage.hasArg {
			arg = FilterArg{Raw: stage.arg.raw, Value: stage.arg.resolve(ctx), Given: true}
		}
		out, err := stage.filter.Apply(value, arg)
		if err != nil {
			return nil, err
		}
		value = out
	}
	return value, nil
}

// FilterNames lists the filters used, in pipeline order
func (e *FilterExpression) FilterNames() []string {
	names := make([]string, len(e.stages))
	for i, s := range e.stages {
		names[i] = s.filter.Name
	}
	return names
}

// Base returns the raw base operand
func (e *FilterExpression) Base() string {
	return e.base.raw
}

// String returns the expression source
func (e *FilterExpression) String() string {
	return e.raw
}

// splitUnquoted splits s on sep outside of single or double quotes. A
// negative limit means no limit.
func splitUnquoted(s string, sep byte, limit int) []string {
	var parts []string
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == CharDoubleQuote || ch == CharSingleQuote:
			quote = ch
		case ch == sep && (limit < 0 || len(parts) < limit-1):
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return StringValueEmpty, false
	}
	q := s[0]
	if (q != CharDoubleQuote && q != CharSingleQuote) || s[len(s)-1] != q {
		return StringValueEmpty, false
	}
	inner := s[1 : len(s)-1]
	if strings.IndexByte(inner, q) >= 0 {
		return StringValueEmpty, false
	}
	return inner, true
}

func parseNumberLiteral(s string) (any, bool) {
	if i, err := strconv.ParseInt(s, IntBase10, 64); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(s, FloatBitSize64); err == nil && isNumericText(s) {
		return f, true
	}
	return nil, false
}

// isNumericText rejects ParseFloat spellings such as "Inf" or "NaN" that
// are valid variable names
func isNumericText(s string) bool {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if !isDigit(ch) && ch != '.' && ch != '-' && ch != '+' && ch != 'e' && ch != 'E' {
			return false
		}
	}
	return true
}

// validOperand accepts quoted strings and whitespace-free tokens
func validOperand(s string) bool {
	if _, ok := unquote(s); ok {
		return true
	}
	if s[0] == CharDoubleQuote || s[0] == CharSingleQuote {
		return false
	}
	return !strings.ContainsAny(s, " \t\r\n")
}
