package internal

import (
	"fmt"
	"strings"
)

// Node is the interface all render nodes implement. Nodes are immutable
// once built and carry no evaluation state.
type Node interface {
	// Type returns the node type identifier
	Type() NodeType
	// Pos returns the source position of this node
	Pos() Position
	// String returns a human-readable representation
	String() string
}

// TextNode emits its literal unchanged
type TextNode struct {
	pos     Position
	Literal string
}

// NewTextNode creates a new text node
func NewTextNode(literal string, pos Position) *TextNode {
	return &TextNode{pos: pos, Literal: literal}
}

// Type returns NodeTypeText
func (n *TextNode) Type() NodeType { return NodeTypeText }

// Pos returns the source position
func (n *TextNode) Pos() Position { return n.pos }

// String returns a string representation
func (n *TextNode) String() string {
	return fmt.Sprintf("TextNode{%q @ %s}", truncateDisplay(n.Literal), n.pos)
}

// VariableNode resolves a filter expression and emits the result
type VariableNode struct {
	pos  Position
	Expr *FilterExpression
}

// NewVariableNode creates a new variable node
func NewVariableNode(expr *FilterExpression, pos Position) *VariableNode {
	return &VariableNode{pos: pos, Expr: expr}
}

// Type returns NodeTypeVariable
func (n *VariableNode) Type() NodeType { return NodeTypeVariable }

// Pos returns the source position
func (n *VariableNode) Pos() Position { return n.pos }

// String returns a string representation
func (n *VariableNode) String() string {
	return fmt.Sprintf("VariableNode{%s @ %s}", n.Expr, n.pos)
}

// ForNode iterates a list bound in the context
type ForNode struct {
	pos      Position
	ItemName string
	ListName string
	Body     []Node
	Reversed bool
}

// NewForNode creates a new loop node
func NewForNode(itemName, listName string, body []Node, reversed bool, pos Position) *ForNode {
	return &ForNode{
		pos:      pos,
		ItemName: itemName,
		ListName: listName,
		Body:     body,
		Reversed: reversed,
	}
}

// Type returns NodeTypeFor
func (n *ForNode) Type() NodeType { return NodeTypeFor }

// Pos returns the source position
func (n *ForNode) Pos() Position { return n.pos }

// String returns a string representation
func (n *ForNode) String() string {
	return fmt.Sprintf("ForNode{%s in %s reversed=%t body=%s @ %s}",
		n.ItemName, n.ListName, n.Reversed, nodeList(n.Body), n.pos)
}

// IfOperator combines the conditions of an if node
type IfOperator int

// If operators. IfOperatorNone is used for a single condition and folds
// like IfOperatorAnd.
const (
	IfOperatorNone IfOperator = iota
	IfOperatorAnd
	IfOperatorOr
)

// String returns the connective keyword
func (o IfOperator) String() string {
	switch o {
	case IfOperatorAnd:
		return KeywordAnd
	case IfOperatorOr:
		return KeywordOr
	default:
		return StringValueEmpty
	}
}

// IfNode selects one of two bodies from a flat and/or chain of names
type IfNode struct {
	pos           Position
	PositiveNames []string
	NegativeNames []string
	Operator      IfOperator
	Then          []Node
	Else          []Node
}

// NewIfNode creates a new conditional node
func NewIfNode(positive, negative []string, op IfOperator, then, els []Node, pos Position) *IfNode {
	return &IfNode{
		pos:           pos,
		PositiveNames: positive,
		NegativeNames: negative,
		Operator:      op,
		Then:          then,
		Else:          els,
	}
}

// Type returns NodeTypeIf
func (n *IfNode) Type() NodeType { return NodeTypeIf }

// Pos returns the source position
func (n *IfNode) Pos() Position { return n.pos }

// String returns a string representation
func (n *IfNode) String() string {
	return fmt.Sprintf("IfNode{+%v -%v op=%q then=%s else=%s @ %s}",
		n.PositiveNames, n.NegativeNames, n.Operator, nodeList(n.Then), nodeList(n.Else), n.pos)
}

// NodeType identifies render node variants
type NodeType int

// Node types
const (
	NodeTypeText NodeType = iota
	NodeTypeVariable
	NodeTypeFor
	NodeTypeIf
)

// String returns the node type name
func (t NodeType) String() string {
	switch t {
	case NodeTypeText:
		return NodeTypeNameText
	case NodeTypeVariable:
		return NodeTypeNameVariable
	case NodeTypeFor:
		return NodeTypeNameFor
	case NodeTypeIf:
		return NodeTypeNameIf
	default:
		return NodeTypeNameUnknown
	}
}

// DumpNodes renders a node list one per line for debugging
func DumpNodes(nodes []Node) string {
	var sb strings.Builder
	for i, n := range nodes {
		sb.WriteString(fmt.Sprintf("[%d] %s\n", i, n.String()))
	}
	return sb.String()
}

// CountNodes counts every node in the tree, including nested bodies
func CountNodes(nodes []Node) int {
	total := 0
	for _, n := range nodes {
		total++
		switch v := n.(type) {
		case *ForNode:
			total += CountNodes(v.Body)
		case *IfNode:
			total += CountNodes(v.Then) + CountNodes(v.Else)
		}
	}
	return total
}

// WalkNodes visits every node depth-first until fn returns false
func WalkNodes(nodes []Node, fn func(Node) bool) bool {
	for _, n := range nodes {
		if !fn(n) {
			return false
		}
		switch v := n.(type) {
		case *ForNode:
			if !WalkNodes(v.Body, fn) {
				return false
			}
		case *IfNode:
			if !WalkNodes(v.Then, fn) || !WalkNodes(v.Else, fn) {
				return false
			}
		}
	}
	return true
}

func nodeList(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.Type().String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func truncateDisplay(s string) string {
	if len(s) > MaxStringDisplayLength {
		return s[:TruncatedStringLength] + TruncationSuffix
	}
	return s
}
