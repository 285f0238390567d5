package internal

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// ContextAccessor is the scope stack a render reads and writes
type ContextAccessor interface {
	Get(path string) (any, bool)
	Set(name string, value any)
	Push()
	Pop()
}

// RendererConfig holds renderer configuration options
type RendererConfig struct {
	MaxDepth int // Maximum nesting depth (0 = unlimited)
}

// DefaultRendererConfig returns the default renderer configuration
func DefaultRendererConfig() RendererConfig {
	return RendererConfig{
		MaxDepth: DefaultMaxDepth,
	}
}

// Renderer walks a node tree and produces output. It holds no per-render
// state and may be shared between goroutines.
type Renderer struct {
	config RendererConfig
	logger *zap.Logger
}

// NewRenderer creates a new renderer
func NewRenderer(config RendererConfig, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgRendererCreated)
	return &Renderer{config: config, logger: logger}
}

// Render evaluates nodes against data and returns the concatenated output
func (r *Renderer) Render(ctx context.Context, nodes []Node, data ContextAccessor) (string, error) {
	r.logger.Debug(LogMsgRenderStart, zap.Int(LogFieldNodes, len(nodes)))

	result, err := r.renderNodes(ctx, nodes, data, 0)
	if err != nil {
		return StringValueEmpty, err
	}

	r.logger.Debug(LogMsgRenderEnd, zap.Int(LogFieldOutput, len(result)))
	return result, nil
}

func (r *Renderer) renderNodes(ctx context.Context, nodes []Node, data ContextAccessor, depth int) (string, error) {
	if r.config.MaxDepth > 0 && depth > r.config.MaxDepth {
		return StringValueEmpty, NewRenderError(ErrMsgMaxDepthExceeded, StringValueEmpty, Position{})
	}

	var sb strings.Builder
	for _, node := range nodes {
		out, err := r.renderNode(ctx, node, data, depth)
		if err != nil {
			return StringValueEmpty, err
		}
		sb.WriteString(out)
	}
	return sb.String(), nil
}

func (r *Renderer) renderNode(ctx context.Context, node Node, data ContextAccessor, depth int) (string, error) {
	switch n := node.(type) {
	case *TextNode:
		return n.Literal, nil
	case *VariableNode:
		return r.renderVariable(n, data)
	case *ForNode:
		return r.renderFor(ctx, n, data, depth)
	case *IfNode:
		return r.renderIf(ctx, n, data, depth)
	default:
		return StringValueEmpty, NewRenderError(ErrMsgUnknownNodeType, StringValueEmpty, node.Pos())
	}
}

func (r *Renderer) renderVariable(n *VariableNode, data ContextAccessor) (string, error) {
	value, err := n.Expr.Resolve(data)
	if err != nil {
		r.logger.Debug(LogMsgFilterFailed, zap.String(LogFieldExpression, n.Expr.String()), zap.Error(err))
		return StringValueEmpty, NewRenderErrorWithCause(ErrMsgVariableFailed, n.Expr.String(), n.Pos(), err)
	}
	return Stringify(value), nil
}

// renderFor binds forloop and the item name in a fresh scope per loop. The
// bound list itself is never modified.
func (r *Renderer) renderFor(ctx context.Context, n *ForNode, data ContextAccessor, depth int) (string, error) {
	parentLoop, _ := data.Get(ForLoopVar)

	raw, _ := data.Get(n.ListName)
	list, ok := ToList(raw)
	if !ok {
		r.logger.Debug(LogMsgLoopNotList, zap.String(LogFieldList, n.ListName))
		return StringValueEmpty, nil
	}
	if n.Reversed {
		reverseList(list)
	}

	r.logger.Debug(LogMsgLoopStart, zap.String(LogFieldList, n.ListName), zap.Int(LogFieldIterations, len(list)))

	data.Push()
	defer data.Pop()

	var sb strings.Builder
	for i, item := range list {
		if err := ctx.Err(); err != nil {
			return StringValueEmpty, NewRenderErrorWithCause(ErrMsgRenderCancelled, TagFor, n.Pos(), err)
		}
		data.Set(ForLoopVar, NewForLoop(parentLoop, i, len(list)))
		data.Set(n.ItemName, item)

		out, err := r.renderNodes(ctx, n.Body, data, depth+1)
		if err != nil {
			return StringValueEmpty, err
		}
		sb.WriteString(out)
	}
	return sb.String(), nil
}

func (r *Renderer) renderIf(ctx context.Context, n *IfNode, data ContextAccessor, depth int) (string, error) {
	result := EvaluateIf(n, data)
	r.logger.Debug(LogMsgConditionEval, zap.Bool(LogFieldResult, result))
	if result {
		return r.renderNodes(ctx, n.Then, data, depth+1)
	}
	if len(n.Else) == 0 {
		return StringValueEmpty, nil
	}
	return r.renderNodes(ctx, n.Else, data, depth+1)
}

// EvaluateIf folds the node's conditions. OR starts from false, AND and the
// single-condition case start from true.
func EvaluateIf(n *IfNode, data ContextAccessor) bool {
	result := n.Operator != IfOperatorOr
	combine := func(cond bool) {
		if n.Operator == IfOperatorOr {
			result = result || cond
		} else {
			result = result && cond
		}
	}
	for _, name := range n.PositiveNames {
		v, _ := data.Get(name)
		combine(IsTruthy(v))
	}
	for _, name := range n.NegativeNames {
		v, _ := data.Get(name)
		combine(!IsTruthy(v))
	}
	return result
}
