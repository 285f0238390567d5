package dtl

import (
	"context"

	"github.com/itsatony/go-dtl/internal"
	"go.uber.org/zap"
)

// Template is a compiled template. Its node tree is immutable, so a
// Template may be executed by many goroutines at once.
type Template struct {
	source string
	nodes  []internal.Node
	engine *Engine
}

func newTemplate(source string, nodes []internal.Node, engine *Engine) *Template {
	return &Template{
		source: source,
		nodes:  nodes,
		engine: engine,
	}
}

// Execute renders the template with the given data.
// data is never modified; loop variables live in frames above it.
func (t *Template) Execute(ctx context.Context, data map[string]any) (string, error) {
	return t.ExecuteWithContext(ctx, NewContext(data))
}

// ExecuteWithContext renders the template against an existing Context.
// On failure no partial output is returned.
func (t *Template) ExecuteWithContext(ctx context.Context, execCtx *Context) (string, error) {
	if execCtx == nil {
		execCtx = NewContext(nil)
	}
	out, err := t.engine.renderer.Render(ctx, t.nodes, execCtx)
	if err != nil {
		t.engine.logger.Debug(LogMsgRenderFailed, zap.Error(err))
		return "", wrapRenderError(err)
	}
	return out, nil
}

// Source returns the original template source.
func (t *Template) Source() string {
	return t.source
}

// NodeCount returns the number of nodes in the tree, nested bodies included.
func (t *Template) NodeCount() int {
	return internal.CountNodes(t.nodes)
}

// String dumps the top-level nodes, one per line.
func (t *Template) String() string {
	return internal.DumpNodes(t.nodes)
}
