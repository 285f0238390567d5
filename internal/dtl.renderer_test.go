package internal

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func renderSource(t *testing.T, source string, data map[string]any) (string, error) {
	t.Helper()
	nodes, err := parseSource(t, source)
	require.NoError(t, err)
	renderer := NewRenderer(DefaultRendererConfig(), zap.NewNop())
	return renderer.Render(context.Background(), nodes, NewScopeStack(data))
}

func mustRender(t *testing.T, source string, data map[string]any) string {
	t.Helper()
	out, err := renderSource(t, source, data)
	require.NoError(t, err)
	return out
}

func TestRenderer_TextAndVariables(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		data     map[string]any
		expected string
	}{
		{"plain text", "Hello, world!", nil, "Hello, world!"},
		{"variable", "Hello, {{ name }}!", map[string]any{"name": "World"}, "Hello, World!"},
		{"missing variable", "[{{ nope }}]", nil, "[]"},
		{"nested path", "{{ user.name }}", map[string]any{"user": map[string]any{"name": "Ada"}}, "Ada"},
		{"float", "{{ x }}", map[string]any{"x": 1.5}, "1.5"},
		{"bool", "{{ x }}", map[string]any{"x": true}, "true"},
		{"list", "{{ x }}", map[string]any{"x": []any{1, 2}}, "1,2"},
		{"pipeline", "{{ name|lower|capfirst }}", map[string]any{"name": "HELLO"}, "Hello"},
		{"comment", "a{# hidden #}b", nil, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mustRender(t, tt.source, tt.data))
		})
	}
}

func TestRenderer_ForLoopCounters(t *testing.T) {
	source := "{% for x in xs %}{{ forloop.counter }}:{{ x }}{% if forloop.last %}!{% endif %} {% endfor %}"
	out := mustRender(t, source, map[string]any{"xs": []any{10, 20, 30}})
	assert.Equal(t, "1:10 2:20 3:30! ", out)
}

func TestRenderer_ForLoopAllFields(t *testing.T) {
	source := "{% for x in xs %}{{ forloop.counter0 }}{{ forloop.revcounter }}{{ forloop.revcounter0 }}{% if forloop.first %}F{% endif %}|{% endfor %}"
	out := mustRender(t, source, map[string]any{"xs": []string{"a", "b"}})
	assert.Equal(t, "021F|110|", out)
}

func TestRenderer_ForLoopReversed(t *testing.T) {
	xs := []any{10, 20, 30}
	data := map[string]any{"xs": xs}

	out := mustRender(t, "{% for x in xs reversed %}{{ x }},{% endfor %}", data)
	assert.Equal(t, "30,20,10,", out)
	assert.Equal(t, []any{10, 20, 30}, xs)
}

func TestRenderer_NestedParentLoop(t *testing.T) {
	source := "{% for a in outer %}{% for b in inner %}{{ forloop.parentloop.counter }}{{ forloop.counter }} {% endfor %}{% endfor %}"
	out := mustRender(t, source, map[string]any{
		"outer": []any{"x", "y"},
		"inner": []any{1, 2},
	})
	assert.Equal(t, "11 12 21 22 ", out)
}

func TestRenderer_NestedLoopOverItem(t *testing.T) {
	source := "{% for row in rows %}{% for cell in row %}{{ cell }}{% endfor %};{% endfor %}"
	out := mustRender(t, source, map[string]any{
		"rows": []any{[]any{1, 2}, []any{3}},
	})
	assert.Equal(t, "12;3;", out)
}

func TestRenderer_ForNonList(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"string", "abc"},
		{"number", 12},
		{"map", map[string]any{"a": 1}},
		{"nil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustRender(t, "[{% for x in xs %}{{ x }}{% endfor %}]", map[string]any{"xs": tt.value})
			assert.Equal(t, "[]", out)
		})
	}
}

func TestRenderer_ForRestoresScope(t *testing.T) {
	out := mustRender(t, "{% for x in xs %}{{ x }}{% endfor %}|{{ x }}|{{ forloop.counter }}", map[string]any{
		"xs": []any{1, 2},
		"x":  "outer",
	})
	assert.Equal(t, "12|outer|", out)
}

func TestRenderer_If(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		data     map[string]any
		expected string
	}{
		{"and false", "{% if a and b %}then{% else %}else{% endif %}", map[string]any{"a": true, "b": false}, "else"},
		{"and true", "{% if a and b %}then{% else %}else{% endif %}", map[string]any{"a": true, "b": 1}, "then"},
		{"not or", "{% if not a or b %}then{% else %}else{% endif %}", map[string]any{"a": false, "b": false}, "then"},
		{"or false", "{% if a or b %}then{% endif %}", map[string]any{"a": "", "b": 0}, ""},
		{"or true", "{% if a or b %}then{% endif %}", map[string]any{"a": "", "b": []any{1}}, "then"},
		{"single", "{% if a %}yes{% endif %}", map[string]any{"a": "x"}, "yes"},
		{"single missing", "{% if a %}yes{% else %}no{% endif %}", nil, "no"},
		{"empty list falsy", "{% if a %}yes{% else %}no{% endif %}", map[string]any{"a": []any{}}, "no"},
		{"negated chain", "{% if not a and not b %}none{% endif %}", map[string]any{}, "none"},
		{"dotted", "{% if user.admin %}admin{% endif %}", map[string]any{"user": map[string]any{"admin": true}}, "admin"},
		{"loop field", "{% for x in xs %}{% if not forloop.last %}{{ x }},{% else %}{{ x }}{% endif %}{% endfor %}", map[string]any{"xs": []any{1, 2, 3}}, "1,2,3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mustRender(t, tt.source, tt.data))
		})
	}
}

func TestRenderer_NotImplementedFilterFails(t *testing.T) {
	out, err := renderSource(t, "before {{ x|escape }} after", map[string]any{"x": "<b>"})
	require.Error(t, err)
	assert.Empty(t, out)
	assert.True(t, errors.Is(err, ErrFilterNotImplemented))

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, "x|escape", renderErr.Node)
}

func TestRenderer_FailureUnwindsScope(t *testing.T) {
	nodes, err := parseSource(t, "{% for x in xs %}{% for y in xs %}{{ y|title }}{% endfor %}{% endfor %}")
	require.NoError(t, err)

	scope := NewScopeStack(map[string]any{"xs": []any{1}})
	_, err = NewRenderer(DefaultRendererConfig(), nil).Render(context.Background(), nodes, scope)
	require.Error(t, err)
	assert.Equal(t, 1, scope.Depth())
}

func TestRenderer_MaxDepth(t *testing.T) {
	nodes, err := parseSource(t, "{% for a in xs %}{% for b in xs %}x{% endfor %}{% endfor %}")
	require.NoError(t, err)
	data := map[string]any{"xs": []any{1}}

	_, err = NewRenderer(RendererConfig{MaxDepth: 1}, nil).Render(context.Background(), nodes, NewScopeStack(data))
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrMsgMaxDepthExceeded, renderErr.Message)

	out, err := NewRenderer(RendererConfig{MaxDepth: 0}, nil).Render(context.Background(), nodes, NewScopeStack(data))
	require.NoError(t, err)
	assert.Equal(t, "x", out)
}

func TestRenderer_Cancelled(t *testing.T) {
	nodes, err := parseSource(t, "{% for x in xs %}{{ x }}{% endfor %}")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scope := NewScopeStack(map[string]any{"xs": []any{1, 2}})
	_, err = NewRenderer(DefaultRendererConfig(), nil).Render(ctx, nodes, scope)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, scope.Depth())
}

func TestRenderer_UnknownNodeType(t *testing.T) {
	_, err := NewRenderer(DefaultRendererConfig(), nil).Render(context.Background(), []Node{fakeNode{}}, NewScopeStack(nil))
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrMsgUnknownNodeType, renderErr.Message)
}

func TestRenderer_ConcurrentRendersShareTree(t *testing.T) {
	nodes, err := parseSource(t, "{% for x in xs %}{{ name }}{{ x }}{% endfor %}")
	require.NoError(t, err)
	renderer := NewRenderer(DefaultRendererConfig(), nil)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			scope := NewScopeStack(map[string]any{"name": i, "xs": []any{"a", "b"}})
			out, err := renderer.Render(context.Background(), nodes, scope)
			if err == nil {
				results[i] = out
			}
		}(i)
	}
	wg.Wait()

	for i, out := range results {
		assert.Equal(t, Stringify(i)+"a"+Stringify(i)+"b", out)
	}
}

func TestEvaluateIf(t *testing.T) {
	scope := NewScopeStack(map[string]any{"t": true, "f": false})

	assert.True(t, EvaluateIf(NewIfNode([]string{"t"}, nil, IfOperatorNone, nil, nil, Position{}), scope))
	assert.False(t, EvaluateIf(NewIfNode([]string{"t", "f"}, nil, IfOperatorAnd, nil, nil, Position{}), scope))
	assert.True(t, EvaluateIf(NewIfNode([]string{"f"}, []string{"f"}, IfOperatorOr, nil, nil, Position{}), scope))
	assert.False(t, EvaluateIf(NewIfNode(nil, []string{"t"}, IfOperatorOr, nil, nil, Position{}), scope))
}

type fakeNode struct{}

func (fakeNode) Type() NodeType { return NodeType(99) }
func (fakeNode) Pos() Position  { return Position{} }
func (fakeNode) String() string { return "fake" }
