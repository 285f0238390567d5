package dtl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_NewContext(t *testing.T) {
	data := map[string]any{"a": 1}
	ctx := NewContext(data)

	require.NotNil(t, ctx)
	assert.Equal(t, 1, ctx.Depth())

	ctx.Set("b", 2)
	assert.NotContains(t, data, "b", "caller data is never written")

	empty := NewContext(nil)
	assert.Empty(t, empty.Data())
}

func TestContext_Get(t *testing.T) {
	ctx := NewContext(map[string]any{
		"name": "Ada",
		"user": map[string]any{
			"address": map[string]any{"city": "London"},
		},
		"items": []any{"x", "y"},
	})

	tests := []struct {
		name     string
		path     string
		expected any
		found    bool
	}{
		{"top level", "name", "Ada", true},
		{"nested", "user.address.city", "London", true},
		{"missing", "nope", nil, false},
		{"missing nested", "user.phone", nil, false},
		{"empty path", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ctx.Get(tt.path)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, v)
			}
		})
	}
}

func TestContext_GetStringAndDefault(t *testing.T) {
	ctx := NewContext(map[string]any{"n": 42, "list": []any{1, 2}})

	assert.Equal(t, "42", ctx.GetString("n"))
	assert.Equal(t, "1,2", ctx.GetString("list"))
	assert.Equal(t, "", ctx.GetString("missing"))

	assert.Equal(t, 42, ctx.GetDefault("n", 0))
	assert.Equal(t, "fallback", ctx.GetDefault("missing", "fallback"))

	assert.True(t, ctx.Has("n"))
	assert.False(t, ctx.Has("missing"))
}

func TestContext_Frames(t *testing.T) {
	ctx := NewContext(map[string]any{"x": "outer", "keep": true})

	ctx.Push()
	ctx.Set("x", "inner")
	assert.Equal(t, 2, ctx.Depth())
	assert.Equal(t, "inner", ctx.GetString("x"))
	assert.Equal(t, "true", ctx.GetString("keep"))
	assert.Equal(t, map[string]any{"x": "inner", "keep": true}, ctx.Data())

	ctx.Pop()
	assert.Equal(t, 1, ctx.Depth())
	assert.Equal(t, "outer", ctx.GetString("x"))

	ctx.Pop()
	assert.Equal(t, 1, ctx.Depth(), "base frame is never popped")
	assert.Equal(t, "outer", ctx.GetString("x"))
}
