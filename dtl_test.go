package dtl_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/itsatony/go-dtl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// E2E tests - full public API, no mocks.

func render(t *testing.T, source string, data map[string]any) string {
	t.Helper()
	out, err := dtl.MustNew().Execute(context.Background(), source, data)
	require.NoError(t, err)
	return out
}

func TestE2E_BasicVariableInterpolation(t *testing.T) {
	assert.Equal(t, "Hello, Alice!", render(t, "Hello, {{ user }}!", map[string]any{"user": "Alice"}))
}

func TestE2E_NestedVariablePath(t *testing.T) {
	out := render(t, "Welcome {{ user.profile.name }}!", map[string]any{
		"user": map[string]any{
			"profile": map[string]any{"name": "Bob"},
		},
	})
	assert.Equal(t, "Welcome Bob!", out)
}

func TestE2E_DictSortReversedIsReverse(t *testing.T) {
	data := map[string]any{"people": []any{
		map[string]any{"name": "Cy", "age": 30},
		map[string]any{"name": "Al", "age": 25},
		map[string]any{"name": "Bo", "age": 41},
	}}
	asc := strings.Split(render(t, `{{ people|dictsort:"name"|join:";" }}`, data), ";")
	desc := strings.Split(render(t, `{{ people|dictsortreversed:"name"|join:";" }}`, data), ";")

	require.Len(t, asc, 3)
	assert.Contains(t, asc[0], "Al")
	assert.Contains(t, asc[2], "Cy")
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

func TestE2E_FileSizeFormat(t *testing.T) {
	tests := []struct {
		size     any
		expected string
	}{
		{0, "0 bytes"},
		{1, "1 byte"},
		{1023, "1023 bytes"},
		{1536, "1.5KB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, render(t, "{{ n|filesizeformat }}", map[string]any{"n": tt.size}))
	}
}

func TestE2E_Pluralize(t *testing.T) {
	source := `{{ n }} cherr{{ n|pluralize:"y,ies" }}, {{ n }} apple{{ n|pluralize }}`
	assert.Equal(t, "1 cherry, 1 apple", render(t, source, map[string]any{"n": 1}))
	assert.Equal(t, "2 cherries, 2 apples", render(t, source, map[string]any{"n": 2}))
}

func TestE2E_ForLoopRecord(t *testing.T) {
	xs := []any{10, 20, 30}
	data := map[string]any{"xs": xs}

	out := render(t, "{% for x in xs %}{{ forloop.counter }}{% if forloop.last %}L{% endif %},{% endfor %}", data)
	assert.Equal(t, "1,2,3L,", out)

	out = render(t, "{% for x in xs reversed %}{{ x }},{% endfor %}", data)
	assert.Equal(t, "30,20,10,", out)
	assert.Equal(t, []any{10, 20, 30}, xs, "reversed iteration leaves the list unchanged")
}

func TestE2E_NestedParentLoop(t *testing.T) {
	out := render(t,
		"{% for row in rows %}{% for c in row %}{{ forloop.parentloop.counter }}{{ c }} {% endfor %}{% endfor %}",
		map[string]any{"rows": []any{[]any{"a", "b"}, []any{"c"}}})
	assert.Equal(t, "1a 1b 2c ", out)
}

func TestE2E_IfConnectives(t *testing.T) {
	assert.Equal(t, "else", render(t, "{% if a and b %}then{% else %}else{% endif %}",
		map[string]any{"a": true, "b": false}))
	assert.Equal(t, "then", render(t, "{% if not a or b %}then{% else %}else{% endif %}",
		map[string]any{"a": false, "b": false}))

	_, err := dtl.MustNew().Parse("{% if a and b or c %}x{% endif %}")
	require.Error(t, err)
}

func TestE2E_SliceStep(t *testing.T) {
	out := render(t, `{{ xs|slice:"1:4:2" }}`, map[string]any{"xs": []any{0, 1, 2, 3, 4, 5}})
	assert.Equal(t, "1,3", out)
}

func TestE2E_EscapeNotImplemented(t *testing.T) {
	_, err := dtl.MustNew().Execute(context.Background(), "{{ s|escape }}", map[string]any{"s": "<b>"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dtl.ErrFilterNotImplemented))
}

func TestE2E_Date(t *testing.T) {
	when := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
	out := render(t, `{{ when|date:"Y-m-d H:i" }}`, map[string]any{"when": when})
	assert.Equal(t, "2024-03-05 14:07", out)
}

func TestE2E_StoredTemplate(t *testing.T) {
	ctx := context.Background()
	storage, err := dtl.OpenStorage(dtl.StorageDriverMemory, "")
	require.NoError(t, err)

	se := dtl.MustNewStorageEngine(dtl.StorageEngineConfig{Storage: storage})
	defer se.Close()

	_, err = se.Save(ctx, "invoice", "{{ items|length }} item{{ items|length|pluralize }}: {{ items|join:\", \" }}")
	require.NoError(t, err)

	out, err := se.Execute(ctx, "invoice", map[string]any{"items": []any{"pen", "ink"}})
	require.NoError(t, err)
	assert.Equal(t, "2 items: pen, ink", out)
}
