package dtl

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
)

// =============================================================================
// PARSING BENCHMARKS
// =============================================================================

func BenchmarkParse_Simple(b *testing.B) {
	engine := MustNew()
	source := `Hello {{ user }}!`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.Parse(source)
	}
}

func BenchmarkParse_Filters(b *testing.B) {
	engine := MustNew()
	source := `{{ name|lower|capfirst }} has {{ items|length }} item{{ items|length|pluralize }}: {{ items|join:", " }}`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.Parse(source)
	}
}

func BenchmarkParse_Large(b *testing.B) {
	engine := MustNew()
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&sb, "{%% if flag%d %%}{%% for x in xs %%}{{ x|add:%d }}{%% endfor %%}{%% endif %%}\n", i, i)
	}
	source := sb.String()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.Parse(source)
	}
}

// =============================================================================
// RENDERING BENCHMARKS
// =============================================================================

func BenchmarkExecute_Loop(b *testing.B) {
	engine := MustNew()
	tmpl, err := engine.Parse(`{% for x in xs %}{{ forloop.counter }}:{{ x|ljust:"8" }}{% if forloop.last %}.{% endif %}{% endfor %}`)
	if err != nil {
		b.Fatal(err)
	}
	xs := make([]any, 100)
	for i := range xs {
		xs[i] = fmt.Sprintf("item-%d", i)
	}
	data := map[string]any{"xs": xs}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tmpl.Execute(ctx, data)
	}
}

func BenchmarkExecute_Parallel(b *testing.B) {
	engine := MustNew()
	tmpl, err := engine.Parse(`{% for u in users %}{{ u.name|capfirst }} ({{ u.size|filesizeformat }}){% endfor %}`)
	if err != nil {
		b.Fatal(err)
	}
	data := map[string]any{"users": []any{
		map[string]any{"name": "ann", "size": 2048},
		map[string]any{"name": "bob", "size": 5 << 20},
	}}
	ctx := context.Background()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = tmpl.Execute(ctx, data)
		}
	})
}

func BenchmarkStorageEngine_Execute(b *testing.B) {
	ctx := context.Background()
	se := MustNewStorageEngine(StorageEngineConfig{Storage: NewMemoryStorage()})
	if _, err := se.Save(ctx, "t", "{{ a }}-{{ b|default:\"none\" }}"); err != nil {
		b.Fatal(err)
	}
	data := map[string]any{"a": 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = se.Execute(ctx, "t", data)
	}
}

func BenchmarkRegistry_Concurrent(b *testing.B) {
	engine := MustNew()
	for i := 0; i < 50; i++ {
		engine.MustRegisterTemplate(fmt.Sprintf("t%d", i), "{{ x }}")
	}
	ctx := context.Background()

	b.ResetTimer()
	var wg sync.WaitGroup
	for i := 0; i < b.N; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = engine.ExecuteTemplate(ctx, fmt.Sprintf("t%d", i%50), map[string]any{"x": i})
		}(i)
	}
	wg.Wait()
}
