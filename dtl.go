// Package dtl provides a Django-style text templating engine.
//
// Templates mix literal text with three kinds of markup:
//
//	{{ user.name|lower }}           variable with a filter pipeline
//	{% for item in items %}...{% endfor %}   block tags
//	{# ignored #}                   comments
//
// # Basic Usage
//
// Create an engine and execute templates:
//
//	engine := dtl.MustNew()
//	result, err := engine.Execute(ctx, "Hello, {{ user|capfirst }}!", map[string]any{
//	    "user": "alice",
//	})
//	// result: "Hello, Alice!"
//
// Templates that are rendered repeatedly should be parsed once:
//
//	tmpl, err := engine.Parse(source)
//	out, err := tmpl.Execute(ctx, data)
//
// # Tags
//
// for - iterate a list; forloop.counter, counter0, revcounter, revcounter0,
// first, last and parentloop are available inside the body:
//
//	{% for x in xs reversed %}{{ forloop.counter }}:{{ x }}{% endfor %}
//
// if - conditional with a single kind of connective (and / or) and not:
//
//	{% if a and not b %}yes{% else %}no{% endif %}
//
// # Filters
//
// Filters take the piped value and an optional literal or variable argument:
//
//	{{ items|join:", " }}  {{ size|filesizeformat }}  {{ when|date:"Y-m-d" }}
//
// Custom filters are added with WithFilter. A few builtins (escape, safe,
// safeseq, iriencode, title) are placeholders that fail at render time with
// ErrFilterNotImplemented unless replaced.
//
// # Error Handling
//
// Grammar violations are reported by Parse with code DTL_SYNTAX and the line,
// column and raw tag contents as metadata. Render failures carry DTL_RENDER
// and keep their cause, so errors.Is works for ErrFilterNotImplemented and
// context cancellation. A failed render never returns partial output.
//
// # Storage
//
// Templates can be kept in a versioned TemplateStorage (memory, postgres,
// redis) and rendered by name through a StorageEngine:
//
//	storage, _ := dtl.OpenStorage("memory", "")
//	se := dtl.MustNewStorageEngine(dtl.StorageEngineConfig{Storage: storage})
//	_, _ = se.Save(ctx, "greeting", "Hi {{ name }}")
//	out, _ := se.Execute(ctx, "greeting", map[string]any{"name": "Bob"})
//
// # Configuration
//
// Customize the engine with functional options:
//
//	engine, _ := dtl.New(
//	    dtl.WithVariableDelimiters("[[", "]]"),
//	    dtl.WithMaxDepth(50),
//	    dtl.WithLogger(logger),
//	)
package dtl
