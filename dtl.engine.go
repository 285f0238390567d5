package dtl

import (
	"context"
	"sort"
	"sync"

	"github.com/itsatony/go-dtl/internal"
	"go.uber.org/zap"
)

// Engine is the main entry point for the dtl templating system.
// It owns the filter and tag tables, parses and renders templates, and
// keeps a registry of named templates. An Engine is safe for concurrent use.
type Engine struct {
	filters      *internal.FilterTable
	placeholders map[string]bool // Builtin filters that always fail
	tags         *internal.TagTable
	renderer     *internal.Renderer
	templates    map[string]*Template // Named templates
	tmplMu       sync.RWMutex         // Protects templates map
	config       *engineConfig
	logger       *zap.Logger
}

// New creates a new dtl Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := validateDelimiters(config.lexer); err != nil {
		return nil, err
	}

	filters, placeholders, err := buildFilterTable(config)
	if err != nil {
		return nil, err
	}

	renderer := internal.NewRenderer(internal.RendererConfig{MaxDepth: config.maxDepth}, logger)

	logger.Debug(LogMsgEngineCreated,
		zap.Int(LogFieldFilters, filters.Len()),
		zap.Int(LogFieldMaxDepth, config.maxDepth))

	return &Engine{
		filters:      filters,
		placeholders: placeholders,
		tags:         internal.DefaultTagTable(),
		renderer:     renderer,
		templates:    make(map[string]*Template),
		config:       config,
		logger:       logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Parse compiles a template source string into a Template.
// The returned Template can be executed many times, concurrently.
func (e *Engine) Parse(source string) (*Template, error) {
	nodes, err := e.compile(source)
	if err != nil {
		return nil, err
	}
	e.logger.Debug(LogMsgTemplateParsed, zap.Int(LogFieldNodes, internal.CountNodes(nodes)))
	return newTemplate(source, nodes, e), nil
}

func (e *Engine) compile(source string) ([]internal.Node, error) {
	nodes, err := e.compileRaw(source)
	if err != nil {
		return nil, wrapCompileError(err)
	}
	return nodes, nil
}

// compileRaw returns lexer and parser failures unwrapped
func (e *Engine) compileRaw(source string) ([]internal.Node, error) {
	lexer := internal.NewLexerWithConfig(source, e.config.lexer, e.logger)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, err
	}

	parser := internal.NewParser(tokens, e.tags, e.filters, e.logger)
	return parser.ParseTemplate()
}

// Execute is a convenience method that parses and executes in one step.
// For templates that will be executed multiple times, use Parse() instead.
func (e *Engine) Execute(ctx context.Context, source string, data map[string]any) (string, error) {
	tmpl, err := e.Parse(source)
	if err != nil {
		return "", err
	}
	return tmpl.Execute(ctx, data)
}

// RegisterTemplate parses and registers a named template.
// Returns an error if the name is empty, already taken, or the source
// does not compile.
func (e *Engine) RegisterTemplate(name string, source string) error {
	if name == "" {
		return NewEmptyTemplateNameError()
	}

	e.tmplMu.Lock()
	defer e.tmplMu.Unlock()

	if _, exists := e.templates[name]; exists {
		return NewTemplateExistsError(name)
	}

	tmpl, err := e.Parse(source)
	if err != nil {
		return err
	}

	e.templates[name] = tmpl
	e.logger.Debug(LogMsgTemplateRegistered, zap.String(LogFieldTemplateName, name))
	return nil
}

// MustRegisterTemplate registers a template and panics on error.
func (e *Engine) MustRegisterTemplate(name string, source string) {
	if err := e.RegisterTemplate(name, source); err != nil {
		panic(err)
	}
}

// UnregisterTemplate removes a registered template by name.
// Returns true if the template existed and was removed, false otherwise.
func (e *Engine) UnregisterTemplate(name string) bool {
	e.tmplMu.Lock()
	defer e.tmplMu.Unlock()

	if _, exists := e.templates[name]; exists {
		delete(e.templates, name)
		e.logger.Debug(LogMsgTemplateRemoved, zap.String(LogFieldTemplateName, name))
		return true
	}
	return false
}

// GetTemplate retrieves a registered template by name.
func (e *Engine) GetTemplate(name string) (*Template, bool) {
	e.tmplMu.RLock()
	defer e.tmplMu.RUnlock()

	tmpl, ok := e.templates[name]
	return tmpl, ok
}

// HasTemplate checks if a template is registered with the given name.
func (e *Engine) HasTemplate(name string) bool {
	e.tmplMu.RLock()
	defer e.tmplMu.RUnlock()

	_, ok := e.templates[name]
	return ok
}

// ListTemplates returns all registered template names in sorted order.
func (e *Engine) ListTemplates() []string {
	e.tmplMu.RLock()
	defer e.tmplMu.RUnlock()

	names := make([]string, 0, len(e.templates))
	for name := range e.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TemplateCount returns the number of registered templates.
func (e *Engine) TemplateCount() int {
	e.tmplMu.RLock()
	defer e.tmplMu.RUnlock()

	return len(e.templates)
}

// ExecuteTemplate renders a registered template by name.
func (e *Engine) ExecuteTemplate(ctx context.Context, name string, data map[string]any) (string, error) {
	tmpl, ok := e.GetTemplate(name)
	if !ok {
		return "", NewTemplateNotFoundError(name)
	}
	return tmpl.Execute(ctx, data)
}

// ListFilters returns the names of every available filter, sorted.
func (e *Engine) ListFilters() []string {
	return e.filters.Names()
}

// HasFilter reports whether a filter with the given name is available.
func (e *Engine) HasFilter(name string) bool {
	return e.filters.Has(name)
}

// MaxDepth returns the configured maximum nesting depth.
func (e *Engine) MaxDepth() int {
	return e.config.maxDepth
}

func validateDelimiters(cfg internal.LexerConfig) error {
	pairs := [][2]string{
		{cfg.VariableOpen, cfg.VariableClose},
		{cfg.BlockOpen, cfg.BlockClose},
		{cfg.CommentOpen, cfg.CommentClose},
	}
	opens := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		if p[0] == "" || p[1] == "" || opens[p[0]] {
			return NewInvalidDelimitersError(p[0], p[1])
		}
		opens[p[0]] = true
	}
	return nil
}
