package dtl

import (
	"github.com/itsatony/go-dtl/internal"
)

// Context is the variable scope of a single render. Lookups walk frames
// from the innermost outwards; the base frame holds a shallow copy of the
// caller's data and is never popped.
// A Context is not safe for concurrent use; give each render its own.
type Context struct {
	scope *internal.ScopeStack
}

// NewContext creates a context over data. The map itself is never written.
func NewContext(data map[string]any) *Context {
	return &Context{scope: internal.NewScopeStack(data)}
}

// Get resolves a dotted path such as "user.address.city".
func (c *Context) Get(path string) (any, bool) {
	return c.scope.Get(path)
}

// GetString resolves a path and renders it, or "" when it is missing.
func (c *Context) GetString(path string) string {
	v, ok := c.Get(path)
	if !ok {
		return ""
	}
	return internal.Stringify(v)
}

// GetDefault resolves a path, returning defaultVal when it is missing.
func (c *Context) GetDefault(path string, defaultVal any) any {
	if v, ok := c.Get(path); ok {
		return v
	}
	return defaultVal
}

// Has reports whether a path resolves.
func (c *Context) Has(path string) bool {
	return c.scope.Has(path)
}

// Set binds name in the innermost frame.
func (c *Context) Set(name string, value any) {
	c.scope.Set(name, value)
}

// Push opens a new innermost frame.
func (c *Context) Push() {
	c.scope.Push()
}

// Pop discards the innermost frame. The base frame is kept.
func (c *Context) Pop() {
	c.scope.Pop()
}

// Depth returns the number of frames, base included.
func (c *Context) Depth() int {
	return c.scope.Depth()
}

// Data returns every visible binding, inner frames winning.
func (c *Context) Data() map[string]any {
	return c.scope.Flatten()
}
