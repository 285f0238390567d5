package internal

import (
	"errors"
	"fmt"
	"sort"
)

// ErrFilterNotImplemented is returned by filters that are registered but
// deliberately have no implementation.
var ErrFilterNotImplemented = errors.New(ErrMsgFilterNotImplemented)

// FilterArg is the single optional argument of a filter stage
type FilterArg struct {
	Raw   string // Argument text as written in the template
	Value any    // Resolved value (string/number literal or variable value)
	Given bool   // False when the stage has no ":arg" part
}

// NoArg is the argument passed to stages written without ":arg"
var NoArg = FilterArg{}

// LiteralArg builds a given argument from a literal value
func LiteralArg(v any) FilterArg {
	return FilterArg{Raw: Stringify(v), Value: v, Given: true}
}

// String returns the stringified argument, or "" when absent
func (a FilterArg) String() string {
	if !a.Given {
		return StringValueEmpty
	}
	return Stringify(a.Value)
}

// Number returns the argument only if it is an actual number (no coercion)
func (a FilterArg) Number() (float64, bool) {
	if !a.Given || KindOf(a.Value) != KindNumber {
		return 0, false
	}
	return ToNumber(a.Value)
}

// Coerce returns the argument under arithmetic coercion
func (a FilterArg) Coerce() (float64, bool) {
	if !a.Given {
		return 0, false
	}
	return ToNumber(a.Value)
}

// FilterFunc transforms a value. It must not touch the render context.
type FilterFunc func(value any, arg FilterArg) (any, error)

// Filter is a named value transformation with a declared input shape.
// Values whose kind is not in Accepts never reach Fn; Fallback (or "")
// is returned for them instead.
type Filter struct {
	Name     string
	Accepts  ValueKind
	Fallback func(value any) any
	Fn       FilterFunc
}

// Apply validates the value shape and invokes the filter
func (f *Filter) Apply(value any, arg FilterArg) (any, error) {
	if !f.accepts(value) {
		if f.Fallback != nil {
			return f.Fallback(value), nil
		}
		return StringValueEmpty, nil
	}
	out, err := f.Fn(value, arg)
	if err != nil {
		return nil, NewFilterError(f.Name, err)
	}
	return out, nil
}

func (f *Filter) accepts(value any) bool {
	if f.Accepts == 0 {
		return true
	}
	return f.Accepts&KindOf(value) != 0
}

// fallbackEmptyList answers list filters given a non-list
func fallbackEmptyList(any) any {
	return []any{}
}

// fallbackPassThrough returns the value unchanged
func fallbackPassThrough(v any) any {
	return v
}

// FilterTable is an immutable name -> filter lookup built once per engine
type FilterTable struct {
	filters map[string]*Filter
}

// NewFilterTable builds a table; names must be unique and non-empty
func NewFilterTable(filters ...*Filter) (*FilterTable, error) {
	t := &FilterTable{filters: make(map[string]*Filter, len(filters))}
	for _, f := range filters {
		if f == nil || f.Fn == nil {
			return nil, NewFilterTableError(ErrMsgFilterNil, StringValueEmpty)
		}
		if f.Name == StringValueEmpty {
			return nil, NewFilterTableError(ErrMsgFilterEmptyName, StringValueEmpty)
		}
		if _, exists := t.filters[f.Name]; exists {
			return nil, NewFilterTableError(ErrMsgFilterAlreadyExists, f.Name)
		}
		t.filters[f.Name] = f
	}
	return t, nil
}

// MustNewFilterTable builds a table and panics on error
func MustNewFilterTable(filters ...*Filter) *FilterTable {
	t, err := NewFilterTable(filters...)
	if err != nil {
		panic(err)
	}
	return t
}

// Get retrieves a filter by name
func (t *FilterTable) Get(name string) (*Filter, bool) {
	f, ok := t.filters[name]
	return f, ok
}

// Has checks if a filter exists
func (t *FilterTable) Has(name string) bool {
	_, ok := t.filters[name]
	return ok
}

// Names returns all filter names in sorted order
func (t *FilterTable) Names() []string {
	names := make([]string, 0, len(t.filters))
	for name := range t.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of filters
func (t *FilterTable) Len() int {
	return len(t.filters)
}

// Apply looks up and applies a filter by name
func (t *FilterTable) Apply(name string, value any, arg FilterArg) (any, error) {
	f, ok := t.Get(name)
	if !ok {
		return nil, NewFilterTableError(ErrMsgFilterNotFound, name)
	}
	return f.Apply(value, arg)
}

// BuiltinOptions tunes the builtin filter set
type BuiltinOptions struct {
	// RandomIntn returns a value in [0, n); used by the random filter
	RandomIntn func(n int) int
}

// BuiltinFilters returns a fresh copy of every builtin filter
func BuiltinFilters(opts BuiltinOptions) []*Filter {
	var filters []*Filter
	filters = append(filters, stringFilters()...)
	filters = append(filters, numberFilters()...)
	filters = append(filters, listFilters(opts)...)
	filters = append(filters, htmlFilters()...)
	filters = append(filters, unimplementedFilters()...)
	return filters
}

// DefaultFilterTable builds the builtin table with default options
func DefaultFilterTable() *FilterTable {
	return MustNewFilterTable(BuiltinFilters(BuiltinOptions{})...)
}

// IsNotImplemented reports whether the named builtin is a placeholder
func IsNotImplemented(name string) bool {
	for _, n := range NotImplementedFilterNames {
		if n == name {
			return true
		}
	}
	return false
}

// unimplementedFilters fail on every invocation
func unimplementedFilters() []*Filter {
	filters := make([]*Filter, 0, len(NotImplementedFilterNames))
	for _, name := range NotImplementedFilterNames {
		filters = append(filters, &Filter{
			Name:    name,
			Accepts: KindAny,
			Fn: func(any, FilterArg) (any, error) {
				return nil, ErrFilterNotImplemented
			},
		})
	}
	return filters
}

// FilterError wraps a failure raised by a filter
type FilterError struct {
	FilterName string
	Cause      error
}

// NewFilterError creates a new filter error
func NewFilterError(name string, cause error) *FilterError {
	return &FilterError{FilterName: name, Cause: cause}
}

// Error implements the error interface
func (e *FilterError) Error() string {
	return fmt.Sprintf(ErrFmtFilterFailed, e.FilterName, e.Cause)
}

// Unwrap returns the underlying error
func (e *FilterError) Unwrap() error {
	return e.Cause
}

// FilterTableError represents a filter table construction or lookup error
type FilterTableError struct {
	Message    string
	FilterName string
}

// NewFilterTableError creates a new filter table error
func NewFilterTableError(message, name string) *FilterTableError {
	return &FilterTableError{Message: message, FilterName: name}
}

// Error implements the error interface
func (e *FilterTableError) Error() string {
	if e.FilterName != StringValueEmpty {
		return fmt.Sprintf("%s: %s", e.Message, e.FilterName)
	}
	return e.Message
}
