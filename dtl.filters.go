package dtl

import "github.com/itsatony/go-dtl/internal"

// FilterArg is the optional argument of a filter invocation. Given is false
// when the template supplied no argument.
type FilterArg = internal.FilterArg

// FilterFunc transforms a value. Returning an error aborts the render.
type FilterFunc = internal.FilterFunc

// ValueKind classifies runtime values; kinds combine as bit flags.
type ValueKind = internal.ValueKind

// Value kinds accepted by filters
const (
	KindNil    = internal.KindNil
	KindBool   = internal.KindBool
	KindNumber = internal.KindNumber
	KindString = internal.KindString
	KindTime   = internal.KindTime
	KindList   = internal.KindList
	KindMap    = internal.KindMap
	KindOther  = internal.KindOther
	KindAny    = internal.KindAny
)

// Stringify converts a value to its rendered form
func Stringify(v any) string {
	return internal.Stringify(v)
}

// IsTruthy reports whether a value counts as true in an if tag
func IsTruthy(v any) bool {
	return internal.IsTruthy(v)
}

// buildFilterTable merges the builtins with custom filters, later
// registrations replacing earlier ones of the same name. It also reports
// which placeholder builtins were left in place.
func buildFilterTable(config *engineConfig) (*internal.FilterTable, map[string]bool, error) {
	builtins := internal.BuiltinFilters(internal.BuiltinOptions{RandomIntn: config.randomIntn})

	index := make(map[string]int, len(builtins)+len(config.filters))
	merged := make([]*internal.Filter, 0, len(builtins)+len(config.filters))
	for _, f := range append(builtins, config.filters...) {
		if f != nil {
			if i, ok := index[f.Name]; ok {
				merged[i] = f
				continue
			}
			index[f.Name] = len(merged)
		}
		merged = append(merged, f)
	}

	table, err := internal.NewFilterTable(merged...)
	if err != nil {
		name := ""
		if tableErr, ok := err.(*internal.FilterTableError); ok {
			name = tableErr.FilterName
		}
		return nil, nil, NewFilterRegistrationError(name, err)
	}

	placeholders := make(map[string]bool)
	for _, f := range builtins {
		if internal.IsNotImplemented(f.Name) && !hasCustomFilter(config.filters, f.Name) {
			placeholders[f.Name] = true
		}
	}
	return table, placeholders, nil
}

func hasCustomFilter(filters []*internal.Filter, name string) bool {
	for _, f := range filters {
		if f != nil && f.Name == name {
			return true
		}
	}
	return false
}
