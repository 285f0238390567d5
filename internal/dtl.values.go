package internal

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ValueKind classifies a runtime value. Kinds are bit flags so a filter can
// declare the set of shapes it accepts.
type ValueKind uint8

// Value kinds
const (
	KindNil ValueKind = 1 << iota
	KindBool
	KindNumber
	KindString
	KindTime
	KindList
	KindMap
	KindOther

	KindAny ValueKind = KindNil | KindBool | KindNumber | KindString | KindTime | KindList | KindMap | KindOther
)

// String returns the kind name
func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return KindNameNil
	case KindBool:
		return KindNameBool
	case KindNumber:
		return KindNameNumber
	case KindString:
		return KindNameString
	case KindTime:
		return KindNameTime
	case KindList:
		return KindNameList
	case KindMap:
		return KindNameMap
	case KindAny:
		return KindNameAny
	default:
		return KindNameOther
	}
}

// Has reports whether k includes every bit of other
func (k ValueKind) Has(other ValueKind) bool {
	return k&other == other
}

// KindOf classifies v
func KindOf(v any) ValueKind {
	if v == nil {
		return KindNil
	}
	switch v.(type) {
	case bool:
		return KindBool
	case string:
		return KindString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return KindNumber
	case time.Time:
		return KindTime
	case *time.Time:
		if v.(*time.Time) == nil {
			return KindNil
		}
		return KindTime
	case []any:
		return KindList
	case map[string]any:
		return KindMap
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return KindList
	case reflect.Map:
		return KindMap
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return KindNil
		}
		return KindOf(rv.Elem().Interface())
	default:
		return KindOther
	}
}

// ToList converts any slice or array into []any. The result is always a
// fresh slice, so callers may reorder it freely.
func ToList(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if list, ok := v.([]any); ok {
		out := make([]any, len(list))
		copy(out, list)
		return out, true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// ToTime extracts a time value
func ToTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	}
	return time.Time{}, false
}

// ToNumber coerces v to a float64 the way an arithmetic context would:
// numbers as-is, booleans as 0/1, numeric strings parsed (a blank string is
// 0). Everything else, including nil, is not numeric.
func ToNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(n)
		if s == StringValueEmpty {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, FloatBitSize64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// NormalizeNumber returns an int64 for integral values in range, else the float
func NormalizeNumber(f float64) any {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < MaxExactFloatInt {
		return int64(f)
	}
	return f
}

// IsTruthy determines the truthiness of a value
// Truthiness rules:
// - nil -> false
// - bool -> value
// - string -> len(s) > 0
// - numbers -> n != 0
// - slice/map -> len(x) > 0
func IsTruthy(v any) bool {
	if v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return len(val) > 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0 && !math.IsNaN(val)
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	case time.Time:
		return !val.IsZero()
	}

	if KindOf(v) == KindNumber {
		f, _ := ToNumber(v)
		return f != 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

// Length returns the length of strings (in characters), lists and maps
func Length(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len(), true
	default:
		return 0, false
	}
}

// Stringify renders a value as template output
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return StringValueEmpty
	case string:
		return val
	case bool:
		if val {
			return StringValueTrue
		}
		return StringValueFalse
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, IntBase10)
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case time.Time:
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	}

	switch KindOf(v) {
	case KindNumber:
		f, _ := ToNumber(v)
		return formatFloat(f)
	case KindList:
		list, _ := ToList(v)
		parts := make([]string, len(list))
		for i, item := range list {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, StrListSeparator)
	case KindMap:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}
	return fmt.Sprintf("%v", v)
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return StringValueNaN
	}
	return strconv.FormatFloat(f, FloatFormatFlag, FloatPrecisionAll, FloatBitSize64)
}

// Lookuper is implemented by values that resolve their own fields
type Lookuper interface {
	Lookup(key string) (any, bool)
}

// LookupField resolves one path segment against a value: map keys, struct
// fields, list indices and Lookuper fields.
func LookupField(current any, key string) (any, bool) {
	if current == nil {
		return nil, false
	}
	switch v := current.(type) {
	case Lookuper:
		return v.Lookup(key)
	case map[string]any:
		val, ok := v[key]
		return val, ok
	case map[string]string:
		val, ok := v[key]
		return val, ok
	}

	rv := reflect.ValueOf(current)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		val := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	case reflect.Struct:
		field := rv.FieldByName(key)
		if !field.IsValid() || !field.CanInterface() {
			return nil, false
		}
		return field.Interface(), true
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= rv.Len() {
			return nil, false
		}
		return rv.Index(idx).Interface(), true
	}
	return nil, false
}

// LookupPath walks the given segments starting at root
func LookupPath(root any, segments []string) (any, bool) {
	current := root
	for _, seg := range segments {
		if seg == StringValueEmpty {
			continue
		}
		next, ok := LookupField(current, seg)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// ForLoop is the record bound to "forloop" on every iteration
type ForLoop struct {
	ParentLoop  any
	Counter     int
	Counter0    int
	RevCounter  int
	RevCounter0 int
	First       bool
	Last        bool
}

// NewForLoop builds the loop record for iteration idx of total
func NewForLoop(parent any, idx, total int) *ForLoop {
	return &ForLoop{
		ParentLoop:  parent,
		Counter:     idx + 1,
		Counter0:    idx,
		RevCounter:  total - idx,
		RevCounter0: total - (idx + 1),
		First:       idx == 0,
		Last:        idx == total-1,
	}
}

// Lookup resolves loop fields by their template names
func (f *ForLoop) Lookup(key string) (any, bool) {
	switch key {
	case ForLoopParentLoop:
		return f.ParentLoop, true
	case ForLoopCounter:
		return f.Counter, true
	case ForLoopCounter0:
		return f.Counter0, true
	case ForLoopRevCounter:
		return f.RevCounter, true
	case ForLoopRevCounter0:
		return f.RevCounter0, true
	case ForLoopFirst:
		return f.First, true
	case ForLoopLast:
		return f.Last, true
	}
	return nil, false
}

// String returns a compact representation of the loop state
func (f *ForLoop) String() string {
	return fmt.Sprintf("forloop{counter=%d, revcounter=%d, first=%t, last=%t}", f.Counter, f.RevCounter, f.First, f.Last)
}
