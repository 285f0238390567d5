package internal

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"
)

func listFilters(opts BuiltinOptions) []*Filter {
	intn := opts.RandomIntn
	if intn == nil {
		intn = rand.Intn
	}
	return []*Filter{
		{Name: FilterDictSort, Accepts: KindList, Fallback: fallbackEmptyList, Fn: filterDictSort},
		{Name: FilterDictSortReversed, Accepts: KindList, Fallback: fallbackEmptyList, Fn: filterDictSortReversed},
		{Name: FilterFirst, Accepts: KindList, Fn: filterFirst},
		{Name: FilterLast, Accepts: KindList, Fn: filterLast},
		{Name: FilterJoin, Accepts: KindList, Fn: filterJoin},
		{Name: FilterRandom, Accepts: KindList, Fn: randomFilter(intn)},
		{Name: FilterSlice, Accepts: KindList, Fallback: fallbackEmptyList, Fn: filterSlice},
	}
}

func filterDictSort(value any, arg FilterArg) (any, error) {
	list, _ := ToList(value)
	key := arg.String()
	sort.SliceStable(list, func(i, j int) bool {
		return compareRecords(list[i], list[j], key) < 0
	})
	return list, nil
}

func filterDictSortReversed(value any, arg FilterArg) (any, error) {
	sorted, err := filterDictSort(value, arg)
	if err != nil {
		return nil, err
	}
	list := sorted.([]any)
	reverseList(list)
	return list, nil
}

func compareRecords(a, b any, key string) int {
	av, _ := LookupField(a, key)
	bv, _ := LookupField(b, key)
	return compareValues(av, bv)
}

// compareValues is a three-way comparator over numbers, strings and times.
// A number against a numeric string compares numerically. Anything else is
// treated as equal.
func compareValues(a, b any) int {
	ka, kb := KindOf(a), KindOf(b)
	if ka == KindNumber || kb == KindNumber {
		x, okA := ToNumber(a)
		y, okB := ToNumber(b)
		if okA && okB && (ka == KindNumber || ka == KindString) && (kb == KindNumber || kb == KindString) {
			return compareOrdered(x, y)
		}
		return 0
	}
	if ka == KindString && kb == KindString {
		return strings.Compare(a.(string), b.(string))
	}
	if ka == KindTime && kb == KindTime {
		x, _ := ToTime(a)
		y, _ := ToTime(b)
		return compareTimes(x, y)
	}
	return 0
}

func compareOrdered(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func compareTimes(x, y time.Time) int {
	switch {
	case x.Before(y):
		return -1
	case x.After(y):
		return 1
	}
	return 0
}

func reverseList(list []any) {
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
}

func filterFirst(value any, _ FilterArg) (any, error) {
	list, _ := ToList(value)
	if len(list) == 0 {
		return StringValueEmpty, nil
	}
	return list[0], nil
}

func filterLast(value any, _ FilterArg) (any, error) {
	list, _ := ToList(value)
	if len(list) == 0 {
		return StringValueEmpty, nil
	}
	return list[len(list)-1], nil
}

func filterJoin(value any, arg FilterArg) (any, error) {
	list, _ := ToList(value)
	sep := DefaultJoinSeparator
	if arg.Given {
		sep = arg.String()
	}
	parts := make([]string, len(list))
	for i, item := range list {
		parts[i] = Stringify(item)
	}
	return strings.Join(parts, sep), nil
}

func randomFilter(intn func(int) int) FilterFunc {
	return func(value any, _ FilterArg) (any, error) {
		list, _ := ToList(value)
		if len(list) == 0 {
			return StringValueEmpty, nil
		}
		return list[intn(len(list))], nil
	}
}

// filterSlice applies a "start:stop[:step]" range. Empty parts take their
// defaults and negative indices count from the end. A zero, empty or
// unparsable step means no step; a negative step selects nothing.
func filterSlice(value any, arg FilterArg) (any, error) {
	list, _ := ToList(value)
	parts := strings.Split(arg.String(), SliceSeparator)
	n := len(list)

	start := sliceIndex(parts, 0, 0, n)
	stop := sliceIndex(parts, 1, n, n)
	step := 1
	if len(parts) > 2 {
		if s, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil && s != 0 {
			step = s
		}
	}
	if step < 0 || start >= stop {
		return []any{}, nil
	}

	count := (stop-start-1)/step + 1
	out := make([]any, count)
	for k := range out {
		out[k] = list[start+k*step]
	}
	return out, nil
}

// sliceIndex parses parts[idx], resolving negatives against n and clamping
// into [0, n]
func sliceIndex(parts []string, idx, def, n int) int {
	if idx >= len(parts) {
		return def
	}
	raw := strings.TrimSpace(parts[idx])
	if raw == StringValueEmpty {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if v < 0 {
		v += n
	}
	if v < 0 {
		return 0
	}
	if v > n {
		return n
	}
	return v
}
