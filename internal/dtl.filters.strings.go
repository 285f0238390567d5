package internal

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// phone keypad letters, lower-case only
var phoneKeypad = map[rune]rune{
	'a': '2', 'b': '2', 'c': '2',
	'd': '3', 'e': '3', 'f': '3',
	'g': '4', 'h': '4', 'i': '4',
	'j': '5', 'k': '5', 'l': '5',
	'm': '6', 'n': '6', 'o': '6',
	'p': '7', 'q': '7', 'r': '7', 's': '7',
	't': '8', 'u': '8', 'v': '8',
	'w': '9', 'x': '9', 'y': '9', 'z': '9',
}

func stringFilters() []*Filter {
	return []*Filter{
		{Name: FilterAddSlashes, Accepts: KindAny, Fn: filterAddSlashes},
		{Name: FilterCapFirst, Accepts: KindAny, Fn: filterCapFirst},
		{Name: FilterCenter, Accepts: KindAny, Fn: filterCenter},
		{Name: FilterCut, Accepts: KindAny, Fn: filterCut},
		{Name: FilterDate, Accepts: KindTime, Fn: filterDate},
		{Name: FilterDefault, Accepts: KindAny, Fn: filterDefault},
		{Name: FilterDefaultIfNone, Accepts: KindAny, Fn: filterDefaultIfNone},
		{Name: FilterLength, Accepts: KindAny, Fn: filterLength},
		{Name: FilterLengthIs, Accepts: KindAny, Fn: filterLengthIs},
		{Name: FilterLineNumbers, Accepts: KindAny, Fn: filterLineNumbers},
		{Name: FilterLJust, Accepts: KindAny, Fn: filterLJust},
		{Name: FilterRJust, Accepts: KindAny, Fn: filterRJust},
		{Name: FilterLower, Accepts: KindString, Fn: filterLower},
		{Name: FilterMakeList, Accepts: KindAny, Fn: filterMakeList},
		{Name: FilterPhone2Numeric, Accepts: KindAny, Fn: filterPhone2Numeric},
		{Name: FilterPPrint, Accepts: KindAny, Fn: filterPPrint},
	}
}

func filterAddSlashes(value any, _ FilterArg) (any, error) {
	return addSlashes(Stringify(value)), nil
}

func filterCapFirst(value any, _ FilterArg) (any, error) {
	return capFirst(Stringify(value)), nil
}

func filterCenter(value any, arg FilterArg) (any, error) {
	s := Stringify(value)
	width, ok := arg.Coerce()
	if !ok {
		return s, nil
	}
	return center(s, int(width)), nil
}

func filterCut(value any, arg FilterArg) (any, error) {
	s := Stringify(value)
	pattern := arg.String()
	if pattern == StringValueEmpty {
		return s, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return strings.ReplaceAll(s, pattern, StringValueEmpty), nil
	}
	return re.ReplaceAllString(s, StringValueEmpty), nil
}

func filterDate(value any, arg FilterArg) (any, error) {
	t, _ := ToTime(value)
	format := DefaultDateFormat
	if arg.Given {
		format = arg.String()
	}
	return formatDate(format, t), nil
}

func filterDefault(value any, arg FilterArg) (any, error) {
	if IsTruthy(value) {
		return value, nil
	}
	return arg.Value, nil
}

func filterDefaultIfNone(value any, arg FilterArg) (any, error) {
	if KindOf(value) == KindNil {
		return arg.Value, nil
	}
	return value, nil
}

func filterLength(value any, _ FilterArg) (any, error) {
	n, _ := Length(value)
	return n, nil
}

func filterLengthIs(value any, arg FilterArg) (any, error) {
	n, ok := Length(value)
	want, isNum := arg.Number()
	return ok && isNum && float64(n) == want, nil
}

func filterLineNumbers(value any, _ FilterArg) (any, error) {
	lines := strings.Split(Stringify(value), "\n")
	width := len(strconv.Itoa(len(lines)))
	for i, line := range lines {
		lines[i] = fmt.Sprintf("%0*d. %s", width, i+1, line)
	}
	return strings.Join(lines, "\n"), nil
}

func filterLJust(value any, arg FilterArg) (any, error) {
	width, ok := arg.Number()
	if !ok {
		return StringValueEmpty, nil
	}
	return padRight(Stringify(value), int(width)), nil
}

func filterRJust(value any, arg FilterArg) (any, error) {
	width, ok := arg.Number()
	if !ok {
		return StringValueEmpty, nil
	}
	return padLeft(Stringify(value), int(width)), nil
}

func filterLower(value any, _ FilterArg) (any, error) {
	s, ok := value.(string)
	if !ok {
		if p, isPtr := value.(*string); isPtr {
			s = *p
		}
	}
	return strings.ToLower(s), nil
}

func filterMakeList(value any, _ FilterArg) (any, error) {
	s := Stringify(value)
	out := make([]any, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out, nil
}

func filterPhone2Numeric(value any, _ FilterArg) (any, error) {
	s := strings.ToLower(Stringify(value))
	return strings.Map(func(r rune) rune {
		if d, ok := phoneKeypad[r]; ok {
			return d
		}
		return r
	}, s), nil
}

func filterPPrint(value any, _ FilterArg) (any, error) {
	b, err := json.MarshalIndent(value, StringValueEmpty, PPrintIndent)
	if err != nil {
		return fmt.Sprintf("%#v", value), nil
	}
	return string(b), nil
}
