package internal

import "strings"

func htmlFilters() []*Filter {
	return []*Filter{
		{Name: FilterEscapeJS, Accepts: KindAny, Fn: filterEscapeJS},
		{Name: FilterFixAmpersands, Accepts: KindAny, Fn: filterFixAmpersands},
		{Name: FilterForceEscape, Accepts: KindAny, Fn: filterForceEscape},
		{Name: FilterLineBreaks, Accepts: KindAny, Fn: filterLineBreaks},
		{Name: FilterLineBreaksBR, Accepts: KindAny, Fn: filterLineBreaksBR},
		{Name: FilterRemoveTags, Accepts: KindAny, Fn: filterRemoveTags},
	}
}

func filterEscapeJS(value any, _ FilterArg) (any, error) {
	if !IsTruthy(value) {
		return StringValueEmpty, nil
	}
	return escapeJS(Stringify(value)), nil
}

// filterFixAmpersands only touches the first ampersand
func filterFixAmpersands(value any, _ FilterArg) (any, error) {
	return strings.Replace(Stringify(value), HTMLAmpersand, HTMLAmpersandEntity, 1), nil
}

func filterForceEscape(value any, _ FilterArg) (any, error) {
	return escapeHTML(Stringify(value)), nil
}

func filterLineBreaks(value any, _ FilterArg) (any, error) {
	return linebreaks(Stringify(value)), nil
}

func filterLineBreaksBR(value any, _ FilterArg) (any, error) {
	return linebreaksBR(Stringify(value)), nil
}

func filterRemoveTags(value any, _ FilterArg) (any, error) {
	return removeTags(Stringify(value)), nil
}
