package internal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyFilter(t *testing.T, name string, value any, arg FilterArg) any {
	t.Helper()
	out, err := DefaultFilterTable().Apply(name, value, arg)
	require.NoError(t, err)
	return out
}

type filterCase struct {
	name     string
	value    any
	arg      FilterArg
	expected any
}

func runFilterCases(t *testing.T, filter string, cases []filterCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, applyFilter(t, filter, tc.value, tc.arg))
		})
	}
}

func TestFilterTable_Builtins(t *testing.T) {
	table := DefaultFilterTable()

	for _, name := range []string{
		FilterAdd, FilterAddSlashes, FilterCapFirst, FilterCenter, FilterCut, FilterDate,
		FilterDefault, FilterDefaultIfNone, FilterDictSort, FilterDictSortReversed,
		FilterDivisibleBy, FilterEscape, FilterEscapeJS, FilterFileSizeFormat, FilterFirst,
		FilterFixAmpersands, FilterFloatFormat, FilterForceEscape, FilterGetDigit,
		FilterIRIEncode, FilterJoin, FilterLast, FilterLength, FilterLengthIs,
		FilterLineBreaks, FilterLineBreaksBR, FilterLineNumbers, FilterLJust, FilterLower,
		FilterMakeList, FilterPhone2Numeric, FilterPluralize, FilterPPrint, FilterRandom,
		FilterRemoveTags, FilterRJust, FilterSafe, FilterSafeSeq, FilterSlice, FilterTitle,
	} {
		assert.True(t, table.Has(name), name)
	}
	assert.Equal(t, 40, table.Len())
	assert.False(t, table.Has("slugify"))

	names := table.Names()
	assert.Equal(t, FilterAdd, names[0])
	assert.IsIncreasing(t, names)
}

func TestFilterTable_Errors(t *testing.T) {
	noop := func(v any, _ FilterArg) (any, error) { return v, nil }

	_, err := NewFilterTable(&Filter{Name: "a", Fn: noop}, &Filter{Name: "a", Fn: noop})
	var tableErr *FilterTableError
	require.ErrorAs(t, err, &tableErr)
	assert.Equal(t, ErrMsgFilterAlreadyExists, tableErr.Message)
	assert.Equal(t, "a", tableErr.FilterName)

	_, err = NewFilterTable(&Filter{Name: "", Fn: noop})
	require.ErrorAs(t, err, &tableErr)
	assert.Equal(t, ErrMsgFilterEmptyName, tableErr.Message)

	_, err = NewFilterTable(&Filter{Name: "x"})
	require.ErrorAs(t, err, &tableErr)
	assert.Equal(t, ErrMsgFilterNil, tableErr.Message)

	assert.Panics(t, func() { MustNewFilterTable(nil) })

	_, err = DefaultFilterTable().Apply("missing", 1, NoArg)
	require.ErrorAs(t, err, &tableErr)
	assert.Equal(t, ErrMsgFilterNotFound, tableErr.Message)
}

func TestFilter_AcceptsAndFallback(t *testing.T) {
	called := false
	f := &Filter{
		Name:     "upper_list",
		Accepts:  KindList,
		Fallback: func(v any) any { return "fallback" },
		Fn: func(v any, _ FilterArg) (any, error) {
			called = true
			return v, nil
		},
	}

	out, err := f.Apply("not a list", NoArg)
	require.NoError(t, err)
	assert.Equal(t, "fallback", out)
	assert.False(t, called)

	_, err = f.Apply([]int{1}, NoArg)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestFilter_NotImplemented(t *testing.T) {
	table := DefaultFilterTable()
	for _, name := range NotImplementedFilterNames {
		t.Run(name, func(t *testing.T) {
			for _, value := range []any{nil, "text", 42, []any{"a"}} {
				out, err := table.Apply(name, value, NoArg)
				require.Error(t, err)
				assert.Nil(t, out)
				assert.True(t, errors.Is(err, ErrFilterNotImplemented))

				var filterErr *FilterError
				require.ErrorAs(t, err, &filterErr)
				assert.Equal(t, name, filterErr.FilterName)
			}
			assert.True(t, IsNotImplemented(name))
		})
	}
	assert.False(t, IsNotImplemented(FilterLower))
}

func TestFilter_Add(t *testing.T) {
	runFilterCases(t, FilterAdd, []filterCase{
		{"ints", 2, LiteralArg(int64(3)), int64(5)},
		{"numeric strings", "2", LiteralArg("3"), int64(5)},
		{"floats", 1.5, LiteralArg(int64(1)), 2.5},
		{"negative", 10, LiteralArg(int64(-12)), int64(-2)},
		{"non-numeric value", "a", LiteralArg(int64(1)), ""},
		{"non-numeric arg", 1, LiteralArg("b"), ""},
		{"missing arg", 1, NoArg, ""},
		{"nil value", nil, LiteralArg(int64(1)), ""},
	})
}

func TestFilter_AddSlashes(t *testing.T) {
	runFilterCases(t, FilterAddSlashes, []filterCase{
		{"quotes", `I'm "here"`, NoArg, `I\'m \"here\"`},
		{"backslash", `a\b`, NoArg, `a\\b`},
		{"number", 12, NoArg, "12"},
	})
}

func TestFilter_CapFirst(t *testing.T) {
	runFilterCases(t, FilterCapFirst, []filterCase{
		{"lower", "hello world", NoArg, "Hello world"},
		{"empty", "", NoArg, ""},
		{"unicode", "élan", NoArg, "Élan"},
	})
}

func TestFilter_Center(t *testing.T) {
	runFilterCases(t, FilterCenter, []filterCase{
		{"even", "ab", LiteralArg(int64(6)), "  ab  "},
		{"odd margin even width", "abc", LiteralArg(int64(6)), " abc  "},
		{"odd width", "ab", LiteralArg(int64(5)), "  ab "},
		{"too narrow", "abcdef", LiteralArg(int64(3)), "abcdef"},
		{"string width", "ab", LiteralArg("4"), " ab "},
		{"non-numeric width", "ab", LiteralArg("wide"), "ab"},
	})
}

func TestFilter_Cut(t *testing.T) {
	runFilterCases(t, FilterCut, []filterCase{
		{"spaces", "a b c", LiteralArg(" "), "abc"},
		{"pattern", "a1b22c", LiteralArg(`\d`), "abc"},
		{"invalid pattern", "a(b(c", LiteralArg("("), "abc"},
		{"no arg", "abc", NoArg, "abc"},
	})
}

func TestFilter_Date(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
	runFilterCases(t, FilterDate, []filterCase{
		{"iso-like", ts, LiteralArg("Y-m-d H:i:s"), "2024-03-05 14:07:09"},
		{"default format", ts, NoArg, "March 5, 2024"},
		{"ordinal", ts, LiteralArg("jS F"), "5th March"},
		{"weekday", ts, LiteralArg("D, d M"), "Tue, 05 Mar"},
		{"escaped", ts, LiteralArg(`\Y Y`), "Y 2024"},
		{"period", ts, LiteralArg("P"), "2:07 p.m."},
		{"pointer", &ts, LiteralArg("y"), "24"},
		{"not a date", "2024-03-05", LiteralArg("Y"), ""},
		{"nil", nil, LiteralArg("Y"), ""},
	})
}

func TestFilter_DefaultAndDefaultIfNone(t *testing.T) {
	runFilterCases(t, FilterDefault, []filterCase{
		{"truthy", "x", LiteralArg("fallback"), "x"},
		{"empty string", "", LiteralArg("fallback"), "fallback"},
		{"zero", 0, LiteralArg("fallback"), "fallback"},
		{"false", false, LiteralArg("fallback"), "fallback"},
		{"empty list", []any{}, LiteralArg("fallback"), "fallback"},
		{"nil", nil, LiteralArg("fallback"), "fallback"},
	})
	runFilterCases(t, FilterDefaultIfNone, []filterCase{
		{"nil", nil, LiteralArg("fallback"), "fallback"},
		{"zero passes", 0, LiteralArg("fallback"), 0},
		{"empty passes", "", LiteralArg("fallback"), ""},
		{"false passes", false, LiteralArg("fallback"), false},
		{"nil pointer", (*int)(nil), LiteralArg("fallback"), "fallback"},
	})
}

func TestFilter_DictSort(t *testing.T) {
	records := []any{
		map[string]any{"name": "bob", "age": 41},
		map[string]any{"name": "alice", "age": 29},
		map[string]any{"name": "carol", "age": 35},
	}
	original := append([]any(nil), records...)

	byName := applyFilter(t, FilterDictSort, records, LiteralArg("name")).([]any)
	assert.Equal(t, []any{records[1], records[0], records[2]}, byName)

	byAge := applyFilter(t, FilterDictSort, records, LiteralArg("age")).([]any)
	assert.Equal(t, []any{records[1], records[2], records[0]}, byAge)

	assert.Equal(t, original, records, "input must not be reordered")

	assert.Equal(t, []any{}, applyFilter(t, FilterDictSort, "nope", LiteralArg("name")))
	assert.Equal(t, []any{}, applyFilter(t, FilterDictSortReversed, 12, LiteralArg("name")))
}

func TestFilter_DictSortReversedIsExactReverse(t *testing.T) {
	inputs := [][]any{
		{
			map[string]any{"k": 3}, map[string]any{"k": 1}, map[string]any{"k": 2},
		},
		{
			map[string]any{"k": "pear"}, map[string]any{"k": "apple"},
			map[string]any{"k": "fig"}, map[string]any{"k": "kiwi"},
		},
		{
			map[string]any{"k": time.Unix(300, 0)}, map[string]any{"k": time.Unix(100, 0)},
		},
		{},
	}

	for _, input := range inputs {
		sorted := applyFilter(t, FilterDictSort, input, LiteralArg("k")).([]any)
		reversed := applyFilter(t, FilterDictSortReversed, input, LiteralArg("k")).([]any)

		require.Len(t, reversed, len(sorted))
		for i := range sorted {
			assert.Equal(t, sorted[i], reversed[len(reversed)-1-i])
		}
	}
}

func TestFilter_DictSortStructs(t *testing.T) {
	type person struct {
		Name string
		Age  int
	}
	people := []person{{"Zed", 3}, {"Amy", 9}, {"Kim", 1}}

	sorted := applyFilter(t, FilterDictSort, people, LiteralArg("Age")).([]any)
	assert.Equal(t, []any{people[2], people[0], people[1]}, sorted)
}

func TestFilter_DivisibleBy(t *testing.T) {
	runFilterCases(t, FilterDivisibleBy, []filterCase{
		{"divisible", 21, LiteralArg(int64(7)), true},
		{"string arg", 21, LiteralArg("7"), true},
		{"not divisible", 22, LiteralArg(int64(7)), false},
		{"zero divisor", 5, LiteralArg(int64(0)), false},
		{"non-numeric", "x", LiteralArg(int64(2)), false},
		{"missing arg", 4, NoArg, false},
	})
}

func TestFilter_EscapeJS(t *testing.T) {
	runFilterCases(t, FilterEscapeJS, []filterCase{
		{"safe", "abc-1.2_@*+/", NoArg, "abc-1.2_@*+/"},
		{"space and tag", "a b<", NoArg, "a%20b%3C"},
		{"latin1", "é", NoArg, "%E9"},
		{"bmp", "€", NoArg, "%u20AC"},
		{"astral", "😀", NoArg, "%uD83D%uDE00"},
		{"empty", "", NoArg, ""},
		{"falsy zero", 0, NoArg, ""},
	})
}

func TestFilter_FileSizeFormat(t *testing.T) {
	runFilterCases(t, FilterFileSizeFormat, []filterCase{
		{"zero", 0, NoArg, "0 bytes"},
		{"one", 1, NoArg, "1 byte"},
		{"bytes", 1023, NoArg, "1023 bytes"},
		{"kilobytes", 1536, NoArg, "1.5KB"},
		{"megabytes", 5 * 1024 * 1024, NoArg, "5.0MB"},
		{"gigabytes", 3 * 1024 * 1024 * 1024, NoArg, "3.0GB"},
		{"numeric string", "2048", NoArg, "2.0KB"},
		{"kilobyte tie rounds up", 1280, NoArg, "1.3KB"},
		{"byte tie rounds up", 2.5, NoArg, "3 bytes"},
		{"megabyte tie rounds up", 1.25 * 1024 * 1024, NoArg, "1.3MB"},
		{"non-numeric", "big", NoArg, "0 bytes"},
	})
}

func TestFilter_FirstLast(t *testing.T) {
	runFilterCases(t, FilterFirst, []filterCase{
		{"list", []any{"a", "b"}, NoArg, "a"},
		{"typed slice", []int{7, 8}, NoArg, 7},
		{"empty", []any{}, NoArg, ""},
		{"string", "abc", NoArg, ""},
	})
	runFilterCases(t, FilterLast, []filterCase{
		{"list", []any{"a", "b"}, NoArg, "b"},
		{"empty", []any{}, NoArg, ""},
		{"map", map[string]any{"a": 1}, NoArg, ""},
	})
}

func TestFilter_FixAmpersands(t *testing.T) {
	runFilterCases(t, FilterFixAmpersands, []filterCase{
		{"first only", "a & b & c", NoArg, "a &amp; b & c"},
		{"none", "abc", NoArg, "abc"},
	})
}

func TestFilter_FloatFormat(t *testing.T) {
	runFilterCases(t, FilterFloatFormat, []filterCase{
		{"default keeps fraction", 34.23234, NoArg, "34.2"},
		{"default drops zero fraction", 34.0, NoArg, "34"},
		{"default rounds to integer", 34.00001, NoArg, "34"},
		{"positive precision", 34.2, LiteralArg(int64(3)), "34.200"},
		{"positive keeps zeros", 34.0, LiteralArg(int64(3)), "34.000"},
		{"negative precision", 34.23234, LiteralArg(int64(-3)), "34.232"},
		{"negative drops zeros", 34.0, LiteralArg(int64(-3)), "34"},
		{"numeric string", "2.5", LiteralArg(int64(2)), "2.50"},
		{"tie rounds up", 1.25, LiteralArg(int64(1)), "1.3"},
		{"tie rounds up at two places", 0.125, LiteralArg(int64(2)), "0.13"},
		{"negative tie rounds away from zero", -1.25, LiteralArg(int64(1)), "-1.3"},
		{"below a tie rounds down", 1.005, LiteralArg(int64(2)), "1.00"},
		{"zero arg uses default", 2.5, LiteralArg(int64(0)), "2.5"},
		{"non-numeric", "abc", NoArg, ""},
	})
}

func TestFilter_ForceEscape(t *testing.T) {
	assert.Equal(t, "&lt;a href=&quot;x&quot;&gt;Tom &amp; &#39;Jerry&#39;&lt;/a&gt;",
		applyFilter(t, FilterForceEscape, `<a href="x">Tom & 'Jerry'</a>`, NoArg))
}

func TestFilter_GetDigit(t *testing.T) {
	runFilterCases(t, FilterGetDigit, []filterCase{
		{"last digit", 123456789, LiteralArg(int64(1)), int64(9)},
		{"second", 123456789, LiteralArg(int64(2)), int64(8)},
		{"out of range", 123, LiteralArg(int64(9)), 123},
		{"zero position", 123, LiteralArg(int64(0)), 123},
		{"string arg", 123, LiteralArg("1"), 123},
		{"non-numeric value", "abc", LiteralArg(int64(1)), "abc"},
		{"missing arg", 42, NoArg, 42},
	})
}

func TestFilter_Join(t *testing.T) {
	runFilterCases(t, FilterJoin, []filterCase{
		{"separator", []any{"a", "b", "c"}, LiteralArg(" // "), "a // b // c"},
		{"default separator", []any{1, 2, 3}, NoArg, "1,2,3"},
		{"typed slice", []string{"x", "y"}, LiteralArg("-"), "x-y"},
		{"non-list", "abc", LiteralArg("-"), ""},
	})
}

func TestFilter_LengthAndLengthIs(t *testing.T) {
	runFilterCases(t, FilterLength, []filterCase{
		{"string", "héllo", NoArg, 5},
		{"list", []any{1, 2}, NoArg, 2},
		{"map", map[string]any{"a": 1}, NoArg, 1},
		{"number", 42, NoArg, 0},
		{"nil", nil, NoArg, 0},
	})
	runFilterCases(t, FilterLengthIs, []filterCase{
		{"equal", []any{1, 2}, LiteralArg(int64(2)), true},
		{"different", "abc", LiteralArg(int64(2)), false},
		{"string arg", "ab", LiteralArg("2"), false},
		{"no length", 42, LiteralArg(int64(0)), false},
	})
}

func TestFilter_LineBreaks(t *testing.T) {
	runFilterCases(t, FilterLineBreaks, []filterCase{
		{"single paragraph", "a\nb", NoArg, "<p>a<br />b</p>"},
		{"two paragraphs", "a\n\nb\r\nc", NoArg, "<p>a</p>\n\n<p>b<br />c</p>"},
	})
	runFilterCases(t, FilterLineBreaksBR, []filterCase{
		{"newlines", "a\nb\nc", NoArg, "a<br />b<br />c"},
	})
}

func TestFilter_LineNumbers(t *testing.T) {
	runFilterCases(t, FilterLineNumbers, []filterCase{
		{"single", "one", NoArg, "1. one"},
		{"padded", "a\nb\nc\nd\ne\nf\ng\nh\ni\nj", NoArg,
			"01. a\n02. b\n03. c\n04. d\n05. e\n06. f\n07. g\n08. h\n09. i\n10. j"},
	})
}

func TestFilter_Justify(t *testing.T) {
	runFilterCases(t, FilterLJust, []filterCase{
		{"pad", "ab", LiteralArg(int64(5)), "ab   "},
		{"truncate", "abcdef", LiteralArg(int64(3)), "abc"},
		{"equal width truncates to itself", "abc", LiteralArg(int64(3)), "abc"},
		{"non-numeric width", "ab", LiteralArg("5"), ""},
	})
	runFilterCases(t, FilterRJust, []filterCase{
		{"pad", "ab", LiteralArg(int64(5)), "   ab"},
		{"truncate", "abcdef", LiteralArg(int64(2)), "ab"},
		{"missing width", "ab", NoArg, ""},
	})
}

func TestFilter_Lower(t *testing.T) {
	s := "PTR"
	runFilterCases(t, FilterLower, []filterCase{
		{"string", "HeLLo", NoArg, "hello"},
		{"string pointer", &s, NoArg, "ptr"},
		{"number", 42, NoArg, ""},
		{"nil", nil, NoArg, ""},
	})
}

func TestFilter_MakeList(t *testing.T) {
	runFilterCases(t, FilterMakeList, []filterCase{
		{"string", "abc", NoArg, []any{"a", "b", "c"}},
		{"number", 123, NoArg, []any{"1", "2", "3"}},
		{"empty", "", NoArg, []any{}},
	})
}

func TestFilter_Phone2Numeric(t *testing.T) {
	runFilterCases(t, FilterPhone2Numeric, []filterCase{
		{"mixed case", "1-800-COLLECT", NoArg, "1-800-2655328"},
		{"q and z", "qz", NoArg, "79"},
	})
}

func TestFilter_Pluralize(t *testing.T) {
	runFilterCases(t, FilterPluralize, []filterCase{
		{"one", 1, NoArg, ""},
		{"two", 2, NoArg, "s"},
		{"zero", 0, NoArg, "s"},
		{"custom singular", 1, LiteralArg("y,ies"), "y"},
		{"custom plural", 2, LiteralArg("y,ies"), "ies"},
		{"single suffix", 2, LiteralArg("es"), "es"},
		{"single suffix singular", 1, LiteralArg("es"), ""},
		{"numeric string", "1", NoArg, ""},
		{"non-numeric", "many", NoArg, ""},
	})
}

func TestFilter_PPrint(t *testing.T) {
	out := applyFilter(t, FilterPPrint, map[string]any{"a": []any{1, "x"}}, NoArg)
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    \"x\"\n  ]\n}", out)

	assert.Equal(t, `"text"`, applyFilter(t, FilterPPrint, "text", NoArg))
}

func TestFilter_Random(t *testing.T) {
	var seen []int
	table := MustNewFilterTable(BuiltinFilters(BuiltinOptions{
		RandomIntn: func(n int) int {
			seen = append(seen, n)
			return n - 1
		},
	})...)

	list := []any{"a", "b", "c", "d", "e", "f"}
	out, err := table.Apply(FilterRandom, list, NoArg)
	require.NoError(t, err)
	assert.Equal(t, "f", out, "index range covers the whole list")
	assert.Equal(t, []int{6}, seen)

	out, err = table.Apply(FilterRandom, []any{}, NoArg)
	require.NoError(t, err)
	assert.Equal(t, "", out)

	out, err = table.Apply(FilterRandom, "abc", NoArg)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestFilter_RandomDefaultSource(t *testing.T) {
	list := []any{1, 2, 3}
	for i := 0; i < 20; i++ {
		assert.Contains(t, list, applyFilter(t, FilterRandom, list, NoArg))
	}
}

func TestFilter_RemoveTags(t *testing.T) {
	runFilterCases(t, FilterRemoveTags, []filterCase{
		{"simple", "<b>bold</b> text", NoArg, "bold text"},
		{"multiline tag", "<a\nhref='x'>link</a>", NoArg, "link"},
	})
}

func TestFilter_Slice(t *testing.T) {
	list := []any{0, 1, 2, 3, 4, 5}
	runFilterCases(t, FilterSlice, []filterCase{
		{"stepped", list, LiteralArg("1:4:2"), []any{1, 3}},
		{"range", list, LiteralArg("1:3"), []any{1, 2}},
		{"open stop", list, LiteralArg("4:"), []any{4, 5}},
		{"open start", list, LiteralArg(":2"), []any{0, 1}},
		{"negative start", list, LiteralArg("-2:"), []any{4, 5}},
		{"negative stop", list, LiteralArg(":-4"), []any{0, 1}},
		{"step only", list, LiteralArg("::3"), []any{0, 3}},
		{"out of bounds", list, LiteralArg("2:99"), []any{2, 3, 4, 5}},
		{"empty range", list, LiteralArg("4:2"), []any{}},
		{"zero step means no step", list, LiteralArg("1:3:0"), []any{1, 2}},
		{"empty step", list, LiteralArg("1:3:"), []any{1, 2}},
		{"unparsable step", list, LiteralArg("1:3:x"), []any{1, 2}},
		{"negative step", list, LiteralArg("0:4:-1"), []any{}},
		{"non-list", "abcdef", LiteralArg("1:3"), []any{}},
	})
	assert.Equal(t, []any{0, 1, 2, 3, 4, 5}, list)
}
