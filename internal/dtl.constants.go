package internal

// Token types for non-block tokens. Block tokens use their tag keyword.
const (
	TokenTypeText     = "text"
	TokenTypeVariable = "variable"
	TokenTypeEOF      = "<eof>"
)

// Default delimiters
const (
	StrVariableOpen  = "{{"
	StrVariableClose = "}}"
	StrBlockOpen     = "{%"
	StrBlockClose    = "%}"
	StrCommentOpen   = "{#"
	StrCommentClose  = "#}"
)

// Characters
const (
	CharBackslash   = '\\'
	CharColon       = ':'
	CharDoubleQuote = '"'
	CharSingleQuote = '\''
	CharPipe        = '|'
	CharSpace       = ' '
	CharTab         = '\t'
	CharNewline     = '\n'
	CharCarriageRet = '\r'
)

// Separators
const (
	PathSeparator        = "."
	StrListSeparator     = ","
	DefaultJoinSeparator = ","
	PluralSeparator      = ","
	SliceSeparator       = ":"
)

// Tag keywords
const (
	TagFor    = "for"
	TagEndFor = "endfor"
	TagIf     = "if"
	TagElse   = "else"
	TagEndIf  = "endif"

	KeywordIn       = "in"
	KeywordReversed = "reversed"
	KeywordNot      = "not"
	KeywordAnd      = "and"
	KeywordOr       = "or"
)

// Loop record names
const (
	ForLoopVar         = "forloop"
	ForLoopParentLoop  = "parentloop"
	ForLoopCounter     = "counter"
	ForLoopCounter0    = "counter0"
	ForLoopRevCounter  = "revcounter"
	ForLoopRevCounter0 = "revcounter0"
	ForLoopFirst       = "first"
	ForLoopLast        = "last"
)

// Builtin filter names
const (
	FilterAdd              = "add"
	FilterAddSlashes       = "addslashes"
	FilterCapFirst         = "capfirst"
	FilterCenter           = "center"
	FilterCut              = "cut"
	FilterDate             = "date"
	FilterDefault          = "default"
	FilterDefaultIfNone    = "default_if_none"
	FilterDictSort         = "dictsort"
	FilterDictSortReversed = "dictsortreversed"
	FilterDivisibleBy      = "divisibleby"
	FilterEscape           = "escape"
	FilterEscapeJS         = "escapejs"
	FilterFileSizeFormat   = "filesizeformat"
	FilterFirst            = "first"
	FilterFixAmpersands    = "fix_ampersands"
	FilterFloatFormat      = "floatformat"
	FilterForceEscape      = "force_escape"
	FilterGetDigit         = "get_digit"
	FilterIRIEncode        = "iriencode"
	FilterJoin             = "join"
	FilterLast             = "last"
	FilterLength           = "length"
	FilterLengthIs         = "length_is"
	FilterLineBreaks       = "linebreaks"
	FilterLineBreaksBR     = "linebreaksbr"
	FilterLineNumbers      = "linenumbers"
	FilterLJust            = "ljust"
	FilterLower            = "lower"
	FilterMakeList         = "make_list"
	FilterPhone2Numeric    = "phone2numeric"
	FilterPluralize        = "pluralize"
	FilterPPrint           = "pprint"
	FilterRandom           = "random"
	FilterRemoveTags       = "removetags"
	FilterRJust            = "rjust"
	FilterSafe             = "safe"
	FilterSafeSeq          = "safeseq"
	FilterSlice            = "slice"
	FilterTitle            = "title"
)

// NotImplementedFilterNames are registered but always fail
var NotImplementedFilterNames = []string{
	FilterEscape,
	FilterSafe,
	FilterSafeSeq,
	FilterIRIEncode,
	FilterTitle,
}

// Filter defaults
const (
	DefaultDateFormat     = "N j, Y"
	DefaultFloatPrecision = -1
	DefaultPluralSuffix   = "s"
	PPrintIndent          = "  "
	MaxPadWidth           = 1 << 16
	MaxFloatFormatDigits  = 64
	JSEscapeSafeChars     = "@*_+-./"

	FileSizeZero      = "0 bytes"
	FileSizeOne       = "1 byte"
	FileSizeUnitBytes = " bytes"
	FileSizeUnitKB    = "KB"
	FileSizeUnitMB    = "MB"
	FileSizeUnitGB    = "GB"

	HTMLParagraphOpen  = "<p>"
	HTMLParagraphClose = "</p>"
	HTMLLineBreak      = "<br />"
)

// HTML entities and line endings
const (
	HTMLAmpersand       = "&"
	HTMLAmpersandEntity = "&amp;"
	HTMLLessThan        = "<"
	HTMLLessThanEntity  = "&lt;"
	HTMLGreater         = ">"
	HTMLGreaterEntity   = "&gt;"
	HTMLQuote           = `"`
	HTMLQuoteEntity     = "&quot;"
	HTMLApos            = "'"
	HTMLAposEntity      = "&#39;"

	LineFeed       = "\n"
	CRLF           = "\r\n"
	CarriageReturn = "\r"
	ParagraphGap   = "\n\n"

	ParagraphSplitPattern = `\n{2,}`
	HTMLTagPattern        = `(?s)<.*?>`
)

// Date format output words
const (
	DateAnteMeridiem = "a.m."
	DatePostMeridiem = "p.m."
	DateMidnight     = "midnight"
	DateNoon         = "noon"
	DateLeapTrue     = "True"
	DateLeapFalse    = "False"
	DateWordSpace    = " "

	OrdinalTh = "th"
	OrdinalSt = "st"
	OrdinalNd = "nd"
	OrdinalRd = "rd"
)

// Go reference layouts used by the date format characters
const (
	LayoutPeriod       = "PM"
	LayoutMonthShort   = "Jan"
	LayoutMonthLong    = "January"
	LayoutISO8601Micro = "2006-01-02T15:04:05.000000-07:00"
	LayoutDay2         = "02"
	LayoutWeekdayShort = "Mon"
	LayoutWeekdayLong  = "Monday"
	LayoutZoneName     = "MST"
	LayoutHour12       = "3"
	LayoutHour12Pad    = "03"
	LayoutHour24Pad    = "15"
	LayoutMinutePad    = "04"
	LayoutHourMinute12 = "3:04"
	LayoutMonthPad     = "01"
	LayoutZoneOffset   = "-0700"
	LayoutSecondPad    = "05"
	LayoutYear2        = "06"
)

// AP-style month abbreviations used by the N format character
var apMonths = [...]string{
	"Jan.", "Feb.", "March", "April", "May", "June",
	"July", "Aug.", "Sept.", "Oct.", "Nov.", "Dec.",
}

// Value formatting
const (
	StringValueEmpty = ""
	StringValueTrue  = "true"
	StringValueFalse = "false"
	StringValueNaN   = "NaN"

	IntBase10         = 10
	FloatBitSize64    = 64
	FloatFormatFlag   = 'f'
	FloatPrecisionAll = -1
	MaxExactFloatInt  = 1 << 53
	DigitZero         = "0"
	DecimalPoint      = "."
	NegativeSign      = "-"
)

// Value kind names
const (
	KindNameNil    = "nil"
	KindNameBool   = "bool"
	KindNameNumber = "number"
	KindNameString = "string"
	KindNameTime   = "time"
	KindNameList   = "list"
	KindNameMap    = "map"
	KindNameOther  = "other"
	KindNameAny    = "any"
)

// Node type names
const (
	NodeTypeNameText     = "TEXT"
	NodeTypeNameVariable = "VARIABLE"
	NodeTypeNameFor      = "FOR"
	NodeTypeNameIf       = "IF"
	NodeTypeNameUnknown  = "UNKNOWN"
)

// Display limits for node dumps
const (
	MaxStringDisplayLength = 50
	TruncatedStringLength  = 47
	TruncationSuffix       = "..."
)

// Renderer defaults
const (
	DefaultMaxDepth = 100
)

// Error messages
const (
	ErrMsgEmptyBlockTag    = "empty block tag"
	ErrMsgUnterminatedTag  = "unterminated tag"
	ErrMsgReservedTagName  = "reserved tag name"
	ErrMsgUnclosedTag      = "unclosed tag"
	ErrMsgExpected         = "expected"
	ErrMsgUnknownTag       = "unknown tag"
	ErrMsgEmptyExpression  = "empty variable expression"
	ErrMsgInvalidVariable  = "invalid variable expression"
	ErrMsgEmptyFilterName  = "empty filter name"
	ErrMsgUnknownFilter    = "unknown filter"
	ErrMsgInvalidFilterArg = "invalid filter argument"

	ErrMsgIfExpectedName        = "expected a condition name in \"if\" tag"
	ErrMsgIfExpectedOperator    = "expected \"and\" or \"or\" in \"if\" tag"
	ErrMsgIfMissingNameAfterNot = "missing condition name after \"not\" in \"if\" tag"
	ErrMsgIfMixedOperators      = "\"if\" tags can't mix \"and\" and \"or\""
	ErrMsgIfEmptyCondition      = "\"if\" tag requires at least one condition"
	ErrMsgIfDanglingOperator    = "\"if\" tag ends with a connective"

	ErrMsgFilterNotImplemented = "filter not implemented"
	ErrMsgFilterNil            = "filter or filter function is nil"
	ErrMsgFilterEmptyName      = "filter name cannot be empty"
	ErrMsgFilterAlreadyExists  = "filter already registered"
	ErrMsgFilterNotFound       = "filter not found"

	ErrMsgMaxDepthExceeded = "maximum nesting depth exceeded"
	ErrMsgUnknownNodeType  = "unknown node type"
	ErrMsgVariableFailed   = "variable evaluation failed"
	ErrMsgRenderCancelled  = "render cancelled"
)

// Error formats
const (
	ErrFmtUnexpectedSyntax    = "unexpected syntax in %q tag"
	ErrFmtSyntax              = "%s: %s at %s"
	ErrFmtWithPosition        = "%s at %s"
	ErrFmtWithNodeAndPosition = "%s [%s] at %s"
	ErrFmtWithCause           = "%s: %v"
	ErrFmtFilterFailed        = "filter %q: %v"
)

// Log messages
const (
	LogMsgLexerCreated    = "lexer created"
	LogMsgTokenizerStart  = "tokenizer starting"
	LogMsgTokenizerEnd    = "tokenizer finished"
	LogMsgParserCreated   = "parser created"
	LogMsgParserStart     = "parser starting"
	LogMsgParserEnd       = "parser finished"
	LogMsgTagCompiled     = "tag compiled"
	LogMsgRendererCreated = "renderer created"
	LogMsgRenderStart     = "render starting"
	LogMsgRenderEnd       = "render finished"
	LogMsgLoopStart       = "loop starting"
	LogMsgLoopNotList     = "loop target is not a list"
	LogMsgConditionEval   = "condition evaluated"
	LogMsgFilterFailed    = "filter failed"
)

// Log field names
const (
	LogFieldSource     = "source_length"
	LogFieldTokens     = "tokens"
	LogFieldNodes      = "nodes"
	LogFieldOutput     = "output_length"
	LogFieldTag        = "tag"
	LogFieldList       = "list"
	LogFieldIterations = "iterations"
	LogFieldResult     = "result"
	LogFieldExpression = "expression"
)
