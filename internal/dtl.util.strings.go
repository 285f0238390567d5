package internal

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

var slashReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `'`, `\'`)

// addSlashes backslash-escapes backslashes and quotes
func addSlashes(s string) string {
	return slashReplacer.Replace(s)
}

// capFirst upper-cases the first character
func capFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// center pads s with spaces on both sides to the given width. When the
// padding is odd the extra space goes left only for odd widths.
func center(s string, width int) string {
	width = clampWidth(width)
	n := utf8.RuneCountInString(s)
	if width <= n {
		return s
	}
	margin := width - n
	left := margin/2 + (margin & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", margin-left)
}

// padRight pads s to width with trailing spaces, truncating when width is
// not larger than the current length.
func padRight(s string, width int) string {
	width = clampWidth(width)
	runes := []rune(s)
	if width <= len(runes) {
		if width < 0 {
			width = 0
		}
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// padLeft is padRight with leading spaces
func padLeft(s string, width int) string {
	width = clampWidth(width)
	runes := []rune(s)
	if width <= len(runes) {
		if width < 0 {
			width = 0
		}
		return string(runes[:width])
	}
	return strings.Repeat(" ", width-len(runes)) + s
}

// clampWidth caps padding widths at MaxPadWidth
func clampWidth(width int) int {
	if width > MaxPadWidth {
		return MaxPadWidth
	}
	return width
}

// escapeJS mirrors the JavaScript escape() function: ASCII letters, digits
// and @*_+-./ pass through, other code units below 256 become %XX and the
// rest %uXXXX (UTF-16 code units).
func escapeJS(s string) string {
	var sb strings.Builder
	for _, r := range s {
		for _, unit := range utf16.Encode([]rune{r}) {
			switch {
			case unit < utf8.RuneSelf && isJSSafe(byte(unit)):
				sb.WriteByte(byte(unit))
			case unit < 256:
				fmt.Fprintf(&sb, "%%%02X", unit)
			default:
				fmt.Fprintf(&sb, "%%u%04X", unit)
			}
		}
	}
	return sb.String()
}

func isJSSafe(ch byte) bool {
	if isLetter(ch) || isDigit(ch) {
		return true
	}
	return strings.IndexByte(JSEscapeSafeChars, ch) >= 0
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
