package internal

import (
	"regexp"
	"strings"
)

var (
	htmlReplacer = strings.NewReplacer(
		HTMLAmpersand, HTMLAmpersandEntity,
		HTMLLessThan, HTMLLessThanEntity,
		HTMLGreater, HTMLGreaterEntity,
		HTMLQuote, HTMLQuoteEntity,
		HTMLApos, HTMLAposEntity,
	)
	newlineNormalizer = strings.NewReplacer(CRLF, LineFeed, CarriageReturn, LineFeed)
	paragraphSplit    = regexp.MustCompile(ParagraphSplitPattern)
	tagPattern        = regexp.MustCompile(HTMLTagPattern)
)

// escapeHTML escapes the five HTML-significant characters
func escapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

// linebreaks wraps blank-line separated paragraphs in <p> and turns the
// remaining single newlines into <br />.
func linebreaks(s string) string {
	s = strings.Trim(newlineNormalizer.Replace(s), LineFeed)
	paras := paragraphSplit.Split(s, -1)
	for i, p := range paras {
		paras[i] = HTMLParagraphOpen + strings.ReplaceAll(p, LineFeed, HTMLLineBreak) + HTMLParagraphClose
	}
	return strings.Join(paras, ParagraphGap)
}

// linebreaksBR replaces every newline with <br />
func linebreaksBR(s string) string {
	return strings.ReplaceAll(s, LineFeed, HTMLLineBreak)
}

// removeTags strips anything that looks like a tag
func removeTags(s string) string {
	return tagPattern.ReplaceAllString(s, StringValueEmpty)
}
