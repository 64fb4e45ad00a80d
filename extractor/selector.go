package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// mustCompile parses a selector (or comma-separated group) once at init
// time. Selectors are package constants, so a parse failure is a
// programming error.
func mustCompile(selector string) goquery.Matcher {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		panic("extractor: bad selector " + selector + ": " + err.Error())
	}
	return sel
}

// firstText returns the trimmed text of the first element matching m.
func firstText(doc *goquery.Document, m goquery.Matcher) (string, bool) {
	sel := doc.FindMatcher(m).First()
	if sel.Length() == 0 {
		return "", false
	}
	text := strings.TrimSpace(sel.Text())
	return text, text != ""
}

// firstContent returns the trimmed content attribute of the first element
// matching m.
func firstContent(doc *goquery.Document, m goquery.Matcher) (string, bool) {
	content, _ := doc.FindMatcher(m).First().Attr("content")
	content = strings.TrimSpace(content)
	return content, content != ""
}

// collapse flattens all whitespace runs to a single space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
