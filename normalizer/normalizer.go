// Package normalizer validates and canonicalizes product URLs before any
// network call is made.
package normalizer

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/use-agent/aliadapter/models"
)

// Short-link hosts issue redirects to a canonical product page.
var shortLinkHosts = map[string]struct{}{
	"s.click.aliexpress.com": {},
	"a.aliexpress.com":       {},
}

// bareHostPattern matches scheme-less input that starts with a marketplace
// host: the main domain, any of its subdomains (www, m, short links) and
// the regional desktop domains.
var bareHostPattern = regexp.MustCompile(`(?i)^(?:[a-z0-9-]+\.)*aliexpress\.(?:com|ru|us)(?::\d+)?(?:[/?#]|$)`)

var schemePattern = regexp.MustCompile(`(?i)^https?://`)

// mobileHostPattern matches the mobile subdomain right after the scheme.
var mobileHostPattern = regexp.MustCompile(`(?i)^(https?://)m\.(aliexpress\.)`)

// wrappers are the bracket and quote pairs messaging clients put around URLs.
var wrappers = map[rune]rune{
	'<':  '>',
	'«':  '»',
	'‹':  '›',
	'“':  '”',
	'„':  '“',
	'‘':  '’',
	'"':  '"',
	'\'': '\'',
	'(':  ')',
	'[':  ']',
	'「':  '」',
}

// Normalize turns a raw request value into an absolute http(s) product URL.
//
// Steps:
//  1. The value must be a string.
//  2. Percent-decode, trim, strip matched wrapping pairs.
//  3. Accept an explicit http/https scheme as-is.
//  4. Otherwise prepend https:// to a whitelisted bare marketplace host.
//  5. Rewrite the mobile host to the desktop host.
//  6. Parse: the result must carry a host.
func Normalize(input any) (string, error) {
	raw, ok := input.(string)
	if !ok {
		return "", models.NewValidationError(models.ErrKindInvalidURLType, "url must be a string")
	}

	s := Unwrap(decode(raw))

	switch {
	case schemePattern.MatchString(s):
	case bareHostPattern.MatchString(s):
		s = "https://" + s
	default:
		return "", models.NewValidationError(models.ErrKindInvalidURLProtocol, "url must start with http:// or https://")
	}

	s = DesktopHost(s)

	u, err := url.Parse(s)
	if err != nil || u.Hostname() == "" {
		return "", models.NewValidationError(models.ErrKindInvalidURLProtocol, "url has no valid host")
	}
	return s, nil
}

// decode percent-decodes s, keeping the raw text when it is not valid
// percent-encoding.
func decode(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// Unwrap trims whitespace and repeatedly strips a matched wrapping pair
// (angle brackets, guillemets, smart quotes...) from both ends.
func Unwrap(s string) string {
	s = strings.TrimSpace(s)
	for len(s) > 1 {
		first, firstSize := utf8.DecodeRuneInString(s)
		last, lastSize := utf8.DecodeLastRuneInString(s)
		closer, ok := wrappers[first]
		if !ok || closer != last || firstSize+lastSize > len(s) {
			break
		}
		s = strings.TrimSpace(s[firstSize : len(s)-lastSize])
	}
	return s
}

// DesktopHost rewrites the mobile marketplace host to its desktop
// equivalent. Any other URL is returned unchanged.
func DesktopHost(rawURL string) string {
	return mobileHostPattern.ReplaceAllString(rawURL, "${1}www.${2}")
}

// IsShortLink reports whether rawURL points at a short-link host.
func IsShortLink(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	_, ok := shortLinkHosts[strings.ToLower(u.Hostname())]
	return ok
}

var productIDPattern = regexp.MustCompile(`/item/(?:[^/]*/)?(\d+)\.html`)

// ProductID returns the numeric item id of a product URL, or "" when the
// path does not carry one.
func ProductID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	m := productIDPattern.FindStringSubmatch(u.Path)
	if m == nil {
		return ""
	}
	return m[1]
}
