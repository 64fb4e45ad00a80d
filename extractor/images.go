package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var imageElements = mustCompile(`img`)

// imageSource matches marketplace CDN hosts and common image extensions.
var imageSource = regexp.MustCompile(`(?i)alicdn|aliexpress|\.(?:jpe?g|png|webp)`)

// Images returns up to the configured cap of unique canonical image URLs:
// og:image values first, then qualifying img sources, in first-seen order.
func (x *Extractor) Images(p *Page) []string {
	images := make([]string, 0, x.opts.ImageCap)
	seen := make(map[string]struct{})

	// add reports whether there is room for more images.
	add := func(raw string) bool {
		c := CanonicalImageURL(raw)
		if c == "" {
			return true
		}
		if _, dup := seen[c]; !dup {
			seen[c] = struct{}{}
			images = append(images, c)
		}
		return len(images) < x.opts.ImageCap
	}

	social, _ := attempt("og:image", func() ([]string, bool) { return socialImages(p.Doc), true })
	for _, src := range social {
		if !add(src) {
			return images
		}
	}

	p.Doc.FindMatcher(imageElements).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" {
			src = strings.TrimSpace(s.AttrOr("data-src", ""))
		}
		if src == "" || !imageSource.MatchString(src) {
			return true
		}
		return add(src)
	})
	return images
}

// CanonicalImageURL strips the query and fragment and gives
// scheme-relative URLs an https scheme. Inline data URIs yield "".
func CanonicalImageURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.HasPrefix(strings.ToLower(s), "data:") {
		return ""
	}
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	if strings.HasPrefix(s, "//") {
		s = "https:" + s
	}
	return s
}
