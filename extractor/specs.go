package extractor

import (
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var specBlocks = mustCompile(`[class*="specs"], [id*="spec"], [class*="product"], dl, table`)

// Specs returns the flattened text of the first specification candidate
// longer than SpecsMinChars. Later candidates are never merged in.
func (x *Extractor) Specs(p *Page) (string, bool) {
	candidates := p.Doc.FindMatcher(specBlocks)
	if n := candidates.Length(); n > x.opts.SpecsCandidates {
		candidates = candidates.Slice(0, x.opts.SpecsCandidates)
	}

	var (
		summary string
		found   bool
	)
	candidates.EachWithBreak(func(i int, s *goquery.Selection) bool {
		summary, found = attempt("specs candidate", func() (string, bool) {
			text := collapse(s.Text())
			if utf8.RuneCountInString(text) <= x.opts.SpecsMinChars {
				return "", false
			}
			return truncate(text, x.opts.SpecsMaxChars), true
		})
		return !found
	})
	return summary, found
}
