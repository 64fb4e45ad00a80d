package extractor

import (
	"log/slog"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

var descriptionMeta = mustCompile(`meta[name="description"]`)

var descriptionChain = []Strategy[string]{
	{Name: "og:description", Run: func(p *Page) (string, bool) {
		d := strings.TrimSpace(openGraph(p.Doc).Description)
		return d, d != ""
	}},
	{Name: "meta description", Run: func(p *Page) (string, bool) { return firstContent(p.Doc, descriptionMeta) }},
	{Name: "readability excerpt", Run: readabilityExcerpt},
}

// Description returns a short page summary.
func (x *Extractor) Description(p *Page) (string, bool) {
	d, ok := firstOf(p, descriptionChain)
	if !ok {
		return "", false
	}
	return truncate(collapse(d), x.opts.DescriptionMaxChars), true
}

// readabilityExcerpt runs readability on its own parse of the page so the
// shared document is never mutated.
func readabilityExcerpt(p *Page) (string, bool) {
	pageURL, err := url.Parse(p.URL)
	if err != nil {
		return "", false
	}
	article, err := readability.FromReader(strings.NewReader(p.HTML), pageURL)
	if err != nil {
		slog.Debug("extractor: readability failed", "url", p.URL, "error", err)
		return "", false
	}
	excerpt := strings.TrimSpace(article.Excerpt)
	return excerpt, excerpt != ""
}
