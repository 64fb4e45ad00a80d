package extractor

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
)

var metaTags = mustCompile(`meta[property], meta[name]`)

// openGraph feeds every meta tag of the document, head or body, through
// the Open Graph parser.
func openGraph(doc *goquery.Document) *opengraph.OpenGraph {
	og := opengraph.NewOpenGraph()
	doc.FindMatcher(metaTags).Each(func(_ int, s *goquery.Selection) {
		attrs := make(map[string]string, len(s.Nodes[0].Attr))
		for _, a := range s.Nodes[0].Attr {
			attrs[a.Key] = a.Val
		}
		og.ProcessMeta(attrs)
	})
	return og
}

// socialImages returns the og:image URLs in document order.
func socialImages(doc *goquery.Document) []string {
	og := openGraph(doc)
	urls := make([]string, 0, len(og.Images))
	for _, img := range og.Images {
		if img == nil {
			continue
		}
		if img.URL != "" {
			urls = append(urls, img.URL)
		} else if img.SecureURL != "" {
			urls = append(urls, img.SecureURL)
		}
	}
	return urls
}
