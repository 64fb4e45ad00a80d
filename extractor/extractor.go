// Package extractor pulls product fields out of a fetched page.
//
// Every field has an ordered fallback chain of strategies. A chain that
// runs dry yields an absent value, never an error: the contract is
// best-effort enrichment.
package extractor

import (
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Page is a parsed document plus the context some strategies need.
// It is read-only once built and safe to share between goroutines.
type Page struct {
	Doc  *goquery.Document
	HTML string
	URL  string
}

// Parse builds a queryable Page from raw HTML.
func Parse(rawHTML, pageURL string) (*Page, error) {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("extractor: parse html: %w", err)
	}
	return &Page{
		Doc:  goquery.NewDocumentFromNode(root),
		HTML: rawHTML,
		URL:  pageURL,
	}, nil
}

// Options bounds the size of extracted fields.
type Options struct {
	// ImageCap is the maximum number of images returned.
	ImageCap int

	// SpecsCandidates is how many specification candidates are inspected.
	SpecsCandidates int

	// SpecsMinChars is the flattened length a usable summary must exceed.
	SpecsMinChars int

	// SpecsMaxChars truncates the summary.
	SpecsMaxChars int

	// DescriptionMaxChars truncates the description.
	DescriptionMaxChars int
}

// DefaultOptions returns the limits used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ImageCap:            10,
		SpecsCandidates:     3,
		SpecsMinChars:       20,
		SpecsMaxChars:       600,
		DescriptionMaxChars: 600,
	}
}

// DefaultCurrency is reported when no currency could be discovered.
const DefaultCurrency = "USD"

// Fields holds the extraction result. Empty strings and a nil Price mean
// the field is absent.
type Fields struct {
	Title        string
	Price        *float64
	Currency     string
	Images       []string
	SpecsSummary string
	Description  string
}

// Extractor runs the field chains. It is stateless apart from its options
// and safe for concurrent use.
type Extractor struct {
	opts Options
}

// New creates an Extractor. Zero-valued limits fall back to the defaults.
func New(opts Options) *Extractor {
	def := DefaultOptions()
	if opts.ImageCap <= 0 {
		opts.ImageCap = def.ImageCap
	}
	if opts.SpecsCandidates <= 0 {
		opts.SpecsCandidates = def.SpecsCandidates
	}
	if opts.SpecsMinChars <= 0 {
		opts.SpecsMinChars = def.SpecsMinChars
	}
	if opts.SpecsMaxChars <= 0 {
		opts.SpecsMaxChars = def.SpecsMaxChars
	}
	if opts.DescriptionMaxChars <= 0 {
		opts.DescriptionMaxChars = def.DescriptionMaxChars
	}
	return &Extractor{opts: opts}
}

// Extract runs the independent field extractions concurrently against the
// shared read-only page and joins their results.
func (x *Extractor) Extract(p *Page) Fields {
	var (
		f     Fields
		price PriceResult
		wg    sync.WaitGroup
	)

	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(func() { f.Title, _ = x.Title(p) })
	run(func() { price = x.Price(p) })
	run(func() { f.Images = x.Images(p) })
	run(func() { f.SpecsSummary, _ = x.Specs(p) })
	run(func() { f.Description, _ = x.Description(p) })
	wg.Wait()

	f.Currency = price.Currency
	if price.Found {
		v := price.Value
		f.Price = &v
	}
	return f
}
