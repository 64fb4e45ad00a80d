package extractor

var (
	ogTitleMeta   = mustCompile(`meta[property="og:title"]`)
	headingOne    = mustCompile(`h1`)
	productTitle  = mustCompile(`[data-pl="product-title"], .product-title-text, .product-title`)
	anyTitleClass = mustCompile(`[class*="title"]`)
	keywordsMeta  = mustCompile(`meta[name="keywords"]`)
	documentTitle = mustCompile(`title`)
)

var titleChain = []Strategy[string]{
	{Name: "og:title", Run: func(p *Page) (string, bool) { return firstContent(p.Doc, ogTitleMeta) }},
	{Name: "h1", Run: func(p *Page) (string, bool) { return firstText(p.Doc, headingOne) }},
	{Name: "product-title", Run: func(p *Page) (string, bool) { return firstText(p.Doc, productTitle) }},
	{Name: "class*=title", Run: func(p *Page) (string, bool) { return firstText(p.Doc, anyTitleClass) }},
	{Name: "keywords", Run: func(p *Page) (string, bool) { return firstContent(p.Doc, keywordsMeta) }},
	{Name: "document title", Run: func(p *Page) (string, bool) { return firstText(p.Doc, documentTitle) }},
}

// Title returns the product title.
func (x *Extractor) Title(p *Page) (string, bool) {
	return firstOf(p, titleChain)
}
