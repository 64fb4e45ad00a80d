package extractor

import (
	"encoding/json"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	json5 "github.com/yosuke-furukawa/json5/encoding/json5"
)

var ldJSONScripts = mustCompile(`script[type="application/ld+json"]`)

// priceSelectors are tried in order when no structured-data block has a price.
var priceSelectors = []goquery.Matcher{
	mustCompile(`[itemprop="price"]`),
	mustCompile(`.product-price-value`),
	mustCompile(`.product-price-current`),
	mustCompile(`[class*="price--current"]`),
	mustCompile(`[class*="price-current"]`),
	mustCompile(`.uniform-banner-box-price`),
	mustCompile(`[class*="price"]`),
}

// PriceResult is the outcome of the price chain. Currency is always set.
type PriceResult struct {
	Value    float64
	Currency string
	Found    bool
	Source   string // "ld+json" or "selector"
}

// Price returns the listed price and currency.
func (x *Extractor) Price(p *Page) PriceResult {
	if res, ok := attempt("ld+json", func() (PriceResult, bool) { return structuredPrice(p.Doc) }); ok {
		return res
	}
	if res, ok := attempt("price selectors", func() (PriceResult, bool) { return selectorPrice(p.Doc) }); ok {
		return res
	}
	return PriceResult{Currency: DefaultCurrency}
}

// structuredPrice scans the linked-data blocks in document order. Each
// block is decoded on its own: a broken block is skipped, not fatal.
func structuredPrice(doc *goquery.Document) (PriceResult, bool) {
	var (
		res   PriceResult
		found bool
	)
	doc.FindMatcher(ldJSONScripts).EachWithBreak(func(i int, s *goquery.Selection) bool {
		res, found = attempt("ld+json block", func() (PriceResult, bool) { return priceFromBlock(s.Text()) })
		if !found {
			slog.Debug("extractor: ld+json block yielded no price", "block", i)
		}
		return !found
	})
	return res, found
}

// priceFromBlock decodes one structured-data payload and looks for an
// offer with a usable price.
func priceFromBlock(raw string) (PriceResult, bool) {
	var root any
	if err := json5.Unmarshal([]byte(strings.TrimSpace(raw)), &root); err != nil {
		return PriceResult{}, false
	}

	offers, ok := findOffers(root)
	if !ok {
		return PriceResult{}, false
	}

	for _, offer := range offerList(offers) {
		if value, ok := offerPrice(offer); ok {
			currency := stringField(offer, "priceCurrency")
			if currency == "" {
				if spec, ok := offer["priceSpecification"].(map[string]any); ok {
					currency = stringField(spec, "priceCurrency")
				}
			}
			if currency == "" {
				currency = DefaultCurrency
			}
			return PriceResult{Value: value, Currency: strings.ToUpper(currency), Found: true, Source: "ld+json"}, true
		}
	}
	return PriceResult{}, false
}

// findOffers locates the offers value: directly on the root object, or on
// the first element of a root array (or @graph container) exposing one.
func findOffers(root any) (any, bool) {
	switch v := root.(type) {
	case map[string]any:
		if offers, ok := v["offers"]; ok && offers != nil {
			return offers, true
		}
		if graph, ok := v["@graph"].([]any); ok {
			return findOffers(graph)
		}
	case []any:
		for _, el := range v {
			if m, ok := el.(map[string]any); ok {
				if offers, ok := m["offers"]; ok && offers != nil {
					return offers, true
				}
			}
		}
	}
	return nil, false
}

// offerList flattens an offers value (single offer or list) into maps.
func offerList(offers any) []map[string]any {
	switch v := offers.(type) {
	case map[string]any:
		return []map[string]any{v}
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, el := range v {
			if m, ok := el.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// offerPrice reads price, then lowPrice (aggregate offers), then the
// nested price specification.
func offerPrice(offer map[string]any) (float64, bool) {
	for _, key := range []string{"price", "lowPrice"} {
		if v, ok := toPrice(offer[key]); ok {
			return v, true
		}
	}
	if spec, ok := offer["priceSpecification"].(map[string]any); ok {
		return toPrice(spec["price"])
	}
	return 0, false
}

// toPrice converts a JSON number or numeric string into a usable price.
func toPrice(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	return f, usable(f)
}

// usable rejects NaN, infinities and non-positive placeholders.
func usable(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f > 0
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// selectorPrice tries the price selectors in order; the first element
// holding a parseable number wins. The content attribute is read before
// the visible text, and a placeholder attribute does not hide the text.
func selectorPrice(doc *goquery.Document) (PriceResult, bool) {
	for _, m := range priceSelectors {
		el := doc.FindMatcher(m).First()
		if el.Length() == 0 {
			continue
		}
		for _, text := range priceSources(el) {
			value, ok := ParsePrice(text)
			if !ok {
				continue
			}
			currency := DetectCurrency(text)
			if currency == "" {
				currency = DetectCurrency(el.Text())
			}
			if currency == "" {
				currency = DefaultCurrency
			}
			return PriceResult{Value: value, Currency: currency, Found: true, Source: "selector"}, true
		}
	}
	return PriceResult{}, false
}

// priceSources lists the non-empty candidate texts of a price element.
func priceSources(el *goquery.Selection) []string {
	var out []string
	if content, ok := el.Attr("content"); ok && strings.TrimSpace(content) != "" {
		out = append(out, content)
	}
	if text := strings.TrimSpace(el.Text()); text != "" {
		out = append(out, text)
	}
	return out
}

var numberRun = regexp.MustCompile(`\d[\d.,]*`)

// ParsePrice extracts the first number from display text such as
// "US $1,234.56" or "12,99 €".
func ParsePrice(text string) (float64, bool) {
	m := strings.TrimRight(numberRun.FindString(text), ".,")
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(normalizeDecimal(m), 64)
	if err != nil || !usable(f) {
		return 0, false
	}
	return f, true
}

// normalizeDecimal rewrites a digit run so that ParseFloat accepts it.
// The right-most separator is the decimal one when both kinds appear; a
// lone comma is a decimal comma unless exactly three digits follow it;
// repeated separators of one kind are thousands separators.
func normalizeDecimal(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 != 3 {
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}
	return s
}

// currencyMarkers is ordered so that prefixed dollar signs match before "$".
var currencyMarkers = []struct {
	marker string
	code   string
}{
	{"R$", "BRL"},
	{"C$", "CAD"},
	{"A$", "AUD"},
	{"US $", "USD"},
	{"US$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"₽", "RUB"},
	{"руб", "RUB"},
	{"zł", "PLN"},
	{"₹", "INR"},
	{"₩", "KRW"},
	{"¥", "CNY"},
	{"$", "USD"},
}

var isoCode = regexp.MustCompile(`\b(USD|EUR|GBP|RUB|PLN|BRL|CAD|AUD|INR|KRW|JPY|CNY|UAH|KZT|TRY|MXN|CHF|SEK|NOK|DKK|CZK|ILS)\b`)

// DetectCurrency guesses an ISO 4217 code from price display text. It
// returns "" when the text carries no recognizable marker.
func DetectCurrency(text string) string {
	if m := isoCode.FindString(text); m != "" {
		return m
	}
	for _, cm := range currencyMarkers {
		if strings.Contains(text, cm.marker) {
			return cm.code
		}
	}
	return ""
}
