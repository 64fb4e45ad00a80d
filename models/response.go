package models

// ProductMetadata is the success response for POST /ali/fetch.
//
// Every field except FinalURL and Currency is independently optional:
// a miss on one never blocks another.
type ProductMetadata struct {
	// Title is null when no title source yielded a non-empty value.
	Title *string `json:"title"`

	// PriceOriginal is the listed price, null when neither structured data
	// nor a price selector yielded a number.
	PriceOriginal *float64 `json:"priceOriginal"`

	// Images holds unique canonical image URLs in first-seen order.
	Images []string `json:"images"`

	// Specs carries the flattened specification summary.
	Specs Specs `json:"specs"`

	// Currency is an ISO 4217 code; "USD" when nothing better was found.
	Currency string `json:"currency"`

	// FinalURL is the URL the page was fetched from, after normalization
	// and short-link resolution.
	FinalURL string `json:"finalUrl"`

	// Description is the page summary (Open Graph, meta description or a
	// readability excerpt).
	Description *string `json:"description,omitempty"`

	// ProductID is the numeric item id parsed from FinalURL.
	ProductID string `json:"productId,omitempty"`
}

// Specs holds the specification block summary.
type Specs struct {
	Summary *string `json:"summary,omitempty"`
}

// ErrorEnvelope is the uniform error body.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Details string `json:"details"`

	// Debug carries the full internal error chain; only present when the
	// service runs in debug mode.
	Debug string `json:"debug,omitempty"`
}

// HealthResponse is the response for GET /.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
