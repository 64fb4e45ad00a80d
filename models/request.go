package models

import "encoding/json"

// FetchRequest is the payload for POST /ali/fetch.
type FetchRequest struct {
	// URL is the product page to extract. It is kept as raw JSON so that a
	// non-string value can be told apart from a missing one.
	URL json.RawMessage `json:"url"`
}

// Value decodes the url field into its dynamic JSON type. The second result
// is false when the field is absent or null.
func (r *FetchRequest) Value() (any, bool) {
	if len(r.URL) == 0 || string(r.URL) == "null" {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(r.URL, &v); err != nil {
		return nil, false
	}
	return v, true
}
