package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractionError_HTTPStatus(t *testing.T) {
	tests := []struct {
		err  *ExtractionError
		want int
	}{
		{NewValidationError(ErrKindURLRequired, "url is required"), 400},
		{NewValidationError(ErrKindInvalidURLType, "x"), 400},
		{NewValidationError(ErrKindInvalidURLProtocol, "x"), 400},
		{NewValidationError(ErrKindInvalidRequest, "x"), 400},
		{NewStatusError(404), 502},
		{NewTransportError(FetchKindNetwork, errors.New("connection reset")), 502},
		{NewTransportError(FetchKindTimeout, context.DeadlineExceeded), 504},
		{&ExtractionError{Kind: ErrKindUnauthorized}, 401},
		{&ExtractionError{Kind: ErrKindRateLimited}, 429},
		{&ExtractionError{Kind: ErrKindInternal}, 500},
	}
	for _, tt := range tests {
		t.Run(tt.err.Kind+"/"+tt.err.Details, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
			assert.Equal(t, tt.want < 500, tt.err.IsValidation())
		})
	}
}

func TestNewStatusError_Details(t *testing.T) {
	err := NewStatusError(404)
	assert.Equal(t, ErrKindFetchFailed, err.Kind)
	assert.Equal(t, "HTTP_404", err.Details)
	assert.Equal(t, 404, err.StatusCode)
}

func TestToEnvelope_DebugOnlyInDebugMode(t *testing.T) {
	err := NewTransportError(FetchKindNetwork, errors.New("dial tcp: connection refused"))

	env := err.ToEnvelope(false)
	assert.Equal(t, ErrorEnvelope{Error: ErrKindFetchFailed, Details: "dial tcp: connection refused"}, *env)

	raw, mErr := json.Marshal(env)
	require.NoError(t, mErr)
	assert.NotContains(t, string(raw), "debug")

	assert.Contains(t, err.ToEnvelope(true).Debug, "connection refused")
}

func TestAsExtractionError(t *testing.T) {
	orig := NewStatusError(500)
	wrapped := fmt.Errorf("outer: %w", orig)
	assert.Same(t, orig, AsExtractionError(wrapped))

	foreign := AsExtractionError(errors.New("boom"))
	assert.Equal(t, ErrKindInternal, foreign.Kind)
	assert.Equal(t, "internal error", foreign.Details)
}

func TestFetchRequest_Value(t *testing.T) {
	tests := []struct {
		body   string
		want   any
		wantOK bool
	}{
		{`{}`, nil, false},
		{`{"url":null}`, nil, false},
		{`{"url":"aliexpress.com/item/1.html"}`, "aliexpress.com/item/1.html", true},
		{`{"url":""}`, "", true},
		{`{"url":12}`, 12.0, true},
		{`{"url":{"a":1}}`, map[string]any{"a": 1.0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req FetchRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			got, ok := req.Value()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestIDContext(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", RequestID(ctx))
}
