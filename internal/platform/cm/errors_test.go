package cm

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	withMsg := &APIError{Method: "GET", Path: "/clusters", StatusCode: 500, Message: "boom"}
	assert.Equal(t, "GET /clusters: API error (status 500): boom", withMsg.Error())

	bare := &APIError{Method: "POST", Path: "/x", StatusCode: 503}
	assert.Equal(t, "POST /x: API error (status 503)", bare.Error())
}

func TestNewAPIError(t *testing.T) {
	t.Parallel()

	fromJSON := newAPIError("GET", "/p", 400, []byte(`{"message":"Invalid stage"}`))
	assert.Equal(t, "Invalid stage", fromJSON.Message)

	plain := newAPIError("GET", "/p", 502, []byte("  Bad Gateway \n"))
	assert.Equal(t, "Bad Gateway", plain.Message)

	long := newAPIError("GET", "/p", 500, []byte(strings.Repeat("x", 2000)))
	assert.Len(t, long.Message, maxErrorBody+3)
	assert.True(t, strings.HasSuffix(long.Message, "..."))
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()
	notFound := fmt.Errorf("wrapped: %w", &APIError{StatusCode: 404})
	forbidden := &APIError{StatusCode: 403}
	transport := &url.Error{Op: "Get", URL: "http://x", Err: errors.New("connection refused")}

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(forbidden))
	assert.True(t, IsUnauthorized(forbidden))
	assert.False(t, IsUnauthorized(errors.New("plain")))

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "429", err: &APIError{StatusCode: 429}, want: true},
		{name: "500", err: &APIError{StatusCode: 500}, want: true},
		{name: "503 wrapped", err: fmt.Errorf("x: %w", &APIError{StatusCode: 503}), want: true},
		{name: "400", err: &APIError{StatusCode: 400}, want: false},
		{name: "404", err: notFound, want: false},
		{name: "transport", err: transport, want: true},
		{name: "decode", err: errors.New("parse response: unexpected EOF"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isTransient(tt.err))
		})
	}
}
