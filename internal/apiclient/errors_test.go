package apiclient

import (
	"errors"
	"fmt"
	"testing"
)

func TestMessageHelpers(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantAny   string
		wantField string
	}{
		{
			name:      "json message",
			err:       &APIError{Status: 401, Message: "Bad credentials", Body: []byte(`{"message":"Bad credentials"}`)},
			wantAny:   "Bad credentials",
			wantField: "Bad credentials",
		},
		{
			name:      "plain text body",
			err:       &APIError{Status: 400, Message: "User is locked", Body: []byte("User is locked")},
			wantAny:   "User is locked",
			wantField: "fallback",
		},
		{
			name:      "wrapped api error",
			err:       fmt.Errorf("withdraw: %w", &APIError{Status: 400, Message: "Insufficient balance", Body: []byte(`{"message":"Insufficient balance"}`)}),
			wantAny:   "Insufficient balance",
			wantField: "Insufficient balance",
		},
		{
			name:      "empty body",
			err:       &APIError{Status: 500},
			wantAny:   "fallback",
			wantField: "fallback",
		},
		{
			name:      "transport",
			err:       fmt.Errorf("%w: dial tcp", ErrTransport),
			wantAny:   "fallback",
			wantField: "fallback",
		},
		{
			name:      "unauthorized",
			err:       ErrUnauthorized,
			wantAny:   "fallback",
			wantField: "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MessageFrom(tt.err, "fallback"); got != tt.wantAny {
				t.Fatalf("MessageFrom: got %q want %q", got, tt.wantAny)
			}
			if got := FieldMessage(tt.err, "fallback"); got != tt.wantField {
				t.Fatalf("FieldMessage: got %q want %q", got, tt.wantField)
			}
		})
	}
}

func TestStatusClass(t *testing.T) {
	cases := map[int]string{200: "2xx", 204: "2xx", 302: "3xx", 401: "401", 403: "4xx", 404: "4xx", 503: "5xx"}

	for status, want := range cases {
		if got := statusClass(status); got != want {
			t.Fatalf("status %d: got %q want %q", status, got, want)
		}
	}

	if !errors.Is(fmt.Errorf("%w: x", ErrTransport), ErrTransport) {
		t.Fatalf("transport errors must unwrap")
	}
}
