package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalidInput, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeBusy, http.StatusConflict},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeUpstream, http.StatusBadGateway},
		{CodeConfig, http.StatusInternalServerError},
		{CodeRender, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(New(tt.code, "x")); got != tt.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestWrappedChain(t *testing.T) {
	root := errors.New("dial tcp: refused")
	err := fmt.Errorf("fetch: %w", Wrap(CodeInvalidInput, root, "Failed to fetch news text"))

	if !Is(err, CodeInvalidInput) {
		t.Fatalf("Is() = false, want true")
	}
	if !errors.Is(err, root) {
		t.Error("root cause lost from chain")
	}
	if got := Message(err); got != "Failed to fetch news text" {
		t.Errorf("Message() = %q", got)
	}
}

func TestForeignErrorIsInternal(t *testing.T) {
	err := errors.New("boom")
	if CodeOf(err) != CodeInternal {
		t.Errorf("CodeOf() = %s", CodeOf(err))
	}
	if HTTPStatus(err) != http.StatusInternalServerError {
		t.Errorf("HTTPStatus() = %d", HTTPStatus(err))
	}
	if Message(err) != "Internal server error" {
		t.Errorf("Message() leaked %q", Message(err))
	}
}
